package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/cartwheelhq/shopcarts-backend/pkg/db"
	"github.com/cartwheelhq/shopcarts-backend/pkg/db/models"
	pkgerrors "github.com/cartwheelhq/shopcarts-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Input carries the caller-supplied fields of a product. The surrogate id is
// never taken from input.
type Input struct {
	UserID    string
	ProductID string
	Quantity  float64
	Name      string
	Price     decimal.Decimal
}

// CartChecker answers whether a cart exists for a user. Satisfied by the
// shopcarts repository.
type CartChecker interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

// ServiceParams groups dependencies for the product service.
type ServiceParams struct {
	ProductRepo *Repository
	Carts       CartChecker
}

// Service exposes business rules for products within a cart.
type Service interface {
	Add(ctx context.Context, input Input) (*models.Product, error)
	Get(ctx context.Context, userID, productID string) (*models.Product, error)
	List(ctx context.Context, userID string, minPrice, maxPrice *decimal.Decimal) ([]models.Product, error)
	Update(ctx context.Context, userID, productID string, input Input) (*models.Product, error)
	Delete(ctx context.Context, userID, productID string) error
}

type service struct {
	productRepo *Repository
	carts       CartChecker
}

// NewService builds a product service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	if params.Carts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart checker is required")
	}
	return &service{
		productRepo: params.ProductRepo,
		carts:       params.Carts,
	}, nil
}

// Add creates a product inside the owning cart. The owning cart must exist;
// the foreign key backs this up even when a concurrent delete wins the race.
func (s *service) Add(ctx context.Context, input Input) (*models.Product, error) {
	if err := s.ensureCart(ctx, input.UserID); err != nil {
		return nil, err
	}

	product := &models.Product{
		UserID:    input.UserID,
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		Name:      input.Name,
		Price:     input.Price,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, cartNotFoundMessage(input.UserID))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return product, nil
}

// Get loads one product by user/product pair.
func (s *service) Get(ctx context.Context, userID, productID string) (*models.Product, error) {
	product, err := s.productRepo.FindByUserAndProduct(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, productNotFoundMessage(userID, productID))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

// List returns the cart's products bounded by the optional price range.
func (s *service) List(ctx context.Context, userID string, minPrice, maxPrice *decimal.Decimal) ([]models.Product, error) {
	if err := s.ensureCart(ctx, userID); err != nil {
		return nil, err
	}
	rows, err := s.productRepo.FindByUser(ctx, userID, minPrice, maxPrice)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return rows, nil
}

// Update replaces every caller-supplied field while preserving the surrogate id.
func (s *service) Update(ctx context.Context, userID, productID string, input Input) (*models.Product, error) {
	product, err := s.productRepo.FindByUserAndProduct(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, productNotFoundMessage(userID, productID))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	product.UserID = input.UserID
	product.ProductID = input.ProductID
	product.Quantity = input.Quantity
	product.Name = input.Name
	product.Price = input.Price

	if err := s.productRepo.Update(ctx, product); err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, cartNotFoundMessage(input.UserID))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return product, nil
}

// Delete removes the product if present. Missing rows are a no-op.
func (s *service) Delete(ctx context.Context, userID, productID string) error {
	if err := s.productRepo.DeleteByUserAndProduct(ctx, userID, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) ensureCart(ctx context.Context, userID string) error {
	exists, err := s.carts.Exists(ctx, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shopcart")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, cartNotFoundMessage(userID))
	}
	return nil
}

func cartNotFoundMessage(userID string) string {
	return fmt.Sprintf("Shopcart with id '%s' was not found.", userID)
}

func productNotFoundMessage(userID, productID string) string {
	return fmt.Sprintf("Product with id %s was not found in shopcart %s.", productID, userID)
}
