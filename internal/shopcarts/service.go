package shopcarts

import (
	"context"
	"errors"
	"fmt"

	"github.com/cartwheelhq/shopcarts-backend/internal/products"
	"github.com/cartwheelhq/shopcarts-backend/pkg/db"
	"github.com/cartwheelhq/shopcarts-backend/pkg/db/models"
	pkgerrors "github.com/cartwheelhq/shopcarts-backend/pkg/errors"
	"gorm.io/gorm"
)

const userIDUniqueConstraint = "shopcarts_user_id_key"

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams groups dependencies for the shopcart service.
type ServiceParams struct {
	CartRepo    *Repository
	ProductRepo *products.Repository
	Tx          TxRunner
}

// Service exposes business rules for cart lifecycle management.
type Service interface {
	Create(ctx context.Context, userID string) (*models.Shopcart, error)
	List(ctx context.Context, userID string) ([]models.Shopcart, error)
	Get(ctx context.Context, userID string) (*models.Shopcart, error)
	Replace(ctx context.Context, userID string, items []products.Input) (*models.Shopcart, error)
	Delete(ctx context.Context, userID string) error
	Empty(ctx context.Context, userID string) (*models.Shopcart, error)
}

type service struct {
	cartRepo    *Repository
	productRepo *products.Repository
	tx          TxRunner
}

// NewService builds a shopcart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CartRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tx runner is required")
	}
	return &service{
		cartRepo:    params.CartRepo,
		productRepo: params.ProductRepo,
		tx:          params.Tx,
	}, nil
}

// Create makes an empty cart for the user. Duplicate creation surfaces as a
// conflict from the unique constraint, with no separate existence round trip.
func (s *service) Create(ctx context.Context, userID string) (*models.Shopcart, error) {
	cart := &models.Shopcart{UserID: userID}
	if err := s.cartRepo.Create(ctx, cart); err != nil {
		if db.IsUniqueViolation(err, userIDUniqueConstraint) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, fmt.Sprintf("Shopcart %s already exists", userID))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create shopcart")
	}
	return cart, nil
}

// List returns all carts, or the one cart matching userID when provided. A
// filter that matches nothing yields an empty list, not an error.
func (s *service) List(ctx context.Context, userID string) ([]models.Shopcart, error) {
	if userID != "" {
		cart, err := s.cartRepo.FindByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []models.Shopcart{}, nil
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shopcart")
		}
		return []models.Shopcart{*cart}, nil
	}

	carts, err := s.cartRepo.FindAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list shopcarts")
	}
	return carts, nil
}

// Get loads one cart with its products.
func (s *service) Get(ctx context.Context, userID string) (*models.Shopcart, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, cartNotFoundMessage(userID))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shopcart")
	}
	return cart, nil
}

// Replace swaps the cart's entire contents for the supplied items in one
// transaction. Item ownership is taken from the payload as-is.
func (s *service) Replace(ctx context.Context, userID string, items []products.Input) (*models.Shopcart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.productRepo.WithTx(tx)
		if err := repo.DeleteByUser(ctx, cart.UserID); err != nil {
			return err
		}
		for _, item := range items {
			product := &models.Product{
				UserID:    item.UserID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Name:      item.Name,
				Price:     item.Price,
			}
			if err := repo.Create(ctx, product); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "replacement item references an unknown shopcart")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace shopcart contents")
	}

	return s.Get(ctx, userID)
}

// Delete removes the cart and, through the cascade, its products. Missing
// carts are a no-op.
func (s *service) Delete(ctx context.Context, userID string) error {
	if err := s.cartRepo.DeleteByUserID(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete shopcart")
	}
	return nil
}

// Empty removes every product from the cart, leaving the cart itself intact.
func (s *service) Empty(ctx context.Context, userID string) (*models.Shopcart, error) {
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.productRepo.DeleteByUser(ctx, userID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "empty shopcart")
	}
	return s.Get(ctx, userID)
}

func cartNotFoundMessage(userID string) string {
	return fmt.Sprintf("Shopcart with id '%s' was not found.", userID)
}
