package products

import (
	"context"

	"github.com/cartwheelhq/shopcarts-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository exposes persistence operations for cart products.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a product repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts a new product row, assigning a surrogate id when absent.
func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(product).Error
}

// FindByUserAndProduct loads the first product matching the user/product pair.
// Duplicate pairs are possible; callers get the oldest row.
func (r *Repository) FindByUserAndProduct(ctx context.Context, userID, productID string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Order("created_at ASC").
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByUser lists a user's products, optionally bounded by price.
func (r *Repository) FindByUser(ctx context.Context, userID string, minPrice, maxPrice *decimal.Decimal) ([]models.Product, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC")
	if minPrice != nil {
		query = query.Where("price >= ?", *minPrice)
	}
	if maxPrice != nil {
		query = query.Where("price <= ?", *maxPrice)
	}

	var rows []models.Product
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update saves the provided product row.
func (r *Repository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// DeleteByUserAndProduct removes the matching rows, if any.
func (r *Repository) DeleteByUserAndProduct(ctx context.Context, userID, productID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.Product{}).
		Error
}

// DeleteByUser removes every product owned by the user's cart.
func (r *Repository) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Product{}).
		Error
}
