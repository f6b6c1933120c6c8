package shopcarts

import (
	"context"

	"github.com/cartwheelhq/shopcarts-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes persistence operations for shopcarts.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a shopcart repository bound to the provided DB.
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

// Create inserts a new cart row, assigning a surrogate id when absent. The
// unique constraint on user_id makes duplicate creation fail here rather than
// in a separate existence check.
func (r *Repository) Create(ctx context.Context, cart *models.Shopcart) error {
	if cart.ID == uuid.Nil {
		cart.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(cart).Error
}

// FindByUserID loads a cart with its products.
func (r *Repository) FindByUserID(ctx context.Context, userID string) (*models.Shopcart, error) {
	var cart models.Shopcart
	err := r.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Order("products.created_at ASC")
		}).
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// FindAll lists every cart with nested products.
func (r *Repository) FindAll(ctx context.Context) ([]models.Shopcart, error) {
	var carts []models.Shopcart
	err := r.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Order("products.created_at ASC")
		}).
		Order("created_at ASC").
		Find(&carts).Error
	if err != nil {
		return nil, err
	}
	return carts, nil
}

// Exists reports whether a cart row exists for the user.
func (r *Repository) Exists(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Shopcart{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteByUserID removes the cart row. The products cascade in the store.
func (r *Repository) DeleteByUserID(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Shopcart{}).
		Error
}
