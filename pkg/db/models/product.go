package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is one line item in a cart. It snapshots the catalog product's name
// and price at the time it was added.
type Product struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	UserID    string          `gorm:"column:user_id;not null;index:products_user_id_idx"`
	ProductID string          `gorm:"column:product_id;not null;index:products_user_product_idx"`
	Quantity  float64         `gorm:"column:quantity;not null"`
	Name      string          `gorm:"column:name;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric;not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
