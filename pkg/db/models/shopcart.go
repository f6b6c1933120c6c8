package models

import (
	"time"

	"github.com/google/uuid"
)

// Shopcart is one user's cart. user_id carries the ownership relation: the
// products table references it with ON DELETE CASCADE, so dropping a cart
// drops its products in the store.
type Shopcart struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID    string    `gorm:"column:user_id;not null;uniqueIndex:shopcarts_user_id_key"`
	Products  []Product `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
