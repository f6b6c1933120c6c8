package controllers

import (
	"encoding/json"

	"github.com/cartwheelhq/shopcarts-backend/internal/products"
	"github.com/shopspring/decimal"
)

// productPayload mirrors the wire shape of a product. Surrogate id and time
// are accepted but ignored; the store owns both.
type productPayload struct {
	ID        json.RawMessage `json:"id,omitempty"`
	UserID    string          `json:"user_id" validate:"required"`
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  float64         `json:"quantity" validate:"gte=0"`
	Name      string          `json:"name" validate:"required"`
	Price     float64         `json:"price" validate:"gte=0"`
	Time      json.RawMessage `json:"time,omitempty"`
}

func (p productPayload) toInput() products.Input {
	return products.Input{
		UserID:    p.UserID,
		ProductID: p.ProductID,
		Quantity:  p.Quantity,
		Name:      p.Name,
		Price:     decimal.NewFromFloat(p.Price),
	}
}

// shopcartPayload mirrors the wire shape of a cart. Only user_id matters on
// create; nested products are accepted for shape compatibility.
type shopcartPayload struct {
	ID       json.RawMessage  `json:"id,omitempty"`
	UserID   string           `json:"user_id" validate:"required"`
	Products []productPayload `json:"products,omitempty"`
}
