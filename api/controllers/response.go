package controllers

import (
	"encoding/json"

	"github.com/cartwheelhq/shopcarts-backend/pkg/db/models"
	"github.com/google/uuid"
)

const timeLayout = "2006-01-02"

type productResponse struct {
	ID        uuid.UUID   `json:"id"`
	UserID    string      `json:"user_id"`
	ProductID string      `json:"product_id"`
	Quantity  float64     `json:"quantity"`
	Name      string      `json:"name"`
	Price     json.Number `json:"price"`
	Time      string      `json:"time"`
}

type shopcartResponse struct {
	ID       uuid.UUID         `json:"id"`
	UserID   string            `json:"user_id"`
	Products []productResponse `json:"products"`
}

func newProductResponse(product models.Product) productResponse {
	return productResponse{
		ID:        product.ID,
		UserID:    product.UserID,
		ProductID: product.ProductID,
		Quantity:  product.Quantity,
		Name:      product.Name,
		Price:     json.Number(product.Price.String()),
		Time:      product.CreatedAt.Format(timeLayout),
	}
}

func newProductListResponse(rows []models.Product) []productResponse {
	out := make([]productResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, newProductResponse(row))
	}
	return out
}

func newShopcartResponse(cart *models.Shopcart) shopcartResponse {
	return shopcartResponse{
		ID:       cart.ID,
		UserID:   cart.UserID,
		Products: newProductListResponse(cart.Products),
	}
}

func newShopcartListResponse(carts []models.Shopcart) []shopcartResponse {
	out := make([]shopcartResponse, 0, len(carts))
	for i := range carts {
		out = append(out, newShopcartResponse(&carts[i]))
	}
	return out
}
