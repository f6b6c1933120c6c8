package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cartwheelhq/shopcarts-backend/api/responses"
	"github.com/cartwheelhq/shopcarts-backend/internal/products"
	"github.com/cartwheelhq/shopcarts-backend/pkg/db/models"
	pkgerrors "github.com/cartwheelhq/shopcarts-backend/pkg/errors"
)

type stubProductService struct {
	product *models.Product
	rows    []models.Product
	err     error

	added    *products.Input
	updated  *products.Input
	minPrice *decimal.Decimal
	maxPrice *decimal.Decimal
	deleted  bool
}

func (s *stubProductService) Add(ctx context.Context, input products.Input) (*models.Product, error) {
	s.added = &input
	return s.product, s.err
}

func (s *stubProductService) Get(ctx context.Context, userID, productID string) (*models.Product, error) {
	return s.product, s.err
}

func (s *stubProductService) List(ctx context.Context, userID string, minPrice, maxPrice *decimal.Decimal) ([]models.Product, error) {
	s.minPrice = minPrice
	s.maxPrice = maxPrice
	return s.rows, s.err
}

func (s *stubProductService) Update(ctx context.Context, userID, productID string, input products.Input) (*models.Product, error) {
	s.updated = &input
	return s.product, s.err
}

func (s *stubProductService) Delete(ctx context.Context, userID, productID string) error {
	s.deleted = true
	return s.err
}

func TestAddProductSuccess(t *testing.T) {
	created := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	product := &models.Product{
		ID:        uuid.New(),
		UserID:    "alice",
		ProductID: "sku-1",
		Quantity:  3,
		Name:      "pears",
		Price:     decimal.NewFromFloat(2.5),
		CreatedAt: created,
	}
	svc := &stubProductService{product: product}
	handler := AddProduct(svc, nil)

	payload := `{"user_id":"alice","product_id":"sku-1","quantity":3,"name":"pears","price":2.5}`
	req := httptest.NewRequest(http.MethodPost, "/shopcarts/alice/items", strings.NewReader(payload))
	req = withRouteParam(req, "userID", "alice")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if got := resp.Header().Get("Location"); got != "/shopcarts/alice/items/sku-1" {
		t.Fatalf("unexpected location: %s", got)
	}
	if svc.added == nil || svc.added.ProductID != "sku-1" {
		t.Fatalf("service got input %+v", svc.added)
	}

	var body productResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Price != "2.5" {
		t.Fatalf("unexpected price: %s", body.Price)
	}
	if body.Time != "2026-08-29" {
		t.Fatalf("unexpected time: %s", body.Time)
	}
}

func TestAddProductCartMissing(t *testing.T) {
	svc := &stubProductService{err: pkgerrors.New(pkgerrors.CodeNotFound, "Shopcart with id 'alice' was not found.")}
	handler := AddProduct(svc, nil)

	payload := `{"user_id":"alice","product_id":"sku-1","quantity":1,"name":"pears","price":2.5}`
	req := httptest.NewRequest(http.MethodPost, "/shopcarts/alice/items", strings.NewReader(payload))
	req = withRouteParam(req, "userID", "alice")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestAddProductRejectsNegativePrice(t *testing.T) {
	handler := AddProduct(&stubProductService{}, nil)

	payload := `{"user_id":"alice","product_id":"sku-1","quantity":1,"name":"pears","price":-1}`
	req := httptest.NewRequest(http.MethodPost, "/shopcarts/alice/items", strings.NewReader(payload))
	req = withRouteParam(req, "userID", "alice")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	var body responses.ErrorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(body.Message, "price") {
		t.Fatalf("message should name the field: %s", body.Message)
	}
}

func TestGetProductNotFound(t *testing.T) {
	svc := &stubProductService{err: pkgerrors.New(pkgerrors.CodeNotFound, "Product with id sku-9 was not found in shopcart alice.")}
	handler := GetProduct(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/shopcarts/alice/items/sku-9", nil)
	req = withRouteParam(req, "userID", "alice")
	req = withRouteParam(req, "productID", "sku-9")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}

	var body responses.ErrorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(body.Message, "sku-9") {
		t.Fatalf("message should name the product: %s", body.Message)
	}
}

func TestListProductsPriceBounds(t *testing.T) {
	svc := &stubProductService{rows: []models.Product{}}
	handler := ListProducts(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/shopcarts/alice/items?min-price=1.50&max-price=9", nil)
	req = withRouteParam(req, "userID", "alice")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.minPrice == nil || !svc.minPrice.Equal(decimal.RequireFromString("1.50")) {
		t.Fatalf("min price not forwarded: %v", svc.minPrice)
	}
	if svc.maxPrice == nil || !svc.maxPrice.Equal(decimal.RequireFromString("9")) {
		t.Fatalf("max price not forwarded: %v", svc.maxPrice)
	}
	if got := strings.TrimSpace(resp.Body.String()); got != "[]" {
		t.Fatalf("expected empty array, got %s", got)
	}
}

func TestListProductsBadPriceParam(t *testing.T) {
	handler := ListProducts(&stubProductService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/shopcarts/alice/items?min-price=cheap", nil)
	req = withRouteParam(req, "userID", "alice")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	var body responses.ErrorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Message != "min-price must be a number" {
		t.Fatalf("unexpected message: %s", body.Message)
	}
}

func TestUpdateProductSuccess(t *testing.T) {
	product := &models.Product{
		ID:        uuid.New(),
		UserID:    "alice",
		ProductID: "sku-1",
		Quantity:  5,
		Name:      "pears",
		Price:     decimal.NewFromInt(3),
	}
	svc := &stubProductService{product: product}
	handler := UpdateProduct(svc, nil)

	payload := `{"user_id":"alice","product_id":"sku-1","quantity":5,"name":"pears","price":3}`
	req := httptest.NewRequest(http.MethodPut, "/shopcarts/alice/items/sku-1", strings.NewReader(payload))
	req = withRouteParam(req, "userID", "alice")
	req = withRouteParam(req, "productID", "sku-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.updated == nil || svc.updated.Quantity != 5 {
		t.Fatalf("service got input %+v", svc.updated)
	}
}

func TestDeleteProductNoContent(t *testing.T) {
	svc := &stubProductService{}
	handler := DeleteProduct(svc, nil)

	req := httptest.NewRequest(http.MethodDelete, "/shopcarts/alice/items/sku-1", nil)
	req = withRouteParam(req, "userID", "alice")
	req = withRouteParam(req, "productID", "sku-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", resp.Code)
	}
	if !svc.deleted {
		t.Fatal("delete not forwarded to service")
	}
}
