package controllers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cartwheelhq/shopcarts-backend/api/responses"
	"github.com/cartwheelhq/shopcarts-backend/api/validators"
	"github.com/cartwheelhq/shopcarts-backend/internal/products"
	pkgerrors "github.com/cartwheelhq/shopcarts-backend/pkg/errors"
	"github.com/cartwheelhq/shopcarts-backend/pkg/logger"
)

// AddProduct creates a product inside the cart named by the URL. Ownership
// comes from the payload, matching the cart-replacement semantics.
func AddProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		userID := chi.URLParam(r, "userID")

		var payload productPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := svc.Add(ctx, payload.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithUserID(ctx, userID), "product added to shopcart")
		}
		location := fmt.Sprintf("/shopcarts/%s/items/%s", userID, product.ProductID)
		responses.WriteCreated(w, location, newProductResponse(*product))
	}
}

// GetProduct reads one product by user/product pair.
func GetProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		product, err := svc.Get(ctx, chi.URLParam(r, "userID"), chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, newProductResponse(*product))
	}
}

// ListProducts returns the cart's products, optionally bounded by the
// min-price/max-price query parameters.
func ListProducts(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		minPrice, err := validators.ParseQueryPrice(r, "min-price")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		maxPrice, err := validators.ParseQueryPrice(r, "max-price")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		rows, err := svc.List(ctx, chi.URLParam(r, "userID"), minPrice, maxPrice)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, newProductListResponse(rows))
	}
}

// UpdateProduct replaces a product's fields, keeping its surrogate id.
func UpdateProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		userID := chi.URLParam(r, "userID")
		productID := chi.URLParam(r, "productID")

		var payload productPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := svc.Update(ctx, userID, productID, payload.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithUserID(ctx, userID), "product updated")
		}
		responses.WriteJSON(w, http.StatusOK, newProductResponse(*product))
	}
}

// DeleteProduct removes the product if present; missing products still
// answer 204.
func DeleteProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		userID := chi.URLParam(r, "userID")
		productID := chi.URLParam(r, "productID")
		if err := svc.Delete(ctx, userID, productID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithUserID(ctx, userID), "product deleted")
		}
		responses.WriteNoContent(w)
	}
}
