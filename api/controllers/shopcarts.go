package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cartwheelhq/shopcarts-backend/api/responses"
	"github.com/cartwheelhq/shopcarts-backend/api/validators"
	"github.com/cartwheelhq/shopcarts-backend/internal/products"
	"github.com/cartwheelhq/shopcarts-backend/internal/shopcarts"
	pkgerrors "github.com/cartwheelhq/shopcarts-backend/pkg/errors"
	"github.com/cartwheelhq/shopcarts-backend/pkg/logger"
)

// CreateShopcart makes an empty cart for the payload's user.
func CreateShopcart(svc shopcarts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shopcart service unavailable"))
			return
		}

		var payload shopcartPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		cart, err := svc.Create(ctx, payload.UserID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithUserID(ctx, cart.UserID), "shopcart created")
		}
		responses.WriteCreated(w, "/shopcarts/"+cart.UserID, newShopcartResponse(cart))
	}
}

// ListShopcarts returns every cart, or one user's cart(s) when the user-id
// query parameter is present.
func ListShopcarts(svc shopcarts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shopcart service unavailable"))
			return
		}

		userID := strings.TrimSpace(r.URL.Query().Get("user-id"))
		carts, err := svc.List(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, newShopcartListResponse(carts))
	}
}

// GetShopcart reads one cart with its nested products.
func GetShopcart(svc shopcarts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shopcart service unavailable"))
			return
		}

		cart, err := svc.Get(ctx, chi.URLParam(r, "userID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, newShopcartResponse(cart))
	}
}

// ReplaceShopcart swaps the cart's contents for the payload's product list.
func ReplaceShopcart(svc shopcarts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shopcart service unavailable"))
			return
		}

		userID := chi.URLParam(r, "userID")

		var payload []productPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		items := make([]products.Input, 0, len(payload))
		for _, item := range payload {
			items = append(items, item.toInput())
		}

		cart, err := svc.Replace(ctx, userID, items)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithUserID(ctx, userID), "shopcart contents replaced")
		}
		responses.WriteJSON(w, http.StatusOK, newShopcartResponse(cart))
	}
}

// DeleteShopcart removes the cart and its products. Deleting a missing cart
// still answers 204.
func DeleteShopcart(svc shopcarts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shopcart service unavailable"))
			return
		}

		userID := chi.URLParam(r, "userID")
		if err := svc.Delete(ctx, userID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithUserID(ctx, userID), "shopcart deleted")
		}
		responses.WriteNoContent(w)
	}
}

// EmptyShopcart removes every product while keeping the cart row.
func EmptyShopcart(svc shopcarts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shopcart service unavailable"))
			return
		}

		cart, err := svc.Empty(ctx, chi.URLParam(r, "userID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, newShopcartResponse(cart))
	}
}
