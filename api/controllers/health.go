package controllers

import (
	"net/http"

	"github.com/cartwheelhq/shopcarts-backend/api/responses"
	"github.com/cartwheelhq/shopcarts-backend/pkg/db"
	pkgerrors "github.com/cartwheelhq/shopcarts-backend/pkg/errors"
	"github.com/cartwheelhq/shopcarts-backend/pkg/logger"
)

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteJSON(w, http.StatusOK, map[string]string{"status": "OK"})
	}
}

// HealthReady pings the datastore before answering.
func HealthReady(logg *logger.Logger, pinger db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if pinger == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeDependency, "datastore not configured"))
			return
		}
		if err := pinger.Ping(ctx); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "datastore unreachable"))
			return
		}
		responses.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
