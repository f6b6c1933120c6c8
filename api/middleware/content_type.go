package middleware

import (
	"mime"
	"net/http"

	"github.com/cartwheelhq/shopcarts-backend/api/responses"
	pkgerrors "github.com/cartwheelhq/shopcarts-backend/pkg/errors"
	"github.com/cartwheelhq/shopcarts-backend/pkg/logger"
)

const jsonMediaType = "application/json"

// RequireJSON rejects bodies whose Content-Type is not application/json.
func RequireJSON(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Content-Type")
			mediaType, _, err := mime.ParseMediaType(raw)
			if raw == "" || err != nil || mediaType != jsonMediaType {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(
					pkgerrors.CodeUnsupportedMedia,
					"Content-Type must be "+jsonMediaType,
				))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
