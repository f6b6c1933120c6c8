package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/cartwheelhq/shopcarts-backend/api/responses"
	"github.com/cartwheelhq/shopcarts-backend/pkg/config"
	pkgerrors "github.com/cartwheelhq/shopcarts-backend/pkg/errors"
	"github.com/cartwheelhq/shopcarts-backend/pkg/logger"
)

const apiKeyHeader = "X-Api-Key"

// APIKey guards mutating routes behind the shared-secret header. The
// presented key must equal the configured one; an unconfigured server key
// denies everything.
func APIKey(cfg config.AuthConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := strings.TrimSpace(r.Header.Get(apiKeyHeader))
			if cfg.APIKey == "" || presented == "" ||
				subtle.ConstantTimeCompare([]byte(presented), []byte(cfg.APIKey)) != 1 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid or missing token"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
