package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/cartwheelhq/shopcarts-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// ParseQueryPrice reads an optional decimal query parameter. A missing or
// blank parameter yields nil.
func ParseQueryPrice(r *http.Request, key string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, key+" must be a number")
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, key+" must be a number")
	}
	return &value, nil
}
