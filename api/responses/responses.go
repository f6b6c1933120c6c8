package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	pkgerrors "github.com/cartwheelhq/shopcarts-backend/pkg/errors"
	"github.com/cartwheelhq/shopcarts-backend/pkg/logger"
)

// ErrorBody is the uniform failure envelope.
type ErrorBody struct {
	StatusCode int    `json:"status_code"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, data)
}

// WriteCreated sets the Location header and writes a 201 body.
func WriteCreated(w http.ResponseWriter, location string, data any) {
	w.Header().Set("Location", location)
	writeJSON(w, http.StatusCreated, data)
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteError maps a typed error onto its HTTP status and the failure
// envelope. Not-found conditions log at warn, everything else at error.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	if m := typed.Message(); m != "" {
		msg = m
	}

	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{
			"error_code":  string(typed.Code()),
			"error_chain": pkgerrors.Chain(err),
		})
		if typed.Code() == pkgerrors.CodeNotFound {
			logg.Warn(ctx, msg)
		} else {
			logg.Error(ctx, "request.error", err)
		}
	}

	writeJSON(w, meta.HTTPStatus, ErrorBody{
		StatusCode: meta.HTTPStatus,
		Error:      meta.Title,
		Message:    msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
