package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/cartwheelhq/shopcarts-backend/pkg/errors"
)

type samplePayload struct {
	UserID   string  `json:"user_id" validate:"required"`
	Quantity float64 `json:"quantity" validate:"gte=0"`
}

func TestDecodeJSONBodyStruct(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"user_id":"alice","quantity":2}`))

	var payload samplePayload
	if err := DecodeJSONBody(req, &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.UserID != "alice" || payload.Quantity != 2 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestDecodeJSONBodyMissingRequiredField(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"quantity":2}`))

	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	if err == nil {
		t.Fatal("expected error")
	}

	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(typed.Message(), "user_id is required") {
		t.Fatalf("message should use json field names: %s", typed.Message())
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"user_id":"alice","bogus":true}`))

	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyMalformedJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"user_id":`))

	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodySliceValidatesEachItem(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`[{"user_id":"alice"},{"quantity":-1}]`))

	var payload []samplePayload
	err := DecodeJSONBody(req, &payload)
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if !strings.Contains(typed.Message(), "item 1:") {
		t.Fatalf("message should name the bad item: %s", typed.Message())
	}
}
