package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cartwheelhq/shopcarts-backend/api/responses"
)

func TestRequireJSONAllowsJSON(t *testing.T) {
	handler := RequireJSON(nil)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/shopcarts", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRequireJSONAllowsCharsetParameter(t *testing.T) {
	handler := RequireJSON(nil)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/shopcarts", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRequireJSONRejectsOtherTypes(t *testing.T) {
	handler := RequireJSON(nil)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/shopcarts", strings.NewReader("user_id=alice"))
	req.Header.Set("Content-Type", "text/plain")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415 got %d", resp.Code)
	}

	var body responses.ErrorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Message != "Content-Type must be application/json" {
		t.Fatalf("unexpected message: %s", body.Message)
	}
}

func TestRequireJSONRejectsMissingHeader(t *testing.T) {
	handler := RequireJSON(nil)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/shopcarts", strings.NewReader(`{}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415 got %d", resp.Code)
	}
}
