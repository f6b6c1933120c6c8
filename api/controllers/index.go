package controllers

import (
	_ "embed"
	"net/http"
)

//go:embed index.html
var indexHTML []byte

// Index serves the static landing page.
func Index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(indexHTML)
	}
}
