// Package swaggerkit serves the swagger UI and the decorated OpenAPI doc
package swaggerkit

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"interestd/internal/platform/logger"
	phttp "interestd/internal/platform/net/http"
)

// Mount serves the UI under /api/docs/ and the doc at /api/docs/doc.json when enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", serveDoc)
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}

func serveDoc(w http.ResponseWriter, r *http.Request) {
	body, err := decorate([]byte(readDoc()), "/api/v1")
	if err != nil {
		logger.C(r.Context()).Error().Err(err).Msg("swagger doc unreadable")
		http.Error(w, "spec parse error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(body)
}
