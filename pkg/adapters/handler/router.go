package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/seo-redirects/pkg/config"
	"github.com/wadjakorntonsri/seo-redirects/pkg/ports"
)

// NewRouter creates and configures the main application router
func NewRouter(cfg *config.Config, service ports.RedirectService, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}

	// Initialize Handlers
	h := NewHTTPHandler(service, log)
	pages := NewPageHandler(cfg, service, log)

	// Initialize Middleware
	mw := NewMiddleware(log)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	})

	// API
	mux.HandleFunc("POST /api/create-redirect", h.Create)
	mux.HandleFunc("GET /api/get-redirects", h.List)
	mux.HandleFunc("GET /api/get-redirect", h.Get)
	mux.HandleFunc("DELETE /api/delete-redirect", h.Delete)

	// Pages
	mux.HandleFunc("GET /sitemap.xml", SitemapHandler(service))
	mux.HandleFunc("GET /{$}", pages.Home)
	mux.HandleFunc("GET /admin", pages.Admin)
	mux.HandleFunc("GET /u", pages.LongURL)
	mux.HandleFunc("GET /{slug}", pages.Redirect)

	return Chain(mux, mw.RequestID, mw.Logging, mw.Recover)
}
