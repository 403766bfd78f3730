package handler

import (
	"net/http"

	"github.com/wadjakorntonsri/seo-redirects/pkg/ports"
)

// SitemapHandler serves GET /sitemap.xml.
func SitemapHandler(service ports.RedirectService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Type", "application/xml; charset=utf-8")
		h.Set("Cache-Control", "public, max-age=3600, s-maxage=3600")
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(service.Sitemap(r.Context()))
	}
}
