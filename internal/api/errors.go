package api

import "net/http"

// Messages returned with a 500 on document routes.
const (
	msgSiteURLMissing     = "Site URL is not configured."
	msgCatalogUnavailable = "Failed to load video data for sitemap."
	msgRenderFailed       = "Failed to render sitemap."
)

func writeText(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(body))
}

func writeDocument(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
