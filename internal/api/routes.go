package api

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vidsite/vidsite/internal/api/middleware"
	"github.com/vidsite/vidsite/internal/sitemap"
)

func (s *Server) routes() http.Handler {
	r := middleware.NewRouter(s.cfg.Stack)
	r.Use(chimw.GetHead)

	r.Get("/healthz", s.health.ServeHealth)
	r.Get("/readyz", s.health.ServeReady)

	for _, kind := range sitemap.Kinds {
		r.Get("/"+kind.Filename(), s.handleSitemap(kind))
	}
	r.Get("/robots.txt", s.handleRobots)
	r.Get("/{key}.txt", s.handleIndexNowKey)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeText(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeText(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})
	return r
}
