package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"

	"github.com/vidsite/vidsite/internal/log"
	"github.com/vidsite/vidsite/internal/metrics"
	"github.com/vidsite/vidsite/internal/robots"
	"github.com/vidsite/vidsite/internal/sitemap"
	"github.com/vidsite/vidsite/internal/telemetry"
)

const (
	contentTypeXML  = "application/xml"
	contentTypeText = "text/plain"
)

func (s *Server) handleSitemap(kind sitemap.Kind) http.HandlerFunc {
	name := kind.Filename()
	return func(w http.ResponseWriter, r *http.Request) {
		span := trace.SpanFromContext(r.Context())

		if s.sitemaps == nil {
			writeText(w, http.StatusInternalServerError, msgSiteURLMissing)
			return
		}

		if doc, ok := s.cache.Get(name); ok {
			metrics.RecordSitemapRender(string(kind), "cached")
			span.SetAttributes(telemetry.SitemapAttributes(string(kind), len(doc), true)...)
			writeDocument(w, contentTypeXML, doc)
			return
		}

		gen := s.cacheGeneration()
		doc, err := s.sitemaps.Render(r.Context(), kind)
		if err != nil {
			logger := log.WithComponentFromContext(r.Context(), "api")
			logger.Error().
				Err(err).
				Str(log.FieldEvent, "sitemap.render_failed").
				Str(log.FieldSitemap, name).
				Msg("sitemap render failed")
			span.SetAttributes(telemetry.ErrorAttributes(err, "sitemap_render")...)

			msg := msgRenderFailed
			switch {
			case errors.Is(err, sitemap.ErrCatalogUnavailable):
				msg = msgCatalogUnavailable
			case errors.Is(err, sitemap.ErrSiteURLMissing):
				msg = msgSiteURLMissing
			}
			writeText(w, http.StatusInternalServerError, msg)
			return
		}

		if !s.storeDocument(gen, name, doc) {
			s.logger.Debug().
				Str(log.FieldEvent, "sitemap.cache_skip_stale").
				Str(log.FieldSitemap, name).
				Msg("catalog reloaded during render, not caching")
		}
		span.SetAttributes(telemetry.SitemapAttributes(string(kind), len(doc), false)...)
		writeDocument(w, contentTypeXML, doc)
	}
}

func (s *Server) handleRobots(w http.ResponseWriter, _ *http.Request) {
	if s.cfg.SiteURL == "" {
		writeText(w, http.StatusInternalServerError, msgSiteURLMissing)
		return
	}
	writeDocument(w, contentTypeText, []byte(robots.Document(s.cfg.SiteURL)))
}

// handleIndexNowKey serves the IndexNow ownership file. Only the configured
// key answers; every other /{name}.txt is a 404.
func (s *Server) handleIndexNowKey(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if s.cfg.IndexNowKey == "" || key != s.cfg.IndexNowKey {
		writeText(w, http.StatusNotFound, "Not Found")
		return
	}
	writeDocument(w, contentTypeText, []byte(s.cfg.IndexNowKey))
}
