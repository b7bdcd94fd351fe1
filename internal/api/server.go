// Package api serves the public vidsite documents: the sitemaps, robots.txt,
// the IndexNow key file and the health probes.
package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/vidsite/vidsite/internal/api/middleware"
	"github.com/vidsite/vidsite/internal/cache"
	"github.com/vidsite/vidsite/internal/health"
	"github.com/vidsite/vidsite/internal/log"
	"github.com/vidsite/vidsite/internal/sitemap"
)

// Config holds the request-path settings of the server.
type Config struct {
	// SiteURL is the canonical base URL; empty makes document routes answer 500.
	SiteURL string
	// IndexNowKey is served at /{key}.txt when set.
	IndexNowKey string
	// CacheTTL bounds how long rendered sitemaps are reused; 0 disables caching.
	CacheTTL time.Duration

	Stack middleware.StackConfig
}

// Deps are the collaborators the server needs.
type Deps struct {
	// Sitemaps is nil when no site URL is configured.
	Sitemaps *sitemap.Service
	Cache    cache.Cache
	Health   *health.Manager
}

// Server is the public HTTP surface.
type Server struct {
	cfg      Config
	sitemaps *sitemap.Service
	cache    cache.Cache
	health   *health.Manager
	logger   zerolog.Logger
	handler  http.Handler

	// genMu orders cache writes against invalidation. A render that began
	// before the last InvalidateDocuments must not repopulate the cache.
	genMu      sync.RWMutex
	generation uint64
}

// New wires a Server. Missing optional deps fall back to a no-op cache and an
// empty health manager.
func New(cfg Config, deps Deps) *Server {
	s := &Server{
		cfg:      cfg,
		sitemaps: deps.Sitemaps,
		cache:    deps.Cache,
		health:   deps.Health,
		logger:   log.WithComponent("api"),
	}
	if s.cache == nil || cfg.CacheTTL <= 0 {
		s.cache = cache.NewNoOpCache()
	}
	if s.health == nil {
		s.health = health.NewManager("")
	}
	s.handler = s.routes()
	return s
}

// Handler returns the routed handler with the middleware stack applied.
func (s *Server) Handler() http.Handler { return s.handler }

// InvalidateDocuments drops every cached sitemap. It runs after a catalog
// reload so crawlers see new videos without waiting for the TTL.
func (s *Server) InvalidateDocuments() {
	s.genMu.Lock()
	s.generation++
	s.cache.Clear()
	s.genMu.Unlock()
	s.logger.Info().Str(log.FieldEvent, "sitemap.cache_invalidated").Msg("sitemap cache cleared")
}

func (s *Server) cacheGeneration() uint64 {
	s.genMu.RLock()
	defer s.genMu.RUnlock()
	return s.generation
}

// storeDocument caches doc unless the cache was invalidated after gen was
// read. It reports whether the document was stored.
func (s *Server) storeDocument(gen uint64, name string, doc []byte) bool {
	s.genMu.RLock()
	defer s.genMu.RUnlock()
	if s.generation != gen {
		return false
	}
	s.cache.Set(name, doc, s.cfg.CacheTTL)
	return true
}
