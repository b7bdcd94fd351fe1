package daemon

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/vidsite/vidsite/internal/api"
	"github.com/vidsite/vidsite/internal/api/middleware"
	"github.com/vidsite/vidsite/internal/cache"
	"github.com/vidsite/vidsite/internal/catalog"
	"github.com/vidsite/vidsite/internal/config"
	"github.com/vidsite/vidsite/internal/health"
	"github.com/vidsite/vidsite/internal/indexnow"
	"github.com/vidsite/vidsite/internal/sitemap"
	"github.com/vidsite/vidsite/internal/telemetry"
)

// Bootstrap wires the whole server from cfg: tracing, the catalog source,
// the sitemap service, the document cache, health checks and listeners.
func Bootstrap(ctx context.Context, cfg config.AppConfig, logger zerolog.Logger) (*App, error) {
	provider, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Tracing.Enabled,
		ServiceName:    cfg.LogService,
		ServiceVersion: cfg.Version,
		Environment:    cfg.Tracing.Environment,
		ExporterType:   cfg.Tracing.Exporter,
		Endpoint:       cfg.Tracing.Endpoint,
		SamplingRate:   cfg.Tracing.SamplingRate,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	source := catalog.NewFileSource(cfg.Catalog.Path)

	sitemaps, err := newSitemapService(cfg, source)
	if err != nil {
		return nil, err
	}

	hm := health.NewManager(cfg.Version)
	hm.RegisterChecker(health.SiteURLChecker(cfg.Site.URL))
	hm.RegisterChecker(health.NewCatalogChecker(source))

	docs := newDocumentCache(ctx, cfg, logger, hm)

	key := cfg.IndexNow.Key
	if key != "" {
		if err := indexnow.ValidateKey(key); err != nil {
			logger.Warn().Err(err).Str("event", "indexnow.key_invalid").Msg("not serving IndexNow key file")
			key = ""
		}
	}

	stack := middleware.StackConfig{
		EnableSecurityHeaders: true,
		EnableMetrics:         true,
		EnableLogging:         true,
	}
	if cfg.Tracing.Enabled {
		stack.TracingService = cfg.LogService
	}
	if cfg.Server.RateLimitEnabled {
		stack.RateLimitPerMin = cfg.Server.RateLimitPerMin
	}

	srv := api.New(api.Config{
		SiteURL:     cfg.Site.URL,
		IndexNowKey: key,
		CacheTTL:    cfg.Server.SitemapCacheTTL,
		Stack:       stack,
	}, api.Deps{
		Sitemaps: sitemaps,
		Cache:    docs,
		Health:   hm,
	})

	serverCfg := config.ParseServerConfigForApp(cfg)
	mgr, err := newManager(serverCfg, Deps{
		Logger:         logger,
		APIHandler:     srv.Handler(),
		MetricsHandler: promhttp.Handler(),
		MetricsAddr:    serverCfg.MetricsListenAddr,
	})
	if err != nil {
		return nil, err
	}
	mgr.RegisterShutdownHook("tracing", provider.Shutdown)
	mgr.RegisterShutdownHook("sitemap_cache", func(context.Context) error { return docs.Close() })

	return NewApp(logger, mgr, source, cfg.Catalog.Watch, srv.InvalidateDocuments), nil
}

// newSitemapService returns nil without error when no site URL is set; the
// document routes then answer 500 until the operator fixes the config.
func newSitemapService(cfg config.AppConfig, source catalog.Source) (*sitemap.Service, error) {
	if cfg.Site.URL == "" {
		return nil, nil
	}
	site, err := sitemap.NewSite(cfg.Site.URL, cfg.Site.Name, cfg.Site.Published)
	if err != nil {
		return nil, fmt.Errorf("site: %w", err)
	}
	b, err := sitemap.NewBuilder(site)
	if err != nil {
		return nil, fmt.Errorf("sitemap builder: %w", err)
	}
	return sitemap.NewService(b, source), nil
}

// newDocumentCache picks Redis when configured and reachable, memory
// otherwise. A zero TTL disables caching entirely.
func newDocumentCache(ctx context.Context, cfg config.AppConfig, logger zerolog.Logger, hm *health.Manager) cache.Cache {
	ttl := cfg.Server.SitemapCacheTTL
	if ttl <= 0 {
		return cache.NewNoOpCache()
	}
	if cfg.Cache.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
			Prefix:   cfg.Cache.Prefix,
		}, logger)
		if err == nil {
			hm.RegisterChecker(health.PingChecker("sitemap_cache", rc.HealthCheck))
			return rc
		}
		logger.Warn().
			Err(err).
			Str("event", "cache.redis_unavailable").
			Msg("falling back to in-memory sitemap cache")
	}
	return cache.NewMemoryCache(max(ttl, time.Minute))
}
