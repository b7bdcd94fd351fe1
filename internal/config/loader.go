package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	platformnet "github.com/vidsite/vidsite/internal/platform/net"
)

// Default values shared by the loader and the tests.
const (
	DefaultCatalogPath       = "data/videos.json"
	DefaultListenAddr        = ":8080"
	DefaultSitemapCacheTTL   = 5 * time.Minute
	DefaultRateLimitPerMin   = 600
	DefaultIndexNowEndpoint  = "https://api.indexnow.org/IndexNow"
	DefaultIndexNowCachePath = ".indexnow_cache.json"
	DefaultIndexNowRedisKey  = "vidsite:indexnow:submitted"
	DefaultIndexNowTimeout   = 30 * time.Second
	DefaultCachePrefix       = "vidsite:sitemap:"
	DefaultPublicDir         = "public"
	DefaultFaviconSource     = "public/favicon.svg"
	DefaultFaviconHTMLPath   = "src/components/FaviconTags.astro"
	DefaultEnvFile           = ".env"
)

// Loader handles configuration loading with precedence.
type Loader struct {
	configPath string
	envFile    string
	version    string

	dotenv map[string]string
}

// NewLoader creates a new configuration loader. configPath may be empty.
func NewLoader(configPath, version string) *Loader {
	return &Loader{
		configPath: configPath,
		envFile:    strings.TrimSpace(ParseString("VIDSITE_ENV_FILE", DefaultEnvFile)),
		version:    version,
	}
}

// WithEnvFile overrides the .env file location. An empty path disables .env loading.
func (l *Loader) WithEnvFile(path string) *Loader {
	l.envFile = path
	return l
}

// lookup resolves a key from the process environment first and the .env file second.
func (l *Loader) lookup(key string) (string, bool) {
	if v, ok := os.LookupEnv(key); ok {
		return v, true
	}
	v, ok := l.dotenv[key]
	return v, ok
}

func (l *Loader) envString(key, def string) string {
	return lookupString(l.lookup, key, def)
}

func (l *Loader) envBool(key string, def bool) bool {
	return lookupBool(l.lookup, key, def)
}

func (l *Loader) envInt(key string, def int) int {
	return lookupInt(l.lookup, key, def)
}

func (l *Loader) envFloat(key string, def float64) float64 {
	return lookupFloat(l.lookup, key, def)
}

func (l *Loader) envDuration(key string, def time.Duration) time.Duration {
	return lookupDuration(l.lookup, key, def)
}

// Load loads configuration with precedence: ENV > .env > File > Defaults.
func (l *Loader) Load() (AppConfig, error) {
	cfg := AppConfig{}
	setDefaults(&cfg)
	cfg.Version = l.version

	if l.configPath != "" {
		fileCfg, err := l.loadFile(l.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
		if err := mergeFileConfig(&cfg, fileCfg); err != nil {
			return cfg, fmt.Errorf("merge file config: %w", err)
		}
	}

	if err := l.loadDotenv(); err != nil {
		return cfg, fmt.Errorf("load env file: %w", err)
	}
	l.mergeEnvConfig(&cfg)

	if err := normalize(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func setDefaults(cfg *AppConfig) {
	cfg.Catalog.Path = DefaultCatalogPath
	cfg.Server = ServerSettings{
		ListenAddr:       DefaultListenAddr,
		ReadTimeout:      defaultReadTimeout,
		WriteTimeout:     defaultWriteTimeout,
		IdleTimeout:      defaultIdleTimeout,
		MaxHeaderBytes:   defaultMaxHeaderBytes,
		ShutdownTimeout:  defaultShutdownTimeout,
		SitemapCacheTTL:  DefaultSitemapCacheTTL,
		RateLimitPerMin:  DefaultRateLimitPerMin,
		RateLimitEnabled: true,
	}
	cfg.IndexNow = IndexNowConfig{
		Endpoint:  DefaultIndexNowEndpoint,
		CachePath: DefaultIndexNowCachePath,
		RedisKey:  DefaultIndexNowRedisKey,
		Timeout:   DefaultIndexNowTimeout,
	}
	cfg.Favicon = FaviconConfig{
		Source:    DefaultFaviconSource,
		OutputDir: DefaultPublicDir,
		HTMLPath:  DefaultFaviconHTMLPath,
	}
	cfg.Tracing = TracingConfig{
		Exporter:     "grpc",
		Endpoint:     "localhost:4317",
		SamplingRate: 1.0,
		Environment:  "production",
	}
	cfg.Cache.Prefix = DefaultCachePrefix
	cfg.PublicDir = DefaultPublicDir
	cfg.LogLevel = "info"
	cfg.LogService = "vidsite"
}

func (l *Loader) loadFile(path string) (*FileConfig, error) {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var fileCfg FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&fileCfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &FileConfig{}, nil
		}
		if strings.Contains(err.Error(), "field") && strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("strict config parse error: %w: %v", ErrUnknownConfigField, err)
		}
		return nil, fmt.Errorf("strict config parse error: %w", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config file contains multiple documents or trailing content")
	}

	return &fileCfg, nil
}

func (l *Loader) loadDotenv() error {
	if strings.TrimSpace(l.envFile) == "" {
		return nil
	}
	values, err := godotenv.Read(l.envFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	l.dotenv = values
	return nil
}

func mergeFileConfig(dst *AppConfig, src *FileConfig) error {
	if src.Site != nil {
		setIfNotEmpty(&dst.Site.URL, src.Site.URL)
		setIfNotEmpty(&dst.Site.Name, src.Site.Name)
		setIfNotEmpty(&dst.Site.Description, src.Site.Description)
		setIfNotEmpty(&dst.Site.Published, src.Site.Published)
	}
	if src.Catalog != nil {
		setIfNotEmpty(&dst.Catalog.Path, src.Catalog.Path)
		if src.Catalog.Watch != nil {
			dst.Catalog.Watch = *src.Catalog.Watch
		}
	}
	if s := src.Server; s != nil {
		setIfNotEmpty(&dst.Server.ListenAddr, s.Listen)
		setIfNotEmpty(&dst.Server.MetricsListen, s.MetricsListen)
		for _, d := range []struct {
			raw string
			dst *time.Duration
			key string
		}{
			{s.ReadTimeout, &dst.Server.ReadTimeout, "server.readTimeout"},
			{s.WriteTimeout, &dst.Server.WriteTimeout, "server.writeTimeout"},
			{s.IdleTimeout, &dst.Server.IdleTimeout, "server.idleTimeout"},
			{s.ShutdownTimeout, &dst.Server.ShutdownTimeout, "server.shutdownTimeout"},
			{s.SitemapCacheTTL, &dst.Server.SitemapCacheTTL, "server.sitemapCacheTTL"},
		} {
			if err := setDuration(d.dst, d.raw, d.key); err != nil {
				return err
			}
		}
		if s.RateLimit != nil {
			dst.Server.RateLimitPerMin = *s.RateLimit
		}
	}
	if n := src.IndexNow; n != nil {
		setIfNotEmpty(&dst.IndexNow.Key, n.Key)
		setIfNotEmpty(&dst.IndexNow.Endpoint, n.Endpoint)
		setIfNotEmpty(&dst.IndexNow.CachePath, n.CachePath)
		setIfNotEmpty(&dst.IndexNow.RedisAddr, n.RedisAddr)
		setIfNotEmpty(&dst.IndexNow.RedisKey, n.RedisKey)
		if n.RedisDB != nil {
			dst.IndexNow.RedisDB = *n.RedisDB
		}
		if err := setDuration(&dst.IndexNow.ChunkInterval, n.ChunkInterval, "indexnow.chunkInterval"); err != nil {
			return err
		}
	}
	if f := src.Favicon; f != nil {
		setIfNotEmpty(&dst.Favicon.Source, f.Source)
		setIfNotEmpty(&dst.Favicon.OutputDir, f.OutputDir)
		setIfNotEmpty(&dst.Favicon.HTMLPath, f.HTMLPath)
	}
	if t := src.Tracing; t != nil {
		if t.Enabled != nil {
			dst.Tracing.Enabled = *t.Enabled
		}
		setIfNotEmpty(&dst.Tracing.Exporter, t.Exporter)
		setIfNotEmpty(&dst.Tracing.Endpoint, t.Endpoint)
		if t.SamplingRate != nil {
			dst.Tracing.SamplingRate = *t.SamplingRate
		}
	}
	if c := src.Cache; c != nil {
		setIfNotEmpty(&dst.Cache.RedisAddr, c.RedisAddr)
		setIfNotEmpty(&dst.Cache.Prefix, c.Prefix)
		if c.RedisDB != nil {
			dst.Cache.RedisDB = *c.RedisDB
		}
	}
	setIfNotEmpty(&dst.PublicDir, src.PublicDir)
	setIfNotEmpty(&dst.LogLevel, src.LogLevel)
	return nil
}

func (l *Loader) mergeEnvConfig(cfg *AppConfig) {
	cfg.Site.URL = l.envString("VIDSITE_SITE_URL", cfg.Site.URL)
	cfg.Site.Name = l.envString("VIDSITE_SITE_NAME", cfg.Site.Name)
	cfg.Site.Description = l.envString("VIDSITE_SITE_DESCRIPTION", cfg.Site.Description)
	cfg.Site.Published = l.envString("VIDSITE_SITE_PUBLISHED", cfg.Site.Published)

	cfg.Catalog.Path = l.envString("VIDSITE_CATALOG_PATH", cfg.Catalog.Path)
	cfg.Catalog.Watch = l.envBool("VIDSITE_CATALOG_WATCH", cfg.Catalog.Watch)

	cfg.Server.ListenAddr = l.envString("VIDSITE_LISTEN", cfg.Server.ListenAddr)
	cfg.Server.MetricsListen = l.envString("VIDSITE_METRICS_LISTEN", cfg.Server.MetricsListen)
	cfg.Server.ReadTimeout = l.envDuration("VIDSITE_SERVER_READ_TIMEOUT", cfg.Server.ReadTimeout)
	cfg.Server.WriteTimeout = l.envDuration("VIDSITE_SERVER_WRITE_TIMEOUT", cfg.Server.WriteTimeout)
	cfg.Server.IdleTimeout = l.envDuration("VIDSITE_SERVER_IDLE_TIMEOUT", cfg.Server.IdleTimeout)
	cfg.Server.MaxHeaderBytes = l.envInt("VIDSITE_SERVER_MAX_HEADER_BYTES", cfg.Server.MaxHeaderBytes)
	cfg.Server.ShutdownTimeout = l.envDuration("VIDSITE_SERVER_SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout)
	cfg.Server.SitemapCacheTTL = l.envDuration("VIDSITE_SITEMAP_CACHE_TTL", cfg.Server.SitemapCacheTTL)
	cfg.Server.RateLimitPerMin = l.envInt("VIDSITE_RATE_LIMIT", cfg.Server.RateLimitPerMin)
	cfg.Server.RateLimitEnabled = l.envBool("VIDSITE_RATE_LIMIT_ENABLED", cfg.Server.RateLimitEnabled)

	cfg.IndexNow.Key = l.envString("VIDSITE_INDEXNOW_KEY", cfg.IndexNow.Key)
	cfg.IndexNow.Endpoint = l.envString("VIDSITE_INDEXNOW_ENDPOINT", cfg.IndexNow.Endpoint)
	cfg.IndexNow.CachePath = l.envString("VIDSITE_INDEXNOW_CACHE", cfg.IndexNow.CachePath)
	cfg.IndexNow.RedisAddr = l.envString("VIDSITE_INDEXNOW_REDIS_ADDR", cfg.IndexNow.RedisAddr)
	cfg.IndexNow.RedisPassword = l.envString("VIDSITE_INDEXNOW_REDIS_PASSWORD", cfg.IndexNow.RedisPassword)
	cfg.IndexNow.RedisDB = l.envInt("VIDSITE_INDEXNOW_REDIS_DB", cfg.IndexNow.RedisDB)
	cfg.IndexNow.RedisKey = l.envString("VIDSITE_INDEXNOW_REDIS_KEY", cfg.IndexNow.RedisKey)
	cfg.IndexNow.ChunkInterval = l.envDuration("VIDSITE_INDEXNOW_CHUNK_INTERVAL", cfg.IndexNow.ChunkInterval)
	cfg.IndexNow.Timeout = l.envDuration("VIDSITE_INDEXNOW_TIMEOUT", cfg.IndexNow.Timeout)

	cfg.PublicDir = l.envString("VIDSITE_PUBLIC_DIR", cfg.PublicDir)
	cfg.Favicon.Source = l.envString("VIDSITE_FAVICON_SOURCE", cfg.Favicon.Source)
	cfg.Favicon.OutputDir = l.envString("VIDSITE_FAVICON_OUTPUT_DIR", cfg.Favicon.OutputDir)
	cfg.Favicon.HTMLPath = l.envString("VIDSITE_FAVICON_HTML_PATH", cfg.Favicon.HTMLPath)

	cfg.Tracing.Enabled = l.envBool("VIDSITE_TRACING_ENABLED", cfg.Tracing.Enabled)
	cfg.Tracing.Exporter = l.envString("VIDSITE_TRACING_EXPORTER", cfg.Tracing.Exporter)
	cfg.Tracing.Endpoint = l.envString("VIDSITE_TRACING_ENDPOINT", cfg.Tracing.Endpoint)
	cfg.Tracing.SamplingRate = l.envFloat("VIDSITE_TRACING_SAMPLING_RATE", cfg.Tracing.SamplingRate)
	cfg.Tracing.Environment = l.envString("VIDSITE_TRACING_ENVIRONMENT", cfg.Tracing.Environment)

	cfg.Cache.RedisAddr = l.envString("VIDSITE_CACHE_REDIS_ADDR", cfg.Cache.RedisAddr)
	cfg.Cache.RedisPassword = l.envString("VIDSITE_CACHE_REDIS_PASSWORD", cfg.Cache.RedisPassword)
	cfg.Cache.RedisDB = l.envInt("VIDSITE_CACHE_REDIS_DB", cfg.Cache.RedisDB)
	cfg.Cache.Prefix = l.envString("VIDSITE_CACHE_PREFIX", cfg.Cache.Prefix)

	cfg.LogLevel = l.envString("VIDSITE_LOG_LEVEL", cfg.LogLevel)
	cfg.LogService = l.envString("VIDSITE_LOG_SERVICE", cfg.LogService)
}

// normalize trims the site URL and derives the site name from its host when unset.
func normalize(cfg *AppConfig) error {
	raw := strings.TrimSpace(cfg.Site.URL)
	cfg.Site.URL = strings.TrimRight(raw, "/")
	if cfg.Site.URL == "" {
		return nil
	}
	u, ok := platformnet.ParseDirectHTTPURL(cfg.Site.URL)
	if !ok || u.RawQuery != "" {
		return fmt.Errorf("%w: %q", ErrInvalidSiteURL, raw)
	}
	if strings.TrimSpace(cfg.Site.Name) == "" {
		cfg.Site.Name = u.Hostname()
	}
	return nil
}

func setIfNotEmpty(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, raw, key string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("%s: invalid duration %q: %w", key, raw, err)
	}
	*dst = d
	return nil
}
