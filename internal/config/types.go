package config

import "time"

// AppConfig is the fully merged configuration shared by all binaries.
type AppConfig struct {
	Version string

	Site     SiteConfig
	Catalog  CatalogConfig
	Server   ServerSettings
	IndexNow IndexNowConfig
	Favicon  FaviconConfig
	Tracing  TracingConfig
	Cache    CacheConfig

	// PublicDir holds static files served verbatim by the hosting runtime
	// (IndexNow key file, favicons).
	PublicDir string

	LogLevel   string
	LogService string
}

// SiteConfig describes the public site.
type SiteConfig struct {
	// URL is the canonical base URL without a trailing slash. Empty means
	// "not configured"; sitemap endpoints answer 500 in that case.
	URL         string
	Name        string
	Description string
	// Published is the default publication timestamp for records that carry none.
	Published string
}

// CatalogConfig locates the video catalog.
type CatalogConfig struct {
	Path  string
	Watch bool
}

// ServerSettings holds the HTTP tunables that may come from YAML.
type ServerSettings struct {
	ListenAddr       string
	MetricsListen    string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	ShutdownTimeout  time.Duration
	SitemapCacheTTL  time.Duration
	RateLimitPerMin  int
	RateLimitEnabled bool
}

// IndexNowConfig configures the IndexNow notifier.
type IndexNowConfig struct {
	Key           string
	Endpoint      string
	CachePath     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string
	ChunkInterval time.Duration
	Timeout       time.Duration
}

// CacheConfig selects where rendered sitemap documents are cached. An empty
// RedisAddr keeps them in process memory.
type CacheConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Prefix        string
}

// FaviconConfig configures the favicon generator.
type FaviconConfig struct {
	Source    string
	OutputDir string
	HTMLPath  string
}

// TracingConfig configures OpenTelemetry export.
type TracingConfig struct {
	Enabled      bool
	Exporter     string
	Endpoint     string
	SamplingRate float64
	Environment  string
}

// FileConfig is the on-disk YAML representation. Pointers distinguish
// "absent" from zero values.
type FileConfig struct {
	Site      *FileSite     `yaml:"site,omitempty"`
	Catalog   *FileCatalog  `yaml:"catalog,omitempty"`
	Server    *FileServer   `yaml:"server,omitempty"`
	IndexNow  *FileIndexNow `yaml:"indexnow,omitempty"`
	Favicon   *FileFavicon  `yaml:"favicon,omitempty"`
	Tracing   *FileTracing  `yaml:"tracing,omitempty"`
	Cache     *FileCache    `yaml:"cache,omitempty"`
	PublicDir string        `yaml:"publicDir,omitempty"`
	LogLevel  string        `yaml:"logLevel,omitempty"`
}

type FileSite struct {
	URL         string `yaml:"url,omitempty"`
	Name        string `yaml:"name,omitempty"`
	Description string `yaml:"description,omitempty"`
	Published   string `yaml:"published,omitempty"`
}

type FileCatalog struct {
	Path  string `yaml:"path,omitempty"`
	Watch *bool  `yaml:"watch,omitempty"`
}

type FileServer struct {
	Listen          string `yaml:"listen,omitempty"`
	MetricsListen   string `yaml:"metricsListen,omitempty"`
	ReadTimeout     string `yaml:"readTimeout,omitempty"`
	WriteTimeout    string `yaml:"writeTimeout,omitempty"`
	IdleTimeout     string `yaml:"idleTimeout,omitempty"`
	ShutdownTimeout string `yaml:"shutdownTimeout,omitempty"`
	SitemapCacheTTL string `yaml:"sitemapCacheTTL,omitempty"`
	RateLimit       *int   `yaml:"rateLimit,omitempty"`
}

type FileIndexNow struct {
	Key           string `yaml:"key,omitempty"`
	Endpoint      string `yaml:"endpoint,omitempty"`
	CachePath     string `yaml:"cachePath,omitempty"`
	RedisAddr     string `yaml:"redisAddr,omitempty"`
	RedisDB       *int   `yaml:"redisDB,omitempty"`
	RedisKey      string `yaml:"redisKey,omitempty"`
	ChunkInterval string `yaml:"chunkInterval,omitempty"`
}

type FileFavicon struct {
	Source    string `yaml:"source,omitempty"`
	OutputDir string `yaml:"outputDir,omitempty"`
	HTMLPath  string `yaml:"htmlPath,omitempty"`
}

type FileTracing struct {
	Enabled      *bool    `yaml:"enabled,omitempty"`
	Exporter     string   `yaml:"exporter,omitempty"`
	Endpoint     string   `yaml:"endpoint,omitempty"`
	SamplingRate *float64 `yaml:"samplingRate,omitempty"`
}

type FileCache struct {
	RedisAddr string `yaml:"redisAddr,omitempty"`
	RedisDB   *int   `yaml:"redisDB,omitempty"`
	Prefix    string `yaml:"prefix,omitempty"`
}
