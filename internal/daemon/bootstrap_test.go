package daemon

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidsite/vidsite/internal/cache"
	"github.com/vidsite/vidsite/internal/config"
	"github.com/vidsite/vidsite/internal/health"
)

const testKey = "0f5e8a3c-1b2d-4e6f-8a9b-0c1d2e3f4a5b"

func testAppConfig(t *testing.T) config.AppConfig {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "videos.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id":"101","title":"Sunset Over Java","category":"Travel","thumbnail":"/t/101.jpg","embedUrl":"/e/101","duration":"1:30"}
	]`), 0o600))

	var cfg config.AppConfig
	cfg.Version = "test"
	cfg.LogService = "vidsite"
	cfg.Site.URL = "https://vids.example.com"
	cfg.Site.Name = "Vids Example"
	cfg.Catalog.Path = path
	cfg.Server.ListenAddr = "127.0.0.1:0"
	cfg.Server.SitemapCacheTTL = time.Minute
	cfg.Server.ShutdownTimeout = 3 * time.Second
	cfg.IndexNow.Key = testKey
	return cfg
}

func runApp(t *testing.T, app *App) (string, func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	m := app.manager.(*manager)
	select {
	case <-m.Ready():
	case <-time.After(2 * time.Second):
		cancel()
		t.Fatal("server did not bind")
	}
	return "http://" + m.Addr().String(), func() {
		cancel()
		require.NoError(t, <-done)
	}
}

func TestBootstrap_ServesSite(t *testing.T) {
	cfg := testAppConfig(t)
	cfg.Catalog.Watch = true

	app, err := Bootstrap(context.Background(), cfg, zerolog.New(io.Discard))
	require.NoError(t, err)
	base, stop := runApp(t, app)
	defer stop()

	code, body := httpGet(t, base+"/video-sitemap.xml")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "https://vids.example.com/sunset-over-java-101/")

	code, body = httpGet(t, base+"/robots.txt")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Sitemap: https://vids.example.com/sitemap.xml")

	code, body = httpGet(t, base+"/"+testKey+".txt")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, testKey, body)

	code, _ = httpGet(t, base+"/readyz")
	assert.Equal(t, http.StatusOK, code)
}

func TestBootstrap_NoSiteURL(t *testing.T) {
	cfg := testAppConfig(t)
	cfg.Site.URL = ""
	cfg.IndexNow.Key = "too-short"

	app, err := Bootstrap(context.Background(), cfg, zerolog.New(io.Discard))
	require.NoError(t, err)
	base, stop := runApp(t, app)
	defer stop()

	code, _ := httpGet(t, base+"/sitemap.xml")
	assert.Equal(t, http.StatusInternalServerError, code)
	code, _ = httpGet(t, base+"/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	code, _ = httpGet(t, base+"/too-short.txt")
	assert.Equal(t, http.StatusNotFound, code, "invalid keys are not served")
}

func TestNewDocumentCache(t *testing.T) {
	cfg := testAppConfig(t)
	logger := zerolog.New(io.Discard)

	cfg.Server.SitemapCacheTTL = 0
	c := newDocumentCache(context.Background(), cfg, logger, health.NewManager("t"))
	assert.IsType(t, cache.NoOpCache{}, c)

	cfg.Server.SitemapCacheTTL = time.Minute
	c = newDocumentCache(context.Background(), cfg, logger, health.NewManager("t"))
	assert.IsType(t, &cache.MemoryCache{}, c)
	require.NoError(t, c.Close())

	// Closed by hand below to exercise the fallback, so not RunT.
	mr, err := miniredis.Run()
	require.NoError(t, err)
	cfg.Cache.RedisAddr = mr.Addr()
	cfg.Cache.Prefix = "vidsite:sitemap:"
	hm := health.NewManager("t")
	c = newDocumentCache(context.Background(), cfg, logger, hm)
	assert.IsType(t, &cache.RedisCache{}, c)
	assert.Contains(t, hm.Ready(context.Background()).Checks, "sitemap_cache")
	require.NoError(t, c.Close())

	mr.Close()
	c = newDocumentCache(context.Background(), cfg, logger, health.NewManager("t"))
	assert.IsType(t, &cache.MemoryCache{}, c, "unreachable redis falls back to memory")
	require.NoError(t, c.Close())
}
