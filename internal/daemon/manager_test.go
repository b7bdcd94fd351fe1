package daemon

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/vidsite/vidsite/internal/catalog"
	"github.com/vidsite/vidsite/internal/config"
)

func TestMain(m *testing.M) {
	// The SIGHUP listener starts the runtime's signal loop, which never exits.
	goleak.VerifyTestMain(m, goleak.IgnoreAnyFunction("os/signal.loop"))
}

func testServerConfig() config.ServerConfig {
	return config.ServerConfig{
		ListenAddr:      "127.0.0.1:0",
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		IdleTimeout:     time.Second,
		MaxHeaderBytes:  1 << 16,
		ShutdownTimeout: 3 * time.Second,
	}
}

func testDeps(h http.Handler) Deps {
	return Deps{Logger: zerolog.New(io.Discard), APIHandler: h}
}

// httpGet issues a request without keeping idle connections around, so the
// leak check does not trip over transport goroutines.
func httpGet(t *testing.T, url string) (int, string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second, Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestDeps_Validate(t *testing.T) {
	d := Deps{}
	assert.ErrorIs(t, d.Validate(), ErrMissingLogger)

	d.Logger = zerolog.New(io.Discard)
	assert.ErrorIs(t, d.Validate(), ErrMissingAPIHandler)

	_, err := NewManager(testServerConfig(), d)
	assert.ErrorIs(t, err, ErrMissingAPIHandler)
}

func TestManager_StartServeShutdown(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("ok")) })
	m, err := newManager(testServerConfig(), testDeps(h))
	require.NoError(t, err)

	var (
		mu    sync.Mutex
		order []string
	)
	for _, name := range []string{"first", "second"} {
		m.RegisterShutdownHook(name, func(context.Context) error {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
			return nil
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Start(ctx) }()

	select {
	case <-m.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("manager did not bind")
	}

	code, body := httpGet(t, "http://"+m.Addr().String()+"/")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body)

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, []string{"second", "first"}, order, "hooks run LIFO")

	assert.NoError(t, m.Shutdown(context.Background()), "second shutdown is a no-op")
}

func TestManager_StartTwice(t *testing.T) {
	m, err := newManager(testServerConfig(), testDeps(http.NotFoundHandler()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Start(ctx) }()
	<-m.Ready()

	assert.Error(t, m.Start(ctx))
	cancel()
	require.NoError(t, <-done)
}

func TestManager_ShutdownBeforeStart(t *testing.T) {
	m, err := newManager(testServerConfig(), testDeps(http.NotFoundHandler()))
	require.NoError(t, err)
	assert.ErrorIs(t, m.Shutdown(context.Background()), ErrManagerNotStarted)
}

func TestManager_BindFailure(t *testing.T) {
	cfg := testServerConfig()
	cfg.ListenAddr = "256.0.0.1:0"
	m, err := newManager(cfg, testDeps(http.NotFoundHandler()))
	require.NoError(t, err)

	err = m.Start(context.Background())
	assert.Error(t, err)
}

func TestManager_HookErrorsAreJoined(t *testing.T) {
	m, err := newManager(testServerConfig(), testDeps(http.NotFoundHandler()))
	require.NoError(t, err)
	boom := errors.New("boom")
	m.RegisterShutdownHook("broken", func(context.Context) error { return boom })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Start(ctx) }()
	<-m.Ready()
	cancel()

	assert.ErrorIs(t, <-done, boom)
}

func TestApp_RequiresManager(t *testing.T) {
	a := NewApp(zerolog.New(io.Discard), nil, nil, false, nil)
	assert.ErrorIs(t, a.Run(context.Background()), ErrMissingManager)
}

func TestApp_ReloadInvokesCallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "videos.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"1","title":"A"}]`), 0o600))
	source := catalog.NewFileSource(path)

	calls := 0
	a := NewApp(zerolog.New(io.Discard), nil, source, false, func() { calls++ })

	a.reload(context.Background())
	assert.Equal(t, 1, calls)

	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0o600))
	a.reload(context.Background())
	assert.Equal(t, 1, calls, "failed reloads keep the old snapshot and skip the callback")
}
