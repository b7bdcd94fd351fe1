package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidsite/vidsite/internal/catalog"
	"github.com/vidsite/vidsite/internal/config"
)

type mockChecker struct {
	name   string
	status Status
	delay  time.Duration
}

func (m *mockChecker) Name() string { return m.name }

func (m *mockChecker) Check(ctx context.Context) CheckResult {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return CheckResult{Status: StatusUnhealthy, Error: ctx.Err().Error()}
		}
	}
	return CheckResult{Status: m.status}
}

func TestManager_Health(t *testing.T) {
	m := NewManager("v1.0.0")
	m.RegisterChecker(&mockChecker{name: "healthy", status: StatusHealthy})
	m.RegisterChecker(&mockChecker{name: "degraded", status: StatusDegraded})

	resp := m.Health(context.Background(), false)
	assert.Equal(t, StatusHealthy, resp.Status)
	assert.Equal(t, "v1.0.0", resp.Version)
	assert.GreaterOrEqual(t, resp.Uptime, int64(0))
	assert.Nil(t, resp.Checks, "checks only run when verbose")

	resp = m.Health(context.Background(), true)
	assert.Equal(t, StatusDegraded, resp.Status)
	assert.Len(t, resp.Checks, 2)
}

func TestManager_Ready(t *testing.T) {
	tests := []struct {
		name      string
		checkers  []Checker
		wantReady bool
		want      Status
	}{
		{name: "no checkers", wantReady: true, want: StatusHealthy},
		{
			name:      "all healthy",
			checkers:  []Checker{&mockChecker{name: "a", status: StatusHealthy}, &mockChecker{name: "b", status: StatusHealthy}},
			wantReady: true,
			want:      StatusHealthy,
		},
		{
			name:      "degraded stays ready",
			checkers:  []Checker{&mockChecker{name: "a", status: StatusDegraded}},
			wantReady: true,
			want:      StatusDegraded,
		},
		{
			name:      "unhealthy wins over degraded",
			checkers:  []Checker{&mockChecker{name: "a", status: StatusDegraded}, &mockChecker{name: "b", status: StatusUnhealthy}},
			wantReady: false,
			want:      StatusUnhealthy,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager("v1")
			for _, c := range tt.checkers {
				m.RegisterChecker(c)
			}
			resp := m.Ready(context.Background())
			assert.Equal(t, tt.wantReady, resp.Ready)
			assert.Equal(t, tt.want, resp.Status)
		})
	}
}

func TestManager_CheckTimeout(t *testing.T) {
	m := NewManager("v1")
	m.timeout = 10 * time.Millisecond
	m.RegisterChecker(&mockChecker{name: "slow", status: StatusHealthy, delay: time.Second})

	start := time.Now()
	resp := m.Ready(context.Background())
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.False(t, resp.Ready)
	assert.Equal(t, context.DeadlineExceeded.Error(), resp.Checks["slow"].Error)
}

func TestManager_ServeReady(t *testing.T) {
	tests := []struct {
		status   Status
		wantCode int
	}{
		{StatusHealthy, http.StatusOK},
		{StatusDegraded, http.StatusOK},
		{StatusUnhealthy, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			m := NewManager("v1")
			m.RegisterChecker(&mockChecker{name: "catalog", status: tt.status})

			rec := httptest.NewRecorder()
			m.ServeReady(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			var body ReadinessResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body.Checks["catalog"].Status)
		})
	}
}

func TestManager_ServeHealth_AlwaysOK(t *testing.T) {
	m := NewManager("v1")
	m.RegisterChecker(&mockChecker{name: "catalog", status: StatusUnhealthy})

	rec := httptest.NewRecorder()
	m.ServeHealth(rec, httptest.NewRequest(http.MethodGet, "/healthz?verbose=true", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, StatusUnhealthy, body.Status)
}

func TestCatalogChecker(t *testing.T) {
	ok := NewCatalogChecker(catalog.Static{{ID: "1", Title: "A"}})
	assert.Equal(t, "catalog", ok.Name())
	assert.Equal(t, StatusHealthy, ok.Check(context.Background()).Status)

	empty := NewCatalogChecker(catalog.Static{})
	assert.Equal(t, StatusDegraded, empty.Check(context.Background()).Status)

	broken := NewCatalogChecker(catalog.SourceFunc(func(context.Context) ([]catalog.Video, error) {
		return nil, errors.New("read catalog: permission denied")
	}))
	res := broken.Check(context.Background())
	assert.Equal(t, StatusUnhealthy, res.Status)
	assert.Contains(t, res.Error, "permission denied")
}

func TestSiteURLChecker(t *testing.T) {
	assert.Equal(t, StatusUnhealthy, SiteURLChecker("").Check(context.Background()).Status)
	assert.Equal(t, StatusHealthy, SiteURLChecker("https://vids.example.com").Check(context.Background()).Status)
}

func TestPingChecker(t *testing.T) {
	up := PingChecker("redis", func(context.Context) error { return nil })
	assert.Equal(t, "redis", up.Name())
	assert.Equal(t, StatusHealthy, up.Check(context.Background()).Status)

	down := PingChecker("redis", func(context.Context) error { return errors.New("connection refused") })
	assert.Equal(t, StatusUnhealthy, down.Check(context.Background()).Status)
}

func TestPerformStartupChecks(t *testing.T) {
	base := config.AppConfig{}
	base.Server.ListenAddr = ":8080"
	base.Catalog.Path = filepath.Join(t.TempDir(), "missing.json")

	require.NoError(t, PerformStartupChecks(context.Background(), base), "missing catalog and site url only warn")

	bad := base
	bad.Server.ListenAddr = "8080"
	assert.Error(t, PerformStartupChecks(context.Background(), bad))

	collide := base
	collide.Server.MetricsListen = ":8080"
	assert.Error(t, PerformStartupChecks(context.Background(), collide))

	badPort := base
	badPort.Server.MetricsListen = ":99999"
	assert.Error(t, PerformStartupChecks(context.Background(), badPort))
}
