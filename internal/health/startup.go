package health

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/vidsite/vidsite/internal/config"
	"github.com/vidsite/vidsite/internal/log"
)

// PerformStartupChecks validates the environment before the server starts.
// Problems the server can recover from at runtime (a missing catalog, no
// site URL) are logged as warnings; only unusable listeners fail startup.
func PerformStartupChecks(_ context.Context, cfg config.AppConfig) error {
	logger := log.WithComponent("startup-check")

	if err := checkListenAddr(cfg.Server.ListenAddr); err != nil {
		return fmt.Errorf("listen address: %w", err)
	}
	if cfg.Server.MetricsListen != "" {
		if err := checkListenAddr(cfg.Server.MetricsListen); err != nil {
			return fmt.Errorf("metrics listen address: %w", err)
		}
		if cfg.Server.MetricsListen == cfg.Server.ListenAddr {
			return fmt.Errorf("metrics listener %q collides with the public listener", cfg.Server.MetricsListen)
		}
	}

	if cfg.Site.URL == "" {
		logger.Warn().
			Str(log.FieldEvent, "startup.site_url_missing").
			Msg("VIDSITE_SITE_URL is not set; sitemap endpoints will answer 500")
	}
	checkCatalogFile(logger, cfg.Catalog.Path)

	logger.Info().Str(log.FieldEvent, "startup.checks_passed").Msg("startup checks passed")
	return nil
}

func checkListenAddr(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", addr, err)
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < 0 || n > 65535 {
		return fmt.Errorf("invalid port %q in %q", port, addr)
	}
	return nil
}

func checkCatalogFile(logger zerolog.Logger, path string) {
	f, err := os.Open(path) // #nosec G304 -- path comes from operator config
	if err != nil {
		logger.Warn().
			Err(err).
			Str(log.FieldEvent, "startup.catalog_unreadable").
			Str(log.FieldPath, path).
			Msg("catalog file is not readable yet; readiness will fail until it is")
		return
	}
	_ = f.Close()
}
