// SPDX-License-Identifier: MIT

// Command vidsite serves the sitemap, robots and IndexNow key documents for
// the video catalog.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/vidsite/vidsite/internal/config"
	"github.com/vidsite/vidsite/internal/daemon"
	"github.com/vidsite/vidsite/internal/health"
	vlog "github.com/vidsite/vidsite/internal/log"
	"github.com/vidsite/vidsite/internal/version"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "config":
			os.Exit(runConfigCLI(os.Args[2:], os.Stdout, os.Stderr))
		case "healthcheck":
			os.Exit(runHealthcheckCLI(os.Args[2:], os.Stdout, os.Stderr))
		}
	}

	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to config file (YAML)")
	envFile := flag.String("env-file", "", "path to a .env file (default: $VIDSITE_ENV_FILE or .env)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		os.Exit(0)
	}

	// Safe defaults until config is loaded.
	vlog.Configure(vlog.Config{Level: "info", Service: "vidsite", Version: version.Version})
	logger := vlog.WithComponent("daemon")

	ctx, stop := daemon.WaitForShutdown()
	defer stop()

	loader := config.NewLoader(strings.TrimSpace(*configPath), version.Version)
	if *envFile != "" {
		loader = loader.WithEnvFile(*envFile)
	}
	cfg, err := loader.Load()
	if err != nil {
		logger.Fatal().
			Err(err).
			Str(vlog.FieldEvent, "config.load_failed").
			Str("config_path", *configPath).
			Msg("failed to load configuration")
	}

	vlog.Configure(vlog.Config{Level: cfg.LogLevel, Service: cfg.LogService, Version: cfg.Version})
	logger = vlog.WithComponent("daemon")

	if *configPath != "" {
		logger.Info().
			Str(vlog.FieldEvent, "config.loaded").
			Str("source", "file").
			Str(vlog.FieldPath, *configPath).
			Msg("loaded configuration from file")
	} else {
		logger.Info().
			Str(vlog.FieldEvent, "config.loaded").
			Str("source", "env+defaults").
			Msg("loaded configuration from environment and defaults")
	}

	if err := health.PerformStartupChecks(ctx, cfg); err != nil {
		logger.Fatal().
			Err(err).
			Str(vlog.FieldEvent, "startup.check_failed").
			Msg("startup checks failed, verify configuration")
	}

	app, err := daemon.Bootstrap(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().
			Err(err).
			Str(vlog.FieldEvent, "bootstrap.failed").
			Msg("failed to initialize server")
	}

	logger.Info().
		Str(vlog.FieldEvent, "daemon.start").
		Str("version", version.Version).
		Str("commit", version.Commit).
		Str("listen", cfg.Server.ListenAddr).
		Str("site_url", cfg.Site.URL).
		Str("catalog", cfg.Catalog.Path).
		Msg("starting vidsite")

	if err := app.Run(ctx); err != nil {
		logger.Fatal().
			Err(err).
			Str(vlog.FieldEvent, "daemon.failed").
			Msg("server exited with error")
	}
	logger.Info().Str(vlog.FieldEvent, "daemon.exit").Msg("shutdown complete")
}
