// SPDX-License-Identifier: MIT

// Command favicons renders the favicon set and <head> tags from the site icon.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/vidsite/vidsite/internal/config"
	"github.com/vidsite/vidsite/internal/favicon"
	vlog "github.com/vidsite/vidsite/internal/log"
	"github.com/vidsite/vidsite/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file (YAML)")
	source := flag.String("source", "", "override the source icon path")
	flag.Parse()

	vlog.Configure(vlog.Config{Level: "info", Service: "vidsite-favicons", Version: version.Version})
	logger := vlog.WithComponent("favicon")

	cfg, err := config.NewLoader(*configPath, version.Version).Load()
	if err != nil {
		logger.Fatal().Err(err).Str(vlog.FieldEvent, "config.load_failed").Msg("failed to load configuration")
	}
	vlog.Configure(vlog.Config{Level: cfg.LogLevel, Service: "vidsite-favicons", Version: cfg.Version})
	logger = vlog.WithComponent("favicon")

	if *source != "" {
		cfg.Favicon.Source = *source
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := favicon.LoadSource(cfg.Favicon.Source)
	if err != nil {
		logger.Fatal().
			Err(err).
			Str(vlog.FieldEvent, "favicon.source_failed").
			Str(vlog.FieldPath, cfg.Favicon.Source).
			Msg("cannot load favicon source")
	}

	gen := favicon.NewGenerator(
		favicon.DefaultConfig(cfg.Site.URL, cfg.Site.Name, cfg.Site.Description),
		src, cfg.Favicon.OutputDir, cfg.Favicon.HTMLPath,
	)
	res, err := gen.Generate(ctx)
	if err != nil {
		stop()
		logger.Fatal().Err(err).Str(vlog.FieldEvent, "favicon.generate_failed").Msg("favicon generation failed")
	}

	logger.Info().
		Str(vlog.FieldEvent, "favicon.html").
		Str("html", res.HTML).
		Msg("favicon tags")
}
