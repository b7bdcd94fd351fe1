// SPDX-License-Identifier: MIT

// Command indexnow submits new catalog URLs to IndexNow and manages the key
// verification file.
//
//	indexnow [notify]   submit URLs not yet recorded in the ledger
//	indexnow keyfile    write {publicDir}/{key}.txt if missing
//	indexnow keygen     print a fresh key
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/vidsite/vidsite/internal/catalog"
	"github.com/vidsite/vidsite/internal/config"
	"github.com/vidsite/vidsite/internal/indexnow"
	vlog "github.com/vidsite/vidsite/internal/log"
	"github.com/vidsite/vidsite/internal/platform/httpx"
	"github.com/vidsite/vidsite/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file (YAML)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-config path] [notify|keyfile|keygen]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cmd := "notify"
	if flag.NArg() > 0 {
		cmd = flag.Arg(0)
	}

	if cmd == "keygen" {
		fmt.Println(indexnow.GenerateKey())
		return
	}

	vlog.Configure(vlog.Config{Level: "info", Service: "vidsite-indexnow", Version: version.Version})
	logger := vlog.WithComponent("indexnow")

	cfg, err := config.NewLoader(*configPath, version.Version).Load()
	if err != nil {
		logger.Fatal().Err(err).Str(vlog.FieldEvent, "config.load_failed").Msg("failed to load configuration")
	}
	vlog.Configure(vlog.Config{Level: cfg.LogLevel, Service: "vidsite-indexnow", Version: cfg.Version})
	logger = vlog.WithComponent("indexnow")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case "notify":
		runNotify(ctx, logger, cfg)
	case "keyfile":
		runKeyFile(logger, cfg)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func runKeyFile(logger zerolog.Logger, cfg config.AppConfig) {
	path, created, err := indexnow.EnsureKeyFile(cfg.PublicDir, cfg.IndexNow.Key)
	if err != nil {
		logger.Fatal().Err(err).Str(vlog.FieldEvent, "indexnow.keyfile_failed").Msg("cannot write IndexNow key file")
	}
	if created {
		logger.Info().Str(vlog.FieldEvent, "indexnow.keyfile_created").Str(vlog.FieldPath, path).Msg("created IndexNow key file")
		return
	}
	logger.Info().Str(vlog.FieldEvent, "indexnow.keyfile_exists").Str(vlog.FieldPath, path).Msg("IndexNow key file already present")
}

func runNotify(ctx context.Context, logger zerolog.Logger, cfg config.AppConfig) {
	ledger, closeLedger := openLedger(ctx, logger, cfg)
	defer closeLedger()

	client := indexnow.NewClient(cfg.IndexNow.Endpoint, httpx.NewClient(cfg.IndexNow.Timeout))
	n, err := indexnow.NewNotifier(indexnow.Config{
		SiteURL:       cfg.Site.URL,
		Key:           cfg.IndexNow.Key,
		ChunkInterval: cfg.IndexNow.ChunkInterval,
	}, catalog.NewFileSource(cfg.Catalog.Path), ledger, client)
	if err != nil {
		closeLedger()
		logger.Fatal().Err(err).Str(vlog.FieldEvent, "indexnow.precondition_failed").Msg("cannot notify IndexNow")
	}

	logger.Info().
		Str(vlog.FieldEvent, "indexnow.start").
		Str("host", n.Host()).
		Str("key_location", n.KeyLocation()).
		Str("endpoint", client.Endpoint()).
		Msg("starting IndexNow notification")

	report, err := n.Run(ctx)
	if err != nil {
		closeLedger()
		logger.Fatal().Err(err).Str(vlog.FieldEvent, "indexnow.run_failed").Msg("IndexNow notification failed")
	}
	logger.Info().
		Str(vlog.FieldEvent, "indexnow.done").
		Int("current", report.Current).
		Int("pending", report.Pending).
		Int("submitted", report.Submitted).
		Int("chunks", report.Chunks).
		Int("failed_chunks", report.FailedChunks).
		Msg("IndexNow notification finished")
}

// openLedger prefers Redis when an address is configured and falls back to
// the JSON file otherwise.
func openLedger(ctx context.Context, logger zerolog.Logger, cfg config.AppConfig) (indexnow.Ledger, func()) {
	if cfg.IndexNow.RedisAddr != "" {
		rl, err := indexnow.NewRedisLedger(ctx, indexnow.RedisConfig{
			Addr:     cfg.IndexNow.RedisAddr,
			Password: cfg.IndexNow.RedisPassword,
			DB:       cfg.IndexNow.RedisDB,
			Key:      cfg.IndexNow.RedisKey,
		})
		if err == nil {
			logger.Info().Str(vlog.FieldEvent, "indexnow.ledger_redis").Str("key", rl.Key()).Msg("using redis ledger")
			return rl, func() { _ = rl.Close() }
		}
		logger.Warn().Err(err).Str(vlog.FieldEvent, "indexnow.redis_unavailable").Msg("falling back to file ledger")
	}
	fl := indexnow.NewFileLedger(cfg.IndexNow.CachePath)
	logger.Info().Str(vlog.FieldEvent, "indexnow.ledger_file").Str(vlog.FieldPath, fl.Path()).Msg("using file ledger")
	return fl, func() {}
}
