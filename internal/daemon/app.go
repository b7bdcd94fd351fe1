package daemon

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/vidsite/vidsite/internal/catalog"
)

// App owns the long-lived runtime: the catalog watcher, SIGHUP reloads and
// the server Manager.
type App struct {
	logger       zerolog.Logger
	manager      Manager
	source       *catalog.FileSource
	watch        bool
	onReload     func()
	reloadSignal os.Signal
}

// NewApp creates a new App orchestrator. onReload runs after every
// successful catalog reload, whether triggered by fsnotify or SIGHUP.
func NewApp(logger zerolog.Logger, manager Manager, source *catalog.FileSource, watch bool, onReload func()) *App {
	return &App{
		logger:       logger,
		manager:      manager,
		source:       source,
		watch:        watch,
		onReload:     onReload,
		reloadSignal: syscall.SIGHUP,
	}
}

// Run starts the background subsystems and blocks until ctx is cancelled or
// the manager fails.
func (a *App) Run(ctx context.Context) error {
	if a.manager == nil {
		return ErrMissingManager
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	// The watcher is best-effort: a missing directory should not block serving.
	if a.watch && a.source != nil {
		w := catalog.NewWatcher(a.source)
		if a.onReload != nil {
			w.OnReload(a.onReload)
		}
		if err := w.Start(gctx); err != nil {
			a.logger.Warn().Err(err).Str("event", "catalog.watcher_start_failed").Msg("failed to start catalog watcher")
		} else {
			g.Go(func() error {
				<-w.Done()
				return nil
			})
		}
	}

	if a.source != nil && a.reloadSignal != nil {
		g.Go(func() error {
			hupChan := make(chan os.Signal, 1)
			signal.Notify(hupChan, a.reloadSignal)
			defer signal.Stop(hupChan)

			for {
				select {
				case <-gctx.Done():
					return nil
				case <-hupChan:
					a.reload(gctx)
				}
			}
		})
	}

	g.Go(func() error {
		defer cancel()
		return a.manager.Start(gctx)
	})

	return g.Wait()
}

func (a *App) reload(ctx context.Context) {
	a.logger.Info().
		Str("event", "catalog.reload_signal").
		Str("signal", a.reloadSignal.String()).
		Msg("received reload signal, reloading catalog")

	if err := a.source.Reload(ctx); err != nil {
		a.logger.Warn().Err(err).Str("event", "catalog.reload_failed").Msg("catalog reload failed")
		return
	}
	if a.onReload != nil {
		a.onReload()
	}
}

// WaitForShutdown returns a context cancelled on SIGINT or SIGTERM.
func WaitForShutdown() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
