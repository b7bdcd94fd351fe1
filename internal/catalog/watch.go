package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	vlog "github.com/vidsite/vidsite/internal/log"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher reloads a FileSource when its file changes on disk.
type Watcher struct {
	source   *FileSource
	debounce time.Duration
	logger   zerolog.Logger

	mu        sync.Mutex
	listeners []func()
	watcher   *fsnotify.Watcher
	done      chan struct{}
}

// NewWatcher creates a watcher for source. Call Start to begin watching.
func NewWatcher(source *FileSource) *Watcher {
	return &Watcher{
		source:   source,
		debounce: defaultDebounce,
		logger:   vlog.WithComponent("catalog"),
	}
}

// OnReload registers fn to run after each successful reload.
func (w *Watcher) OnReload(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, fn)
}

// Start watches the catalog's directory (editors and deploy tools often
// replace the file via rename) until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(w.source.Path())
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return fmt.Errorf("watch catalog dir: %w", err)
	}

	w.mu.Lock()
	w.watcher = fw
	w.done = make(chan struct{})
	w.mu.Unlock()

	w.logger.Info().
		Str(vlog.FieldEvent, "catalog.watcher_started").
		Str(vlog.FieldPath, w.source.Path()).
		Msg("watching catalog for changes")

	go w.loop(ctx, fw)
	return nil
}

// Done is closed once the watch loop has exited.
func (w *Watcher) Done() <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.done
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher) {
	defer close(w.done)
	defer func() { _ = fw.Close() }()

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	target := filepath.Clean(w.source.Path())

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Str(vlog.FieldEvent, "catalog.watcher_stopped").Msg("catalog watcher stopped")
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() { w.reload(ctx) })

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Error().
				Err(err).
				Str(vlog.FieldEvent, "catalog.watcher_error").
				Msg("catalog watcher error")
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := w.source.Reload(ctx); err != nil {
		w.logger.Error().
			Err(err).
			Str(vlog.FieldEvent, "catalog.auto_reload_failed").
			Msg("automatic catalog reload failed, keeping previous snapshot")
		return
	}
	w.mu.Lock()
	listeners := append([]func(){}, w.listeners...)
	w.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}
