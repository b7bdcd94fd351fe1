package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	vlog "github.com/vidsite/vidsite/internal/log"
	"github.com/vidsite/vidsite/internal/metrics"
	"golang.org/x/sync/singleflight"
)

// maxCatalogSize bounds the catalog file read (64 MiB).
const maxCatalogSize = 64 << 20

// FileSource loads the catalog from a JSON file once and serves the decoded
// snapshot until Reload is called.
type FileSource struct {
	path   string
	logger zerolog.Logger

	mu       sync.RWMutex
	snapshot []Video
	loaded   bool

	group singleflight.Group
}

// NewFileSource creates a FileSource for path. Nothing is read until first use.
func NewFileSource(path string) *FileSource {
	return &FileSource{
		path:   filepath.Clean(path),
		logger: vlog.WithComponent("catalog"),
	}
}

// Path returns the catalog file path.
func (s *FileSource) Path() string { return s.path }

// Videos returns the cached snapshot, loading it on first call. Concurrent
// first calls share a single read.
func (s *FileSource) Videos(ctx context.Context) ([]Video, error) {
	s.mu.RLock()
	if s.loaded {
		v := s.snapshot
		s.mu.RUnlock()
		return v, nil
	}
	s.mu.RUnlock()
	return s.load(ctx)
}

// Reload re-reads the file and swaps the snapshot. On error the previous
// snapshot stays in place.
func (s *FileSource) Reload(ctx context.Context) error {
	_, err := s.load(ctx)
	return err
}

func (s *FileSource) load(ctx context.Context) ([]Video, error) {
	ch := s.group.DoChan("load", func() (any, error) {
		videos, err := ReadFile(s.path)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.snapshot = videos
		s.loaded = true
		s.mu.Unlock()
		metrics.SetCatalogVideos(len(videos))

		s.logger.Info().
			Str(vlog.FieldEvent, "catalog.loaded").
			Str(vlog.FieldPath, s.path).
			Int("videos", len(videos)).
			Msg("video catalog loaded")
		return videos, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			s.logger.Error().
				Err(res.Err).
				Str(vlog.FieldEvent, "catalog.load_failed").
				Str(vlog.FieldPath, s.path).
				Msg("failed to load video catalog")
			return nil, res.Err
		}
		return res.Val.([]Video), nil
	}
}

// ReadFile decodes a catalog file. It is used directly by the offline tools.
func ReadFile(path string) ([]Video, error) {
	// #nosec G304 -- catalog path comes from operator configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if len(data) > maxCatalogSize {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidCatalog, maxCatalogSize)
	}
	return Decode(data)
}

// Decode parses a JSON array of videos.
func Decode(data []byte) ([]Video, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrInvalidCatalog)
	}
	var videos []Video
	if err := json.Unmarshal(trimmed, &videos); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if videos == nil {
		videos = []Video{}
	}
	return videos, nil
}
