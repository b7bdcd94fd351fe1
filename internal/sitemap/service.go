package sitemap

import (
	"context"
	"errors"
	"fmt"

	"github.com/vidsite/vidsite/internal/catalog"
	"github.com/vidsite/vidsite/internal/metrics"
	"github.com/vidsite/vidsite/internal/telemetry"
)

// ErrCatalogUnavailable wraps catalog load failures during a render.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// Service renders documents by kind, reading the catalog on demand.
type Service struct {
	builder *Builder
	source  catalog.Source
}

// NewService binds a builder to a catalog source.
func NewService(builder *Builder, source catalog.Source) *Service {
	return &Service{builder: builder, source: source}
}

// Builder returns the underlying builder.
func (s *Service) Builder() *Builder { return s.builder }

// Render produces the document for kind.
func (s *Service) Render(ctx context.Context, kind Kind) ([]byte, error) {
	doc, err := s.render(ctx, kind)
	if err != nil {
		metrics.RecordSitemapRender(string(kind), "failure")
		telemetry.RecordSitemapRender(ctx, string(kind), "failure")
		return nil, err
	}
	metrics.RecordSitemapRender(string(kind), "success")
	telemetry.RecordSitemapRender(ctx, string(kind), "success")
	return doc, nil
}

func (s *Service) render(ctx context.Context, kind Kind) ([]byte, error) {
	if kind == KindIndex {
		return s.builder.BuildIndex()
	}

	videos, err := s.source.Videos(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	switch kind {
	case KindGeneral:
		return s.builder.BuildGeneral(videos)
	case KindVideo:
		return s.builder.BuildVideo(videos)
	case KindImage:
		return s.builder.BuildImage(videos)
	default:
		return nil, fmt.Errorf("unknown sitemap kind %q", kind)
	}
}
