package catalog

import (
	"context"
	"errors"
)

// ErrInvalidCatalog is returned when the catalog file is not a JSON array of records.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Source provides the catalog. Implementations return a snapshot that callers
// must treat as read-only; it may be shared between concurrent requests.
type Source interface {
	Videos(ctx context.Context) ([]Video, error)
}

// Static is an in-memory Source, mainly for tests and fixtures.
type Static []Video

// Videos implements Source.
func (s Static) Videos(context.Context) ([]Video, error) {
	return s, nil
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) ([]Video, error)

// Videos implements Source.
func (f SourceFunc) Videos(ctx context.Context) ([]Video, error) {
	return f(ctx)
}
