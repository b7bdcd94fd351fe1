package sitemap

import (
	"context"
	"encoding/xml"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidsite/vidsite/internal/catalog"
)

func TestService_Render(t *testing.T) {
	svc := NewService(newTestBuilder(t), catalog.Static(testVideos))

	for _, k := range Kinds {
		doc, err := svc.Render(context.Background(), k)
		require.NoError(t, err, k)
		assert.NotEmpty(t, doc)
	}
}

func TestService_CatalogFailure(t *testing.T) {
	boom := errors.New("disk on fire")
	src := catalog.SourceFunc(func(context.Context) ([]catalog.Video, error) {
		return nil, boom
	})
	svc := NewService(newTestBuilder(t), src)

	_, err := svc.Render(context.Background(), KindVideo)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.ErrorIs(t, err, boom)

	// The index never touches the catalog.
	doc, err := svc.Render(context.Background(), KindIndex)
	require.NoError(t, err)
	var idx xmlIndex
	require.NoError(t, xml.Unmarshal(doc, &idx))
	assert.Len(t, idx.Sitemaps, 3)
}

func TestService_IndexWithEmptyCatalog(t *testing.T) {
	svc := NewService(newTestBuilder(t), catalog.Static(nil))
	doc, err := svc.Render(context.Background(), KindIndex)
	require.NoError(t, err)
	var idx xmlIndex
	require.NoError(t, xml.Unmarshal(doc, &idx))
	assert.Len(t, idx.Sitemaps, 3)
}

func TestService_UnknownKind(t *testing.T) {
	svc := NewService(newTestBuilder(t), catalog.Static(nil))
	_, err := svc.Render(context.Background(), Kind("bogus"))
	assert.Error(t, err)
}
