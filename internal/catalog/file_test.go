package catalog

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `[
  {
    "id": "101",
    "title": "Café Élan",
    "description": "desc",
    "category": "Travel",
    "thumbnail": "/thumbs/101.jpg",
    "thumbnailWidth": 640,
    "thumbnailHeight": 360,
    "embedUrl": "https://cdn.example.com/e/101",
    "tags": "coffee,paris",
    "datePublished": "2024-01-02T03:04:05.000Z",
    "duration": "1:30"
  },
  {
    "id": "102",
    "title": "Second",
    "category": "Travel",
    "thumbnail": "https://img.example.com/102.jpg",
    "embedUrl": "/embed/102",
    "tags": ""
  }
]`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "videos.json")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestFileSource_LoadsOnce(t *testing.T) {
	p := writeCatalog(t, sampleCatalog)
	src := NewFileSource(p)

	videos, err := src.Videos(context.Background())
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "101", videos[0].ID)
	assert.Equal(t, 640, videos[0].ThumbnailWidth)
	assert.Equal(t, "1:30", videos[0].Duration)
	assert.Equal(t, "/embed/102", videos[1].EmbedURL)

	// The snapshot survives the file disappearing.
	require.NoError(t, os.Remove(p))
	again, err := src.Videos(context.Background())
	require.NoError(t, err)
	assert.Len(t, again, 2)
}

func TestFileSource_ConcurrentFirstLoad(t *testing.T) {
	src := NewFileSource(writeCatalog(t, sampleCatalog))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			videos, err := src.Videos(context.Background())
			assert.NoError(t, err)
			assert.Len(t, videos, 2)
		}()
	}
	wg.Wait()
}

func TestFileSource_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		invalid bool
	}{
		{name: "object instead of array", content: `{"id":"1"}`, invalid: true},
		{name: "empty file", content: ``, invalid: true},
		{name: "broken json", content: `[{"id":`, invalid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFileSource(writeCatalog(t, tt.content)).Videos(context.Background())
			require.Error(t, err)
			if tt.invalid {
				assert.ErrorIs(t, err, ErrInvalidCatalog)
			}
		})
	}

	_, err := NewFileSource(filepath.Join(t.TempDir(), "missing.json")).Videos(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileSource_ReloadKeepsSnapshotOnError(t *testing.T) {
	p := writeCatalog(t, sampleCatalog)
	src := NewFileSource(p)
	_, err := src.Videos(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(p, []byte("not json"), 0o600))
	require.Error(t, src.Reload(context.Background()))

	videos, err := src.Videos(context.Background())
	require.NoError(t, err)
	assert.Len(t, videos, 2)
}

func TestDecode_EmptyArray(t *testing.T) {
	videos, err := Decode([]byte(" [] "))
	require.NoError(t, err)
	assert.NotNil(t, videos)
	assert.Empty(t, videos)
}

func TestVideo_LastModified(t *testing.T) {
	assert.Equal(t, "m", Video{DateModified: "m", DatePublished: "p"}.LastModified("f"))
	assert.Equal(t, "p", Video{DatePublished: "p"}.LastModified("f"))
	assert.Equal(t, "f", Video{}.LastModified("f"))
}
