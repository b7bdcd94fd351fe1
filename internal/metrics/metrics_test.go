package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromhttpExposure(t *testing.T) {
	SetCatalogVideos(3)
	RecordSitemapRender("video", "success")

	srv := httptest.NewServer(promhttp.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	for _, name := range []string{"vidsite_catalog_videos 3", "vidsite_sitemap_renders_total"} {
		assert.True(t, strings.Contains(string(body), name), "missing %s", name)
	}
}

func TestRecordSitemapRender(t *testing.T) {
	before := testutil.ToFloat64(sitemapRenders.WithLabelValues("image", "cached"))
	RecordSitemapRender("image", "cached")
	RecordSitemapRender("image", "cached")
	assert.Equal(t, before+2, testutil.ToFloat64(sitemapRenders.WithLabelValues("image", "cached")))
}

func TestSetSitemapEntries(t *testing.T) {
	SetSitemapEntries("general", 12)
	assert.Equal(t, 12.0, testutil.ToFloat64(sitemapEntries.WithLabelValues("general")))
	SetSitemapEntries("general", 4)
	assert.Equal(t, 4.0, testutil.ToFloat64(sitemapEntries.WithLabelValues("general")))
}

func TestRecordSitemapSkip(t *testing.T) {
	before := testutil.ToFloat64(sitemapRecordsSkipped.WithLabelValues("video", "missing_id"))
	RecordSitemapSkip("video", "missing_id")
	assert.Equal(t, before+1, testutil.ToFloat64(sitemapRecordsSkipped.WithLabelValues("video", "missing_id")))
}

func TestRecordIndexNowChunk(t *testing.T) {
	chunksBefore := testutil.ToFloat64(indexNowChunks.WithLabelValues("failure"))
	urlsBefore := testutil.ToFloat64(indexNowURLs.WithLabelValues("failure"))

	RecordIndexNowChunk("failure", 250)

	assert.Equal(t, chunksBefore+1, testutil.ToFloat64(indexNowChunks.WithLabelValues("failure")))
	assert.Equal(t, urlsBefore+250, testutil.ToFloat64(indexNowURLs.WithLabelValues("failure")))
}
