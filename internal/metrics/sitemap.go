// Package metrics holds the Prometheus collectors for vidsite's domain events.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sitemapRenders = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidsite_sitemap_renders_total",
		Help: "Sitemap document renders by sitemap and outcome",
	}, []string{"sitemap", "outcome"}) // outcome=success|failure|cached

	sitemapEntries = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vidsite_sitemap_entries",
		Help: "Number of <url> or <sitemap> entries in the last rendered document",
	}, []string{"sitemap"})

	sitemapRecordsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidsite_sitemap_records_skipped_total",
		Help: "Catalog records skipped while rendering a sitemap, by reason",
	}, []string{"sitemap", "reason"})

	catalogVideos = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vidsite_catalog_videos",
		Help: "Number of records in the currently loaded catalog",
	})
)

// RecordSitemapRender counts one render attempt.
func RecordSitemapRender(sitemap, outcome string) {
	sitemapRenders.WithLabelValues(sitemap, outcome).Inc()
}

// SetSitemapEntries records how many entries the last document contained.
func SetSitemapEntries(sitemap string, n int) {
	sitemapEntries.WithLabelValues(sitemap).Set(float64(n))
}

// RecordSitemapSkip counts a catalog record left out of a sitemap.
func RecordSitemapSkip(sitemap, reason string) {
	sitemapRecordsSkipped.WithLabelValues(sitemap, reason).Inc()
}

// SetCatalogVideos records the size of the loaded catalog.
func SetCatalogVideos(n int) {
	catalogVideos.Set(float64(n))
}
