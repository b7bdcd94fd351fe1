package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	indexNowChunks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidsite_indexnow_chunks_total",
		Help: "IndexNow chunk submissions by outcome",
	}, []string{"outcome"}) // outcome=success|failure

	indexNowURLs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidsite_indexnow_urls_total",
		Help: "URLs sent to IndexNow by outcome",
	}, []string{"outcome"})
)

// RecordIndexNowChunk counts one submitted chunk of n URLs.
func RecordIndexNowChunk(outcome string, n int) {
	indexNowChunks.WithLabelValues(outcome).Inc()
	indexNowURLs.WithLabelValues(outcome).Add(float64(n))
}
