package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instrument names. Prometheus remains the primary metrics surface; these
// mirror the render and submission counters on whatever MeterProvider the
// process installs globally.
const (
	SitemapRenderCounter = "vidsite.sitemap.renders"
	IndexNowChunkCounter = "vidsite.indexnow.chunks"
	meterNameSitemap     = "vidsite/sitemap"
	meterNameIndexNow    = "vidsite/indexnow"
	outcomeAttributeKey  = "outcome"
)

// RecordSitemapRender adds one render to the OpenTelemetry counter. The
// provider is looked up per call so a MeterProvider installed after start-up
// is honored.
func RecordSitemapRender(ctx context.Context, kind, outcome string) {
	meter := otel.GetMeterProvider().Meter(meterNameSitemap)
	c, err := meter.Int64Counter(SitemapRenderCounter, metric.WithDescription("Sitemap document renders"))
	if err != nil {
		return
	}
	c.Add(ctx, 1, metric.WithAttributes(
		attribute.String(SitemapKindKey, kind),
		attribute.String(outcomeAttributeKey, outcome),
	))
}

// RecordIndexNowChunk adds one chunk submission of n URLs.
func RecordIndexNowChunk(ctx context.Context, outcome string, n int) {
	meter := otel.GetMeterProvider().Meter(meterNameIndexNow)
	c, err := meter.Int64Counter(IndexNowChunkCounter, metric.WithDescription("IndexNow chunk submissions"))
	if err != nil {
		return
	}
	c.Add(ctx, 1, metric.WithAttributes(
		attribute.String(outcomeAttributeKey, outcome),
		attribute.Int(IndexNowURLCountKey, n),
	))
}
