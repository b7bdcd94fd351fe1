package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Common attribute keys for consistent tracing across the application.
const (
	// HTTP attributes
	HTTPMethodKey     = "http.method"
	HTTPStatusCodeKey = "http.status_code"
	HTTPRouteKey      = "http.route"
	HTTPURLKey        = "http.url"

	// Sitemap attributes
	SitemapKindKey  = "sitemap.kind"
	SitemapBytesKey = "sitemap.bytes"
	SitemapCacheKey = "sitemap.cache_hit"

	// IndexNow attributes
	IndexNowChunkKey    = "indexnow.chunk"
	IndexNowURLCountKey = "indexnow.url_count"
	IndexNowEndpointKey = "indexnow.endpoint"

	// Error attributes
	ErrorKey     = "error"
	ErrorTypeKey = "error.type"
)

// HTTPAttributes creates common HTTP span attributes.
func HTTPAttributes(method, route, url string, statusCode int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(HTTPMethodKey, method),
		attribute.String(HTTPRouteKey, route),
		attribute.String(HTTPURLKey, url),
		attribute.Int(HTTPStatusCodeKey, statusCode),
	}
}

// SitemapAttributes describes one rendered (or cached) sitemap document.
func SitemapAttributes(kind string, size int, cacheHit bool) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(SitemapKindKey, kind),
		attribute.Int(SitemapBytesKey, size),
		attribute.Bool(SitemapCacheKey, cacheHit),
	}
}

// IndexNowAttributes describes one chunk submission.
func IndexNowAttributes(chunk, urlCount int, endpoint string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.Int(IndexNowChunkKey, chunk),
		attribute.Int(IndexNowURLCountKey, urlCount),
	}
	if endpoint != "" {
		attrs = append(attrs, attribute.String(IndexNowEndpointKey, endpoint))
	}
	return attrs
}

// ErrorAttributes creates error-related span attributes.
func ErrorAttributes(err error, errorType string) []attribute.KeyValue {
	if err == nil {
		return nil
	}
	return []attribute.KeyValue{
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorTypeKey, errorType),
	}
}
