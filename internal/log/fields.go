package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldService   = "service"
	FieldVersion   = "version"
	FieldRequestID = "request_id"
	FieldVideoID   = "video_id"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"

	// Sitemap fields
	FieldSitemap = "sitemap"
	FieldReason  = "reason"

	// IndexNow fields
	FieldChunk    = "chunk"
	FieldURLCount = "url_count"
	FieldStatus   = "status"

	// Path / URL fields
	FieldPath    = "path"
	FieldBaseURL = "base_url"
)
