// Package catalog loads the read-only video catalog that backs the sitemaps
// and the IndexNow notifier.
package catalog

// Video is one catalog record. JSON names follow the catalog file.
type Video struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	Thumbnail       string `json:"thumbnail"`
	ThumbnailWidth  int    `json:"thumbnailWidth"`
	ThumbnailHeight int    `json:"thumbnailHeight"`
	DatePublished   string `json:"datePublished,omitempty"`
	DateModified    string `json:"dateModified,omitempty"`
	EmbedURL        string `json:"embedUrl"`
	Tags            string `json:"tags"`
	PreviewURL      string `json:"previewUrl,omitempty"`
	Duration        string `json:"duration,omitempty"`
}

// LastModified returns dateModified, then datePublished, then fallback.
func (v Video) LastModified(fallback string) string {
	if v.DateModified != "" {
		return v.DateModified
	}
	if v.DatePublished != "" {
		return v.DatePublished
	}
	return fallback
}
