// Package sitemap renders the XML sitemaps (general, video, image and the
// index that links them) from the video catalog.
package sitemap

import (
	"time"

	"github.com/rs/zerolog"
	vlog "github.com/vidsite/vidsite/internal/log"
	"github.com/vidsite/vidsite/internal/metrics"
)

// TimeFormat is the timestamp layout used in lastmod and publication dates:
// UTC with millisecond precision.
const TimeFormat = "2006-01-02T15:04:05.000Z"

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

const (
	nsSitemap = "http://www.sitemaps.org/schemas/sitemap/0.9"
	nsVideo   = "http://www.google.com/schemas/sitemap-video/1.1"
	nsImage   = "http://www.google.com/schemas/sitemap-image/1.1"
)

// Skip reasons reported in logs and metrics.
const (
	reasonMissingID        = "missing_id"
	reasonMissingTitle     = "missing_title"
	reasonMissingThumbnail = "missing_thumbnail"
	reasonMissingEmbedURL  = "missing_embed_url"
)

// Builder renders sitemap documents for one Site.
type Builder struct {
	site   Site
	now    func() time.Time
	logger zerolog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithClock overrides the time source used for "now" timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// WithLogger overrides the builder logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// NewBuilder returns a Builder for site. It fails with ErrSiteURLMissing when
// the site has no base URL.
func NewBuilder(site Site, opts ...Option) (*Builder, error) {
	if site.BaseURL == "" {
		return nil, ErrSiteURLMissing
	}
	b := &Builder{
		site:   site,
		now:    time.Now,
		logger: vlog.WithComponent("sitemap"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Site returns the site the builder renders for.
func (b *Builder) Site() Site { return b.site }

func (b *Builder) timestamp() string {
	return b.now().UTC().Format(TimeFormat)
}

// defaultPublished is the configured site publication date, or now.
func (b *Builder) defaultPublished() string {
	if b.site.Published != "" {
		return b.site.Published
	}
	return b.timestamp()
}

func (b *Builder) skip(kind Kind, id, reason string) {
	metrics.RecordSitemapSkip(string(kind), reason)
	b.logger.Warn().
		Str(vlog.FieldEvent, "sitemap.record_skipped").
		Str(vlog.FieldSitemap, string(kind)).
		Str(vlog.FieldVideoID, id).
		Str(vlog.FieldReason, reason).
		Msg("skipping catalog record")
}
