package sitemap

import (
	"errors"
	"net/url"
	"strings"

	"github.com/vidsite/vidsite/internal/catalog"
	"github.com/vidsite/vidsite/internal/slug"
)

// ErrSiteURLMissing is returned when no site base URL is configured.
var ErrSiteURLMissing = errors.New("site URL is not defined")

// Site is the public identity of the website the sitemaps describe.
type Site struct {
	// BaseURL is the absolute site URL without a trailing slash.
	BaseURL string
	// Name is used in generated descriptions and captions.
	Name string
	// Published is the default publication timestamp for records without
	// one. Empty means "now".
	Published string
}

// NewSite normalizes rawURL and fills Name from the host when empty.
func NewSite(rawURL, name, published string) (Site, error) {
	base := strings.TrimRight(strings.TrimSpace(rawURL), "/")
	if base == "" {
		return Site{}, ErrSiteURLMissing
	}
	s := Site{BaseURL: base, Name: name, Published: published}
	if s.Name == "" {
		s.Name = s.Host()
	}
	return s, nil
}

// Host returns the hostname of BaseURL, or "" if it does not parse.
func (s Site) Host() string {
	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// DetailURL is the canonical page URL of a video: {base}/{slug(title)}-{id}/.
func DetailURL(base string, v catalog.Video) string {
	return base + "/" + slug.Make(v.Title) + "-" + v.ID + "/"
}

// absolute joins relative paths onto base; http(s) URLs pass through.
func absolute(base, ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if ref != "" && !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return base + ref
}
