// Package favicon renders the site's favicon set (ICO, PNG sizes, web app
// manifest) from one source image and produces the matching <head> tags.
package favicon

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Config mirrors the app metadata embedded in the manifest and HTML tags.
type Config struct {
	// Path is prepended to every asset href, e.g. "https://example.com/".
	Path           string
	AppName        string
	AppDescription string
	DeveloperName  string
	DeveloperURL   string
	Background     string
	ThemeColor     string
	Display        string
	Orientation    string
	Version        string
}

// DefaultConfig returns the site defaults: white background and theme,
// standalone display, portrait orientation.
func DefaultConfig(siteURL, name, description string) Config {
	base := strings.TrimRight(siteURL, "/")
	return Config{
		Path:           base + "/",
		AppName:        name,
		AppDescription: description,
		DeveloperName:  name,
		DeveloperURL:   base,
		Background:     "#ffffff",
		ThemeColor:     "#ffffff",
		Display:        "standalone",
		Orientation:    "portrait",
		Version:        "1.0",
	}
}

func (c Config) href(name string) string {
	p := c.Path
	if p == "" {
		p = "/"
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p + name
}

// parseHexColor accepts #rgb and #rrggbb.
func parseHexColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
