package robots

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var sitemapLine = regexp.MustCompile(`(?im)^\s*Sitemap:\s*(.+?)\s*$`)

func sitemapURLs(text string) []string {
	var urls []string
	for _, m := range sitemapLine.FindAllStringSubmatch(text, -1) {
		urls = append(urls, m[1])
	}
	return urls
}

func TestDocument_SitemapLine(t *testing.T) {
	for _, base := range []string{"https://vids.example.com", "https://vids.example.com/", "http://localhost:8080"} {
		doc := Document(base)
		want := strings.TrimRight(base, "/") + "/sitemap.xml"
		assert.Equal(t, []string{want}, sitemapURLs(doc), base)
	}
}

func TestDocument_Policy(t *testing.T) {
	doc := Document("https://vids.example.com")
	assert.True(t, strings.HasPrefix(doc, "User-agent: *\n"))
	for _, line := range []string{
		"Disallow: /?s=*",
		"Disallow: /?q=*",
		"Disallow: /search/*",
		"Allow: /",
		"Allow: /video/*",
		"Allow: /category/*",
	} {
		assert.Contains(t, doc, line+"\n")
	}
}
