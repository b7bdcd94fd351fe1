package sitemap

import (
	"bytes"
	"fmt"

	"github.com/vidsite/vidsite/internal/catalog"
	"github.com/vidsite/vidsite/internal/metrics"
	"github.com/vidsite/vidsite/internal/slug"
)

type urlEntry struct {
	loc        string
	lastmod    string
	changefreq string
	priority   string
}

func writeURL(buf *bytes.Buffer, e urlEntry) {
	fmt.Fprintf(buf,
		"  <url><loc>%s</loc><lastmod>%s</lastmod><changefreq>%s</changefreq><priority>%s</priority></url>\n",
		EscapeXML(e.loc), EscapeXML(e.lastmod), e.changefreq, e.priority)
}

// BuildGeneral renders sitemap_general.xml: the static top-level pages, one
// entry per video and one per distinct category.
func (b *Builder) BuildGeneral(videos []catalog.Video) ([]byte, error) {
	base := b.site.BaseURL
	now := b.timestamp()

	entries := []urlEntry{
		{loc: base + "/", lastmod: now, changefreq: "daily", priority: "1.0"},
		{loc: base + "/category/", lastmod: now, changefreq: "weekly", priority: "0.8"},
		{loc: base + "/tags/", lastmod: now, changefreq: "weekly", priority: "0.8"},
	}

	seen := make(map[string]struct{})
	var categories []string
	for _, v := range videos {
		if v.ID == "" {
			b.skip(KindGeneral, v.ID, reasonMissingID)
			continue
		}
		entries = append(entries, urlEntry{
			loc:        DetailURL(base, v),
			lastmod:    v.LastModified(now),
			changefreq: "weekly",
			priority:   "0.7",
		})
		if v.Category == "" {
			continue
		}
		if _, ok := seen[v.Category]; !ok {
			seen[v.Category] = struct{}{}
			categories = append(categories, v.Category)
		}
	}
	for _, c := range categories {
		entries = append(entries, urlEntry{
			loc:        base + "/category/" + slug.Make(c) + "/",
			lastmod:    now,
			changefreq: "daily",
			priority:   "0.9",
		})
	}

	buf := &bytes.Buffer{}
	buf.WriteString(xmlHeader)
	fmt.Fprintf(buf, "<urlset xmlns=%q>\n", nsSitemap)
	for _, e := range entries {
		writeURL(buf, e)
	}
	buf.WriteString("</urlset>\n")

	metrics.SetSitemapEntries(string(KindGeneral), len(entries))
	return buf.Bytes(), nil
}
