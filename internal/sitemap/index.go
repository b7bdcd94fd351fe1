package sitemap

import (
	"bytes"
	"fmt"

	"github.com/vidsite/vidsite/internal/metrics"
)

// children are the documents listed by the sitemap index, in order.
var children = []Kind{KindGeneral, KindVideo, KindImage}

// BuildIndex renders sitemap.xml. It lists the three child sitemaps with one
// shared lastmod and never reads the catalog.
func (b *Builder) BuildIndex() ([]byte, error) {
	lastmod := b.timestamp()

	buf := &bytes.Buffer{}
	buf.WriteString(xmlHeader)
	fmt.Fprintf(buf, "<sitemapindex xmlns=%q>\n", nsSitemap)
	for _, k := range children {
		buf.WriteString("  <sitemap>\n")
		fmt.Fprintf(buf, "    <loc>%s</loc>\n", EscapeXML(b.site.BaseURL+"/"+k.Filename()))
		fmt.Fprintf(buf, "    <lastmod>%s</lastmod>\n", lastmod)
		buf.WriteString("  </sitemap>\n")
	}
	buf.WriteString("</sitemapindex>\n")

	metrics.SetSitemapEntries(string(KindIndex), len(children))
	return buf.Bytes(), nil
}
