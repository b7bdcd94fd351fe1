package sitemap

import (
	"bytes"
	"fmt"

	"github.com/vidsite/vidsite/internal/catalog"
	"github.com/vidsite/vidsite/internal/metrics"
)

type imageEntry struct {
	loc      string
	lastmod  string
	imageLoc string
	caption  string
	title    string
}

func writeImageEntry(buf *bytes.Buffer, e imageEntry) {
	buf.WriteString("  <url>\n")
	fmt.Fprintf(buf, "    <loc>%s</loc>\n", EscapeXML(e.loc))
	fmt.Fprintf(buf, "    <lastmod>%s</lastmod>\n", EscapeXML(e.lastmod))
	buf.WriteString("    <image:image>\n")
	fmt.Fprintf(buf, "      <image:loc>%s</image:loc>\n", EscapeXML(e.imageLoc))
	fmt.Fprintf(buf, "      <image:caption>%s</image:caption>\n", EscapeXML(e.caption))
	fmt.Fprintf(buf, "      <image:title>%s</image:title>\n", EscapeXML(e.title))
	buf.WriteString("    </image:image>\n")
	buf.WriteString("  </url>\n")
}

// BuildImage renders image-sitemap.xml: the site logo on the home page and
// one thumbnail per titled video.
func (b *Builder) BuildImage(videos []catalog.Video) ([]byte, error) {
	base := b.site.BaseURL
	published := b.defaultPublished()
	logo := "Logo " + b.site.Host()

	buf := &bytes.Buffer{}
	buf.WriteString(xmlHeader)
	fmt.Fprintf(buf, "<urlset xmlns=%q\n        xmlns:image=%q>\n", nsSitemap, nsImage)

	writeImageEntry(buf, imageEntry{
		loc:      base + "/",
		lastmod:  published,
		imageLoc: base + "/logo.png",
		caption:  logo,
		title:    logo,
	})
	n := 1

	for _, v := range videos {
		switch {
		case v.ID == "":
			b.skip(KindImage, v.ID, reasonMissingID)
			continue
		case v.Title == "":
			b.skip(KindImage, v.ID, reasonMissingTitle)
			continue
		case v.Thumbnail == "":
			b.skip(KindImage, v.ID, reasonMissingThumbnail)
			continue
		}
		writeImageEntry(buf, imageEntry{
			loc:      DetailURL(base, v),
			lastmod:  v.LastModified(published),
			imageLoc: absolute(base, v.Thumbnail),
			caption:  fmt.Sprintf("Video %s kategori %s di %s", v.Title, v.Category, b.site.Name),
			title:    v.Title,
		})
		n++
	}
	buf.WriteString("</urlset>\n")

	metrics.SetSitemapEntries(string(KindImage), n)
	return buf.Bytes(), nil
}
