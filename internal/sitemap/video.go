package sitemap

import (
	"bytes"
	"fmt"

	"github.com/vidsite/vidsite/internal/catalog"
	"github.com/vidsite/vidsite/internal/metrics"
)

const defaultVideoTitle = "Video"

// BuildVideo renders video-sitemap.xml. Records without an id, thumbnail or
// embed URL are left out.
func (b *Builder) BuildVideo(videos []catalog.Video) ([]byte, error) {
	base := b.site.BaseURL
	published := b.defaultPublished()

	buf := &bytes.Buffer{}
	buf.WriteString(xmlHeader)
	fmt.Fprintf(buf, "<urlset xmlns=%q\n        xmlns:video=%q>\n", nsSitemap, nsVideo)

	n := 0
	for _, v := range videos {
		switch {
		case v.ID == "":
			b.skip(KindVideo, v.ID, reasonMissingID)
			continue
		case v.Thumbnail == "":
			b.skip(KindVideo, v.ID, reasonMissingThumbnail)
			continue
		case v.EmbedURL == "":
			b.skip(KindVideo, v.ID, reasonMissingEmbedURL)
			continue
		}

		title := v.Title
		if title == "" {
			title = defaultVideoTitle
		}
		pubDate := v.DatePublished
		if pubDate == "" {
			pubDate = published
		}
		modDate := v.DateModified
		if modDate == "" {
			modDate = pubDate
		}
		description := fmt.Sprintf("Video %s terbaru nonton streaming di %s", title, b.site.Name)

		buf.WriteString("  <url>\n")
		fmt.Fprintf(buf, "    <loc>%s</loc>\n", EscapeXML(DetailURL(base, v)))
		fmt.Fprintf(buf, "    <lastmod>%s</lastmod>\n", EscapeXML(modDate))
		buf.WriteString("    <changefreq>weekly</changefreq>\n")
		buf.WriteString("    <priority>0.8</priority>\n")
		buf.WriteString("    <video:video>\n")
		fmt.Fprintf(buf, "      <video:thumbnail_loc>%s</video:thumbnail_loc>\n", EscapeXML(absolute(base, v.Thumbnail)))
		fmt.Fprintf(buf, "      <video:title>%s</video:title>\n", EscapeXML(title))
		fmt.Fprintf(buf, "      <video:description>%s</video:description>\n", EscapeXML(description))
		fmt.Fprintf(buf, "      <video:content_loc>%s</video:content_loc>\n", EscapeXML(absolute(base, v.EmbedURL)))
		fmt.Fprintf(buf, "      <video:duration>%d</video:duration>\n", ParseDurationSeconds(v.Duration))
		fmt.Fprintf(buf, "      <video:publication_date>%s</video:publication_date>\n", EscapeXML(pubDate))
		buf.WriteString("    </video:video>\n")
		buf.WriteString("  </url>\n")
		n++
	}
	buf.WriteString("</urlset>\n")

	metrics.SetSitemapEntries(string(KindVideo), n)
	return buf.Bytes(), nil
}
