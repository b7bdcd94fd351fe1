// SPDX-License-Identifier: MIT

package indexnow

import (
	"strings"

	"github.com/vidsite/vidsite/internal/catalog"
	"github.com/vidsite/vidsite/internal/slug"
)

// ChunkSize is the maximum number of URLs per IndexNow request.
const ChunkSize = 10000

const untitledSlug = "untitled-video"

// CurrentURLs returns the detail-page URL of every catalog record with an id,
// in catalog order. Untitled records use the "untitled-video" slug.
func CurrentURLs(baseURL string, videos []catalog.Video) []string {
	base := strings.TrimRight(baseURL, "/")
	urls := make([]string, 0, len(videos))
	for _, v := range videos {
		if v.ID == "" {
			continue
		}
		title := v.Title
		if title == "" {
			title = untitledSlug
		}
		urls = append(urls, base+"/"+slug.Make(title)+"-"+v.ID+"/")
	}
	return urls
}

// Diff returns the elements of current that are not in previous, keeping
// the order of current.
func Diff(previous, current []string) []string {
	seen := make(map[string]struct{}, len(previous))
	for _, u := range previous {
		seen[u] = struct{}{}
	}
	out := make([]string, 0, len(current))
	for _, u := range current {
		if _, ok := seen[u]; !ok {
			out = append(out, u)
		}
	}
	return out
}

// Chunk splits urls into consecutive groups of at most size elements.
// A non-positive size means ChunkSize.
func Chunk(urls []string, size int) [][]string {
	if size <= 0 {
		size = ChunkSize
	}
	var chunks [][]string
	for i := 0; i < len(urls); i += size {
		end := min(i+size, len(urls))
		chunks = append(chunks, urls[i:end:end])
	}
	return chunks
}
