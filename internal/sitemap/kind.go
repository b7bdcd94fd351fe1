package sitemap

import "fmt"

// Kind identifies one of the sitemap documents.
type Kind string

const (
	KindIndex   Kind = "index"
	KindGeneral Kind = "general"
	KindVideo   Kind = "video"
	KindImage   Kind = "image"
)

// Kinds lists every document kind, index first.
var Kinds = []Kind{KindIndex, KindGeneral, KindVideo, KindImage}

// Filename is the path of the document relative to the site root.
func (k Kind) Filename() string {
	switch k {
	case KindIndex:
		return "sitemap.xml"
	case KindGeneral:
		return "sitemap_general.xml"
	case KindVideo:
		return "video-sitemap.xml"
	case KindImage:
		return "image-sitemap.xml"
	default:
		return ""
	}
}

// ParseKind maps a document filename back to its Kind.
func ParseKind(filename string) (Kind, error) {
	for _, k := range Kinds {
		if k.Filename() == filename {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sitemap %q", filename)
}
