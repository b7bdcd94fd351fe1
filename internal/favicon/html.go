package favicon

import (
	"fmt"
	"html"
	"strings"
)

// htmlTags returns the <head> tags for the generated assets, one per line.
func htmlTags(cfg Config, assets []asset) []string {
	attr := html.EscapeString
	var tags []string

	tags = append(tags, fmt.Sprintf(`<link rel="icon" type="image/x-icon" href="%s">`, attr(cfg.href(icoName))))
	for _, a := range assets {
		if a.kind == kindFavicon {
			tags = append(tags, fmt.Sprintf(`<link rel="icon" type="image/png" sizes="%dx%d" href="%s">`,
				a.size, a.size, attr(cfg.href(a.name))))
		}
	}

	tags = append(tags,
		fmt.Sprintf(`<link rel="manifest" href="%s">`, attr(cfg.href(manifestName))),
		`<meta name="mobile-web-app-capable" content="yes">`,
		fmt.Sprintf(`<meta name="theme-color" content="%s">`, attr(cfg.ThemeColor)),
		fmt.Sprintf(`<meta name="application-name" content="%s">`, attr(cfg.AppName)),
	)

	for _, a := range assets {
		if a.kind == kindApple {
			tags = append(tags, fmt.Sprintf(`<link rel="apple-touch-icon" sizes="%dx%d" href="%s">`,
				a.size, a.size, attr(cfg.href(a.name))))
		}
	}
	tags = append(tags,
		`<meta name="apple-mobile-web-app-capable" content="yes">`,
		`<meta name="apple-mobile-web-app-status-bar-style" content="black-translucent">`,
		fmt.Sprintf(`<meta name="apple-mobile-web-app-title" content="%s">`, attr(cfg.AppName)),
	)
	return tags
}

func joinTags(tags []string) string {
	return strings.Join(tags, "\n")
}
