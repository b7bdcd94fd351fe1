package favicon

import (
	"encoding/json"
	"fmt"
)

type manifestIcon struct {
	Src     string `json:"src"`
	Sizes   string `json:"sizes"`
	Type    string `json:"type"`
	Purpose string `json:"purpose"`
}

type webManifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Description     string         `json:"description"`
	Dir             string         `json:"dir"`
	Display         string         `json:"display"`
	Orientation     string         `json:"orientation"`
	StartURL        string         `json:"start_url"`
	Scope           string         `json:"scope"`
	BackgroundColor string         `json:"background_color"`
	ThemeColor      string         `json:"theme_color"`
	Icons           []manifestIcon `json:"icons"`
}

func buildManifest(cfg Config, icons []asset) ([]byte, error) {
	m := webManifest{
		Name:            cfg.AppName,
		ShortName:       cfg.AppName,
		Description:     cfg.AppDescription,
		Dir:             "auto",
		Display:         cfg.Display,
		Orientation:     cfg.Orientation,
		StartURL:        "/?homescreen=1",
		Scope:           "/",
		BackgroundColor: cfg.Background,
		ThemeColor:      cfg.ThemeColor,
	}
	for _, a := range icons {
		if a.kind != kindAndroid {
			continue
		}
		m.Icons = append(m.Icons, manifestIcon{
			Src:     cfg.href(a.name),
			Sizes:   fmt.Sprintf("%dx%d", a.size, a.size),
			Type:    "image/png",
			Purpose: "any",
		})
	}
	return json.MarshalIndent(m, "", "  ")
}
