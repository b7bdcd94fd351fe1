package favicon

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"
	"golang.org/x/image/draw"

	vlog "github.com/vidsite/vidsite/internal/log"
)

const (
	icoName      = "favicon.ico"
	manifestName = "manifest.webmanifest"
)

type assetKind int

const (
	kindFavicon assetKind = iota
	kindApple
	kindAndroid
)

type asset struct {
	name string
	size int
	kind assetKind
}

// assets is the fixed output set: browser favicons, the Apple touch icon and
// the Android home screen icons.
var assets = []asset{
	{"favicon-16x16.png", 16, kindFavicon},
	{"favicon-32x32.png", 32, kindFavicon},
	{"favicon-48x48.png", 48, kindFavicon},
	{"apple-touch-icon.png", 180, kindApple},
	{"android-chrome-192x192.png", 192, kindAndroid},
	{"android-chrome-512x512.png", 512, kindAndroid},
}

var icoSizes = []int{16, 32, 48}

// Result lists what a run produced.
type Result struct {
	Files []string // written paths, including the HTML snippet
	HTML  string
}

// Generator writes the favicon set for one source image.
type Generator struct {
	cfg       Config
	source    Source
	outputDir string
	htmlPath  string
	logger    zerolog.Logger
}

// NewGenerator returns a Generator writing assets into outputDir and the
// HTML snippet to htmlPath. An empty htmlPath skips the snippet file.
func NewGenerator(cfg Config, source Source, outputDir, htmlPath string) *Generator {
	return &Generator{
		cfg:       cfg,
		source:    source,
		outputDir: outputDir,
		htmlPath:  htmlPath,
		logger:    vlog.WithComponent("favicon"),
	}
}

// Generate renders every asset, writes it and returns the HTML tags.
func (g *Generator) Generate(ctx context.Context) (Result, error) {
	var res Result

	background, err := parseHexColor(g.cfg.Background)
	if err != nil {
		return res, err
	}
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return res, fmt.Errorf("create output directory: %w", err)
	}

	for _, a := range assets {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		img := g.source.Render(a.size)
		if a.kind == kindApple {
			img = flatten(img, background)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return res, fmt.Errorf("encode %s: %w", a.name, err)
		}
		p, err := g.write(a.name, buf.Bytes())
		if err != nil {
			return res, err
		}
		res.Files = append(res.Files, p)
	}

	icons := make([]image.Image, 0, len(icoSizes))
	for _, size := range icoSizes {
		icons = append(icons, g.source.Render(size))
	}
	var ico bytes.Buffer
	if err := EncodeICO(&ico, icons); err != nil {
		return res, err
	}
	p, err := g.write(icoName, ico.Bytes())
	if err != nil {
		return res, err
	}
	res.Files = append(res.Files, p)

	manifest, err := buildManifest(g.cfg, assets)
	if err != nil {
		return res, fmt.Errorf("encode manifest: %w", err)
	}
	p, err = g.write(manifestName, manifest)
	if err != nil {
		return res, err
	}
	res.Files = append(res.Files, p)

	res.HTML = joinTags(htmlTags(g.cfg, assets))
	if g.htmlPath != "" {
		if err := writeFile(g.htmlPath, []byte(res.HTML)); err != nil {
			return res, err
		}
		res.Files = append(res.Files, g.htmlPath)
	}

	g.logger.Info().
		Str(vlog.FieldEvent, "favicon.generated").
		Str("output_dir", g.outputDir).
		Int("files", len(res.Files)).
		Msg("favicons generated")
	return res, nil
}

func (g *Generator) write(name string, data []byte) (string, error) {
	p := filepath.Join(g.outputDir, name)
	if err := writeFile(p, data); err != nil {
		return "", err
	}
	g.logger.Debug().Str(vlog.FieldPath, p).Int("bytes", len(data)).Msg("wrote favicon asset")
	return p, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// flatten composites img over an opaque background. iOS renders transparent
// touch icons on black.
func flatten(img *image.NRGBA, bg color.Color) *image.NRGBA {
	out := image.NewNRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Over)
	return out
}
