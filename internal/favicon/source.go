package favicon

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // decoder registration
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
)

// Source renders the icon as a square RGBA image of the requested size.
type Source interface {
	Render(size int) *image.NRGBA
}

// LoadSource reads an SVG, PNG, JPEG or GIF icon from path.
func LoadSource(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read favicon source: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return ParseSVG(data)
	}
	return DecodeRaster(data)
}

type svgSource struct {
	icon *oksvg.SvgIcon
}

// ParseSVG parses an SVG document. It is rasterized at each output size
// rather than scaled from a single bitmap.
func ParseSVG(data []byte) (Source, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, fmt.Errorf("parse svg: missing or empty viewBox")
	}
	return &svgSource{icon: icon}, nil
}

func (s *svgSource) Render(size int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	x, y, w, h := fit(s.icon.ViewBox.W, s.icon.ViewBox.H, float64(size))
	s.icon.SetTarget(x, y, w, h)
	scanner := rasterx.NewScannerGV(size, size, dst, dst.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	s.icon.Draw(raster, 1.0)
	return dst
}

type rasterSource struct {
	img image.Image
}

// DecodeRaster decodes a bitmap icon. Non-square images are centered on a
// transparent square canvas.
func DecodeRaster(data []byte) (Source, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode favicon source: %w", err)
	}
	return &rasterSource{img: img}, nil
}

func (s *rasterSource) Render(size int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	b := s.img.Bounds()
	x, y, w, h := fit(float64(b.Dx()), float64(b.Dy()), float64(size))
	target := image.Rect(int(x), int(y), int(x+w+0.5), int(y+h+0.5))
	draw.CatmullRom.Scale(dst, target, s.img, b, draw.Over, nil)
	return dst
}

// fit returns the rectangle that scales a w×h box into a centered square of
// the given side while preserving aspect ratio.
func fit(w, h, side float64) (x, y, fw, fh float64) {
	if w >= h {
		fw, fh = side, side*h/w
	} else {
		fw, fh = side*w/h, side
	}
	return (side - fw) / 2, (side - fh) / 2, fw, fh
}
