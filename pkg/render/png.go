package render

import (
	"bytes"
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/blobposter/pkg/blob"
	"github.com/matzehuels/blobposter/pkg/fonts"
	"github.com/matzehuels/blobposter/pkg/poster"
)

// rasterSurface draws onto a gg context. Font errors are kept and reported
// after drawing completes.
type rasterSurface struct {
	dc   *gg.Context
	w, h float64
	dpi  float64
	err  error
}

func newRasterSurface(o Options) *rasterSurface {
	return &rasterSurface{
		dc:  gg.NewContext(o.Width, o.Height()),
		w:   float64(o.Width),
		h:   float64(o.Height()),
		dpi: o.DPI(),
	}
}

func (r *rasterSurface) px(x, y float64) (float64, float64) {
	return x * r.w, (1 - y) * r.h
}

func (r *rasterSurface) Background(c colorful.Color) {
	r.dc.SetRGB(c.R, c.G, c.B)
	r.dc.Clear()
}

func (r *rasterSurface) FillPolygon(pts []blob.Point, c colorful.Color, alpha float64) {
	r.dc.NewSubPath()
	for i, p := range pts {
		x, y := r.px(p.X, p.Y)
		if i == 0 {
			r.dc.MoveTo(x, y)
			continue
		}
		r.dc.LineTo(x, y)
	}
	r.dc.ClosePath()
	r.dc.SetRGBA(c.R, c.G, c.B, alpha)
	r.dc.Fill()
}

func (r *rasterSurface) Text(s string, x, y float64, style TextStyle) {
	face, err := fonts.Face(style.Size, r.dpi, style.Bold)
	if err != nil {
		if r.err == nil {
			r.err = err
		}
		return
	}
	r.dc.SetFontFace(face)
	r.dc.SetRGB(style.Color.R, style.Color.G, style.Color.B)
	px, py := r.px(x, y)
	r.dc.DrawString(s, px, py)
}

// Raster draws p into an in-memory image.
func Raster(p poster.Poster, opts ...Option) (image.Image, error) {
	o := NewOptions(opts...)
	s := newRasterSurface(o)
	Draw(s, p, o)
	if s.err != nil {
		return nil, fmt.Errorf("draw text: %w", s.err)
	}
	return s.dc.Image(), nil
}

// PNG renders p as a PNG image.
func PNG(p poster.Poster, opts ...Option) ([]byte, error) {
	o := NewOptions(opts...)
	s := newRasterSurface(o)
	Draw(s, p, o)
	if s.err != nil {
		return nil, fmt.Errorf("draw text: %w", s.err)
	}

	var buf bytes.Buffer
	if err := s.dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
