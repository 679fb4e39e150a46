package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/blobposter/pkg/blob"
	"github.com/matzehuels/blobposter/pkg/fonts"
	"github.com/matzehuels/blobposter/pkg/poster"
)

type svgSurface struct {
	buf  *bytes.Buffer
	o    Options
	w, h float64
}

func (s *svgSurface) px(x, y float64) (float64, float64) {
	return x * s.w, (1 - y) * s.h
}

func (s *svgSurface) Background(c colorful.Color) {
	fmt.Fprintf(s.buf, `  <rect width="%.0f" height="%.0f" fill="%s"/>`+"\n", s.w, s.h, c.Hex())
}

func (s *svgSurface) FillPolygon(pts []blob.Point, c colorful.Color, alpha float64) {
	s.buf.WriteString(`  <polygon points="`)
	for i, p := range pts {
		if i > 0 {
			s.buf.WriteByte(' ')
		}
		x, y := s.px(p.X, p.Y)
		fmt.Fprintf(s.buf, "%.2f,%.2f", x, y)
	}
	fmt.Fprintf(s.buf, `" fill="%s" fill-opacity="%.3f" stroke="none"/>`+"\n", c.Hex(), alpha)
}

func (s *svgSurface) Text(str string, x, y float64, style TextStyle) {
	weight := "normal"
	if style.Bold {
		weight = "bold"
	}
	px, py := s.px(x, y)
	fmt.Fprintf(s.buf, `  <text x="%.2f" y="%.2f" font-family="%s" font-size="%.2f" font-weight="%s" fill="%s">%s</text>`+"\n",
		px, py, html.EscapeString(fonts.FontFamily), s.o.PixelSize(style.Size), weight, style.Color.Hex(), html.EscapeString(str))
}

// SVG renders p as standalone SVG markup.
func SVG(p poster.Poster, opts ...Option) []byte {
	o := NewOptions(opts...)
	var buf bytes.Buffer
	s := &svgSurface{buf: &buf, o: o, w: float64(o.Width), h: float64(o.Height())}

	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		o.Width, o.Height(), o.Width, o.Height())
	buf.WriteString(`  <clipPath id="canvas"><rect width="100%" height="100%"/></clipPath>` + "\n")
	buf.WriteString(`  <g clip-path="url(#canvas)">` + "\n")
	Draw(s, p, o)
	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}
