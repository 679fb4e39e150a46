package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/blobposter/pkg/blob"
	"github.com/matzehuels/blobposter/pkg/poster"
)

// Canvas defaults.
const (
	DefaultWidth    = 700
	DefaultTitle    = "Generative Poster"
	DefaultSubtitle = "Week 2 • Arts & Advanced Big Data"

	// AspectW and AspectH fix the canvas proportions.
	AspectW = 7
	AspectH = 10

	TitleSize    = 18
	SubtitleSize = 11
)

// Title and subtitle anchors in normalized coordinates. Text is placed with
// its baseline at the anchor.
var (
	TitleAnchor    = blob.Point{X: 0.05, Y: 0.95}
	SubtitleAnchor = blob.Point{X: 0.05, Y: 0.91}
)

// DefaultBackground is the off-white canvas color.
var DefaultBackground = colorful.Color{R: 0.98, G: 0.98, B: 0.97}

// TextStyle describes how a string is drawn.
type TextStyle struct {
	Size  float64 // points
	Bold  bool
	Color colorful.Color
}

// Surface receives drawing commands in normalized coordinates.
type Surface interface {
	// Background fills the whole canvas.
	Background(c colorful.Color)
	// FillPolygon fills a closed outline with c at the given opacity. No
	// outline stroke is drawn.
	FillPolygon(pts []blob.Point, c colorful.Color, alpha float64)
	// Text draws s with its baseline starting at (x, y).
	Text(s string, x, y float64, style TextStyle)
}

// Options configures the canvas.
type Options struct {
	Width      int
	Title      string
	Subtitle   string
	Background colorful.Color
}

// Option mutates Options.
type Option func(*Options)

// WithWidth sets the canvas width in pixels. Non-positive values keep the
// default.
func WithWidth(w int) Option {
	return func(o *Options) {
		if w > 0 {
			o.Width = w
		}
	}
}

// WithTitle replaces the title text. An empty title is not drawn.
func WithTitle(s string) Option { return func(o *Options) { o.Title = s } }

// WithSubtitle replaces the subtitle text. An empty subtitle is not drawn.
func WithSubtitle(s string) Option { return func(o *Options) { o.Subtitle = s } }

// NewOptions returns the defaults with opts applied.
func NewOptions(opts ...Option) Options {
	o := Options{
		Width:      DefaultWidth,
		Title:      DefaultTitle,
		Subtitle:   DefaultSubtitle,
		Background: DefaultBackground,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Height returns the canvas height derived from the width.
func (o Options) Height() int {
	return o.Width * AspectH / AspectW
}

// DPI returns the resolution at which point sizes are converted to pixels.
// The default canvas corresponds to a 7x10 inch figure at 100 dpi.
func (o Options) DPI() float64 {
	return 100 * float64(o.Width) / DefaultWidth
}

// PixelSize converts a point size to pixels at the canvas resolution.
func (o Options) PixelSize(pt float64) float64 {
	return pt * o.DPI() / 72
}

// Draw paints p onto s: background, layers back to front, then the title
// block on top.
func Draw(s Surface, p poster.Poster, o Options) {
	s.Background(o.Background)
	for _, l := range p.Layers {
		if len(l.Blob.Vertices) < 3 {
			continue
		}
		s.FillPolygon(l.Blob.Vertices, l.Color, l.Alpha)
	}

	ink := colorful.Color{}
	if o.Title != "" {
		s.Text(o.Title, TitleAnchor.X, TitleAnchor.Y, TextStyle{Size: TitleSize, Bold: true, Color: ink})
	}
	if o.Subtitle != "" {
		s.Text(o.Subtitle, SubtitleAnchor.X, SubtitleAnchor.Y, TextStyle{Size: SubtitleSize, Color: ink})
	}
}
