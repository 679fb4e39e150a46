package render

import (
	"bytes"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/blobposter/pkg/blob"
	"github.com/matzehuels/blobposter/pkg/errors"
	"github.com/matzehuels/blobposter/pkg/palette"
	"github.com/matzehuels/blobposter/pkg/poster"
	"github.com/matzehuels/blobposter/pkg/style"
)

type call struct {
	op    string
	n     int
	alpha float64
	text  string
	x, y  float64
	style TextStyle
}

type recorder struct{ calls []call }

func (r *recorder) Background(c colorful.Color) {
	r.calls = append(r.calls, call{op: "background"})
}

func (r *recorder) FillPolygon(pts []blob.Point, c colorful.Color, alpha float64) {
	r.calls = append(r.calls, call{op: "fill", n: len(pts), alpha: alpha})
}

func (r *recorder) Text(s string, x, y float64, st TextStyle) {
	r.calls = append(r.calls, call{op: "text", text: s, x: x, y: y, style: st})
}

func testPoster(t *testing.T, seed uint64) poster.Poster {
	t.Helper()
	p, err := palette.Get(palette.SplendidComplex)
	if err != nil {
		t.Fatal(err)
	}
	return poster.Compose(p, style.Resolve(style.Vivid), poster.NewSource(seed))
}

func TestNewOptions(t *testing.T) {
	tests := []struct {
		name       string
		opts       []Option
		wantWidth  int
		wantHeight int
		wantTitle  string
	}{
		{"defaults", nil, 700, 1000, DefaultTitle},
		{"wide", []Option{WithWidth(1400)}, 1400, 2000, DefaultTitle},
		{"zero width keeps default", []Option{WithWidth(0)}, 700, 1000, DefaultTitle},
		{"custom title", []Option{WithTitle("Hello")}, 700, 1000, "Hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOptions(tt.opts...)
			if o.Width != tt.wantWidth || o.Height() != tt.wantHeight {
				t.Errorf("size = %dx%d, want %dx%d", o.Width, o.Height(), tt.wantWidth, tt.wantHeight)
			}
			if o.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", o.Title, tt.wantTitle)
			}
			if o.Subtitle != DefaultSubtitle {
				t.Errorf("Subtitle = %q, want %q", o.Subtitle, DefaultSubtitle)
			}
		})
	}
}

func TestDPI(t *testing.T) {
	if got := NewOptions().DPI(); got != 100 {
		t.Errorf("DPI() = %v, want 100", got)
	}
	if got := NewOptions(WithWidth(1400)).DPI(); got != 200 {
		t.Errorf("DPI() at 1400px = %v, want 200", got)
	}
	if got := NewOptions().PixelSize(72); got != 100 {
		t.Errorf("PixelSize(72) = %v, want 100", got)
	}
}

func TestDrawOrder(t *testing.T) {
	p := testPoster(t, 1)
	var rec recorder
	Draw(&rec, p, NewOptions())

	want := 1 + poster.LayerCount + 2
	if len(rec.calls) != want {
		t.Fatalf("got %d calls, want %d", len(rec.calls), want)
	}
	if rec.calls[0].op != "background" {
		t.Errorf("first call = %q, want background", rec.calls[0].op)
	}
	for i, l := range p.Layers {
		c := rec.calls[1+i]
		if c.op != "fill" || c.alpha != l.Alpha || c.n != blob.DefaultPoints {
			t.Errorf("call %d = %+v, want fill of layer %d", 1+i, c, i)
		}
	}

	title, sub := rec.calls[want-2], rec.calls[want-1]
	if title.text != DefaultTitle || title.x != 0.05 || title.y != 0.95 || !title.style.Bold || title.style.Size != 18 {
		t.Errorf("title call = %+v", title)
	}
	if sub.text != DefaultSubtitle || sub.x != 0.05 || sub.y != 0.91 || sub.style.Bold || sub.style.Size != 11 {
		t.Errorf("subtitle call = %+v", sub)
	}
}

func TestDrawSkipsEmptyText(t *testing.T) {
	var rec recorder
	Draw(&rec, poster.Poster{}, NewOptions(WithTitle(""), WithSubtitle("")))
	if len(rec.calls) != 1 {
		t.Errorf("got %d calls, want background only", len(rec.calls))
	}
}

func TestPNG(t *testing.T) {
	data, err := PNG(testPoster(t, 2), WithWidth(140))
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 140 || b.Dy() != 200 {
		t.Errorf("bounds = %v, want 140x200", b)
	}
}

func TestPNGBackground(t *testing.T) {
	img, err := Raster(poster.Poster{}, WithWidth(70), WithTitle(""), WithSubtitle(""))
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, _ := img.At(35, 50).RGBA()
	near := func(v uint32, want int) bool {
		d := int(v>>8) - want
		return d >= -2 && d <= 2
	}
	if !near(r, 250) || !near(g, 250) || !near(b, 247) {
		t.Errorf("background = (%d, %d, %d), want about (250, 250, 247)", r>>8, g>>8, b>>8)
	}
}

func TestSVG(t *testing.T) {
	svg := string(SVG(testPoster(t, 3)))

	if !strings.HasPrefix(svg, "<svg ") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("output is not a standalone svg document")
	}
	if n := strings.Count(svg, "<polygon "); n != poster.LayerCount {
		t.Errorf("polygons = %d, want %d", n, poster.LayerCount)
	}
	if !strings.Contains(svg, `viewBox="0 0 700 1000"`) {
		t.Error("missing 700x1000 viewBox")
	}
	if !strings.Contains(svg, "Arts &amp; Advanced Big Data") {
		t.Error("subtitle ampersand should be escaped")
	}
	if !strings.Contains(svg, `font-weight="bold"`) {
		t.Error("title should be bold")
	}
	if strings.Contains(svg, "stroke=\"#") {
		t.Error("polygons should have no stroke")
	}
}

func TestANSI(t *testing.T) {
	out, err := ANSI(testPoster(t, 4), 20)
	if err != nil {
		t.Fatalf("ANSI: %v", err)
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 14 {
		t.Fatalf("lines = %d, want 14", len(lines))
	}
	for i, line := range lines {
		if n := strings.Count(line, halfBlock); n != 20 {
			t.Errorf("line %d has %d cells, want 20", i, n)
		}
	}
}

func TestANSIInvalidWidth(t *testing.T) {
	_, err := ANSI(testPoster(t, 4), 0)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ANSI(cols=0) error = %v, want INVALID_INPUT", err)
	}
}

func TestJSON(t *testing.T) {
	data, err := JSON(testPoster(t, 5))
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out struct {
		Width  int `json:"width"`
		Height int `json:"height"`
		Poster struct {
			Palette string `json:"palette"`
			Layers  []struct {
				Color string `json:"color"`
			} `json:"layers"`
		} `json:"poster"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Width != 700 || out.Height != 1000 {
		t.Errorf("size = %dx%d, want 700x1000", out.Width, out.Height)
	}
	if out.Poster.Palette != palette.SplendidComplex {
		t.Errorf("palette = %q", out.Poster.Palette)
	}
	if len(out.Poster.Layers) != poster.LayerCount {
		t.Fatalf("layers = %d", len(out.Poster.Layers))
	}
	for i, l := range out.Poster.Layers {
		if !strings.HasPrefix(l.Color, "#") {
			t.Errorf("layer %d color = %q", i, l.Color)
		}
	}
}
