// Package palette holds the fixed catalog of named color palettes.
//
// Five palettes exist, in the order the UI menu lists them. Each palette is a
// non-empty ordered list of RGB colors with channels in [0, 1]. The catalog is
// immutable: [Get] and [All] hand out copies.
//
//	p, err := palette.Get("Pastel colors only")
//	if err != nil {
//	    return err // INVALID_PALETTE
//	}
//	fmt.Println(p.Hex())
package palette

import (
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/blobposter/pkg/blob"
	"github.com/matzehuels/blobposter/pkg/errors"
)

// Palette names as shown in the UI menu.
const (
	SimpleTidy       = "simple&tidy"
	SplendidComplex  = "splendid&complex"
	PastelOnly       = "Pastel colors only"
	HighContrast     = "High contrast vivid"
	MonochromeShades = "Monochrome shade"
)

// Default is the palette preselected in the UI.
const Default = SimpleTidy

// Palette is a named, ordered set of colors.
type Palette struct {
	Name   string
	Colors []colorful.Color
}

// Len returns the number of colors.
func (p Palette) Len() int { return len(p.Colors) }

// Hex returns the colors as "#rrggbb" strings in palette order.
func (p Palette) Hex() []string {
	out := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		out[i] = c.Hex()
	}
	return out
}

func rgb(r, g, b float64) colorful.Color { return colorful.Color{R: r, G: g, B: b} }

func greys(from, to float64, n int) []colorful.Color {
	shades := blob.Linspace(from, to, n)
	out := make([]colorful.Color, len(shades))
	for i, s := range shades {
		out[i] = rgb(s, s, s)
	}
	return out
}

var catalog = []Palette{
	{Name: SimpleTidy, Colors: []colorful.Color{
		rgb(0.85, 0.85, 0.85),
		rgb(0.30, 0.40, 0.55),
		rgb(0.80, 0.60, 0.50),
		rgb(0.60, 0.75, 0.70),
		rgb(0.90, 0.90, 0.70),
	}},
	{Name: SplendidComplex, Colors: []colorful.Color{
		rgb(0.9, 0.4, 0.4),
		rgb(0.4, 0.7, 0.9),
		rgb(0.8, 0.9, 0.4),
		rgb(0.7, 0.4, 0.8),
		rgb(0.4, 0.9, 0.6),
		rgb(0.95, 0.7, 0.3),
	}},
	{Name: PastelOnly, Colors: []colorful.Color{
		rgb(0.95, 0.80, 0.80),
		rgb(0.80, 0.90, 0.95),
		rgb(0.85, 0.85, 0.95),
		rgb(0.90, 0.85, 0.90),
		rgb(0.95, 0.90, 0.80),
	}},
	{Name: HighContrast, Colors: []colorful.Color{
		rgb(0.95, 0.10, 0.10),
		rgb(0.10, 0.10, 0.95),
		rgb(0.10, 0.80, 0.10),
		rgb(0.95, 0.95, 0.10),
		rgb(0.90, 0.10, 0.80),
	}},
	{Name: MonochromeShades, Colors: greys(0.2, 0.85, 6)},
}

// Get returns the palette registered under name.
// Unknown names are a caller error reported as INVALID_PALETTE.
func Get(name string) (Palette, error) {
	for _, p := range catalog {
		if p.Name == name {
			return clone(p), nil
		}
	}
	return Palette{}, errors.New(errors.ErrCodeInvalidPalette, "unknown palette %q", name)
}

// Exists reports whether name is a registered palette.
func Exists(name string) bool {
	_, err := Get(name)
	return err == nil
}

// Names returns the palette names in menu order.
func Names() []string {
	out := make([]string, len(catalog))
	for i, p := range catalog {
		out[i] = p.Name
	}
	return out
}

// All returns every palette in menu order.
func All() []Palette {
	out := make([]Palette, len(catalog))
	for i, p := range catalog {
		out[i] = clone(p)
	}
	return out
}

func clone(p Palette) Palette {
	return Palette{Name: p.Name, Colors: slices.Clone(p.Colors)}
}
