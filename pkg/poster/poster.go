// Package poster composes the layered blob posters.
//
// # Overview
//
// A poster is an ordered list of [LayerCount] translucent blobs. Composition
// is a pure function of a palette, a style profile and a random source:
//
//	p, _ := palette.Get(palette.PastelOnly)
//	rng := poster.NewSource(42)
//	out := poster.Compose(p, style.Resolve(style.NoiseTouch), rng)
//
// Layers are returned back to front. Renderers draw them in slice order so
// later layers cover earlier ones.
//
// # Randomness
//
// Every random draw goes through the injected [Source], so a seeded source
// reproduces a poster exactly. For each layer the draws happen in this order:
// center x, center y, radius, wobble, one draw per outline vertex, color
// index, alpha and, when the style asks for jitter, one normal draw per vertex
// for x followed by one per vertex for y.
package poster

import (
	"encoding/json"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/blobposter/pkg/blob"
	"github.com/matzehuels/blobposter/pkg/palette"
	"github.com/matzehuels/blobposter/pkg/style"
)

// Composition parameters.
const (
	LayerCount   = 8
	RadiusMin    = 0.15
	RadiusMax    = 0.45
	WobbleMin    = 0.05
	WobbleMax    = 0.25
	JitterStdDev = 0.003
)

// Source is the random number source used during composition.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
	NormFloat64() float64
	IntN(n int) int
}

// NewSource returns a PCG-backed source seeded deterministically from seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Layer is one blob with its fill color and transparency.
type Layer struct {
	Blob  blob.Blob      `json:"blob"`
	Color colorful.Color `json:"-"`
	Alpha float64        `json:"alpha"`
}

// Poster is the full set of layers generated for one request.
type Poster struct {
	Palette string        `json:"palette"`
	Style   style.Profile `json:"style"`
	Layers  []Layer       `json:"layers"`
}

// Compose builds a poster of LayerCount layers.
// The palette must contain at least one color.
func Compose(p palette.Palette, s style.Profile, rng Source) Poster {
	out := Poster{
		Palette: p.Name,
		Style:   s,
		Layers:  make([]Layer, 0, LayerCount),
	}
	for range LayerCount {
		out.Layers = append(out.Layers, composeLayer(p, s, rng))
	}
	return out
}

func composeLayer(p palette.Palette, s style.Profile, rng Source) Layer {
	center := blob.Point{X: rng.Float64(), Y: rng.Float64()}
	radius := uniform(rng, RadiusMin, RadiusMax)
	wobble := uniform(rng, WobbleMin, WobbleMax)

	b := blob.Generate(center, radius, blob.DefaultPoints, wobble, rng)
	color := p.Colors[rng.IntN(len(p.Colors))]
	alpha := uniform(rng, s.AlphaMin, s.AlphaMax)
	b.Vertices = ApplyStyle(b.Vertices, s, rng)

	return Layer{Blob: b, Color: color, Alpha: alpha}
}

// ApplyStyle runs the style's post-processing on a blob outline. Without
// jitter the input slice is returned untouched.
func ApplyStyle(vertices []blob.Point, s style.Profile, rng Source) []blob.Point {
	if !s.Jitter {
		return vertices
	}
	return Jitter(vertices, JitterStdDev, rng)
}

// Jitter returns a copy of vertices with independent Gaussian noise of the
// given standard deviation added to every coordinate. All x offsets are drawn
// before the y offsets.
func Jitter(vertices []blob.Point, sigma float64, rng Source) []blob.Point {
	out := make([]blob.Point, len(vertices))
	copy(out, vertices)
	for i := range out {
		out[i].X += rng.NormFloat64() * sigma
	}
	for i := range out {
		out[i].Y += rng.NormFloat64() * sigma
	}
	return out
}

func uniform(rng Source, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

// Hex returns the layer color as "#rrggbb".
func (l Layer) Hex() string { return l.Color.Hex() }

// MarshalJSON encodes the color as a hex string next to the blob.
func (l Layer) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Color string    `json:"color"`
		Alpha float64   `json:"alpha"`
		Blob  blob.Blob `json:"blob"`
	}{l.Hex(), l.Alpha, l.Blob})
}
