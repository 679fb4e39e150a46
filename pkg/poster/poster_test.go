package poster

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/blobposter/pkg/blob"
	"github.com/matzehuels/blobposter/pkg/palette"
	"github.com/matzehuels/blobposter/pkg/style"
)

func mustPalette(t *testing.T, name string) palette.Palette {
	t.Helper()
	p, err := palette.Get(name)
	if err != nil {
		t.Fatalf("palette.Get(%q): %v", name, err)
	}
	return p
}

func checkStructure(t *testing.T, got Poster, p palette.Palette, s style.Profile) {
	t.Helper()
	if len(got.Layers) != LayerCount {
		t.Fatalf("len(Layers) = %d, want %d", len(got.Layers), LayerCount)
	}
	for i, l := range got.Layers {
		if n := len(l.Blob.Vertices); n != blob.DefaultPoints {
			t.Errorf("layer %d: %d vertices, want %d", i, n, blob.DefaultPoints)
		}
		if !s.Contains(l.Alpha) {
			t.Errorf("layer %d: alpha %v outside [%v, %v]", i, l.Alpha, s.AlphaMin, s.AlphaMax)
		}
		if l.Blob.Radius < RadiusMin || l.Blob.Radius > RadiusMax {
			t.Errorf("layer %d: radius %v outside [%v, %v]", i, l.Blob.Radius, RadiusMin, RadiusMax)
		}
		if l.Blob.Wobble < WobbleMin || l.Blob.Wobble > WobbleMax {
			t.Errorf("layer %d: wobble %v outside [%v, %v]", i, l.Blob.Wobble, WobbleMin, WobbleMax)
		}
		c := l.Blob.Center
		if c.X < 0 || c.X >= 1 || c.Y < 0 || c.Y >= 1 {
			t.Errorf("layer %d: center %+v outside unit square", i, c)
		}
		found := false
		for _, pc := range p.Colors {
			if pc == l.Color {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("layer %d: color %v not in palette %q", i, l.Hex(), p.Name)
		}
	}
}

func TestComposeStructure(t *testing.T) {
	for _, pname := range palette.Names() {
		for _, sname := range style.Names() {
			t.Run(pname+"/"+sname, func(t *testing.T) {
				p := mustPalette(t, pname)
				s := style.Resolve(sname)
				got := Compose(p, s, NewSource(1))
				checkStructure(t, got, p, s)
				if got.Palette != pname {
					t.Errorf("Palette = %q, want %q", got.Palette, pname)
				}
				if got.Style != s {
					t.Errorf("Style = %+v, want %+v", got.Style, s)
				}
			})
		}
	}
}

func TestComposeDifferentSeeds(t *testing.T) {
	p := mustPalette(t, palette.SplendidComplex)
	s := style.Resolve(style.Vivid)

	a := Compose(p, s, NewSource(1))
	b := Compose(p, s, NewSource(2))
	checkStructure(t, a, p, s)
	checkStructure(t, b, p, s)

	same := true
	for i := range a.Layers {
		if a.Layers[i].Alpha != b.Layers[i].Alpha || a.Layers[i].Blob.Center != b.Layers[i].Blob.Center {
			same = false
			break
		}
	}
	if same {
		t.Error("posters from different seeds should differ")
	}
}

func TestComposeReproducible(t *testing.T) {
	p := mustPalette(t, palette.PastelOnly)
	s := style.Resolve(style.NoiseTouch)

	a := Compose(p, s, NewSource(99))
	b := Compose(p, s, NewSource(99))
	for i := range a.Layers {
		la, lb := a.Layers[i], b.Layers[i]
		if la.Alpha != lb.Alpha || la.Color != lb.Color {
			t.Fatalf("layer %d differs for the same seed", i)
		}
		for j := range la.Blob.Vertices {
			if la.Blob.Vertices[j] != lb.Blob.Vertices[j] {
				t.Fatalf("layer %d vertex %d differs for the same seed", i, j)
			}
		}
	}
}

func TestJitterReproducible(t *testing.T) {
	gen := func() []blob.Point {
		rng := NewSource(7)
		b := blob.Generate(blob.Point{X: 0.5, Y: 0.5}, 0.3, blob.DefaultPoints, 0.15, rng)
		return ApplyStyle(b.Vertices, style.Resolve(style.NoiseTouch), rng)
	}
	a, b := gen(), gen()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("vertex %d differs between seeded runs", i)
		}
	}
}

func TestApplyStyleWithoutJitter(t *testing.T) {
	rng := NewSource(3)
	b := blob.Generate(blob.Point{X: 0.5, Y: 0.5}, 0.3, blob.DefaultPoints, 0.15, rng)
	before := append([]blob.Point(nil), b.Vertices...)

	for _, name := range []string{style.Minimal, style.Vivid, "unknown-xyz"} {
		after := ApplyStyle(b.Vertices, style.Resolve(name), rng)
		for i := range before {
			if after[i] != before[i] {
				t.Fatalf("%s: vertex %d changed without jitter", name, i)
			}
		}
	}
}

func TestJitter(t *testing.T) {
	src := []blob.Point{{X: 0.1, Y: 0.2}, {X: 0.3, Y: 0.4}, {X: 0.5, Y: 0.6}}
	orig := append([]blob.Point(nil), src...)

	out := Jitter(src, JitterStdDev, NewSource(5))
	if len(out) != len(src) {
		t.Fatalf("len = %d, want %d", len(out), len(src))
	}
	for i := range src {
		if src[i] != orig[i] {
			t.Errorf("Jitter() modified its input at %d", i)
		}
		dx, dy := out[i].X-src[i].X, out[i].Y-src[i].Y
		if dx == 0 && dy == 0 {
			t.Errorf("vertex %d not perturbed", i)
		}
		if dx == dy {
			t.Errorf("vertex %d got identical x and y offsets %v", i, dx)
		}
		// 10 sigma is effectively impossible for a normal draw.
		if abs(dx) > 10*JitterStdDev || abs(dy) > 10*JitterStdDev {
			t.Errorf("vertex %d offset (%v, %v) implausibly large", i, dx, dy)
		}
	}
}

func TestJitterZeroSigma(t *testing.T) {
	src := []blob.Point{{X: 1, Y: 2}}
	out := Jitter(src, 0, NewSource(1))
	if out[0] != src[0] {
		t.Errorf("Jitter(sigma=0) = %+v, want %+v", out[0], src[0])
	}
}

func TestLayerMarshalJSON(t *testing.T) {
	p := Compose(mustPalette(t, palette.HighContrast), style.Resolve(style.Minimal), NewSource(11))
	data, err := json.Marshal(p.Layers[0])
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded struct {
		Color string  `json:"color"`
		Alpha float64 `json:"alpha"`
		Blob  struct {
			Vertices []blob.Point `json:"vertices"`
		} `json:"blob"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !strings.HasPrefix(decoded.Color, "#") || len(decoded.Color) != 7 {
		t.Errorf("color = %q, want #rrggbb", decoded.Color)
	}
	if len(decoded.Blob.Vertices) != blob.DefaultPoints {
		t.Errorf("vertices = %d, want %d", len(decoded.Blob.Vertices), blob.DefaultPoints)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
