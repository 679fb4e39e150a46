// Package blob generates closed polygons that approximate wobbly circles.
//
// A blob is the atomic visual primitive of a poster. Its outline is sampled at
// evenly spaced angles over the full turn, and every sample gets its own
// radius multiplier drawn uniformly from [1 - wobble/2, 1 + wobble/2]:
//
//	rng := rand.New(rand.NewPCG(1, 2))
//	b := blob.Generate(blob.Point{X: 0.5, Y: 0.5}, 0.3, blob.DefaultPoints, 0.15, rng)
//	fmt.Println(len(b.Vertices)) // 200
//
// The angle samples include both 0 and 2π, so the first and last vertex share
// the same angle and the outline closes on itself at the seam. The vertex
// count therefore equals the requested point count exactly.
//
// Vertices are not clamped: a blob near an edge of the unit square may extend
// past it.
package blob

import "math"

// DefaultPoints is the number of outline samples used for poster blobs.
const DefaultPoints = 200

// Source supplies uniform random numbers in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

// Point is a 2D position in normalized poster coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Blob is a generated shape together with the parameters it was built from.
type Blob struct {
	Center   Point   `json:"center"`
	Radius   float64 `json:"radius"`
	Wobble   float64 `json:"wobble"`
	Points   int     `json:"points"`
	Vertices []Point `json:"vertices"`
}

// Generate samples a wobbly outline around center.
//
// Exactly points vertices are produced (none when points <= 0), consuming one
// rng.Float64 per vertex in angle order. A negative radius yields an inverted
// shape and is not rejected.
func Generate(center Point, radius float64, points int, wobble float64, rng Source) Blob {
	b := Blob{Center: center, Radius: radius, Wobble: wobble, Points: points}
	if points <= 0 {
		return b
	}

	angles := Linspace(0, 2*math.Pi, points)
	b.Vertices = make([]Point, points)
	for i, theta := range angles {
		r := radius * (1 + wobble*(rng.Float64()-0.5))
		b.Vertices[i] = Point{
			X: center.X + r*math.Cos(theta),
			Y: center.Y + r*math.Sin(theta),
		}
	}
	return b
}

// Linspace returns n evenly spaced values over [start, stop], both ends
// included. n == 1 yields {start}; n <= 0 yields nil.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// Distance returns the Euclidean distance between p and q.
func Distance(p, q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Bounds returns the axis-aligned bounding box of the blob's vertices.
// ok is false when the blob has no vertices.
func (b Blob) Bounds() (minPt, maxPt Point, ok bool) {
	if len(b.Vertices) == 0 {
		return Point{}, Point{}, false
	}
	minPt, maxPt = b.Vertices[0], b.Vertices[0]
	for _, v := range b.Vertices[1:] {
		minPt.X = min(minPt.X, v.X)
		minPt.Y = min(minPt.Y, v.Y)
		maxPt.X = max(maxPt.X, v.X)
		maxPt.Y = max(maxPt.Y, v.Y)
	}
	return minPt, maxPt, true
}
