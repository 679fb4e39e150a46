// Package render draws composed posters onto output surfaces.
//
// # Overview
//
// Rendering is split into two halves. [Draw] walks a [poster.Poster] and
// issues drawing commands against a [Surface]; each output format provides
// its own Surface. This keeps the layer list independent of any imaging
// backend:
//
//	png, err := render.PNG(p)
//	svg := render.SVG(p, render.WithWidth(1400))
//	txt, err := render.ANSI(p, 60)
//
// # Coordinates
//
// Surfaces receive normalized poster coordinates: the visible canvas spans
// [0,1] on both axes with the origin at the bottom left and y pointing up.
// Blob vertices may fall outside that square; surfaces clip them at the
// canvas edge. Pixel sinks map a point (x, y) to (x*W, (1-y)*H).
//
// # Canvas
//
// The canvas has a fixed 7:10 aspect ratio. The default width of 700 pixels
// gives a 700x1000 image. Text sizes are in points and scale with the canvas
// so a title looks the same at every width.
//
// # Sinks
//
//   - [PNG]: raster image via github.com/fogleman/gg
//   - [SVG]: vector markup
//   - [ANSI]: half-block terminal preview colored with lipgloss
//   - [JSON]: layer dump for API clients
package render
