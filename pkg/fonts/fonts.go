// Package fonts provides the fonts used for poster titles.
//
// The Go font family ships inside golang.org/x/image as TTF byte slices, so
// the raster sink needs no system fonts. Parsed fonts are cached after first
// use.
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family used by the SVG sink.
const FontFamily = `'Go', 'Helvetica Neue', Helvetica, Arial, sans-serif`

var (
	regular, bold       *truetype.Font
	regularErr, boldErr error
	parseOnce           sync.Once
)

func parse() {
	regular, regularErr = truetype.Parse(goregular.TTF)
	bold, boldErr = truetype.Parse(gobold.TTF)
}

// Font returns the parsed regular or bold Go font.
func Font(isBold bool) (*truetype.Font, error) {
	parseOnce.Do(parse)
	if isBold {
		if boldErr != nil {
			return nil, fmt.Errorf("parse bold font: %w", boldErr)
		}
		return bold, nil
	}
	if regularErr != nil {
		return nil, fmt.Errorf("parse regular font: %w", regularErr)
	}
	return regular, nil
}

// Face returns a font face of the given point size at dpi.
func Face(size, dpi float64, isBold bool) (font.Face, error) {
	f, err := Font(isBold)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	}), nil
}
