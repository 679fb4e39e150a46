package pipeline

import (
	"github.com/matzehuels/blobposter/pkg/poster"
	"github.com/matzehuels/blobposter/pkg/render"
)

// RenderFormat generates a single output artifact.
func RenderFormat(p poster.Poster, format string, opts Options) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	ro := opts.RenderOptions()

	switch format {
	case FormatPNG:
		return render.PNG(p, ro...)
	case FormatSVG:
		return render.SVG(p, ro...), nil
	case FormatJSON:
		return render.JSON(p, ro...)
	default: // FormatANSI
		cols := opts.Columns
		if cols == 0 {
			cols = DefaultColumns
		}
		s, err := render.ANSI(p, cols, render.WithTitle(opts.Title), render.WithSubtitle(opts.Subtitle))
		return []byte(s), err
	}
}
