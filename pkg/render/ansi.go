package render

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"

	"github.com/matzehuels/blobposter/pkg/errors"
	"github.com/matzehuels/blobposter/pkg/poster"
)

// halfBlock shows the upper pixel as foreground and the lower as background.
const halfBlock = "▀"

// ansiScale is how many raster pixels back each terminal column before
// downsampling.
const ansiScale = 6

// ANSI renders p as cols terminal columns of colored half blocks. Each text
// row covers two pixel rows, so the output keeps the poster's aspect ratio
// on terminals with roughly 1:2 cells.
func ANSI(p poster.Poster, cols int, opts ...Option) (string, error) {
	if cols < 1 {
		return "", errors.New(errors.ErrCodeInvalidInput, "preview width must be at least 1 column")
	}

	img, err := Raster(p, append(opts, WithWidth(cols*ansiScale))...)
	if err != nil {
		return "", err
	}

	rows := cols * AspectH / AspectW
	if rows%2 == 1 {
		rows++
	}
	small := image.NewRGBA(image.Rect(0, 0, cols, rows))
	xdraw.ApproxBiLinear.Scale(small, small.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	var sb strings.Builder
	for y := 0; y < rows; y += 2 {
		for x := 0; x < cols; x++ {
			top, _ := colorful.MakeColor(small.At(x, y))
			bottom, _ := colorful.MakeColor(small.At(x, y+1))
			cell := lipgloss.NewStyle().
				Foreground(lipgloss.Color(top.Hex())).
				Background(lipgloss.Color(bottom.Hex()))
			sb.WriteString(cell.Render(halfBlock))
		}
		if y+2 < rows {
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}
