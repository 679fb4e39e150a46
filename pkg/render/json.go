package render

import (
	"encoding/json"

	"github.com/matzehuels/blobposter/pkg/poster"
)

type jsonOutput struct {
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	Title    string        `json:"title,omitempty"`
	Subtitle string        `json:"subtitle,omitempty"`
	Poster   poster.Poster `json:"poster"`
}

// JSON serializes p together with the canvas it would be drawn on.
func JSON(p poster.Poster, opts ...Option) ([]byte, error) {
	o := NewOptions(opts...)
	return json.MarshalIndent(jsonOutput{
		Width:    o.Width,
		Height:   o.Height(),
		Title:    o.Title,
		Subtitle: o.Subtitle,
		Poster:   p,
	}, "", "  ")
}
