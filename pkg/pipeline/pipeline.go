// Package pipeline provides the poster generation pipeline for blobposter.
//
// This package implements the resolve → compose → render pipeline shared by
// the CLI preview, the browser UI and the JSON API, so every entry point
// applies the same defaults and validation.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Resolve: look up the palette (unknown names fail) and the style
//     (unknown names fall back to minimal), and pick a seed
//  2. Compose: build the eight poster layers from a seeded random source
//  3. Render: produce the requested output formats (PNG, SVG, JSON, ANSI)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Palette: "Pastel colors only",
//	    Style:   "noise touch",
//	    Formats: []string{pipeline.FormatPNG},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts[pipeline.FormatPNG]
//
// A zero Seed asks the pipeline to draw a fresh one; the seed actually used
// is reported in [Result.Seed] so any poster can be regenerated.
package pipeline

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blobposter/pkg/errors"
	"github.com/matzehuels/blobposter/pkg/palette"
	"github.com/matzehuels/blobposter/pkg/poster"
	"github.com/matzehuels/blobposter/pkg/render"
	"github.com/matzehuels/blobposter/pkg/style"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, UI, and API
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = render.DefaultWidth

	// MinWidth and MaxWidth bound the canvas width.
	MinWidth = 100
	MaxWidth = 4000

	// DefaultColumns is the default terminal preview width.
	DefaultColumns = 60

	// DefaultPalette is the palette used when none is given.
	DefaultPalette = palette.Default

	// DefaultStyle is the style used when none is given.
	DefaultStyle = style.Default
)

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatANSI = "ansi"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatSVG:  true,
	FormatJSON: true,
	FormatANSI: true,
}

// ContentTypes maps formats to HTTP content types.
var ContentTypes = map[string]string{
	FormatPNG:  "image/png",
	FormatSVG:  "image/svg+xml",
	FormatJSON: "application/json",
	FormatANSI: "text/plain; charset=utf-8",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Palette string   `json:"palette,omitempty"`
	Style   string   `json:"style,omitempty"`
	Seed    uint64   `json:"seed,omitempty"`
	Formats []string `json:"formats,omitempty"`

	// Canvas options
	Width    int    `json:"width,omitempty"`
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Columns  int    `json:"columns,omitempty"` // terminal preview width

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies this run in logs and API responses.
	ID string

	// Seed is the seed the random source was created from.
	Seed uint64

	// Poster is the composed layer list.
	Poster poster.Poster

	// StyleFallback is set when the requested style was unknown and the
	// minimal profile was used instead.
	StyleFallback bool

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Layers      int
	Vertices    int
	ComposeTime time.Duration
	RenderTime  time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, svg, json, ansi)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePalette checks that a palette exists.
func ValidatePalette(name string) error {
	if !palette.Exists(name) {
		return errors.New(errors.ErrCodeInvalidPalette, "unknown palette: %q", name)
	}
	return nil
}

// ValidateWidth checks that a canvas width is within bounds.
func ValidateWidth(w int) error {
	if w < MinWidth || w > MaxWidth {
		return errors.New(errors.ErrCodeInvalidInput, "width %d out of range [%d, %d]", w, MinWidth, MaxWidth)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults. Unknown styles
// are not an error. A zero Seed is replaced with a random one.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Palette == "" {
		o.Palette = DefaultPalette
	}
	if err := ValidatePalette(o.Palette); err != nil {
		return err
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if err := ValidateWidth(o.Width); err != nil {
		return err
	}
	if o.Columns == 0 {
		o.Columns = DefaultColumns
	}
	if o.Columns < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "columns must be positive, got %d", o.Columns)
	}
	if o.Title == "" {
		o.Title = render.DefaultTitle
	}
	if o.Subtitle == "" {
		o.Subtitle = render.DefaultSubtitle
	}
	if o.Seed == 0 {
		o.Seed = NewSeed()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// RenderOptions converts the canvas settings to render options.
func (o *Options) RenderOptions() []render.Option {
	return []render.Option{
		render.WithWidth(o.Width),
		render.WithTitle(o.Title),
		render.WithSubtitle(o.Subtitle),
	}
}

// NewSeed draws a fresh non-zero seed.
func NewSeed() uint64 {
	for {
		if s := rand.Uint64(); s != 0 {
			return s
		}
	}
}
