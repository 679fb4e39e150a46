package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/blobposter/pkg/errors"
	"github.com/matzehuels/blobposter/pkg/observability"
	"github.com/matzehuels/blobposter/pkg/palette"
	"github.com/matzehuels/blobposter/pkg/poster"
	"github.com/matzehuels/blobposter/pkg/style"
)

// Runner executes the pipeline and reports to the registered hooks.
//
// The Runner holds no per-run state. Every run creates its own random
// source, so multiple goroutines can share one Runner.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete resolve → compose → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		ID:   uuid.NewString(),
		Seed: opts.Seed,
	}
	logger := opts.Logger.With("id", result.ID)

	// Stage 1+2: Resolve and compose
	composeStart := time.Now()
	p, fallback, err := r.Compose(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Poster = p
	result.StyleFallback = fallback
	result.Stats.ComposeTime = time.Since(composeStart)
	result.Stats.Layers = len(p.Layers)
	for _, l := range p.Layers {
		result.Stats.Vertices += len(l.Blob.Vertices)
	}

	logger.Debug("composed poster",
		"palette", p.Palette,
		"style", p.Style.Name,
		"seed", opts.Seed,
		"layers", result.Stats.Layers,
		"duration", result.Stats.ComposeTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, p, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered poster",
		"palette", p.Palette,
		"style", p.Style.Name,
		"seed", opts.Seed,
		"formats", opts.Formats,
		"duration", result.Stats.ComposeTime+result.Stats.RenderTime)

	return result, nil
}

// Compose resolves the palette and style named in opts and composes a
// poster from a source seeded with opts.Seed. The boolean reports whether
// the style fell back to minimal.
func (r *Runner) Compose(ctx context.Context, opts Options) (poster.Poster, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return poster.Poster{}, false, err
	}

	hooks := observability.Poster()
	hooks.OnComposeStart(ctx, opts.Palette, opts.Style)
	start := time.Now()

	pal, err := palette.Get(opts.Palette)
	if err != nil {
		hooks.OnComposeComplete(ctx, opts.Palette, opts.Style, 0, time.Since(start), err)
		return poster.Poster{}, false, err
	}

	prof, ok := style.Lookup(opts.Style)
	if !ok {
		opts.Logger.Debug("unknown style, using default", "style", opts.Style, "default", style.Default)
		prof = style.Resolve(opts.Style)
	}

	p := poster.Compose(pal, prof, poster.NewSource(opts.Seed))
	hooks.OnComposeComplete(ctx, opts.Palette, prof.Name, len(p.Layers), time.Since(start), nil)
	return p, !ok, nil
}

// Render produces every format in opts.Formats for p.
func (r *Runner) Render(ctx context.Context, p poster.Poster, opts Options) (map[string][]byte, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Poster()
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		hooks.OnRenderStart(ctx, format)
		start := time.Now()
		data, err := RenderFormat(p, format, opts)
		hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			if errors.GetCode(err) != "" {
				return nil, err
			}
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
