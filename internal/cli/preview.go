package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blobposter/pkg/palette"
	"github.com/matzehuels/blobposter/pkg/pipeline"
	"github.com/matzehuels/blobposter/pkg/style"
)

// previewFlags holds flag values for the preview command.
type previewFlags struct {
	palette     string
	style       string
	seed        uint64
	columns     int
	interactive bool
}

// previewCommand creates the preview command, which draws posters in the
// terminal.
func (c *CLI) previewCommand() *cobra.Command {
	var flags previewFlags

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Draw a poster in the terminal",
		Long: `Draw a poster in the terminal using half-block characters.

With --interactive, palettes and styles can be cycled and new posters
generated from the keyboard.`,
		Example: `  # A vivid poster from the pastel palette
  blobposter preview --palette "Pastel colors only" --style vivid

  # Reproduce a poster
  blobposter preview --seed 42

  # Browse interactively
  blobposter preview -i`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Palette: flags.palette,
				Style:   flags.style,
				Seed:    flags.seed,
				Columns: flags.columns,
				Formats: []string{pipeline.FormatANSI},
			}
			if flags.interactive {
				return c.runInteractivePreview(cmd.Context(), opts)
			}
			return c.runPreview(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&flags.palette, "palette", "p", pipeline.DefaultPalette, "color palette")
	cmd.Flags().StringVarP(&flags.style, "style", "s", pipeline.DefaultStyle, "visual style")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "random seed (0 picks one)")
	cmd.Flags().IntVar(&flags.columns, "columns", pipeline.DefaultColumns, "preview width in terminal cells")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "browse palettes and styles interactively")

	_ = cmd.RegisterFlagCompletionFunc("palette", cobra.FixedCompletions(palette.Names(), cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("style", cobra.FixedCompletions(style.Names(), cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// runPreview renders one poster and prints it.
func (c *CLI) runPreview(ctx context.Context, opts pipeline.Options) error {
	opts.Logger = loggerFromContext(ctx)
	result, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.stdout(), string(result.Artifacts[pipeline.FormatANSI]))
	if result.StyleFallback {
		c.printWarning("unknown style %q, using %s", opts.Style, style.Default)
	}
	fmt.Fprintln(c.stdout(), StyleDim.Render(previewCaption(result.Poster.Palette, result.Poster.Style.Name, result.Seed)))
	return nil
}

func previewCaption(pal, sty string, seed uint64) string {
	return fmt.Sprintf("%s · %s · seed %d", pal, sty, seed)
}

// runInteractivePreview starts the full-screen browser. Pipeline logging is
// discarded while the alternate screen is active.
func (c *CLI) runInteractivePreview(ctx context.Context, opts pipeline.Options) error {
	if err := pipeline.ValidatePalette(opts.Palette); err != nil {
		return err
	}
	runner := pipeline.NewRunner(log.NewWithOptions(io.Discard, log.Options{}))
	m := newPreviewModel(runner, opts)

	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if pm, ok := final.(previewModel); ok && pm.seed != 0 {
		c.printInfo("last poster: %s", previewCaption(pm.palettes[pm.paletteIdx], pm.styles[pm.styleIdx], pm.seed))
	}
	return nil
}

// =============================================================================
// previewModel - Interactive poster browser
// =============================================================================

// posterMsg carries a rendered poster back to the model.
type posterMsg struct {
	gen  int
	seed uint64
	art  string
	err  error
}

// previewModel is the bubbletea model for the interactive preview.
type previewModel struct {
	runner *pipeline.Runner
	opts   pipeline.Options

	palettes   []string
	styles     []string
	paletteIdx int
	styleIdx   int

	seed uint64
	gen  int
	art  string
	err  error
}

// newPreviewModel starts at the palette and style named in opts. An unknown
// style starts at the default entry.
func newPreviewModel(runner *pipeline.Runner, opts pipeline.Options) previewModel {
	m := previewModel{
		runner:   runner,
		opts:     opts,
		palettes: palette.Names(),
		styles:   style.Names(),
		seed:     opts.Seed,
	}
	m.paletteIdx = max(slices.Index(m.palettes, opts.Palette), 0)
	m.styleIdx = max(slices.Index(m.styles, style.Resolve(opts.Style).Name), 0)
	if m.seed == 0 {
		m.seed = pipeline.NewSeed()
	}
	return m
}

func (m previewModel) Init() tea.Cmd {
	return m.generate()
}

// generate renders the current selection in the background.
func (m previewModel) generate() tea.Cmd {
	opts := m.opts
	opts.Palette = m.palettes[m.paletteIdx]
	opts.Style = m.styles[m.styleIdx]
	opts.Seed = m.seed
	opts.Formats = []string{pipeline.FormatANSI}

	runner, gen := m.runner, m.gen
	return func() tea.Msg {
		res, err := runner.Execute(context.Background(), opts)
		if err != nil {
			return posterMsg{gen: gen, err: err}
		}
		return posterMsg{gen: gen, seed: res.Seed, art: string(res.Artifacts[pipeline.FormatANSI])}
	}
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case posterMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.art, m.err = msg.art, msg.err
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "p", "right", "l":
			m.paletteIdx = (m.paletteIdx + 1) % len(m.palettes)
		case "P", "left", "h":
			m.paletteIdx = (m.paletteIdx + len(m.palettes) - 1) % len(m.palettes)
		case "s", "down", "j":
			m.styleIdx = (m.styleIdx + 1) % len(m.styles)
		case "S", "up", "k":
			m.styleIdx = (m.styleIdx + len(m.styles) - 1) % len(m.styles)
		case "r", "enter", " ":
			m.seed = pipeline.NewSeed()
		default:
			return m, nil
		}
		m.gen++
		return m, m.generate()
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Generative Abstract Poster"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ palette  ↑/↓ style  r regenerate  q quit"))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error())
	case m.art == "":
		b.WriteString(StyleDim.Render("Generating..."))
	default:
		b.WriteString(m.art)
	}
	b.WriteString("\n\n")
	b.WriteString(styleHeader.Render("Palette ") + swatchFor(m.palettes[m.paletteIdx]) + " " + StyleValue.Render(m.palettes[m.paletteIdx]))
	b.WriteString("\n")
	b.WriteString(styleHeader.Render("Style   ") + StyleValue.Render(m.styles[m.styleIdx]))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("seed %d", m.seed)))

	return b.String()
}

func swatchFor(name string) string {
	p, err := palette.Get(name)
	if err != nil {
		return ""
	}
	return swatch(p.Colors)
}
