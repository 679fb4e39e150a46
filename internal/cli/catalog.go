package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blobposter/pkg/palette"
	"github.com/matzehuels/blobposter/pkg/style"
)

// palettesCommand lists the palette catalog.
func (c *CLI) palettesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "palettes",
		Short: "List the color palettes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(c.stdout(), paletteTable(palette.All()))
			return nil
		},
	}
}

// stylesCommand lists the visual styles.
func (c *CLI) stylesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List the visual styles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(c.stdout(), styleTable(style.All()))
			fmt.Fprintln(c.stdout(), StyleDim.Render(fmt.Sprintf("Unknown styles fall back to %q.", style.Default)))
			return nil
		},
	}
}

func paletteTable(palettes []palette.Palette) string {
	rows := make([][]string, len(palettes))
	for i, p := range palettes {
		rows[i] = []string{p.Name, swatch(p.Colors), strings.Join(p.Hex(), " ")}
	}
	return catalogTable([]string{"Palette", "Colors", "Hex"}, rows, 2)
}

func styleTable(profiles []style.Profile) string {
	rows := make([][]string, len(profiles))
	for i, p := range profiles {
		jitter := "—"
		if p.Jitter {
			jitter = iconSuccess
		}
		rows[i] = []string{p.Name, fmt.Sprintf("%.2f – %.2f", p.AlphaMin, p.AlphaMax), jitter}
	}
	return catalogTable([]string{"Style", "Alpha", "Jitter"}, rows, -1)
}

// catalogTable renders rows in a rounded table. The dimCol column, if any,
// is drawn muted.
func catalogTable(headers []string, rows [][]string, dimCol int) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == dimCol:
				return StyleDim
			case col == 0:
				return StyleValue
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
