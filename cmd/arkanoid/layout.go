package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-arkanoid/internal/config"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
	"github.com/vovakirdan/tui-arkanoid/internal/games/arkanoid"
	"github.com/vovakirdan/tui-arkanoid/internal/platform/tui"
)

var (
	flagLayoutShape  string
	flagLayoutRows   int
	flagLayoutCols   int
	flagLayoutWidth  int
	flagLayoutHeight int
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Preview a generated brick layout",
	Long: `Generate a brick grid with the configured layout parameters and print it,
colored by row, together with the number of placed bricks.

The preview uses the current terminal size unless --width/--height are given.

Examples:
  arkanoid layout
  arkanoid layout --shape stair-left
  arkanoid layout --rows 6 --cols 9 --width 100 --height 30`,
	Args: cobra.NoArgs,
	Run:  runLayout,
}

var (
	previewBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
	previewTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	previewInfo  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func init() {
	layoutCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	layoutCmd.Flags().StringVar(&flagLayoutShape, "shape", "", "Brick shape: rectangle, stair-left, stair-right (default from config)")
	layoutCmd.Flags().IntVar(&flagLayoutRows, "rows", 0, "Override layout rows")
	layoutCmd.Flags().IntVar(&flagLayoutCols, "cols", 0, "Override layout columns")
	layoutCmd.Flags().IntVar(&flagLayoutWidth, "width", 0, "Preview width in columns (default: terminal width)")
	layoutCmd.Flags().IntVar(&flagLayoutHeight, "height", 0, "Preview height in rows (default: terminal height)")
}

func runLayout(_ *cobra.Command, _ []string) {
	cfg, err := config.LoadArkanoid(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagLayoutShape != "" {
		cfg.Layout.Shape = flagLayoutShape
	}
	if flagLayoutRows > 0 {
		cfg.Layout.Rows = flagLayoutRows
	}
	if flagLayoutCols > 0 {
		cfg.Layout.Columns = flagLayoutCols
	}

	params, err := arkanoid.LayoutParamsFromConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := previewSize()
	vp := arkanoid.ViewportForScreen(width, height)
	l, err := arkanoid.Generate(params, vp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	screen := core.NewScreen(width, height)
	arkanoid.RenderLayout(screen, vp, l)

	fmt.Println(previewTitle.Render(fmt.Sprintf("%s  %dx%d", params.Shape, params.Rows, params.Columns)))
	fmt.Println(previewBorder.Render(tui.RenderScreen(screen)))
	fmt.Println(previewInfo.Render(fmt.Sprintf(
		"placed %d bricks  cell %.2fx%.2f  brick %.2fx%.2f  viewport %.1fx%.1f",
		l.Count(), l.CellSize.X, l.CellSize.Y,
		params.PrefabSize.X*l.Scale.X, params.PrefabSize.Y*l.Scale.Y,
		vp.Width(), vp.Height(),
	)))
}

// previewSize picks the flag size, else the terminal size minus room for
// the border and captions.
func previewSize() (width, height int) {
	width, height = 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w-2, h-4
	}
	if flagLayoutWidth > 0 {
		width = flagLayoutWidth
	}
	if flagLayoutHeight > 0 {
		height = flagLayoutHeight
	}
	return max(width, 10), max(height, 5)
}
