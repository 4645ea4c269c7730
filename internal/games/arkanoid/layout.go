package arkanoid

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-arkanoid/internal/config"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

var (
	// ErrNoViewport is returned when a layout is requested before a usable
	// viewport exists.
	ErrNoViewport = errors.New("arkanoid: no viewport for layout")

	// ErrInvalidLayout is returned for layout parameters that cannot produce
	// a grid.
	ErrInvalidLayout = errors.New("arkanoid: invalid layout parameters")
)

// Shape selects which grid cells receive a brick.
type Shape int

const (
	ShapeRectangle Shape = iota
	ShapeStairLeft
	ShapeStairRight
)

// Shapes lists every shape in draw order for random selection.
var Shapes = []Shape{ShapeRectangle, ShapeStairLeft, ShapeStairRight}

// String returns the config name of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeRectangle:
		return "rectangle"
	case ShapeStairLeft:
		return "stair_left"
	case ShapeStairRight:
		return "stair_right"
	default:
		return "unknown"
	}
}

// ParseShape accepts config and CLI spellings (stair_left, stair-left).
// An empty name is a rectangle.
func ParseShape(name string) (Shape, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_") {
	case "", "rectangle", "rect":
		return ShapeRectangle, nil
	case "stair_left":
		return ShapeStairLeft, nil
	case "stair_right":
		return ShapeStairRight, nil
	default:
		return ShapeRectangle, fmt.Errorf("%w: unknown shape %q", ErrInvalidLayout, name)
	}
}

// RandomShape draws a shape uniformly from Shapes.
func RandomShape(r core.Random) Shape {
	return Shapes[r.Intn(len(Shapes))]
}

// RowWidth returns how many columns row r admits under the stair shapes.
func RowWidth(row, columns int) int {
	return core.Clamp(columns-row, 1, columns)
}

// Admits reports whether the cell at (row, col) receives a brick.
func (s Shape) Admits(row, col, columns int) bool {
	switch s {
	case ShapeStairLeft:
		return col < RowWidth(row, columns)
	case ShapeStairRight:
		return col >= columns-RowWidth(row, columns)
	default:
		return true
	}
}

// LayoutParams configures one generation pass.
type LayoutParams struct {
	Rows, Columns int

	SideMargin   float64
	TopMargin    float64
	BottomMargin float64

	WidthPercent  float64 // Share of viewport width used by the grid area
	HeightPercent float64 // Share of viewport height used by the grid area

	HorizontalSpacingPercent float64 // Gap between columns as a share of grid width
	VerticalSpacingPercent   float64 // Gap between rows as a share of grid height

	PreserveAspect bool
	FillPercent    float64
	PrefabSize     core.Vec2 // Unscaled brick size

	Shape     Shape
	HitPoints int

	TintByRow bool
	RowColors []core.Color
}

// LayoutParamsFromConfig maps the layout and brick sections of a config to
// generator parameters, resolving the shape and row color names.
func LayoutParamsFromConfig(cfg config.ArkanoidConfig) (LayoutParams, error) {
	shape, err := ParseShape(cfg.Layout.Shape)
	if err != nil {
		return LayoutParams{}, err
	}
	colors := make([]core.Color, 0, len(cfg.Bricks.RowColors))
	for _, name := range cfg.Bricks.RowColors {
		c, ok := core.ParseColor(name)
		if !ok {
			return LayoutParams{}, fmt.Errorf("%w: unknown row color %q", ErrInvalidLayout, name)
		}
		colors = append(colors, c)
	}

	return LayoutParams{
		Rows:                     cfg.Layout.Rows,
		Columns:                  cfg.Layout.Columns,
		SideMargin:               cfg.Layout.SideMargin,
		TopMargin:                cfg.Layout.TopMargin,
		BottomMargin:             cfg.Layout.BottomMargin,
		WidthPercent:             cfg.Layout.WidthPercent,
		HeightPercent:            cfg.Layout.HeightPercent,
		HorizontalSpacingPercent: cfg.Layout.HorizontalSpacingPercent,
		VerticalSpacingPercent:   cfg.Layout.VerticalSpacingPercent,
		PreserveAspect:           cfg.Layout.PreserveAspect,
		FillPercent:              cfg.Layout.FillPercent,
		PrefabSize:               core.V2(cfg.Bricks.PrefabWidth, cfg.Bricks.PrefabHeight),
		Shape:                    shape,
		HitPoints:                cfg.Bricks.HitPoints,
		TintByRow:                cfg.Bricks.TintByRow,
		RowColors:                colors,
	}, nil
}

// Validate rejects parameters that cannot produce a grid.
func (p LayoutParams) Validate() error {
	switch {
	case p.Rows < 1 || p.Columns < 1:
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidLayout, p.Rows, p.Columns)
	case p.PrefabSize.X <= 0 || p.PrefabSize.Y <= 0:
		return fmt.Errorf("%w: prefab size %.3fx%.3f", ErrInvalidLayout, p.PrefabSize.X, p.PrefabSize.Y)
	case p.FillPercent <= 0 || p.FillPercent > 1:
		return fmt.Errorf("%w: fill percent %.3f", ErrInvalidLayout, p.FillPercent)
	case p.WidthPercent <= 0 || p.HeightPercent <= 0:
		return fmt.Errorf("%w: coverage %.3fx%.3f", ErrInvalidLayout, p.WidthPercent, p.HeightPercent)
	case p.HitPoints < 1:
		return fmt.Errorf("%w: hit points %d", ErrInvalidLayout, p.HitPoints)
	}
	return nil
}

// Placement is one generated brick slot.
type Placement struct {
	Row, Column int
	Center      core.Vec2
	Size        core.Vec2
	Color       core.Color
}

// Layout is the result of a generation pass.
type Layout struct {
	Placements []Placement
	CellSize   core.Vec2
	Spacing    core.Vec2
	Scale      core.Vec2 // Applied to PrefabSize, fill included
	GridSize   core.Vec2
}

// Count returns the number of placed bricks.
func (l Layout) Count() int {
	return len(l.Placements)
}

// Generate computes brick placements for a viewport. The grid is centered
// horizontally on the viewport and hangs below the top margin.
func Generate(p LayoutParams, vp core.Viewport) (Layout, error) {
	if err := vp.Validate(); err != nil {
		return Layout{}, fmt.Errorf("%w: %w", ErrNoViewport, err)
	}
	if err := p.Validate(); err != nil {
		return Layout{}, err
	}

	usableW := vp.Width() * p.WidthPercent
	usableH := vp.Height() * p.HeightPercent
	gridW := usableW - 2*p.SideMargin
	gridH := usableH - p.TopMargin - p.BottomMargin
	if gridW <= 0 {
		return Layout{}, fmt.Errorf("%w: side margins %.3f leave no grid width in %.3f", ErrInvalidLayout, p.SideMargin, usableW)
	}
	if gridH <= 0 {
		return Layout{}, fmt.Errorf("%w: top and bottom margins %.3f+%.3f leave no grid height in %.3f",
			ErrInvalidLayout, p.TopMargin, p.BottomMargin, usableH)
	}

	spacing := core.V2(gridW*p.HorizontalSpacingPercent, gridH*p.VerticalSpacingPercent)
	cell := core.V2(
		(gridW-spacing.X*float64(p.Columns-1))/float64(p.Columns),
		(gridH-spacing.Y*float64(p.Rows-1))/float64(p.Rows),
	)
	if cell.X <= 0 || cell.Y <= 0 {
		return Layout{}, fmt.Errorf("%w: spacing leaves no room for cells (%.3fx%.3f)", ErrInvalidLayout, cell.X, cell.Y)
	}

	scale := core.V2(cell.X/p.PrefabSize.X, cell.Y/p.PrefabSize.Y)
	if p.PreserveAspect {
		s := math.Min(scale.X, scale.Y)
		scale = core.V2(s, s)
	}
	scale = scale.Scale(p.FillPercent)
	size := core.V2(p.PrefabSize.X*scale.X, p.PrefabSize.Y*scale.Y)

	left := vp.Center.X - gridW/2
	top := vp.TopRight().Y - p.TopMargin
	start := core.V2(left+cell.X/2, top-cell.Y/2)
	step := cell.Add(spacing)

	out := Layout{
		CellSize: cell,
		Spacing:  spacing,
		Scale:    scale,
		GridSize: core.V2(gridW, gridH),
	}
	for row := 0; row < p.Rows; row++ {
		color := core.ColorDefault
		if p.TintByRow && len(p.RowColors) > 0 {
			color = p.RowColors[row%len(p.RowColors)]
		}
		for col := 0; col < p.Columns; col++ {
			if !p.Shape.Admits(row, col, p.Columns) {
				continue
			}
			out.Placements = append(out.Placements, Placement{
				Row:    row,
				Column: col,
				Center: core.V2(start.X+float64(col)*step.X, start.Y-float64(row)*step.Y),
				Size:   size,
				Color:  color,
			})
		}
	}
	return out, nil
}
