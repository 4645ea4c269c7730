package arkanoid

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/tui-arkanoid/internal/config"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

func baseLayoutParams() LayoutParams {
	return LayoutParams{
		Rows:                     8,
		Columns:                  11,
		SideMargin:               0.5,
		TopMargin:                1,
		BottomMargin:             2.5,
		WidthPercent:             0.9,
		HeightPercent:            0.45,
		HorizontalSpacingPercent: 0.05,
		VerticalSpacingPercent:   0.05,
		PreserveAspect:           true,
		FillPercent:              0.92,
		PrefabSize:               core.V2(2, 0.5),
		HitPoints:                1,
	}
}

func rowCounts(l Layout, rows int) []int {
	counts := make([]int, rows)
	for _, p := range l.Placements {
		counts[p.Row]++
	}
	return counts
}

func TestGenerateRectangleCount(t *testing.T) {
	l, err := Generate(baseLayoutParams(), core.NewViewport(10, 16.0/9))
	if err != nil {
		t.Fatal(err)
	}
	if l.Count() != 88 {
		t.Errorf("count = %d, want 88", l.Count())
	}
	for row, n := range rowCounts(l, 8) {
		if n != 11 {
			t.Errorf("row %d has %d bricks, want 11", row, n)
		}
	}
}

func TestGenerateStairShapes(t *testing.T) {
	tests := []struct {
		shape Shape
		name  string
	}{
		{ShapeStairLeft, "stair left"},
		{ShapeStairRight, "stair right"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseLayoutParams()
			p.Shape = tt.shape
			l, err := Generate(p, core.NewViewport(10, 16.0/9))
			if err != nil {
				t.Fatal(err)
			}

			counts := rowCounts(l, 8)
			want := []int{11, 10, 9, 8, 7, 6, 5, 4}
			for row := range want {
				if counts[row] != want[row] {
					t.Errorf("row %d: %d bricks, want %d", row, counts[row], want[row])
				}
			}
			if want := stairCount(p.Rows, p.Columns); l.Count() != want {
				t.Errorf("count = %d, want %d", l.Count(), want)
			}

			for _, pl := range l.Placements {
				width := RowWidth(pl.Row, p.Columns)
				if tt.shape == ShapeStairLeft && pl.Column >= width {
					t.Errorf("stair left placed column %d in row %d", pl.Column, pl.Row)
				}
				if tt.shape == ShapeStairRight && pl.Column < p.Columns-width {
					t.Errorf("stair right placed column %d in row %d", pl.Column, pl.Row)
				}
			}
		})
	}
}

func TestShapeAdmitsDeepRows(t *testing.T) {
	for row := 10; row < 14; row++ {
		left, right := 0, 0
		for col := 0; col < 11; col++ {
			if ShapeStairLeft.Admits(row, col, 11) {
				left++
			}
			if ShapeStairRight.Admits(row, col, 11) {
				right++
			}
		}
		if left != 1 || right != 1 {
			t.Errorf("row %d: left=%d right=%d, want 1 each", row, left, right)
		}
	}
	if !ShapeStairRight.Admits(12, 10, 11) || ShapeStairRight.Admits(12, 0, 11) {
		t.Error("stair right should keep only the last column in deep rows")
	}
	if !ShapeRectangle.Admits(100, 100, 1) {
		t.Error("rectangle admits everything")
	}
}

func TestGenerateGeometry(t *testing.T) {
	vp := core.Viewport{HalfHeight: 10, Aspect: 1.5, Center: core.V2(2, -1)}
	p := baseLayoutParams()
	l, err := Generate(p, vp)
	if err != nil {
		t.Fatal(err)
	}

	// Horizontally centered on the viewport
	minX, maxX := math.Inf(1), math.Inf(-1)
	maxTop := math.Inf(-1)
	for _, pl := range l.Placements {
		minX = math.Min(minX, pl.Center.X)
		maxX = math.Max(maxX, pl.Center.X)
		maxTop = math.Max(maxTop, pl.Center.Y)
	}
	if !approx((minX+maxX)/2, vp.Center.X) {
		t.Errorf("grid center x = %v, want %v", (minX+maxX)/2, vp.Center.X)
	}

	// Top row hangs below the top margin
	wantTop := vp.TopRight().Y - p.TopMargin - l.CellSize.Y/2
	if !approx(maxTop, wantTop) {
		t.Errorf("top row y = %v, want %v", maxTop, wantTop)
	}

	// Cells plus spacing fill the grid width
	gridW := vp.Width()*p.WidthPercent - 2*p.SideMargin
	span := l.CellSize.X*float64(p.Columns) + l.Spacing.X*float64(p.Columns-1)
	if !approx(span, gridW) {
		t.Errorf("grid span = %v, want %v", span, gridW)
	}

	// Uniform scale with fill applied
	if l.Scale.X != l.Scale.Y {
		t.Errorf("preserve aspect should scale uniformly, got %v", l.Scale)
	}
	want := math.Min(l.CellSize.X/2, l.CellSize.Y/0.5) * p.FillPercent
	if !approx(l.Scale.X, want) {
		t.Errorf("scale = %v, want %v", l.Scale.X, want)
	}
	size := l.Placements[0].Size
	if size.X > l.CellSize.X+1e-9 || size.Y > l.CellSize.Y+1e-9 {
		t.Errorf("brick %v larger than cell %v", size, l.CellSize)
	}
}

func TestGenerateIndependentScale(t *testing.T) {
	p := baseLayoutParams()
	p.PreserveAspect = false
	l, err := Generate(p, core.NewViewport(10, 1.5))
	if err != nil {
		t.Fatal(err)
	}
	size := l.Placements[0].Size
	if !approx(size.X, l.CellSize.X*p.FillPercent) || !approx(size.Y, l.CellSize.Y*p.FillPercent) {
		t.Errorf("size = %v, want cell %v * fill", size, l.CellSize)
	}
}

func TestGenerateRowTint(t *testing.T) {
	p := baseLayoutParams()
	p.TintByRow = true
	p.RowColors = []core.Color{core.ColorRed, core.ColorGreen, core.ColorBlue}
	l, err := Generate(p, core.NewViewport(10, 1.5))
	if err != nil {
		t.Fatal(err)
	}
	for _, pl := range l.Placements {
		if want := p.RowColors[pl.Row%3]; pl.Color != want {
			t.Fatalf("row %d color = %v, want %v", pl.Row, pl.Color, want)
		}
	}

	p.TintByRow = false
	l, _ = Generate(p, core.NewViewport(10, 1.5))
	if l.Placements[0].Color != core.ColorDefault {
		t.Error("untinted bricks should use the default color")
	}
}

func TestGenerateErrors(t *testing.T) {
	if _, err := Generate(baseLayoutParams(), core.Viewport{}); !errors.Is(err, ErrNoViewport) {
		t.Errorf("zero viewport err = %v, want ErrNoViewport", err)
	}

	tests := []struct {
		name   string
		mutate func(*LayoutParams)
	}{
		{"no rows", func(p *LayoutParams) { p.Rows = 0 }},
		{"no columns", func(p *LayoutParams) { p.Columns = -1 }},
		{"zero prefab", func(p *LayoutParams) { p.PrefabSize = core.Vec2{} }},
		{"fill above one", func(p *LayoutParams) { p.FillPercent = 1.5 }},
		{"no coverage", func(p *LayoutParams) { p.WidthPercent = 0 }},
		{"no hit points", func(p *LayoutParams) { p.HitPoints = 0 }},
		{"spacing eats cells", func(p *LayoutParams) { p.HorizontalSpacingPercent = 0.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseLayoutParams()
			tt.mutate(&p)
			if _, err := Generate(p, core.NewViewport(10, 1.5)); !errors.Is(err, ErrInvalidLayout) {
				t.Errorf("err = %v, want ErrInvalidLayout", err)
			}
		})
	}
}

func TestGenerateMarginsExceedArea(t *testing.T) {
	tests := []struct {
		name   string
		vp     core.Viewport
		mutate func(*LayoutParams)
	}{
		{"side margins", core.NewViewport(10, 1.5), func(p *LayoutParams) { p.SideMargin = 100 }},
		{"side margins fill width", core.NewViewport(10, 1.5), func(p *LayoutParams) { p.SideMargin = 13.5 }},
		{"top margin", core.NewViewport(10, 1.5), func(p *LayoutParams) { p.TopMargin = 20 }},
		{"tiny viewport", core.NewViewport(0.5, 1), func(*LayoutParams) {}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseLayoutParams()
			tt.mutate(&p)
			l, err := Generate(p, tt.vp)
			if !errors.Is(err, ErrInvalidLayout) {
				t.Fatalf("err = %v, want ErrInvalidLayout", err)
			}
			if l.Count() != 0 {
				t.Errorf("count = %d, want no placements on error", l.Count())
			}
		})
	}
}

func TestParseShape(t *testing.T) {
	tests := []struct {
		in   string
		want Shape
		ok   bool
	}{
		{"", ShapeRectangle, true},
		{"rectangle", ShapeRectangle, true},
		{"stair_left", ShapeStairLeft, true},
		{"stair-left", ShapeStairLeft, true},
		{"Stair-Right", ShapeStairRight, true},
		{"pyramid", ShapeRectangle, false},
	}
	for _, tt := range tests {
		got, err := ParseShape(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseShape(%q) = %v, %v", tt.in, got, err)
		}
		if err == nil && got.String() != "unknown" {
			if back, _ := ParseShape(got.String()); back != got {
				t.Errorf("String round trip failed for %v", got)
			}
		}
	}
}

func TestRandomShape(t *testing.T) {
	for i, want := range Shapes {
		if got := RandomShape(&scriptedRandom{ints: []int{i}}); got != want {
			t.Errorf("draw %d = %v, want %v", i, got, want)
		}
	}

	seen := map[Shape]bool{}
	rng := core.NewRNG(11)
	for range_i := 0; range_i < 100; range_i++ {
		seen[RandomShape(rng)] = true
	}
	if len(seen) != len(Shapes) {
		t.Errorf("100 draws covered %d shapes", len(seen))
	}
}

func TestLayoutParamsFromConfig(t *testing.T) {
	cfg := config.DefaultArkanoidConfig()
	cfg.Layout.Shape = "stair-right"

	p, err := LayoutParamsFromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if p.Shape != ShapeStairRight || p.Rows != 8 || p.Columns != 11 {
		t.Errorf("params = %+v", p)
	}
	if len(p.RowColors) != 6 || p.RowColors[0] != core.ColorSand {
		t.Errorf("row colors = %v", p.RowColors)
	}

	cfg.Bricks.RowColors = []string{"sand", "mauve"}
	if _, err := LayoutParamsFromConfig(cfg); !errors.Is(err, ErrInvalidLayout) {
		t.Errorf("unknown color err = %v", err)
	}
	cfg = config.DefaultArkanoidConfig()
	cfg.Layout.Shape = "pyramid"
	if _, err := LayoutParamsFromConfig(cfg); !errors.Is(err, ErrInvalidLayout) {
		t.Errorf("unknown shape err = %v", err)
	}
}
