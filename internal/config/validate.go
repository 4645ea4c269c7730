package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...)
}

// Validate checks ranges the simulation depends on. All violations are
// reported together.
func (c ArkanoidConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, invalid(format, args...))
		}
	}

	b := c.Ball
	check(b.InitialSpeed > 0, "ball.initial_speed must be positive, got %v", b.InitialSpeed)
	check(b.MaxSpeed >= b.InitialSpeed, "ball.max_speed %v below initial_speed %v", b.MaxSpeed, b.InitialSpeed)
	check(b.SpeedIncrease >= 0, "ball.speed_increase must not be negative, got %v", b.SpeedIncrease)
	check(b.MinVerticalRatio >= 0.05 && b.MinVerticalRatio <= 0.45,
		"ball.min_vertical_ratio must be in [0.05, 0.45], got %v", b.MinVerticalRatio)
	check(b.Radius > 0, "ball.radius must be positive, got %v", b.Radius)
	check(b.HorizontalPadding >= 0 && b.VerticalPadding >= 0, "ball paddings must not be negative")

	p := c.Paddle
	check(p.ScreenWidthPercent >= 10 && p.ScreenWidthPercent <= 50,
		"paddle.screen_width_percent must be in [10, 50], got %v", p.ScreenWidthPercent)
	check(p.Height > 0, "paddle.height must be positive, got %v", p.Height)
	check(p.Padding >= 0, "paddle.padding must not be negative, got %v", p.Padding)
	check(p.MovementSpeed >= 0, "paddle.movement_speed must not be negative, got %v", p.MovementSpeed)
	check(p.DeathZoneOffset > 0 && p.DeathZoneOffset < p.BottomOffset,
		"paddle.death_zone_offset must be in (0, bottom_offset %v), got %v", p.BottomOffset, p.DeathZoneOffset)

	l := c.Layout
	check(l.Rows >= 1, "layout.rows must be at least 1, got %d", l.Rows)
	check(l.Columns >= 1, "layout.columns must be at least 1, got %d", l.Columns)
	check(l.SideMargin >= 0 && l.TopMargin >= 0 && l.BottomMargin >= 0, "layout margins must not be negative")
	check(l.WidthPercent >= 0.1 && l.WidthPercent <= 1, "layout.width_percent must be in [0.1, 1], got %v", l.WidthPercent)
	check(l.HeightPercent >= 0.1 && l.HeightPercent <= 0.8, "layout.height_percent must be in [0.1, 0.8], got %v", l.HeightPercent)
	check(l.HorizontalSpacingPercent >= 0 && l.HorizontalSpacingPercent <= 0.25,
		"layout.horizontal_spacing_percent must be in [0, 0.25], got %v", l.HorizontalSpacingPercent)
	check(l.VerticalSpacingPercent >= 0 && l.VerticalSpacingPercent <= 0.25,
		"layout.vertical_spacing_percent must be in [0, 0.25], got %v", l.VerticalSpacingPercent)
	check(l.FillPercent > 0 && l.FillPercent <= 1, "layout.fill_percent must be in (0, 1], got %v", l.FillPercent)
	switch l.Shape {
	case "", "rectangle", "stair_left", "stair_right":
	default:
		check(false, "layout.shape %q is not one of rectangle, stair_left, stair_right", l.Shape)
	}

	k := c.Bricks
	check(k.HitPoints >= 1, "bricks.hit_points must be at least 1, got %d", k.HitPoints)
	check(k.PointsPerBrick >= 0, "bricks.points_per_brick must not be negative, got %d", k.PointsPerBrick)
	check(k.PrefabWidth > 0 && k.PrefabHeight > 0, "bricks prefab size must be positive")
	check(k.DecayTicks >= 0 && k.FlashTicks >= 0, "bricks decay and flash ticks must not be negative")
	for _, name := range k.RowColors {
		_, ok := core.ParseColor(name)
		check(ok, "bricks.row_colors: unknown color %q", name)
	}

	a := c.Audio
	check(a.MinPitch > 0 && a.MaxPitch >= a.MinPitch,
		"audio pitch range [%v, %v] is invalid", a.MinPitch, a.MaxPitch)
	check(a.Volume >= 0 && a.Volume <= 1, "audio.volume must be in [0, 1], got %v", a.Volume)

	d := c.Difficulty
	check(d.InitialLevel >= 0 && d.InitialLevel <= 1, "difficulty.initial_level must be in [0, 1], got %v", d.InitialLevel)
	switch d.Progression.Type {
	case "", "none", "rounds":
	default:
		check(false, "difficulty.progression.type %q is not one of rounds, none", d.Progression.Type)
	}

	return errors.Join(errs...)
}
