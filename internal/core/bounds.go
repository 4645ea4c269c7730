package core

import (
	"errors"
	"fmt"
)

// ErrDegenerateEnvelope is reported when an object's extent plus padding does
// not fit inside the viewport, so no valid center range exists.
var ErrDegenerateEnvelope = errors.New("core: degenerate envelope")

// ErrInvalidViewport is reported for a viewport with non-positive size.
var ErrInvalidViewport = errors.New("core: invalid viewport")

// Axis names an envelope axis.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// EnvelopeError describes a degenerate envelope on one axis.
type EnvelopeError struct {
	Axis Axis
	Min  float64
	Max  float64
}

func (e *EnvelopeError) Error() string {
	return fmt.Sprintf("core: degenerate envelope on %s axis: min %.3f >= max %.3f (object does not fit the viewport)",
		e.Axis, e.Min, e.Max)
}

// Unwrap lets errors.Is match ErrDegenerateEnvelope.
func (e *EnvelopeError) Unwrap() error {
	return ErrDegenerateEnvelope
}

// Viewport is an orthographic camera view centered at Center.
type Viewport struct {
	HalfHeight float64 // Orthographic half-height in world units
	Aspect     float64 // Width / height
	Center     Vec2
}

// NewViewport creates a viewport centered on the origin.
func NewViewport(halfHeight, aspect float64) Viewport {
	return Viewport{HalfHeight: halfHeight, Aspect: aspect}
}

// Height returns the full visible height.
func (v Viewport) Height() float64 {
	return v.HalfHeight * 2
}

// Width returns the full visible width.
func (v Viewport) Width() float64 {
	return v.Height() * v.Aspect
}

// BottomLeft returns the world position of the lower-left corner.
func (v Viewport) BottomLeft() Vec2 {
	return Vec2{X: v.Center.X - v.Width()/2, Y: v.Center.Y - v.HalfHeight}
}

// TopRight returns the world position of the upper-right corner.
func (v Viewport) TopRight() Vec2 {
	return Vec2{X: v.Center.X + v.Width()/2, Y: v.Center.Y + v.HalfHeight}
}

// Validate reports whether the viewport has a usable size.
func (v Viewport) Validate() error {
	if !(v.HalfHeight > 0) || !(v.Aspect > 0) {
		return fmt.Errorf("%w: half-height %.3f, aspect %.3f", ErrInvalidViewport, v.HalfHeight, v.Aspect)
	}
	return nil
}

// Envelope is the inclusive range an object's center may occupy.
// When Vertical is false only the X range is meaningful.
type Envelope struct {
	MinX, MaxX float64
	MinY, MaxY float64
	Vertical   bool
}

// HorizontalEnvelope computes the X range for an object with the given
// half-width and padding. It returns an *EnvelopeError when the object does
// not fit, never a zero-width or inverted range.
func HorizontalEnvelope(vp Viewport, halfExtent, padding float64) (Envelope, error) {
	if err := vp.Validate(); err != nil {
		return Envelope{}, err
	}
	bl, tr := vp.BottomLeft(), vp.TopRight()
	env := Envelope{
		MinX: bl.X + halfExtent + padding,
		MaxX: tr.X - halfExtent - padding,
	}
	if env.MinX >= env.MaxX {
		return Envelope{}, &EnvelopeError{Axis: AxisX, Min: env.MinX, Max: env.MaxX}
	}
	return env, nil
}

// AreaEnvelope computes the X and Y ranges for an object with the given
// half-extents and per-axis padding.
func AreaEnvelope(vp Viewport, halfExtent, padding Vec2) (Envelope, error) {
	env, err := HorizontalEnvelope(vp, halfExtent.X, padding.X)
	if err != nil {
		return Envelope{}, err
	}
	bl, tr := vp.BottomLeft(), vp.TopRight()
	env.MinY = bl.Y + halfExtent.Y + padding.Y
	env.MaxY = tr.Y - halfExtent.Y - padding.Y
	if env.MinY >= env.MaxY {
		return Envelope{}, &EnvelopeError{Axis: AxisY, Min: env.MinY, Max: env.MaxY}
	}
	env.Vertical = true
	return env, nil
}

// ClampX restricts x to [MinX, MaxX].
func (e Envelope) ClampX(x float64) float64 {
	return ClampF(x, e.MinX, e.MaxX)
}

// Clamp restricts p to the envelope and reports which axes were clamped.
// The Y axis is left untouched for a horizontal-only envelope.
func (e Envelope) Clamp(p Vec2) (out Vec2, clampedX, clampedY bool) {
	out = p
	out.X = e.ClampX(p.X)
	clampedX = out.X != p.X
	if e.Vertical {
		out.Y = ClampF(p.Y, e.MinY, e.MaxY)
		clampedY = out.Y != p.Y
	}
	return out, clampedX, clampedY
}

// Contains reports whether p lies inside the envelope (inclusive).
func (e Envelope) Contains(p Vec2) bool {
	if p.X < e.MinX || p.X > e.MaxX {
		return false
	}
	if e.Vertical && (p.Y < e.MinY || p.Y > e.MaxY) {
		return false
	}
	return true
}
