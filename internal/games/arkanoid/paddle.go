package arkanoid

import "github.com/vovakirdan/tui-arkanoid/internal/core"

// Paddle is the player-controlled bar. Its X is always kept inside the
// horizontal envelope computed for the current width and viewport.
type Paddle struct {
	Pos     core.Vec2
	Width   float64
	Height  float64
	Padding float64

	env     core.Envelope
	bounded bool
}

// NewPaddle creates an unbounded paddle. Call Fit before moving it.
func NewPaddle(height, padding float64) *Paddle {
	return &Paddle{Height: height, Padding: padding}
}

// Fit sizes the paddle for a viewport and recomputes its envelope.
// On error the paddle keeps its position but refuses to move until a
// successful Fit.
func (p *Paddle) Fit(vp core.Viewport, width, y float64) error {
	p.Width = width
	p.Pos.Y = y
	env, err := core.HorizontalEnvelope(vp, width/2, p.Padding)
	if err != nil {
		p.bounded = false
		return err
	}
	p.env = env
	p.bounded = true
	p.Pos.X = env.ClampX(p.Pos.X)
	return nil
}

// Envelope returns the current envelope and whether it is valid.
func (p *Paddle) Envelope() (core.Envelope, bool) {
	return p.env, p.bounded
}

// MoveToTarget clamps targetX into the envelope, applies it and returns the
// applied X.
func (p *Paddle) MoveToTarget(targetX float64) float64 {
	if !p.bounded {
		return p.Pos.X
	}
	p.Pos.X = p.env.ClampX(targetX)
	return p.Pos.X
}

// MoveBy moves the paddle relative to its position.
func (p *Paddle) MoveBy(dx float64) float64 {
	return p.MoveToTarget(p.Pos.X + dx)
}

// Center puts the paddle in the middle of its envelope.
func (p *Paddle) Center() {
	if p.bounded {
		p.Pos.X = (p.env.MinX + p.env.MaxX) / 2
	}
}

// Box returns the collision box.
func (p *Paddle) Box() core.Box {
	return core.Box{Center: p.Pos, Half: core.V2(p.Width/2, p.Height/2)}
}

// Top returns the Y of the paddle's upper edge.
func (p *Paddle) Top() float64 {
	return p.Pos.Y + p.Height/2
}
