package arkanoid

import (
	"math"

	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

// contactSkin is the extra gap left after pushing the ball out of a box.
const contactSkin = 1e-6

// verticalEpsilon floors the radicand when the horizontal component is
// rebuilt, so it never goes negative.
const verticalEpsilon = 0.01

// BallParams holds the tuning the ball engine reads every step.
type BallParams struct {
	InitialSpeed     float64
	MaxSpeed         float64
	SpeedIncrease    float64 // Units per second gained each second
	MinVerticalRatio float64
	Radius           float64
	Padding          core.Vec2
}

// Ball owns the ball state: position, velocity and the launched flag.
type Ball struct {
	Pos      core.Vec2
	Vel      core.Vec2
	Launched bool

	params      BallParams
	launchSpeed float64
	rng         core.Random

	vp      core.Viewport
	env     core.Envelope
	bounded bool
}

// NewBall creates a resting ball. rng supplies launch angles and tie-break
// signs.
func NewBall(params BallParams, rng core.Random) *Ball {
	return &Ball{params: params, launchSpeed: math.Min(params.InitialSpeed, params.MaxSpeed), rng: rng}
}

// Params returns the ball tuning.
func (b *Ball) Params() BallParams {
	return b.params
}

// SetLaunchSpeed overrides the speed used by the next Launch, capped at
// MaxSpeed.
func (b *Ball) SetLaunchSpeed(speed float64) {
	b.launchSpeed = math.Min(speed, b.params.MaxSpeed)
}

// LaunchSpeed returns the speed the next Launch will use.
func (b *Ball) LaunchSpeed() float64 {
	return b.launchSpeed
}

// UpdateBounds recomputes the 2D envelope for a viewport and pulls the ball
// inside it. On error the ball is left unbounded and no clamping happens
// until a successful update.
func (b *Ball) UpdateBounds(vp core.Viewport) error {
	b.vp = vp
	half := core.V2(b.params.Radius, b.params.Radius)
	env, err := core.AreaEnvelope(vp, half, b.params.Padding)
	if err != nil {
		b.bounded = false
		return err
	}
	b.env = env
	b.bounded = true
	b.contain(false)
	return nil
}

// Unbind forgets the viewport and envelope. Step stops clamping and Reset
// stops rebinding until UpdateBounds succeeds.
func (b *Ball) Unbind() {
	b.vp = core.Viewport{}
	b.env = core.Envelope{}
	b.bounded = false
}

// Envelope returns the current envelope and whether it is valid.
func (b *Ball) Envelope() (core.Envelope, bool) {
	return b.env, b.bounded
}

// Speed returns the velocity magnitude.
func (b *Ball) Speed() float64 {
	return b.Vel.Len()
}

// Box returns the collision box.
func (b *Ball) Box() core.Box {
	return core.Box{Center: b.Pos, Half: core.V2(b.params.Radius, b.params.Radius)}
}

// Launch sends a resting ball upward with a bounded random lateral component.
// It is a no-op for a ball that is already launched.
func (b *Ball) Launch() bool {
	if b.Launched {
		return false
	}
	dir := core.V2(core.RangeF(b.rng, -0.5, 0.5), 1).Normalized()
	b.Vel = dir.Scale(b.launchSpeed)
	b.Launched = true
	return true
}

// Reset zeroes velocity, clears the launched flag and recomputes bounds for
// the last known viewport.
func (b *Ball) Reset() error {
	b.Vel = core.Vec2{}
	b.Launched = false
	if b.vp == (core.Viewport{}) {
		return nil
	}
	return b.UpdateBounds(b.vp)
}

// Follow parks a resting ball above the paddle.
func (b *Ball) Follow(p *Paddle, offset float64) {
	if b.Launched {
		return
	}
	b.Pos = core.V2(p.Pos.X, p.Pos.Y+offset)
}

// Step advances a launched ball by dt seconds: speed ramp, vertical ratio,
// integration, then envelope clamping with reflection. It reports which axes
// were clamped.
func (b *Ball) Step(dt float64) (clampedX, clampedY bool) {
	if !b.Launched {
		return false, false
	}
	b.rampSpeed(dt)
	b.EnsureVertical()
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	clampedX, clampedY = b.contain(true)
	if clampedX || clampedY {
		b.EnsureVertical()
	}
	return clampedX, clampedY
}

// rampSpeed grows the speed magnitude by SpeedIncrease*dt up to the cap.
func (b *Ball) rampSpeed(dt float64) {
	speed := b.Vel.Len()
	if speed == 0 {
		return
	}
	next := math.Min(speed+b.params.SpeedIncrease*dt, b.params.MaxSpeed)
	if next == speed {
		return
	}
	b.Vel = b.Vel.Scale(next / speed)
}

// contain clamps the position into the envelope. With reflect set, each
// clamped axis gets its velocity pointed back inside.
func (b *Ball) contain(reflect bool) (clampedX, clampedY bool) {
	if !b.bounded {
		return false, false
	}
	before := b.Pos
	b.Pos, clampedX, clampedY = b.env.Clamp(b.Pos)
	if !reflect {
		return clampedX, clampedY
	}
	if clampedX {
		if before.X < b.env.MinX {
			b.Vel.X = math.Abs(b.Vel.X)
		} else {
			b.Vel.X = -math.Abs(b.Vel.X)
		}
	}
	if clampedY {
		if before.Y < b.env.MinY {
			b.Vel.Y = math.Abs(b.Vel.Y)
		} else {
			b.Vel.Y = -math.Abs(b.Vel.Y)
		}
	}
	return clampedX, clampedY
}

// EnsureVertical applies EnforceMinVertical to the ball velocity.
func (b *Ball) EnsureVertical() {
	b.Vel = EnforceMinVertical(b.Vel, b.params.MinVerticalRatio, b.rng)
}

// EnforceMinVertical keeps at least ratio of the speed on the Y axis while
// preserving the speed. Zero components pick a random sign.
func EnforceMinVertical(v core.Vec2, ratio float64, rng core.Random) core.Vec2 {
	speed := v.Len()
	if speed == 0 {
		return v
	}
	minVertical := speed * ratio
	if math.Abs(v.Y) >= minVertical {
		return v
	}

	sy := core.SignF(v.Y)
	if sy == 0 {
		sy = core.RandomSign(rng)
	}
	sx := core.SignF(v.X)
	if sx == 0 {
		sx = core.RandomSign(rng)
	}
	out := core.V2(0, minVertical*sy)
	out.X = math.Sqrt(math.Max(speed*speed-out.Y*out.Y, verticalEpsilon)) * sx
	return out
}

// BounceOffPaddle steers the ball by where it struck the paddle. The speed is
// unchanged; only the direction follows normalize(hitFactor, 1).
func (b *Ball) BounceOffPaddle(p *Paddle) {
	speed := b.Vel.Len()
	b.Vel = core.V2(HitFactor(b.Pos.X, p.Pos.X, p.Width), 1).Normalized().Scale(speed)
	b.EnsureVertical()
	b.Pos.Y = math.Max(b.Pos.Y, p.Top()+b.params.Radius)
	b.contain(false)
}

// HitFactor maps the contact offset from the paddle center to [-1, 1].
func HitFactor(ballX, paddleX, paddleWidth float64) float64 {
	if paddleWidth <= 0 {
		return 0
	}
	return core.ClampF(2*(ballX-paddleX)/paddleWidth, -1, 1)
}

// BounceOffBox reflects the ball off a solid box. The axis with the smaller
// penetration is the one hit; that velocity component is pointed away from
// the box and the ball is pushed out along it.
func (b *Ball) BounceOffBox(box core.Box) {
	dx, dy := b.Box().Overlap(box)
	if dx <= 0 || dy <= 0 {
		return
	}
	if dx < dy {
		if b.Pos.X < box.Center.X {
			b.Vel.X = -math.Abs(b.Vel.X)
			b.Pos.X -= dx + contactSkin
		} else {
			b.Vel.X = math.Abs(b.Vel.X)
			b.Pos.X += dx + contactSkin
		}
	} else {
		if b.Pos.Y < box.Center.Y {
			b.Vel.Y = -math.Abs(b.Vel.Y)
			b.Pos.Y -= dy + contactSkin
		} else {
			b.Vel.Y = math.Abs(b.Vel.Y)
			b.Pos.Y += dy + contactSkin
		}
	}
	b.contain(false)
}

// ResolveContact dispatches a contact by category. Game-level consequences
// (damage, loss) are pushed to q rather than applied to the owner directly.
func (b *Ball) ResolveContact(c Contact, q *EventQueue) {
	switch c.Category {
	case CategoryPaddle:
		if c.Paddle != nil {
			b.BounceOffPaddle(c.Paddle)
		}
		q.Push(Event{Kind: EventBounce, Category: CategoryPaddle})
	case CategoryBrick:
		if c.Brick == nil || !c.Brick.Alive {
			return
		}
		b.BounceOffBox(c.Brick.Box())
		c.Brick.TakeDamage(q)
		q.Push(Event{Kind: EventBounce, Category: CategoryBrick, Brick: c.Brick})
	case CategoryWall:
		q.Push(Event{Kind: EventBounce, Category: CategoryWall})
	case CategoryDeathZone:
		q.Push(Event{Kind: EventBallLost, Category: CategoryDeathZone})
	}
}
