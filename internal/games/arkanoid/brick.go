package arkanoid

import "github.com/vovakirdan/tui-arkanoid/internal/core"

// Brick is a destructible obstacle placed by the layout generator.
type Brick struct {
	ID        int
	Row       int
	Column    int
	HitPoints int
	Alive     bool

	Center core.Vec2  // World position
	Size   core.Vec2  // Scaled world size
	Color  core.Color // Row tint
}

// Box returns the collision box.
func (b *Brick) Box() core.Box {
	return core.Box{Center: b.Center, Half: b.Size.Scale(0.5)}
}

// TakeDamage removes one hit point. A brick that is already destroyed ignores
// further damage. It reports whether this hit destroyed the brick and pushes
// the matching event.
func (b *Brick) TakeDamage(q *EventQueue) bool {
	if !b.Alive {
		return false
	}
	b.HitPoints--
	if b.HitPoints > 0 {
		q.Push(Event{Kind: EventBrickHit, Category: CategoryBrick, Brick: b})
		return false
	}
	b.HitPoints = 0
	b.Alive = false
	q.Push(Event{Kind: EventBrickDestroyed, Category: CategoryBrick, Brick: b})
	return true
}
