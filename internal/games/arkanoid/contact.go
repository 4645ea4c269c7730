package arkanoid

import "github.com/vovakirdan/tui-arkanoid/internal/core"

// Contact is a discrete touch between the ball and another body.
type Contact struct {
	Category Category
	Paddle   *Paddle // Set for CategoryPaddle
	Brick    *Brick  // Set for CategoryBrick
}

// World is what the contact detector tests the ball against.
type World struct {
	Paddle    *Paddle
	Bricks    []*Brick
	DeathZone core.Box
}

// DeathZoneBox returns the trigger volume spanning the viewport width from
// below its bottom edge up to top.
func DeathZoneBox(vp core.Viewport, top float64) core.Box {
	bottom := vp.BottomLeft().Y - 1
	return core.Box{
		Center: core.V2(vp.Center.X, (top+bottom)/2),
		Half:   core.V2(vp.Width()/2+1, (top-bottom)/2),
	}
}

// DetectContacts returns the ball's contacts for this tick in resolution
// order: paddle, at most one brick, death zone. Walls are reported by the
// ball's own envelope clamping.
func DetectContacts(b *Ball, w World) []Contact {
	var contacts []Contact
	box := b.Box()

	if p := w.Paddle; p != nil && b.Vel.Y < 0 && b.Pos.Y >= p.Pos.Y && box.Intersects(p.Box()) {
		contacts = append(contacts, Contact{Category: CategoryPaddle, Paddle: p})
	}

	// Only the deepest brick is resolved; the next tick handles any other.
	var hit *Brick
	best := 0.0
	for _, br := range w.Bricks {
		if !br.Alive {
			continue
		}
		dx, dy := box.Overlap(br.Box())
		if dx <= 0 || dy <= 0 {
			continue
		}
		if area := dx * dy; area > best {
			best = area
			hit = br
		}
	}
	if hit != nil {
		contacts = append(contacts, Contact{Category: CategoryBrick, Brick: hit})
	}

	if box.Intersects(w.DeathZone) {
		contacts = append(contacts, Contact{Category: CategoryDeathZone})
	}
	return contacts
}
