package arkanoid

// Category tags the body the ball touched.
type Category int

const (
	CategoryPaddle Category = iota
	CategoryBrick
	CategoryWall
	CategoryDeathZone
)

// String returns the category name used in logs.
func (c Category) String() string {
	switch c {
	case CategoryPaddle:
		return "paddle"
	case CategoryBrick:
		return "brick"
	case CategoryWall:
		return "wall"
	case CategoryDeathZone:
		return "death_zone"
	default:
		return "unknown"
	}
}

// EventKind identifies an outbound simulation event.
type EventKind int

const (
	EventBounce         EventKind = iota // Ball bounced off a paddle, brick or wall
	EventBrickHit                        // Brick took damage and survived
	EventBrickDestroyed                  // Brick reached zero hit points
	EventBallLost                        // Ball entered the death zone
)

// String returns the event kind name used in logs.
func (k EventKind) String() string {
	switch k {
	case EventBounce:
		return "bounce"
	case EventBrickHit:
		return "brick_hit"
	case EventBrickDestroyed:
		return "brick_destroyed"
	case EventBallLost:
		return "ball_lost"
	default:
		return "unknown"
	}
}

// Event is a message emitted during physics resolution. Brick is set for
// brick events and points at the brick as it was when the event fired.
type Event struct {
	Kind     EventKind
	Category Category
	Brick    *Brick
}

// EventQueue collects events raised during a tick. The machine drains it once
// per tick, after all physics for that tick has run.
type EventQueue struct {
	events []Event
}

// Push appends an event.
func (q *EventQueue) Push(e Event) {
	q.events = append(q.events, e)
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	return len(q.events)
}

// Drain returns pending events in push order and empties the queue.
func (q *EventQueue) Drain() []Event {
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}
