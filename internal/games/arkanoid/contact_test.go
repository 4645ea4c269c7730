package arkanoid

import (
	"testing"

	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

func contactBall(pos, vel core.Vec2) *Ball {
	b := NewBall(BallParams{Radius: 0.25, MinVerticalRatio: 0.2, InitialSpeed: 5, MaxSpeed: 5}, core.NewRNG(1))
	b.Pos, b.Vel, b.Launched = pos, vel, true
	return b
}

func TestDetectContactsPaddle(t *testing.T) {
	p := &Paddle{Pos: core.V2(0, -4), Width: 4, Height: 0.5}
	world := World{Paddle: p, DeathZone: core.Box{Center: core.V2(0, -10), Half: core.V2(10, 1)}}

	tests := []struct {
		name string
		pos  core.Vec2
		vel  core.Vec2
		want bool
	}{
		{"falling onto paddle", core.V2(1, -3.6), core.V2(0, -5), true},
		{"rising through paddle", core.V2(1, -3.6), core.V2(0, 5), false},
		{"beside paddle", core.V2(3, -3.6), core.V2(0, -5), false},
		{"below paddle center", core.V2(0, -4.2), core.V2(0, -5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectContacts(contactBall(tt.pos, tt.vel), world)
			hit := len(got) > 0 && got[0].Category == CategoryPaddle
			if hit != tt.want {
				t.Errorf("contacts = %+v, want paddle=%v", got, tt.want)
			}
		})
	}
}

func TestDetectContactsPicksDeepestBrick(t *testing.T) {
	shallow := &Brick{ID: 1, Alive: true, Center: core.V2(-1.1, 1), Size: core.V2(2, 0.5)}
	deep := &Brick{ID: 2, Alive: true, Center: core.V2(0.95, 1), Size: core.V2(2, 0.5)}
	dead := &Brick{ID: 3, Alive: false, Center: core.V2(0, 1), Size: core.V2(2, 0.5)}
	world := World{Bricks: []*Brick{shallow, dead, deep}, DeathZone: core.Box{Center: core.V2(0, -10), Half: core.V2(10, 1)}}

	got := DetectContacts(contactBall(core.V2(0, 0.6), core.V2(0, 5)), world)
	if len(got) != 1 || got[0].Category != CategoryBrick || got[0].Brick != deep {
		t.Fatalf("contacts = %+v, want only brick 2", got)
	}
}

func TestDetectContactsDeathZone(t *testing.T) {
	vp := core.NewViewport(5, 1)
	zone := DeathZoneBox(vp, -4)
	world := World{DeathZone: zone}

	got := DetectContacts(contactBall(core.V2(0, -4.1), core.V2(0, -5)), world)
	if len(got) != 1 || got[0].Category != CategoryDeathZone {
		t.Errorf("contacts = %+v, want death zone", got)
	}
	if got := DetectContacts(contactBall(core.V2(0, -3), core.V2(0, -5)), world); len(got) != 0 {
		t.Errorf("contacts above zone = %+v", got)
	}

	// The zone spans the full viewport width and reaches below the bottom edge
	if zone.Center.X-zone.Half.X > -5 || zone.Center.X+zone.Half.X < 5 {
		t.Errorf("zone %+v narrower than viewport", zone)
	}
	if zone.Center.Y-zone.Half.Y > -5 || !approx(zone.Center.Y+zone.Half.Y, -4) {
		t.Errorf("zone %+v vertical span wrong", zone)
	}
}
