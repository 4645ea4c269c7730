package arkanoid

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// Snapshot contains the simulation state for determinism checks.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick      uint64
	State     string
	Paused    bool
	Score     int
	Round     int
	Remaining int
	Total     int
	Shape     string

	PaddleX     float64
	PaddleWidth float64

	BallX, BallY   float64
	BallVX, BallVY float64
	Launched       bool

	// Active bricks, 4 ints each: ID, Row, Column, HitPoints
	BrickData []int

	RNGState uint64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	m := g.m
	brickData := make([]int, 0, len(m.bricks)*4)
	for _, b := range m.bricks {
		brickData = append(brickData, b.ID, b.Row, b.Column, b.HitPoints)
	}

	return Snapshot{
		Tick:      m.ticks,
		State:     m.state.String(),
		Paused:    m.paused,
		Score:     m.score,
		Round:     m.round,
		Remaining: m.remaining,
		Total:     m.total,
		Shape:     m.shape.String(),

		PaddleX:     m.paddle.Pos.X,
		PaddleWidth: m.paddle.Width,

		BallX:    m.ball.Pos.X,
		BallY:    m.ball.Pos.Y,
		BallVX:   m.ball.Vel.X,
		BallVY:   m.ball.Vel.Y,
		Launched: m.ball.Launched,

		BrickData: brickData,
		RNGState:  g.rng.State(),
	}
}

// Hash returns an FNV-1a hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	putU := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:]) //nolint:errcheck // hash.Hash never returns an error
	}
	putI := func(v int) { putU(uint64(v)) } //#nosec G115 -- hash computation
	putF := func(v float64) { putU(math.Float64bits(v)) }
	putB := func(v bool) {
		if v {
			putU(1)
		} else {
			putU(0)
		}
	}

	putU(snap.Tick)
	h.Write([]byte(snap.State)) //nolint:errcheck // hash.Hash never returns an error
	putB(snap.Paused)
	putI(snap.Score)
	putI(snap.Round)
	putI(snap.Remaining)
	putI(snap.Total)
	h.Write([]byte(snap.Shape)) //nolint:errcheck // hash.Hash never returns an error
	putF(snap.PaddleX)
	putF(snap.PaddleWidth)
	putF(snap.BallX)
	putF(snap.BallY)
	putF(snap.BallVX)
	putF(snap.BallVY)
	putB(snap.Launched)
	for _, v := range snap.BrickData {
		putI(v)
	}
	putU(snap.RNGState)
	return h.Sum64()
}
