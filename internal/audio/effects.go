// Package audio synthesizes the short blips played when the ball bounces.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/vovakirdan/tui-arkanoid/internal/games/arkanoid"
)

// Blip durations.
const (
	blipDuration = 60 * time.Millisecond
	blipAttack   = 4 * time.Millisecond
	blipRelease  = 40 * time.Millisecond
)

// Base frequencies per bounce category, in Hz.
var baseFreq = map[arkanoid.Category]float64{
	arkanoid.CategoryPaddle: 330,
	arkanoid.CategoryBrick:  660,
	arkanoid.CategoryWall:   220,
}

// tone returns the oscillator for a category: square for the paddle, sine
// for bricks and saw for walls.
func tone(rate beep.SampleRate, cat arkanoid.Category, freq float64) (beep.Streamer, error) {
	switch cat {
	case arkanoid.CategoryPaddle:
		return generators.SquareTone(rate, freq)
	case arkanoid.CategoryWall:
		return generators.SawtoothTone(rate, freq)
	default:
		return generators.SineTone(rate, freq)
	}
}

// Blip builds the finite streamer for one bounce. Categories without a sound
// return nil.
func Blip(rate beep.SampleRate, cat arkanoid.Category, pitch, volume float64) (beep.Streamer, error) {
	base, ok := baseFreq[cat]
	if !ok {
		return nil, nil
	}
	osc, err := tone(rate, cat, base*pitch)
	if err != nil {
		return nil, err
	}
	shaped := &envelope{
		streamer: beep.Take(rate.N(blipDuration), osc),
		attack:   rate.N(blipAttack),
		release:  rate.N(blipRelease),
		total:    rate.N(blipDuration),
	}
	return newVolume(shaped, volume), nil
}

// envelope applies a linear attack and release to a finite stream.
type envelope struct {
	streamer beep.Streamer
	pos      int
	attack   int
	release  int
	total    int
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.total - e.release
	for i := 0; i < n; i++ {
		vol := 1.0
		switch {
		case e.pos < e.attack:
			vol = float64(e.pos) / float64(e.attack)
		case e.pos >= releaseStart && e.release > 0:
			vol = max(0, float64(e.total-e.pos)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly; zero mutes it.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
