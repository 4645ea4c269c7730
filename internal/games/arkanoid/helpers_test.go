package arkanoid

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-arkanoid/internal/config"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

const tolerance = 1e-9

// scriptedRandom replays fixed draws, repeating the last one when exhausted.
type scriptedRandom struct {
	floats []float64
	ints   []int
}

func (r *scriptedRandom) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	if len(r.floats) > 1 {
		r.floats = r.floats[1:]
	}
	return v
}

func (r *scriptedRandom) Intn(n int) int {
	if len(r.ints) == 0 || n <= 0 {
		return 0
	}
	v := r.ints[0]
	if len(r.ints) > 1 {
		r.ints = r.ints[1:]
	}
	return v % n
}

type recordingSounder struct {
	played []Category
}

func (s *recordingSounder) PlayBounce(c Category) {
	s.played = append(s.played, c)
}

type recordingNotifier struct {
	shown  []string
	hidden int
}

func (n *recordingNotifier) ShowMenu(message, button string) {
	n.shown = append(n.shown, message+"|"+button)
}

func (n *recordingNotifier) HideMenu() {
	n.hidden++
}

// stairCount is the number of cells a staircase admits.
func stairCount(rows, columns int) int {
	n := 0
	for row := 0; row < rows; row++ {
		n += RowWidth(row, columns)
	}
	return n
}

func approx(a, b float64) bool {
	return math.Abs(a-b) <= tolerance*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// testViewport is an 80x24 terminal.
func testViewport() core.Viewport {
	return ViewportForScreen(80, 24)
}

func newTestMachine(t *testing.T, mutate func(*config.ArkanoidConfig)) (*Machine, *recordingSounder, *recordingNotifier) {
	t.Helper()
	cfg := config.DefaultArkanoidConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	snd := &recordingSounder{}
	ntf := &recordingNotifier{}
	m, err := NewMachine(cfg, Options{Sounder: snd, Notifier: ntf, RNG: core.NewRNG(7)})
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	if err := m.SetViewport(testViewport()); err != nil {
		t.Fatalf("SetViewport: %v", err)
	}
	return m, snd, ntf
}

func startRound(t *testing.T, m *Machine) {
	t.Helper()
	if err := m.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if m.State() != StatePlaying {
		t.Fatalf("state = %v, want playing", m.State())
	}
}
