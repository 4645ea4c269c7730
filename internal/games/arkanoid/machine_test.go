package arkanoid

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-arkanoid/internal/config"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

func TestMachineStartsInIntro(t *testing.T) {
	m, _, ntf := newTestMachine(t, nil)
	if m.State() != StateIntro {
		t.Fatalf("state = %v, want intro", m.State())
	}
	menu := m.Menu()
	cfg := config.DefaultArkanoidConfig()
	if !menu.Visible || menu.Message != cfg.Messages.Intro || menu.Button != cfg.Messages.PlayButton {
		t.Errorf("menu = %+v", menu)
	}
	if len(ntf.shown) != 1 {
		t.Errorf("notifier saw %v", ntf.shown)
	}
	if !m.InputLocked() {
		t.Error("input must be locked outside playing")
	}
	// generate_on_start puts the grid behind the intro menu
	if m.Remaining() != 88 || m.Total() != 88 {
		t.Errorf("remaining = %d total = %d, want 88", m.Remaining(), m.Total())
	}
}

func TestMachineNoGenerateOnStart(t *testing.T) {
	m, _, _ := newTestMachine(t, func(c *config.ArkanoidConfig) { c.Layout.GenerateOnStart = false })
	if m.Remaining() != 0 {
		t.Errorf("remaining = %d, want 0 before first play", m.Remaining())
	}
	startRound(t, m)
	if m.Remaining() != 88 {
		t.Errorf("remaining = %d, want 88 after play", m.Remaining())
	}
}

func TestMachineLockedInputIgnored(t *testing.T) {
	m, _, _ := newTestMachine(t, nil)
	x := m.Paddle().Pos.X
	if m.MovePaddleBy(3) || m.MovePaddleTo(5) {
		t.Error("paddle moved in intro")
	}
	if m.Launch() {
		t.Error("ball launched in intro")
	}
	if m.Paddle().Pos.X != x || m.Ball().Launched {
		t.Error("locked input changed state")
	}
	if m.TogglePause() {
		t.Error("pause toggled in intro")
	}
}

func TestMachinePlayToWon(t *testing.T) {
	m, _, ntf := newTestMachine(t, nil)
	startRound(t, m)
	if m.Menu().Visible || ntf.hidden != 1 {
		t.Errorf("menu should hide on play: %+v hidden=%d", m.Menu(), ntf.hidden)
	}
	if m.Shape() != ShapeRectangle {
		t.Errorf("first round shape = %v, want configured rectangle", m.Shape())
	}

	if !m.Launch() {
		t.Fatal("launch should succeed while playing")
	}

	for _, b := range m.Bricks() {
		m.NotifyBrickDestroyed(b.ID)
	}
	if m.State() != StateWon {
		t.Fatalf("state = %v, want won", m.State())
	}
	if m.Ball().Launched || !m.Ball().Vel.IsZero() {
		t.Error("ball should be reset on win")
	}
	if m.Score() != 880 || m.Round() != 1 {
		t.Errorf("score = %d round = %d", m.Score(), m.Round())
	}
	cfg := config.DefaultArkanoidConfig()
	if menu := m.Menu(); !menu.Visible || menu.Message != cfg.Messages.Win || menu.Button != cfg.Messages.RestartButton {
		t.Errorf("menu = %+v", menu)
	}
}

func TestMachineDuplicateDestroyIsNoop(t *testing.T) {
	m, _, _ := newTestMachine(t, nil)
	startRound(t, m)
	id := m.Bricks()[0].ID

	if !m.NotifyBrickDestroyed(id) {
		t.Fatal("first destroy should count")
	}
	if m.NotifyBrickDestroyed(id) {
		t.Error("second destroy should be ignored")
	}
	if m.Remaining() != 87 || m.Score() != 10 {
		t.Errorf("remaining = %d score = %d, want 87 and 10", m.Remaining(), m.Score())
	}
	if m.NotifyBrickDestroyed(-5) {
		t.Error("unknown id should be ignored")
	}
}

func TestMachineBallLost(t *testing.T) {
	m, _, _ := newTestMachine(t, nil)

	if m.HandleBallLost() {
		t.Error("ball lost in intro should be ignored")
	}

	startRound(t, m)
	m.Launch()
	if !m.HandleBallLost() || m.State() != StateLost {
		t.Fatalf("state = %v, want lost", m.State())
	}
	if m.Ball().Launched {
		t.Error("ball should be reset on loss")
	}
	cfg := config.DefaultArkanoidConfig()
	if menu := m.Menu(); menu.Message != cfg.Messages.Lose || menu.Button != cfg.Messages.RestartButton {
		t.Errorf("menu = %+v", menu)
	}

	// Idempotent
	if m.HandleBallLost() || m.State() != StateLost {
		t.Error("second ball lost should be a no-op")
	}
}

func TestMachineRestartAfterLoss(t *testing.T) {
	m, _, _ := newTestMachine(t, nil)
	startRound(t, m)
	m.NotifyBrickDestroyed(m.Bricks()[0].ID)
	m.HandleBallLost()

	if err := m.Restart(); err != nil {
		t.Fatal(err)
	}
	if m.State() != StatePlaying {
		t.Fatalf("state = %v, want playing", m.State())
	}
	if m.Remaining() == 0 || m.Remaining() != len(m.Bricks()) {
		t.Errorf("remaining = %d with %d bricks", m.Remaining(), len(m.Bricks()))
	}
	for _, b := range m.Bricks() {
		if !b.Alive || b.HitPoints != 1 {
			t.Fatalf("stale brick in fresh set: %+v", b)
		}
	}
	if m.Score() != 0 || m.Round() != 0 {
		t.Errorf("loss should reset score and round, got %d %d", m.Score(), m.Round())
	}
}

func TestMachineRestartIgnoredWhilePlaying(t *testing.T) {
	m, _, _ := newTestMachine(t, nil)
	startRound(t, m)
	m.NotifyBrickDestroyed(m.Bricks()[0].ID)

	if err := m.Restart(); err != nil {
		t.Fatal(err)
	}
	if m.Remaining() != 87 {
		t.Errorf("restart while playing regenerated the grid (remaining %d)", m.Remaining())
	}
}

func TestMachineRestartRandomizesShape(t *testing.T) {
	cfg := config.DefaultArkanoidConfig()
	rng := &scriptedRandom{ints: []int{2}, floats: []float64{0.5}}
	m, err := NewMachine(cfg, Options{RNG: rng})
	if err != nil {
		t.Fatal(err)
	}
	if err := m.SetViewport(testViewport()); err != nil {
		t.Fatal(err)
	}
	startRound(t, m)
	m.HandleBallLost()
	if err := m.Restart(); err != nil {
		t.Fatal(err)
	}
	if m.Shape() != ShapeStairRight {
		t.Errorf("shape = %v, want stair right from scripted draw", m.Shape())
	}
	if want := stairCount(cfg.Layout.Rows, cfg.Layout.Columns); m.Remaining() != want {
		t.Errorf("remaining = %d, want %d for a staircase", m.Remaining(), want)
	}
}

func TestMachineSingleBrickRound(t *testing.T) {
	m, _, _ := newTestMachine(t, func(c *config.ArkanoidConfig) {
		c.Layout.Rows = 1
		c.Layout.Columns = 1
	})
	startRound(t, m)
	if m.Remaining() != 1 {
		t.Fatalf("remaining = %d, want 1", m.Remaining())
	}
	m.NotifyBrickDestroyed(m.Bricks()[0].ID)
	if m.State() != StateWon || m.Remaining() != 0 {
		t.Fatalf("state = %v remaining = %d, want won with 0", m.State(), m.Remaining())
	}
}

func TestMachineMissingViewport(t *testing.T) {
	m, err := NewMachine(config.DefaultArkanoidConfig(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	err = m.Restart()
	if !errors.Is(err, ErrNoViewport) {
		t.Fatalf("err = %v, want ErrNoViewport", err)
	}
	if m.State() != StateIntro {
		t.Errorf("failed restart changed state to %v", m.State())
	}
	if !errors.Is(m.LastError(), ErrNoViewport) {
		t.Errorf("LastError = %v", m.LastError())
	}
	if len(m.Bricks()) != 0 || m.Remaining() != 0 {
		t.Error("failed generation must leave an empty set")
	}
	// Ticking without a viewport is harmless
	m.Tick(1.0 / 60)
}

func TestMachineMarginsTooLargeRecorded(t *testing.T) {
	cfg := config.DefaultArkanoidConfig()
	cfg.Layout.SideMargin = 100
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	m, err := NewMachine(cfg, Options{RNG: core.NewRNG(1)})
	if err != nil {
		t.Fatal(err)
	}
	if err := m.SetViewport(testViewport()); !errors.Is(err, ErrInvalidLayout) {
		t.Fatalf("SetViewport err = %v, want ErrInvalidLayout", err)
	}
	if !errors.Is(m.LastError(), ErrInvalidLayout) || m.Remaining() != 0 {
		t.Errorf("LastError = %v remaining = %d", m.LastError(), m.Remaining())
	}
	if err := m.Restart(); !errors.Is(err, ErrInvalidLayout) || m.State() != StateIntro {
		t.Errorf("Restart err = %v state = %v", err, m.State())
	}
}

func TestMachineDegenerateViewport(t *testing.T) {
	m, _, _ := newTestMachine(t, nil)
	before := m.State()

	err := m.SetViewport(core.NewViewport(0.2, 1))
	if !errors.Is(err, core.ErrDegenerateEnvelope) {
		t.Fatalf("err = %v, want ErrDegenerateEnvelope", err)
	}
	if !errors.Is(m.LastError(), core.ErrDegenerateEnvelope) {
		t.Errorf("LastError = %v", m.LastError())
	}
	if m.State() != before {
		t.Errorf("state changed to %v", m.State())
	}

	if err := m.SetViewport(testViewport()); err != nil {
		t.Fatal(err)
	}
	if m.LastError() != nil {
		t.Errorf("LastError should clear after recovery, got %v", m.LastError())
	}

	if err := m.SetViewport(core.Viewport{}); !errors.Is(err, core.ErrInvalidViewport) {
		t.Errorf("err = %v, want ErrInvalidViewport", err)
	}
}

func TestMachineFailedResizeHoldsBall(t *testing.T) {
	tests := []struct {
		name string
		vp   core.Viewport
	}{
		{"paddle does not fit", core.NewViewport(5, 0.01)},
		{"ball does not fit", core.NewViewport(0.2, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, _ := newTestMachine(t, nil)
			startRound(t, m)
			m.Launch()
			m.Tick(1.0 / 60)

			if err := m.SetViewport(tt.vp); !errors.Is(err, core.ErrDegenerateEnvelope) {
				t.Fatalf("err = %v, want ErrDegenerateEnvelope", err)
			}
			if _, ok := m.Viewport(); ok {
				t.Error("viewport kept after a failed resize")
			}
			if _, ok := m.Ball().Envelope(); ok {
				t.Error("ball still bounded after a failed resize")
			}

			pos := m.Ball().Pos
			for range_i := 0; range_i < 10; range_i++ {
				m.Tick(1.0 / 60)
			}
			if m.Ball().Pos != pos || m.State() != StatePlaying {
				t.Errorf("ball moved to %v (state %v) without bounds", m.Ball().Pos, m.State())
			}

			if err := m.SetViewport(testViewport()); err != nil {
				t.Fatal(err)
			}
			if _, ok := m.Ball().Envelope(); !ok {
				t.Fatal("ball should be bounded again")
			}
			m.Tick(1.0 / 60)
			if m.Ball().Pos == pos {
				t.Error("ball should move once bounds are back")
			}
		})
	}
}

func TestMachineTickBallFollowsUntilLaunch(t *testing.T) {
	m, _, _ := newTestMachine(t, nil)
	startRound(t, m)
	m.MovePaddleBy(3)
	m.Tick(1.0 / 60)

	want := m.Paddle().Pos.Y + config.DefaultArkanoidConfig().Ball.FollowOffset
	if !approx(m.Ball().Pos.X, m.Paddle().Pos.X) || !approx(m.Ball().Pos.Y, want) {
		t.Errorf("resting ball at %v, paddle at %v", m.Ball().Pos, m.Paddle().Pos)
	}
	if m.Ticks() != 1 {
		t.Errorf("ticks = %d", m.Ticks())
	}
}

func TestMachineTickBrickHit(t *testing.T) {
	m, snd, _ := newTestMachine(t, nil)
	startRound(t, m)
	m.Launch()

	target := m.Bricks()[0]
	r := m.Ball().Params().Radius
	m.Ball().Pos = target.Center.Sub(core.V2(0, target.Size.Y/2+r-0.01))
	m.Ball().Vel = core.V2(0, 10)

	m.Tick(1.0 / 60)

	if m.Remaining() != 87 || m.Score() != 10 {
		t.Fatalf("remaining = %d score = %d after hit", m.Remaining(), m.Score())
	}
	if target.Alive {
		t.Error("target should be dead")
	}
	if m.Ball().Vel.Y >= 0 {
		t.Errorf("ball should bounce down, vel %v", m.Ball().Vel)
	}
	if len(snd.played) != 1 || snd.played[0] != CategoryBrick {
		t.Errorf("sounds = %v, want one brick bounce", snd.played)
	}

	var destroyed bool
	for _, ev := range m.LastEvents() {
		if ev.Kind == EventBrickDestroyed && ev.Brick.ID == target.ID {
			destroyed = true
		}
	}
	if !destroyed {
		t.Errorf("last events missing destroy: %+v", m.LastEvents())
	}
}

func TestMachineTickDeathZone(t *testing.T) {
	m, _, _ := newTestMachine(t, nil)
	startRound(t, m)
	m.Launch()

	zone := m.DeathZone()
	m.Ball().Pos = core.V2(m.Paddle().Pos.X+10, zone.Center.Y+zone.Half.Y+0.2)
	m.Ball().Vel = core.V2(0, -12)
	m.Tick(1.0 / 60)

	if m.State() != StateLost {
		t.Fatalf("state = %v, want lost", m.State())
	}
	if !m.InputLocked() {
		t.Error("input should lock after loss")
	}
}

func TestMachineTickWallSound(t *testing.T) {
	m, snd, _ := newTestMachine(t, nil)
	startRound(t, m)
	m.Launch()

	env, _ := m.Ball().Envelope()
	m.Ball().Pos = core.V2(env.MaxX-0.01, -3)
	m.Ball().Vel = core.V2(10, 5)
	m.Tick(1.0 / 60)

	if m.Ball().Vel.X >= 0 {
		t.Errorf("ball should reflect off the right wall, vel %v", m.Ball().Vel)
	}
	if len(snd.played) == 0 || snd.played[0] != CategoryWall {
		t.Errorf("sounds = %v, want wall first", snd.played)
	}
}

func TestMachinePause(t *testing.T) {
	m, _, _ := newTestMachine(t, nil)
	startRound(t, m)
	m.Launch()

	if !m.TogglePause() || !m.Paused() || !m.InputLocked() {
		t.Fatal("pause should lock input")
	}
	pos := m.Ball().Pos
	m.Tick(1.0 / 60)
	if m.Ball().Pos != pos {
		t.Error("paused tick moved the ball")
	}
	m.TogglePause()
	m.Tick(1.0 / 60)
	if m.Ball().Pos == pos {
		t.Error("unpaused tick should move the ball")
	}
}

func TestMachineResizeMidRoundKeepsBricks(t *testing.T) {
	m, _, _ := newTestMachine(t, nil)
	startRound(t, m)
	first := m.Bricks()[0].ID
	m.NotifyBrickDestroyed(first)

	if err := m.SetViewport(ViewportForScreen(120, 40)); err != nil {
		t.Fatal(err)
	}
	if m.Remaining() != 87 {
		t.Errorf("mid-round resize regenerated bricks: remaining %d", m.Remaining())
	}
	env, _ := m.Paddle().Envelope()
	if !approx(m.Paddle().Width, 60*0.2) || m.Paddle().Pos.X < env.MinX || m.Paddle().Pos.X > env.MaxX {
		t.Errorf("paddle not refit: width %v x %v env %+v", m.Paddle().Width, m.Paddle().Pos.X, env)
	}

	m.HandleBallLost()
	if err := m.SetViewport(testViewport()); err != nil {
		t.Fatal(err)
	}
	if m.Remaining() != m.Total() || m.Total() == 0 {
		t.Errorf("resize outside playing should regenerate: %d/%d", m.Remaining(), m.Total())
	}
}

func TestMachineDifficultyRaisesLaunchSpeed(t *testing.T) {
	m, _, _ := newTestMachine(t, nil)
	startRound(t, m)
	m.Launch()
	base := m.Ball().Speed()

	for _, b := range m.Bricks() {
		m.NotifyBrickDestroyed(b.ID)
	}
	if err := m.Restart(); err != nil {
		t.Fatal(err)
	}
	m.Launch()
	if m.Ball().Speed() <= base {
		t.Errorf("round 2 launch speed %v not above %v", m.Ball().Speed(), base)
	}
}

func TestMachineDifficultyNeverExceedsMaxSpeed(t *testing.T) {
	m, _, _ := newTestMachine(t, func(c *config.ArkanoidConfig) {
		c.Ball.InitialSpeed = 20
		c.Ball.MaxSpeed = 24
	})
	limit := m.Ball().Params().MaxSpeed

	for round := 0; round < 6; round++ {
		startRound(t, m)
		if m.Round() != round {
			t.Fatalf("round = %d, want %d", m.Round(), round)
		}
		m.Launch()
		if got := m.Ball().Speed(); got > limit+tolerance {
			t.Fatalf("round %d: launch speed %.3f above max %.1f", round, got, limit)
		}
		for range_i := 0; range_i < 30; range_i++ {
			m.Tick(1.0 / 60)
			if got := m.Ball().Speed(); got > limit+tolerance {
				t.Fatalf("round %d: speed %.3f above max %.1f", round, got, limit)
			}
		}
		if m.State() == StateLost {
			t.Fatalf("round %d: ball lost during a short rally", round)
		}
		for _, b := range m.Bricks() {
			m.NotifyBrickDestroyed(b.ID)
		}
		if m.State() != StateWon {
			t.Fatalf("round %d: state = %v, want won", round, m.State())
		}
	}
}

func TestNewMachineRejectsBadConfig(t *testing.T) {
	cfg := config.DefaultArkanoidConfig()
	cfg.Layout.Shape = "pyramid"
	if _, err := NewMachine(cfg, Options{}); !errors.Is(err, ErrInvalidLayout) {
		t.Errorf("err = %v, want ErrInvalidLayout", err)
	}

	cfg = config.DefaultArkanoidConfig()
	cfg.Bricks.RowColors = []string{"chartreuse"}
	if _, err := NewMachine(cfg, Options{}); !errors.Is(err, ErrInvalidLayout) {
		t.Errorf("err = %v, want ErrInvalidLayout", err)
	}
}
