package arkanoid

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-arkanoid/internal/config"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

// State is the game flow state.
type State int

const (
	StateIntro State = iota
	StatePlaying
	StateWon
	StateLost
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIntro:
		return "intro"
	case StatePlaying:
		return "playing"
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Notifier is the menu collaborator told about state transitions.
type Notifier interface {
	ShowMenu(message, buttonLabel string)
	HideMenu()
}

// Sounder is the audio collaborator told about bounces. Implementations must
// not block.
type Sounder interface {
	PlayBounce(c Category)
}

// Menu is the menu the machine currently asks to be shown.
type Menu struct {
	Visible bool
	Message string
	Button  string
}

// Options are the machine's injected collaborators. Nil fields get no-op or
// default implementations.
type Options struct {
	Logger   *log.Logger
	Notifier Notifier
	Sounder  Sounder
	RNG      core.Random
}

// Machine owns the simulation: paddle, ball, active brick set and the
// Intro/Playing/Won/Lost lifecycle. It is not safe for concurrent use.
type Machine struct {
	cfg    config.ArkanoidConfig
	layout LayoutParams
	shape  Shape

	state  State
	paused bool
	menu   Menu

	vp        *core.Viewport
	paddle    *Paddle
	ball      *Ball
	deathZone core.Box
	placed    bool

	bricks    []*Brick
	remaining int
	total     int
	nextID    int

	queue      EventQueue
	lastEvents []Event
	lastErr    error

	score      int
	round      int
	ticks      uint64
	difficulty *config.DifficultyManager

	rng      core.Random
	log      *log.Logger
	notifier Notifier
	sounder  Sounder
}

// NewMachine builds a machine in the Intro state. The grid is generated once
// a viewport is supplied with SetViewport.
func NewMachine(cfg config.ArkanoidConfig, opts Options) (*Machine, error) {
	layout, err := LayoutParamsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	m := &Machine{
		cfg:      cfg,
		layout:   layout,
		shape:    layout.Shape,
		rng:      opts.RNG,
		log:      opts.Logger,
		notifier: opts.Notifier,
		sounder:  opts.Sounder,
	}
	if m.rng == nil {
		m.rng = core.NewRNG(1)
	}
	if m.log == nil {
		m.log = log.New(io.Discard)
	}

	m.paddle = NewPaddle(cfg.Paddle.Height, cfg.Paddle.Padding)
	m.ball = NewBall(BallParams{
		InitialSpeed:     cfg.Ball.InitialSpeed,
		MaxSpeed:         cfg.Ball.MaxSpeed,
		SpeedIncrease:    cfg.Ball.SpeedIncrease,
		MinVerticalRatio: cfg.Ball.MinVerticalRatio,
		Radius:           cfg.Ball.Radius,
		Padding:          core.V2(cfg.Ball.HorizontalPadding, cfg.Ball.VerticalPadding),
	}, m.rng)
	m.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	m.applyDifficulty()

	m.state = StateIntro
	m.showMenu(cfg.Messages.Intro, cfg.Messages.PlayButton)
	return m, nil
}

// SetViewport installs a new viewport: the paddle is resized and both
// envelopes are recomputed. Outside Playing the grid is regenerated as well;
// mid-round the bricks stay where they are. The viewport is committed only
// once both envelopes are valid. If either fails the machine is detached from
// any viewport, so Tick holds still until a usable one arrives.
func (m *Machine) SetViewport(vp core.Viewport) error {
	if err := vp.Validate(); err != nil {
		return m.fail("viewport", err)
	}

	width := vp.Width() * m.cfg.Paddle.ScreenWidthPercent / 100
	y := vp.BottomLeft().Y + m.cfg.Paddle.BottomOffset
	if err := m.paddle.Fit(vp, width, y); err != nil {
		m.detach()
		return m.fail("paddle bounds", err)
	}
	if err := m.ball.UpdateBounds(vp); err != nil {
		m.detach()
		return m.fail("ball bounds", err)
	}
	if !m.placed {
		m.paddle.Center()
		m.placed = true
	}
	m.vp = &vp
	m.deathZone = DeathZoneBox(vp, m.paddle.Pos.Y-m.cfg.Paddle.DeathZoneOffset)
	m.ball.Follow(m.paddle, m.cfg.Ball.FollowOffset)

	pe, _ := m.paddle.Envelope()
	be, _ := m.ball.Envelope()
	m.log.Debug("envelopes computed",
		"paddle_min_x", pe.MinX, "paddle_max_x", pe.MaxX,
		"ball_min_x", be.MinX, "ball_max_x", be.MaxX, "ball_min_y", be.MinY, "ball_max_y", be.MaxY)

	if m.state != StatePlaying && (m.cfg.Layout.GenerateOnStart || m.state != StateIntro) {
		if err := m.regenerate(); err != nil {
			return err
		}
	}
	m.lastErr = nil
	return nil
}

func (m *Machine) detach() {
	m.vp = nil
	m.ball.Unbind()
}

// fail records a configuration or missing-dependency error. The machine keeps
// its current state.
func (m *Machine) fail(op string, err error) error {
	m.lastErr = err
	m.log.Warn("simulation error", "op", op, "state", m.state, "err", err)
	return err
}

// regenerate replaces the active brick set. A failed pass leaves the set
// empty rather than half built.
func (m *Machine) regenerate() error {
	m.bricks = nil
	m.remaining = 0
	m.total = 0
	if m.vp == nil {
		return m.fail("layout", ErrNoViewport)
	}

	params := m.layout
	params.Shape = m.shape
	layout, err := Generate(params, *m.vp)
	if err != nil {
		return m.fail("layout", err)
	}

	m.bricks = make([]*Brick, 0, layout.Count())
	for _, pl := range layout.Placements {
		m.nextID++
		m.bricks = append(m.bricks, &Brick{
			ID:        m.nextID,
			Row:       pl.Row,
			Column:    pl.Column,
			HitPoints: params.HitPoints,
			Alive:     true,
			Center:    pl.Center,
			Size:      pl.Size,
			Color:     pl.Color,
		})
	}
	m.remaining = len(m.bricks)
	m.total = m.remaining
	m.log.Debug("layout generated", "shape", m.shape, "bricks", m.remaining,
		"cell_w", layout.CellSize.X, "cell_h", layout.CellSize.Y)
	return nil
}

// Restart starts a round from the menu (Intro, Won or Lost). It is ignored
// while Playing. If the grid cannot be generated the error is returned and
// the state is unchanged.
func (m *Machine) Restart() error {
	if !m.menu.Visible || m.state == StatePlaying {
		return nil
	}
	if m.state != StateIntro && m.cfg.Layout.RandomizeOnRestart {
		m.shape = RandomShape(m.rng)
	}
	if err := m.resetBall(); err != nil {
		return m.fail("ball reset", err)
	}
	if err := m.regenerate(); err != nil {
		return err
	}
	if m.state == StateLost {
		m.score = 0
		m.round = 0
	}
	m.applyDifficulty()
	m.lastErr = nil
	m.paused = false
	m.setState(StatePlaying)
	m.hideMenu()

	if m.remaining == 0 {
		m.win()
	}
	return nil
}

// HandleBallLost moves Playing to Lost. Any other state ignores it.
func (m *Machine) HandleBallLost() bool {
	if m.state != StatePlaying {
		return false
	}
	//nolint:errcheck // Bounds were valid for this round; a failure is already recorded
	m.resetBall()
	m.setState(StateLost)
	m.showMenu(m.cfg.Messages.Lose, m.cfg.Messages.RestartButton)
	return true
}

// NotifyBrickDestroyed removes a brick from the active set and counts it.
// Unknown or already removed IDs are ignored. Reaching zero while Playing
// wins the round.
func (m *Machine) NotifyBrickDestroyed(id int) bool {
	idx := slices.IndexFunc(m.bricks, func(b *Brick) bool { return b.ID == id })
	if idx < 0 {
		return false
	}
	br := m.bricks[idx]
	br.Alive = false
	br.HitPoints = 0
	m.bricks = slices.Delete(m.bricks, idx, idx+1)
	m.remaining = max(0, m.remaining-1)
	m.score += m.cfg.Bricks.PointsPerBrick

	if m.remaining == 0 && m.state == StatePlaying {
		m.win()
	}
	return true
}

func (m *Machine) win() {
	//nolint:errcheck // Bounds were valid for this round; a failure is already recorded
	m.resetBall()
	m.round++
	m.setState(StateWon)
	m.showMenu(m.cfg.Messages.Win, m.cfg.Messages.RestartButton)
}

func (m *Machine) resetBall() error {
	err := m.ball.Reset()
	m.ball.Follow(m.paddle, m.cfg.Ball.FollowOffset)
	return err
}

func (m *Machine) applyDifficulty() {
	m.ball.SetLaunchSpeed(m.difficulty.Speed(m.cfg.Ball.InitialSpeed, m.round))
}

func (m *Machine) setState(to State) {
	from := m.state
	m.state = to
	m.log.Info("state transition", "from", from, "to", to,
		"bricks", m.remaining, "score", m.score, "round", m.round)
}

func (m *Machine) showMenu(message, button string) {
	m.menu = Menu{Visible: true, Message: message, Button: button}
	if m.notifier != nil {
		m.notifier.ShowMenu(message, button)
	}
}

func (m *Machine) hideMenu() {
	m.menu = Menu{}
	if m.notifier != nil {
		m.notifier.HideMenu()
	}
}

// InputLocked reports whether paddle and ball input is ignored.
func (m *Machine) InputLocked() bool {
	return m.state != StatePlaying || m.paused
}

// MovePaddleTo moves the paddle toward a world X. Ignored while locked.
func (m *Machine) MovePaddleTo(x float64) bool {
	if m.InputLocked() {
		return false
	}
	m.paddle.MoveToTarget(x)
	m.ball.Follow(m.paddle, m.cfg.Ball.FollowOffset)
	return true
}

// MovePaddleBy moves the paddle by dx. Ignored while locked.
func (m *Machine) MovePaddleBy(dx float64) bool {
	return m.MovePaddleTo(m.paddle.Pos.X + dx)
}

// Launch releases the resting ball. Ignored while locked.
func (m *Machine) Launch() bool {
	if m.InputLocked() {
		return false
	}
	return m.ball.Launch()
}

// TogglePause flips the pause flag. Only a Playing round can pause.
func (m *Machine) TogglePause() bool {
	if m.state != StatePlaying {
		return false
	}
	m.paused = !m.paused
	m.log.Debug("pause toggled", "paused", m.paused)
	return true
}

// Tick runs one fixed step: ball physics, wall and contact resolution, then
// the event queue is drained in push order. The simulation holds still while
// the ball has no valid envelope.
func (m *Machine) Tick(dt float64) {
	m.lastEvents = nil
	if m.state != StatePlaying || m.paused || m.vp == nil {
		return
	}
	if _, ok := m.ball.Envelope(); !ok {
		return
	}
	m.ticks++
	if !m.ball.Launched {
		m.ball.Follow(m.paddle, m.cfg.Ball.FollowOffset)
		return
	}

	clampedX, clampedY := m.ball.Step(dt)
	if clampedX || clampedY {
		m.ball.ResolveContact(Contact{Category: CategoryWall}, &m.queue)
	}
	world := World{Paddle: m.paddle, Bricks: m.bricks, DeathZone: m.deathZone}
	for _, c := range DetectContacts(m.ball, world) {
		m.ball.ResolveContact(c, &m.queue)
	}
	m.drain()
}

func (m *Machine) drain() {
	for _, ev := range m.queue.Drain() {
		m.lastEvents = append(m.lastEvents, ev)
		switch ev.Kind {
		case EventBounce:
			if m.sounder != nil {
				m.sounder.PlayBounce(ev.Category)
			}
		case EventBrickDestroyed:
			m.NotifyBrickDestroyed(ev.Brick.ID)
		case EventBallLost:
			m.HandleBallLost()
		}
	}
}

// State returns the current flow state.
func (m *Machine) State() State { return m.state }

// Paused reports whether a Playing round is paused.
func (m *Machine) Paused() bool { return m.paused }

// Menu returns the menu currently requested.
func (m *Machine) Menu() Menu { return m.menu }

// Score returns points earned since the last loss.
func (m *Machine) Score() int { return m.score }

// Round returns the number of rounds won in a row.
func (m *Machine) Round() int { return m.round }

// Remaining returns the number of bricks still standing.
func (m *Machine) Remaining() int { return m.remaining }

// Total returns the number of bricks placed by the last generation.
func (m *Machine) Total() int { return m.total }

// Bricks returns the active brick set in placement order.
func (m *Machine) Bricks() []*Brick { return slices.Clone(m.bricks) }

// Ball returns the ball.
func (m *Machine) Ball() *Ball { return m.ball }

// Paddle returns the paddle.
func (m *Machine) Paddle() *Paddle { return m.paddle }

// DeathZone returns the current death zone trigger.
func (m *Machine) DeathZone() core.Box { return m.deathZone }

// Shape returns the shape used by the current or next generation.
func (m *Machine) Shape() Shape { return m.shape }

// Ticks returns the number of simulated Playing ticks.
func (m *Machine) Ticks() uint64 { return m.ticks }

// LastError returns the last configuration or missing-dependency error, or
// nil once a later operation succeeded.
func (m *Machine) LastError() error { return m.lastErr }

// LastEvents returns the events drained by the most recent Tick.
func (m *Machine) LastEvents() []Event { return m.lastEvents }

// Viewport returns the installed viewport, if any.
func (m *Machine) Viewport() (core.Viewport, bool) {
	if m.vp == nil {
		return core.Viewport{}, false
	}
	return *m.vp, true
}
