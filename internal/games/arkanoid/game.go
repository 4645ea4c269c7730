package arkanoid

import (
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-arkanoid/internal/config"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
	"github.com/vovakirdan/tui-arkanoid/internal/registry"
)

// Visual characters for rendering
const (
	PaddleChar   = '▀'
	BallChar     = '●'
	BrickChar    = '█'
	DamagedChar  = '▓'
	FadingChar   = '░'
	HUDSeparator = '─'
)

// Terminal mapping: one world unit is one row tall and two columns wide.
const (
	cellsPerUnitX   = 2.0
	cellsPerUnitY   = 1.0
	hudRows         = 1
	minScreenWidth  = 40
	minScreenHeight = 16
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// shapeOverride pins the layout shape set via CLI
var shapeOverride string

// Shared collaborators set by the CLI before games are created.
var (
	sounder Sounder
	logger  = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetShape pins the brick shape and turns off shape randomization.
// An empty name restores the configured behavior.
func SetShape(name string) error {
	if name == "" {
		shapeOverride = ""
		return nil
	}
	s, err := ParseShape(name)
	if err != nil {
		return err
	}
	shapeOverride = s.String()
	return nil
}

// SetSounder installs the audio collaborator for new games.
func SetSounder(s Sounder) {
	sounder = s
}

// SetLogger installs the logger for new games.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// fade is a destroyed brick still shown while it shrinks away.
type fade struct {
	brick Brick
	ticks int
}

// Game adapts the Machine to the arcade platform: terminal cells become world
// coordinates, keys become paddle and menu commands.
type Game struct {
	m       *Machine
	cfg     config.ArkanoidConfig
	runtime core.RuntimeConfig
	rng     *core.RNG
	vp      core.Viewport

	screenTooSmall bool
	setupErr       error

	fading   []fade
	flashing map[int]int // Brick ID -> ticks left
	tick     uint64
}

// New creates a new game instance. Reset must be called before use.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "arkanoid"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Arkanoid"
}

// Reset loads configuration and builds a fresh machine in the Intro state.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.setupErr = nil

	cfg, err := config.LoadArkanoid(configPath)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", configPath, "err", err)
		g.setupErr = err
		cfg = config.DefaultArkanoidConfig()
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyArkanoidPreset(&cfg, difficultyPreset)
	}
	if shapeOverride != "" {
		cfg.Layout.Shape = shapeOverride
		cfg.Layout.RandomizeOnRestart = false
	}
	g.cfg = cfg

	g.rng = core.NewRNG(runtime.Seed)
	opts := Options{Logger: logger, Sounder: sounder, RNG: g.rng}
	m, err := NewMachine(cfg, opts)
	if err != nil {
		logger.Warn("invalid game config, using defaults", "err", err)
		g.setupErr = err
		g.cfg = config.DefaultArkanoidConfig()
		m, _ = NewMachine(g.cfg, opts)
	}
	g.m = m

	g.fading = nil
	g.flashing = make(map[int]int)
	g.tick = 0
	g.Resize(runtime.ScreenW, runtime.ScreenH)
}

// Resize rebuilds the viewport for a new terminal size. The round in
// progress keeps its bricks; entities are reclamped to the new bounds.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	if g.m == nil {
		return
	}
	g.screenTooSmall = width < minScreenWidth || height < minScreenHeight
	if g.screenTooSmall {
		return
	}
	g.vp = ViewportForScreen(width, height)
	//nolint:errcheck // Recorded by the machine and shown by Render
	g.m.SetViewport(g.vp)
}

// ViewportForScreen maps a terminal size to a world viewport centered on the
// origin. The top row is reserved for the HUD.
func ViewportForScreen(width, height int) core.Viewport {
	rows := float64(max(1, height-hudRows))
	cols := float64(max(1, width))
	return core.NewViewport(rows/2/cellsPerUnitY, (cols/cellsPerUnitX)/(rows/cellsPerUnitY))
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	if in.Has(core.ActionPause) {
		g.m.TogglePause()
	}

	// Menu button
	restarted := false
	if g.m.Menu().Visible && (in.Has(core.ActionConfirm) || in.Has(core.ActionRestart) || in.Has(core.ActionLaunch)) {
		if err := g.m.Restart(); err == nil {
			g.fading = nil
			clear(g.flashing)
			restarted = true
		}
	}

	dt := g.runtime.TickSeconds()
	if in.HasPointer {
		g.m.MovePaddleTo(g.worldX(in.PointerCol))
	}
	step := g.cfg.Paddle.MovementSpeed * dt
	if in.Has(core.ActionLeft) {
		g.m.MovePaddleBy(-step)
	}
	if in.Has(core.ActionRight) {
		g.m.MovePaddleBy(step)
	}
	if in.Has(core.ActionLaunch) && !restarted {
		g.m.Launch()
	}

	g.m.Tick(dt)
	g.trackEffects()

	return core.StepResult{State: g.State()}
}

// trackEffects ages presentation timers and picks up this tick's brick events.
func (g *Game) trackEffects() {
	if g.m.Paused() {
		return
	}
	alive := g.fading[:0]
	for _, f := range g.fading {
		f.ticks--
		if f.ticks > 0 {
			alive = append(alive, f)
		}
	}
	g.fading = alive
	for id, left := range g.flashing {
		if left <= 1 {
			delete(g.flashing, id)
		} else {
			g.flashing[id] = left - 1
		}
	}

	for _, ev := range g.m.LastEvents() {
		switch ev.Kind {
		case EventBrickDestroyed:
			delete(g.flashing, ev.Brick.ID)
			if g.cfg.Bricks.DecayTicks > 0 {
				g.fading = append(g.fading, fade{brick: *ev.Brick, ticks: g.cfg.Bricks.DecayTicks})
			}
		case EventBrickHit:
			if g.cfg.Bricks.FlashTicks > 0 {
				g.flashing[ev.Brick.ID] = g.cfg.Bricks.FlashTicks
			}
		}
	}
}

// worldX maps a screen column to the world X of the column's center.
func (g *Game) worldX(col int) float64 {
	return g.vp.BottomLeft().X + (float64(col)+0.5)/cellsPerUnitX
}

// toCell maps a world position to a screen cell.
func (g *Game) toCell(p core.Vec2) (x, y int) {
	return worldToCell(g.vp, p)
}

// span maps a world box to the inclusive screen columns it covers and its row.
func (g *Game) span(b core.Box) (x0, x1, y int) {
	return boxSpan(g.vp, b)
}

func worldToCell(vp core.Viewport, p core.Vec2) (x, y int) {
	bl, tr := vp.BottomLeft(), vp.TopRight()
	x = int(math.Floor((p.X - bl.X) * cellsPerUnitX))
	y = hudRows + int(math.Floor((tr.Y-p.Y)*cellsPerUnitY))
	return x, y
}

func boxSpan(vp core.Viewport, b core.Box) (x0, x1, y int) {
	left := b.Center.X - b.Half.X
	right := b.Center.X + b.Half.X
	bl := vp.BottomLeft()
	x0 = int(math.Round((left - bl.X) * cellsPerUnitX))
	x1 = int(math.Round((right-bl.X)*cellsPerUnitX)) - 1
	if x1 < x0 {
		x1 = x0
	}
	_, y = worldToCell(vp, b.Center)
	return x0, x1, y
}

// RenderLayout draws a generated layout the way the game draws live bricks,
// for a screen whose size produced vp via ViewportForScreen.
func RenderLayout(dst *core.Screen, vp core.Viewport, l Layout) {
	for _, p := range l.Placements {
		box := core.Box{Center: p.Center, Half: p.Size.Scale(0.5)}
		x0, x1, y := boxSpan(vp, box)
		for x := x0; x <= x1; x++ {
			dst.SetColored(x, y, BrickChar, p.Color)
		}
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.m == nil {
		return
	}

	if g.screenTooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minScreenWidth, minScreenHeight))
		return
	}

	g.renderHUD(dst)
	g.renderBricks(dst)
	g.renderPaddle(dst)
	g.renderBall(dst)
	g.renderOverlay(dst)
	g.renderError(dst)
}

// renderHUD draws score, round and brick count on the top row.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawHLine(0, 0, dst.Width(), HUDSeparator)

	score := fmt.Sprintf(" Score: %d ", g.m.Score())
	dst.DrawTextColored(1, 0, score, core.ColorBrightWhite)

	mid := fmt.Sprintf(" Round %d  Bricks %d/%d ", g.m.Round()+1, g.m.Remaining(), g.m.Total())
	dst.DrawTextCentered(0, mid)

	shape := fmt.Sprintf(" %s ", g.m.Shape())
	dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(shape)-1, 0, shape, core.ColorGray)

}

// renderError draws the most recent configuration or layout error on the
// bottom row.
func (g *Game) renderError(dst *core.Screen) {
	if err := g.lastError(); err != nil {
		dst.DrawTextColored(0, dst.Height()-1, "! "+err.Error(), core.ColorBrightRed)
	}
}

func (g *Game) lastError() error {
	if err := g.m.LastError(); err != nil {
		return err
	}
	return g.setupErr
}

// renderBricks draws fading bricks first so live ones stay on top.
func (g *Game) renderBricks(dst *core.Screen) {
	for _, f := range g.fading {
		box := f.brick.Box()
		frac := float64(f.ticks) / float64(max(1, g.cfg.Bricks.DecayTicks))
		box.Half.X *= frac
		x0, x1, y := g.span(box)
		for x := x0; x <= x1; x++ {
			dst.SetColored(x, y, FadingChar, f.brick.Color)
		}
	}

	for _, b := range g.m.bricks {
		glyph, color := BrickChar, b.Color
		if b.HitPoints < g.cfg.Bricks.HitPoints {
			glyph = DamagedChar
		}
		if _, ok := g.flashing[b.ID]; ok {
			color = core.ColorBrightWhite
		}
		x0, x1, y := g.span(b.Box())
		for x := x0; x <= x1; x++ {
			dst.SetColored(x, y, glyph, color)
		}
	}
}

// renderPaddle draws the player's paddle.
func (g *Game) renderPaddle(dst *core.Screen) {
	x0, x1, y := g.span(g.m.paddle.Box())
	for x := x0; x <= x1; x++ {
		dst.SetColored(x, y, PaddleChar, core.ColorBrightCyan)
	}
}

// renderBall draws the ball.
func (g *Game) renderBall(dst *core.Screen) {
	x, y := g.toCell(g.m.ball.Pos)
	if y < hudRows {
		y = hudRows
	}
	dst.SetColored(x, y, BallChar, core.ColorBrightWhite)
}

// renderOverlay draws the menu box, pause box or launch hint.
func (g *Game) renderOverlay(dst *core.Screen) {
	menu := g.m.Menu()
	switch {
	case menu.Visible:
		title := menu.Message
		if g.m.State() != StateIntro {
			title = fmt.Sprintf("%s  Score: %d", menu.Message, g.m.Score())
		}
		g.drawCenteredBox(dst, title, fmt.Sprintf("[ %s ]  Enter", menu.Button))
		if g.m.State() == StateIntro {
			dst.DrawTextCentered(dst.Height()-1, "←/→ or mouse to move  ·  Space to launch  ·  P to pause")
		}
	case g.m.Paused():
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	case !g.m.ball.Launched:
		dst.DrawTextCentered(dst.Height()-1, "Press SPACE to launch")
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	tw := utf8.RuneCountInString(title)
	sw := utf8.RuneCountInString(subtitle)

	boxW := max(tw, sw) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextColored(boxX+(boxW-tw)/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-sw)/2, boxY+3, subtitle)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.m == nil {
		return core.GameState{}
	}
	state := g.m.State()
	return core.GameState{
		Score:    g.m.Score(),
		GameOver: state == StateWon || state == StateLost,
		Paused:   g.m.Paused(),
		Menu:     g.m.Menu().Visible,
	}
}

// Machine exposes the simulation for tools that inspect it.
func (g *Game) Machine() *Machine {
	return g.m
}

// Register the game with the registry
func init() {
	registry.Register("arkanoid", func() registry.Game {
		return New()
	})
}
