package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-arkanoid/internal/audio"
	"github.com/vovakirdan/tui-arkanoid/internal/config"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
	"github.com/vovakirdan/tui-arkanoid/internal/games/arkanoid"
	"github.com/vovakirdan/tui-arkanoid/internal/platform/tui"
	"github.com/vovakirdan/tui-arkanoid/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagShape      string
	flagSound      bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  ←/→, A/D, mouse   - Move paddle
  Space/Up, click   - Launch ball
  Enter             - Press the menu button
  R                 - Restart after a win or loss
  P/Esc             - Pause
  ?                 - Toggle full help
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Wide paddle, slow ball
  normal - Config defaults
  hard   - Narrow paddle, fast ball
  fixed  - No speed-up between rounds

Shapes:
  rectangle, stair-left, stair-right (pins the shape for every round)

Examples:
  arkanoid play
  arkanoid play --difficulty easy
  arkanoid play --shape stair-right --sound
  arkanoid play --config ./my-arkanoid.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().StringVar(&flagShape, "shape", "", "Brick shape: rectangle, stair-left, stair-right")
	cmd.Flags().BoolVar(&flagSound, "sound", false, "Play bounce sounds")
}

func runPlay(_ *cobra.Command, _ []string) {
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q\n", flagDifficulty)
		os.Exit(1)
	}
	if err := arkanoid.SetShape(flagShape); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(io.Discard, "arkanoid")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	arkanoid.SetConfigPath(flagConfig)
	arkanoid.SetDifficultyPreset(flagDifficulty)
	arkanoid.SetLogger(logger)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if flagSound {
		sm := startSound(cfg.Seed)
		if sm != nil {
			defer sm.Close()
			arkanoid.SetSounder(sm)
		}
	}

	game, err := registry.Create("arkanoid")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(game, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// startSound opens the speaker. Failure is reported and the game runs silent.
func startSound(seed int64) *audio.SoundManager {
	gameCfg, err := config.LoadArkanoid(flagConfig)
	if err != nil {
		gameCfg = config.DefaultArkanoidConfig()
	}
	gameCfg.Audio.Enabled = true

	sm := audio.NewSoundManager(gameCfg.Audio, seed, nil)
	if err := sm.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: sound disabled: %v\n", err)
		return nil
	}
	return sm
}
