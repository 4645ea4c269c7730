package config

import (
	_ "embed"
)

//go:embed defaults/arkanoid.yaml
var defaultArkanoidYAML []byte

// DefaultArkanoidConfig returns the hardcoded brick breaker configuration.
// It mirrors defaults/arkanoid.yaml and is used when the embed cannot be parsed.
func DefaultArkanoidConfig() ArkanoidConfig {
	return ArkanoidConfig{
		Ball: BallConfig{
			InitialSpeed:     12,
			MaxSpeed:         24,
			SpeedIncrease:    0.25,
			MinVerticalRatio: 0.2,
			Radius:           0.25,
			FollowOffset:     0.5,
		},
		Paddle: PaddleConfig{
			ScreenWidthPercent: 20,
			Height:             0.5,
			Padding:            0.05,
			MovementSpeed:      60,
			BottomOffset:       2,
			DeathZoneOffset:    1,
		},
		Layout: LayoutConfig{
			Rows:                     8,
			Columns:                  11,
			SideMargin:               0.5,
			TopMargin:                1,
			BottomMargin:             1,
			WidthPercent:             0.9,
			HeightPercent:            0.55,
			HorizontalSpacingPercent: 0.01,
			VerticalSpacingPercent:   0.02,
			PreserveAspect:           true,
			FillPercent:              0.92,
			Shape:                    "rectangle",
			RandomizeOnRestart:       true,
			GenerateOnStart:          true,
		},
		Bricks: BrickConfig{
			HitPoints:      1,
			PointsPerBrick: 10,
			PrefabWidth:    2,
			PrefabHeight:   0.5,
			TintByRow:      true,
			RowColors:      []string{"sand", "orange", "blue", "green", "pink", "purple"},
			DecayTicks:     9,
			FlashTicks:     5,
		},
		Messages: MessagesConfig{
			Intro:         "Press ENTER to start",
			Win:           "All bricks destroyed!",
			Lose:          "The ball got away. Try again.",
			PlayButton:    "Play",
			RestartButton: "Restart",
		},
		Audio: AudioConfig{
			Enabled:  false,
			MinPitch: 0.9,
			MaxPitch: 1.1,
			Volume:   0.5,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "rounds",
				MaxAt: 5,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "arkanoid":
		return defaultArkanoidYAML
	default:
		return nil
	}
}
