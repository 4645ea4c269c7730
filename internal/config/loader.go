package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadArkanoid loads the brick breaker configuration.
// Search order: customPath -> ~/.arkanoid/configs/arkanoid.yaml -> ./configs/arkanoid.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides what it names.
// The result is validated; an invalid custom file is an error, an invalid
// discovered file is skipped.
func LoadArkanoid(customPath string) (ArkanoidConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return ArkanoidConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decodeArkanoid(data)
		if err != nil {
			return ArkanoidConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return ArkanoidConfig{}, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath("arkanoid.yaml"), filepath.Join("configs", "arkanoid.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := decodeArkanoid(data); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := decodeArkanoid(defaultArkanoidYAML)
	if err != nil || cfg.Validate() != nil {
		return DefaultArkanoidConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseArkanoid decodes YAML over the defaults and validates the result.
func ParseArkanoid(data []byte) (ArkanoidConfig, error) {
	cfg, err := decodeArkanoid(data)
	if err != nil {
		return ArkanoidConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return ArkanoidConfig{}, err
	}
	return cfg, nil
}

func decodeArkanoid(data []byte) (ArkanoidConfig, error) {
	cfg := DefaultArkanoidConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ArkanoidConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arkanoid", "configs", filename)
}

// ApplyArkanoidPreset modifies the config based on a difficulty preset.
func ApplyArkanoidPreset(cfg *ArkanoidConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Paddle.ScreenWidthPercent = 30
		cfg.Ball.InitialSpeed = 9
		cfg.Ball.SpeedIncrease = 0.1
	case DifficultyHard:
		cfg.Paddle.ScreenWidthPercent = 12
		cfg.Ball.InitialSpeed = 16
		cfg.Ball.SpeedIncrease = 0.5
	}
	if cfg.Ball.MaxSpeed < cfg.Ball.InitialSpeed {
		cfg.Ball.MaxSpeed = cfg.Ball.InitialSpeed
	}
}
