// Package config provides YAML-based game configuration loading and
// difficulty management for the simulation.
package config

// ArkanoidConfig contains all configuration for the brick breaker.
// Distances are world units; the terminal maps one unit to one row and two
// columns.
type ArkanoidConfig struct {
	Ball       BallConfig       `yaml:"ball"`
	Paddle     PaddleConfig     `yaml:"paddle"`
	Layout     LayoutConfig     `yaml:"layout"`
	Bricks     BrickConfig      `yaml:"bricks"`
	Messages   MessagesConfig   `yaml:"messages"`
	Audio      AudioConfig      `yaml:"audio"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BallConfig defines ball physics parameters.
type BallConfig struct {
	InitialSpeed      float64 `yaml:"initial_speed"`      // Units per second at launch
	MaxSpeed          float64 `yaml:"max_speed"`          // Speed ramp cap
	SpeedIncrease     float64 `yaml:"speed_increase"`     // Units per second gained each second
	MinVerticalRatio  float64 `yaml:"min_vertical_ratio"` // Share of speed kept vertical (0.05..0.45)
	Radius            float64 `yaml:"radius"`             // Half-extent of the ball
	HorizontalPadding float64 `yaml:"horizontal_padding"` // Extra inset from the side walls
	VerticalPadding   float64 `yaml:"vertical_padding"`   // Extra inset from the top and bottom
	FollowOffset      float64 `yaml:"follow_offset"`      // Height above the paddle while resting
}

// PaddleConfig defines paddle parameters.
type PaddleConfig struct {
	ScreenWidthPercent float64 `yaml:"screen_width_percent"` // 10..50 percent of viewport width
	Height             float64 `yaml:"height"`
	Padding            float64 `yaml:"padding"`           // Inset from the side walls
	MovementSpeed      float64 `yaml:"movement_speed"`    // Keyboard speed, units per second
	BottomOffset       float64 `yaml:"bottom_offset"`     // Paddle center above the viewport bottom
	DeathZoneOffset    float64 `yaml:"death_zone_offset"` // Death zone top below the paddle center
}

// LayoutConfig defines the brick grid generator parameters.
type LayoutConfig struct {
	Rows                     int     `yaml:"rows"`
	Columns                  int     `yaml:"columns"`
	SideMargin               float64 `yaml:"side_margin"`
	TopMargin                float64 `yaml:"top_margin"`
	BottomMargin             float64 `yaml:"bottom_margin"`
	WidthPercent             float64 `yaml:"width_percent"`              // 0.1..1 of viewport width
	HeightPercent            float64 `yaml:"height_percent"`             // 0.1..0.8 of viewport height
	HorizontalSpacingPercent float64 `yaml:"horizontal_spacing_percent"` // 0..0.25 of grid width
	VerticalSpacingPercent   float64 `yaml:"vertical_spacing_percent"`   // 0..0.25 of grid height
	PreserveAspect           bool    `yaml:"preserve_aspect"`
	FillPercent              float64 `yaml:"fill_percent"` // Shrink factor leaving gaps between bricks
	Shape                    string  `yaml:"shape"`        // rectangle, stair_left, stair_right
	RandomizeOnRestart       bool    `yaml:"randomize_on_restart"`
	GenerateOnStart          bool    `yaml:"generate_on_start"`
}

// BrickConfig defines per-brick parameters.
type BrickConfig struct {
	HitPoints      int      `yaml:"hit_points"`
	PointsPerBrick int      `yaml:"points_per_brick"`
	PrefabWidth    float64  `yaml:"prefab_width"`
	PrefabHeight   float64  `yaml:"prefab_height"`
	TintByRow      bool     `yaml:"tint_by_row"`
	RowColors      []string `yaml:"row_colors"`
	DecayTicks     int      `yaml:"decay_ticks"` // Presentation ticks a destroyed brick stays visible
	FlashTicks     int      `yaml:"flash_ticks"` // Presentation ticks a damaged brick flashes
}

// MessagesConfig defines the menu texts shown on state transitions.
type MessagesConfig struct {
	Intro         string `yaml:"intro"`
	Win           string `yaml:"win"`
	Lose          string `yaml:"lose"`
	PlayButton    string `yaml:"play_button"`
	RestartButton string `yaml:"restart_button"`
}

// AudioConfig defines bounce sound parameters.
type AudioConfig struct {
	Enabled  bool    `yaml:"enabled"`
	MinPitch float64 `yaml:"min_pitch"`
	MaxPitch float64 `yaml:"max_pitch"`
	Volume   float64 `yaml:"volume"` // 0..1
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases between rounds.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "rounds" or "none"
	MaxAt int    `yaml:"max_at"` // Rounds won at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to ball speeds at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
