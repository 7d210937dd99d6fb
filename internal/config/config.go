// Package config provides YAML-based configuration loading and difficulty
// presets for the match-3 variants.
package config

import (
	"fmt"

	m3 "github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// Match3Config contains all configuration for a match-3 game.
type Match3Config struct {
	Board  BoardConfig  `yaml:"board"`
	Rules  RulesConfig  `yaml:"rules"`
	Game   GameConfig   `yaml:"game"`
	Scores ScoresConfig `yaml:"scores"`
}

// BoardConfig defines the grid.
type BoardConfig struct {
	Rows    int      `yaml:"rows"`
	Cols    int      `yaml:"cols"`
	Shape   string   `yaml:"shape"`   // "rect" or "hex"
	Palette []string `yaml:"palette"` // color names, initials must differ
}

// RulesConfig defines matching and scoring.
type RulesConfig struct {
	Detection           string `yaml:"detection"` // "runs" or "clusters"
	BasePoints          int    `yaml:"base_points"`
	MaxCombo            int    `yaml:"max_combo"`
	MaxCascades         int    `yaml:"max_cascades"`
	FourSpecial         string `yaml:"four_special"` // "area-bomb" or "line-clear"
	ScreenClear         bool   `yaml:"screen_clear"`
	AllowInitialMatches bool   `yaml:"allow_initial_matches"`
}

// GameConfig defines session pacing.
type GameConfig struct {
	Moves       int `yaml:"moves"`        // move budget, 0 = endless
	StepTicks   int `yaml:"step_ticks"`   // ticks each settle step stays on screen
	RevertTicks int `yaml:"revert_ticks"` // ticks a rejected swap is shown
}

// ScoresConfig defines high score retention.
type ScoresConfig struct {
	Keep int `yaml:"keep"` // results kept per variant, 0 = all
}

// EngineConfig converts the board and rules sections into an engine
// configuration for the given seed.
func (c Match3Config) EngineConfig(seed int64) (m3.Config, error) {
	shape, err := m3.ParseShape(c.Board.Shape)
	if err != nil {
		return m3.Config{}, fmt.Errorf("config: board: %w", err)
	}
	detection, err := m3.ParseDetection(c.Rules.Detection)
	if err != nil {
		return m3.Config{}, fmt.Errorf("config: rules: %w", err)
	}
	four := m3.SpecialNone
	if c.Rules.FourSpecial != "" {
		if four, err = m3.ParseSpecial(c.Rules.FourSpecial); err != nil {
			return m3.Config{}, fmt.Errorf("config: rules: %w", err)
		}
	}

	return m3.Config{
		Rows:                c.Board.Rows,
		Cols:                c.Board.Cols,
		Palette:             append([]string(nil), c.Board.Palette...),
		Seed:                seed,
		Shape:               shape,
		Detection:           detection,
		BasePoints:          c.Rules.BasePoints,
		MaxCombo:            c.Rules.MaxCombo,
		MaxCascades:         c.Rules.MaxCascades,
		FourSpecial:         four,
		DisableScreenClear:  !c.Rules.ScreenClear,
		AllowInitialMatches: c.Rules.AllowInitialMatches,
	}, nil
}

// Validate checks the whole configuration, including the engine rules.
func (c Match3Config) Validate() error {
	ec, err := c.EngineConfig(1)
	if err != nil {
		return err
	}
	if _, err := ec.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Game.Moves < 0 {
		return fmt.Errorf("config: game.moves must not be negative, got %d", c.Game.Moves)
	}
	if c.Game.StepTicks < 1 || c.Game.RevertTicks < 1 {
		return fmt.Errorf("config: game.step_ticks and game.revert_ticks must be at least 1")
	}
	if c.Scores.Keep < 0 {
		return fmt.Errorf("config: scores.keep must not be negative, got %d", c.Scores.Keep)
	}
	return nil
}
