package config

import (
	_ "embed"

	m3 "github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the classic 8x8 configuration with a 30 move
// budget.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: BoardConfig{
			Rows:    8,
			Cols:    8,
			Shape:   "rect",
			Palette: append([]string(nil), m3.DefaultPalette...),
		},
		Rules: RulesConfig{
			Detection:   "runs",
			BasePoints:  10,
			MaxCombo:    99,
			MaxCascades: 200,
			FourSpecial: "area-bomb",
			ScreenClear: true,
		},
		Game: GameConfig{
			Moves:       30,
			StepTicks:   6,
			RevertTicks: 9,
		},
		Scores: ScoresConfig{
			Keep: 5,
		},
	}
}
