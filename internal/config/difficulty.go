package config

import (
	"fmt"
	"slices"
	"strings"

	m3 "github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy    DifficultyPreset = "easy"
	DifficultyNormal  DifficultyPreset = "normal"
	DifficultyHard    DifficultyPreset = "hard"
	DifficultyEndless DifficultyPreset = "endless"
)

// Presets lists the accepted preset names.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyEndless}
}

// ParsePreset parses a preset name; empty selects normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	if p == "" {
		return DifficultyNormal, nil
	}
	if !slices.Contains(Presets(), p) {
		return "", fmt.Errorf("config: unknown difficulty %q", name)
	}
	return p, nil
}

// hardExtraColor widens the palette on hard; its initial must not clash with
// the default palette.
const hardExtraColor = "orange"

// ApplyPreset adjusts the move budget and palette for a preset.
// Fewer colors make matches more likely, so easy drops one and hard adds one.
func ApplyPreset(cfg *Match3Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Game.Moves = scaleMoves(cfg.Game.Moves, 4, 3)
		if len(cfg.Board.Palette) > minPalette(cfg.Board.Shape) {
			cfg.Board.Palette = cfg.Board.Palette[:len(cfg.Board.Palette)-1]
		}
	case DifficultyHard:
		cfg.Game.Moves = scaleMoves(cfg.Game.Moves, 2, 3)
		if !slices.Contains(cfg.Board.Palette, hardExtraColor) && !hasInitial(cfg.Board.Palette, 'O') {
			cfg.Board.Palette = append(slices.Clone(cfg.Board.Palette), hardExtraColor)
		}
	case DifficultyEndless:
		cfg.Game.Moves = 0
	}
}

// minPalette is the engine's color floor for a board shape; unknown shapes
// are left for Validate to report.
func minPalette(shape string) int {
	s, err := m3.ParseShape(shape)
	if err != nil {
		return m3.MinPalette(m3.ShapeRect)
	}
	return m3.MinPalette(s)
}

// scaleMoves multiplies a move budget by num/den, leaving endless budgets
// endless.
func scaleMoves(moves, num, den int) int {
	if moves == 0 {
		return 0
	}
	return max(1, moves*num/den)
}

func hasInitial(palette []string, ch rune) bool {
	for _, name := range palette {
		if name != "" && strings.ToUpper(name[:1]) == string(ch) {
			return true
		}
	}
	return false
}
