package match3

import (
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

// Variant is a named rule set layered over the loaded configuration.
type Variant struct {
	Info  registry.GameInfo
	apply func(*config.Match3Config)
}

var variants = []Variant{
	{
		Info: registry.GameInfo{
			ID:          "match3",
			Title:       "Match-3",
			Description: "Classic 8x8 swaps, limited moves",
		},
		apply: func(*config.Match3Config) {},
	},
	{
		Info: registry.GameInfo{
			ID:          "match3_endless",
			Title:       "Match-3 (Endless)",
			Description: "No move limit, play until the board locks up",
		},
		apply: func(c *config.Match3Config) { c.Game.Moves = 0 },
	},
	{
		Info: registry.GameInfo{
			ID:          "match3_cluster",
			Title:       "Match-3 Clusters",
			Description: "Any connected group of three clears",
		},
		apply: func(c *config.Match3Config) { c.Rules.Detection = "clusters" },
	},
	{
		Info: registry.GameInfo{
			ID:          "match3_hex",
			Title:       "Match-3 Hex",
			Description: "Six neighbors per tile on a hex grid",
		},
		apply: func(c *config.Match3Config) {
			c.Board.Shape = "hex"
			c.Board.Rows, c.Board.Cols = 7, 7
		},
	},
	{
		Info: registry.GameInfo{
			ID:          "match3_lite",
			Title:       "Match-3 Lite",
			Description: "Four colors, no screen-clear",
		},
		apply: func(c *config.Match3Config) {
			c.Board.Palette = slices.Clone(c.Board.Palette[:min(4, len(c.Board.Palette))])
			c.Rules.ScreenClear = false
		},
	},
}

func init() {
	for _, v := range variants {
		registry.Register(v.Info, func() registry.Game {
			return New(v.Info.ID)
		})
	}
}

// Package-level settings shared by every new game, set by the CLI before
// the platform starts.
var (
	settingsMu sync.RWMutex
	baseConfig = config.DefaultMatch3Config()
	difficulty = config.DifficultyNormal
)

// SetConfig replaces the configuration variants are layered over.
func SetConfig(cfg config.Match3Config) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	baseConfig = cfg
}

// SetDifficulty selects the preset applied on top of each variant.
func SetDifficulty(p config.DifficultyPreset) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	difficulty = p
}

// BaseConfig returns the configuration variants are layered over.
func BaseConfig() config.Match3Config {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return baseConfig
}

// Variants returns the built-in variants in menu order.
func Variants() []Variant {
	return slices.Clone(variants)
}

// LookupVariant finds a variant by ID.
func LookupVariant(id string) (Variant, bool) {
	for _, v := range variants {
		if v.Info.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// VariantConfig returns the effective configuration of a variant under the
// current base config and difficulty.
func VariantConfig(id string) (config.Match3Config, error) {
	v, ok := LookupVariant(id)
	if !ok {
		return config.Match3Config{}, fmt.Errorf("match3: unknown variant %q", id)
	}

	settingsMu.RLock()
	cfg, preset := baseConfig, difficulty
	settingsMu.RUnlock()

	cfg.Board.Palette = slices.Clone(cfg.Board.Palette)
	v.apply(&cfg)
	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("match3: variant %s: %w", id, err)
	}
	return cfg, nil
}

// NewVariantSession deals a session for a variant.
func NewVariantSession(id string, seed int64) (*Session, error) {
	cfg, err := VariantConfig(id)
	if err != nil {
		return nil, err
	}
	return NewSession(cfg, seed)
}
