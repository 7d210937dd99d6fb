package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

func TestActivate(t *testing.T) {
	plain := core.Tile{ID: 999, Color: 0}
	special := core.Tile{ID: 998, Special: core.SpecialAreaBomb}

	tests := []struct {
		name    string
		shape   core.Shape
		rows    []string
		at      core.Pos
		partner *core.Tile
		want    int
	}{
		{"area bomb center", core.ShapeRect, []string{"RGB", "G#Y", "BYR"}, core.P(1, 1), nil, 9},
		{"area bomb corner", core.ShapeRect, []string{"#GB", "GRY", "BYR"}, core.P(0, 0), nil, 4},
		{"area bomb hex", core.ShapeHex, []string{"RGB", "G#Y", "BYR"}, core.P(1, 1), nil, 7},
		{"line clear", core.ShapeRect, []string{"RGBY", "G=YR", "BYRG", "YRGB"}, core.P(1, 1), nil, 7},
		{"color bomb vs red", core.ShapeRect, []string{"RGR", "G*R", "BYR"}, core.P(1, 1), &plain, 5},
		{"color bomb vs special", core.ShapeRect, []string{"RGR", "G*R", "BYR"}, core.P(1, 1), &special, 1},
		{"color bomb from clear", core.ShapeRect, []string{"RGR", "G*R", "BYR"}, core.P(1, 1), nil, 5},
		{"screen clear", core.ShapeRect, []string{"RG.", "G!R", "BYR"}, core.P(1, 1), nil, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := scripted(0)
			cfg.Shape = tt.shape
			b := core.MustLayout(cfg, tt.rows...)
			got := core.Activate(b, tt.at, tt.partner)
			if len(got) != tt.want {
				t.Errorf("affected %d cells, want %d: %v", len(got), tt.want, got.Sorted())
			}
			if !got.Has(tt.at) {
				t.Error("activation does not include the special itself")
			}
		})
	}
}

func TestScreenClearWaves(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Seed = 17
	b := core.MustLayout(cfg,
		"RGBYP",
		"GB!PR",
		"BYPRG",
	)
	out := core.RequestSwap(b, core.P(1, 2), core.P(0, 2))
	if out.Kind != core.OutcomeSettled {
		t.Fatalf("Kind = %v, want settled", out.Kind)
	}
	step := out.Settlement.All()[0]
	if len(step.Cleared) != 15 {
		t.Errorf("cleared %d, want the whole board", len(step.Cleared))
	}
	if waves := step.Waves(); len(waves) != 3 || len(waves[0]) != 5 {
		t.Errorf("waves = %v, want three rows of five", waves)
	}
}
