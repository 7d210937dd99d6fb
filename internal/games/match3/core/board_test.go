package core_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

func TestInitBoardIsStable(t *testing.T) {
	configs := map[string]func(*core.Config){
		"classic":  func(*core.Config) {},
		"clusters": func(c *core.Config) { c.Detection = core.DetectClusters },
		"hex":      func(c *core.Config) { c.Shape = core.ShapeHex },
		"four colors": func(c *core.Config) {
			c.Palette = []string{"red", "blue", "green", "yellow"}
		},
		"three color clusters": func(c *core.Config) {
			c.Detection = core.DetectClusters
			c.Palette = []string{"red", "blue", "green"}
		},
		"hex four colors": func(c *core.Config) {
			c.Shape = core.ShapeHex
			c.Rows, c.Cols = 7, 7
			c.Palette = []string{"red", "blue", "green", "yellow"}
		},
		"wide": func(c *core.Config) { c.Rows, c.Cols = 5, 12 },
	}

	for name, mutate := range configs {
		t.Run(name, func(t *testing.T) {
			for seed := int64(1); seed <= 100; seed++ {
				cfg := core.DefaultConfig()
				cfg.Seed = seed
				mutate(&cfg)

				b, err := core.InitBoard(cfg)
				if err != nil {
					t.Fatalf("InitBoard failed: %v", err)
				}
				if b.Empty() != 0 {
					t.Fatalf("seed %d: %d empty cells", seed, b.Empty())
				}
				for p, tile := range b.All() {
					if !tile.IsBase() || int(tile.Color) >= b.Rules().PaletteSize() {
						t.Fatalf("seed %d: bad tile %+v at %v", seed, tile, p)
					}
				}
				if ms := core.FindMatches(b); len(ms) != 0 {
					t.Fatalf("seed %d: startup board has %d matches:\n%s", seed, len(ms), b)
				}
			}
		})
	}
}

func TestInitBoardDeterministic(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Seed = 42
	a, err := core.InitBoard(cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := core.InitBoard(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Errorf("same seed produced different boards:\n%s\nvs\n%s", a, b)
	}

	cfg.Seed = 43
	c, err := core.InitBoard(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if a.SameLayout(c) {
		t.Error("different seeds produced the same layout")
	}
}

func TestInitBoardUniqueIDs(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Seed = 5
	b, err := core.InitBoard(cfg)
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[uint64]bool)
	for _, tile := range b.All() {
		if seen[tile.ID] {
			t.Fatalf("duplicate tile id %d", tile.ID)
		}
		seen[tile.ID] = true
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*core.Config)
		code   string
	}{
		{"too few rows", func(c *core.Config) { c.Rows = 2 }, "INVALID_SIZE"},
		{"too many cols", func(c *core.Config) { c.Cols = 100 }, "INVALID_SIZE"},
		{"two colors", func(c *core.Config) { c.Palette = []string{"red", "blue"} }, "INVALID_PALETTE"},
		{"shared initial", func(c *core.Config) { c.Palette = []string{"red", "rose", "blue"} }, "INVALID_PALETTE"},
		{"reserved symbol", func(c *core.Config) { c.Palette = []string{"red", "*star", "blue"} }, "INVALID_PALETTE"},
		{"hex with three colors", func(c *core.Config) {
			c.Shape = core.ShapeHex
			c.Palette = []string{"red", "blue", "green"}
		}, "INVALID_PALETTE"},
		{"four makes color bomb", func(c *core.Config) { c.FourSpecial = core.SpecialColorBomb }, "INVALID_RULE"},
		{"combo ceiling one", func(c *core.Config) { c.MaxCombo = 1 }, "INVALID_RULE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := core.DefaultConfig()
			tt.mutate(&cfg)
			_, err := core.InitBoard(cfg)
			if !errors.Is(err, core.ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}
			var ce *core.ConfigError
			if !errors.As(err, &ce) || ce.Code != tt.code {
				t.Errorf("code = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	rules, err := core.Config{Rows: 8, Cols: 8}.Validate()
	if err != nil {
		t.Fatal(err)
	}
	if rules.BasePoints != 10 || rules.MaxCombo != 99 {
		t.Errorf("BasePoints=%d MaxCombo=%d, want 10 and 99", rules.BasePoints, rules.MaxCombo)
	}
	if rules.FourSpecial != core.SpecialAreaBomb || !rules.ScreenClear || !rules.RerollInitial {
		t.Errorf("unexpected defaults %+v", rules)
	}
	if rules.PaletteSize() != len(core.DefaultPalette) {
		t.Errorf("PaletteSize = %d", rules.PaletteSize())
	}

	hex, err := core.Config{Rows: 6, Cols: 6, Shape: core.ShapeHex}.Validate()
	if err != nil {
		t.Fatal(err)
	}
	if hex.Detection != core.DetectClusters {
		t.Errorf("hex detection = %v, want clusters", hex.Detection)
	}
}

func TestSwapReturnsNewBoard(t *testing.T) {
	b := core.MustLayout(scripted(0), stripes...)
	before := core.RenderASCII(b)

	s, err := b.Swap(core.P(0, 0), core.P(0, 1))
	if err != nil {
		t.Fatalf("Swap failed: %v", err)
	}
	if core.RenderASCII(b) != before {
		t.Error("Swap modified its receiver")
	}
	if s.At(core.P(0, 0)).ID != b.At(core.P(0, 1)).ID || s.At(core.P(0, 1)).ID != b.At(core.P(0, 0)).ID {
		t.Error("tile identities did not travel with the swap")
	}

	if _, err := b.Swap(core.P(0, 0), core.P(8, 0)); !errors.Is(err, core.ErrInvalidPosition) {
		t.Errorf("err = %v, want ErrInvalidPosition", err)
	}
}

func TestIsAdjacent(t *testing.T) {
	rect := core.MustLayout(scripted(0), stripes...)
	hexCfg := scripted(0)
	hexCfg.Shape = core.ShapeHex
	hex := core.MustLayout(hexCfg, "RGB", "YPR", "GBY")

	tests := []struct {
		name string
		b    core.Board
		a, c core.Pos
		want bool
	}{
		{"rect right", rect, core.P(2, 2), core.P(2, 3), true},
		{"rect down", rect, core.P(2, 2), core.P(3, 2), true},
		{"rect diagonal", rect, core.P(2, 2), core.P(3, 3), false},
		{"rect two apart", rect, core.P(2, 2), core.P(2, 4), false},
		{"hex up-right", hex, core.P(1, 1), core.P(0, 2), true},
		{"hex down-left", hex, core.P(1, 1), core.P(2, 0), true},
		{"hex up-left", hex, core.P(1, 1), core.P(0, 0), false},
		{"hex down-right", hex, core.P(1, 1), core.P(2, 2), false},
		{"hex left", hex, core.P(1, 1), core.P(1, 0), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.b.IsAdjacent(tt.a, tt.c); got != tt.want {
				t.Errorf("IsAdjacent(%v, %v) = %v, want %v", tt.a, tt.c, got, tt.want)
			}
		})
	}

	if n := len(hex.Neighbors(core.P(1, 1))); n != 6 {
		t.Errorf("hex center has %d neighbors, want 6", n)
	}
	if n := len(rect.Neighbors(core.P(0, 0))); n != 2 {
		t.Errorf("rect corner has %d neighbors, want 2", n)
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	rows := []string{
		"RGB*Y",
		"P#=!.",
		"BYRGP",
	}
	b, err := core.FromLayout(scripted(0), rows)
	if err != nil {
		t.Fatalf("FromLayout failed: %v", err)
	}
	if got, want := core.RenderASCII(b), strings.Join(rows, "\n"); got != want {
		t.Errorf("RenderASCII =\n%s\nwant\n%s", got, want)
	}
	if b.At(core.P(1, 1)).Special != core.SpecialAreaBomb {
		t.Errorf("(1,1) = %+v, want area-bomb", b.At(core.P(1, 1)))
	}
	if !b.At(core.P(1, 4)).IsEmpty() {
		t.Error("(1,4) should be empty")
	}

	if _, err := core.FromLayout(scripted(0), []string{"RGB", "RG", "RGB"}); err == nil {
		t.Error("ragged layout accepted")
	}
	if _, err := core.FromLayout(scripted(0), []string{"RGB", "RXB", "RGB"}); err == nil {
		t.Error("unknown symbol accepted")
	}
}

func TestSimpleRNGDeterministic(t *testing.T) {
	a, b := core.NewRNG(12345), core.NewRNG(12345)
	for i := 0; i < 100; i++ {
		if x, y := a.Intn(5), b.Intn(5); x != y {
			t.Fatalf("step %d: %d != %d", i, x, y)
		}
	}

	c := a.Clone()
	if a.Intn(1000) != c.Intn(1000) {
		t.Error("clone diverged from its source")
	}

	zero := core.NewRNG(0)
	if zero.Next() == 0 {
		t.Error("zero seed produced a stuck generator")
	}
}
