package config

import (
	"os"
	"path/filepath"
	"testing"

	m3 "github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)

	cfg, err := LoadMatch3("")
	if err != nil {
		t.Fatalf("LoadMatch3: %v", err)
	}
	def := DefaultMatch3Config()
	if cfg.Board.Rows != def.Board.Rows || cfg.Game.Moves != def.Game.Moves ||
		cfg.Rules.FourSpecial != def.Rules.FourSpecial || len(cfg.Board.Palette) != len(def.Board.Palette) {
		t.Errorf("embedded = %+v\nhardcoded = %+v", cfg, def)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestLoadCustomPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m3.yaml")
	data := "board:\n  rows: 6\n  shape: hex\ngame:\n  moves: 12\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMatch3(path)
	if err != nil {
		t.Fatalf("LoadMatch3: %v", err)
	}
	if cfg.Board.Rows != 6 || cfg.Board.Cols != 8 || cfg.Game.Moves != 12 {
		t.Errorf("partial override not merged: %+v", cfg)
	}

	ec, err := cfg.EngineConfig(7)
	if err != nil {
		t.Fatal(err)
	}
	if ec.Shape != m3.ShapeHex || ec.Seed != 7 || ec.FourSpecial != m3.SpecialAreaBomb {
		t.Errorf("EngineConfig = %+v", ec)
	}
}

func TestLoadLocalConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "match3.yaml"), []byte("game:\n  moves: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMatch3("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Game.Moves != 5 {
		t.Errorf("Moves = %d, want 5 from ./configs", cfg.Game.Moves)
	}
}

func TestLoadCustomErrors(t *testing.T) {
	if _, err := LoadMatch3(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom file accepted")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("board:\n  rows: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMatch3(path); err == nil {
		t.Error("invalid board size accepted")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Match3Config)
	}{
		{"bad shape", func(c *Match3Config) { c.Board.Shape = "triangle" }},
		{"bad detection", func(c *Match3Config) { c.Rules.Detection = "diagonal" }},
		{"bad four special", func(c *Match3Config) { c.Rules.FourSpecial = "nuke" }},
		{"color bomb for four", func(c *Match3Config) { c.Rules.FourSpecial = "color-bomb" }},
		{"negative moves", func(c *Match3Config) { c.Game.Moves = -1 }},
		{"zero step ticks", func(c *Match3Config) { c.Game.StepTicks = 0 }},
		{"negative keep", func(c *Match3Config) { c.Scores.Keep = -2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultMatch3Config()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate accepted invalid config")
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	easy := DefaultMatch3Config()
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Game.Moves != 40 || len(easy.Board.Palette) != 4 {
		t.Errorf("easy = %d moves, %d colors", easy.Game.Moves, len(easy.Board.Palette))
	}

	hard := DefaultMatch3Config()
	ApplyPreset(&hard, DifficultyHard)
	if hard.Game.Moves != 20 || len(hard.Board.Palette) != 6 {
		t.Errorf("hard = %d moves, %d colors", hard.Game.Moves, len(hard.Board.Palette))
	}
	if err := hard.Validate(); err != nil {
		t.Errorf("hard preset invalid: %v", err)
	}

	hex := DefaultMatch3Config()
	hex.Board.Shape = "hex"
	hex.Board.Palette = hex.Board.Palette[:4]
	ApplyPreset(&hex, DifficultyEasy)
	if len(hex.Board.Palette) != 4 {
		t.Errorf("easy hex dropped to %d colors", len(hex.Board.Palette))
	}
	if err := hex.Validate(); err != nil {
		t.Errorf("easy hex invalid: %v", err)
	}

	endless := DefaultMatch3Config()
	ApplyPreset(&endless, DifficultyEndless)
	ApplyPreset(&endless, DifficultyHard)
	if endless.Game.Moves != 0 {
		t.Errorf("endless budget became %d", endless.Game.Moves)
	}

	if _, err := ParsePreset("brutal"); err == nil {
		t.Error("unknown preset accepted")
	}
	if p, _ := ParsePreset(""); p != DifficultyNormal {
		t.Errorf("empty preset = %q", p)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(DefaultMatch3Config())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadMatch3(path)
	if err != nil {
		t.Fatalf("reloading marshaled config: %v", err)
	}
	if cfg.Scores.Keep != 5 {
		t.Errorf("Keep = %d", cfg.Scores.Keep)
	}
}
