package core

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Shape selects the board topology.
type Shape uint8

const (
	ShapeRect Shape = iota
	ShapeHex        // axial coordinates stored as a rhombus
)

func (s Shape) String() string {
	switch s {
	case ShapeRect:
		return "rect"
	case ShapeHex:
		return "hex"
	default:
		return fmt.Sprintf("shape(%d)", uint8(s))
	}
}

// ParseShape parses "rect" or "hex".
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(name) {
	case "", "rect", "square":
		return ShapeRect, nil
	case "hex":
		return ShapeHex, nil
	}
	return ShapeRect, fmt.Errorf("unknown shape %q", name)
}

// Detection selects how matches are found.
type Detection uint8

const (
	DetectRuns     Detection = iota // straight row/column runs
	DetectClusters                  // flood-filled same-color regions
)

func (d Detection) String() string {
	switch d {
	case DetectRuns:
		return "runs"
	case DetectClusters:
		return "clusters"
	default:
		return fmt.Sprintf("detection(%d)", uint8(d))
	}
}

// ParseDetection parses "runs" or "clusters".
func ParseDetection(name string) (Detection, error) {
	switch strings.ToLower(name) {
	case "", "runs", "lines":
		return DetectRuns, nil
	case "clusters", "flood":
		return DetectClusters, nil
	}
	return DetectRuns, fmt.Errorf("unknown detection %q", name)
}

// Board size limits.
const (
	MinBoardSize = 3
	MaxBoardSize = 32
)

// Config describes a board and the rules it is played with.
// The zero value of every optional field selects the classic behavior.
type Config struct {
	Rows    int
	Cols    int
	Palette []string // color names; nil uses DefaultPalette
	Seed    int64    // 0 seeds from the clock

	Shape     Shape
	Detection Detection // hex boards always use clusters

	BasePoints  int     // points per cleared cell, default 10
	MaxCombo    int     // combo multiplier ceiling, default 99
	MaxCascades int     // settle iterations per swap, default 200
	FourSpecial Special // special for a group of four, default area-bomb

	DisableScreenClear  bool // bent groups of five make color-bombs instead
	AllowInitialMatches bool // skip re-rolling matches on the starting board

	// Generator overrides the seeded RNG when set.
	Generator Generator
}

// DefaultConfig returns the classic 8x8 five-color setup.
func DefaultConfig() Config {
	return Config{
		Rows:    8,
		Cols:    8,
		Palette: append([]string(nil), DefaultPalette...),
	}
}

// Rules is the validated, immutable rule set shared by every board derived
// from one configuration.
type Rules struct {
	Shape         Shape
	Detection     Detection
	Palette       []string
	BasePoints    int
	MaxCombo      int
	MaxCascades   int
	FourSpecial   Special
	ScreenClear   bool
	RerollInitial bool

	chars []rune
}

// PaletteSize returns the number of base colors.
func (r *Rules) PaletteSize() int {
	return len(r.Palette)
}

// ColorName returns the palette name of c.
func (r *Rules) ColorName(c Color) string {
	if int(c) < len(r.Palette) {
		return r.Palette[c]
	}
	return fmt.Sprintf("color%d", c)
}

// ColorChar returns the layout symbol of c.
func (r *Rules) ColorChar(c Color) rune {
	if int(c) < len(r.chars) {
		return r.chars[c]
	}
	return '?'
}

func (r *Rules) colorFromChar(ch rune) (Color, bool) {
	for i, c := range r.chars {
		if c == ch {
			return Color(i), true
		}
	}
	return 0, false
}

// MinPalette returns the smallest palette a board of the given shape can be
// dealt without a starting match. A hex cell has three neighbors placed
// before it in row-major order, a rectangular cell two.
func MinPalette(shape Shape) int {
	if shape == ShapeHex {
		return 4
	}
	return 3
}

// Validate checks the configuration and returns the derived rules.
func (c Config) Validate() (*Rules, error) {
	if c.Rows < MinBoardSize || c.Rows > MaxBoardSize {
		return nil, configErr("INVALID_SIZE", "rows must be in [%d,%d], got %d", MinBoardSize, MaxBoardSize, c.Rows)
	}
	if c.Cols < MinBoardSize || c.Cols > MaxBoardSize {
		return nil, configErr("INVALID_SIZE", "cols must be in [%d,%d], got %d", MinBoardSize, MaxBoardSize, c.Cols)
	}

	palette := c.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	if len(palette) < 3 || len(palette) > MaxPalette {
		return nil, configErr("INVALID_PALETTE", "palette must have 3 to %d colors, got %d", MaxPalette, len(palette))
	}
	chars := make([]rune, len(palette))
	seen := make(map[rune]string, len(palette))
	for i, name := range palette {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, configErr("INVALID_PALETTE", "palette entry %d is empty", i)
		}
		ch := unicode.ToUpper([]rune(name)[0])
		if _, isSpecial := specialFromChar(ch); isSpecial || ch == '.' {
			return nil, configErr("INVALID_PALETTE", "color %q uses a reserved symbol", name)
		}
		if other, dup := seen[ch]; dup {
			return nil, configErr("INVALID_PALETTE", "colors %q and %q share the initial %q", other, name, ch)
		}
		seen[ch] = name
		chars[i] = ch
	}

	if c.Shape != ShapeRect && c.Shape != ShapeHex {
		return nil, configErr("INVALID_SHAPE", "unknown shape %d", c.Shape)
	}
	if least := MinPalette(c.Shape); len(palette) < least {
		return nil, configErr("INVALID_PALETTE", "%s boards need at least %d colors, got %d", c.Shape, least, len(palette))
	}
	detection := c.Detection
	if c.Shape == ShapeHex {
		detection = DetectClusters
	}

	four := c.FourSpecial
	switch four {
	case SpecialNone:
		four = SpecialAreaBomb
	case SpecialAreaBomb, SpecialLineClear:
	default:
		return nil, configErr("INVALID_RULE", "a group of four cannot create %s", four)
	}

	r := &Rules{
		Shape:         c.Shape,
		Detection:     detection,
		Palette:       append([]string(nil), palette...),
		BasePoints:    positiveOr(c.BasePoints, 10),
		MaxCombo:      positiveOr(c.MaxCombo, 99),
		MaxCascades:   positiveOr(c.MaxCascades, 200),
		FourSpecial:   four,
		ScreenClear:   !c.DisableScreenClear,
		RerollInitial: !c.AllowInitialMatches,
		chars:         chars,
	}
	if r.MaxCombo < 2 {
		return nil, configErr("INVALID_RULE", "max combo must be at least 2, got %d", r.MaxCombo)
	}
	return r, nil
}

// generator resolves the configured randomness source.
func (c Config) generator() Generator {
	if c.Generator != nil {
		return c.Generator.Clone()
	}
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewRNG(seed)
}

func positiveOr(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
