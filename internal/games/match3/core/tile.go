package core

import "fmt"

// Color indexes the configured palette. It is meaningful only for base tiles.
type Color uint8

// MaxPalette is the largest supported palette.
const MaxPalette = 8

// DefaultPalette is the five-color palette of the classic game.
var DefaultPalette = []string{"red", "blue", "green", "yellow", "purple"}

// Special identifies a power tile variant.
type Special uint8

const (
	SpecialNone Special = iota
	SpecialLineClear
	SpecialAreaBomb
	SpecialColorBomb
	SpecialScreenClear
)

// String returns the special's name.
func (s Special) String() string {
	switch s {
	case SpecialNone:
		return "none"
	case SpecialLineClear:
		return "line-clear"
	case SpecialAreaBomb:
		return "area-bomb"
	case SpecialColorBomb:
		return "color-bomb"
	case SpecialScreenClear:
		return "screen-clear"
	default:
		return fmt.Sprintf("special(%d)", uint8(s))
	}
}

// Char returns the single-character layout symbol for the special.
func (s Special) Char() rune {
	switch s {
	case SpecialLineClear:
		return '='
	case SpecialAreaBomb:
		return '#'
	case SpecialColorBomb:
		return '*'
	case SpecialScreenClear:
		return '!'
	default:
		return '?'
	}
}

// rank orders specials by power for choosing among candidate groups.
func (s Special) rank() int {
	switch s {
	case SpecialScreenClear:
		return 4
	case SpecialColorBomb:
		return 3
	case SpecialAreaBomb, SpecialLineClear:
		return 2
	default:
		return 0
	}
}

// ParseSpecial parses a special name as produced by String.
func ParseSpecial(name string) (Special, error) {
	for s := SpecialLineClear; s <= SpecialScreenClear; s++ {
		if s.String() == name {
			return s, nil
		}
	}
	return SpecialNone, fmt.Errorf("unknown special %q", name)
}

// specialFromChar maps a layout symbol back to a special.
func specialFromChar(r rune) (Special, bool) {
	for s := SpecialLineClear; s <= SpecialScreenClear; s++ {
		if s.Char() == r {
			return s, true
		}
	}
	return SpecialNone, false
}

// Tile is the content of one cell. The zero Tile is an empty cell.
type Tile struct {
	ID      uint64
	Color   Color
	Special Special
}

// IsEmpty reports whether the cell holds no tile.
func (t Tile) IsEmpty() bool {
	return t.ID == 0
}

// IsSpecial reports whether the tile is a power tile.
func (t Tile) IsSpecial() bool {
	return !t.IsEmpty() && t.Special != SpecialNone
}

// IsBase reports whether the tile is a plain colored tile.
func (t Tile) IsBase() bool {
	return !t.IsEmpty() && t.Special == SpecialNone
}

// SameKind compares kinds, ignoring identity.
func (t Tile) SameKind(o Tile) bool {
	if t.IsEmpty() || o.IsEmpty() {
		return t.IsEmpty() == o.IsEmpty()
	}
	if t.Special != o.Special {
		return false
	}
	return t.Special != SpecialNone || t.Color == o.Color
}

// matches reports whether two tiles can form part of the same run.
func (t Tile) matches(o Tile) bool {
	return t.IsBase() && o.IsBase() && t.Color == o.Color
}
