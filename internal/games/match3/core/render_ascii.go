package core

import (
	"fmt"
	"strings"
	"unicode"
)

// EmptyChar marks an empty cell in layouts.
const EmptyChar = '.'

// RenderASCII renders the board one row per line. Base tiles use the upper
// case initial of their palette color, specials use their Char and empty
// cells are '.'.
func RenderASCII(b Board) string {
	if b.rules == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(b.rows * (b.cols + 1))
	for r := 0; r < b.rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < b.cols; c++ {
			sb.WriteRune(CellChar(b, Pos{r, c}))
		}
	}
	return sb.String()
}

// CellChar returns the layout symbol of the tile at p.
func CellChar(b Board, p Pos) rune {
	t := b.At(p)
	switch {
	case t.IsEmpty():
		return EmptyChar
	case t.IsSpecial():
		return t.Special.Char()
	default:
		return b.rules.ColorChar(t.Color)
	}
}

// FromLayout builds a board from rows of layout symbols (see RenderASCII).
// Spaces are ignored. The board size comes from the layout; every other
// setting comes from cfg. Tile ids are assigned in row-major order.
func FromLayout(cfg Config, rows []string) (Board, error) {
	grid := make([][]rune, 0, len(rows))
	for _, line := range rows {
		cells := []rune(strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, line))
		if len(cells) > 0 {
			grid = append(grid, cells)
		}
	}
	if len(grid) == 0 {
		return Board{}, configErr("INVALID_LAYOUT", "layout is empty")
	}

	cfg.Rows, cfg.Cols = len(grid), len(grid[0])
	rules, err := cfg.Validate()
	if err != nil {
		return Board{}, err
	}

	b := Board{
		rows:   cfg.Rows,
		cols:   cfg.Cols,
		tiles:  make([]Tile, cfg.Rows*cfg.Cols),
		gen:    cfg.generator(),
		nextID: 1,
		rules:  rules,
	}
	for r, cells := range grid {
		if len(cells) != cfg.Cols {
			return Board{}, configErr("INVALID_LAYOUT", "row %d has %d cells, want %d", r, len(cells), cfg.Cols)
		}
		for c, ch := range cells {
			t, err := b.parseCell(ch)
			if err != nil {
				return Board{}, configErr("INVALID_LAYOUT", "cell (%d,%d): %v", r, c, err)
			}
			b.set(Pos{r, c}, t)
		}
	}
	return b, nil
}

func (b *Board) parseCell(ch rune) (Tile, error) {
	if ch == EmptyChar {
		return Tile{}, nil
	}
	if s, ok := specialFromChar(ch); ok {
		t := b.newTile(0)
		t.Special = s
		return t, nil
	}
	if c, ok := b.rules.colorFromChar(unicode.ToUpper(ch)); ok {
		return b.newTile(c), nil
	}
	return Tile{}, fmt.Errorf("unknown symbol %q", ch)
}

// MustLayout is FromLayout for fixtures; it panics on error.
func MustLayout(cfg Config, rows ...string) Board {
	b, err := FromLayout(cfg, rows)
	if err != nil {
		panic(err)
	}
	return b
}
