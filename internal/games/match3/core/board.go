package core

import (
	"fmt"
	"iter"
)

// Board is an immutable grid of tiles. Every operation that changes the
// layout returns a new Board; the receiver is never modified. A Board carries
// its own generator state, so refills derived from the same Board value are
// always identical.
type Board struct {
	rows   int
	cols   int
	tiles  []Tile
	gen    Generator
	nextID uint64
	rules  *Rules
}

var (
	rectDirs = []Pos{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	hexDirs  = []Pos{{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {-1, 1}, {1, -1}}
)

// InitBoard creates a fully populated board from cfg. Unless
// cfg.AllowInitialMatches is set, the returned board contains no match.
func InitBoard(cfg Config) (Board, error) {
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
	b.fillInitial()
	return b, nil
}

// fillInitial populates an empty board in row-major order. With at least
// MinPalette colors every cell finds a color that completes no match.
func (b *Board) fillInitial() {
	for _, p := range b.Positions() {
		b.set(p, b.newTile(b.draw()))
		if b.rules.RerollInitial {
			b.avoidMatch(p)
		}
	}
}

// avoidMatch cycles the base tile at p through the palette, starting at its
// current color, until it completes no match. It reports whether a color was
// found; on failure the last color tried is kept.
func (b *Board) avoidMatch(p Pos) bool {
	t := b.At(p)
	if !t.IsBase() {
		return true
	}
	n := b.rules.PaletteSize()
	start := int(t.Color)
	for i := range n {
		t.Color = Color((start + i) % n)
		b.set(p, t)
		if !formsMatchAt(*b, p) {
			return true
		}
	}
	return false
}

// repaint returns a copy of b without matches. Tiles are put back one by one
// in row-major order and recolored only when they would complete a match;
// tile identities are kept.
func repaint(b Board) Board {
	out := b.clone()
	clear(out.tiles)
	for _, p := range b.Positions() {
		out.set(p, b.At(p))
		out.avoidMatch(p)
	}
	return out
}

// Rows returns the number of rows.
func (b Board) Rows() int { return b.rows }

// Cols returns the number of columns.
func (b Board) Cols() int { return b.cols }

// Shape returns the board topology.
func (b Board) Shape() Shape {
	if b.rules == nil {
		return ShapeRect
	}
	return b.rules.Shape
}

// Rules returns the rule set the board was created with.
func (b Board) Rules() *Rules { return b.rules }

// InBounds reports whether p is on the board.
func (b Board) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < b.rows && p.Col >= 0 && p.Col < b.cols
}

func (b Board) index(p Pos) int {
	return p.Row*b.cols + p.Col
}

// At returns the tile at p, or an empty tile when out of bounds.
func (b Board) At(p Pos) Tile {
	if !b.InBounds(p) {
		return Tile{}
	}
	return b.tiles[b.index(p)]
}

// Positions returns every cell in row-major order.
func (b Board) Positions() []Pos {
	out := make([]Pos, 0, b.rows*b.cols)
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			out = append(out, Pos{r, c})
		}
	}
	return out
}

// All iterates cells in row-major order.
func (b Board) All() iter.Seq2[Pos, Tile] {
	return func(yield func(Pos, Tile) bool) {
		for i, t := range b.tiles {
			if !yield(Pos{i / b.cols, i % b.cols}, t) {
				return
			}
		}
	}
}

func (b Board) dirs() []Pos {
	if b.Shape() == ShapeHex {
		return hexDirs
	}
	return rectDirs
}

// Neighbors returns the in-bounds neighbors of p.
func (b Board) Neighbors(p Pos) []Pos {
	dirs := b.dirs()
	out := make([]Pos, 0, len(dirs))
	for _, d := range dirs {
		if q := p.Add(d); b.InBounds(q) {
			out = append(out, q)
		}
	}
	return out
}

// Distance returns the grid distance between two positions: Manhattan on
// rectangular boards, axial distance on hex boards.
func (b Board) Distance(a, c Pos) int {
	dr, dc := c.Row-a.Row, c.Col-a.Col
	if b.Shape() == ShapeHex {
		return (abs(dr) + abs(dc) + abs(dr+dc)) / 2
	}
	return abs(dr) + abs(dc)
}

// IsAdjacent reports whether a and c are neighbors.
func (b Board) IsAdjacent(a, c Pos) bool {
	return b.Distance(a, c) == 1
}

// Swap exchanges the tiles at a and c.
func (b Board) Swap(a, c Pos) (Board, error) {
	for _, p := range []Pos{a, c} {
		if !b.InBounds(p) {
			return b, fmt.Errorf("%w: %v on %dx%d board", ErrInvalidPosition, p, b.rows, b.cols)
		}
	}
	out := b.clone()
	ia, ic := out.index(a), out.index(c)
	out.tiles[ia], out.tiles[ic] = out.tiles[ic], out.tiles[ia]
	return out, nil
}

// Count returns how many base tiles have color c.
func (b Board) Count(c Color) int {
	n := 0
	for _, t := range b.tiles {
		if t.IsBase() && t.Color == c {
			n++
		}
	}
	return n
}

// Empty returns the number of empty cells.
func (b Board) Empty() int {
	n := 0
	for _, t := range b.tiles {
		if t.IsEmpty() {
			n++
		}
	}
	return n
}

// Equal reports whether both boards hold the same tiles, identities included.
func (b Board) Equal(o Board) bool {
	if b.rows != o.rows || b.cols != o.cols {
		return false
	}
	for i := range b.tiles {
		if b.tiles[i] != o.tiles[i] {
			return false
		}
	}
	return true
}

// SameLayout reports whether both boards hold the same kinds cell by cell.
func (b Board) SameLayout(o Board) bool {
	if b.rows != o.rows || b.cols != o.cols {
		return false
	}
	for i := range b.tiles {
		if !b.tiles[i].SameKind(o.tiles[i]) {
			return false
		}
	}
	return true
}

// String renders the board in layout form.
func (b Board) String() string {
	return RenderASCII(b)
}

// clone returns a deep copy, including generator state.
func (b Board) clone() Board {
	out := b
	out.tiles = make([]Tile, len(b.tiles))
	copy(out.tiles, b.tiles)
	if b.gen != nil {
		out.gen = b.gen.Clone()
	}
	return out
}

// set, newTile and draw mutate the receiver and are only used on fresh clones.
func (b *Board) set(p Pos, t Tile) {
	b.tiles[b.index(p)] = t
}

func (b *Board) newTile(c Color) Tile {
	t := Tile{ID: b.nextID, Color: c}
	b.nextID++
	return t
}

func (b *Board) draw() Color {
	return Color(b.gen.Intn(b.rules.PaletteSize()))
}

// promote turns the tile at p into a special, keeping its identity.
func (b Board) promote(p Pos, s Special) Board {
	out := b.clone()
	t := out.At(p)
	t.Special = s
	t.Color = 0
	out.set(p, t)
	return out
}
