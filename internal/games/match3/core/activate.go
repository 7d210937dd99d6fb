package core

// Activation records one special tile firing during a settle step.
type Activation struct {
	Pos     Pos
	Special Special
	Cells   []Pos // affected cells, row-major
}

// trigger is a special waiting to fire. partner is the tile it was swapped
// with, or nil when the special was caught in another clear.
type trigger struct {
	pos     Pos
	partner *Tile
}

// Activate returns the cells cleared by the special at p. partner is the tile
// the special was swapped with, or nil when it was hit by a clear.
func Activate(b Board, p Pos, partner *Tile) PosSet {
	t := b.At(p)
	out := NewPosSet(p)
	switch t.Special {
	case SpecialAreaBomb:
		for _, q := range b.Positions() {
			if b.blastRadius(p, q) <= 1 {
				out.Add(q)
			}
		}
	case SpecialLineClear:
		for _, q := range b.Positions() {
			if q.Row == p.Row || q.Col == p.Col {
				out.Add(q)
			}
		}
	case SpecialColorBomb:
		target, ok := colorBombTarget(b, partner)
		if !ok {
			return out
		}
		for q, tile := range b.All() {
			if tile.IsBase() && tile.Color == target {
				out.Add(q)
			}
		}
	case SpecialScreenClear:
		for q, tile := range b.All() {
			if !tile.IsEmpty() {
				out.Add(q)
			}
		}
	}
	return out
}

// blastRadius is Chebyshev distance on rectangular boards and axial
// distance on hex boards.
func (b Board) blastRadius(a, c Pos) int {
	if b.Shape() == ShapeHex {
		return b.Distance(a, c)
	}
	return max(abs(a.Row-c.Row), abs(a.Col-c.Col))
}

// colorBombTarget picks the color a color-bomb removes. A special partner has
// no color, so nothing beyond the bomb is cleared. Without a partner the most
// common color is taken, lowest index first on ties.
func colorBombTarget(b Board, partner *Tile) (Color, bool) {
	if partner != nil {
		if !partner.IsBase() {
			return 0, false
		}
		return partner.Color, true
	}
	counts := make([]int, b.rules.PaletteSize())
	for _, t := range b.tiles {
		if t.IsBase() && int(t.Color) < len(counts) {
			counts[t.Color]++
		}
	}
	best := -1
	for c, n := range counts {
		if n > 0 && (best < 0 || n > counts[best]) {
			best = c
		}
	}
	if best < 0 {
		return 0, false
	}
	return Color(best), true
}

// expandActivations fires the given triggers and every special they (or
// the existing clear-set) catch, breadth-first. Each special fires once.
// Affected cells are merged into clear.
func expandActivations(b Board, clear PosSet, triggers []trigger) []Activation {
	queue := append([]trigger(nil), triggers...)
	for _, p := range clear.Sorted() {
		if b.At(p).IsSpecial() {
			queue = append(queue, trigger{pos: p})
		}
	}

	fired := make(PosSet)
	var out []Activation
	for len(queue) > 0 {
		tr := queue[0]
		queue = queue[1:]
		if !fired.Add(tr.pos) {
			continue
		}
		cells := Activate(b, tr.pos, tr.partner)
		out = append(out, Activation{
			Pos:     tr.pos,
			Special: b.At(tr.pos).Special,
			Cells:   cells.Sorted(),
		})
		for _, q := range cells.Sorted() {
			clear.Add(q)
			if !fired.Has(q) && b.At(q).IsSpecial() {
				queue = append(queue, trigger{pos: q})
			}
		}
	}
	return out
}
