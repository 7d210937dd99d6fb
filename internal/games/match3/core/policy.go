package core

// Placement is a special tile promoted onto the board.
type Placement struct {
	Pos     Pos
	Special Special
}

// Group is a set of same-color matches that share at least one cell. A T or L
// shape is two intersecting runs and therefore one group.
type Group struct {
	Color Color
	Cells []Pos // deduplicated, row-major
}

// Size returns the number of distinct cells.
func (g Group) Size() int {
	return len(g.Cells)
}

// Contains reports whether p belongs to the group.
func (g Group) Contains(p Pos) bool {
	for _, c := range g.Cells {
		if c == p {
			return true
		}
	}
	return false
}

// GroupMatches merges intersecting matches of the same color.
func GroupMatches(ms []Match) []Group {
	parent := make([]int, len(ms))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}

	owner := make(map[Pos]int)
	for i, m := range ms {
		for _, p := range m.Cells {
			j, seen := owner[p]
			if !seen {
				owner[p] = i
				continue
			}
			if ms[j].Color == m.Color {
				parent[find(i)] = find(j)
			}
		}
	}

	index := make(map[int]int)
	var groups []Group
	sets := []PosSet{}
	for i, m := range ms {
		root := find(i)
		gi, ok := index[root]
		if !ok {
			gi = len(groups)
			index[root] = gi
			groups = append(groups, Group{Color: m.Color})
			sets = append(sets, make(PosSet))
		}
		for _, p := range m.Cells {
			sets[gi].Add(p)
		}
	}
	for i := range groups {
		groups[i].Cells = sets[i].Sorted()
	}
	return groups
}

// Straight reports whether every cell of the group lies on one grid line.
// On hex boards the three axial directions all count as lines.
func (g Group) Straight(shape Shape) bool {
	if len(g.Cells) == 0 {
		return true
	}
	first := g.Cells[0]
	sameRow, sameCol, sameDiag := true, true, shape == ShapeHex
	for _, p := range g.Cells[1:] {
		sameRow = sameRow && p.Row == first.Row
		sameCol = sameCol && p.Col == first.Col
		sameDiag = sameDiag && p.Row+p.Col == first.Row+first.Col
	}
	return sameRow || sameCol || sameDiag
}

// Classify returns the special a group earns under the given rules.
func Classify(g Group, rules *Rules) Special {
	switch {
	case g.Size() == 4:
		return rules.FourSpecial
	case g.Size() >= 5 && g.Straight(rules.Shape):
		return SpecialColorBomb
	case g.Size() >= 5:
		if rules.ScreenClear {
			return SpecialScreenClear
		}
		return SpecialColorBomb
	}
	return SpecialNone
}

// PlanSpecial decides which special, if any, the first clear of a swap
// creates and where it goes. At most one special is created: the strongest
// wins, then the group holding the swap destination, then the origin, then
// the placement cell that comes first in row-major order.
func PlanSpecial(b Board, ms []Match, origin, dest Pos) (Placement, bool) {
	var (
		best      Placement
		bestScore = -1
	)
	for _, g := range GroupMatches(ms) {
		s := Classify(g, b.rules)
		if s == SpecialNone {
			continue
		}
		score := s.rank() * 4
		at := g.Cells[0]
		switch {
		case g.Contains(dest):
			score += 2
			at = dest
		case g.Contains(origin):
			score++
			at = origin
		}
		if score > bestScore || (score == bestScore && at.Less(best.Pos)) {
			bestScore = score
			best = Placement{Pos: at, Special: s}
		}
	}
	return best, bestScore >= 0
}
