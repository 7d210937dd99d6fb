package core

import "fmt"

// MinMatch is the smallest run or region that clears.
const MinMatch = 3

// Axis records how a match was found.
type Axis uint8

const (
	AxisRow Axis = iota
	AxisCol
	AxisCluster
)

func (a Axis) String() string {
	switch a {
	case AxisRow:
		return "row"
	case AxisCol:
		return "col"
	case AxisCluster:
		return "cluster"
	default:
		return fmt.Sprintf("axis(%d)", uint8(a))
	}
}

// Match is a maximal run (or connected region) of one base color.
type Match struct {
	Color Color
	Axis  Axis
	Cells []Pos
}

// Len returns the number of cells in the match.
func (m Match) Len() int {
	return len(m.Cells)
}

// Contains reports whether p is part of the match.
func (m Match) Contains(p Pos) bool {
	for _, c := range m.Cells {
		if c == p {
			return true
		}
	}
	return false
}

// FindMatches returns every match on the board. Row runs come first (top to
// bottom), then column runs (left to right); cluster matches are ordered by
// their first cell.
func FindMatches(b Board) []Match {
	if b.rules == nil {
		return nil
	}
	if b.rules.Detection == DetectClusters {
		return findClusters(b)
	}
	return findRuns(b)
}

// HasMatch reports whether FindMatches would return anything.
func HasMatch(b Board) bool {
	return len(FindMatches(b)) > 0
}

// ClearSet merges matches into one deduplicated set of cells.
func ClearSet(ms []Match) PosSet {
	s := make(PosSet)
	for _, m := range ms {
		for _, p := range m.Cells {
			s.Add(p)
		}
	}
	return s
}

func findRuns(b Board) []Match {
	var out []Match
	for r := 0; r < b.rows; r++ {
		out = scanLine(b, out, Pos{r, 0}, Pos{0, 1}, AxisRow)
	}
	for c := 0; c < b.cols; c++ {
		out = scanLine(b, out, Pos{0, c}, Pos{1, 0}, AxisCol)
	}
	return out
}

// scanLine walks one row or column from start in direction d. The cursor
// jumps past each run, so runs on one line never overlap.
func scanLine(b Board, out []Match, start, d Pos, axis Axis) []Match {
	p := start
	for b.InBounds(p) {
		t := b.At(p)
		if !t.IsBase() {
			p = p.Add(d)
			continue
		}
		cells := []Pos{p}
		next := p.Add(d)
		for b.InBounds(next) && b.At(next).matches(t) {
			cells = append(cells, next)
			next = next.Add(d)
		}
		if len(cells) >= MinMatch {
			out = append(out, Match{Color: t.Color, Axis: axis, Cells: cells})
		}
		p = next
	}
	return out
}

func findClusters(b Board) []Match {
	var out []Match
	visited := make(PosSet)
	for _, p := range b.Positions() {
		if visited.Has(p) || !b.At(p).IsBase() {
			continue
		}
		region := flood(b, p, visited)
		if len(region) >= MinMatch {
			sortPositions(region)
			out = append(out, Match{Color: b.At(p).Color, Axis: AxisCluster, Cells: region})
		}
	}
	return out
}

// flood collects the same-color region containing start, breadth-first.
func flood(b Board, start Pos, visited PosSet) []Pos {
	color := b.At(start)
	visited.Add(start)
	queue := []Pos{start}
	var region []Pos
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		region = append(region, p)
		for _, n := range b.Neighbors(p) {
			if !visited.Has(n) && b.At(n).matches(color) {
				visited.Add(n)
				queue = append(queue, n)
			}
		}
	}
	return region
}

// formsMatchAt reports whether the tile at p is part of a match, looking
// only at non-empty cells.
func formsMatchAt(b Board, p Pos) bool {
	t := b.At(p)
	if !t.IsBase() {
		return false
	}
	if b.rules.Detection == DetectClusters {
		return len(flood(b, p, make(PosSet))) >= MinMatch
	}
	for _, d := range []Pos{{0, 1}, {1, 0}} {
		n := 1
		for q := p.Add(d); b.At(q).matches(t); q = q.Add(d) {
			n++
		}
		back := Pos{-d.Row, -d.Col}
		for q := p.Add(back); b.At(q).matches(t); q = q.Add(back) {
			n++
		}
		if n >= MinMatch {
			return true
		}
	}
	return false
}
