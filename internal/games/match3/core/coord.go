// Package core implements the pure rules engine for the match-3 game.
// It has no dependencies on the platform, terminal or storage layers:
// boards are immutable values, randomness is injected through a Generator,
// and resolution is exposed as a lazy sequence of settle steps.
package core

import (
	"fmt"
	"sort"
)

// Pos is a cell position on the board. For hex boards Row is the axial r
// coordinate and Col the axial q coordinate.
type Pos struct {
	Row int
	Col int
}

// P is a shorthand constructor for Pos.
func P(row, col int) Pos {
	return Pos{Row: row, Col: col}
}

// String returns "(row,col)".
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Add returns p translated by d.
func (p Pos) Add(d Pos) Pos {
	return Pos{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

// Less orders positions row-major.
func (p Pos) Less(o Pos) bool {
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Col < o.Col
}

// PosSet is a set of positions keyed by value.
type PosSet map[Pos]struct{}

// NewPosSet builds a set from the given positions.
func NewPosSet(ps ...Pos) PosSet {
	s := make(PosSet, len(ps))
	for _, p := range ps {
		s[p] = struct{}{}
	}
	return s
}

// Add inserts p and reports whether it was new.
func (s PosSet) Add(p Pos) bool {
	if _, ok := s[p]; ok {
		return false
	}
	s[p] = struct{}{}
	return true
}

// Has reports membership.
func (s PosSet) Has(p Pos) bool {
	_, ok := s[p]
	return ok
}

// Union adds every member of o to s.
func (s PosSet) Union(o PosSet) {
	for p := range o {
		s[p] = struct{}{}
	}
}

// Sorted returns the members in row-major order.
func (s PosSet) Sorted() []Pos {
	out := make([]Pos, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sortPositions(out)
	return out
}

func sortPositions(ps []Pos) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].Less(ps[j]) })
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
