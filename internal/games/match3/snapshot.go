package match3

import m3 "github.com/vovakirdan/tui-match3/internal/games/match3/core"

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Variant   string
	Score     int
	Moves     int
	BestCombo int
	Board     string // ASCII layout
	Cursor    m3.Pos
	Busy      bool
	GameOver  bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:    g.tick,
		Variant: g.ID(),
		Cursor:  g.cursor,
	}
	if g.session == nil {
		return s
	}
	s.Score = g.session.Score()
	s.Moves = g.session.Moves()
	s.BestCombo = g.session.BestCombo()
	s.Board = m3.RenderASCII(g.session.Board())
	s.Busy = g.session.Busy()
	s.GameOver = g.gameOver
	return s
}
