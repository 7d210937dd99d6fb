package websocket

import (
	"strings"

	m3 "github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// Message types sent by clients.
const (
	TypeSwap  = "swap"
	TypeState = "state"
	TypeHint  = "hint"
	TypeNew   = "new"
)

// Message types sent by the server.
const (
	TypeRejected = "rejected"
	TypeReverted = "reverted"
	TypeStep     = "step"
	TypeSettled  = "settled"
	TypeError    = "error"
)

// Pos is a board cell on the wire.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func fromPos(p m3.Pos) Pos { return Pos{Row: p.Row, Col: p.Col} }

func (p Pos) core() m3.Pos { return m3.P(p.Row, p.Col) }

// Request is a client message.
type Request struct {
	Type string `json:"type"`
	From *Pos   `json:"from,omitempty"`
	To   *Pos   `json:"to,omitempty"`
	Seed *int64 `json:"seed,omitempty"`
}

// State describes a session at rest.
type State struct {
	Variant   string   `json:"variant"`
	Seed      int64    `json:"seed"`
	Board     []string `json:"board"`
	Score     int      `json:"score"`
	Moves     int      `json:"moves"`
	MovesLeft int      `json:"moves_left"` // -1 without a move limit
	BestCombo int      `json:"best_combo"`
	GameOver  bool     `json:"game_over"`
}

// Step is one settle step on the wire.
type Step struct {
	Iteration  int      `json:"iteration"`
	Cleared    []Pos    `json:"cleared"`
	Special    string   `json:"special,omitempty"`
	SpecialAt  *Pos     `json:"special_at,omitempty"`
	ScoreDelta int      `json:"score_delta"`
	Combo      int      `json:"combo"`
	Board      []string `json:"board"`
}

// Response is a server message.
type Response struct {
	Type    string `json:"type"`
	Session string `json:"session"`
	State   *State `json:"state,omitempty"`
	Step    *Step  `json:"step,omitempty"`
	Hint    []Pos  `json:"hint,omitempty"`
	Error   string `json:"error,omitempty"`
}

func boardRows(b m3.Board) []string {
	return strings.Split(m3.RenderASCII(b), "\n")
}

func newStep(s m3.SettleStep) *Step {
	out := &Step{
		Iteration:  s.Iteration,
		Cleared:    make([]Pos, 0, len(s.Cleared)),
		ScoreDelta: s.ScoreDelta,
		Combo:      s.Combo,
		Board:      boardRows(s.Board),
	}
	for _, p := range s.Cleared {
		out.Cleared = append(out.Cleared, fromPos(p))
	}
	if s.SpecialCreated != nil {
		at := fromPos(s.SpecialCreated.Pos)
		out.Special = s.SpecialCreated.Special.String()
		out.SpecialAt = &at
	}
	return out
}
