package core

import (
	"fmt"
	"iter"
)

// OutcomeKind classifies the result of a swap request.
type OutcomeKind uint8

const (
	OutcomeRejected OutcomeKind = iota // invalid input, nothing applied
	OutcomeReverted                    // swap applied and undone, no match
	OutcomeSettled                     // swap accepted, steps follow
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeRejected:
		return "rejected"
	case OutcomeReverted:
		return "reverted"
	case OutcomeSettled:
		return "settled"
	default:
		return fmt.Sprintf("outcome(%d)", uint8(k))
	}
}

// Outcome is the result of RequestSwap.
type Outcome struct {
	Kind OutcomeKind

	// Err is ErrInvalidPosition or ErrNotAdjacent (wrapped) when rejected.
	Err error

	// Board is the board before the request. For rejected and reverted
	// outcomes it is also the board to continue from.
	Board Board

	// Swapped is the board with the swap applied, for animating the attempt.
	// Empty when rejected.
	Swapped Board

	// Settlement produces the settle steps of an accepted swap.
	Settlement Settlement
}

// SettleStep is one clear, gravity and refill transition.
type SettleStep struct {
	Iteration      int        // 1-based
	Board          Board      // board after refill
	Cleared        []Pos      // removed cells, row-major
	Matches        []Match    // matches that triggered the clear
	Activated      []Activation
	SpecialCreated *Placement // promoted tile, not part of Cleared
	ScoreDelta     int
	Combo          int // multiplier applied to this step
	Score          int // running total within the settlement
}

// Waves groups the cleared cells by row, top to bottom, for presentations
// that sweep large clears.
func (s SettleStep) Waves() [][]Pos {
	var waves [][]Pos
	for _, p := range s.Cleared {
		if n := len(waves); n > 0 && waves[n-1][0].Row == p.Row {
			waves[n-1] = append(waves[n-1], p)
			continue
		}
		waves = append(waves, []Pos{p})
	}
	return waves
}

// Settlement is the resolution of an accepted swap. It is a value: every
// call to Steps or Stepper replays the same sequence from the swapped board.
type Settlement struct {
	start Board
	from  Pos
	to    Pos
	first evaluation
}

// From returns the swap origin.
func (s Settlement) From() Pos { return s.from }

// To returns the swap destination.
func (s Settlement) To() Pos { return s.to }

// Start returns the board right after the swap.
func (s Settlement) Start() Board { return s.start }

// Stepper returns a fresh pull cursor over the settle steps.
func (s Settlement) Stepper() *Stepper {
	if s.start.rules == nil || s.first.empty() {
		return &Stepper{phase: phaseIdle, board: s.start}
	}
	return &Stepper{
		phase:   phaseClearing,
		board:   s.start,
		pending: s.first,
		combo:   1,
	}
}

// Steps returns the settle steps as a lazy sequence.
func (s Settlement) Steps() iter.Seq[SettleStep] {
	return func(yield func(SettleStep) bool) {
		st := s.Stepper()
		for {
			step, ok := st.Next()
			if !ok || !yield(step) {
				return
			}
		}
	}
}

// All drains the sequence.
func (s Settlement) All() []SettleStep {
	var out []SettleStep
	for step := range s.Steps() {
		out = append(out, step)
	}
	return out
}

// Final returns the settled board and the total score of the settlement.
func (s Settlement) Final() (Board, int) {
	board, score := s.start, 0
	for step := range s.Steps() {
		board, score = step.Board, step.Score
	}
	return board, score
}
