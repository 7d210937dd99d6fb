package core

import "fmt"

// phase is the resolution state machine's tag.
type phase uint8

const (
	phaseIdle phase = iota
	phaseSwapApplied
	phaseEvaluating
	phaseClearing
	phaseSettling
)

func (p phase) String() string {
	switch p {
	case phaseIdle:
		return "idle"
	case phaseSwapApplied:
		return "swap-applied"
	case phaseEvaluating:
		return "evaluating"
	case phaseClearing:
		return "clearing"
	case phaseSettling:
		return "settling"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// evaluation is what one Evaluating pass found.
type evaluation struct {
	matches   []Match
	triggers  []trigger
	placement *Placement
}

func (e evaluation) empty() bool {
	return len(e.matches) == 0 && len(e.triggers) == 0
}

// RequestSwap validates and applies a move, then decides whether it stands.
// Rejected and reverted requests leave b untouched; accepted requests return
// a Settlement whose steps resolve the board until it is stable.
func RequestSwap(b Board, from, to Pos) Outcome {
	for _, p := range []Pos{from, to} {
		if !b.InBounds(p) {
			return Outcome{
				Kind:  OutcomeRejected,
				Err:   fmt.Errorf("%w: %v", ErrInvalidPosition, p),
				Board: b,
			}
		}
	}
	if !b.IsAdjacent(from, to) {
		return Outcome{
			Kind:  OutcomeRejected,
			Err:   fmt.Errorf("%w: %v and %v", ErrNotAdjacent, from, to),
			Board: b,
		}
	}

	swapped, err := b.Swap(from, to)
	if err != nil {
		return Outcome{Kind: OutcomeRejected, Err: err, Board: b}
	}

	first := evaluateSwap(swapped, from, to)
	if first.empty() {
		return Outcome{Kind: OutcomeReverted, Board: b, Swapped: swapped}
	}
	return Outcome{
		Kind:    OutcomeSettled,
		Board:   b,
		Swapped: swapped,
		Settlement: Settlement{
			start: swapped,
			from:  from,
			to:    to,
			first: first,
		},
	}
}

// evaluateSwap is the first Evaluating pass. A special endpoint activates
// instead of the special-creation policy; plain matches still clear.
func evaluateSwap(b Board, from, to Pos) evaluation {
	ev := evaluation{matches: FindMatches(b)}
	moved, other := b.At(to), b.At(from)
	if moved.IsSpecial() || other.IsSpecial() {
		if moved.IsSpecial() {
			partner := other
			ev.triggers = append(ev.triggers, trigger{pos: to, partner: &partner})
		}
		if other.IsSpecial() {
			partner := moved
			ev.triggers = append(ev.triggers, trigger{pos: from, partner: &partner})
		}
		return ev
	}
	if len(ev.matches) > 0 {
		if pl, ok := PlanSpecial(b, ev.matches, from, to); ok {
			ev.placement = &pl
		}
	}
	return ev
}

// Stepper pulls settle steps one at a time. It is not safe for concurrent use.
type Stepper struct {
	phase     phase
	board     Board
	pending   evaluation
	combo     int
	score     int
	iteration int

	// Set by Clearing, consumed by Settling.
	work    Board
	cleared PosSet
	step    SettleStep
}

// Done reports whether the sequence is exhausted.
func (st *Stepper) Done() bool {
	return st.phase == phaseIdle
}

// Board returns the latest settled board.
func (st *Stepper) Board() Board {
	return st.board
}

// Next advances to the next settle step. It returns false once the board is
// stable.
func (st *Stepper) Next() (SettleStep, bool) {
	for {
		switch st.phase {
		case phaseEvaluating:
			if st.iteration >= st.board.rules.MaxCascades {
				st.phase = phaseIdle
				continue
			}
			ms := FindMatches(st.board)
			if len(ms) == 0 {
				st.phase = phaseIdle
				continue
			}
			st.pending = evaluation{matches: ms}
			st.phase = phaseClearing

		case phaseClearing:
			st.clear()
			st.phase = phaseSettling

		case phaseSettling:
			step := st.settle()
			st.phase = phaseEvaluating
			return step, true

		default:
			st.phase = phaseIdle
			return SettleStep{}, false
		}
	}
}

func (st *Stepper) clear() {
	ev := st.pending
	st.pending = evaluation{}
	st.iteration++
	st.combo = min(st.combo+1, st.board.rules.MaxCombo)

	work := st.board
	cleared := ClearSet(ev.matches)
	var created *Placement
	if ev.placement != nil {
		pl := *ev.placement
		work = work.promote(pl.Pos, pl.Special)
		delete(cleared, pl.Pos)
		created = &pl
	}
	activated := expandActivations(work, cleared, ev.triggers)
	if created != nil {
		delete(cleared, created.Pos)
	}

	st.work = work
	st.cleared = cleared
	st.step = SettleStep{
		Iteration:      st.iteration,
		Matches:        ev.matches,
		Activated:      activated,
		SpecialCreated: created,
		Combo:          st.combo,
	}
}

func (st *Stepper) settle() SettleStep {
	step := st.step
	step.Cleared = st.cleared.Sorted()
	step.ScoreDelta = len(step.Cleared) * st.board.rules.BasePoints * st.combo
	st.score += step.ScoreDelta
	step.Score = st.score

	st.board = Collapse(st.work, st.cleared)
	if st.iteration >= st.board.rules.MaxCascades && HasMatch(st.board) {
		// Out of cascades: the last step must still leave a stable board.
		st.board = repaint(st.board)
	}
	step.Board = st.board

	st.work = Board{}
	st.cleared = nil
	st.step = SettleStep{}
	return step
}
