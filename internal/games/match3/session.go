package match3

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-match3/internal/config"
	m3 "github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

var (
	// ErrBusy is returned when a swap arrives while a cascade is resolving.
	ErrBusy = errors.New("match3: cascade in progress")
	// ErrGameOver is returned when a swap arrives after the game ended.
	ErrGameOver = errors.New("match3: game over")
)

// Session is one player's game: the current board, the running score and
// the cascade being resolved. It is safe for concurrent use; front-ends call
// Swap from input handlers and Advance from their clock.
type Session struct {
	mu sync.Mutex

	board     m3.Board
	stepper   *m3.Stepper
	next      *m3.SettleStep // pulled one ahead so Busy turns false with the last step
	seed      int64
	moveLimit int // 0 = endless

	score     int
	moves     int
	bestCombo int
	lastStep  *m3.SettleStep
}

// NewSession builds the engine config from cfg and deals a board.
func NewSession(cfg config.Match3Config, seed int64) (*Session, error) {
	ec, err := cfg.EngineConfig(seed)
	if err != nil {
		return nil, err
	}
	b, err := m3.InitBoard(ec)
	if err != nil {
		return nil, fmt.Errorf("match3: new board: %w", err)
	}
	s := NewSessionFromBoard(b, cfg.Game.Moves)
	s.seed = seed
	return s, nil
}

// NewSessionFromBoard starts a session on an existing board.
func NewSessionFromBoard(b m3.Board, moveLimit int) *Session {
	return &Session{board: b, moveLimit: max(moveLimit, 0)}
}

// Swap asks the engine to swap two cells. Rejected swaps return the outcome
// together with its error; reverted swaps cost nothing. Once the game is over
// every well-formed swap fails with ErrGameOver. An accepted swap
// spends a move and leaves the session busy until Advance has pulled every
// settle step.
func (s *Session) Swap(from, to m3.Pos) (m3.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.next != nil {
		return m3.Outcome{}, ErrBusy
	}

	// Malformed requests are reported as such even once the game is over.
	out := m3.RequestSwap(s.board, from, to)
	if out.Kind == m3.OutcomeRejected {
		return out, out.Err
	}
	if s.gameOverLocked() {
		return m3.Outcome{}, ErrGameOver
	}

	switch out.Kind {
	case m3.OutcomeSettled:
		s.moves++
		s.board = out.Swapped
		s.stepper = out.Settlement.Stepper()
		s.lastStep = nil
		s.pull()
	}
	return out, nil
}

// Advance pulls the next settle step of the running cascade. It returns
// false when the session is idle.
func (s *Session) Advance() (m3.SettleStep, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advanceLocked()
}

func (s *Session) advanceLocked() (m3.SettleStep, bool) {
	if s.next == nil {
		return m3.SettleStep{}, false
	}
	step := *s.next
	s.board = step.Board
	s.score += step.ScoreDelta
	s.bestCombo = max(s.bestCombo, step.Combo)
	s.lastStep = &step
	s.pull()
	return step, true
}

// pull fetches the step after the current one.
func (s *Session) pull() {
	if s.stepper == nil {
		s.next = nil
		return
	}
	if step, ok := s.stepper.Next(); ok {
		s.next = &step
		return
	}
	s.next, s.stepper = nil, nil
}

// Drain resolves the running cascade at once.
func (s *Session) Drain() []m3.SettleStep {
	s.mu.Lock()
	defer s.mu.Unlock()

	var steps []m3.SettleStep
	for {
		step, ok := s.advanceLocked()
		if !ok {
			return steps
		}
		steps = append(steps, step)
	}
}

// Board returns the board as currently shown: the swapped board right after
// an accepted swap, then each settled board in turn.
func (s *Session) Board() m3.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board
}

// Score returns the total score.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Moves returns the number of accepted swaps.
func (s *Session) Moves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moves
}

// MoveLimit returns the move budget, 0 when endless.
func (s *Session) MoveLimit() int {
	return s.moveLimit
}

// MovesLeft returns the remaining budget, or -1 when endless.
func (s *Session) MovesLeft() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.moveLimit == 0 {
		return -1
	}
	return max(s.moveLimit-s.moves, 0)
}

// BestCombo returns the highest multiplier reached.
func (s *Session) BestCombo() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bestCombo
}

// Seed returns the seed the board was dealt from.
func (s *Session) Seed() int64 {
	return s.seed
}

// LastStep returns the most recently pulled settle step.
func (s *Session) LastStep() (m3.SettleStep, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastStep == nil {
		return m3.SettleStep{}, false
	}
	return *s.lastStep, true
}

// Busy reports whether a cascade is still resolving.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next != nil
}

// Hint returns a swap that would be accepted. It reports false while busy
// or when the board has no valid move.
func (s *Session) Hint() (m3.Move, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next != nil {
		return m3.Move{}, false
	}
	return m3.FindHint(s.board)
}

// GameOver reports whether the budget is spent or no swap would be
// accepted. A session is never over while busy.
func (s *Session) GameOver() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameOverLocked()
}

func (s *Session) gameOverLocked() bool {
	if s.next != nil {
		return false
	}
	if s.moveLimit > 0 && s.moves >= s.moveLimit {
		return true
	}
	return !m3.HasValidMove(s.board)
}
