// Package match3 adapts the match-3 engine to the game platform: a
// thread-safe Session for any front-end and a tick-driven Game with a
// cursor for the terminal.
package match3

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	m3 "github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// hintTicks is how long a requested hint stays highlighted.
const hintTicks = 60

// Game implements registry.Game for one variant.
type Game struct {
	variant Variant
	cfg     config.Match3Config
	session *Session
	err     error // set when the variant config could not deal a board
	tick    uint64

	cursor  m3.Pos
	picked  m3.Pos
	hasPick bool

	hint      m3.Move
	hintLeft  int
	stepLeft  int      // ticks until the next settle step is pulled
	flash     []m3.Pos // cells refilled by the step on screen
	combo     int      // multiplier of the step on screen
	revert    m3.Board // swapped board shown while a reverted swap plays back
	revertLen int
	message   string

	paused   bool
	gameOver bool
}

// New creates a game for a registered variant ID. Unknown IDs fall back to
// the classic variant.
func New(id string) *Game {
	v, ok := LookupVariant(id)
	if !ok {
		v = variants[0]
	}
	return &Game{variant: v}
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.variant.Info.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Info.Title
}

// Session exposes the underlying session.
func (g *Game) Session() *Session {
	return g.session
}

// Seed reports the seed the current board was dealt from.
func (g *Game) Seed() int64 {
	if g.session == nil {
		return 0
	}
	return g.session.Seed()
}

// Reset deals a new board.
func (g *Game) Reset(rc core.RuntimeConfig) {
	*g = Game{variant: g.variant}

	g.cfg, g.err = VariantConfig(g.ID())
	if g.err != nil {
		return
	}
	g.session, g.err = NewSession(g.cfg, rc.Seed)
	if g.err != nil {
		return
	}
	b := g.session.Board()
	g.cursor = m3.P(b.Rows()/2, b.Cols()/2)
	g.gameOver = g.session.GameOver()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.session == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.hintLeft > 0 {
		g.hintLeft--
	}

	g.moveCursor(in)

	switch {
	case g.revertLen > 0:
		g.revertLen--
	case g.session.Busy() || g.stepLeft > 0:
		g.advance()
	case g.gameOver:
	default:
		g.handleSelection(in)
	}

	if !g.session.Busy() && g.revertLen == 0 && g.stepLeft == 0 {
		g.flash = nil
		g.combo = 0
		g.gameOver = g.session.GameOver()
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) moveCursor(in core.InputFrame) {
	b := g.session.Board()
	for _, a := range []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight} {
		if !in.Has(a) {
			continue
		}
		dr, dc := a.Delta()
		g.cursor = m3.P(
			core.Clamp(g.cursor.Row+dr, 0, b.Rows()-1),
			core.Clamp(g.cursor.Col+dc, 0, b.Cols()-1),
		)
	}
}

// advance paces the cascade: one settle step every StepTicks ticks.
func (g *Game) advance() {
	if g.stepLeft > 0 {
		g.stepLeft--
		return
	}
	step, ok := g.session.Advance()
	if !ok {
		return
	}
	g.flash = step.Cleared
	g.combo = step.Combo
	g.stepLeft = g.cfg.Game.StepTicks
	if step.SpecialCreated != nil {
		g.message = fmt.Sprintf("%s created!", step.SpecialCreated.Special)
	} else if step.Combo > 1 {
		g.message = fmt.Sprintf("Combo x%d", step.Combo)
	}
}

func (g *Game) handleSelection(in core.InputFrame) {
	if in.Has(core.ActionBack) {
		g.hasPick = false
	}
	if in.Has(core.ActionHint) {
		if mv, ok := g.session.Hint(); ok {
			g.hint, g.hintLeft = mv, hintTicks
			g.cursor = mv.From
		}
	}
	if !in.Has(core.ActionSelect) {
		return
	}

	b := g.session.Board()
	switch {
	case !g.hasPick:
		g.picked, g.hasPick = g.cursor, true
	case g.picked == g.cursor:
		g.hasPick = false
	case b.IsAdjacent(g.picked, g.cursor):
		g.trySwap(g.picked, g.cursor)
		g.hasPick = false
	default:
		g.picked = g.cursor
	}
}

func (g *Game) trySwap(from, to m3.Pos) {
	out, err := g.session.Swap(from, to)
	switch {
	case errors.Is(err, ErrBusy), errors.Is(err, ErrGameOver):
		return
	case err != nil:
		g.message = "Invalid swap"
		return
	}

	g.hintLeft = 0
	switch out.Kind {
	case m3.OutcomeReverted:
		g.revert = out.Swapped
		g.revertLen = g.cfg.Game.RevertTicks
		g.message = "No match"
	case m3.OutcomeSettled:
		// Show the swapped tiles before the first clear.
		g.stepLeft = g.cfg.Game.StepTicks
		g.message = ""
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{GameOver: g.err != nil}
	}
	return core.GameState{
		Score:     g.session.Score(),
		Moves:     g.session.Moves(),
		BestCombo: g.session.BestCombo(),
		Busy:      g.session.Busy() || g.revertLen > 0,
		GameOver:  g.gameOver,
		Paused:    g.paused,
	}
}
