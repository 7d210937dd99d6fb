package match3

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/tui-match3/internal/core"
	m3 "github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

const (
	cellWidth = 2 // glyph plus the separator column
	hudHeight = 3
	tileGlyph = '●'
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.session == nil {
		g.drawOverlay(dst, dst.Width()/2, dst.Height()/2, "Cannot start game", g.errText())
		return
	}

	b := g.shownBoard()
	frame := boardFrame(b, dst.Width())
	if frame.W > dst.Width() || frame.Bottom()+2 > dst.Height() {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	dst.DrawBox(frame, core.ColorGray)
	g.renderBoard(dst, b, frame)
	dst.DrawTextCentered(frame.Bottom()+1, g.Controls())
	g.renderOverlays(dst, frame)
}

func (g *Game) errText() string {
	if g.err == nil {
		return ""
	}
	return g.err.Error()
}

// shownBoard is the board on screen: the attempted swap during a revert,
// the session board otherwise.
func (g *Game) shownBoard() m3.Board {
	if g.revertLen > 0 {
		return g.revert
	}
	return g.session.Board()
}

// rowOffset shifts hex rows so axial neighbors line up diagonally.
func rowOffset(b m3.Board, row int) int {
	if b.Shape() == m3.ShapeHex {
		return row
	}
	return 0
}

// boardFrame returns the bordered board rectangle centered horizontally.
func boardFrame(b m3.Board, screenW int) core.Rect {
	w := b.Cols()*cellWidth + 1 + rowOffset(b, b.Rows()-1) + 2
	h := b.Rows() + 2
	r := core.NewRect(0, hudHeight, w, h)
	return r.CenterIn(core.NewRect(0, hudHeight, screenW, h))
}

// cellX returns the screen column of the glyph at p.
func cellX(b m3.Board, frame core.Rect, p m3.Pos) int {
	return frame.X + 2 + p.Col*cellWidth + rowOffset(b, p.Row)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextCentered(0, g.Title())

	moves := fmt.Sprintf("Moves: %d", g.session.Moves())
	if limit := g.session.MoveLimit(); limit > 0 {
		moves = fmt.Sprintf("Moves: %d/%d", g.session.Moves(), limit)
	}
	dst.DrawTextCentered(1, fmt.Sprintf("Score: %d   %s", g.session.Score(), moves))

	if g.message != "" {
		c := core.ColorYellow
		if g.combo > 1 {
			c = core.ColorBrightYellow
		}
		dst.DrawTextColored((dst.Width()-len(g.message))/2, 2, g.message, c)
	}
}

func (g *Game) renderBoard(dst *core.Screen, b m3.Board, frame core.Rect) {
	rules := b.Rules()
	y0 := frame.Y + 1

	for p, t := range b.All() {
		x, y := cellX(b, frame, p), y0+p.Row
		cell := core.Cell{Rune: ' '}
		switch {
		case t.IsSpecial():
			cell = core.Cell{Rune: t.Special.Char(), Color: core.ColorBrightWhite, Bold: true}
		case !t.IsEmpty():
			cell = core.Cell{Rune: tileGlyph, Color: core.PaletteColor(rules.ColorName(t.Color), int(t.Color))}
		}
		if slices.Contains(g.flash, p) {
			cell.Bold = true
		}
		if p == g.cursor && !g.gameOver {
			cell.Reverse = true
		}
		dst.SetCell(x, y, cell)
	}

	if g.hintLeft > 0 {
		for _, p := range []m3.Pos{g.hint.From, g.hint.To} {
			x, y := cellX(b, frame, p), y0+p.Row
			dst.SetColored(x-1, y, '(', core.ColorYellow)
			dst.SetColored(x+1, y, ')', core.ColorYellow)
		}
	}
	if g.hasPick {
		x, y := cellX(b, frame, g.picked), y0+g.picked.Row
		dst.SetColored(x-1, y, '[', core.ColorBrightWhite)
		dst.SetColored(x+1, y, ']', core.ColorBrightWhite)
	}
}

func (g *Game) renderOverlays(dst *core.Screen, frame core.Rect) {
	cx, cy := frame.X+frame.W/2, frame.Y+frame.H/2

	switch {
	case g.paused:
		g.drawOverlay(dst, cx, cy, "PAUSED", "Press P to resume")
	case g.gameOver:
		reason := "No moves left"
		if limit := g.session.MoveLimit(); limit > 0 && g.session.Moves() >= limit {
			reason = "Out of moves"
		}
		g.drawOverlay(dst, cx, cy, "GAME OVER", reason,
			fmt.Sprintf("Score: %d", g.session.Score()), "Press R to restart")
	}
}

// drawOverlay draws a centered text box.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := core.NewRect(centerX-(maxLen+4)/2, centerY-(len(lines)+2)/2, maxLen+4, len(lines)+2)
	dst.FillRect(box)
	dst.DrawBox(box, core.ColorDefault)
	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows: Move | Enter: Pick/Swap | H: Hint | P: Pause | Q: Quit"
}
