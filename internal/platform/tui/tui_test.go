package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/storage"

	_ "github.com/vovakirdan/tui-match3/internal/games/match3"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key    string
		action core.Action
		quit   bool
	}{
		{"up", core.ActionUp, false},
		{"w", core.ActionUp, false},
		{"d", core.ActionRight, false},
		{"enter", core.ActionSelect, false},
		{"esc", core.ActionBack, false},
		{"h", core.ActionHint, false},
		{"p", core.ActionPause, false},
		{"r", core.ActionRestart, false},
		{"q", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
		{"x", core.ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			action, quit := km.MapKey(keyMsg(tt.key))
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.key, action, quit, tt.action, tt.quit)
			}
		})
	}

	var frame core.InputFrame
	km.MapKeyToFrame(keyMsg("a"), &frame)
	km.MapKeyToFrame(keyMsg("enter"), &frame)
	if !frame.Has(core.ActionLeft) || !frame.Has(core.ActionSelect) {
		t.Errorf("frame = %v, want left and select", frame.Actions())
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	cases := map[string]MenuAction{
		"k":     MenuActionUp,
		"j":     MenuActionDown,
		"enter": MenuActionSelect,
		"b":     MenuActionBack,
		"tab":   MenuActionScoreboard,
		"q":     MenuActionQuit,
		"z":     MenuActionNone,
	}
	for key, want := range cases {
		if got := km.MapKeyToMenuAction(keyMsg(key)); got != want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(20, 2)
	s.DrawTextColored(0, 0, "Score: 60", core.ColorWhite)
	s.DrawTextColored(0, 1, "Moves", core.ColorRed)

	out := RenderScreen(s)
	if !strings.Contains(out, "Score: 60") || !strings.Contains(out, "Moves") {
		t.Errorf("rendered output lost text: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("got %d line breaks, want 1", strings.Count(out, "\n"))
	}
}

func TestMenuSelectAndScoreboard(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30}
	m := NewMenuModel(nil, cfg)
	if len(m.items) == 0 {
		t.Fatal("menu has no variants")
	}

	next, _ := m.Update(keyMsg("down"))
	next, cmd := next.(MenuModel).Update(keyMsg("enter"))
	menu := next.(MenuModel)
	if menu.Selected() == nil || menu.Selected().GameID != m.items[1].GameID {
		t.Fatalf("Selected = %+v, want second item", menu.Selected())
	}
	if cmd == nil {
		t.Error("selecting should end the menu program")
	}

	next, _ = m.Update(keyMsg("tab"))
	if !next.(MenuModel).WantsScoreboard() {
		t.Error("tab did not open the scoreboard")
	}
}

type overGame struct {
	score int
	steps int
}

func (g *overGame) ID() string { return "stub" }
func (g *overGame) Title() string { return "Stub" }
func (g *overGame) Reset(core.RuntimeConfig) { g.steps = 0 }
func (g *overGame) Render(*core.Screen) {}
func (g *overGame) Seed() int64 { return 77 }
func (g *overGame) State() core.GameState {
	return core.GameState{Score: g.score, Moves: 3, BestCombo: 2, GameOver: true}
}
func (g *overGame) Step(core.InputFrame) core.StepResult {
	g.steps++
	return core.StepResult{State: g.State()}
}

func TestGameModelRecordsOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	rec := &Recorder{Store: store, Keep: 5}
	m := NewGameModel(&overGame{score: 180}, rec, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 30, Seed: 5}, "alice")

	var model tea.Model = m
	for range 3 {
		model, _ = model.Update(TickMsg{})
	}

	scores, err := store.TopScores("stub", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d results, want 1", len(scores))
	}
	got := scores[0]
	if got.Score != 180 || got.Player != "alice" || got.Seed != 77 || got.BestCombo != 2 {
		t.Errorf("saved %+v", got)
	}

	model, _ = model.Update(keyMsg("esc"))
	if !model.(GameModel).BackToMenu() {
		t.Error("back at game over should return to the menu")
	}
}

func TestRecorderNilSafe(t *testing.T) {
	var rec *Recorder
	rec.Record(storage.Result{GameID: "match3", Score: 10})
	(&Recorder{}).Record(storage.Result{GameID: "match3", Score: 10})
}

func TestSessionModelFlow(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30}
	var model tea.Model = NewSessionModel(nil, cfg, "bob")

	model, _ = model.Update(keyMsg("enter"))
	s := model.(SessionModel)
	if s.screen != screenGame {
		t.Fatalf("screen = %v, want game", s.screen)
	}
	if s.View() == "" {
		t.Error("game view is empty")
	}

	model, _ = model.Update(keyMsg("p"))
	model, _ = model.Update(TickMsg{})
	model, _ = model.Update(keyMsg("esc"))
	model, _ = model.Update(TickMsg{})
	if s := model.(SessionModel); s.screen != screenMenu {
		t.Fatalf("screen = %v after leaving a paused game, want menu", s.screen)
	}

	model, _ = model.Update(keyMsg("tab"))
	if s := model.(SessionModel); s.screen != screenScores {
		t.Fatalf("screen = %v, want scores", s.screen)
	}

	_, cmd := model.Update(keyMsg("q"))
	if cmd == nil {
		t.Error("quit from the scoreboard returned no command")
	}
}

func TestScoreboardCyclesVariants(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if _, err := store.SaveResult(storage.Result{GameID: "match3", Player: "carol", Score: 420, Moves: 30, BestCombo: 5, Seed: 1234}); err != nil {
		t.Fatal(err)
	}

	m := NewScoreboardModel(store, 120, 40)
	if m.variants[m.current].ID != "match3" || len(m.scores) != 1 {
		t.Fatalf("first variant %q has %d scores", m.variants[m.current].ID, len(m.scores))
	}
	if view := m.View(); !strings.Contains(view, "420") || !strings.Contains(view, "Seed: 1234") {
		t.Errorf("view misses the stored result:\n%s", view)
	}

	next, _ := m.Update(keyMsg("tab"))
	m = next.(ScoreboardModel)
	if m.current != 1 || len(m.scores) != 0 {
		t.Errorf("after tab: variant %d with %d scores", m.current, len(m.scores))
	}

	prev, _ := m.Update(keyMsg("left"))
	prev, _ = prev.(ScoreboardModel).Update(keyMsg("left"))
	if got := prev.(ScoreboardModel).current; got != len(m.variants)-1 {
		t.Errorf("left from the first variant = %d, want wrap to %d", got, len(m.variants)-1)
	}

	back, _ := m.Update(keyMsg("esc"))
	if !back.(ScoreboardModel).IsGoingBack() {
		t.Error("esc did not go back")
	}
}
