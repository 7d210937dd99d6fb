package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// Recorder saves finished games and trims each variant's table to the best
// Keep results. A nil Recorder or Store discards results.
type Recorder struct {
	Store  *storage.Store
	Keep   int
	Logger *log.Logger
}

// Record stores one result.
func (r *Recorder) Record(res storage.Result) {
	if r == nil || r.Store == nil {
		return
	}
	if _, err := r.Store.SaveResult(res); err != nil {
		r.logError("could not save score", err, res.GameID)
		return
	}
	if r.Keep > 0 {
		if _, err := r.Store.PruneScores(res.GameID, r.Keep); err != nil {
			r.logError("could not prune scores", err, res.GameID)
		}
	}
}

// store returns the backing store, nil when scores are not kept.
func (r *Recorder) store() *storage.Store {
	if r == nil {
		return nil
	}
	return r.Store
}

func (r *Recorder) logError(msg string, err error, gameID string) {
	if r.Logger != nil {
		r.Logger.Warn(msg, "game", gameID, "error", err)
	}
}

// seeded is implemented by games that can report the seed of their board.
type seeded interface {
	Seed() int64
}

// GameModel is the Bubble Tea model running one game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	recorder   *Recorder
	config     core.RuntimeConfig
	player     string
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	standalone bool // quit instead of returning to a menu
	quitting   bool
	backToMenu bool
	scoreSaved bool
}

// NewGameModel creates a game model for a menu-driven session.
func NewGameModel(game registry.Game, rec *Recorder, cfg core.RuntimeConfig, player string) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		recorder:   rec,
		config:     cfg,
		player:     player,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The board keeps going; only the buffer follows the terminal.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back leaves the game only when nothing is in play.
	if m.keyMapper.MapKeyToMenuAction(msg) == MenuActionBack && (m.gameState.GameOver || m.gameState.Paused) {
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		if m.gameState.Score > 0 {
			m.recorder.Record(m.result())
		}
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// result describes the finished game for storage.
func (m GameModel) result() storage.Result {
	res := storage.Result{
		GameID:    m.game.ID(),
		Player:    m.player,
		Score:     m.gameState.Score,
		Moves:     m.gameState.Moves,
		BestCombo: m.gameState.BestCombo,
		Seed:      m.config.Seed,
	}
	if s, ok := m.game.(seeded); ok {
		res.Seed = s.Seed()
	}
	return res
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".match3", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last reported game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Run plays one game in the local terminal until the player quits.
func Run(game registry.Game, rec *Recorder, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, rec, cfg, "")
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
