package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

const (
	statsPanelWidth  = 26
	minWidthForStats = 90
	scoreboardRows   = 50
)

// scoreboardKeys are the bindings shown in the scoreboard help bar.
type scoreboardKeys struct {
	Up   key.Binding
	Down key.Binding
	Prev key.Binding
	Next key.Binding
	Back key.Binding
	Quit key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Prev, k.Next, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newScoreboardKeys() scoreboardKeys {
	return scoreboardKeys{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Prev: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev variant")),
		Next: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/tab", "next variant")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tabStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	panelStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	emptyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
)

// ScoreboardModel shows the stored results of every variant, one variant at
// a time, with a stats panel on wide terminals.
type ScoreboardModel struct {
	variants []registry.GameInfo
	current  int
	store    *storage.Store
	scores   []storage.ScoreEntry
	stats    *storage.GameStats
	table    table.Model
	help     help.Model
	keys     scoreboardKeys
	width    int
	height   int
	quitting bool
	back     bool
}

// NewScoreboardModel creates a scoreboard. A nil store shows empty tables.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		variants: registry.List(),
		store:    store,
		help:     help.New(),
		keys:     newScoreboardKeys(),
		width:    width,
		height:   height,
	}
	m.table = m.newTable()
	m.load()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= minWidthForStats
}

// columns drops the player column on narrow terminals.
func (m ScoreboardModel) columns() []table.Column {
	cols := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Score", Width: 7},
		{Title: "Moves", Width: 5},
		{Title: "Combo", Width: 5},
	}
	if m.width >= 60 {
		cols = append(cols, table.Column{Title: "Player", Width: 12})
	}
	return append(cols, table.Column{Title: "Played", Width: 12})
}

func (m ScoreboardModel) newTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load reads the selected variant's results and refreshes the table.
func (m *ScoreboardModel) load() {
	m.scores, m.stats = nil, nil
	if m.store != nil && len(m.variants) > 0 {
		id := m.variants[m.current].ID
		if scores, err := m.store.TopScores(id, scoreboardRows); err == nil {
			m.scores = scores
		}
		m.stats, _ = m.store.GetGameStats(id)
	}
	m.fillTable()
}

func (m *ScoreboardModel) fillTable() {
	withPlayer := len(m.table.Columns()) == 6
	rows := make([]table.Row, 0, len(m.scores))
	for i, s := range m.scores {
		row := table.Row{
			fmt.Sprint(i + 1),
			fmt.Sprint(s.Score),
			fmt.Sprint(s.Moves),
			fmt.Sprintf("x%d", s.BestCombo),
		}
		if withPlayer {
			row = append(row, playerName(s.Player))
		}
		rows = append(rows, append(row, s.CreatedAt.Format("Jan 02 15:04")))
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func playerName(p string) string {
	if p == "" {
		return "local"
	}
	return p
}

// step moves the variant selection by delta, wrapping around.
func (m *ScoreboardModel) step(delta int) {
	if n := len(m.variants); n > 0 {
		m.current = (m.current + delta + n) % n
		m.load()
	}
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.fillTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerStyled(boardTitleStyle, "HIGH SCORES", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n\n")

	body := panelStyle.Render(m.tableView())
	if m.wide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", panelStyle.Width(statsPanelWidth).Render(m.statsView()))
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body))
	b.WriteString("\n")
	b.WriteString(menuDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// tabs lists the variants, or only the current one when they do not fit.
func (m ScoreboardModel) tabs() string {
	if len(m.variants) == 0 {
		return ""
	}
	parts := make([]string, len(m.variants))
	for i, v := range m.variants {
		if i == m.current {
			parts[i] = activeTabStyle.Render(v.Title)
		} else {
			parts[i] = tabStyle.Render(v.Title)
		}
	}
	line := strings.Join(parts, " ")
	if lipgloss.Width(line) > m.width-4 {
		return "‹ " + activeTabStyle.Render(m.variants[m.current].Title) + " ›"
	}
	return line
}

func (m ScoreboardModel) tableView() string {
	if len(m.scores) == 0 {
		return emptyStyle.Render("No scores yet.\nFinish a game to get on the board!")
	}
	return m.table.View()
}

// statsView summarizes the variant and the highlighted result.
func (m ScoreboardModel) statsView() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return menuDimStyle.Render("No games played")
	}

	lines := []string{
		boardTitleStyle.Render("Stats"),
		fmt.Sprintf("Games:  %d", m.stats.GamesCount),
		fmt.Sprintf("Best:   %d", m.stats.HighScore),
		fmt.Sprintf("Avg:    %.0f", m.stats.AvgScore),
		fmt.Sprintf("Combo:  x%d", m.stats.BestCombo),
	}
	if !m.stats.LastPlayed.IsZero() {
		lines = append(lines, "Last:   "+m.stats.LastPlayed.Format("Jan 02 15:04"))
	}

	if i := m.table.Cursor(); i >= 0 && i < len(m.scores) {
		// The seed replays the exact starting board.
		lines = append(lines, "",
			boardTitleStyle.Render("Selected"),
			fmt.Sprintf("Seed: %d", m.scores[i].Seed),
		)
	}
	return strings.Join(lines, "\n")
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard in its own program. goBack is false when
// the user quit.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
