package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/strike5/internal/registry"
	"github.com/vovakirdan/strike5/internal/storage"
)

// scoreboardPane selects what the table lists for the current variant.
type scoreboardPane int

const (
	paneScores scoreboardPane = iota
	paneSimRuns
)

const (
	scoreboardScores = 50
	scoreboardRuns   = 20
	scoreboardChrome = 10 // Title, tabs, stats, table border and help
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = boardTabStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
)

type scoreboardKeys struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Pane key.Binding
	Back key.Binding
	Quit key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Pane, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Next, k.Prev}, {k.Pane, k.Back, k.Quit}}
}

func newScoreboardKeys() scoreboardKeys {
	return scoreboardKeys{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "variant")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev variant")),
		Pane: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "scores/sim runs")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows recorded games and simulation runs per variant.
type ScoreboardModel struct {
	variants []registry.GameInfo
	current  int
	pane     scoreboardPane
	store    *storage.Store

	scores []storage.ScoreEntry
	runs   []storage.SimRun
	stats  *storage.GameStats

	table     table.Model
	help      help.Model
	keys      scoreboardKeys
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard. store may be nil.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		variants: registry.List(),
		store:    store,
		help:     help.New(),
		keys:     newScoreboardKeys(),
		width:    width,
		height:   height,
	}
	m.reload()
	return m
}

// variantID returns the id of the selected variant, or "" when none exist.
func (m ScoreboardModel) variantID() string {
	if len(m.variants) == 0 {
		return ""
	}
	return m.variants[m.current].ID
}

// reload fetches the selected variant's records and rebuilds the table.
func (m *ScoreboardModel) reload() {
	m.scores, m.runs, m.stats = nil, nil, nil
	id := m.variantID()
	if m.store != nil && id != "" {
		if scores, err := m.store.TopScores(id, scoreboardScores); err == nil {
			m.scores = scores
		}
		if runs, err := m.store.RecentSimRuns(id, scoreboardRuns); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.GetGameStats(id); err == nil {
			m.stats = stats
		}
	}
	m.rebuildTable()
}

func (m *ScoreboardModel) rebuildTable() {
	var (
		columns []table.Column
		rows    []table.Row
	)
	if m.pane == paneSimRuns {
		columns = []table.Column{
			{Title: "Date", Width: 12},
			{Title: "Games", Width: 6},
			{Title: "Mean", Width: 8},
			{Title: "Best", Width: 6},
			{Title: "Clear", Width: 7},
			{Title: "No path", Width: 8},
		}
		rows = simRunRows(m.runs)
	} else {
		columns = []table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 7},
			{Title: "Moves", Width: 7},
			{Title: "Pts/move", Width: 9},
			{Title: "Date", Width: 12},
		}
		rows = scoreRows(m.scores)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-scoreboardChrome)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(s)
	m.table = t
}

func scoreRows(entries []storage.ScoreEntry) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(e.Score),
			strconv.Itoa(e.Moves),
			pointsPerMove(float64(e.Score), float64(e.Moves)),
			e.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

func simRunRows(runs []storage.SimRun) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			r.CreatedAt.Format("Jan 02 15:04"),
			strconv.Itoa(r.Games),
			fmt.Sprintf("%.2f", r.MeanScore),
			strconv.Itoa(r.BestScore),
			percent(r.ClearRate),
			percent(r.NoPathRate),
		}
	}
	return rows
}

// pointsPerMove formats score/moves, or "-" before the first move.
func pointsPerMove(score, moves float64) string {
	if moves <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f", score/moves)
}

func percent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}

// statsLine summarizes every recorded game of the variant.
func statsLine(s *storage.GameStats) string {
	if s == nil || s.GamesCount == 0 {
		return "no games recorded"
	}
	return fmt.Sprintf("%d games  best %d  avg %.1f in %.1f moves  %s pts/move",
		s.GamesCount, s.HighScore, s.AvgScore, s.AvgMoves, pointsPerMove(s.AvgScore, s.AvgMoves))
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
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.cycle(-1)
			return m, nil
		case key.Matches(msg, m.keys.Pane):
			m.pane = 1 - m.pane
			m.rebuildTable()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.rebuildTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) cycle(delta int) {
	n := len(m.variants)
	if n == 0 {
		return
	}
	m.current = (m.current + delta + n) % n
	m.reload()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	title := "STRIKE 5 SCORES"
	if m.pane == paneSimRuns {
		title = "STRIKE 5 SIM RUNS"
	}
	b.WriteString(centerText(boardTitleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.variants))
	for i, v := range m.variants {
		if i == m.current {
			tabs[i] = boardActiveTab.Render(v.Title)
		} else {
			tabs[i] = boardTabStyle.Render(v.Title)
		}
	}
	b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render(statsLine(m.stats)), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(boardFrameStyle.Render(m.tableView()), m.width))
	b.WriteString("\n")
	b.WriteString(menuDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) tableView() string {
	switch {
	case m.pane == paneScores && len(m.scores) == 0:
		return boardEmptyStyle.Render("No games recorded yet.\nLine up five to set a score!")
	case m.pane == paneSimRuns && len(m.runs) == 0:
		return boardEmptyStyle.Render("No simulation runs yet.\nTry: strike5 sim --save")
	}
	return m.table.View()
}

// IsGoingBack reports whether the player backed out to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the player quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if the player wants to go back to the menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
