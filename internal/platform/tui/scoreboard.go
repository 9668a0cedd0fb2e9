package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// Results board layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show page list sidebar
	sidebarWidth       = 22  // Width of page list sidebar
	maxRows            = 100 // Max rows to load per page
)

// pageKind selects which query fills a results page.
type pageKind int

const (
	pageOverview pageKind = iota // One row per level
	pageScores                   // Campaign scores
	pageLevel                    // Recent attempts at one level
)

type resultsPage struct {
	kind    pageKind
	levelID string
	title   string
}

// ResultsKeyMap defines the key bindings for the results board.
type ResultsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ResultsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextPage, k.PrevPage, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ResultsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPage, k.PrevPage},
		{k.Back, k.Quit},
	}
}

// DefaultResultsKeyMap returns default key bindings.
func DefaultResultsKeyMap() ResultsKeyMap {
	return ResultsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev page"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev page"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ResultsModel is the Bubble Tea model for the results board.
type ResultsModel struct {
	pages       []resultsPage
	pageCursor  int
	store       *storage.Store
	rows        []table.Row
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ResultsKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool // Whether to show page list sidebar
}

// NewResultsModel creates a results board for the given levels.
func NewResultsModel(store *storage.Store, lvls []levels.Level, width, height int) ResultsModel {
	pages := []resultsPage{
		{kind: pageOverview, title: "All levels"},
		{kind: pageScores, title: "Campaign scores"},
	}
	for _, l := range lvls {
		pages = append(pages, resultsPage{kind: pageLevel, levelID: l.ID, title: l.Name})
	}

	h := help.New()
	h.ShowAll = false

	m := ResultsModel{
		pages:       pages,
		store:       store,
		keys:        DefaultResultsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.load()
	return m
}

// columns returns the table columns for the current page.
func (m *ResultsModel) columns() []table.Column {
	switch m.pages[m.pageCursor].kind {
	case pageOverview:
		return []table.Column{
			{Title: "Level", Width: 16},
			{Title: "Tries", Width: 6},
			{Title: "Wins", Width: 5},
			{Title: "Best", Width: 8},
			{Title: "Deaths", Width: 7},
			{Title: "Last played", Width: 13},
		}
	case pageScores:
		return []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Coins", Width: 8},
			{Title: "Date", Width: 18},
		}
	default:
		return []table.Column{
			{Title: "Result", Width: 7},
			{Title: "Time", Width: 8},
			{Title: "Deaths", Width: 7},
			{Title: "Run", Width: 9},
			{Title: "Date", Width: 13},
		}
	}
}

// createTable creates a new table for the current page.
func (m *ResultsModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
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

// load queries the store for the current page and rebuilds the table.
func (m *ResultsModel) load() {
	m.rows, m.loadErr = m.queryRows()
	m.table = m.createTable()
	m.table.SetRows(m.rows)
	m.table.GotoTop()
}

func (m *ResultsModel) queryRows() ([]table.Row, error) {
	if m.store == nil {
		return nil, nil
	}

	page := m.pages[m.pageCursor]
	switch page.kind {
	case pageOverview:
		stats, err := m.store.LevelStatsAll()
		if err != nil {
			return nil, err
		}
		return overviewRows(stats, m.pages), nil

	case pageScores:
		scores, err := m.store.TopScores(platformer.CampaignID, maxRows)
		if err != nil {
			return nil, err
		}
		rows := make([]table.Row, len(scores))
		for i, s := range scores {
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				fmt.Sprintf("%d", s.Score),
				s.CreatedAt.Format("Jan 02 15:04"),
			}
		}
		return rows, nil

	default:
		results, err := m.store.RecentResults(page.levelID, maxRows)
		if err != nil {
			return nil, err
		}
		rows := make([]table.Row, len(results))
		for i, r := range results {
			rows[i] = table.Row{
				r.Status,
				fmt.Sprintf("%.2fs", r.Elapsed),
				fmt.Sprintf("%d", r.Deaths),
				shortRunID(r.RunID),
				r.CreatedAt.Format("Jan 02 15:04"),
			}
		}
		return rows, nil
	}
}

// overviewRows formats per-level stats, naming levels after the page titles.
func overviewRows(stats []storage.LevelStats, pages []resultsPage) []table.Row {
	names := map[string]string{}
	for _, p := range pages {
		if p.kind == pageLevel {
			names[p.levelID] = p.title
		}
	}

	rows := make([]table.Row, len(stats))
	for i, s := range stats {
		name, ok := names[s.LevelID]
		if !ok {
			name = s.LevelID
		}
		best, deaths := "-", "-"
		if s.Wins > 0 {
			best = fmt.Sprintf("%.2fs", s.BestTime)
			deaths = fmt.Sprintf("%d", s.FewestDeaths)
		}
		rows[i] = table.Row{
			name,
			fmt.Sprintf("%d", s.Attempts),
			fmt.Sprintf("%d", s.Wins),
			best,
			deaths,
			s.LastPlayed.Format("Jan 02 15:04"),
		}
	}
	return rows
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Init initializes the results model.
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the results board.
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextPage), key.Matches(msg, m.keys.Right):
			m.pageCursor = (m.pageCursor + 1) % len(m.pages)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevPage), key.Matches(msg, m.keys.Left):
			m.pageCursor--
			if m.pageCursor < 0 {
				m.pageCursor = len(m.pages) - 1
			}
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.table.SetRows(m.rows)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the results board.
func (m ResultsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("RESULTS - %s", m.pages[m.pageCursor].title)
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the board with a sidebar for page selection.
func (m ResultsModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Pages\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, p := range m.pages {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.pageCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + truncate(p.title, sidebarWidth-6)))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		tableStyle.Render(m.renderTableContent()),
	)
}

// renderNarrowLayout renders the current page name above the table.
func (m ResultsModel) renderNarrowLayout() string {
	var b strings.Builder

	tabLine := fmt.Sprintf("< %s (%d/%d) >", m.pages[m.pageCursor].title, m.pageCursor+1, len(m.pages))
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or an explanatory message.
func (m ResultsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Results database unavailable.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load results:\n" + m.loadErr.Error())
	case len(m.rows) == 0:
		return emptyStyle.Render("No results recorded yet.\nFinish a level to see it here!")
	}

	return m.table.View()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ResultsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ResultsModel) IsQuitting() bool {
	return m.quitting
}

// RunResults runs the results board.
// Returns true if user wants to go back to menu, false if quitting.
func RunResults(store *storage.Store, lvls []levels.Level, width, height int) (goBack bool, err error) {
	model := NewResultsModel(store, lvls, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ResultsModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
