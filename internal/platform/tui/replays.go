package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pong/internal/storage"
)

// Replay browser layout constants
const (
	shortIDLen    = 8
	browserChrome = 7 // Title, borders and help bar
)

// BrowserKeyMap defines the key bindings for the replay browser.
type BrowserKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Watch  key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BrowserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Watch, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k BrowserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Watch, k.Delete, k.Quit},
	}
}

// DefaultBrowserKeyMap returns default key bindings.
func DefaultBrowserKeyMap() BrowserKeyMap {
	return BrowserKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Watch: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "watch"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// BrowserModel is the Bubble Tea model for the replay list.
type BrowserModel struct {
	store    *storage.Store
	limit    int
	replays  []storage.ReplayRecord
	table    table.Model
	help     help.Model
	keys     BrowserKeyMap
	width    int
	height   int
	selected string // ID chosen for watching
	err      error  // last storage error, shown in place of the table
	quitting bool
}

// NewBrowserModel creates a replay browser listing up to limit replays.
func NewBrowserModel(store *storage.Store, limit, width, height int) BrowserModel {
	h := help.New()
	h.ShowAll = false

	m := BrowserModel{
		store:  store,
		limit:  limit,
		keys:   DefaultBrowserKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadReplays()
	return m
}

// createTable creates a new table sized to the terminal.
func (m *BrowserModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: shortIDLen},
		{Title: "Score", Width: 7},
		{Title: "Ticks", Width: 8},
		{Title: "Result", Width: 9},
		{Title: "Recorded", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-browserChrome, 3)),
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

// loadReplays refreshes the list from storage.
func (m *BrowserModel) loadReplays() {
	m.err = nil
	if m.store == nil {
		m.replays = nil
		m.updateTableRows()
		return
	}

	replays, err := m.store.RecentReplays(m.limit)
	if err != nil {
		m.err = err
		m.replays = nil
	} else {
		m.replays = replays
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded replays.
func (m *BrowserModel) updateTableRows() {
	rows := make([]table.Row, len(m.replays))
	for i, r := range m.replays {
		rows[i] = ReplayRow(r)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// ReplayRow formats a replay as a table row.
func ReplayRow(r storage.ReplayRecord) table.Row {
	result := "quit"
	if r.GameOver {
		result = "game over"
	}
	return table.Row{
		ShortID(r.ID),
		fmt.Sprintf("%d", r.FinalScore),
		fmt.Sprintf("%d", r.FinalTick),
		result,
		r.CreatedAt.Format("Jan 02 15:04"),
	}
}

// ShortID returns the display prefix of a replay ID.
func ShortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

// Init initializes the browser model.
func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Watch):
			if r, ok := m.current(); ok {
				m.selected = r.ID
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if r, ok := m.current(); ok && m.store != nil {
				if err := m.store.DeleteReplay(r.ID); err != nil {
					m.err = err
					return m, nil
				}
				m.loadReplays()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// current returns the replay under the cursor.
func (m BrowserModel) current() (storage.ReplayRecord, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.replays) {
		return storage.ReplayRecord{}, false
	}
	return m.replays[i], true
}

// View renders the browser.
func (m BrowserModel) View() string {
	if m.quitting || m.selected != "" {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText(fmt.Sprintf("REPLAYS (%d)", len(m.replays)), m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table, an error, or an empty message.
func (m BrowserModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.err != nil {
		return emptyStyle.Foreground(lipgloss.Color("1")).Render(m.err.Error())
	}
	if len(m.replays) == 0 {
		return emptyStyle.Render("No replays recorded yet.\nRun `pong play --record` to save one!")
	}
	return m.table.View()
}

// Selected returns the ID chosen for watching, or "".
func (m BrowserModel) Selected() string {
	return m.selected
}

// centerText pads s so that it appears centred in width columns.
func centerText(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", (width-w)/2) + s
}

// RunReplayBrowser runs the replay browser.
// Returns the ID of the replay to watch, or "" if the user quit.
func RunReplayBrowser(store *storage.Store, limit, width, height int) (string, error) {
	model := NewBrowserModel(store, limit, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := finalModel.(BrowserModel)
	if !ok {
		return "", nil
	}
	return m.Selected(), nil
}
