// Package operations provides the team operations tab.
package operations

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/analytics"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/app"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/logger"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/models"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/ui/components"
)

const (
	// headerLines is the table header and its bottom border.
	headerLines = 2
	// tableReserve is the tab height taken by the title and the card frame.
	tableReserve = 12
)

// keyMap defines the key bindings specific to the operations tab.
type keyMap struct {
	Up   key.Binding
	Down key.Binding
}

// defaultKeyMap returns the default key bindings for the operations tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev member"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next member"),
		),
	}
}

// Model represents the operations tab state.
type Model struct {
	state   *app.State
	table   table.Model
	spinner components.LoadingSpinner
	keys    keyMap
	width   int
	height  int

	shown *models.Snapshot

	// rendered caches the markdown block for the snapshot and width it was built for.
	rendered      string
	renderedFor   *models.Snapshot
	renderedWidth int
}

// New creates a new operations model.
func New(state *app.State) *Model {
	return &Model{
		state:   state,
		table:   components.NewTable(models.OperationsColumns, nil, 5),
		spinner: components.NewSpinner("Generating data..."),
		keys:    defaultKeyMap(),
	}
}

// Init initializes the operations tab.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// Update handles messages for the operations tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	m.sync()

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.table, cmd = m.table.Update(msg)
	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
	}

	return m, cmd
}

// sync reloads the team table when a new snapshot has been stored.
func (m *Model) sync() {
	snap := m.state.GetSnapshot()
	if snap == m.shown {
		return
	}
	m.shown = snap

	var rows []table.Row
	if snap != nil {
		rows = components.OperationsRows(snap.Team)
	}
	components.SetTableRows(&m.table, models.OperationsColumns, rows)
	m.fitTable()
}

// fitTable sizes the table to its rows, capped to the tab height once known.
func (m *Model) fitTable() {
	h := max(len(m.table.Rows()), 1) + headerLines
	if m.height > 0 {
		h = min(h, max(m.height-tableReserve, headerLines+1))
	}
	m.table.SetHeight(h)
}

// markdown returns the glamour rendering of the additional metrics, rebuilding
// it only when the snapshot or the wrap width changed.
func (m *Model) markdown(width int) string {
	if m.shown == m.renderedFor && width == m.renderedWidth && m.rendered != "" {
		return m.rendered
	}

	source := analytics.OperationsMarkdown(m.shown.Operations)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		logger.Warn("Markdown renderer unavailable", "error", err)
		return source
	}

	out, err := renderer.Render(source)
	if err != nil {
		logger.Warn("Failed to render operations metrics", "error", err)
		return source
	}

	m.rendered = out
	m.renderedFor = m.shown
	m.renderedWidth = width
	return out
}

// SetSize sets the available size for the operations tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.fitTable()
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Up, m.keys.Down}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{{m.keys.Up, m.keys.Down}}
}
