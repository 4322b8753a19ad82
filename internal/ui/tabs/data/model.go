// Package data provides the raw sales data tab.
package data

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/app"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/models"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/ui/components"
)

// keyMap defines the key bindings specific to the data tab.
type keyMap struct {
	Sort key.Binding
	Up   key.Binding
	Down key.Binding
}

// defaultKeyMap returns the default key bindings for the data tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort by date"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
	}
}

// Model represents the raw data tab state.
type Model struct {
	state   *app.State
	table   table.Model
	spinner components.LoadingSpinner
	keys    keyMap
	width   int
	height  int

	// byDate shows records in date order instead of generation order.
	byDate bool
	shown  *models.Snapshot
}

// New creates a new data model.
func New(state *app.State) *Model {
	return &Model{
		state:   state,
		table:   components.NewTable(models.SalesColumns, nil, 10),
		spinner: components.NewSpinner("Generating data..."),
		keys:    defaultKeyMap(),
	}
}

// Init initializes the data tab.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// Update handles messages for the data tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	m.sync()

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Sort) {
			m.byDate = !m.byDate
			m.refreshRows()
			return m, nil
		}
		m.table, cmd = m.table.Update(msg)
	default:
		m.spinner, cmd = m.spinner.Update(msg)
	}

	return m, cmd
}

// sync reloads the table when a new snapshot has been stored.
func (m *Model) sync() {
	snap := m.state.GetSnapshot()
	if snap == m.shown {
		return
	}
	m.shown = snap
	m.refreshRows()
}

func (m *Model) refreshRows() {
	records := m.records()
	components.SetTableRows(&m.table, models.SalesColumns, components.SalesRows(records))
}

// records returns the snapshot's records in the current display order.
func (m *Model) records() []models.SalesRecord {
	if m.shown == nil {
		return nil
	}
	if !m.byDate {
		return m.shown.Records
	}
	sorted := slices.Clone(m.shown.Records)
	slices.SortStableFunc(sorted, func(a, b models.SalesRecord) int {
		return a.Date.Compare(b.Date)
	})
	return sorted
}

// SetSize sets the available size for the data tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(height-12, 3))
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Sort}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down},
		{m.keys.Sort},
	}
}
