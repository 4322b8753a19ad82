// Package filter provides the date range filter tab.
package filter

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/app"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/mock"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/models"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/ui/components"
)

// formField represents which field is currently focused in the range form.
type formField int

const (
	fieldStart formField = iota
	fieldEnd
	fieldApply
	fieldReset
	fieldCount
)

// keyMap defines the key bindings specific to the filter tab.
type keyMap struct {
	Edit   key.Binding
	Apply  key.Binding
	Reset  key.Binding
	Escape key.Binding
	Next   key.Binding
	Prev   key.Binding
}

// defaultKeyMap returns the default key bindings for the filter tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Edit: key.NewBinding(
			key.WithKeys("/", "i"),
			key.WithHelp("/", "edit dates"),
		),
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Reset: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "full range"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
	}
}

// Model represents the filter tab state.
type Model struct {
	state        *app.State
	table        table.Model
	width        int
	height       int
	editing      bool
	focusedField formField
	startInput   textinput.Model
	endInput     textinput.Model
	spinner      components.LoadingSpinner
	keys         keyMap

	// shown is the filter currently mirrored in the table and inputs.
	shown  models.FilterResult
	synced bool
}

// New creates a new filter model.
func New(state *app.State) *Model {
	startInput := newDateInput(mock.DefaultStart.Format(models.DateLayout))
	endInput := newDateInput(mock.DefaultEnd.Format(models.DateLayout))

	return &Model{
		state:        state,
		table:        components.NewTable(models.SalesColumns, nil, 10),
		startInput:   startInput,
		endInput:     endInput,
		spinner:      components.NewSpinner("Generating data..."),
		keys:         defaultKeyMap(),
		focusedField: fieldStart,
	}
}

func newDateInput(value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "YYYY-MM-DD"
	ti.CharLimit = len(models.DateLayout)
	ti.Width = len(models.DateLayout) + 1
	ti.SetValue(value)
	return ti
}

// Init initializes the filter tab.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// Editing reports whether the date form has focus.
func (m *Model) Editing() bool {
	return m.editing
}

// Update handles messages for the filter tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	m.sync()

	if m.editing {
		return m.updateForm(msg)
	}

	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Edit):
			m.editing = true
			m.focusedField = fieldStart
			m.updateFormFocus()
			return m, textinput.Blink

		case key.Matches(msg, m.keys.Apply):
			return m, m.apply()

		case key.Matches(msg, m.keys.Reset):
			return m, m.reset()

		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			cmds = append(cmds, cmd)
		}

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// updateForm handles keys while the date form has focus.
func (m *Model) updateForm(msg tea.Msg) (app.Tab, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Escape):
			m.stopEditing()
			m.setInputs(m.shown.Range)
			return m, nil

		case key.Matches(keyMsg, m.keys.Next):
			m.focusedField = (m.focusedField + 1) % fieldCount
			m.updateFormFocus()
			return m, textinput.Blink

		case key.Matches(keyMsg, m.keys.Prev):
			m.focusedField = (m.focusedField - 1 + fieldCount) % fieldCount
			m.updateFormFocus()
			return m, textinput.Blink

		case key.Matches(keyMsg, m.keys.Apply):
			switch m.focusedField {
			case fieldStart:
				m.focusedField = fieldEnd
				m.updateFormFocus()
				return m, textinput.Blink
			case fieldReset:
				m.stopEditing()
				return m, m.reset()
			default:
				m.stopEditing()
				return m, m.apply()
			}
		}
	}

	var cmd tea.Cmd
	switch m.focusedField {
	case fieldStart:
		m.startInput, cmd = m.startInput.Update(msg)
	case fieldEnd:
		m.endInput, cmd = m.endInput.Update(msg)
	}
	return m, cmd
}

// apply parses both inputs and asks the root model to filter.
func (m *Model) apply() tea.Cmd {
	r, err := models.ParseDateRange(
		strings.TrimSpace(m.startInput.Value()),
		strings.TrimSpace(m.endInput.Value()),
	)
	if err == nil {
		err = r.Validate()
	}
	if err != nil {
		return func() tea.Msg {
			return app.ErrorMsg{Error: err, Context: "Invalid date range"}
		}
	}
	return func() tea.Msg {
		return app.FilterRequestMsg{Range: r}
	}
}

// reset restores the generated range and applies it.
func (m *Model) reset() tea.Cmd {
	snap := m.state.GetSnapshot()
	if snap == nil {
		return nil
	}
	m.setInputs(snap.Range)
	return m.apply()
}

func (m *Model) stopEditing() {
	m.editing = false
	m.startInput.Blur()
	m.endInput.Blur()
}

// updateFormFocus updates which form field is focused.
func (m *Model) updateFormFocus() {
	m.startInput.Blur()
	m.endInput.Blur()

	switch m.focusedField {
	case fieldStart:
		m.startInput.Focus()
	case fieldEnd:
		m.endInput.Focus()
	}
}

func (m *Model) setInputs(r models.DateRange) {
	if r.IsZero() {
		return
	}
	m.startInput.SetValue(r.Start.Format(models.DateLayout))
	m.endInput.SetValue(r.End.Format(models.DateLayout))
}

// sync mirrors the latest applied filter into the table, and into the inputs
// unless the user is typing.
func (m *Model) sync() {
	f := m.state.GetFilter()
	if m.synced && sameResult(f, m.shown) {
		return
	}

	m.shown = f
	m.synced = true
	components.SetTableRows(&m.table, models.SalesColumns, components.SalesRows(f.Records))
	if !m.editing {
		m.setInputs(f.Range)
	}
}

// sameResult reports whether two results share the same range and backing records.
func sameResult(a, b models.FilterResult) bool {
	if !a.Range.Start.Equal(b.Range.Start) || !a.Range.End.Equal(b.Range.End) {
		return false
	}
	if len(a.Records) != len(b.Records) {
		return false
	}
	return len(a.Records) == 0 || &a.Records[0] == &b.Records[0]
}

// SetSize sets the available size for the filter tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(height-20, 3))
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	if m.editing {
		return []key.Binding{m.keys.Next, m.keys.Apply, m.keys.Escape}
	}
	return []key.Binding{m.keys.Edit, m.keys.Apply, m.keys.Reset}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Edit, m.keys.Apply, m.keys.Reset},
		{m.keys.Next, m.keys.Prev, m.keys.Escape},
	}
}
