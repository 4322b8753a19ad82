package components

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/analytics"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/models"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/ui/styles"
)

// NewTable builds a focused table whose column widths fit the header and every cell.
func NewTable(headers []string, rows []table.Row, height int) table.Model {
	t := table.New(
		table.WithColumns(FitColumns(headers, rows)),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(height, 1)),
		table.WithKeyMap(TableKeyMap()),
	)

	s := table.DefaultStyles()
	s.Header = styles.TableHeaderStyle.Padding(0, 1)
	s.Selected = styles.TableSelectedStyle
	t.SetStyles(s)

	return t
}

// TableKeyMap is the default table keymap without "g", which regenerates data globally.
func TableKeyMap() table.KeyMap {
	km := table.DefaultKeyMap()
	km.GotoTop = key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "go to start"))
	km.GotoBottom = key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G/end", "go to end"))
	return km
}

// SetTableRows swaps the rows and refits the columns in place.
func SetTableRows(t *table.Model, headers []string, rows []table.Row) {
	// Columns first, so the rows never outnumber the header cells.
	t.SetRows(nil)
	t.SetColumns(FitColumns(headers, rows))
	t.SetRows(rows)
	t.GotoTop()
}

// FitColumns sizes each column to its widest cell.
func FitColumns(headers []string, rows []table.Row) []table.Column {
	cols := make([]table.Column, len(headers))
	for i, h := range headers {
		cols[i] = table.Column{Title: h, Width: lipgloss.Width(h)}
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(cols) {
				cols[i].Width = max(cols[i].Width, lipgloss.Width(cell))
			}
		}
	}
	return cols
}

// SalesRows converts sales records to table rows.
func SalesRows(records []models.SalesRecord) []table.Row {
	rows := make([]table.Row, len(records))
	for i, r := range records {
		rows[i] = analytics.SalesRow(r)
	}
	return rows
}

// OperationsRows converts team stats to table rows.
func OperationsRows(team []models.TeamMemberStats) []table.Row {
	rows := make([]table.Row, len(team))
	for i, o := range team {
		rows[i] = analytics.OperationsRow(o)
	}
	return rows
}
