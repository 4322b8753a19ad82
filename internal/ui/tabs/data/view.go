package data

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/ui/styles"
)

// View renders the data tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	m.sync()

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(),
		m.renderTable(),
		m.renderFooter(),
	)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Raw Data")

	subtitle := "No data generated"
	if m.shown != nil {
		subtitle = fmt.Sprintf("%d records generated with seed %d, %s",
			len(m.shown.Records), m.shown.Seed, m.shown.Range)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, styles.HelpStyle.Render(subtitle), "")
}

func (m *Model) renderTable() string {
	if !m.shown.HasData() {
		return styles.CardStyle.Render(styles.HelpStyle.Render("No records to show."))
	}
	return styles.CardStyle.Render(m.table.View())
}

func (m *Model) renderFooter() string {
	order := "generation order"
	if m.byDate {
		order = "date order"
	}

	position := ""
	if rows := len(m.table.Rows()); rows > 0 {
		position = fmt.Sprintf("Row %d of %d", m.table.Cursor()+1, rows)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		styles.HelpStyle.Render(position),
		styles.HelpSeparatorStyle.Render(" | "),
		styles.HelpStyle.Render(order),
		styles.HelpSeparatorStyle.Render(" | "),
		styles.HelpKeyStyle.Render("s")+styles.HelpDescStyle.Render(" sort"),
	)
}
