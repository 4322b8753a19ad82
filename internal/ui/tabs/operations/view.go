package operations

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/ui/styles"
)

// View renders the operations tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	m.sync()

	sections := []string{m.renderTitle()}
	if m.shown == nil || len(m.shown.Team) == 0 {
		sections = append(sections, styles.CardStyle.Render(styles.HelpStyle.Render("No team data generated")))
	} else {
		sections = append(sections, m.renderTable(), m.renderMetrics())
	}

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Operations Metrics")

	subtitle := "Monthly team performance"
	if m.shown != nil && len(m.shown.Team) > 0 {
		subtitle = fmt.Sprintf("Monthly performance of %d team members", len(m.shown.Team))
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, styles.HelpStyle.Render(subtitle), "")
}

func (m *Model) renderTable() string {
	return styles.CardStyle.Render(m.table.View())
}

func (m *Model) renderMetrics() string {
	title := styles.CardTitleStyle.Render("Additional Operations Metrics")
	width := max(m.width-16, 30)
	body := strings.Trim(m.markdown(width), "\n")

	return styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, body))
}
