package overview

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/analytics"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/models"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/ui/styles"
)

const chartHeight = 10

// View renders the overview tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	m.viewport.SetContent(m.renderContent())

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderContent() string {
	snap := m.state.GetSnapshot()

	sections := []string{m.renderTitle(snap)}
	if !snap.HasData() {
		sections = append(sections, m.renderEmpty())
	} else {
		sections = append(sections,
			m.renderKPIs(snap),
			m.renderTrend(snap),
			m.renderDistribution(snap),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderTitle(snap *models.Snapshot) string {
	title := styles.TitleStyle.Render("Operations KPI Dashboard")

	subtitle := "Sales and operations indicators"
	if snap != nil {
		subtitle = fmt.Sprintf("%d records, seed %d, %s, generated %s",
			len(snap.Records), snap.Seed, snap.Range, humanize.Time(snap.GeneratedAt))
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, styles.HelpStyle.Render(subtitle), "")
}

func (m *Model) cardWidth() int {
	return max(m.width-6, 40)
}

func (m *Model) renderCard(title, body string) string {
	icon := lipgloss.NewStyle().Foreground(styles.Primary).Render("◈")
	heading := fmt.Sprintf("%s %s", icon, styles.CardTitleStyle.Render(title))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, heading, "", body),
	)
}

func (m *Model) renderEmpty() string {
	icon := lipgloss.NewStyle().Foreground(styles.Subtle).Render("○")
	return m.renderCard("Key Performance Indicators",
		fmt.Sprintf("  %s %s", icon, styles.HelpStyle.Render("No records generated")))
}

func (m *Model) renderKPIs(snap *models.Snapshot) string {
	return m.renderCard("Key Performance Indicators",
		components.RenderMetrics(analytics.KPIMetrics(snap.Summary), m.cardWidth()-4))
}

func (m *Model) renderTrend(snap *models.Snapshot) string {
	series := analytics.SalesSeries(snap.Trend)

	// Leave room for the y-axis labels asciigraph draws to the left.
	chart := components.RenderLineChart(series, m.cardWidth()-16, chartHeight,
		fmt.Sprintf("%s to %s", firstDay(snap.Trend), lastDay(snap.Trend)))

	legend := components.RenderLegend([]components.LegendItem{
		{Label: "Daily sales", Color: styles.ChartLine},
	})

	return m.renderCard("Sales Trend Over Time", lipgloss.JoinVertical(lipgloss.Left, chart, "", legend))
}

func (m *Model) renderDistribution(snap *models.Snapshot) string {
	body := components.RenderHistogram(snap.Revenue, m.cardWidth()-4)
	note := styles.HelpStyle.Render(fmt.Sprintf("%d records in %d bins", snap.Revenue.Total, len(snap.Revenue.Bins)))

	return m.renderCard("Revenue Distribution", lipgloss.JoinVertical(lipgloss.Left, body, "", note))
}

func firstDay(trend []models.DailySales) string {
	if len(trend) == 0 {
		return ""
	}
	return trend[0].Date.Format(models.DateLayout)
}

func lastDay(trend []models.DailySales) string {
	if len(trend) == 0 {
		return ""
	}
	return trend[len(trend)-1].Date.Format(models.DateLayout)
}
