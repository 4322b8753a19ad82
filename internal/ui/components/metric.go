package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/analytics"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/ui/styles"
)

// RenderMetric draws one KPI callout: a caption over its value.
func RenderMetric(m analytics.Metric) string {
	return styles.MetricCardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.MetricLabelStyle.Render(m.Label),
		styles.MetricValueStyle.Render(m.Value),
	))
}

// RenderMetrics lays callouts side by side, wrapping to new rows when width runs out.
func RenderMetrics(metrics []analytics.Metric, width int) string {
	if len(metrics) == 0 {
		return ""
	}

	var rows []string
	var row []string
	rowWidth := 0
	for _, m := range metrics {
		card := RenderMetric(m)
		w := lipgloss.Width(card)
		if len(row) > 0 && width > 0 && rowWidth+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowWidth = nil, 0
		}
		row = append(row, card)
		rowWidth += w
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
