package filter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/analytics"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/models"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/ui/styles"
)

// View renders the filter tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	m.sync()

	sections := []string{
		m.renderTitle(),
		m.renderForm(),
		m.renderSummary(),
		m.renderTable(),
		m.renderFooter(),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Filter Data by Date Range")

	subtitle := "Both ends are included"
	if snap := m.state.GetSnapshot(); snap != nil {
		subtitle = fmt.Sprintf("Data covers %s. Both ends are included", snap.Range)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, styles.HelpStyle.Render(subtitle), "")
}

// renderForm renders the two date inputs and the action buttons.
func (m *Model) renderForm() string {
	start := m.renderField("Start Date", m.startInput.View(), fieldStart)
	end := m.renderField("End Date", m.endInput.View(), fieldEnd)

	applyStyle := styles.ButtonInactiveStyle
	resetStyle := styles.ButtonInactiveStyle
	if m.editing && m.focusedField == fieldApply {
		applyStyle = styles.ButtonActiveStyle
	}
	if m.editing && m.focusedField == fieldReset {
		resetStyle = styles.ButtonActiveStyle
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		applyStyle.Render(" Apply "),
		"  ",
		resetStyle.Render(" Full Range "),
	)

	return lipgloss.JoinHorizontal(lipgloss.Center, start, "  ", end, "  ", buttons)
}

func (m *Model) renderField(label, input string, field formField) string {
	focused := m.editing && m.focusedField == field

	labelStyle := styles.BlurredStyle
	boxStyle := styles.BlurredBorderStyle
	if focused {
		labelStyle = styles.FocusedStyle
		boxStyle = styles.FocusedBorderStyle
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		labelStyle.Render(label+":"),
		" ",
		boxStyle.Render(input),
	)
}

// renderSummary renders the KPI line and a daily sales sparkline for the filtered range.
func (m *Model) renderSummary() string {
	f := m.shown

	var parts []string
	for _, metric := range analytics.KPIMetrics(f.Summary) {
		parts = append(parts, styles.MetricLabelStyle.Render(metric.Label+":")+" "+
			styles.MetricValueStyle.Render(metric.Value))
	}
	kpis := strings.Join(parts, styles.HelpSeparatorStyle.Render("  |  "))

	count := styles.InfoTextStyle.Render(fmt.Sprintf("%d records in %s", len(f.Records), f.Range))

	lines := []string{"", count, kpis}
	if spark := m.renderSparkline(); spark != "" {
		lines = append(lines, styles.HelpStyle.Render("Daily sales ")+
			lipgloss.NewStyle().Foreground(styles.ChartLine).Render(spark))
	}
	lines = append(lines, "")

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) renderSparkline() string {
	snap := m.state.GetSnapshot()
	if snap == nil {
		return ""
	}
	return components.RenderSparkline(dailySales(snap.Trend, m.shown.Range), max(m.width-20, 10))
}

// dailySales returns the per-day sales sums that fall inside r.
func dailySales(trend []models.DailySales, r models.DateRange) []float64 {
	var series []float64
	for _, d := range trend {
		if r.Contains(d.Date) {
			series = append(series, float64(d.Sales))
		}
	}
	return series
}

func (m *Model) renderTable() string {
	title := styles.CardTitleStyle.Render("Filtered Data")

	var body string
	if len(m.shown.Records) == 0 {
		body = styles.HelpStyle.Render("No records fall inside this range.")
	} else {
		body = m.table.View()
	}

	return styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, body))
}

// renderFooter renders the footer with keyboard shortcuts.
func (m *Model) renderFooter() string {
	var shortcuts []string

	if m.editing {
		shortcuts = []string{
			styles.HelpKeyStyle.Render("Tab") + " next",
			styles.HelpKeyStyle.Render("Enter") + " apply",
			styles.HelpKeyStyle.Render("Esc") + " cancel",
		}
	} else {
		shortcuts = []string{
			styles.HelpKeyStyle.Render("/") + " edit",
			styles.HelpKeyStyle.Render("Enter") + " apply",
			styles.HelpKeyStyle.Render("x") + " full range",
			styles.HelpKeyStyle.Render("↑/↓") + " scroll",
		}
	}

	return lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Render(strings.Join(shortcuts, styles.HelpSeparatorStyle.Render(" | ")))
}
