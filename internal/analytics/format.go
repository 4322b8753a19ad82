package analytics

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/models"
)

// FormatCurrency renders a whole-dollar amount as "$12345".
func FormatCurrency(amount int64) string {
	return fmt.Sprintf("$%d", amount)
}

// FormatFloat renders v in its shortest exact form, always keeping a decimal point ("20.0", "19.87").
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FormatPercent renders v followed by a percent sign.
func FormatPercent(v float64) string {
	return FormatFloat(v) + "%"
}

// Metric is a labelled display value.
type Metric struct {
	Label string
	Value string
}

// KPIMetrics returns the three headline indicators in display order.
func KPIMetrics(s models.KPISummary) []Metric {
	return []Metric{
		{Label: "Total Revenue", Value: FormatCurrency(s.TotalRevenue)},
		{Label: "Total Sales", Value: strconv.FormatInt(s.TotalSales, 10)},
		{Label: "Average Conversion Rate", Value: FormatPercent(s.AverageConversion)},
	}
}

// OperationsMetrics returns the additional operations figures in display order.
func OperationsMetrics(s models.OperationsSummary) []Metric {
	return []Metric{
		{Label: "Average Task Completion Time", Value: FormatFloat(s.AverageTaskDays) + " days"},
		{Label: "Total Projects Completed", Value: strconv.Itoa(s.TotalProjects)},
		{Label: "Late Project Rate", Value: FormatPercent(s.LateProjectRate)},
		{Label: "Total Tasks Completed", Value: strconv.Itoa(s.TotalTasks)},
		{Label: "Overall Task Efficiency", Value: FormatPercent(s.OverallEfficiency)},
	}
}

// OperationsMarkdown renders the operations figures as bold-label markdown lines.
func OperationsMarkdown(s models.OperationsSummary) string {
	var b strings.Builder
	for _, m := range OperationsMetrics(s) {
		fmt.Fprintf(&b, "**%s:** %s\n\n", m.Label, m.Value)
	}
	return b.String()
}

// SalesRow formats a sales record for tabular display.
func SalesRow(r models.SalesRecord) []string {
	return []string{
		r.Date.Format(models.DateLayout),
		strconv.Itoa(r.Leads),
		strconv.Itoa(r.Sales),
		FormatFloat(r.ConversionRate),
		strconv.Itoa(r.Revenue),
	}
}

// OperationsRow formats a team member's stats for tabular display.
func OperationsRow(o models.TeamMemberStats) []string {
	return []string{
		o.Name,
		strconv.Itoa(o.TasksCompleted),
		FormatFloat(o.AvgDaysPerTask),
		strconv.Itoa(o.ProjectsCompleted),
		strconv.Itoa(o.LateProjects),
		FormatFloat(o.TaskEfficiency),
	}
}
