package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/analytics"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/models"
)

func TestSpinner(t *testing.T) {
	s := NewSpinner("Init")

	s.SetLabel("Generating data...")
	if s.Label() != "Generating data..." {
		t.Errorf("Label = %s, want Generating data...", s.Label())
	}
	if s.View() == "" {
		t.Error("View returned empty")
	}
	if !strings.Contains(s.ViewWithLabel(), "Generating data...") {
		t.Error("ViewWithLabel should include the label")
	}
	if s.Init() == nil {
		t.Error("Init should start the animation")
	}
	if _, cmd := s.Update(spinner.TickMsg{}); cmd == nil {
		t.Error("Update should schedule the next frame")
	}
}

func TestSpinner_Detail(t *testing.T) {
	base := NewSpinner("Generating data...")
	withDetail := base.WithDetail("100 records")

	if lipgloss.Height(base.ViewWithLabel()) != 1 {
		t.Error("spinner without detail should be one line")
	}
	view := ansi.Strip(withDetail.ViewWithLabel())
	if lipgloss.Height(view) != 2 || !strings.Contains(view, "100 records") {
		t.Errorf("detail line missing:\n%s", view)
	}
	if base.detail != "" {
		t.Error("WithDetail must not modify the original")
	}
}

func TestRenderSpinnerCentered(t *testing.T) {
	s := NewSpinner("Loading...")
	view := RenderSpinnerCentered(s, 20, 5)
	if lipgloss.Height(view) != 5 {
		t.Errorf("height = %d, want 5", lipgloss.Height(view))
	}
}

func TestRenderLineChart(t *testing.T) {
	data := []float64{10, 40, 25, 60}
	s := RenderLineChart(data, 20, 5, "Sales Trend Over Time")
	if !strings.Contains(ansi.Strip(s), "Sales Trend Over Time") {
		t.Errorf("chart missing caption:\n%s", s)
	}

	empty := RenderLineChart(nil, 20, 5, "x")
	if !strings.Contains(empty, "No data available") {
		t.Error("empty chart should say no data")
	}
}

func TestRenderBarChart(t *testing.T) {
	s := ansi.Strip(RenderBarChart([]float64{10, 20}, []string{"A", "B"}, 30))
	lines := strings.Split(s, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.HasSuffix(lines[1], " 20") {
		t.Errorf("whole values should print without a fraction: %q", lines[1])
	}
	if strings.Count(lines[1], "█") <= strings.Count(lines[0], "█") {
		t.Error("larger value should draw a longer bar")
	}

	if RenderBarChart(nil, nil, 20) != "" {
		t.Error("no values should render nothing")
	}
}

func TestFormatBarValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{3, "3"},
		{0, "0"},
		{2.5, "2.5"},
	}
	for _, tt := range tests {
		if got := formatBarValue(tt.in); got != tt.want {
			t.Errorf("formatBarValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderHistogram(t *testing.T) {
	h := analytics.RevenueHistogram([]float64{1000, 1500, 1500, 2000}, 2)

	labels := HistogramLabels(h)
	if len(labels) != 2 || labels[0] != "1000-1500" || labels[1] != "1500-2000" {
		t.Errorf("labels = %v", labels)
	}

	s := ansi.Strip(RenderHistogram(h, 40))
	if !strings.Contains(s, "1000-1500") {
		t.Errorf("histogram missing bin label:\n%s", s)
	}

	if !strings.Contains(RenderHistogram(models.Histogram{}, 40), "No data available") {
		t.Error("empty histogram should say no data")
	}
}

func TestRenderSparkline(t *testing.T) {
	s := RenderSparkline([]float64{1, 2, 3}, 10)
	if []rune(s)[0] != '▁' || []rune(s)[2] != '█' {
		t.Errorf("sparkline = %q, want lowest to highest", s)
	}

	flat := RenderSparkline([]float64{5, 5}, 10)
	if flat != "▁▁" {
		t.Errorf("flat sparkline = %q", flat)
	}

	if RenderSparkline(nil, 10) != "" || RenderSparkline([]float64{1}, 0) != "" {
		t.Error("degenerate input should render nothing")
	}
}

func TestRenderLegend(t *testing.T) {
	items := []LegendItem{
		{Label: "Sales", Color: lipgloss.Color("#ffffff")},
		{Label: "Revenue", Color: lipgloss.Color("#000000")},
	}
	s := ansi.Strip(RenderLegend(items))
	if !strings.Contains(s, "Sales") || !strings.Contains(s, "Revenue") {
		t.Errorf("legend = %q", s)
	}
}

func TestFitColumns(t *testing.T) {
	rows := []table.Row{{"2025-01-01", "123456789"}}
	cols := FitColumns([]string{"Date", "Leads"}, rows)
	if cols[0].Width != 10 {
		t.Errorf("date width = %d, want 10", cols[0].Width)
	}
	if cols[1].Width != 9 {
		t.Errorf("leads width = %d, want 9", cols[1].Width)
	}
}

func TestNewTable_SalesRows(t *testing.T) {
	records := []models.SalesRecord{
		{Date: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), Leads: 120, Sales: 30, ConversionRate: 25, Revenue: 4000},
		{Date: time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), Leads: 80, Sales: 12, ConversionRate: 15.5, Revenue: 1200},
	}

	rows := SalesRows(records)
	tbl := NewTable(models.SalesColumns, rows, 5)

	if len(tbl.Rows()) != 2 {
		t.Fatalf("rows = %d, want 2", len(tbl.Rows()))
	}
	if tbl.Rows()[0][3] != "25.0" {
		t.Errorf("conversion cell = %q, want 25.0", tbl.Rows()[0][3])
	}
	if !strings.Contains(ansi.Strip(tbl.View()), "Conversion Rate (%)") {
		t.Error("table view missing header")
	}

	SetTableRows(&tbl, models.SalesColumns, rows[:1])
	if len(tbl.Rows()) != 1 || tbl.Cursor() != 0 {
		t.Errorf("after SetTableRows rows=%d cursor=%d", len(tbl.Rows()), tbl.Cursor())
	}
}

func TestOperationsRows(t *testing.T) {
	team := []models.TeamMemberStats{{Name: "Alice", TasksCompleted: 9, AvgDaysPerTask: 4.5,
		ProjectsCompleted: 3, LateProjects: 1, TaskEfficiency: 88}}
	rows := OperationsRows(team)
	if len(rows) != 1 || rows[0][0] != "Alice" || len(rows[0]) != len(models.OperationsColumns) {
		t.Errorf("rows = %v", rows)
	}
}

func TestRenderMetrics(t *testing.T) {
	metrics := analytics.KPIMetrics(models.KPISummary{TotalRevenue: 1234, TotalSales: 56, AverageConversion: 20})

	wide := ansi.Strip(RenderMetrics(metrics, 200))
	for _, want := range []string{"Total Revenue", "$1234", "Total Sales", "56", "Average Conversion Rate", "20.0%"} {
		if !strings.Contains(wide, want) {
			t.Errorf("metrics missing %q:\n%s", want, wide)
		}
	}

	narrow := RenderMetrics(metrics, 10)
	if lipgloss.Height(narrow) <= lipgloss.Height(RenderMetrics(metrics, 200)) {
		t.Error("narrow width should wrap callouts onto more rows")
	}

	if RenderMetrics(nil, 80) != "" {
		t.Error("no metrics should render nothing")
	}
}
