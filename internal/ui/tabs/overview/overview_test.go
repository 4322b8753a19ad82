package overview

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/analytics"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/app"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/models"
)

func day(m time.Month, d int) time.Time {
	return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC)
}

func loadedState() *app.State {
	records := []models.SalesRecord{
		{Date: day(1, 2), Leads: 100, Sales: 20, ConversionRate: 20, Revenue: 2000},
		{Date: day(1, 3), Leads: 150, Sales: 30, ConversionRate: 20, Revenue: 3000},
		{Date: day(1, 4), Leads: 50, Sales: 10, ConversionRate: 20, Revenue: 1000},
	}
	snap := &models.Snapshot{
		GeneratedAt: time.Now(),
		Seed:        42,
		Range:       models.NewDateRange(day(1, 1), day(5, 11)),
		Records:     records,
		Summary:     analytics.SummarizeSales(records),
		Trend: []models.DailySales{
			{Date: day(1, 2), Sales: 20},
			{Date: day(1, 3), Sales: 30},
			{Date: day(1, 4), Sales: 10},
		},
		Revenue: analytics.RevenueHistogram(analytics.RevenueValues(records), 2),
	}
	state := app.NewState()
	state.SetSnapshot(snap, models.FilterResult{Range: snap.Range, Records: records, Summary: snap.Summary})
	return state
}

func TestInit(t *testing.T) {
	if New(app.NewState()).Init() == nil {
		t.Error("Init should start the spinner")
	}
}

func TestView_Loading(t *testing.T) {
	m := New(app.NewState())
	m.SetSize(80, 24)
	if !strings.Contains(m.View(), "Generating data...") {
		t.Error("loading view should show spinner label")
	}
}

func TestView_Dashboard(t *testing.T) {
	m := New(loadedState())
	m.SetSize(120, 80)

	view := ansi.Strip(m.View())
	for _, want := range []string{
		"Operations KPI Dashboard",
		"3 records, seed 42",
		"Key Performance Indicators",
		"Total Revenue",
		"$6000",
		"Total Sales",
		"60",
		"Average Conversion Rate",
		"20.0%",
		"Sales Trend Over Time",
		"2025-01-02 to 2025-01-04",
		"Daily sales",
		"Revenue Distribution",
		"1000-2000",
		"3 records in 2 bins",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestView_NoRecords(t *testing.T) {
	state := app.NewState()
	state.SetSnapshot(&models.Snapshot{Seed: 1}, models.FilterResult{})

	m := New(state)
	m.SetSize(100, 30)
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "No records generated") {
		t.Errorf("empty snapshot should show placeholder:\n%s", view)
	}
	if strings.Contains(view, "Sales Trend Over Time") {
		t.Error("charts should be hidden without records")
	}
}

func TestScroll(t *testing.T) {
	m := New(loadedState())
	m.SetSize(100, 10)
	m.View()

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.viewport.YOffset != 1 {
		t.Errorf("YOffset = %d, want 1", m.viewport.YOffset)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.viewport.YOffset != 0 {
		t.Errorf("YOffset = %d, want 0", m.viewport.YOffset)
	}
}

func TestHelp(t *testing.T) {
	m := New(app.NewState())
	if len(m.ShortHelp()) == 0 || len(m.FullHelp()) == 0 {
		t.Error("help should not be empty")
	}
}
