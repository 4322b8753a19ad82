package filter

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
		{Date: day(1, 5), Leads: 100, Sales: 20, ConversionRate: 20, Revenue: 2000},
		{Date: day(2, 10), Leads: 150, Sales: 30, ConversionRate: 25.5, Revenue: 3000},
		{Date: day(4, 1), Leads: 60, Sales: 12, ConversionRate: 12.25, Revenue: 1200},
	}
	snap := &models.Snapshot{
		Seed:    42,
		Range:   models.NewDateRange(day(1, 1), day(5, 11)),
		Records: records,
		Summary: analytics.SummarizeSales(records),
		Trend: []models.DailySales{
			{Date: day(1, 5), Sales: 20},
			{Date: day(2, 10), Sales: 30},
			{Date: day(4, 1), Sales: 12},
		},
	}
	state := app.NewState()
	state.SetSnapshot(snap, models.FilterResult{Range: snap.Range, Records: records, Summary: snap.Summary})
	return state
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return cmd()
}

func TestNew_DefaultRange(t *testing.T) {
	m := New(app.NewState())
	if got := m.startInput.Value(); got != "2025-01-01" {
		t.Errorf("start = %q, want 2025-01-01", got)
	}
	if got := m.endInput.Value(); got != "2025-05-11" {
		t.Errorf("end = %q, want 2025-05-11", got)
	}
	if m.Editing() {
		t.Error("form should not start focused")
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		wantRange models.DateRange
		wantErr   bool
	}{
		{"Valid", "2025-02-01", "2025-03-31", models.NewDateRange(day(2, 1), day(3, 31)), false},
		{"SingleDay", "2025-02-10", "2025-02-10", models.NewDateRange(day(2, 10), day(2, 10)), false},
		{"Padded", " 2025-02-01 ", "2025-02-02", models.NewDateRange(day(2, 1), day(2, 2)), false},
		{"BadMonth", "2025-13-01", "2025-03-31", models.DateRange{}, true},
		{"Garbage", "yesterday", "2025-03-31", models.DateRange{}, true},
		{"Reversed", "2025-04-01", "2025-03-01", models.DateRange{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(loadedState())
			m.startInput.SetValue(tt.start)
			m.endInput.SetValue(tt.end)

			msg := runCmd(t, m.apply())
			if tt.wantErr {
				errMsg, ok := msg.(app.ErrorMsg)
				if !ok {
					t.Fatalf("got %T, want app.ErrorMsg", msg)
				}
				if errMsg.Error == nil || errMsg.Context != "Invalid date range" {
					t.Errorf("unexpected error msg %+v", errMsg)
				}
				return
			}

			req, ok := msg.(app.FilterRequestMsg)
			if !ok {
				t.Fatalf("got %T, want app.FilterRequestMsg", msg)
			}
			if !req.Range.Start.Equal(tt.wantRange.Start) || !req.Range.End.Equal(tt.wantRange.End) {
				t.Errorf("range = %s, want %s", req.Range, tt.wantRange)
			}
		})
	}
}

func TestEnterAppliesWithoutEditing(t *testing.T) {
	m := New(loadedState())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := runCmd(t, cmd).(app.FilterRequestMsg); !ok {
		t.Error("enter should request a filter")
	}
}

func TestEditFlow(t *testing.T) {
	m := New(loadedState())

	m.Update(keyRunes("/"))
	if !m.Editing() || m.focusedField != fieldStart {
		t.Fatal("/ should focus the start date")
	}

	m.startInput.SetValue("2025-02-01")

	// Enter on the start field moves to the end field.
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.focusedField != fieldEnd || !m.Editing() {
		t.Fatalf("focus = %d, want end field", m.focusedField)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Editing() {
		t.Error("applying should leave the form")
	}
	req, ok := runCmd(t, cmd).(app.FilterRequestMsg)
	if !ok {
		t.Fatal("expected FilterRequestMsg")
	}
	if !req.Range.Start.Equal(day(2, 1)) || !req.Range.End.Equal(day(5, 11)) {
		t.Errorf("range = %s", req.Range)
	}
}

func TestEscapeRestoresInputs(t *testing.T) {
	m := New(loadedState())
	m.Update(keyRunes("/"))
	m.startInput.SetValue("2025-03-03")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Editing() {
		t.Error("esc should leave the form")
	}
	if got := m.startInput.Value(); got != "2025-01-01" {
		t.Errorf("start = %q, want the applied range restored", got)
	}
}

func TestFieldCycling(t *testing.T) {
	m := New(loadedState())
	m.Update(keyRunes("/"))

	for want := fieldEnd; want < fieldCount; want++ {
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		if m.focusedField != want {
			t.Fatalf("focus = %d, want %d", m.focusedField, want)
		}
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focusedField != fieldStart {
		t.Errorf("focus should wrap to start, got %d", m.focusedField)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focusedField != fieldReset {
		t.Errorf("shift+tab should wrap to reset, got %d", m.focusedField)
	}
}

func TestReset(t *testing.T) {
	state := loadedState()
	m := New(state)
	m.startInput.SetValue("2025-04-01")

	_, cmd := m.Update(keyRunes("x"))
	req, ok := runCmd(t, cmd).(app.FilterRequestMsg)
	if !ok {
		t.Fatal("reset should request a filter")
	}
	if !req.Range.Start.Equal(day(1, 1)) || !req.Range.End.Equal(day(5, 11)) {
		t.Errorf("range = %s, want generated range", req.Range)
	}

	if New(app.NewState()).reset() != nil {
		t.Error("reset without a snapshot should do nothing")
	}
}

func TestSyncFollowsState(t *testing.T) {
	state := loadedState()
	m := New(state)
	m.SetSize(120, 40)

	view := ansi.Strip(m.View())
	if !strings.Contains(view, "3 records in 2025-01-01 → 2025-05-11") {
		t.Errorf("view missing record count:\n%s", view)
	}

	snap := state.GetSnapshot()
	narrowed := models.FilterResult{
		Range:   models.NewDateRange(day(2, 1), day(2, 28)),
		Records: snap.Records[1:2],
	}
	narrowed.Summary = analytics.SummarizeSales(narrowed.Records)
	state.SetFilter(narrowed)

	view = ansi.Strip(m.View())
	if !strings.Contains(view, "1 records in 2025-02-01 → 2025-02-28") {
		t.Errorf("view did not pick up new filter:\n%s", view)
	}
	if !strings.Contains(view, "Total Revenue: $3000") {
		t.Errorf("view missing filtered KPIs:\n%s", view)
	}
	if len(m.table.Rows()) != 1 {
		t.Errorf("table rows = %d, want 1", len(m.table.Rows()))
	}
	if m.startInput.Value() != "2025-02-01" {
		t.Errorf("inputs should follow applied range, got %q", m.startInput.Value())
	}
}

func TestView_Empty(t *testing.T) {
	state := loadedState()
	state.SetFilter(models.FilterResult{Range: models.NewDateRange(day(6, 1), day(6, 2))})

	m := New(state)
	m.SetSize(100, 30)
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "No records fall inside this range.") {
		t.Errorf("empty filter not rendered:\n%s", view)
	}
	if !strings.Contains(view, "Total Revenue: $0") {
		t.Error("empty filter should show zero KPIs")
	}
}

func TestView_Loading(t *testing.T) {
	m := New(app.NewState())
	m.SetSize(80, 24)
	if !strings.Contains(m.View(), "Generating data...") {
		t.Error("loading view should show spinner label")
	}
}

func TestDailySales(t *testing.T) {
	trend := []models.DailySales{{Date: day(1, 1), Sales: 1}, {Date: day(1, 2), Sales: 2}, {Date: day(1, 3), Sales: 3}}
	got := dailySales(trend, models.NewDateRange(day(1, 2), day(1, 3)))
	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("dailySales = %v", got)
	}
}

func TestHelp(t *testing.T) {
	m := New(app.NewState())
	if len(m.ShortHelp()) == 0 || len(m.FullHelp()) == 0 {
		t.Error("help should not be empty")
	}
	m.Update(keyRunes("/"))
	if m.ShortHelp()[0].Help().Key != "tab" {
		t.Error("editing help should lead with field navigation")
	}
}
