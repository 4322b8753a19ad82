package data

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/app"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/models"
)

func day(m time.Month, d int) time.Time {
	return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC)
}

func snapshot() *models.Snapshot {
	return &models.Snapshot{
		Seed:  7,
		Range: models.NewDateRange(day(1, 1), day(5, 11)),
		Records: []models.SalesRecord{
			{Date: day(3, 2), Leads: 80, Sales: 10, ConversionRate: 12.5, Revenue: 900},
			{Date: day(1, 15), Leads: 120, Sales: 30, ConversionRate: 25, Revenue: 2500},
			{Date: day(2, 20), Leads: 60, Sales: 9, ConversionRate: 15, Revenue: 700},
		},
	}
}

func loadedState(snap *models.Snapshot) *app.State {
	state := app.NewState()
	state.SetSnapshot(snap, models.FilterResult{Range: snap.Range, Records: snap.Records})
	return state
}

func TestView_Loading(t *testing.T) {
	m := New(app.NewState())
	m.SetSize(80, 24)
	if !strings.Contains(m.View(), "Generating data...") {
		t.Error("loading view should show spinner label")
	}
}

func TestView_ShowsRecords(t *testing.T) {
	m := New(loadedState(snapshot()))
	m.SetSize(120, 40)

	view := ansi.Strip(m.View())
	for _, want := range []string{
		"Raw Data",
		"3 records generated with seed 7, 2025-01-01 → 2025-05-11",
		"2025-03-02",
		"Row 1 of 3",
		"generation order",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestView_NoRecords(t *testing.T) {
	snap := snapshot()
	snap.Records = nil
	m := New(loadedState(snap))
	m.SetSize(100, 30)

	if !strings.Contains(ansi.Strip(m.View()), "No records to show.") {
		t.Error("empty snapshot should render a placeholder")
	}
}

func TestSortToggle(t *testing.T) {
	m := New(loadedState(snapshot()))
	m.SetSize(120, 40)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	if !m.byDate {
		t.Fatal("s should switch to date order")
	}
	rows := m.table.Rows()
	if rows[0][0] != "2025-01-15" || rows[2][0] != "2025-03-02" {
		t.Errorf("rows not sorted by date: %v", rows)
	}
	// The snapshot itself keeps generation order.
	if !m.shown.Records[0].Date.Equal(day(3, 2)) {
		t.Error("sorting must not reorder the snapshot")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	if m.table.Rows()[0][0] != "2025-03-02" {
		t.Error("second s should restore generation order")
	}
}

func TestSyncFollowsState(t *testing.T) {
	state := loadedState(snapshot())
	m := New(state)
	m.SetSize(120, 40)
	m.View()

	next := snapshot()
	next.Seed = 8
	next.Records = next.Records[:1]
	state.SetSnapshot(next, models.FilterResult{Range: next.Range, Records: next.Records})

	view := ansi.Strip(m.View())
	if !strings.Contains(view, "1 records generated with seed 8") {
		t.Errorf("view did not follow new snapshot:\n%s", view)
	}
	if len(m.table.Rows()) != 1 {
		t.Errorf("rows = %d, want 1", len(m.table.Rows()))
	}
}

func TestCursorMoves(t *testing.T) {
	m := New(loadedState(snapshot()))
	m.SetSize(120, 40)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})

	if m.table.Cursor() != 1 {
		t.Errorf("cursor = %d, want 1", m.table.Cursor())
	}
	if !strings.Contains(ansi.Strip(m.View()), "Row 2 of 3") {
		t.Error("footer should track the cursor")
	}
}

func TestHelp(t *testing.T) {
	m := New(app.NewState())
	if len(m.ShortHelp()) != 3 {
		t.Errorf("short help = %d bindings, want 3", len(m.ShortHelp()))
	}
	if len(m.FullHelp()) != 2 {
		t.Errorf("full help = %d groups, want 2", len(m.FullHelp()))
	}
}
