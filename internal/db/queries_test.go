package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/analytics"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/mock"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func fixtureSales() []models.SalesRecord {
	return []models.SalesRecord{
		{Date: day("2025-01-03"), Leads: 100, Sales: 20, ConversionRate: 20.0, Revenue: 2000},
		{Date: day("2025-01-01"), Leads: 60, Sales: 12, ConversionRate: 11.5, Revenue: 1500},
		{Date: day("2025-01-03"), Leads: 80, Sales: 30, ConversionRate: 29.99, Revenue: 4999},
		{Date: day("2025-01-05"), Leads: 150, Sales: 40, ConversionRate: 15.25, Revenue: 1000},
	}
}

func fixtureOps() []models.TeamMemberStats {
	return []models.TeamMemberStats{
		{Name: "Alice", TasksCompleted: 10, AvgDaysPerTask: 4.5, ProjectsCompleted: 5, LateProjects: 1, TaskEfficiency: 80},
		{Name: "Bob", TasksCompleted: 7, AvgDaysPerTask: 3.25, ProjectsCompleted: 3, LateProjects: 0, TaskEfficiency: 91.4},
	}
}

func loadedDB(t *testing.T) *DB {
	t.Helper()
	db := newTestDB(t)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.ReplaceDataset(fixtureSales(), fixtureOps()))
	return db
}

func TestReplaceDataset_RoundTrip(t *testing.T) {
	db := loadedDB(t)

	records, err := db.GetSalesRecords(models.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, fixtureSales(), records, "rows should come back in insertion order")

	ops, err := db.GetOperations()
	require.NoError(t, err)
	assert.Equal(t, fixtureOps(), ops)

	n, err := db.CountSales()
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestReplaceDataset_Replaces(t *testing.T) {
	db := loadedDB(t)

	replacement := fixtureSales()[:1]
	require.NoError(t, db.ReplaceDataset(replacement, nil))

	n, err := db.CountSales()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	ops, err := db.GetOperations()
	require.NoError(t, err)
	assert.Empty(t, ops)
}

func TestGetSalesRecords_InclusiveRange(t *testing.T) {
	db := loadedDB(t)

	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"BothEndsInclusive", "2025-01-01", "2025-01-03", 3},
		{"SingleDay", "2025-01-03", "2025-01-03", 2},
		{"UpperEdge", "2025-01-05", "2025-01-05", 1},
		{"NoMatch", "2025-02-01", "2025-02-28", 0},
		{"Wide", "2024-01-01", "2026-01-01", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := models.NewDateRange(day(tt.start), day(tt.end))
			records, err := db.GetSalesRecords(r)
			require.NoError(t, err)
			assert.Len(t, records, tt.want)
			for _, rec := range records {
				assert.True(t, r.Contains(rec.Date))
			}
		})
	}
}

func TestGetSalesRecords_ReversedRange(t *testing.T) {
	db := loadedDB(t)

	_, err := db.GetSalesRecords(models.NewDateRange(day("2025-01-05"), day("2025-01-01")))
	assert.Error(t, err)
}

func TestGetDailySales(t *testing.T) {
	db := loadedDB(t)

	days, err := db.GetDailySales()
	require.NoError(t, err)
	require.Len(t, days, 3)

	assert.Equal(t, day("2025-01-01"), days[0].Date)
	assert.Equal(t, 12, days[0].Sales)

	assert.Equal(t, day("2025-01-03"), days[1].Date)
	assert.Equal(t, 2, days[1].Records)
	assert.Equal(t, 50, days[1].Sales)
	assert.Equal(t, 180, days[1].Leads)
	assert.Equal(t, 6999, days[1].Revenue)

	assert.Equal(t, day("2025-01-05"), days[2].Date)
}

func TestGetRevenueValues(t *testing.T) {
	db := loadedDB(t)

	values, err := db.GetRevenueValues()
	require.NoError(t, err)
	assert.Equal(t, []float64{2000, 1500, 4999, 1000}, values)
}

func TestEmptyStore(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	records, err := db.GetSalesRecords(models.DateRange{})
	require.NoError(t, err)
	assert.Empty(t, records)

	days, err := db.GetDailySales()
	require.NoError(t, err)
	assert.Empty(t, days)
}

// The store's filter must agree with the in-memory range check on generated data.
func TestGetSalesRecords_MatchesContains(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	sales := mock.New(mock.DefaultSeed).Sales(mock.DefaultRecords, mock.DefaultStart, mock.DefaultEnd)
	require.NoError(t, db.ReplaceDataset(sales, nil))

	r := models.NewDateRange(day("2025-02-01"), day("2025-03-15"))
	var want []models.SalesRecord
	for _, rec := range sales {
		if r.Contains(rec.Date) {
			want = append(want, rec)
		}
	}

	got, err := db.GetSalesRecords(r)
	require.NoError(t, err)
	assert.Equal(t, len(want), len(got))
	assert.Equal(t, analytics.SummarizeSales(want), analytics.SummarizeSales(got))

	days, err := db.GetDailySales()
	require.NoError(t, err)
	var total int
	for _, d := range days {
		total += d.Sales
	}
	assert.EqualValues(t, analytics.SummarizeSales(sales).TotalSales, total)
}
