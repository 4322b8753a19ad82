package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/analytics"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/db"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/mock"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/models"
)

func defaultParams() Params {
	return Params{
		Seed:    mock.DefaultSeed,
		Records: mock.DefaultRecords,
		Range:   models.NewDateRange(mock.DefaultStart, mock.DefaultEnd),
		Team:    mock.DefaultTeam,
		Bins:    analytics.DefaultHistogramBins,
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := db.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return New(store)
}

func TestLoad(t *testing.T) {
	svc := newTestService(t)
	assert.Nil(t, svc.Snapshot())

	snap, err := svc.Load(defaultParams())
	require.NoError(t, err)

	assert.Len(t, snap.Records, mock.DefaultRecords)
	assert.Len(t, snap.Team, len(mock.DefaultTeam))
	assert.Equal(t, mock.DefaultRecords, snap.Summary.Records)
	assert.Len(t, snap.Revenue.Bins, analytics.DefaultHistogramBins)
	assert.Equal(t, mock.DefaultRecords, snap.Revenue.Total)

	// The snapshot matches what the generator produced directly.
	gen := mock.New(mock.DefaultSeed)
	sales := gen.Sales(mock.DefaultRecords, mock.DefaultStart, mock.DefaultEnd)
	assert.Equal(t, analytics.SummarizeSales(sales), snap.Summary)

	var trendSales int
	for i, d := range snap.Trend {
		trendSales += d.Sales
		if i > 0 {
			assert.True(t, d.Date.After(snap.Trend[i-1].Date), "trend must be sorted by date")
		}
	}
	assert.EqualValues(t, snap.Summary.TotalSales, trendSales)

	var binned int
	for _, b := range snap.Revenue.Bins {
		binned += b.Count
	}
	assert.Equal(t, mock.DefaultRecords, binned)

	last := svc.LastFilter()
	assert.Equal(t, snap.Range, last.Range)
	assert.Len(t, last.Records, mock.DefaultRecords)
}

func TestLoad_Deterministic(t *testing.T) {
	a, err := newTestService(t).Load(defaultParams())
	require.NoError(t, err)
	b, err := newTestService(t).Load(defaultParams())
	require.NoError(t, err)

	assert.Equal(t, a.Records, b.Records)
	assert.Equal(t, a.Team, b.Team)
	assert.Equal(t, a.Operations, b.Operations)
}

func TestLoad_Defaults(t *testing.T) {
	svc := newTestService(t)
	snap, err := svc.Load(Params{Seed: 3, Records: 10, Team: []string{"Solo"}})
	require.NoError(t, err)

	assert.Equal(t, models.NewDateRange(mock.DefaultStart, mock.DefaultEnd), snap.Range)
	assert.Len(t, snap.Revenue.Bins, analytics.DefaultHistogramBins)
	assert.Equal(t, 15, svc.Params().Bins)
}

func TestLoad_InvalidRange(t *testing.T) {
	svc := newTestService(t)
	p := defaultParams()
	p.Range = models.NewDateRange(mock.DefaultEnd, mock.DefaultStart)

	_, err := svc.Load(p)
	assert.Error(t, err)
	assert.Nil(t, svc.Snapshot())
}

func TestLoad_Empty(t *testing.T) {
	svc := newTestService(t)
	p := defaultParams()
	p.Records = 0
	p.Team = nil

	snap, err := svc.Load(p)
	require.NoError(t, err)
	assert.False(t, snap.HasData())
	assert.Empty(t, snap.Revenue.Bins)
	assert.Equal(t, models.OperationsSummary{}, snap.Operations)
}

func TestFilter(t *testing.T) {
	svc := newTestService(t)
	snap, err := svc.Load(defaultParams())
	require.NoError(t, err)

	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)
	r := models.NewDateRange(start, end)

	res, err := svc.Filter(r)
	require.NoError(t, err)

	var want []models.SalesRecord
	for _, rec := range snap.Records {
		if r.Contains(rec.Date) {
			want = append(want, rec)
		}
	}
	assert.Equal(t, len(want), len(res.Records))
	assert.Equal(t, analytics.SummarizeSales(want), res.Summary)
	assert.Equal(t, res, svc.LastFilter())
}

func TestFilter_ReversedKeepsPrevious(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Load(defaultParams())
	require.NoError(t, err)
	before := svc.LastFilter()

	_, err = svc.Filter(models.NewDateRange(mock.DefaultEnd, mock.DefaultStart))
	assert.Error(t, err)
	assert.Equal(t, before, svc.LastFilter())
}

func TestLoad_KeepsFilterInsideRange(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Load(defaultParams())
	require.NoError(t, err)

	r := models.NewDateRange(
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	)
	_, err = svc.Filter(r)
	require.NoError(t, err)

	p := defaultParams()
	p.Seed++
	snap, err := svc.Load(p)
	require.NoError(t, err)

	last := svc.LastFilter()
	assert.Equal(t, r, last.Range)

	var want []models.SalesRecord
	for _, rec := range snap.Records {
		if r.Contains(rec.Date) {
			want = append(want, rec)
		}
	}
	assert.Len(t, last.Records, len(want))
	assert.Equal(t, analytics.SummarizeSales(want), last.Summary)
}

func TestLoad_FilterOutsideRangeWidens(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Load(defaultParams())
	require.NoError(t, err)

	_, err = svc.Filter(models.NewDateRange(
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	))
	require.NoError(t, err)

	p := defaultParams()
	p.Range = models.NewDateRange(
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
	)
	snap, err := svc.Load(p)
	require.NoError(t, err)

	last := svc.LastFilter()
	assert.Equal(t, p.Range, last.Range)
	assert.Len(t, last.Records, len(snap.Records))
}

func TestParamsEqual(t *testing.T) {
	a := defaultParams()
	b := defaultParams()
	b.Team = append([]string(nil), a.Team...)
	assert.True(t, a.Equal(b))

	b.Team[0] = "Zed"
	assert.False(t, a.Equal(b))

	c := defaultParams()
	c.Seed++
	assert.False(t, a.Equal(c))
}
