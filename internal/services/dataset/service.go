// Package dataset generates the mock dataset, loads it into the table store
// and derives the dashboard snapshot from it.
package dataset

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/analytics"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/db"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/logger"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/mock"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/models"
)

// Params determine the generated dataset and how it is summarized.
type Params struct {
	Seed    uint64
	Records int
	Range   models.DateRange
	Team    []string
	Bins    int
}

// Equal reports whether two parameter sets produce the same snapshot.
func (p Params) Equal(o Params) bool {
	return p.Seed == o.Seed &&
		p.Records == o.Records &&
		p.Range == o.Range &&
		p.Bins == o.Bins &&
		slices.Equal(p.Team, o.Team)
}

// Service owns the table store and the current snapshot.
type Service struct {
	mu       sync.RWMutex
	store    *db.DB
	params   Params
	snapshot *models.Snapshot
	filter   models.FilterResult
}

// New creates a dataset service on top of the given store.
func New(store *db.DB) *Service {
	return &Service{store: store}
}

// Load regenerates the dataset, replaces the stored tables and rebuilds the
// snapshot. The remembered filter range is re-applied to the new records when
// it lies inside the generated range, otherwise it widens to the full range.
func (s *Service) Load(p Params) (*models.Snapshot, error) {
	if p.Range.IsZero() {
		p.Range = models.NewDateRange(mock.DefaultStart, mock.DefaultEnd)
	}
	if err := p.Range.Validate(); err != nil {
		return nil, err
	}
	if p.Bins <= 0 {
		p.Bins = analytics.DefaultHistogramBins
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	gen := mock.New(p.Seed)
	sales := gen.Sales(p.Records, p.Range.Start, p.Range.End)
	team := gen.Operations(p.Team)

	if err := s.store.ReplaceDataset(sales, team); err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	snap, err := s.buildSnapshot(p)
	if err != nil {
		return nil, err
	}

	fr := p.Range
	if prev := s.filter.Range; !prev.IsZero() && p.Range.Contains(prev.Start) && p.Range.Contains(prev.End) {
		fr = prev
	}
	filtered, err := s.store.GetSalesRecords(fr)
	if err != nil {
		return nil, err
	}

	s.params = p
	s.snapshot = snap
	s.filter = models.FilterResult{
		Range:   fr,
		Records: filtered,
		Summary: analytics.SummarizeSales(filtered),
	}

	logger.Info("dataset generated",
		"seed", p.Seed,
		"records", len(snap.Records),
		"range", p.Range.String(),
		"team", len(snap.Team),
	)
	return snap, nil
}

func (s *Service) buildSnapshot(p Params) (*models.Snapshot, error) {
	records, err := s.store.GetSalesRecords(models.DateRange{})
	if err != nil {
		return nil, err
	}
	trend, err := s.store.GetDailySales()
	if err != nil {
		return nil, err
	}
	revenue, err := s.store.GetRevenueValues()
	if err != nil {
		return nil, err
	}
	team, err := s.store.GetOperations()
	if err != nil {
		return nil, err
	}

	return &models.Snapshot{
		GeneratedAt: time.Now(),
		Seed:        p.Seed,
		Range:       p.Range,
		Records:     records,
		Summary:     analytics.SummarizeSales(records),
		Trend:       trend,
		Revenue:     analytics.RevenueHistogram(revenue, p.Bins),
		Team:        team,
		Operations:  analytics.SummarizeOperations(team),
	}, nil
}

// Snapshot returns the current snapshot, or nil before the first Load.
func (s *Service) Snapshot() *models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Params returns the parameters of the current snapshot.
func (s *Service) Params() Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.params
	p.Team = slices.Clone(p.Team)
	return p
}

// Filter selects the records whose date lies in r, both ends inclusive, and
// remembers the result. A reversed range is rejected and the previous result kept.
func (s *Service) Filter(r models.DateRange) (models.FilterResult, error) {
	if err := r.Validate(); err != nil {
		return models.FilterResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.GetSalesRecords(r)
	if err != nil {
		return models.FilterResult{}, err
	}

	s.filter = models.FilterResult{
		Range:   r,
		Records: records,
		Summary: analytics.SummarizeSales(records),
	}
	logger.Debug("filter applied", "range", r.String(), "records", len(records))
	return s.filter, nil
}

// LastFilter returns the most recently applied filter result.
func (s *Service) LastFilter() models.FilterResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}
