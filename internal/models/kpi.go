package models

import "time"

// KPISummary holds the headline sales indicators.
type KPISummary struct {
	Records           int
	TotalLeads        int64
	TotalSales        int64
	TotalRevenue      int64
	AverageConversion float64
}

// HistogramBin is one equal-width bucket. Max is exclusive except on the last bin.
type HistogramBin struct {
	Min   float64
	Max   float64
	Count int
}

// Histogram is a frequency distribution over equal-width bins.
type Histogram struct {
	Bins  []HistogramBin
	Total int
}

// Counts returns the bin counts as floats, suitable for charting.
func (h Histogram) Counts() []float64 {
	counts := make([]float64, len(h.Bins))
	for i, b := range h.Bins {
		counts[i] = float64(b.Count)
	}
	return counts
}

// MaxCount returns the largest bin count.
func (h Histogram) MaxCount() int {
	maxCount := 0
	for _, b := range h.Bins {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	return maxCount
}

// Snapshot is a consistent view of the generated dataset and everything derived from it.
type Snapshot struct {
	GeneratedAt time.Time
	Seed        uint64
	Range       DateRange
	Records     []SalesRecord
	Summary     KPISummary
	Trend       []DailySales
	Revenue     Histogram
	Team        []TeamMemberStats
	Operations  OperationsSummary
}

// HasData reports whether the snapshot carries any sales records.
func (s *Snapshot) HasData() bool {
	return s != nil && len(s.Records) > 0
}

// FilterResult is the outcome of applying a date range to the sales records.
type FilterResult struct {
	Range   DateRange
	Records []SalesRecord
	Summary KPISummary
}
