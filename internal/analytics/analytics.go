// Package analytics computes the dashboard's aggregate statistics over in-memory records.
package analytics

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/models"
)

// DefaultHistogramBins is the bin count used for the revenue distribution.
const DefaultHistogramBins = 15

// Round2 rounds x to two decimals, ties to even.
func Round2(x float64) float64 {
	return math.RoundToEven(x*100) / 100
}

// SummarizeSales computes the headline KPIs for a set of sales records.
func SummarizeSales(records []models.SalesRecord) models.KPISummary {
	if len(records) == 0 {
		return models.KPISummary{}
	}

	leads := make([]float64, len(records))
	sales := make([]float64, len(records))
	revenue := make([]float64, len(records))
	conversion := make([]float64, len(records))
	for i, r := range records {
		leads[i] = float64(r.Leads)
		sales[i] = float64(r.Sales)
		revenue[i] = float64(r.Revenue)
		conversion[i] = r.ConversionRate
	}

	return models.KPISummary{
		Records:           len(records),
		TotalLeads:        int64(floats.Sum(leads)),
		TotalSales:        int64(floats.Sum(sales)),
		TotalRevenue:      int64(floats.Sum(revenue)),
		AverageConversion: Round2(stat.Mean(conversion, nil)),
	}
}

// SummarizeOperations computes the team-level operations figures.
func SummarizeOperations(rows []models.TeamMemberStats) models.OperationsSummary {
	if len(rows) == 0 {
		return models.OperationsSummary{}
	}

	days := make([]float64, len(rows))
	efficiency := make([]float64, len(rows))
	var summary models.OperationsSummary
	for i, r := range rows {
		days[i] = r.AvgDaysPerTask
		efficiency[i] = r.TaskEfficiency
		summary.TotalProjects += r.ProjectsCompleted
		summary.LateProjects += r.LateProjects
		summary.TotalTasks += r.TasksCompleted
	}

	summary.AverageTaskDays = Round2(stat.Mean(days, nil))
	summary.OverallEfficiency = Round2(stat.Mean(efficiency, nil))
	summary.LateProjectRate = LateProjectRate(summary.LateProjects, summary.TotalProjects)
	return summary
}

// LateProjectRate returns late/completed as a rounded percentage, or 0 with no completed projects.
func LateProjectRate(late, completed int) float64 {
	if completed == 0 {
		return 0
	}
	return Round2(float64(late) / float64(completed) * 100)
}

// RevenueHistogram buckets the values into equal-width bins spanning [min, max].
// Every bin is half-open except the last, which also holds max. A constant
// series is widened to [v-0.5, v+0.5].
func RevenueHistogram(values []float64, bins int) models.Histogram {
	if len(values) == 0 || bins <= 0 {
		return models.Histogram{}
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	edges := floats.Span(make([]float64, bins+1), lo, hi)
	dividers := slices.Clone(edges)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, sorted, nil)

	h := models.Histogram{Bins: make([]models.HistogramBin, bins), Total: len(values)}
	for i := range bins {
		h.Bins[i] = models.HistogramBin{
			Min:   edges[i],
			Max:   edges[i+1],
			Count: int(counts[i]),
		}
	}
	return h
}

// RevenueValues extracts the revenue column as floats.
func RevenueValues(records []models.SalesRecord) []float64 {
	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = float64(r.Revenue)
	}
	return values
}

// SalesSeries returns the per-day sales sums as a chartable series.
func SalesSeries(trend []models.DailySales) []float64 {
	series := make([]float64, len(trend))
	for i, d := range trend {
		series[i] = float64(d.Sales)
	}
	return series
}
