// Package mock generates the synthetic sales and team operations data shown by the dashboard.
package mock

import (
	"math/rand/v2"
	"time"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/analytics"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/models"
)

// Value ranges. Integer upper bounds are exclusive.
const (
	minLeads, maxLeads           = 50, 200
	minSales, maxSales           = 10, 50
	minConversion, maxConversion = 10.0, 30.0
	minRevenue, maxRevenue       = 1000, 5000

	minTasks, maxTasks           = 5, 15
	minTaskDays, maxTaskDays     = 3.0, 7.0
	minProjects, maxProjects     = 2, 8
	minLate, maxLate             = 0, 3
	minEfficiency, maxEfficiency = 70.0, 95.0
)

// Defaults used when configuration leaves a value unset.
const (
	DefaultSeed    uint64 = 42
	DefaultRecords        = 100
)

var (
	// DefaultStart is the first day of the default generated range.
	DefaultStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	// DefaultEnd is the last day of the default generated range.
	DefaultEnd = time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC)
	// DefaultTeam is the default operations roster.
	DefaultTeam = []string{"Alice", "Bob", "Charlie", "Diana", "Ethan"}
)

// Generator draws every column from one seeded stream, so a seed fully determines the output.
type Generator struct {
	seed uint64
	rng  *rand.Rand
}

// New creates a generator for the given seed.
func New(seed uint64) *Generator {
	return &Generator{
		seed: seed,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Seed returns the seed the generator was created with.
func (g *Generator) Seed() uint64 {
	return g.seed
}

// Sales returns n sales records dated within [start, end]. Columns are drawn
// one after another: all dates, then all leads, sales, conversion rates and revenue.
func (g *Generator) Sales(n int, start, end time.Time) []models.SalesRecord {
	if n <= 0 {
		return []models.SalesRecord{}
	}

	start, end = models.Day(start), models.Day(end)
	if start.After(end) {
		start, end = end, start
	}
	days := models.NewDateRange(start, end).Days()

	records := make([]models.SalesRecord, n)
	for i := range records {
		records[i].Date = start.AddDate(0, 0, g.rng.IntN(days))
	}
	for i := range records {
		records[i].Leads = g.intRange(minLeads, maxLeads)
	}
	for i := range records {
		records[i].Sales = g.intRange(minSales, maxSales)
	}
	for i := range records {
		records[i].ConversionRate = analytics.Round2(g.uniform(minConversion, maxConversion))
	}
	for i := range records {
		records[i].Revenue = g.intRange(minRevenue, maxRevenue)
	}
	return records
}

// Operations returns one row of monthly stats per team member, drawn column by column.
func (g *Generator) Operations(members []string) []models.TeamMemberStats {
	rows := make([]models.TeamMemberStats, len(members))
	for i, name := range members {
		rows[i].Name = name
	}
	for i := range rows {
		rows[i].TasksCompleted = g.intRange(minTasks, maxTasks)
	}
	for i := range rows {
		rows[i].AvgDaysPerTask = analytics.Round2(g.uniform(minTaskDays, maxTaskDays))
	}
	for i := range rows {
		rows[i].ProjectsCompleted = g.intRange(minProjects, maxProjects)
	}
	for i := range rows {
		rows[i].LateProjects = g.intRange(minLate, maxLate)
	}
	for i := range rows {
		rows[i].TaskEfficiency = analytics.Round2(g.uniform(minEfficiency, maxEfficiency))
	}
	return rows
}

// intRange returns an integer in [lo, hi).
func (g *Generator) intRange(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo)
}

// uniform returns a float in [lo, hi).
func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*g.rng.Float64()
}
