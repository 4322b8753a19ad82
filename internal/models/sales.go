// Package models defines data structures and domain types.
package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day layout used for dates in tables, inputs and storage.
const DateLayout = "2006-01-02"

// SalesRecord is one row of generated sales activity.
type SalesRecord struct {
	Date           time.Time
	Leads          int
	Sales          int
	ConversionRate float64 // percent, two decimals
	Revenue        int
}

// DailySales is the per-date sum of all sales records sharing a date.
type DailySales struct {
	Date    time.Time
	Records int
	Leads   int
	Sales   int
	Revenue int
}

// DateRange is an inclusive calendar-day range. The zero value matches everything.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a range from two calendar days, truncating any time of day.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: Day(start), End: Day(end)}
}

// ParseDateRange parses two YYYY-MM-DD strings into a range.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	return NewDateRange(s, e), nil
}

// IsZero reports whether the range is unset.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Validate returns an error when the start day falls after the end day.
func (r DateRange) Validate() error {
	if r.IsZero() {
		return nil
	}
	if r.Start.After(r.End) {
		return fmt.Errorf("start date %s is after end date %s",
			r.Start.Format(DateLayout), r.End.Format(DateLayout))
	}
	return nil
}

// Contains reports whether t's calendar day lies within the range, both ends included.
func (r DateRange) Contains(t time.Time) bool {
	if r.IsZero() {
		return true
	}
	d := Day(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days returns the number of calendar days in the range.
func (r DateRange) Days() int {
	if r.IsZero() || r.Start.After(r.End) {
		return 0
	}
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// String returns "start → end".
func (r DateRange) String() string {
	if r.IsZero() {
		return "all dates"
	}
	return r.Start.Format(DateLayout) + " → " + r.End.Format(DateLayout)
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SalesColumns are the column headers of a sales table, in field order.
var SalesColumns = []string{"Date", "Leads", "Sales", "Conversion Rate (%)", "Revenue"}
