// Package analytics implements the symptom analytics core: trend series,
// correlation, heatmap bucketing, the unified clinical timeline and
// medication-effect analysis.
//
// Every function is a pure computation over an immutable snapshot of a
// patient's data. The reference time is always passed in explicitly, so the
// package never reads the system clock and is safe for concurrent use.
package analytics

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the calendar-day key used for axis labels and day matching
const DateLayout = "2006-01-02"

// MonthLayout is the key used when grouping by month
const MonthLayout = "2006-01"

// TimeRange is a named window relative to a reference time
type TimeRange string

const (
	Range7Days   TimeRange = "7days"
	Range30Days  TimeRange = "30days"
	Range90Days  TimeRange = "90days"
	Range6Months TimeRange = "6months"
	Range1Year   TimeRange = "1year"
	// RangeAll reaches back 10 years. It stands in for an unbounded window
	// and is not a real boundary.
	RangeAll TimeRange = "all"
)

// DefaultRange is used when a caller does not select a range
const DefaultRange = Range30Days

// ErrUnknownTimeRange is returned when a range name is not recognized
var ErrUnknownTimeRange = errors.New("unknown time range")

// ParseTimeRange validates a range name. An empty string yields DefaultRange.
func ParseTimeRange(s string) (TimeRange, error) {
	if s == "" {
		return DefaultRange, nil
	}
	r := TimeRange(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTimeRange, s)
	}
	return r, nil
}

// Valid reports whether r is one of the known ranges
func (r TimeRange) Valid() bool {
	switch r {
	case Range7Days, Range30Days, Range90Days, Range6Months, Range1Year, RangeAll:
		return true
	}
	return false
}

// StartFrom returns the start of the window that ends at now.
// It panics on an unknown range: callers validate input with ParseTimeRange.
func (r TimeRange) StartFrom(now time.Time) time.Time {
	switch r {
	case Range7Days:
		return now.AddDate(0, 0, -7)
	case Range30Days:
		return now.AddDate(0, 0, -30)
	case Range90Days:
		return now.AddDate(0, 0, -90)
	case Range6Months:
		return now.AddDate(0, -6, 0)
	case Range1Year:
		return now.AddDate(-1, 0, 0)
	case RangeAll:
		return now.AddDate(-10, 0, 0)
	}
	panic(fmt.Sprintf("analytics: unknown time range %q", string(r)))
}

// Window is an inclusive [Start, End] interval
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies within the window, bounds included
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// ResolveWindow resolves a named range against now and widens it to whole
// calendar days in now's location.
func ResolveWindow(r TimeRange, now time.Time) Window {
	start := r.StartFrom(now)
	return Window{
		Start: StartOfDay(start),
		End:   EndOfDay(now),
	}
}

// StartOfDay returns midnight of t's calendar day in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's calendar day
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// DayKey returns the calendar-day key of t in t's location
func DayKey(t time.Time) string {
	return t.Format(DateLayout)
}

// SameDay reports whether a and b fall on the same calendar day
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DateLabels returns one label per calendar day from start to end inclusive.
// The result is empty when end falls on a day before start.
func DateLabels(start, end time.Time) []string {
	first := StartOfDay(start)
	last := StartOfDay(end.In(start.Location()))
	if last.Before(first) {
		return []string{}
	}

	labels := make([]string, 0, int(last.Sub(first).Hours()/24)+1)
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		labels = append(labels, DayKey(day))
	}
	return labels
}
