package analytics

import (
	"sort"
	"time"

	"github.com/ruralhealth/connect/backend/internal/models"
)

// SeriesPalette is the fixed colour cycle assigned to trend series by
// selection order
var SeriesPalette = []string{
	"#3b82f6",
	"#ef4444",
	"#10b981",
	"#f59e0b",
	"#8b5cf6",
	"#ec4899",
	"#06b6d4",
	"#84cc16",
}

// SeriesColor returns the palette colour for the series at position i
func SeriesColor(i int) string {
	return SeriesPalette[i%len(SeriesPalette)]
}

// BuildTrendSeries builds one forward-filled severity series per selected
// symptom over the calendar days of the range ending at now.
//
// A day with a recorded entry takes that entry's severity (the latest entry
// of the day when there are several). A day without one carries the last
// known value forward. Days before the first observation in the window stay
// nil; nothing is back-filled across the window start.
func BuildTrendSeries(data *models.PatientSymptomData, symptoms []string, r TimeRange, now time.Time) *models.TrendData {
	window := ResolveWindow(r, now)
	dates := DateLabels(window.Start, window.End)

	selected := dedupe(symptoms)
	series := make([]models.SymptomSeries, 0, len(selected))
	for i, symptom := range selected {
		var entries []models.SymptomEntry
		if data != nil {
			entries = data.Symptoms[symptom]
		}
		series = append(series, models.SymptomSeries{
			Symptom: symptom,
			Color:   SeriesColor(i),
			Values:  forwardFill(dates, entriesInWindow(entries, window), now.Location()),
		})
	}

	return &models.TrendData{
		Range:  string(r),
		Start:  window.Start,
		End:    window.End,
		Dates:  dates,
		Series: series,
	}
}

// forwardFill aligns sorted entries on the date axis
func forwardFill(dates []string, sorted []models.SymptomEntry, loc *time.Location) []*int {
	byDay := latestByDay(sorted, loc)

	values := make([]*int, len(dates))
	var last *int
	for i, date := range dates {
		if severity, ok := byDay[date]; ok {
			v := severity
			last = &v
		}
		if last != nil {
			v := *last
			values[i] = &v
		}
	}
	return values
}

// entriesInWindow returns the entries inside the window sorted ascending by date
func entriesInWindow(entries []models.SymptomEntry, window Window) []models.SymptomEntry {
	out := make([]models.SymptomEntry, 0, len(entries))
	for _, e := range entries {
		if window.Contains(e.Date) {
			out = append(out, e)
		}
	}
	sortEntries(out)
	return out
}

// sortEntries sorts entries ascending by date, keeping insertion order on ties
func sortEntries(entries []models.SymptomEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
}

// latestByDay maps day keys in loc to severities. A nil loc means UTC, so
// entries recorded with different offsets always share one calendar. Entries must be sorted ascending so the latest entry
// of a day overwrites earlier ones.
func latestByDay(sorted []models.SymptomEntry, loc *time.Location) map[string]int {
	byDay := make(map[string]int, len(sorted))
	for _, e := range sorted {
		byDay[DayKey(e.Date.In(dayLocation(loc)))] = e.Severity
	}
	return byDay
}

// dedupe collapses duplicate names while preserving first-seen order
func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// dayLocation is the calendar every day key is computed in
func dayLocation(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
