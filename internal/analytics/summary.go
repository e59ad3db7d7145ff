package analytics

import (
	"math"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/ruralhealth/connect/backend/internal/models"
)

// TrendSlopeThreshold is the least-squares slope, in severity points per
// report, below which a symptom is considered stable
const TrendSlopeThreshold = 0.1

// SummarizeSymptoms returns one summary per tracked symptom, in lexicographic
// order, over the window of r ending at now. A symptom without entries in
// the window is still listed with a zero count.
func SummarizeSymptoms(data *models.PatientSymptomData, r TimeRange, now time.Time) []models.SymptomSummary {
	window := ResolveWindow(r, now)

	summaries := make([]models.SymptomSummary, 0)
	if data == nil {
		return summaries
	}

	for _, symptom := range data.SymptomNames() {
		entries := entriesInWindow(data.Symptoms[symptom], window)
		summary := models.SymptomSummary{
			Symptom: symptom,
			Count:   len(entries),
			Trend:   models.TrendStable,
		}
		if len(entries) == 0 {
			summaries = append(summaries, summary)
			continue
		}

		severities := make(stats.Float64Data, len(entries))
		for i, e := range entries {
			severities[i] = float64(e.Severity)
		}

		// stats only errors on empty input, ruled out above
		mean, _ := severities.Mean()
		minimum, _ := severities.Min()
		maximum, _ := severities.Max()

		latest := entries[len(entries)-1]
		latestSeverity := latest.Severity
		latestDate := latest.Date

		summary.Average = mean
		summary.Min = int(minimum)
		summary.Max = int(maximum)
		summary.LatestSeverity = &latestSeverity
		summary.LatestDate = &latestDate
		summary.Trend = determineTrend(severities)
		summaries = append(summaries, summary)
	}

	return summaries
}

// determineTrend classifies the least-squares slope of values over their index
func determineTrend(values []float64) models.TrendDirection {
	if len(values) < 2 {
		return models.TrendStable
	}

	// Simple linear regression to determine trend
	n := float64(len(values))
	sumX := 0.0
	sumY := 0.0
	sumXY := 0.0
	sumXX := 0.0

	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	slope := (n*sumXY - sumX*sumY) / (n*sumXX - sumX*sumX)

	// Use threshold to determine trend
	if math.Abs(slope) < TrendSlopeThreshold {
		return models.TrendStable
	} else if slope > 0 {
		return models.TrendIncreasing
	}
	return models.TrendDecreasing
}
