package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/ruralhealth/connect/backend/internal/models"
)

// MinCommonDaysForCorrelation is the small-sample guard: pairs observed on
// fewer common days have a correlation of exactly 0.
const MinCommonDaysForCorrelation = 3

// BuildCorrelationMatrix computes the pairwise Pearson correlation between
// every pair of the patient's symptoms over the calendar days both were
// recorded, with days taken in loc (nil means UTC). Symptoms are indexed in
// lexicographic order.
func BuildCorrelationMatrix(data *models.PatientSymptomData, loc *time.Location) *models.CorrelationMatrix {
	var symptoms []string
	if data != nil {
		symptoms = data.SymptomNames()
	}
	if symptoms == nil {
		symptoms = []string{}
	}

	days := dailySeverities(data, symptoms, loc)

	matrix := make([][]float64, len(symptoms))
	for i := range matrix {
		matrix[i] = make([]float64, len(symptoms))
		matrix[i][i] = 1
	}

	for i := 0; i < len(symptoms); i++ {
		for j := i + 1; j < len(symptoms); j++ {
			x, y := pairedSeries(days[i], days[j])
			r := 0.0
			if len(x) >= MinCommonDaysForCorrelation {
				r = pearson(x, y)
			}
			matrix[i][j] = r
			matrix[j][i] = r
		}
	}

	return &models.CorrelationMatrix{
		Symptoms: symptoms,
		Matrix:   matrix,
	}
}

// dailySeverities builds one day->severity map per symptom, in the given order
func dailySeverities(data *models.PatientSymptomData, symptoms []string, loc *time.Location) []map[string]int {
	days := make([]map[string]int, len(symptoms))
	for i, name := range symptoms {
		entries := append([]models.SymptomEntry(nil), data.Symptoms[name]...)
		sortEntries(entries)
		days[i] = latestByDay(entries, loc)
	}
	return days
}

// pairedSeries returns the severities of both maps on their common days,
// aligned in ascending day order
func pairedSeries(a, b map[string]int) (x, y []float64) {
	common := make([]string, 0, len(a))
	for day := range a {
		if _, ok := b[day]; ok {
			common = append(common, day)
		}
	}
	sort.Strings(common)

	x = make([]float64, len(common))
	y = make([]float64, len(common))
	for k, day := range common {
		x[k] = float64(a[day])
		y[k] = float64(b[day])
	}
	return x, y
}

// pearson computes the Pearson coefficient of two equal-length series.
// A constant series has no variance and yields 0.
func pearson(x, y []float64) float64 {
	n := len(x)
	if n == 0 || n != len(y) {
		return 0
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var numerator, denomX, denomY float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		numerator += dx * dy
		denomX += dx * dx
		denomY += dy * dy
	}

	if denomX == 0 || denomY == 0 {
		return 0
	}

	r := numerator / (math.Sqrt(denomX) * math.Sqrt(denomY))
	// rounding can push a perfect fit just past the bounds
	return math.Max(-1, math.Min(1, r))
}
