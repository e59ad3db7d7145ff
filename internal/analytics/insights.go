package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ruralhealth/connect/backend/internal/models"
)

const (
	// Correlation thresholds
	CorrelationThresholdHigh   = 0.5
	CorrelationThresholdMedium = 0.3

	// P-value thresholds
	PValueThresholdHigh   = 0.01
	PValueThresholdMedium = 0.05

	// Sample sizes that must be exceeded for each confidence level
	SampleSizeHigh   = 30
	SampleSizeMedium = 14
)

// CorrelationInsights lists every symptom pair with enough common days whose
// coefficient magnitude is at least minAbs, strongest first. Each insight
// carries a two-tailed p-value from the Student t distribution with n-2
// degrees of freedom. Days are taken in loc (nil means UTC).
func CorrelationInsights(data *models.PatientSymptomData, minAbs float64, loc *time.Location) []models.CorrelationInsight {
	insights := make([]models.CorrelationInsight, 0)
	if data == nil {
		return insights
	}

	symptoms := data.SymptomNames()
	days := dailySeverities(data, symptoms, loc)

	for i := 0; i < len(symptoms); i++ {
		for j := i + 1; j < len(symptoms); j++ {
			x, y := pairedSeries(days[i], days[j])
			n := len(x)
			if n < MinCommonDaysForCorrelation {
				continue
			}

			r := pearson(x, y)
			if math.Abs(r) < minAbs {
				continue
			}

			pValue := correlationPValue(r, n)
			direction := correlationDirection(r)
			insights = append(insights, models.CorrelationInsight{
				SymptomA:    symptoms[i],
				SymptomB:    symptoms[j],
				Coefficient: r,
				PValue:      pValue,
				SampleSize:  n,
				Confidence:  determineConfidence(r, pValue, n),
				Direction:   direction,
				Description: buildCorrelationDescription(symptoms[i], symptoms[j], r, direction),
			})
		}
	}

	// Sort by absolute correlation value (strongest first)
	sort.SliceStable(insights, func(a, b int) bool {
		return math.Abs(insights[a].Coefficient) > math.Abs(insights[b].Coefficient)
	})

	return insights
}

// correlationPValue returns the two-tailed p-value of r over n paired samples
func correlationPValue(r float64, n int) float64 {
	if math.Abs(r) >= 1 {
		return 0
	}
	if n < MinCommonDaysForCorrelation {
		return 1
	}

	df := float64(n - 2)
	t := r * math.Sqrt(df/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * (1 - dist.CDF(math.Abs(t)))
	return math.Max(0, math.Min(1, p))
}

func correlationDirection(r float64) models.Direction {
	switch {
	case r > 0:
		return models.DirectionPositive
	case r < 0:
		return models.DirectionNegative
	}
	return models.DirectionNeutral
}

// determineConfidence determines confidence level based on r, p-value, and sample size
func determineConfidence(r, pValue float64, sampleSize int) models.Confidence {
	absR := math.Abs(r)

	if pValue < PValueThresholdHigh && sampleSize > SampleSizeHigh && absR > CorrelationThresholdHigh {
		return models.ConfidenceHigh
	}
	if pValue < PValueThresholdMedium && sampleSize > SampleSizeMedium && absR > CorrelationThresholdMedium {
		return models.ConfidenceMedium
	}
	return models.ConfidenceLow
}

// buildCorrelationDescription creates a human-readable description
func buildCorrelationDescription(nameA, nameB string, r float64, direction models.Direction) string {
	strength := "somewhat"
	if math.Abs(r) > 0.7 {
		strength = "strongly"
	} else if math.Abs(r) > 0.5 {
		strength = "moderately"
	}

	switch direction {
	case models.DirectionPositive:
		return fmt.Sprintf("%s and %s are %s positively correlated (r=%.2f)", nameA, nameB, strength, r)
	case models.DirectionNegative:
		return fmt.Sprintf("%s and %s are %s negatively correlated (r=%.2f)", nameA, nameB, strength, r)
	}
	return fmt.Sprintf("%s and %s show no correlation", nameA, nameB)
}
