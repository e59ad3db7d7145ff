package analytics

import (
	"errors"
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/ruralhealth/connect/backend/internal/models"
)

// DefaultMedicationWindowDays is the before/after window used when the
// caller passes a non-positive window
const DefaultMedicationWindowDays = 30

// EffectThreshold is the mean severity change, in points, at which a
// medication is classified as having improved or worsened a symptom
const EffectThreshold = 1.0

// ErrNotMedicationEvent is returned when the effect analysis is asked to
// anchor on an event that is not a medication start or stop
var ErrNotMedicationEvent = errors.New("event is not a medication start or stop")

// AnalyzeMedicationEffect compares a symptom's mean severity in the window
// before a medication event with the window after it.
//
// The before set covers [event-window, event) and the after set covers
// (event, event+window]; reports at the event's own instant count in
// neither. An empty set has a mean of 0, which is indistinguishable from a
// real zero by the average alone: check BeforeCount and AfterCount.
func AnalyzeMedicationEffect(event models.TimelineEvent, events []models.TimelineEvent, symptom string, windowDays int) (*models.MedicationEffect, error) {
	if !event.Type.IsMedication() {
		return nil, fmt.Errorf("%w: %s has type %s", ErrNotMedicationEvent, event.ID, event.Type)
	}
	if windowDays <= 0 {
		windowDays = DefaultMedicationWindowDays
	}

	from := event.Date.AddDate(0, 0, -windowDays)
	to := event.Date.AddDate(0, 0, windowDays)

	var before, after []float64
	for _, e := range events {
		if e.Type != models.EventSymptomReport || e.Severity == nil {
			continue
		}
		if name, ok := e.Metadata["symptom"].String(); !ok || name != symptom {
			continue
		}

		switch {
		case !e.Date.Before(from) && e.Date.Before(event.Date):
			before = append(before, float64(*e.Severity))
		case e.Date.After(event.Date) && !e.Date.After(to):
			after = append(after, float64(*e.Severity))
		}
	}

	beforeAvg := meanOrZero(before)
	afterAvg := meanOrZero(after)
	change := afterAvg - beforeAvg

	return &models.MedicationEffect{
		MedicationEventID: event.ID,
		Symptom:           symptom,
		WindowDays:        windowDays,
		BeforeAverage:     beforeAvg,
		AfterAverage:      afterAvg,
		BeforeCount:       len(before),
		AfterCount:        len(after),
		Change:            change,
		Effect:            classifyEffect(change),
	}, nil
}

func classifyEffect(change float64) models.MedicationEffectClass {
	switch {
	case change <= -EffectThreshold:
		return models.EffectImproved
	case change >= EffectThreshold:
		return models.EffectWorsened
	}
	return models.EffectUnchanged
}

// meanOrZero returns the arithmetic mean, or 0 for an empty set
func meanOrZero(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return mean
}
