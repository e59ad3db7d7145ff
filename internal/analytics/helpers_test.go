package analytics

import (
	"fmt"
	"time"

	"github.com/ruralhealth/connect/backend/internal/models"
)

// baseDay is 09:00 UTC on day 1 of the fixtures
var baseDay = time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)

// day returns 09:00 UTC on fixture day n, with day 1 being baseDay
func day(n int) time.Time {
	return baseDay.AddDate(0, 0, n-1)
}

func entry(symptom string, severity int, at time.Time) models.SymptomEntry {
	return models.SymptomEntry{
		ID:       fmt.Sprintf("%s-%d", symptom, at.UnixNano()),
		Symptom:  symptom,
		Severity: severity,
		Date:     at,
	}
}

func symptomData(entries ...models.SymptomEntry) *models.PatientSymptomData {
	data := &models.PatientSymptomData{
		PatientID:   "patient-1",
		PatientName: "Test Patient",
		Symptoms:    map[string][]models.SymptomEntry{},
	}
	for _, e := range entries {
		data.Symptoms[e.Symptom] = append(data.Symptoms[e.Symptom], e)
	}
	return data
}

// series builds a symptom's entries from severities on consecutive days starting at day 1
func series(symptom string, severities ...int) []models.SymptomEntry {
	out := make([]models.SymptomEntry, len(severities))
	for i, s := range severities {
		out[i] = entry(symptom, s, day(i+1))
	}
	return out
}

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }
