package analytics

import (
	"time"

	"github.com/ruralhealth/connect/backend/internal/models"
)

// BuildHeatmap buckets recorded severities into (symptom, day) cells over the
// window of r ending at now. Only days with an actual entry produce a cell;
// unlike the trend series nothing is forward-filled, so a missing cell means
// "no data" rather than a low severity.
func BuildHeatmap(data *models.PatientSymptomData, r TimeRange, now time.Time) *models.HeatmapData {
	window := ResolveWindow(r, now)
	dates := DateLabels(window.Start, window.End)

	symptoms := []string{}
	if data != nil {
		symptoms = data.SymptomNames()
	}

	cells := make([]models.HeatmapCell, 0)
	for _, symptom := range symptoms {
		byDay := latestByDay(entriesInWindow(data.Symptoms[symptom], window), now.Location())
		for _, date := range dates {
			severity, ok := byDay[date]
			if !ok {
				continue
			}
			cells = append(cells, models.HeatmapCell{
				Symptom:  symptom,
				Date:     date,
				Severity: severity,
			})
		}
	}

	return &models.HeatmapData{
		Symptoms: symptoms,
		Dates:    dates,
		Cells:    cells,
	}
}
