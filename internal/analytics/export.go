package analytics

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ruralhealth/connect/backend/internal/models"
)

// SymptomCSVHeader is the header row of a symptom export
var SymptomCSVHeader = []string{"Date", "Symptom", "Severity", "Notes"}

// WriteSymptomCSV writes every symptom entry of the patient as one CSV row,
// ordered by date. Entries sharing a date keep symptom name order.
func WriteSymptomCSV(w io.Writer, data *models.PatientSymptomData) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(SymptomCSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	var entries []models.SymptomEntry
	if data != nil {
		for _, name := range data.SymptomNames() {
			entries = append(entries, data.Symptoms[name]...)
		}
	}
	sortEntries(entries)

	for _, e := range entries {
		notes := ""
		if e.Notes != nil {
			notes = *e.Notes
		}
		row := []string{DayKey(e.Date), e.Symptom, strconv.Itoa(e.Severity), notes}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row for entry %s: %w", e.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
