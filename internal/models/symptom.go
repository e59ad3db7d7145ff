package models

import (
	"sort"
	"time"
)

// Severity bounds for a symptom report
const (
	MinSeverity = 1
	MaxSeverity = 10
)

// SymptomEntry is one timestamped severity report for a symptom.
// Entries are immutable once recorded.
type SymptomEntry struct {
	ID       string    `json:"id" yaml:"id"`
	Symptom  string    `json:"symptom" yaml:"symptom"`
	Severity int       `json:"severity" yaml:"severity"`
	Date     time.Time `json:"date" yaml:"date"`
	Notes    *string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// PatientSymptomData is the symptom log of a single patient.
// Every entry under Symptoms[name] has Symptom == name.
type PatientSymptomData struct {
	PatientID   string                    `json:"patient_id" yaml:"patient_id"`
	PatientName string                    `json:"patient_name" yaml:"patient_name"`
	Symptoms    map[string][]SymptomEntry `json:"symptoms" yaml:"symptoms"`
}

// SymptomNames returns the tracked symptom names in lexicographic order
func (d *PatientSymptomData) SymptomNames() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.Symptoms))
	for name := range d.Symptoms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EntryCount returns the total number of entries across all symptoms
func (d *PatientSymptomData) EntryCount() int {
	if d == nil {
		return 0
	}
	total := 0
	for _, entries := range d.Symptoms {
		total += len(entries)
	}
	return total
}

// Clone returns a deep copy so callers can hand out immutable snapshots
func (d *PatientSymptomData) Clone() *PatientSymptomData {
	if d == nil {
		return nil
	}
	out := &PatientSymptomData{
		PatientID:   d.PatientID,
		PatientName: d.PatientName,
		Symptoms:    make(map[string][]SymptomEntry, len(d.Symptoms)),
	}
	for name, entries := range d.Symptoms {
		copied := make([]SymptomEntry, len(entries))
		for i, e := range entries {
			copied[i] = e
			if e.Notes != nil {
				notes := *e.Notes
				copied[i].Notes = &notes
			}
		}
		out.Symptoms[name] = copied
	}
	return out
}

// PatientSummary is the list-view shape of a patient
type PatientSummary struct {
	PatientID      string     `json:"patient_id"`
	PatientName    string     `json:"patient_name"`
	SymptomCount   int        `json:"symptom_count"`
	EntryCount     int        `json:"entry_count"`
	LastReportedAt *time.Time `json:"last_reported_at,omitempty"`
}

// CreateSymptomEntryRequest represents the request to record a symptom
type CreateSymptomEntryRequest struct {
	ID       string    `json:"id" binding:"omitempty,uuid"`
	Symptom  string    `json:"symptom" binding:"required,max=100"`
	Severity int       `json:"severity" binding:"required,min=1,max=10"`
	Date     time.Time `json:"date" binding:"required"`
	Notes    *string   `json:"notes" binding:"omitempty,max=2000"`
}
