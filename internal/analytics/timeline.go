package analytics

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ruralhealth/connect/backend/internal/models"
)

// NotePreviewLength is the rune length a clinical note is truncated to in
// timeline descriptions
const NotePreviewLength = 100

// Event id prefixes. Ids are derived from source records so rebuilding a
// timeline from the same inputs yields the same ids.
const (
	symptomEventPrefix         = "symptom-"
	conditionEventPrefix       = "condition-"
	medicationStartEventPrefix = "medication-start-"
	medicationEndEventPrefix   = "medication-end-"
	labEventPrefix             = "lab-"
	vitalEventPrefix           = "vital-"
	noteEventPrefix            = "note-"
)

// BuildTimeline merges a patient's symptom log and medical record into one
// chronological event list. Either input may be nil. Events sharing an
// instant keep their insertion order: symptoms, conditions, medications,
// labs, vitals, then notes.
func BuildTimeline(symptoms *models.PatientSymptomData, record *models.PatientMedicalRecord) []models.TimelineEvent {
	events := make([]models.TimelineEvent, 0)

	if symptoms != nil {
		for _, name := range symptoms.SymptomNames() {
			for _, entry := range symptoms.Symptoms[name] {
				events = append(events, symptomEvent(name, entry))
			}
		}
	}

	if record != nil {
		for _, c := range record.Conditions {
			events = append(events, conditionEvent(c))
		}
		for _, m := range record.Medications {
			events = append(events, medicationEvents(m, record.Conditions)...)
		}
		for _, l := range record.LabResults {
			events = append(events, labEvent(l))
		}
		for _, v := range record.VitalSigns {
			events = append(events, vitalEvent(v))
		}
		for _, n := range record.Notes {
			events = append(events, noteEvent(n))
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})

	return events
}

// SymptomEventID returns the timeline id of a symptom entry
func SymptomEventID(symptom string, entry models.SymptomEntry) string {
	return symptomEventPrefix + symptom + "-" + strconv.FormatInt(entry.Date.UnixMilli(), 10)
}

func symptomEvent(name string, entry models.SymptomEntry) models.TimelineEvent {
	severity := entry.Severity
	description := fmt.Sprintf("Severity: %d/%d", entry.Severity, models.MaxSeverity)
	if entry.Notes != nil && *entry.Notes != "" {
		description = *entry.Notes
	}

	return models.TimelineEvent{
		ID:          SymptomEventID(name, entry),
		Type:        models.EventSymptomReport,
		Date:        entry.Date,
		Title:       "Reported " + name,
		Description: description,
		Severity:    &severity,
		Category:    models.CategorySymptoms,
		Metadata: models.Metadata{
			"symptom":  models.StringValue(name),
			"entry_id": models.StringValue(entry.ID),
		},
	}
}

func conditionEvent(c models.Condition) models.TimelineEvent {
	description := "Status: " + string(c.Status)
	if c.Notes != nil && *c.Notes != "" {
		description = *c.Notes
	}

	return models.TimelineEvent{
		ID:          conditionEventPrefix + c.ID,
		Type:        models.EventConditionDiagnosis,
		Date:        c.DiagnosisDate,
		Title:       "Diagnosed: " + c.Name,
		Description: description,
		Status:      string(c.Status),
		Category:    models.CategoryDiagnoses,
		Metadata: models.Metadata{
			"condition": models.StringValue(c.Name),
		},
	}
}

// medicationEvents returns the start event and, when the course has ended,
// the stop event. The two reference each other.
func medicationEvents(m models.Medication, conditions []models.Condition) []models.TimelineEvent {
	startID := medicationStartEventPrefix + m.ID
	endID := medicationEndEventPrefix + m.ID

	related := make([]string, 0)
	if m.ForCondition != nil {
		for _, c := range conditions {
			if c.Name == *m.ForCondition {
				related = append(related, conditionEventPrefix+c.ID)
			}
		}
	}
	if m.EndDate != nil {
		related = append(related, endID)
	}

	description := fmt.Sprintf("%s, %s", m.Dosage, m.Frequency)
	if m.Notes != nil && *m.Notes != "" {
		description += ". " + *m.Notes
	}

	metadata := models.Metadata{
		"medication": models.StringValue(m.Name),
		"dosage":     models.StringValue(m.Dosage),
		"frequency":  models.StringValue(m.Frequency),
	}
	if m.ForCondition != nil {
		metadata["for_condition"] = models.StringValue(*m.ForCondition)
	}

	start := models.TimelineEvent{
		ID:          startID,
		Type:        models.EventMedicationStarted,
		Date:        m.StartDate,
		Title:       "Started " + m.Name,
		Description: description,
		Status:      string(m.Status),
		Category:    models.CategoryMedications,
		RelatedTo:   nilIfEmpty(related),
		Metadata:    metadata,
	}
	if m.EndDate == nil {
		return []models.TimelineEvent{start}
	}

	stop := models.TimelineEvent{
		ID:          endID,
		Type:        models.EventMedicationStopped,
		Date:        *m.EndDate,
		Title:       "Stopped " + m.Name,
		Description: fmt.Sprintf("%s course ended", m.Name),
		Status:      string(m.Status),
		Category:    models.CategoryMedications,
		RelatedTo:   []string{startID},
		Metadata: models.Metadata{
			"medication": models.StringValue(m.Name),
		},
	}
	return []models.TimelineEvent{start, stop}
}

func labEvent(l models.LabResult) models.TimelineEvent {
	status := "normal"
	if l.Abnormal {
		status = "abnormal"
	}

	description := strings.TrimSpace(l.Value + " " + l.Unit)
	if l.ReferenceRange != nil && *l.ReferenceRange != "" {
		description += " (reference: " + *l.ReferenceRange + ")"
	}
	if l.Notes != nil && *l.Notes != "" {
		description += ". " + *l.Notes
	}

	return models.TimelineEvent{
		ID:          labEventPrefix + l.ID,
		Type:        models.EventLabResult,
		Date:        l.Date,
		Title:       l.Name,
		Description: description,
		Status:      status,
		Category:    models.CategoryLabs,
		Metadata: models.Metadata{
			"value":    models.StringValue(l.Value),
			"unit":     models.StringValue(l.Unit),
			"abnormal": models.BoolValue(l.Abnormal),
		},
	}
}

func vitalEvent(v models.VitalSign) models.TimelineEvent {
	description := strings.TrimSpace(v.Value + " " + v.Unit)
	if v.Notes != nil && *v.Notes != "" {
		description += ". " + *v.Notes
	}

	return models.TimelineEvent{
		ID:          vitalEventPrefix + v.ID,
		Type:        models.EventVitalSign,
		Date:        v.Date,
		Title:       HumanizeVitalType(v.Type),
		Description: description,
		Category:    models.CategoryVitals,
		Metadata: models.Metadata{
			"vital_type": models.StringValue(v.Type),
			"value":      models.StringValue(v.Value),
			"unit":       models.StringValue(v.Unit),
		},
	}
}

func noteEvent(n models.ClinicalNote) models.TimelineEvent {
	metadata := models.Metadata{
		"provider": models.StringValue(n.Provider),
	}
	if len(n.Tags) > 0 {
		metadata["tags"] = models.StringValue(strings.Join(n.Tags, ","))
	}

	return models.TimelineEvent{
		ID:          noteEventPrefix + n.ID,
		Type:        models.EventNote,
		Date:        n.Date,
		Title:       "Note from " + n.Provider,
		Description: TruncateRunes(n.Content, NotePreviewLength),
		Category:    models.CategoryNotes,
		Metadata:    metadata,
	}
}

// HumanizeVitalType turns a vital type such as blood_pressure into a title.
// Underscores become spaces and each word gets an upper-case first letter;
// the rest of each word is left as is.
func HumanizeVitalType(t string) string {
	return cases.Title(language.English, cases.NoLower).String(strings.ReplaceAll(t, "_", " "))
}

// TruncateRunes shortens s to max runes followed by "..." when it is longer
func TruncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func nilIfEmpty(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	return ids
}
