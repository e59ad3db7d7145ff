package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimelineEventType is the kind of clinical occurrence an event represents
type TimelineEventType string

const (
	EventSymptomReport      TimelineEventType = "symptom_report"
	EventConditionDiagnosis TimelineEventType = "condition_diagnosis"
	EventMedicationStarted  TimelineEventType = "medication_started"
	EventMedicationChanged  TimelineEventType = "medication_changed"
	EventMedicationStopped  TimelineEventType = "medication_stopped"
	EventLabResult          TimelineEventType = "lab_result"
	EventVitalSign          TimelineEventType = "vital_sign"
	EventAppointment        TimelineEventType = "appointment"
	EventNote               TimelineEventType = "note"
)

// IsMedication reports whether the event type marks a medication start or stop
func (t TimelineEventType) IsMedication() bool {
	return t == EventMedicationStarted || t == EventMedicationStopped
}

// TimelineCategory groups event types for filtering
type TimelineCategory string

const (
	CategorySymptoms     TimelineCategory = "symptoms"
	CategoryDiagnoses    TimelineCategory = "diagnoses"
	CategoryMedications  TimelineCategory = "medications"
	CategoryLabs         TimelineCategory = "labs"
	CategoryVitals       TimelineCategory = "vitals"
	CategoryNotes        TimelineCategory = "notes"
	CategoryAppointments TimelineCategory = "appointments"
)

// ParseTimelineCategory validates a category name
func ParseTimelineCategory(s string) (TimelineCategory, error) {
	switch c := TimelineCategory(s); c {
	case CategorySymptoms, CategoryDiagnoses, CategoryMedications, CategoryLabs,
		CategoryVitals, CategoryNotes, CategoryAppointments:
		return c, nil
	}
	return "", fmt.Errorf("unknown timeline category %q", s)
}

// MetadataKind is the scalar kind held by a MetadataValue
type MetadataKind int

const (
	MetadataString MetadataKind = iota
	MetadataNumber
	MetadataBool
)

// MetadataValue is a scalar value attached to a timeline event. It encodes
// to JSON as the bare scalar.
type MetadataValue struct {
	kind MetadataKind
	str  string
	num  float64
	flag bool
}

// StringValue wraps a string metadata value
func StringValue(s string) MetadataValue {
	return MetadataValue{kind: MetadataString, str: s}
}

// NumberValue wraps a numeric metadata value
func NumberValue(n float64) MetadataValue {
	return MetadataValue{kind: MetadataNumber, num: n}
}

// BoolValue wraps a boolean metadata value
func BoolValue(b bool) MetadataValue {
	return MetadataValue{kind: MetadataBool, flag: b}
}

// Kind returns the scalar kind
func (v MetadataValue) Kind() MetadataKind { return v.kind }

// String returns the string value and whether the value is a string
func (v MetadataValue) String() (string, bool) {
	return v.str, v.kind == MetadataString
}

// Number returns the numeric value and whether the value is a number
func (v MetadataValue) Number() (float64, bool) {
	return v.num, v.kind == MetadataNumber
}

// Bool returns the boolean value and whether the value is a bool
func (v MetadataValue) Bool() (bool, bool) {
	return v.flag, v.kind == MetadataBool
}

// MarshalJSON implements json.Marshaler
func (v MetadataValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case MetadataNumber:
		return json.Marshal(v.num)
	case MetadataBool:
		return json.Marshal(v.flag)
	default:
		return json.Marshal(v.str)
	}
}

// UnmarshalJSON implements json.Unmarshaler
func (v *MetadataValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case string:
		*v = StringValue(x)
	case float64:
		*v = NumberValue(x)
	case bool:
		*v = BoolValue(x)
	default:
		return fmt.Errorf("metadata value must be a string, number or bool, got %s", string(data))
	}
	return nil
}

// Metadata is the per-event bag of scalar attributes
type Metadata map[string]MetadataValue

// TimelineEvent is a normalized clinical occurrence on the patient timeline.
// Events are derived from symptom data and the medical record on demand.
type TimelineEvent struct {
	ID          string            `json:"id"`
	Type        TimelineEventType `json:"type"`
	Date        time.Time         `json:"date"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Severity    *int              `json:"severity,omitempty"`
	Status      string            `json:"status,omitempty"`
	Category    TimelineCategory  `json:"category,omitempty"`
	RelatedTo   []string          `json:"related_to,omitempty"`
	Metadata    Metadata          `json:"metadata,omitempty"`
}

// TimelineFilter narrows a timeline. Zero values match everything.
type TimelineFilter struct {
	Categories []TimelineCategory
	StartDate  *time.Time
	EndDate    *time.Time
	Search     string
}

// EventGroup is a bucket of events sharing a day or month key
type EventGroup struct {
	Key    string          `json:"key"`
	Events []TimelineEvent `json:"events"`
}
