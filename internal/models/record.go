package models

import "time"

// ConditionStatus is the diagnostic certainty of a condition
type ConditionStatus string

const (
	ConditionConfirmed   ConditionStatus = "confirmed"
	ConditionProvisional ConditionStatus = "provisional"
	ConditionSuspected   ConditionStatus = "suspected"
	ConditionRuledOut    ConditionStatus = "ruled_out"
)

// MedicationStatus represents whether a medication is still being taken
type MedicationStatus string

const (
	MedicationActive       MedicationStatus = "active"
	MedicationCompleted    MedicationStatus = "completed"
	MedicationDiscontinued MedicationStatus = "discontinued"
)

// Condition is a diagnosis on a patient's record
type Condition struct {
	ID            string          `json:"id" yaml:"id"`
	Name          string          `json:"name" yaml:"name"`
	Status        ConditionStatus `json:"status" yaml:"status"`
	DiagnosisDate time.Time       `json:"diagnosis_date" yaml:"diagnosis_date"`
	Notes         *string         `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Medication is a prescribed medication course
type Medication struct {
	ID           string           `json:"id" yaml:"id"`
	Name         string           `json:"name" yaml:"name"`
	Dosage       string           `json:"dosage" yaml:"dosage"`
	Frequency    string           `json:"frequency" yaml:"frequency"`
	StartDate    time.Time        `json:"start_date" yaml:"start_date"`
	EndDate      *time.Time       `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	Status       MedicationStatus `json:"status" yaml:"status"`
	ForCondition *string          `json:"for_condition,omitempty" yaml:"for_condition,omitempty"`
	Notes        *string          `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// LabResult is a single laboratory measurement
type LabResult struct {
	ID             string    `json:"id" yaml:"id"`
	Name           string    `json:"name" yaml:"name"`
	Value          string    `json:"value" yaml:"value"`
	Unit           string    `json:"unit" yaml:"unit"`
	ReferenceRange *string   `json:"reference_range,omitempty" yaml:"reference_range,omitempty"`
	Date           time.Time `json:"date" yaml:"date"`
	Abnormal       bool      `json:"abnormal" yaml:"abnormal"`
	Notes          *string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// VitalSign is a single vital measurement such as blood_pressure
type VitalSign struct {
	ID    string    `json:"id" yaml:"id"`
	Type  string    `json:"type" yaml:"type"`
	Value string    `json:"value" yaml:"value"`
	Unit  string    `json:"unit" yaml:"unit"`
	Date  time.Time `json:"date" yaml:"date"`
	Notes *string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// ClinicalNote is a free-text provider note
type ClinicalNote struct {
	ID       string    `json:"id" yaml:"id"`
	Provider string    `json:"provider" yaml:"provider"`
	Date     time.Time `json:"date" yaml:"date"`
	Content  string    `json:"content" yaml:"content"`
	Tags     []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// PatientMedicalRecord is the clinical record of a patient. It is owned by
// the data source and read-only to analytics.
type PatientMedicalRecord struct {
	PatientID   string         `json:"patient_id" yaml:"patient_id"`
	Conditions  []Condition    `json:"conditions" yaml:"conditions"`
	Medications []Medication   `json:"medications" yaml:"medications"`
	LabResults  []LabResult    `json:"lab_results" yaml:"lab_results"`
	VitalSigns  []VitalSign    `json:"vital_signs" yaml:"vital_signs"`
	Notes       []ClinicalNote `json:"notes" yaml:"notes"`
}

// Clone returns a copy of the record with independent slices
func (r *PatientMedicalRecord) Clone() *PatientMedicalRecord {
	if r == nil {
		return nil
	}
	out := &PatientMedicalRecord{
		PatientID:   r.PatientID,
		Conditions:  append([]Condition(nil), r.Conditions...),
		Medications: append([]Medication(nil), r.Medications...),
		LabResults:  append([]LabResult(nil), r.LabResults...),
		VitalSigns:  append([]VitalSign(nil), r.VitalSigns...),
		Notes:       make([]ClinicalNote, len(r.Notes)),
	}
	for i, n := range r.Notes {
		out.Notes[i] = n
		out.Notes[i].Tags = append([]string(nil), n.Tags...)
	}
	return out
}
