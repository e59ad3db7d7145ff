package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/sourcegraph/conc/pool"

	"github.com/ruralhealth/connect/backend/internal/models"
	"github.com/ruralhealth/connect/backend/pkg/supabase"
)

// Table names in the Supabase schema
const (
	tablePatients       = "patients"
	tableSymptomEntries = "symptom_entries"
	tableConditions     = "conditions"
	tableMedications    = "medications"
	tableLabResults     = "lab_results"
	tableVitalSigns     = "vital_signs"
	tableClinicalNotes  = "clinical_notes"
)

type patientRow struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type symptomEntryRow struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patient_id"`
	Symptom   string    `json:"symptom"`
	Severity  int       `json:"severity"`
	Date      time.Time `json:"date"`
	Notes     *string   `json:"notes,omitempty"`
}

func (r symptomEntryRow) toModel() models.SymptomEntry {
	return models.SymptomEntry{
		ID:       r.ID,
		Symptom:  r.Symptom,
		Severity: r.Severity,
		Date:     r.Date,
		Notes:    r.Notes,
	}
}

type supabasePatientRepository struct {
	client *supabase.Client
}

// NewSupabasePatientRepository creates a patient repository backed by Supabase PostgREST
func NewSupabasePatientRepository(client *supabase.Client) PatientRepository {
	return &supabasePatientRepository{client: client}
}

func (r *supabasePatientRepository) List(ctx context.Context) ([]models.PatientSummary, error) {
	var patients []patientRow
	if err := r.query(ctx, tablePatients, map[string]string{"select": "id,name", "order": "id.asc"}, &patients); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	var rows []symptomEntryRow
	if err := r.query(ctx, tableSymptomEntries, map[string]string{"select": "id,patient_id,symptom,severity,date"}, &rows); err != nil {
		return nil, fmt.Errorf("failed to list symptom entries: %w", err)
	}

	byPatient := make(map[string]*models.PatientSymptomData, len(patients))
	for _, p := range patients {
		byPatient[p.ID] = &models.PatientSymptomData{
			PatientID:   p.ID,
			PatientName: p.Name,
			Symptoms:    map[string][]models.SymptomEntry{},
		}
	}
	for _, row := range rows {
		if data, ok := byPatient[row.PatientID]; ok {
			data.Symptoms[row.Symptom] = append(data.Symptoms[row.Symptom], row.toModel())
		}
	}

	summaries := make([]models.PatientSummary, 0, len(patients))
	for _, p := range patients {
		summaries = append(summaries, summarize(byPatient[p.ID]))
	}
	return summaries, nil
}

func (r *supabasePatientRepository) GetSymptomData(ctx context.Context, patientID string) (*models.PatientSymptomData, error) {
	patient, err := r.getPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	var rows []symptomEntryRow
	query := map[string]string{
		"patient_id": "eq." + patientID,
		"order":      "date.asc",
	}
	if err := r.query(ctx, tableSymptomEntries, query, &rows); err != nil {
		return nil, fmt.Errorf("failed to get symptom entries: %w", err)
	}

	data := &models.PatientSymptomData{
		PatientID:   patient.ID,
		PatientName: patient.Name,
		Symptoms:    make(map[string][]models.SymptomEntry),
	}
	for _, row := range rows {
		data.Symptoms[row.Symptom] = append(data.Symptoms[row.Symptom], row.toModel())
	}
	return data, nil
}

func (r *supabasePatientRepository) GetMedicalRecord(ctx context.Context, patientID string) (*models.PatientMedicalRecord, error) {
	if _, err := r.getPatient(ctx, patientID); err != nil {
		return nil, err
	}

	record := &models.PatientMedicalRecord{PatientID: patientID}
	filter := func(order string) map[string]string {
		return map[string]string{"patient_id": "eq." + patientID, "order": order}
	}

	// The record sections are independent tables
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		return r.query(ctx, tableConditions, filter("diagnosis_date.asc"), &record.Conditions)
	})
	p.Go(func(ctx context.Context) error {
		return r.query(ctx, tableMedications, filter("start_date.asc"), &record.Medications)
	})
	p.Go(func(ctx context.Context) error {
		return r.query(ctx, tableLabResults, filter("date.asc"), &record.LabResults)
	})
	p.Go(func(ctx context.Context) error {
		return r.query(ctx, tableVitalSigns, filter("date.asc"), &record.VitalSigns)
	})
	p.Go(func(ctx context.Context) error {
		return r.query(ctx, tableClinicalNotes, filter("date.asc"), &record.Notes)
	})
	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("failed to get medical record: %w", err)
	}

	return record, nil
}

func (r *supabasePatientRepository) AddSymptomEntry(ctx context.Context, patientID string, entry *models.SymptomEntry) (*models.SymptomEntry, error) {
	if _, err := r.getPatient(ctx, patientID); err != nil {
		return nil, err
	}

	row := symptomEntryRow{
		ID:        entry.ID,
		PatientID: patientID,
		Symptom:   entry.Symptom,
		Severity:  entry.Severity,
		Date:      entry.Date,
		Notes:     entry.Notes,
	}

	body, err := r.client.Insert(ctx, tableSymptomEntries, row)
	if err != nil {
		var apiErr *supabase.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEntry, entry.ID)
		}
		return nil, fmt.Errorf("failed to create symptom entry: %w", err)
	}

	var created []symptomEntryRow
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("no symptom entry returned")
	}

	out := created[0].toModel()
	return &out, nil
}

func (r *supabasePatientRepository) getPatient(ctx context.Context, patientID string) (*patientRow, error) {
	var patients []patientRow
	query := map[string]string{"id": "eq." + patientID, "select": "id,name"}
	if err := r.query(ctx, tablePatients, query, &patients); err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	if len(patients) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrPatientNotFound, patientID)
	}
	return &patients[0], nil
}

func (r *supabasePatientRepository) query(ctx context.Context, table string, query map[string]string, out any) error {
	body, err := r.client.Query(ctx, table, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", table, err)
	}
	return nil
}
