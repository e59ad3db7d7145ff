package repository

import (
	"context"
	"errors"

	"github.com/ruralhealth/connect/backend/internal/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/ruralhealth/connect/backend/internal/repository PatientRepository,IdempotencyRepository

var (
	// ErrPatientNotFound is returned when no patient has the requested id
	ErrPatientNotFound = errors.New("patient not found")

	// ErrDuplicateEntry is returned when a symptom entry id is already in the patient's log
	ErrDuplicateEntry = errors.New("symptom entry already exists")
)

// PatientRepository defines the interface for patient data access.
// Returned values are snapshots owned by the caller; mutating them does not
// change the store.
type PatientRepository interface {
	List(ctx context.Context) ([]models.PatientSummary, error)
	GetSymptomData(ctx context.Context, patientID string) (*models.PatientSymptomData, error)
	GetMedicalRecord(ctx context.Context, patientID string) (*models.PatientMedicalRecord, error)
	AddSymptomEntry(ctx context.Context, patientID string, entry *models.SymptomEntry) (*models.SymptomEntry, error)
}

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// Get retrieves an existing idempotency record if it exists
	Get(ctx context.Context, key, route, scope string) (*models.IdempotencyKey, error)

	// Store saves a new idempotency record
	Store(ctx context.Context, key, route, scope string, responseBody []byte, statusCode int) error
}

// summarize builds the list-view summary of a symptom log
func summarize(data *models.PatientSymptomData) models.PatientSummary {
	summary := models.PatientSummary{
		PatientID:    data.PatientID,
		PatientName:  data.PatientName,
		SymptomCount: len(data.Symptoms),
		EntryCount:   data.EntryCount(),
	}
	for _, entries := range data.Symptoms {
		for _, e := range entries {
			if summary.LastReportedAt == nil || e.Date.After(*summary.LastReportedAt) {
				d := e.Date
				summary.LastReportedAt = &d
			}
		}
	}
	return summary
}
