package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ruralhealth/connect/backend/internal/models"
)

type memoryPatientRepository struct {
	mu       sync.RWMutex
	symptoms map[string]*models.PatientSymptomData
	records  map[string]*models.PatientMedicalRecord
}

// NewMemoryPatientRepository creates an in-memory patient repository seeded
// with the given fixtures. A later fixture with the same patient id replaces
// an earlier one.
func NewMemoryPatientRepository(fixtures []models.PatientFixture) PatientRepository {
	r := &memoryPatientRepository{
		symptoms: make(map[string]*models.PatientSymptomData, len(fixtures)),
		records:  make(map[string]*models.PatientMedicalRecord, len(fixtures)),
	}
	for i := range fixtures {
		f := &fixtures[i]
		r.symptoms[f.PatientID] = f.SymptomData()
		r.records[f.PatientID] = f.MedicalRecord()
	}
	return r
}

func (r *memoryPatientRepository) List(ctx context.Context) ([]models.PatientSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := make([]models.PatientSummary, 0, len(r.symptoms))
	for _, data := range r.symptoms {
		summaries = append(summaries, summarize(data))
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].PatientID < summaries[j].PatientID
	})
	return summaries, nil
}

func (r *memoryPatientRepository) GetSymptomData(ctx context.Context, patientID string) (*models.PatientSymptomData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.symptoms[patientID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPatientNotFound, patientID)
	}
	return data.Clone(), nil
}

func (r *memoryPatientRepository) GetMedicalRecord(ctx context.Context, patientID string) (*models.PatientMedicalRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[patientID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPatientNotFound, patientID)
	}
	return record.Clone(), nil
}

func (r *memoryPatientRepository) AddSymptomEntry(ctx context.Context, patientID string, entry *models.SymptomEntry) (*models.SymptomEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, ok := r.symptoms[patientID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPatientNotFound, patientID)
	}

	for _, entries := range data.Symptoms {
		for _, e := range entries {
			if e.ID == entry.ID {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateEntry, entry.ID)
			}
		}
	}

	stored := *entry
	if entry.Notes != nil {
		notes := *entry.Notes
		stored.Notes = &notes
	}
	data.Symptoms[stored.Symptom] = append(data.Symptoms[stored.Symptom], stored)

	out := stored
	if stored.Notes != nil {
		notes := *stored.Notes
		out.Notes = &notes
	}
	return &out, nil
}
