package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ruralhealth/connect/backend/internal/analytics"
	"github.com/ruralhealth/connect/backend/internal/logger"
	"github.com/ruralhealth/connect/backend/internal/metrics"
	"github.com/ruralhealth/connect/backend/internal/models"
	"github.com/ruralhealth/connect/backend/internal/repository"
)

type patientService struct {
	repo    repository.PatientRepository
	loader  snapshotLoader
	metrics *metrics.Collector
}

// NewPatientService creates a new patient service. m may be nil.
func NewPatientService(repo repository.PatientRepository, m *metrics.Collector) PatientService {
	return &patientService{
		repo:    repo,
		loader:  snapshotLoader{repo: repo, metrics: m},
		metrics: m,
	}
}

func (s *patientService) ListPatients(ctx context.Context) ([]models.PatientSummary, error) {
	ctx, span := startSpan(ctx, "list_patients", "")
	patients, err := s.listPatients(ctx)
	endSpan(span, err)
	return patients, err
}

func (s *patientService) listPatients(ctx context.Context) ([]models.PatientSummary, error) {
	start := time.Now()
	patients, err := s.repo.List(ctx)
	s.metrics.ObserveDataSource("list_patients", start)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (s *patientService) GetSymptoms(ctx context.Context, patientID string) (*models.PatientSymptomData, error) {
	ctx, span := startSpan(ctx, "get_symptoms", patientID)
	data, err := s.loader.symptoms(ctx, patientID)
	endSpan(span, err)
	return data, err
}

func (s *patientService) RecordSymptom(ctx context.Context, patientID string, req *models.CreateSymptomEntryRequest, now time.Time) (*models.SymptomEntry, error) {
	ctx, span := startSpan(ctx, "record_symptom", patientID)
	entry, err := s.recordSymptom(ctx, patientID, req, now)
	endSpan(span, err)
	return entry, err
}

func (s *patientService) recordSymptom(ctx context.Context, patientID string, req *models.CreateSymptomEntryRequest, now time.Time) (*models.SymptomEntry, error) {
	log := logger.Ctx(ctx)

	symptom := strings.TrimSpace(req.Symptom)
	if symptom == "" {
		return nil, ErrInvalidSymptom
	}
	if req.Date.After(now.Add(MaxClockSkew)) {
		return nil, fmt.Errorf("%w: %s", ErrFutureEntryDate, req.Date.Format(time.RFC3339))
	}

	id := req.ID
	if id == "" {
		generated, err := NewEntryID()
		if err != nil {
			return nil, err
		}
		id = generated
	} else if err := ValidateUUIDv7(id, now); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEntryID, err)
	}

	entry := &models.SymptomEntry{
		ID:       id,
		Symptom:  symptom,
		Severity: req.Severity,
		Date:     req.Date,
		Notes:    req.Notes,
	}

	start := time.Now()
	created, err := s.repo.AddSymptomEntry(ctx, patientID, entry)
	s.metrics.ObserveDataSource("add_symptom_entry", start)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			log.Warn("duplicate symptom entry rejected", logger.String("entry_id", id))
		}
		return nil, fmt.Errorf("failed to add symptom entry: %w", err)
	}

	if s.metrics != nil {
		s.metrics.SymptomsRecorded.WithLabelValues(created.Symptom).Inc()
	}
	log.Info("symptom recorded",
		logger.String("entry_id", created.ID),
		logger.String("symptom", created.Symptom),
		logger.Int("severity", created.Severity),
	)
	return created, nil
}

func (s *patientService) ExportSymptoms(ctx context.Context, patientID string, w io.Writer) error {
	ctx, span := startSpan(ctx, "export_symptoms", patientID)
	err := s.exportSymptoms(ctx, patientID, w)
	endSpan(span, err)
	return err
}

func (s *patientService) exportSymptoms(ctx context.Context, patientID string, w io.Writer) error {
	data, err := s.loader.symptoms(ctx, patientID)
	if err != nil {
		return err
	}
	if err := analytics.WriteSymptomCSV(w, data); err != nil {
		return fmt.Errorf("failed to export symptoms: %w", err)
	}
	logger.Ctx(ctx).Debug("symptoms exported", logger.Int("entries", data.EntryCount()))
	return nil
}
