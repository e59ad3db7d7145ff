package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/ruralhealth/connect/backend/internal/analytics"
	"github.com/ruralhealth/connect/backend/internal/models"
)

var (
	// ErrEventNotFound is returned when a timeline event id does not exist
	// in the patient's timeline
	ErrEventNotFound = errors.New("timeline event not found")
	// ErrInvalidEntryID wraps the UUID validation failure of a client-supplied entry id
	ErrInvalidEntryID = errors.New("invalid symptom entry id")
	// ErrFutureEntryDate is returned when a symptom is reported for a date after now
	ErrFutureEntryDate = errors.New("symptom entry date is in the future")
	// ErrInvalidSymptom is returned when a symptom name is blank
	ErrInvalidSymptom = errors.New("symptom name must not be blank")
)

// PatientService defines the interface for patient symptom data
type PatientService interface {
	ListPatients(ctx context.Context) ([]models.PatientSummary, error)
	GetSymptoms(ctx context.Context, patientID string) (*models.PatientSymptomData, error)
	RecordSymptom(ctx context.Context, patientID string, req *models.CreateSymptomEntryRequest, now time.Time) (*models.SymptomEntry, error)
	ExportSymptoms(ctx context.Context, patientID string, w io.Writer) error
}

// AnalyticsService defines the interface for symptom analytics.
// now is the reference instant for range resolution and is never read from
// the clock below this layer.
type AnalyticsService interface {
	GetTrends(ctx context.Context, patientID string, symptoms []string, r analytics.TimeRange, now time.Time) (*models.TrendData, error)
	GetCorrelations(ctx context.Context, patientID string, now time.Time) (*models.CorrelationMatrix, error)
	GetCorrelationInsights(ctx context.Context, patientID string, now time.Time) ([]models.CorrelationInsight, error)
	GetHeatmap(ctx context.Context, patientID string, r analytics.TimeRange, now time.Time) (*models.HeatmapData, error)
	GetSummary(ctx context.Context, patientID string, r analytics.TimeRange, now time.Time) ([]models.SymptomSummary, error)
	GetMedicationEffect(ctx context.Context, patientID, eventID, symptom string, windowDays int) (*models.MedicationEffect, error)
	GetDashboard(ctx context.Context, patientID string, r analytics.TimeRange, now time.Time) (*models.PatientDashboard, error)
}

// TimelineService defines the interface for the unified clinical timeline
type TimelineService interface {
	GetTimeline(ctx context.Context, patientID string, filter models.TimelineFilter) ([]models.TimelineEvent, error)
	GetRelatedEvents(ctx context.Context, patientID, eventID string) ([]models.TimelineEvent, error)
}
