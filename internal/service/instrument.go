package service

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ruralhealth/connect/backend/internal/analytics"
	"github.com/ruralhealth/connect/backend/internal/logger"
	"github.com/ruralhealth/connect/backend/internal/metrics"
	"github.com/ruralhealth/connect/backend/internal/models"
	"github.com/ruralhealth/connect/backend/internal/repository"
	"github.com/ruralhealth/connect/backend/internal/tracing"
)

// startSpan opens a span for a service operation on one patient and returns
// a context whose logger carries the patient id
func startSpan(ctx context.Context, op, patientID string) (context.Context, trace.Span) {
	ctx, span := tracing.Tracer().Start(ctx, "service."+op,
		trace.WithAttributes(attribute.String("patient.id", patientID)),
	)
	if patientID != "" {
		ctx = logger.WithPatientID(ctx, patientID)
	}
	return ctx, span
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// snapshotLoader reads immutable per-patient snapshots from the data source
type snapshotLoader struct {
	repo    repository.PatientRepository
	metrics *metrics.Collector
}

func (l snapshotLoader) symptoms(ctx context.Context, patientID string) (*models.PatientSymptomData, error) {
	start := time.Now()
	data, err := l.repo.GetSymptomData(ctx, patientID)
	l.metrics.ObserveDataSource("get_symptom_data", start)
	if err != nil {
		return nil, fmt.Errorf("failed to get symptom data: %w", err)
	}
	return data, nil
}

func (l snapshotLoader) record(ctx context.Context, patientID string) (*models.PatientMedicalRecord, error) {
	start := time.Now()
	record, err := l.repo.GetMedicalRecord(ctx, patientID)
	l.metrics.ObserveDataSource("get_medical_record", start)
	if err != nil {
		return nil, fmt.Errorf("failed to get medical record: %w", err)
	}
	return record, nil
}

// timeline loads both halves of a patient's history and merges them
func (l snapshotLoader) timeline(ctx context.Context, patientID string) ([]models.TimelineEvent, error) {
	data, err := l.symptoms(ctx, patientID)
	if err != nil {
		return nil, err
	}
	record, err := l.record(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return analytics.BuildTimeline(data, record), nil
}
