package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/ruralhealth/connect/backend/internal/analytics"
	"github.com/ruralhealth/connect/backend/internal/logger"
	"github.com/ruralhealth/connect/backend/internal/metrics"
	"github.com/ruralhealth/connect/backend/internal/models"
	"github.com/ruralhealth/connect/backend/internal/repository"
)

// RecentEventsLimit is the number of timeline events on the dashboard
const RecentEventsLimit = 10

// AnalyticsOptions holds the configured analytics defaults
type AnalyticsOptions struct {
	MedicationWindowDays int
	CorrelationMinAbs    float64
}

type analyticsService struct {
	loader  snapshotLoader
	opts    AnalyticsOptions
	metrics *metrics.Collector
}

// NewAnalyticsService creates a new analytics service. m may be nil.
func NewAnalyticsService(repo repository.PatientRepository, opts AnalyticsOptions, m *metrics.Collector) AnalyticsService {
	if opts.MedicationWindowDays <= 0 {
		opts.MedicationWindowDays = analytics.DefaultMedicationWindowDays
	}
	return &analyticsService{
		loader:  snapshotLoader{repo: repo, metrics: m},
		opts:    opts,
		metrics: m,
	}
}

// observe wraps one analytics operation in a span and records its duration
func (s *analyticsService) observe(ctx context.Context, op, patientID string, fn func(context.Context) error) error {
	ctx, span := startSpan(ctx, "analytics."+op, patientID)
	start := time.Now()
	err := fn(ctx)
	s.metrics.ObserveAnalytics(op, start, err)
	endSpan(span, err)
	if err == nil {
		logger.Ctx(ctx).Debug("analytics computed",
			logger.String("operation", op),
			logger.Duration("duration", time.Since(start)),
		)
	}
	return err
}

func (s *analyticsService) GetTrends(ctx context.Context, patientID string, symptoms []string, r analytics.TimeRange, now time.Time) (*models.TrendData, error) {
	var trends *models.TrendData
	err := s.observe(ctx, "trends", patientID, func(ctx context.Context) error {
		data, err := s.loader.symptoms(ctx, patientID)
		if err != nil {
			return err
		}
		if len(symptoms) == 0 {
			symptoms = data.SymptomNames()
		}
		trends = analytics.BuildTrendSeries(data, symptoms, r, now)
		return nil
	})
	return trends, err
}

// GetCorrelations pairs days in now's location, the calendar the trend and
// heatmap views use
func (s *analyticsService) GetCorrelations(ctx context.Context, patientID string, now time.Time) (*models.CorrelationMatrix, error) {
	var matrix *models.CorrelationMatrix
	err := s.observe(ctx, "correlations", patientID, func(ctx context.Context) error {
		data, err := s.loader.symptoms(ctx, patientID)
		if err != nil {
			return err
		}
		matrix = analytics.BuildCorrelationMatrix(data, now.Location())
		return nil
	})
	return matrix, err
}

func (s *analyticsService) GetCorrelationInsights(ctx context.Context, patientID string, now time.Time) ([]models.CorrelationInsight, error) {
	var insights []models.CorrelationInsight
	err := s.observe(ctx, "correlation_insights", patientID, func(ctx context.Context) error {
		data, err := s.loader.symptoms(ctx, patientID)
		if err != nil {
			return err
		}
		insights = analytics.CorrelationInsights(data, s.opts.CorrelationMinAbs, now.Location())
		return nil
	})
	return insights, err
}

func (s *analyticsService) GetHeatmap(ctx context.Context, patientID string, r analytics.TimeRange, now time.Time) (*models.HeatmapData, error) {
	var heatmap *models.HeatmapData
	err := s.observe(ctx, "heatmap", patientID, func(ctx context.Context) error {
		data, err := s.loader.symptoms(ctx, patientID)
		if err != nil {
			return err
		}
		heatmap = analytics.BuildHeatmap(data, r, now)
		return nil
	})
	return heatmap, err
}

func (s *analyticsService) GetSummary(ctx context.Context, patientID string, r analytics.TimeRange, now time.Time) ([]models.SymptomSummary, error) {
	var summaries []models.SymptomSummary
	err := s.observe(ctx, "summary", patientID, func(ctx context.Context) error {
		data, err := s.loader.symptoms(ctx, patientID)
		if err != nil {
			return err
		}
		summaries = analytics.SummarizeSymptoms(data, r, now)
		return nil
	})
	return summaries, err
}

// GetMedicationEffect compares the symptom's severity before and after a
// medication event. windowDays <= 0 uses the configured default.
func (s *analyticsService) GetMedicationEffect(ctx context.Context, patientID, eventID, symptom string, windowDays int) (*models.MedicationEffect, error) {
	if windowDays <= 0 {
		windowDays = s.opts.MedicationWindowDays
	}

	var effect *models.MedicationEffect
	err := s.observe(ctx, "medication_effect", patientID, func(ctx context.Context) error {
		events, err := s.loader.timeline(ctx, patientID)
		if err != nil {
			return err
		}
		event, ok := analytics.FindEvent(events, eventID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrEventNotFound, eventID)
		}
		effect, err = analytics.AnalyzeMedicationEffect(event, events, symptom, windowDays)
		if err != nil {
			return fmt.Errorf("failed to analyze medication effect: %w", err)
		}
		return nil
	})
	return effect, err
}

// GetDashboard loads the patient once and computes the dashboard sections
// concurrently over the same snapshot
func (s *analyticsService) GetDashboard(ctx context.Context, patientID string, r analytics.TimeRange, now time.Time) (*models.PatientDashboard, error) {
	var dashboard *models.PatientDashboard
	err := s.observe(ctx, "dashboard", patientID, func(ctx context.Context) error {
		var (
			data   *models.PatientSymptomData
			record *models.PatientMedicalRecord
		)

		fetch := pool.New().WithContext(ctx).WithCancelOnError()
		fetch.Go(func(ctx context.Context) error {
			var err error
			data, err = s.loader.symptoms(ctx, patientID)
			return err
		})
		fetch.Go(func(ctx context.Context) error {
			var err error
			record, err = s.loader.record(ctx, patientID)
			return err
		})
		if err := fetch.Wait(); err != nil {
			return err
		}

		d := &models.PatientDashboard{
			PatientID:   data.PatientID,
			PatientName: data.PatientName,
			ComputedAt:  now,
		}

		compute := pool.New()
		compute.Go(func() { d.Summaries = analytics.SummarizeSymptoms(data, r, now) })
		compute.Go(func() { d.Trends = analytics.BuildTrendSeries(data, data.SymptomNames(), r, now) })
		compute.Go(func() { d.Heatmap = analytics.BuildHeatmap(data, r, now) })
		compute.Go(func() { d.Correlations = analytics.BuildCorrelationMatrix(data, now.Location()) })
		compute.Go(func() { d.RecentEvents = recentEvents(analytics.BuildTimeline(data, record), RecentEventsLimit) })
		compute.Wait()

		dashboard = d
		return nil
	})
	return dashboard, err
}

// recentEvents returns the last n events of a date-sorted timeline, newest first
func recentEvents(events []models.TimelineEvent, n int) []models.TimelineEvent {
	if len(events) < n {
		n = len(events)
	}
	out := make([]models.TimelineEvent, 0, n)
	for i := len(events) - 1; i >= len(events)-n; i-- {
		out = append(out, events[i])
	}
	return out
}
