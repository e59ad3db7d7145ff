package service

import (
	"context"
	"fmt"

	"github.com/ruralhealth/connect/backend/internal/analytics"
	"github.com/ruralhealth/connect/backend/internal/logger"
	"github.com/ruralhealth/connect/backend/internal/metrics"
	"github.com/ruralhealth/connect/backend/internal/models"
	"github.com/ruralhealth/connect/backend/internal/repository"
)

type timelineService struct {
	loader snapshotLoader
}

// NewTimelineService creates a new timeline service. m may be nil.
func NewTimelineService(repo repository.PatientRepository, m *metrics.Collector) TimelineService {
	return &timelineService{
		loader: snapshotLoader{repo: repo, metrics: m},
	}
}

func (s *timelineService) GetTimeline(ctx context.Context, patientID string, filter models.TimelineFilter) ([]models.TimelineEvent, error) {
	ctx, span := startSpan(ctx, "timeline", patientID)
	events, err := s.loader.timeline(ctx, patientID)
	if err == nil {
		total := len(events)
		events = analytics.FilterEvents(events, filter)
		logger.Ctx(ctx).Debug("timeline built",
			logger.Int("total", total),
			logger.Int("matched", len(events)),
		)
	}
	endSpan(span, err)
	return events, err
}

func (s *timelineService) GetRelatedEvents(ctx context.Context, patientID, eventID string) ([]models.TimelineEvent, error) {
	ctx, span := startSpan(ctx, "timeline_related", patientID)
	related, err := s.relatedEvents(ctx, patientID, eventID)
	endSpan(span, err)
	return related, err
}

func (s *timelineService) relatedEvents(ctx context.Context, patientID, eventID string) ([]models.TimelineEvent, error) {
	events, err := s.loader.timeline(ctx, patientID)
	if err != nil {
		return nil, err
	}
	event, ok := analytics.FindEvent(events, eventID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEventNotFound, eventID)
	}
	return analytics.FindRelatedEvents(event, events), nil
}
