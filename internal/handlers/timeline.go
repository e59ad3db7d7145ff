package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ruralhealth/connect/backend/internal/analytics"
	"github.com/ruralhealth/connect/backend/internal/apierror"
	"github.com/ruralhealth/connect/backend/internal/service"
)

type TimelineHandler struct {
	timelineService service.TimelineService
	now             Clock
}

// NewTimelineHandler creates a new timeline handler
func NewTimelineHandler(timelineService service.TimelineService, now Clock) *TimelineHandler {
	return &TimelineHandler{
		timelineService: timelineService,
		now:             now,
	}
}

// GetTimeline handles GET /api/v1/patients/:id/timeline
// Optional query: categories, start, end, q, group=day|month, as_of.
// Groups use the calendar of the reference time.
func (h *TimelineHandler) GetTimeline(c *gin.Context) {
	filter, fieldErrors := timelineFilter(c)
	now, fe := referenceTime(c, h.now)
	if fe != nil {
		fieldErrors = append(fieldErrors, *fe)
	}

	group := c.Query("group")
	if group != "" && group != "day" && group != "month" {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   "group",
			Message: "must be day or month",
			Code:    "invalid_value",
		})
	}
	if len(fieldErrors) > 0 {
		writeFieldErrors(c, fieldErrors)
		return
	}

	events, err := h.timelineService.GetTimeline(c.Request.Context(), c.Param("id"), filter)
	if err != nil {
		writeServiceError(c, err, "failed to get timeline")
		return
	}

	switch group {
	case "day":
		c.JSON(http.StatusOK, gin.H{"groups": analytics.GroupByDay(events, now.Location()), "count": len(events)})
	case "month":
		c.JSON(http.StatusOK, gin.H{"groups": analytics.GroupByMonth(events, now.Location()), "count": len(events)})
	default:
		c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
	}
}

// GetRelatedEvents handles GET /api/v1/patients/:id/timeline/:eventId/related
func (h *TimelineHandler) GetRelatedEvents(c *gin.Context) {
	related, err := h.timelineService.GetRelatedEvents(c.Request.Context(), c.Param("id"), c.Param("eventId"))
	if err != nil {
		writeServiceError(c, err, "failed to get related events")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"event_id": c.Param("eventId"),
		"related":  related,
	})
}
