package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ruralhealth/connect/backend/internal/apierror"
	"github.com/ruralhealth/connect/backend/internal/models"
	"github.com/ruralhealth/connect/backend/internal/service"
)

type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
	now              Clock
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService service.AnalyticsService, now Clock) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		now:              now,
	}
}

// GetTrends handles GET /api/v1/patients/:id/analytics/trends
func (h *AnalyticsHandler) GetTrends(c *gin.Context) {
	r, now, fieldErrors := analyticsWindow(c, h.now)
	if len(fieldErrors) > 0 {
		writeFieldErrors(c, fieldErrors)
		return
	}

	trends, err := h.analyticsService.GetTrends(c.Request.Context(), c.Param("id"), csvParam(c, "symptoms"), r, now)
	if err != nil {
		writeServiceError(c, err, "failed to get trends")
		return
	}

	c.JSON(http.StatusOK, trends)
}

// GetCorrelations handles GET /api/v1/patients/:id/analytics/correlations
func (h *AnalyticsHandler) GetCorrelations(c *gin.Context) {
	now, fe := referenceTime(c, h.now)
	if fe != nil {
		writeFieldErrors(c, []apierror.FieldError{*fe})
		return
	}

	matrix, err := h.analyticsService.GetCorrelations(c.Request.Context(), c.Param("id"), now)
	if err != nil {
		writeServiceError(c, err, "failed to get correlations")
		return
	}

	c.JSON(http.StatusOK, matrix)
}

// GetCorrelationInsights handles GET /api/v1/patients/:id/analytics/correlations/insights
func (h *AnalyticsHandler) GetCorrelationInsights(c *gin.Context) {
	now, fe := referenceTime(c, h.now)
	if fe != nil {
		writeFieldErrors(c, []apierror.FieldError{*fe})
		return
	}

	insights, err := h.analyticsService.GetCorrelationInsights(c.Request.Context(), c.Param("id"), now)
	if err != nil {
		writeServiceError(c, err, "failed to get correlation insights")
		return
	}
	if insights == nil {
		insights = []models.CorrelationInsight{}
	}

	c.JSON(http.StatusOK, gin.H{
		"correlations": insights,
		"count":        len(insights),
	})
}

// GetHeatmap handles GET /api/v1/patients/:id/analytics/heatmap
func (h *AnalyticsHandler) GetHeatmap(c *gin.Context) {
	r, now, fieldErrors := analyticsWindow(c, h.now)
	if len(fieldErrors) > 0 {
		writeFieldErrors(c, fieldErrors)
		return
	}

	heatmap, err := h.analyticsService.GetHeatmap(c.Request.Context(), c.Param("id"), r, now)
	if err != nil {
		writeServiceError(c, err, "failed to get heatmap")
		return
	}

	c.JSON(http.StatusOK, heatmap)
}

// GetSummary handles GET /api/v1/patients/:id/analytics/summary
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	r, now, fieldErrors := analyticsWindow(c, h.now)
	if len(fieldErrors) > 0 {
		writeFieldErrors(c, fieldErrors)
		return
	}

	summaries, err := h.analyticsService.GetSummary(c.Request.Context(), c.Param("id"), r, now)
	if err != nil {
		writeServiceError(c, err, "failed to get symptom summary")
		return
	}
	if summaries == nil {
		summaries = []models.SymptomSummary{}
	}

	c.JSON(http.StatusOK, gin.H{
		"range":     r,
		"as_of":     now,
		"summaries": summaries,
	})
}

// GetMedicationEffect handles GET /api/v1/patients/:id/analytics/medication-effect
func (h *AnalyticsHandler) GetMedicationEffect(c *gin.Context) {
	var fieldErrors []apierror.FieldError

	eventID := strings.TrimSpace(c.Query("event_id"))
	if eventID == "" {
		fieldErrors = append(fieldErrors, apierror.FieldError{Field: "event_id", Message: "is required", Code: "required"})
	}
	symptom := strings.TrimSpace(c.Query("symptom"))
	if symptom == "" {
		fieldErrors = append(fieldErrors, apierror.FieldError{Field: "symptom", Message: "is required", Code: "required"})
	}
	windowDays, fe := positiveIntParam(c, "window_days")
	if fe != nil {
		fieldErrors = append(fieldErrors, *fe)
	}
	if len(fieldErrors) > 0 {
		writeFieldErrors(c, fieldErrors)
		return
	}

	effect, err := h.analyticsService.GetMedicationEffect(c.Request.Context(), c.Param("id"), eventID, symptom, windowDays)
	if err != nil {
		writeServiceError(c, err, "failed to analyze medication effect")
		return
	}

	c.JSON(http.StatusOK, effect)
}

// GetDashboard handles GET /api/v1/patients/:id/dashboard
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	r, now, fieldErrors := analyticsWindow(c, h.now)
	if len(fieldErrors) > 0 {
		writeFieldErrors(c, fieldErrors)
		return
	}

	dashboard, err := h.analyticsService.GetDashboard(c.Request.Context(), c.Param("id"), r, now)
	if err != nil {
		writeServiceError(c, err, "failed to build dashboard")
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
