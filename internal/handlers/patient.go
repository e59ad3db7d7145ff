package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ruralhealth/connect/backend/internal/apierror"
	"github.com/ruralhealth/connect/backend/internal/models"
	"github.com/ruralhealth/connect/backend/internal/service"
)

type PatientHandler struct {
	patientService service.PatientService
	now            Clock
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(patientService service.PatientService, now Clock) *PatientHandler {
	return &PatientHandler{
		patientService: patientService,
		now:            now,
	}
}

// ListPatients handles GET /api/v1/patients
func (h *PatientHandler) ListPatients(c *gin.Context) {
	patients, err := h.patientService.ListPatients(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "failed to list patients")
		return
	}
	if patients == nil {
		patients = []models.PatientSummary{}
	}

	c.JSON(http.StatusOK, gin.H{
		"patients": patients,
		"count":    len(patients),
	})
}

// GetSymptoms handles GET /api/v1/patients/:id/symptoms
func (h *PatientHandler) GetSymptoms(c *gin.Context) {
	data, err := h.patientService.GetSymptoms(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err, "failed to get symptoms")
		return
	}

	c.JSON(http.StatusOK, data)
}

// RecordSymptom handles POST /api/v1/patients/:id/symptoms
func (h *PatientHandler) RecordSymptom(c *gin.Context) {
	var req models.CreateSymptomEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.WriteProblem(c, apierror.NewBindingError(apierror.GetRequestID(c), err))
		return
	}

	entry, err := h.patientService.RecordSymptom(c.Request.Context(), c.Param("id"), &req, h.now())
	if err != nil {
		requestID := apierror.GetRequestID(c)
		switch {
		case errors.Is(err, service.ErrFutureTimestamp):
			apierror.WriteProblem(c, apierror.NewFutureTimestampError(requestID, "id"))
		case errors.Is(err, service.ErrInvalidEntryID):
			apierror.WriteProblem(c, apierror.NewInvalidUUIDError(requestID, "id", req.ID))
		default:
			writeServiceError(c, err, "failed to record symptom")
		}
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// ExportSymptoms handles GET /api/v1/patients/:id/symptoms/export
func (h *PatientHandler) ExportSymptoms(c *gin.Context) {
	patientID := c.Param("id")

	// Buffer so a failed export can still become a problem response
	var buf bytes.Buffer
	if err := h.patientService.ExportSymptoms(c.Request.Context(), patientID, &buf); err != nil {
		writeServiceError(c, err, "failed to export symptoms")
		return
	}

	filename := fmt.Sprintf("symptoms-%s-%s.csv", patientID, h.now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
