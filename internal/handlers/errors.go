package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ruralhealth/connect/backend/internal/analytics"
	"github.com/ruralhealth/connect/backend/internal/apierror"
	"github.com/ruralhealth/connect/backend/internal/logger"
	"github.com/ruralhealth/connect/backend/internal/repository"
	"github.com/ruralhealth/connect/backend/internal/service"
)

// writeServiceError maps a service error to a problem response. Errors
// without a mapping are logged and returned as a generic 500.
func writeServiceError(c *gin.Context, err error, msg string) {
	requestID := apierror.GetRequestID(c)

	switch {
	case errors.Is(err, repository.ErrPatientNotFound):
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Patient", c.Param("id")))
	case errors.Is(err, service.ErrEventNotFound):
		eventID := c.Param("eventId")
		if eventID == "" {
			eventID = c.Query("event_id")
		}
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Timeline event", eventID))
	case errors.Is(err, analytics.ErrNotMedicationEvent):
		apierror.WriteProblem(c, apierror.NewNotMedicationEventError(requestID, err.Error()))
	case errors.Is(err, analytics.ErrUnknownTimeRange):
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
			{Field: "range", Message: err.Error(), Code: "invalid_value"},
		}))
	case errors.Is(err, repository.ErrDuplicateEntry):
		apierror.WriteProblem(c, apierror.NewConflictError(requestID, "A symptom entry with this id already exists"))
	case errors.Is(err, service.ErrFutureEntryDate):
		apierror.WriteProblem(c, apierror.NewFutureTimestampError(requestID, "date"))
	case errors.Is(err, service.ErrInvalidSymptom):
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
			{Field: "symptom", Message: "must not be blank", Code: "required"},
		}))
	case errors.Is(err, context.DeadlineExceeded):
		apierror.WriteProblem(c, apierror.NewServiceUnavailableError(requestID, 5))
	default:
		logger.Ctx(c.Request.Context()).Error(msg, logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
	}
}

// writeFieldErrors writes a 400 validation problem listing every bad field
func writeFieldErrors(c *gin.Context, fieldErrors []apierror.FieldError) {
	apierror.WriteProblem(c, apierror.NewValidationError(apierror.GetRequestID(c), fieldErrors))
}
