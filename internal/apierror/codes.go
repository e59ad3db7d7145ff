package apierror

// Error type URIs following the urn:ruralhealth:error:* pattern.
// These are used as the "type" field in RFC 9457 Problem Details.
const (
	// TypeValidation indicates request validation failed (400)
	TypeValidation = "urn:ruralhealth:error:validation"

	// TypeNotFound indicates the requested resource was not found (404)
	TypeNotFound = "urn:ruralhealth:error:not_found"

	// TypeConflict indicates a resource conflict (409)
	TypeConflict = "urn:ruralhealth:error:conflict"

	// TypeRateLimit indicates too many requests (429)
	TypeRateLimit = "urn:ruralhealth:error:rate_limit"

	// TypeInternal indicates an unexpected server error (500)
	TypeInternal = "urn:ruralhealth:error:internal"

	// TypeInvalidUUID indicates an invalid UUID format in request (400)
	TypeInvalidUUID = "urn:ruralhealth:error:invalid_uuid"

	// TypeFutureTimestamp indicates a timestamp too far in the future (400)
	TypeFutureTimestamp = "urn:ruralhealth:error:future_timestamp"

	// TypeBadRequest indicates a malformed or invalid request (400)
	TypeBadRequest = "urn:ruralhealth:error:bad_request"

	// TypeNotMedicationEvent indicates a medication-effect analysis anchored
	// on an event that is not a medication start or stop (422)
	TypeNotMedicationEvent = "urn:ruralhealth:error:not_medication_event"

	// TypeUnavailable indicates the data source is temporarily unreachable (503)
	TypeUnavailable = "urn:ruralhealth:error:unavailable"
)

// Titles for each error type - human-readable summaries
const (
	TitleValidation         = "Validation Error"
	TitleNotFound           = "Resource Not Found"
	TitleConflict           = "Resource Conflict"
	TitleRateLimit          = "Rate Limit Exceeded"
	TitleInternal           = "Internal Server Error"
	TitleInvalidUUID        = "Invalid UUID Format"
	TitleFutureTimestamp    = "Future Timestamp Not Allowed"
	TitleBadRequest         = "Bad Request"
	TitleNotMedicationEvent = "Not a Medication Event"
	TitleUnavailable        = "Service Unavailable"
)
