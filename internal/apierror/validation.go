package apierror

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FieldErrorsFrom translates binding errors from go-playground/validator into
// FieldErrors. It reports ok=false when err is not a validation failure
// (for example malformed JSON), so callers can fall back to a bad request.
func FieldErrorsFrom(err error) ([]FieldError, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   snakeCase(fe.Field()),
			Message: validationMessage(fe),
			Code:    validationCode(fe.Tag()),
		})
	}
	return out, true
}

// NewBindingError returns the problem for a failed ShouldBindJSON call:
// a 400 validation problem listing every failing field, or a generic bad
// request when the body could not be decoded at all.
func NewBindingError(requestID string, err error) *ProblemDetails {
	if fields, ok := FieldErrorsFrom(err); ok {
		return NewValidationError(requestID, fields)
	}
	return NewBadRequestError(requestID, err.Error(), "Invalid JSON format")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind().String() == "string" || fe.Kind().String() == "ptr" {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "uuid", "uuid4", "uuid7":
		return "must be a valid UUID"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func validationCode(tag string) string {
	switch tag {
	case "required":
		return "required"
	case "min", "max":
		return "out_of_range"
	case "uuid", "uuid4", "uuid7":
		return "invalid_uuid"
	default:
		return "invalid"
	}
}

// snakeCase maps Go field names (PatientID) to their JSON names (patient_id)
func snakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
