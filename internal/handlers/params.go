package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ruralhealth/connect/backend/internal/analytics"
	"github.com/ruralhealth/connect/backend/internal/apierror"
	"github.com/ruralhealth/connect/backend/internal/models"
)

// Clock returns the server's current time. Handlers read it once per
// request and pass the value down.
type Clock func() time.Time

var defaultClock Clock = time.Now

// referenceTime returns the as_of query parameter when present, otherwise
// the clock reading
func referenceTime(c *gin.Context, now Clock) (time.Time, *apierror.FieldError) {
	raw := c.Query("as_of")
	if raw == "" {
		return now(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, &apierror.FieldError{
			Field:   "as_of",
			Message: "must be a valid RFC3339 timestamp",
			Code:    "invalid_format",
		}
	}
	return t, nil
}

// timeRange parses the range query parameter, defaulting to 30days
func timeRange(c *gin.Context) (analytics.TimeRange, *apierror.FieldError) {
	raw := c.Query("range")
	if raw == "" {
		return analytics.DefaultRange, nil
	}
	r, err := analytics.ParseTimeRange(raw)
	if err != nil {
		return "", &apierror.FieldError{
			Field:   "range",
			Message: "must be one of 7days, 30days, 90days, 6months, 1year, all",
			Code:    "invalid_value",
		}
	}
	return r, nil
}

// analyticsWindow parses range and as_of together, reporting every bad field
func analyticsWindow(c *gin.Context, now Clock) (analytics.TimeRange, time.Time, []apierror.FieldError) {
	var fieldErrors []apierror.FieldError

	r, fe := timeRange(c)
	if fe != nil {
		fieldErrors = append(fieldErrors, *fe)
	}
	at, fe := referenceTime(c, now)
	if fe != nil {
		fieldErrors = append(fieldErrors, *fe)
	}
	return r, at, fieldErrors
}

// csvParam splits a comma-separated query parameter, dropping blanks
func csvParam(c *gin.Context, key string) []string {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// dateParam parses an optional date given as YYYY-MM-DD or RFC 3339
func dateParam(c *gin.Context, key string) (*time.Time, *apierror.FieldError) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{analytics.DateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, &apierror.FieldError{
		Field:   key,
		Message: "must be a date (YYYY-MM-DD) or RFC3339 timestamp",
		Code:    "invalid_format",
	}
}

// timelineFilter parses categories, start, end and q
func timelineFilter(c *gin.Context) (models.TimelineFilter, []apierror.FieldError) {
	var (
		filter      models.TimelineFilter
		fieldErrors []apierror.FieldError
	)

	for _, raw := range csvParam(c, "categories") {
		category, err := models.ParseTimelineCategory(raw)
		if err != nil {
			fieldErrors = append(fieldErrors, apierror.FieldError{
				Field:   "categories",
				Message: "unknown category " + strconv.Quote(raw),
				Code:    "invalid_value",
			})
			continue
		}
		filter.Categories = append(filter.Categories, category)
	}

	start, fe := dateParam(c, "start")
	if fe != nil {
		fieldErrors = append(fieldErrors, *fe)
	}
	end, fe := dateParam(c, "end")
	if fe != nil {
		fieldErrors = append(fieldErrors, *fe)
	}
	if start != nil && end != nil && end.Before(*start) {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   "end",
			Message: "must not be before start",
			Code:    "invalid_range",
		})
	}
	filter.StartDate = start
	filter.EndDate = end
	filter.Search = c.Query("q")

	return filter, fieldErrors
}

// positiveIntParam parses an optional positive integer; 0 means unset
func positiveIntParam(c *gin.Context, key string) (int, *apierror.FieldError) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, &apierror.FieldError{
			Field:   key,
			Message: "must be a positive integer",
			Code:    "invalid_value",
		}
	}
	return n, nil
}
