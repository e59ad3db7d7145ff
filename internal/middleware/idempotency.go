package middleware

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ruralhealth/connect/backend/internal/apierror"
	"github.com/ruralhealth/connect/backend/internal/logger"
	"github.com/ruralhealth/connect/backend/internal/metrics"
	"github.com/ruralhealth/connect/backend/internal/repository"
)

const (
	// IdempotencyKeyHeader is the HTTP header name for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"

	// maxIdempotencyKeyLength bounds the stored key size
	maxIdempotencyKeyLength = 255
)

// idempotencyBodyWriter wraps gin.ResponseWriter to capture the response body for idempotency caching
type idempotencyBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *idempotencyBodyWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency middleware ensures exactly-once semantics for symptom reports.
// If an Idempotency-Key header is provided:
//   - Check if we've seen this key before for the same route and patient
//   - If yes, return the cached response (replay)
//   - If no, process the request and cache the response for future replays
//
// The middleware only applies to POST, PUT and PATCH. Keys are scoped to the
// patient in the :id route parameter. m may be nil.
func Idempotency(repo repository.IdempotencyRepository, m *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Ctx(c.Request.Context())

		// Only apply to mutating requests
		method := c.Request.Method
		if method != http.MethodPost && method != http.MethodPut && method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			apierror.WriteProblem(c, apierror.NewBadRequestError(apierror.GetRequestID(c),
				"Idempotency-Key must be at most 255 characters", "Invalid idempotency key"))
			c.Abort()
			return
		}

		scope := c.Param("id")
		route := method + " " + c.FullPath()

		log.Debug("checking idempotency",
			logger.String("key", key),
			logger.String("route", route),
		)

		existing, err := repo.Get(c.Request.Context(), key, route, scope)
		if err != nil {
			log.Error("failed to check idempotency key",
				logger.Err(err),
				logger.String("key", key),
			)
			// On error, we proceed without idempotency to avoid blocking valid requests
			c.Next()
			return
		}

		if existing != nil {
			log.Info("replaying idempotent response",
				logger.String("key", key),
				logger.String("route", route),
				logger.Int("status_code", existing.StatusCode),
			)
			if m != nil {
				m.IdempotentReplays.Inc()
			}

			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.StatusCode, "application/json; charset=utf-8", existing.ResponseBody)
			c.Abort()
			return
		}

		blw := &idempotencyBodyWriter{
			body:           bytes.NewBuffer(nil),
			ResponseWriter: c.Writer,
		}
		c.Writer = blw

		c.Next()

		// Only cache successful responses (2xx)
		statusCode := c.Writer.Status()
		if statusCode >= 200 && statusCode < 300 {
			if err := repo.Store(c.Request.Context(), key, route, scope, blw.body.Bytes(), statusCode); err != nil {
				// The request already succeeded
				log.Warn("failed to store idempotency key",
					logger.Err(err),
					logger.String("key", key),
				)
			} else {
				log.Debug("stored idempotency key",
					logger.String("key", key),
					logger.String("route", route),
					logger.Int("status_code", statusCode),
				)
			}
		}
	}
}
