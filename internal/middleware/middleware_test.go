package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/ruralhealth/connect/backend/internal/apierror"
	"github.com/ruralhealth/connect/backend/internal/logger"
	"github.com/ruralhealth/connect/backend/internal/metrics"
	"github.com/ruralhealth/connect/backend/internal/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestContextPropagatesIDs(t *testing.T) {
	var buf bytes.Buffer
	base := logger.New(logger.Config{Level: logger.LevelInfo, Backend: logger.BackendSlog, Output: &buf})

	r := gin.New()
	r.Use(RequestContext(base))
	r.GET("/patients/:id", func(c *gin.Context) {
		logger.Ctx(c.Request.Context()).Info("inside handler")
		c.String(http.StatusOK, apierror.GetRequestID(c))
	})

	w := perform(r, http.MethodGet, "/patients/p-7", map[string]string{RequestIDHeader: "req-abc"})

	if w.Body.String() != "req-abc" {
		t.Errorf("request id in gin context = %q, want req-abc", w.Body.String())
	}
	if got := w.Header().Get(RequestIDHeader); got != "req-abc" {
		t.Errorf("response %s = %q, want req-abc", RequestIDHeader, got)
	}
	out := buf.String()
	if !strings.Contains(out, `"request_id":"req-abc"`) || !strings.Contains(out, `"patient_id":"p-7"`) {
		t.Errorf("log line missing context fields: %s", out)
	}
}

func TestRequestContextGeneratesID(t *testing.T) {
	r := gin.New()
	r.Use(RequestContext(logger.Default()))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodGet, "/health", nil)
	if w.Header().Get(RequestIDHeader) == "" {
		t.Error("expected a generated request id")
	}
}

func TestLoggerLogsRequest(t *testing.T) {
	var buf bytes.Buffer
	base := logger.New(logger.Config{Level: logger.LevelInfo, Backend: logger.BackendSlog, Output: &buf})

	r := gin.New()
	r.Use(RequestContext(base), Logger())
	r.GET("/patients/:id/symptoms", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	perform(r, http.MethodGet, "/patients/p-1/symptoms", nil)

	out := buf.String()
	for _, want := range []string{`"status":404`, `"route":"/patients/:id/symptoms"`, `"level":"WARN"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s: %s", want, out)
		}
	}
}

func TestRateLimitRejectsBurstOverflow(t *testing.T) {
	limiter := NewRateLimiter(0.001, 2, "test")
	t.Cleanup(limiter.Close)
	m := metrics.NewCollector()

	r := gin.New()
	r.Use(RateLimit(limiter, m))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		if w := perform(r, http.MethodGet, "/x", nil); w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, w.Code)
		}
	}

	w := perform(r, http.MethodGet, "/x", nil)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header missing")
	}
	if ct := w.Header().Get("Content-Type"); ct != apierror.ContentTypeProblemJSON {
		t.Errorf("Content-Type = %q, want problem+json", ct)
	}
	if got := testutil.ToFloat64(m.RateLimited); got != 1 {
		t.Errorf("rate limited counter = %v, want 1", got)
	}
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	limiter := NewRateLimiter(1, 1, "test-evict")
	t.Cleanup(limiter.Close)

	now := time.Now()
	limiter.isAllowed("10.0.0.1", now)
	limiter.evictIdle(now.Add(limiter.idleTTL + time.Second))

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	if len(limiter.clients) != 0 {
		t.Errorf("clients = %d, want 0 after eviction", len(limiter.clients))
	}
}

func TestIdempotencyReplaysResponse(t *testing.T) {
	repo := repository.NewMemoryIdempotencyRepository(time.Hour)
	m := metrics.NewCollector()

	calls := 0
	r := gin.New()
	r.Use(Idempotency(repo, m))
	r.POST("/patients/:id/symptoms", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"call": calls})
	})

	headers := map[string]string{IdempotencyKeyHeader: "key-1"}
	first := perform(r, http.MethodPost, "/patients/p-1/symptoms", headers)
	second := perform(r, http.MethodPost, "/patients/p-1/symptoms", headers)

	if calls != 1 {
		t.Errorf("handler calls = %d, want 1", calls)
	}
	if second.Code != http.StatusCreated || second.Body.String() != first.Body.String() {
		t.Errorf("replay = %d %s, want %d %s", second.Code, second.Body, first.Code, first.Body)
	}
	if second.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Error("replay header missing")
	}
	if got := testutil.ToFloat64(m.IdempotentReplays); got != 1 {
		t.Errorf("replay counter = %v, want 1", got)
	}

	// Same key for another patient is a different scope
	perform(r, http.MethodPost, "/patients/p-2/symptoms", headers)
	if calls != 2 {
		t.Errorf("handler calls = %d, want 2 after a request for another patient", calls)
	}
}

func TestIdempotencyDoesNotCacheFailures(t *testing.T) {
	repo := repository.NewMemoryIdempotencyRepository(time.Hour)

	calls := 0
	r := gin.New()
	r.Use(Idempotency(repo, nil))
	r.POST("/patients/:id/symptoms", func(c *gin.Context) {
		calls++
		c.Status(http.StatusBadRequest)
	})

	headers := map[string]string{IdempotencyKeyHeader: "key-1"}
	perform(r, http.MethodPost, "/patients/p-1/symptoms", headers)
	perform(r, http.MethodPost, "/patients/p-1/symptoms", headers)

	if calls != 2 {
		t.Errorf("handler calls = %d, want 2", calls)
	}
}

func TestIdempotencyRejectsOversizedKey(t *testing.T) {
	r := gin.New()
	r.Use(Idempotency(repository.NewMemoryIdempotencyRepository(time.Hour), nil))
	r.POST("/patients/:id/symptoms", func(c *gin.Context) { c.Status(http.StatusCreated) })

	w := perform(r, http.MethodPost, "/patients/p-1/symptoms",
		map[string]string{IdempotencyKeyHeader: strings.Repeat("k", 256)})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://portal.example.org", "https://*.ruralhealth-portal.pages.dev"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantAllow  string
	}{
		{"exact origin", http.MethodGet, "https://portal.example.org", http.StatusOK, "https://portal.example.org"},
		{"wildcard origin", http.MethodGet, "https://pr-12.ruralhealth-portal.pages.dev", http.StatusOK, "https://pr-12.ruralhealth-portal.pages.dev"},
		{"unknown origin", http.MethodGet, "https://evil.example", http.StatusOK, ""},
		{"preflight allowed", http.MethodOptions, "https://portal.example.org", http.StatusNoContent, "https://portal.example.org"},
		{"preflight rejected", http.MethodOptions, "https://evil.example", http.StatusForbidden, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(r, tt.method, "/x", map[string]string{"Origin": tt.origin})
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantAllow)
			}
		})
	}
}

func TestCORSAllowAll(t *testing.T) {
	r := gin.New()
	r.Use(CORS(nil))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodGet, "/x", map[string]string{"Origin": "https://anything.example"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestSecurityHeaders(t *testing.T) {
	for _, production := range []bool{false, true} {
		r := gin.New()
		r.Use(SecurityHeaders(production))
		r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := perform(r, http.MethodGet, "/x", nil)
		if w.Header().Get("X-Content-Type-Options") != "nosniff" {
			t.Error("nosniff header missing")
		}
		if w.Header().Get("Cache-Control") == "" {
			t.Error("Cache-Control header missing")
		}
		hasHSTS := w.Header().Get("Strict-Transport-Security") != ""
		if hasHSTS != production {
			t.Errorf("production=%v: HSTS present = %v", production, hasHSTS)
		}
	}
}

func TestMetricsLabelsByRoute(t *testing.T) {
	m := metrics.NewCollector()

	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/patients/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	perform(r, http.MethodGet, "/patients/p-1", nil)
	perform(r, http.MethodGet, "/patients/p-2", nil)
	perform(r, http.MethodGet, "/nope", nil)

	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/patients/:id", "200")); got != 2 {
		t.Errorf("route counter = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")); got != 1 {
		t.Errorf("unmatched counter = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.InFlightGauge); got != 0 {
		t.Errorf("in-flight = %v, want 0", got)
	}
}

func traceIDFrom(c *gin.Context) string {
	return trace.SpanContextFromContext(c.Request.Context()).TraceID().String()
}

func TestTracingSetsSpanOnContext(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})

	r := gin.New()
	r.Use(Tracing())

	var traceID string
	r.GET("/x", func(c *gin.Context) {
		traceID = traceIDFrom(c)
		c.Status(http.StatusOK)
	})

	perform(r, http.MethodGet, "/x", map[string]string{
		"traceparent": "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01",
	})
	// The global provider may be a no-op, but the propagated parent must survive
	if traceID != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("trace id = %q, want the propagated parent", traceID)
	}
}
