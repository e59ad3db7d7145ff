package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewCollectorIsolatedRegistries(t *testing.T) {
	// Two collectors must not collide on registration
	a := NewCollector()
	b := NewCollector()

	a.RateLimited.Inc()
	if got := testutil.ToFloat64(b.RateLimited); got != 0 {
		t.Errorf("second collector saw %v rate-limited requests, want 0", got)
	}
}

func TestObserveAnalytics(t *testing.T) {
	c := NewCollector()

	c.ObserveAnalytics("trends", time.Now(), nil)
	c.ObserveAnalytics("trends", time.Now(), errors.New("boom"))

	if got := testutil.CollectAndCount(c.AnalyticsDuration); got != 1 {
		t.Errorf("duration series = %d, want 1", got)
	}
	if got := testutil.ToFloat64(c.AnalyticsErrors.WithLabelValues("trends")); got != 1 {
		t.Errorf("errors = %v, want 1", got)
	}
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	c.ObserveAnalytics("trends", time.Now(), nil)
	c.ObserveDataSource("list", time.Now())
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := NewCollector()
	c.SymptomsRecorded.WithLabelValues("Headache").Inc()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `ruralhealth_clinical_symptom_entries_recorded_total{symptom="Headache"} 1`) {
		t.Errorf("metric missing from exposition:\n%s", body)
	}
	if !strings.Contains(string(body), "go_goroutines") {
		t.Error("runtime collector missing from exposition")
	}
}
