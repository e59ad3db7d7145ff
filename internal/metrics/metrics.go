// Package metrics exposes Prometheus collectors for the HTTP layer, the
// analytics services and the patient data source.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name
const Namespace = "ruralhealth"

type Collector struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlightGauge   prometheus.Gauge

	AnalyticsDuration *prometheus.HistogramVec
	AnalyticsErrors   *prometheus.CounterVec
	SymptomsRecorded  *prometheus.CounterVec

	DataSourceDuration *prometheus.HistogramVec

	IdempotentReplays prometheus.Counter
	RateLimited       prometheus.Counter
}

// NewCollector registers all collectors on a fresh registry, together with
// the Go runtime and process collectors
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,

		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route, and status code.",
		}, []string{"method", "route", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "route", "status"}),

		InFlightGauge: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),

		AnalyticsDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "analytics",
			Name:      "compute_duration_seconds",
			Help:      "Time spent computing an analytics view, excluding data source reads.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"operation"}),

		AnalyticsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "analytics",
			Name:      "errors_total",
			Help:      "Analytics requests that failed, by operation.",
		}, []string{"operation"}),

		SymptomsRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "clinical",
			Name:      "symptom_entries_recorded_total",
			Help:      "Symptom entries recorded, by symptom.",
		}, []string{"symptom"}),

		DataSourceDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "datasource",
			Name:      "query_duration_seconds",
			Help:      "Patient data source latency distribution.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		}, []string{"operation"}),

		IdempotentReplays: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "idempotent_replays_total",
			Help:      "Responses served from the idempotency store.",
		}),

		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
	}
}

// Registry returns the registry the collectors are registered on
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveAnalytics records the compute time of one analytics operation
func (c *Collector) ObserveAnalytics(operation string, start time.Time, err error) {
	if c == nil {
		return
	}
	c.AnalyticsDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		c.AnalyticsErrors.WithLabelValues(operation).Inc()
	}
}

// ObserveDataSource records the latency of one data source call
func (c *Collector) ObserveDataSource(operation string, start time.Time) {
	if c == nil {
		return
	}
	c.DataSourceDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// Handler serves the collector's registry in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
