package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ruralhealth/connect/backend/internal/logger"
	"github.com/ruralhealth/connect/backend/internal/metrics"
	"github.com/ruralhealth/connect/backend/internal/middleware"
	"github.com/ruralhealth/connect/backend/internal/repository"
	"github.com/ruralhealth/connect/backend/internal/service"
)

// RouterConfig collects everything NewRouter wires together
type RouterConfig struct {
	PatientService   service.PatientService
	AnalyticsService service.AnalyticsService
	TimelineService  service.TimelineService
	IdempotencyRepo  repository.IdempotencyRepository

	Logger      logger.Logger
	Metrics     *metrics.Collector
	RateLimiter *middleware.RateLimiter

	AllowedOrigins []string
	Env            string
	Production     bool

	// Now is the server clock; nil means time.Now
	Now Clock
}

// NewRouter builds the gin engine serving the /api/v1 routes plus /health
// and /metrics
func NewRouter(cfg RouterConfig) *gin.Engine {
	now := cfg.Now
	if now == nil {
		now = defaultClock
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewCollector()
	}

	patientHandler := NewPatientHandler(cfg.PatientService, now)
	analyticsHandler := NewAnalyticsHandler(cfg.AnalyticsService, now)
	timelineHandler := NewTimelineHandler(cfg.TimelineService, now)

	router := gin.New()

	// Tracing goes first so the request logger can pick up the trace id
	router.Use(gin.Recovery())
	router.Use(middleware.Tracing())
	router.Use(middleware.RequestContext(cfg.Logger))
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics(cfg.Metrics))
	router.Use(middleware.SecurityHeaders(cfg.Production))
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"env":    cfg.Env,
		})
	})
	router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))

	v1 := router.Group("/api/v1")
	if cfg.RateLimiter != nil {
		v1.Use(middleware.RateLimit(cfg.RateLimiter, cfg.Metrics))
	}
	{
		v1.GET("/patients", patientHandler.ListPatients)

		patient := v1.Group("/patients/:id")
		{
			patient.GET("/symptoms", patientHandler.GetSymptoms)
			if cfg.IdempotencyRepo != nil {
				patient.POST("/symptoms", middleware.Idempotency(cfg.IdempotencyRepo, cfg.Metrics), patientHandler.RecordSymptom)
			} else {
				patient.POST("/symptoms", patientHandler.RecordSymptom)
			}
			patient.GET("/symptoms/export", patientHandler.ExportSymptoms)

			// Analytics routes
			patient.GET("/analytics/trends", analyticsHandler.GetTrends)
			patient.GET("/analytics/correlations", analyticsHandler.GetCorrelations)
			patient.GET("/analytics/correlations/insights", analyticsHandler.GetCorrelationInsights)
			patient.GET("/analytics/heatmap", analyticsHandler.GetHeatmap)
			patient.GET("/analytics/summary", analyticsHandler.GetSummary)
			patient.GET("/analytics/medication-effect", analyticsHandler.GetMedicationEffect)
			patient.GET("/dashboard", analyticsHandler.GetDashboard)

			// Timeline routes
			patient.GET("/timeline", timelineHandler.GetTimeline)
			patient.GET("/timeline/:eventId/related", timelineHandler.GetRelatedEvents)
		}
	}

	return router
}
