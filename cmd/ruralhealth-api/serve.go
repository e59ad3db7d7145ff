package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/ruralhealth/connect/backend/internal/config"
	"github.com/ruralhealth/connect/backend/internal/handlers"
	"github.com/ruralhealth/connect/backend/internal/logger"
	"github.com/ruralhealth/connect/backend/internal/metrics"
	"github.com/ruralhealth/connect/backend/internal/middleware"
	"github.com/ruralhealth/connect/backend/internal/service"
	"github.com/ruralhealth/connect/backend/internal/tracing"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Override port from flag if provided
	if port != "" {
		cfg.Server.Port = port
	}

	log := newLogger(cfg.Log, os.Stdout)
	log.Info("starting RuralHealth API server",
		logger.String("env", cfg.Server.Env),
		logger.String("datasource", cfg.DataSource.Driver),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn("failed to flush traces", logger.Err(err))
		}
	}()

	// Initialize repositories
	source, err := openDataSource(cfg, log)
	if err != nil {
		return err
	}

	m := metrics.NewCollector()

	// Initialize services
	patientService := service.NewPatientService(source.patients, m)
	analyticsService := service.NewAnalyticsService(source.patients, service.AnalyticsOptions{
		MedicationWindowDays: cfg.Analytics.MedicationWindowDays,
		CorrelationMinAbs:    cfg.Analytics.CorrelationMinAbs,
	}, m)
	timelineService := service.NewTimelineService(source.patients, m)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, "api")
	defer limiter.Close()

	// Set Gin mode based on environment
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		PatientService:   patientService,
		AnalyticsService: analyticsService,
		TimelineService:  timelineService,
		IdempotencyRepo:  source.idempotency,
		Logger:           log,
		Metrics:          m,
		RateLimiter:      limiter,
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		Env:              cfg.Server.Env,
		Production:       cfg.Server.IsProduction(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", logger.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}
