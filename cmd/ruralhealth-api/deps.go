package main

import (
	"fmt"
	"io"
	"time"

	"github.com/ruralhealth/connect/backend/internal/config"
	"github.com/ruralhealth/connect/backend/internal/logger"
	"github.com/ruralhealth/connect/backend/internal/mockdata"
	"github.com/ruralhealth/connect/backend/internal/models"
	"github.com/ruralhealth/connect/backend/internal/repository"
	"github.com/ruralhealth/connect/backend/pkg/supabase"
)

// idempotencyTTL bounds how long the in-memory store replays a response
const idempotencyTTL = 24 * time.Hour

// newLogger builds the configured logger backend and installs it as the default
func newLogger(cfg config.LogConfig, out io.Writer) logger.Logger {
	log := logger.New(logger.Config{
		Level:   logger.ParseLevel(cfg.Level),
		Format:  cfg.Format,
		Backend: cfg.Backend,
		Output:  out,
	})
	logger.SetDefault(log)
	return log
}

// dataSource holds the repositories for the configured driver
type dataSource struct {
	patients    repository.PatientRepository
	idempotency repository.IdempotencyRepository
}

// openDataSource selects the repositories for datasource.driver. The memory
// driver seeds from the fixtures file when one is set, otherwise from the
// deterministic generator.
func openDataSource(cfg *config.Config, log logger.Logger) (*dataSource, error) {
	switch cfg.DataSource.Driver {
	case config.DriverSupabase:
		log.Info("using supabase data source", logger.String("url", cfg.Supabase.URL))
		client := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)
		return &dataSource{
			patients:    repository.NewSupabasePatientRepository(client),
			idempotency: repository.NewIdempotencyRepository(client),
		}, nil

	case config.DriverMemory:
		var fixtures []models.PatientFixture
		if cfg.DataSource.Fixtures != "" {
			loaded, err := repository.LoadFixtures(cfg.DataSource.Fixtures)
			if err != nil {
				return nil, fmt.Errorf("failed to load fixtures: %w", err)
			}
			fixtures = loaded
		} else {
			fixtures = mockdata.Generate(mockdata.Options{
				Patients: cfg.DataSource.Patients,
				Seed:     cfg.DataSource.Seed,
			})
		}
		log.Info("using in-memory data source",
			logger.String("fixtures", cfg.DataSource.Fixtures),
			logger.Int("patients", len(fixtures)),
		)
		return &dataSource{
			patients:    repository.NewMemoryPatientRepository(fixtures),
			idempotency: repository.NewMemoryIdempotencyRepository(idempotencyTTL),
		}, nil
	}

	return nil, fmt.Errorf("unknown datasource driver %q", cfg.DataSource.Driver)
}
