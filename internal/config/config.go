package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Data source drivers
const (
	DriverMemory   = "memory"
	DriverSupabase = "supabase"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	DataSource DataSourceConfig `mapstructure:"datasource"`
	Supabase   SupabaseConfig   `mapstructure:"supabase"`
	Analytics  AnalyticsConfig  `mapstructure:"analytics"`
	RateLimit  RateLimitConfig  `mapstructure:"ratelimit"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

// LogConfig selects the logging level, output format and backend
type LogConfig struct {
	Level   string `mapstructure:"level"`
	Format  string `mapstructure:"format"`
	Backend string `mapstructure:"backend"`
}

// DataSourceConfig selects where patient data comes from.
// The memory driver seeds from Fixtures when set, otherwise from the
// deterministic mock generator.
type DataSourceConfig struct {
	Driver   string `mapstructure:"driver"`
	Fixtures string `mapstructure:"fixtures"`
	Seed     uint64 `mapstructure:"seed"`
	Patients int    `mapstructure:"patients"`
}

// SupabaseConfig holds Supabase-specific configuration
type SupabaseConfig struct {
	URL        string `mapstructure:"url"`
	ServiceKey string `mapstructure:"service_key"`
}

// AnalyticsConfig holds tunables for the analytics endpoints
type AnalyticsConfig struct {
	MedicationWindowDays int     `mapstructure:"medication_window_days"`
	CorrelationMinAbs    float64 `mapstructure:"correlation_min_abs"`
}

// RateLimitConfig configures the per-client token bucket
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// CORSConfig lists the origins allowed to call the API.
// Entries may use a single wildcard, e.g. https://*.ruralhealth.app
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// TracingConfig configures OpenTelemetry export
type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	Endpoint    string  `mapstructure:"endpoint"`
	SampleRate  float64 `mapstructure:"sample_rate"`
	ServiceName string  `mapstructure:"service_name"`
}

// IsProduction reports whether the server runs in production mode
func (c ServerConfig) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	// A missing .env is fine; anything else is worth surfacing
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	// Read from environment variables
	v.SetEnvPrefix("RURALHEALTH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Also bind to non-prefixed environment variables for hosting platforms
	_ = v.BindEnv("server.port", "RURALHEALTH_SERVER_PORT", "PORT")
	_ = v.BindEnv("supabase.url", "RURALHEALTH_SUPABASE_URL", "SUPABASE_URL")
	_ = v.BindEnv("supabase.service_key", "RURALHEALTH_SUPABASE_SERVICE_KEY", "SUPABASE_SERVICE_KEY")

	// Read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// It's okay if config file doesn't exist
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Comma-separated env values arrive as a single element
	config.CORS.AllowedOrigins = splitList(config.CORS.AllowedOrigins)

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.backend", "slog")

	v.SetDefault("datasource.driver", DriverMemory)
	v.SetDefault("datasource.fixtures", "")
	v.SetDefault("datasource.seed", 42)
	v.SetDefault("datasource.patients", 5)

	v.SetDefault("supabase.url", "")
	v.SetDefault("supabase.service_key", "")

	v.SetDefault("analytics.medication_window_days", 30)
	v.SetDefault("analytics.correlation_min_abs", 0.3)

	v.SetDefault("ratelimit.requests_per_second", 10.0)
	v.SetDefault("ratelimit.burst", 20)

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "localhost:4318")
	v.SetDefault("tracing.sample_rate", 1.0)
	v.SetDefault("tracing.service_name", "ruralhealth-api")
}

// Validate checks that all required configuration values are present
func (c *Config) Validate() error {
	switch c.DataSource.Driver {
	case DriverMemory:
		if c.DataSource.Fixtures == "" && c.DataSource.Patients <= 0 {
			return fmt.Errorf("datasource.patients must be positive when no fixtures file is set")
		}
	case DriverSupabase:
		if c.Supabase.URL == "" {
			return fmt.Errorf("SUPABASE_URL is required for the supabase driver")
		}
		if c.Supabase.ServiceKey == "" {
			return fmt.Errorf("SUPABASE_SERVICE_KEY is required for the supabase driver")
		}
	default:
		return fmt.Errorf("unknown datasource.driver %q (want %s or %s)", c.DataSource.Driver, DriverMemory, DriverSupabase)
	}

	if c.Analytics.MedicationWindowDays <= 0 {
		return fmt.Errorf("analytics.medication_window_days must be positive")
	}
	if c.Analytics.CorrelationMinAbs < 0 || c.Analytics.CorrelationMinAbs > 1 {
		return fmt.Errorf("analytics.correlation_min_abs must be within [0, 1]")
	}
	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("ratelimit.requests_per_second and ratelimit.burst must be positive")
	}
	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return fmt.Errorf("tracing.endpoint is required when tracing is enabled")
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		return fmt.Errorf("tracing.sample_rate must be within [0, 1]")
	}
	return nil
}

func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
