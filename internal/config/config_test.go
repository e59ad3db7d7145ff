package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.DataSource.Driver != DriverMemory {
		t.Errorf("DataSource.Driver = %q, want %q", cfg.DataSource.Driver, DriverMemory)
	}
	if cfg.DataSource.Seed != 42 || cfg.DataSource.Patients != 5 {
		t.Errorf("DataSource = %+v, want seed 42 and 5 patients", cfg.DataSource)
	}
	if cfg.Analytics.MedicationWindowDays != 30 {
		t.Errorf("MedicationWindowDays = %d, want 30", cfg.Analytics.MedicationWindowDays)
	}
	if cfg.Analytics.CorrelationMinAbs != 0.3 {
		t.Errorf("CorrelationMinAbs = %v, want 0.3", cfg.Analytics.CorrelationMinAbs)
	}
	if cfg.Tracing.Enabled {
		t.Error("tracing should be disabled by default")
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("RURALHEALTH_LOG_BACKEND", "zap")
	t.Setenv("RURALHEALTH_ANALYTICS_MEDICATION_WINDOW_DAYS", "14")
	t.Setenv("RURALHEALTH_CORS_ALLOWED_ORIGINS", "https://a.example, https://*.example.org")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Log.Backend != "zap" {
		t.Errorf("Log.Backend = %q, want zap", cfg.Log.Backend)
	}
	if cfg.Analytics.MedicationWindowDays != 14 {
		t.Errorf("MedicationWindowDays = %d, want 14", cfg.Analytics.MedicationWindowDays)
	}
	want := []string{"https://a.example", "https://*.example.org"}
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, want) {
		t.Errorf("AllowedOrigins = %v, want %v", cfg.CORS.AllowedOrigins, want)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("RURALHEALTH_DATASOURCE_PATIENTS=9\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("RURALHEALTH_DATASOURCE_PATIENTS") })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DataSource.Patients != 9 {
		t.Errorf("DataSource.Patients = %d, want 9", cfg.DataSource.Patients)
	}
}

func TestLoadSupabaseRequiresCredentials(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("RURALHEALTH_DATASOURCE_DRIVER", "supabase")
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_SERVICE_KEY", "")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "SUPABASE_URL") {
		t.Fatalf("Load() error = %v, want missing SUPABASE_URL", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			DataSource: DataSourceConfig{Driver: DriverMemory, Patients: 5},
			Analytics:  AnalyticsConfig{MedicationWindowDays: 30, CorrelationMinAbs: 0.3},
			RateLimit:  RateLimitConfig{RequestsPerSecond: 10, Burst: 20},
			Tracing:    TracingConfig{SampleRate: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid memory", mutate: func(*Config) {}},
		{
			name:   "fixtures without patients",
			mutate: func(c *Config) { c.DataSource.Patients = 0; c.DataSource.Fixtures = "seed.yaml" },
		},
		{
			name:    "no patients and no fixtures",
			mutate:  func(c *Config) { c.DataSource.Patients = 0 },
			wantErr: "datasource.patients",
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.DataSource.Driver = "mysql" },
			wantErr: "unknown datasource.driver",
		},
		{
			name: "supabase with credentials",
			mutate: func(c *Config) {
				c.DataSource.Driver = DriverSupabase
				c.Supabase = SupabaseConfig{URL: "https://x.supabase.co", ServiceKey: "key"}
			},
		},
		{
			name: "supabase missing key",
			mutate: func(c *Config) {
				c.DataSource.Driver = DriverSupabase
				c.Supabase.URL = "https://x.supabase.co"
			},
			wantErr: "SUPABASE_SERVICE_KEY",
		},
		{
			name:    "zero medication window",
			mutate:  func(c *Config) { c.Analytics.MedicationWindowDays = 0 },
			wantErr: "medication_window_days",
		},
		{
			name:    "correlation threshold above one",
			mutate:  func(c *Config) { c.Analytics.CorrelationMinAbs = 1.5 },
			wantErr: "correlation_min_abs",
		},
		{
			name:    "zero burst",
			mutate:  func(c *Config) { c.RateLimit.Burst = 0 },
			wantErr: "ratelimit",
		},
		{
			name:    "tracing without endpoint",
			mutate:  func(c *Config) { c.Tracing.Enabled = true },
			wantErr: "tracing.endpoint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestIsProduction(t *testing.T) {
	if !(ServerConfig{Env: "production"}).IsProduction() {
		t.Error("production env not detected")
	}
	if (ServerConfig{Env: "development"}).IsProduction() {
		t.Error("development reported as production")
	}
}
