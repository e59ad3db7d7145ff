package main

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/ruralhealth/connect/backend/internal/analytics"
	"github.com/ruralhealth/connect/backend/internal/config"
	"github.com/ruralhealth/connect/backend/internal/service"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Print a patient's analytics dashboard as JSON",
	Long: `Compute summaries, trends, heatmap, correlations and recent events
for one patient and print the dashboard as indented JSON.`,
	RunE: runAnalyze,
}

var (
	analyzePatient string
	analyzeRange   string
	analyzeAsOf    string
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzePatient, "patient", "", "Patient id to analyze")
	analyzeCmd.Flags().StringVar(&analyzeRange, "range", string(analytics.DefaultRange), "Time range: 7days, 30days, 90days, 6months, 1year or all")
	analyzeCmd.Flags().StringVar(&analyzeAsOf, "as-of", "", "Reference time in RFC3339 (defaults to now)")
	_ = analyzeCmd.MarkFlagRequired("patient")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	r, err := analytics.ParseTimeRange(analyzeRange)
	if err != nil {
		return err
	}

	now := time.Now()
	if analyzeAsOf != "" {
		now, err = time.Parse(time.RFC3339, analyzeAsOf)
		if err != nil {
			return fmt.Errorf("invalid --as-of: %w", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log := newLogger(cfg.Log, os.Stderr)

	source, err := openDataSource(cfg, log)
	if err != nil {
		return err
	}
	analyticsService := service.NewAnalyticsService(source.patients, service.AnalyticsOptions{
		MedicationWindowDays: cfg.Analytics.MedicationWindowDays,
		CorrelationMinAbs:    cfg.Analytics.CorrelationMinAbs,
	}, nil)

	dashboard, err := analyticsService.GetDashboard(cmd.Context(), analyzePatient, r, now)
	if err != nil {
		return fmt.Errorf("failed to build dashboard: %w", err)
	}

	out, err := json.MarshalIndent(dashboard, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode dashboard: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
