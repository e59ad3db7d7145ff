package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ruralhealth/connect/backend/internal/config"
	"github.com/ruralhealth/connect/backend/internal/logger"
	"github.com/ruralhealth/connect/backend/internal/service"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a patient's symptom log as CSV",
	Long:  `Write one CSV row per symptom entry (Date,Symptom,Severity,Notes), ordered by date.`,
	RunE:  runExport,
}

var (
	exportPatient string
	exportOut     string
)

func init() {
	exportCmd.Flags().StringVar(&exportPatient, "patient", "", "Patient id to export")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (defaults to stdout)")
	_ = exportCmd.MarkFlagRequired("patient")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Logs go to stderr so stdout carries only the CSV
	log := newLogger(cfg.Log, os.Stderr)

	source, err := openDataSource(cfg, log)
	if err != nil {
		return err
	}
	patientService := service.NewPatientService(source.patients, nil)

	var out io.Writer = cmd.OutOrStdout()
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", exportOut, err)
		}
		defer f.Close()
		out = f
	}

	w := bufio.NewWriter(out)
	if err := patientService.ExportSymptoms(cmd.Context(), exportPatient, w); err != nil {
		return fmt.Errorf("failed to export symptoms: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	if exportOut != "" {
		log.Info("symptoms exported",
			logger.String("patient_id", exportPatient),
			logger.String("file", exportOut),
		)
	}
	return nil
}
