package repository

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/ruralhealth/connect/backend/internal/models"
)

// LoadFixtures reads patient fixtures from a YAML file
func LoadFixtures(path string) ([]models.PatientFixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}
	return ParseFixtures(raw)
}

// ParseFixtures decodes a YAML fixture document and checks that every
// patient has an id and every entry a severity in range
func ParseFixtures(raw []byte) ([]models.PatientFixture, error) {
	var set models.FixtureSet
	if err := yaml.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}

	for i, p := range set.Patients {
		if p.PatientID == "" {
			return nil, fmt.Errorf("fixture patient %d has no patient_id", i)
		}
		for name, entries := range p.Symptoms {
			for _, e := range entries {
				if e.Severity < models.MinSeverity || e.Severity > models.MaxSeverity {
					return nil, fmt.Errorf("fixture patient %s: %s entry %s has severity %d outside [%d, %d]",
						p.PatientID, name, e.ID, e.Severity, models.MinSeverity, models.MaxSeverity)
				}
			}
		}
	}

	return set.Patients, nil
}
