package repository

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureYAML = `
patients:
  - patient_id: p1
    patient_name: Amara Nwosu
    symptoms:
      Headache:
        - id: e1
          severity: 6
          date: 2025-03-01T09:00:00Z
          notes: "woke up with it"
        - id: e2
          severity: 4
          date: 2025-03-03T09:00:00Z
    record:
      conditions:
        - id: c1
          name: Migraine
          status: confirmed
          diagnosis_date: 2025-02-20T00:00:00Z
      medications:
        - id: m1
          name: Sumatriptan
          dosage: 50mg
          frequency: as needed
          start_date: 2025-02-21T00:00:00Z
          status: active
          for_condition: Migraine
      vital_signs:
        - id: v1
          type: blood_pressure
          value: "120/80"
          unit: mmHg
          date: 2025-03-01T09:05:00Z
  - patient_id: p2
    patient_name: Jonas Berg
`

func TestParseFixtures(t *testing.T) {
	fixtures, err := ParseFixtures([]byte(fixtureYAML))
	require.NoError(t, err)
	require.Len(t, fixtures, 2)

	p1 := fixtures[0]
	assert.Equal(t, "Amara Nwosu", p1.PatientName)
	require.Len(t, p1.Symptoms["Headache"], 2)
	first := p1.Symptoms["Headache"][0]
	assert.Equal(t, 6, first.Severity)
	assert.True(t, first.Date.Equal(time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)))
	require.NotNil(t, first.Notes)
	assert.Equal(t, "woke up with it", *first.Notes)

	require.NotNil(t, p1.Record)
	require.Len(t, p1.Record.Medications, 1)
	require.NotNil(t, p1.Record.Medications[0].ForCondition)
	assert.Equal(t, "Migraine", *p1.Record.Medications[0].ForCondition)
	assert.Equal(t, "120/80", p1.Record.VitalSigns[0].Value)

	data := p1.SymptomData()
	assert.Equal(t, "Headache", data.Symptoms["Headache"][1].Symptom)

	assert.Nil(t, fixtures[1].Record)
	assert.Equal(t, "p2", fixtures[1].MedicalRecord().PatientID)
}

func TestParseFixturesRejectsInvalidData(t *testing.T) {
	tests := map[string]string{
		"missing id": `
patients:
  - patient_name: Nobody
`,
		"severity out of range": `
patients:
  - patient_id: p1
    symptoms:
      Cough:
        - id: e1
          severity: 11
          date: 2025-03-01T09:00:00Z
`,
		"malformed": `patients: [`,
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseFixtures([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFixtures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patients.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0o600))

	fixtures, err := LoadFixtures(path)
	require.NoError(t, err)
	assert.Len(t, fixtures, 2)

	_, err = LoadFixtures(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
