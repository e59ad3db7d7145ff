package service

import (
	"fmt"
	"time"

	"github.com/ruralhealth/connect/backend/internal/models"
)

const testPatientID = "patient-1"

// testNow is the reference instant every service test computes against
var testNow = time.Date(2025, time.April, 30, 12, 0, 0, 0, time.UTC)

// daysAgo returns 09:00 UTC n days before testNow
func daysAgo(n int) time.Time {
	return time.Date(2025, time.April, 30, 9, 0, 0, 0, time.UTC).AddDate(0, 0, -n)
}

func symptomEntry(symptom string, severity, ago int) models.SymptomEntry {
	return models.SymptomEntry{
		ID:       fmt.Sprintf("%s-%d", symptom, ago),
		Symptom:  symptom,
		Severity: severity,
		Date:     daysAgo(ago),
	}
}

func testSymptomData() *models.PatientSymptomData {
	return &models.PatientSymptomData{
		PatientID:   testPatientID,
		PatientName: "Ada Okafor",
		Symptoms: map[string][]models.SymptomEntry{
			"Headache": {
				symptomEntry("Headache", 8, 20),
				symptomEntry("Headache", 7, 15),
				symptomEntry("Headache", 3, 5),
				symptomEntry("Headache", 2, 2),
			},
			"Nausea": {
				symptomEntry("Nausea", 4, 20),
				symptomEntry("Nausea", 4, 15),
				symptomEntry("Nausea", 2, 5),
			},
		},
	}
}

func testMedicalRecord() *models.PatientMedicalRecord {
	migraine := "Migraine"
	return &models.PatientMedicalRecord{
		PatientID: testPatientID,
		Conditions: []models.Condition{
			{ID: "c1", Name: "Migraine", Status: models.ConditionConfirmed, DiagnosisDate: daysAgo(40)},
		},
		Medications: []models.Medication{
			{
				ID:           "m1",
				Name:         "Sumatriptan",
				Dosage:       "50mg",
				Frequency:    "as needed",
				StartDate:    daysAgo(10),
				Status:       models.MedicationActive,
				ForCondition: &migraine,
			},
		},
		LabResults: []models.LabResult{
			{ID: "l1", Name: "Hemoglobin", Value: "13.5", Unit: "g/dL", Date: daysAgo(3)},
		},
	}
}
