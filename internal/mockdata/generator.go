// Package mockdata generates deterministic demo patients with symptom logs
// and medical records. The same options always produce the same data.
package mockdata

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/ruralhealth/connect/backend/internal/models"
)

// Defaults used when Options leaves a field zero
const (
	DefaultPatients = 5
	DefaultDays     = 120
	DefaultSeed     = 42
)

// namespace for deterministic record ids
var idNamespace = uuid.MustParse("6f1c2a4e-3b7d-4c59-9a0e-5d8f1b2c3e4a")

// Options controls the generated dataset
type Options struct {
	Patients int
	Days     int
	Seed     uint64
	// Now anchors the generated history; entries fall in the Days before it
	Now time.Time
}

type condition struct {
	name       string
	symptoms   []string
	medication string
	dosage     string
	frequency  string
}

var conditions = []condition{
	{name: "Migraine", symptoms: []string{"Headache", "Nausea", "Light Sensitivity"}, medication: "Sumatriptan", dosage: "50mg", frequency: "as needed"},
	{name: "Hypertension", symptoms: []string{"Headache", "Dizziness", "Fatigue"}, medication: "Lisinopril", dosage: "10mg", frequency: "once daily"},
	{name: "Type 2 Diabetes", symptoms: []string{"Fatigue", "Thirst", "Blurred Vision"}, medication: "Metformin", dosage: "500mg", frequency: "twice daily"},
	{name: "Asthma", symptoms: []string{"Shortness of Breath", "Cough", "Chest Tightness"}, medication: "Salbutamol", dosage: "100mcg", frequency: "as needed"},
	{name: "Osteoarthritis", symptoms: []string{"Joint Pain", "Stiffness", "Fatigue"}, medication: "Ibuprofen", dosage: "400mg", frequency: "three times daily"},
}

var firstNames = []string{"Amara", "Jonas", "Priya", "Mateo", "Grace", "Tomasz", "Aiyana", "Kwame", "Lucia", "Hamid"}
var lastNames = []string{"Nwosu", "Berg", "Raman", "Alvarez", "Whitehorse", "Kowalski", "Begay", "Mensah", "Ferraro", "Karimi"}
var providers = []string{"Dr. Okafor", "Dr. Lindqvist", "Dr. Chen", "Nurse Practitioner Diaz"}

var symptomNotes = []string{
	"Worse in the morning",
	"Eased after rest",
	"Kept me up at night",
	"Triggered by heat, then settled",
	`Described as "pressing"`,
}

// Generate builds the demo dataset
func Generate(opts Options) []models.PatientFixture {
	if opts.Patients <= 0 {
		opts.Patients = DefaultPatients
	}
	if opts.Days <= 0 {
		opts.Days = DefaultDays
	}
	if opts.Seed == 0 {
		opts.Seed = DefaultSeed
	}
	if opts.Now.IsZero() {
		opts.Now = time.Date(2025, time.June, 30, 12, 0, 0, 0, time.UTC)
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))

	fixtures := make([]models.PatientFixture, 0, opts.Patients)
	for i := 0; i < opts.Patients; i++ {
		fixtures = append(fixtures, generatePatient(rng, i, opts))
	}
	return fixtures
}

func generatePatient(rng *rand.Rand, index int, opts Options) models.PatientFixture {
	patientID := fmt.Sprintf("patient-%03d", index+1)
	name := fmt.Sprintf("%s %s", firstNames[index%len(firstNames)], lastNames[(index*3+1)%len(lastNames)])
	start := opts.Now.AddDate(0, 0, -opts.Days)

	primary := conditions[index%len(conditions)]
	secondary := conditions[(index+2)%len(conditions)]

	// Medication starts part way through the history so there is a before and after
	medStart := day(start, opts.Days/3+rng.IntN(opts.Days/6+1))

	ids := idSource{patientID: patientID}
	symptoms := make(map[string][]models.SymptomEntry)
	for _, symptom := range uniqueSymptoms(primary, secondary) {
		base := 3 + rng.IntN(5)
		for d := 0; d < opts.Days; d++ {
			// roughly three reports a week per symptom
			if rng.Float64() > 0.45 {
				continue
			}
			at := day(start, d).Add(time.Duration(7+rng.IntN(14)) * time.Hour)
			severity := base + rng.IntN(3) - 1
			if at.After(medStart) && contains(primary.symptoms, symptom) {
				severity -= 2
			}
			severity = clamp(severity, models.MinSeverity, models.MaxSeverity)

			entry := models.SymptomEntry{
				ID:       ids.next("symptom"),
				Symptom:  symptom,
				Severity: severity,
				Date:     at,
			}
			if rng.IntN(6) == 0 {
				note := symptomNotes[rng.IntN(len(symptomNotes))]
				entry.Notes = &note
			}
			symptoms[symptom] = append(symptoms[symptom], entry)
		}
	}

	return models.PatientFixture{
		PatientID:   patientID,
		PatientName: name,
		Symptoms:    symptoms,
		Record:      generateRecord(rng, &ids, start, medStart, opts, primary, secondary),
	}
}

func generateRecord(rng *rand.Rand, ids *idSource, start, medStart time.Time, opts Options, primary, secondary condition) *models.PatientMedicalRecord {
	record := &models.PatientMedicalRecord{}

	diagnosed := day(start, rng.IntN(opts.Days/6+1))
	record.Conditions = append(record.Conditions,
		models.Condition{ID: ids.next("condition"), Name: primary.name, Status: models.ConditionConfirmed, DiagnosisDate: diagnosed},
		models.Condition{ID: ids.next("condition"), Name: secondary.name, Status: models.ConditionProvisional, DiagnosisDate: day(start, opts.Days/2)},
	)

	primaryName := primary.name
	record.Medications = append(record.Medications, models.Medication{
		ID:           ids.next("medication"),
		Name:         primary.medication,
		Dosage:       primary.dosage,
		Frequency:    primary.frequency,
		StartDate:    medStart,
		Status:       models.MedicationActive,
		ForCondition: &primaryName,
	})

	trialEnd := day(start, opts.Days/2+14)
	secondaryName := secondary.name
	record.Medications = append(record.Medications, models.Medication{
		ID:           ids.next("medication"),
		Name:         secondary.medication,
		Dosage:       secondary.dosage,
		Frequency:    secondary.frequency,
		StartDate:    day(start, opts.Days/2),
		EndDate:      &trialEnd,
		Status:       models.MedicationDiscontinued,
		ForCondition: &secondaryName,
	})

	for d := 0; d < opts.Days; d += 30 {
		at := day(start, d).Add(10 * time.Hour)
		hba1c := 5.2 + rng.Float64()*2
		record.LabResults = append(record.LabResults, models.LabResult{
			ID:             ids.next("lab"),
			Name:           "HbA1c",
			Value:          fmt.Sprintf("%.1f", hba1c),
			Unit:           "%",
			ReferenceRange: strPtr("4.0-5.6"),
			Date:           at,
			Abnormal:       hba1c > 5.6,
		})
	}

	for d := 0; d < opts.Days; d += 14 {
		at := day(start, d).Add(9 * time.Hour)
		systolic := 110 + rng.IntN(40)
		diastolic := 70 + rng.IntN(20)
		record.VitalSigns = append(record.VitalSigns,
			models.VitalSign{ID: ids.next("vital"), Type: "blood_pressure", Value: fmt.Sprintf("%d/%d", systolic, diastolic), Unit: "mmHg", Date: at},
			models.VitalSign{ID: ids.next("vital"), Type: "heart_rate", Value: fmt.Sprintf("%d", 60+rng.IntN(35)), Unit: "bpm", Date: at},
		)
	}

	record.Notes = append(record.Notes,
		models.ClinicalNote{
			ID:       ids.next("note"),
			Provider: providers[rng.IntN(len(providers))],
			Date:     diagnosed,
			Content:  fmt.Sprintf("Initial assessment. Presentation consistent with %s. Patient reports recurring %s; advised a symptom diary and follow-up by video consultation.", primary.name, primary.symptoms[0]),
			Tags:     []string{"assessment"},
		},
		models.ClinicalNote{
			ID:       ids.next("note"),
			Provider: providers[rng.IntN(len(providers))],
			Date:     medStart,
			Content:  fmt.Sprintf("Started %s %s %s.", primary.medication, primary.dosage, primary.frequency),
			Tags:     []string{"medication"},
		},
	)

	return record
}

// idSource yields deterministic UUIDs derived from the patient and a counter
type idSource struct {
	patientID string
	n         int
}

func (s *idSource) next(kind string) string {
	s.n++
	return uuid.NewSHA1(idNamespace, []byte(fmt.Sprintf("%s/%s/%d", s.patientID, kind, s.n))).String()
}

func uniqueSymptoms(conds ...condition) []string {
	var out []string
	for _, c := range conds {
		for _, s := range c.symptoms {
			if !contains(out, s) {
				out = append(out, s)
			}
		}
	}
	return out
}

func day(start time.Time, offset int) time.Time {
	y, m, d := start.AddDate(0, 0, offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, start.Location())
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func strPtr(s string) *string { return &s }
