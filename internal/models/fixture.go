package models

// PatientFixture is one patient's complete dataset as seeded into a data
// source, either generated or loaded from a YAML fixture file
type PatientFixture struct {
	PatientID   string                    `json:"patient_id" yaml:"patient_id"`
	PatientName string                    `json:"patient_name" yaml:"patient_name"`
	Symptoms    map[string][]SymptomEntry `json:"symptoms" yaml:"symptoms"`
	Record      *PatientMedicalRecord     `json:"record,omitempty" yaml:"record,omitempty"`
}

// SymptomData returns the fixture's symptom log, with each entry's Symptom
// set from the map key it is filed under
func (f *PatientFixture) SymptomData() *PatientSymptomData {
	data := &PatientSymptomData{
		PatientID:   f.PatientID,
		PatientName: f.PatientName,
		Symptoms:    make(map[string][]SymptomEntry, len(f.Symptoms)),
	}
	for name, entries := range f.Symptoms {
		copied := make([]SymptomEntry, len(entries))
		for i, e := range entries {
			e.Symptom = name
			copied[i] = e
		}
		data.Symptoms[name] = copied
	}
	return data
}

// MedicalRecord returns the fixture's record, or an empty record for the
// patient when the fixture has none
func (f *PatientFixture) MedicalRecord() *PatientMedicalRecord {
	if f.Record == nil {
		return &PatientMedicalRecord{PatientID: f.PatientID}
	}
	record := f.Record.Clone()
	record.PatientID = f.PatientID
	return record
}

// FixtureSet is the top-level shape of a fixture file
type FixtureSet struct {
	Patients []PatientFixture `json:"patients" yaml:"patients"`
}
