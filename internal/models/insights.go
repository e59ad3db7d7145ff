package models

import "time"

// Confidence represents the confidence level of an insight
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Direction represents the direction of a correlation
type Direction string

const (
	DirectionPositive Direction = "positive"
	DirectionNegative Direction = "negative"
	DirectionNeutral  Direction = "neutral"
)

// TrendDirection is the slope classification of a symptom's severity
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// MedicationEffectClass classifies the severity change around a medication event
type MedicationEffectClass string

const (
	EffectImproved  MedicationEffectClass = "improved"
	EffectWorsened  MedicationEffectClass = "worsened"
	EffectUnchanged MedicationEffectClass = "unchanged"
)

// SymptomSeries is one aligned severity series on the trend date axis.
// A nil value means no observation has been made yet on or before that day.
type SymptomSeries struct {
	Symptom string `json:"symptom"`
	Color   string `json:"color"`
	Values  []*int `json:"values"`
}

// TrendData holds the aligned trend series for the selected symptoms
type TrendData struct {
	Range  string          `json:"range"`
	Start  time.Time       `json:"start"`
	End    time.Time       `json:"end"`
	Dates  []string        `json:"dates"`
	Series []SymptomSeries `json:"series"`
}

// CorrelationMatrix holds pairwise Pearson coefficients indexed by Symptoms
type CorrelationMatrix struct {
	Symptoms []string    `json:"symptoms"`
	Matrix   [][]float64 `json:"matrix"`
}

// HeatmapCell is a recorded (symptom, day) severity
type HeatmapCell struct {
	Symptom  string `json:"symptom"`
	Date     string `json:"date"`
	Severity int    `json:"severity"`
}

// HeatmapData is the sparse calendar heatmap for a window
type HeatmapData struct {
	Symptoms []string      `json:"symptoms"`
	Dates    []string      `json:"dates"`
	Cells    []HeatmapCell `json:"cells"`
}

// CorrelationInsight holds the result of a correlation calculation between two symptoms
type CorrelationInsight struct {
	SymptomA    string     `json:"symptom_a"`
	SymptomB    string     `json:"symptom_b"`
	Coefficient float64    `json:"coefficient"` // Pearson r value (-1 to 1)
	PValue      float64    `json:"p_value"`
	SampleSize  int        `json:"sample_size"` // Number of common days
	Confidence  Confidence `json:"confidence"`
	Direction   Direction  `json:"direction"`
	Description string     `json:"description"`
}

// SymptomSummary is the per-symptom statistical overview for a window
type SymptomSummary struct {
	Symptom        string         `json:"symptom"`
	Count          int            `json:"count"`
	Average        float64        `json:"average"`
	Min            int            `json:"min"`
	Max            int            `json:"max"`
	LatestSeverity *int           `json:"latest_severity,omitempty"`
	LatestDate     *time.Time     `json:"latest_date,omitempty"`
	Trend          TrendDirection `json:"trend"`
}

// MedicationEffect is the before/after severity comparison around a medication event.
// A zero average with a zero count means there was no data, not zero severity.
type MedicationEffect struct {
	MedicationEventID string                `json:"medication_event_id"`
	Symptom           string                `json:"symptom"`
	WindowDays        int                   `json:"window_days"`
	BeforeAverage     float64               `json:"before_average"`
	AfterAverage      float64               `json:"after_average"`
	BeforeCount       int                   `json:"before_count"`
	AfterCount        int                   `json:"after_count"`
	Change            float64               `json:"change"`
	Effect            MedicationEffectClass `json:"effect"`
}

// PatientDashboard aggregates the analytics views of a patient
type PatientDashboard struct {
	PatientID    string             `json:"patient_id"`
	PatientName  string             `json:"patient_name"`
	ComputedAt   time.Time          `json:"computed_at"`
	Summaries    []SymptomSummary   `json:"summaries"`
	Trends       *TrendData         `json:"trends"`
	Heatmap      *HeatmapData       `json:"heatmap"`
	Correlations *CorrelationMatrix `json:"correlations"`
	RecentEvents []TimelineEvent    `json:"recent_events"`
}
