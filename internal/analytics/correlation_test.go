package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruralhealth/connect/backend/internal/models"
)

func TestBuildCorrelationMatrix(t *testing.T) {
	var entries []models.SymptomEntry
	entries = append(entries, series("Headache", 2, 4, 6, 8)...)
	entries = append(entries, series("Nausea", 1, 2, 3, 4)...)
	entries = append(entries, series("Dizziness", 9, 7, 5, 3)...)
	entries = append(entries, series("Fatigue", 5, 5, 5, 5)...)
	entries = append(entries, series("Cough", 3, 9)...)

	m := BuildCorrelationMatrix(symptomData(entries...), nil)

	require.Equal(t, []string{"Cough", "Dizziness", "Fatigue", "Headache", "Nausea"}, m.Symptoms)
	idx := func(name string) int {
		for i, s := range m.Symptoms {
			if s == name {
				return i
			}
		}
		t.Fatalf("symptom %s missing", name)
		return -1
	}

	assert.InDelta(t, 1.0, m.Matrix[idx("Headache")][idx("Nausea")], 1e-9)
	assert.InDelta(t, -1.0, m.Matrix[idx("Headache")][idx("Dizziness")], 1e-9)
	assert.Equal(t, 0.0, m.Matrix[idx("Headache")][idx("Fatigue")], "constant series has no variance")
	assert.Equal(t, 0.0, m.Matrix[idx("Cough")][idx("Headache")], "two common days is below the guard")
}

func TestBuildCorrelationMatrixDiagonalAndSymmetry(t *testing.T) {
	var entries []models.SymptomEntry
	entries = append(entries, series("A", 3, 7, 2, 8, 5, 6, 1)...)
	entries = append(entries, series("B", 4, 6, 3, 9, 4, 5, 2)...)
	entries = append(entries, series("C", 1, 1, 10, 2)...)
	entries = append(entries, series("D", 6)...)
	// E is recorded on a disjoint set of days
	entries = append(entries, entry("E", 5, day(20)), entry("E", 6, day(21)), entry("E", 2, day(22)))

	m := BuildCorrelationMatrix(symptomData(entries...), nil)

	for i := range m.Matrix {
		require.Len(t, m.Matrix[i], len(m.Symptoms))
		assert.Equal(t, 1.0, m.Matrix[i][i])
		for j := range m.Matrix[i] {
			assert.Equal(t, m.Matrix[i][j], m.Matrix[j][i], "matrix[%d][%d]", i, j)
			assert.GreaterOrEqual(t, m.Matrix[i][j], -1.0)
			assert.LessOrEqual(t, m.Matrix[i][j], 1.0)
		}
	}

	// E shares no day with anyone
	for j := 0; j < 4; j++ {
		assert.Equal(t, 0.0, m.Matrix[4][j])
	}
}

func TestBuildCorrelationMatrixUsesOnlyCommonDays(t *testing.T) {
	data := symptomData(
		entry("A", 1, day(1)), entry("A", 2, day(2)), entry("A", 3, day(3)), entry("A", 10, day(4)),
		entry("B", 2, day(1)), entry("B", 4, day(2)), entry("B", 6, day(3)), entry("B", 1, day(9)),
	)

	m := BuildCorrelationMatrix(data, nil)

	assert.InDelta(t, 1.0, m.Matrix[0][1], 1e-9)
}

func TestBuildCorrelationMatrixMixedOffsets(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	severities := []int{2, 9, 2, 9, 2}

	var entries []models.SymptomEntry
	for i, sev := range severities {
		// 23:30 the previous evening in New York is 04:30Z on day i+1
		evening := time.Date(2025, time.March, i, 23, 30, 0, 0, est)
		entries = append(entries, entry("Aches", sev, evening), entry("Bloating", sev, day(i+1)))
	}
	data := symptomData(entries...)

	m := BuildCorrelationMatrix(data, nil)
	assert.InDelta(t, 1.0, m.Matrix[0][1], 1e-9, "same UTC days pair up")

	heatmap := BuildHeatmap(data, Range30Days, day(6))
	byDay := map[string][2]int{}
	for _, c := range heatmap.Cells {
		pair := byDay[c.Date]
		if c.Symptom == "Aches" {
			pair[0] = c.Severity
		} else {
			pair[1] = c.Severity
		}
		byDay[c.Date] = pair
	}
	for date, pair := range byDay {
		assert.Equal(t, pair[0], pair[1], "heatmap pairs %s the same way", date)
	}

	// In New York the evening reports fall a day earlier
	shifted := BuildCorrelationMatrix(data, est)
	assert.InDelta(t, -1.0, shifted.Matrix[0][1], 1e-9)
	assert.InDelta(t, -1.0, CorrelationInsights(data, 0, est)[0].Coefficient, 1e-9)
}

func TestBuildCorrelationMatrixEmpty(t *testing.T) {
	m := BuildCorrelationMatrix(nil, nil)
	assert.Empty(t, m.Symptoms)
	assert.Empty(t, m.Matrix)

	single := BuildCorrelationMatrix(symptomData(series("Cough", 4, 5)...), nil)
	assert.Equal(t, [][]float64{{1}}, single.Matrix)
}

func TestPearson(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
		want float64
	}{
		{name: "perfect positive", x: []float64{1, 2, 3}, y: []float64{2, 4, 6}, want: 1},
		{name: "perfect negative", x: []float64{1, 2, 3}, y: []float64{3, 2, 1}, want: -1},
		{name: "uncorrelated", x: []float64{1, 2, 3, 4}, y: []float64{1, 3, 3, 1}, want: 0},
		{name: "constant", x: []float64{4, 4, 4}, y: []float64{1, 2, 3}, want: 0},
		{name: "mismatched lengths", x: []float64{1, 2}, y: []float64{1}, want: 0},
		{name: "empty", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, pearson(tt.x, tt.y), 1e-9)
		})
	}
}

func TestCorrelationInsights(t *testing.T) {
	var entries []models.SymptomEntry
	entries = append(entries, series("Headache", 2, 4, 6, 8, 5)...)
	entries = append(entries, series("Nausea", 1, 2, 3, 4, 3)...)
	entries = append(entries, series("Fatigue", 5, 3, 6, 2, 5)...)
	entries = append(entries, series("Cough", 3, 9)...)

	insights := CorrelationInsights(symptomData(entries...), 0, nil)

	// Cough pairs have only two common days
	require.Len(t, insights, 3)
	for i := 1; i < len(insights); i++ {
		assert.GreaterOrEqual(t, abs(insights[i-1].Coefficient), abs(insights[i].Coefficient))
	}

	top := insights[0]
	assert.Equal(t, "Headache", top.SymptomA)
	assert.Equal(t, "Nausea", top.SymptomB)
	assert.Equal(t, 5, top.SampleSize)
	assert.Equal(t, models.DirectionPositive, top.Direction)
	assert.Less(t, top.PValue, 0.05)
	assert.Equal(t, models.ConfidenceLow, top.Confidence, "five days is too few for more")
	assert.Contains(t, top.Description, "positively correlated")

	strong := CorrelationInsights(symptomData(entries...), 0.9, nil)
	require.Len(t, strong, 1)
	assert.Equal(t, "Headache", strong[0].SymptomA)
}

func TestCorrelationInsightsNil(t *testing.T) {
	insights := CorrelationInsights(nil, 0.3, nil)
	assert.NotNil(t, insights)
	assert.Empty(t, insights)
}

func TestCorrelationPValue(t *testing.T) {
	// t = 0.5 * sqrt(8 / 0.75) = 1.633 with 8 degrees of freedom
	assert.InDelta(t, 0.141, correlationPValue(0.5, 10), 0.005)
	assert.Equal(t, 0.0, correlationPValue(1, 3))
	assert.Equal(t, 0.0, correlationPValue(-1, 10))
	assert.InDelta(t, 1.0, correlationPValue(0, 10), 1e-9)
}

func TestDetermineConfidence(t *testing.T) {
	assert.Equal(t, models.ConfidenceHigh, determineConfidence(0.8, 0.001, 31))
	assert.Equal(t, models.ConfidenceMedium, determineConfidence(0.8, 0.001, 30))
	assert.Equal(t, models.ConfidenceMedium, determineConfidence(-0.4, 0.03, 15))
	assert.Equal(t, models.ConfidenceLow, determineConfidence(0.4, 0.03, 14))
	assert.Equal(t, models.ConfidenceLow, determineConfidence(0.2, 0.001, 60))
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
