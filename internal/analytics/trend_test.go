package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruralhealth/connect/backend/internal/models"
)

func values(series models.SymptomSeries) []any {
	out := make([]any, len(series.Values))
	for i, v := range series.Values {
		if v == nil {
			out[i] = nil
			continue
		}
		out[i] = *v
	}
	return out
}

func TestBuildTrendSeriesForwardFills(t *testing.T) {
	data := symptomData(
		entry("Headache", 5, day(1)),
		entry("Headache", 8, day(5)),
	)

	// A 7 day range ending on day 8 starts on day 1
	trend := BuildTrendSeries(data, []string{"Headache"}, Range7Days, day(8))

	require.Len(t, trend.Dates, 8)
	assert.Equal(t, "2025-03-01", trend.Dates[0])
	require.Len(t, trend.Series, 1)
	assert.Equal(t, []any{5, 5, 5, 5, 8, 8, 8, 8}, values(trend.Series[0]))
}

func TestBuildTrendSeriesLeavesDaysBeforeFirstObservationUnset(t *testing.T) {
	data := symptomData(
		entry("Headache", 5, day(3)),
		entry("Headache", 8, day(5)),
	)

	trend := BuildTrendSeries(data, []string{"Headache"}, Range7Days, day(8))

	assert.Equal(t, []any{nil, nil, 5, 5, 8, 8, 8, 8}, values(trend.Series[0]))
}

func TestBuildTrendSeriesDoesNotCarryValuesAcrossWindowStart(t *testing.T) {
	data := symptomData(
		entry("Nausea", 9, day(1)),
		entry("Nausea", 4, day(12)),
	)

	// Window covers days 3 to 10 and the day 1 report is outside it
	trend := BuildTrendSeries(data, []string{"Nausea"}, Range7Days, day(10))

	for _, v := range trend.Series[0].Values {
		assert.Nil(t, v)
	}
}

func TestBuildTrendSeriesLatestEntryOfDayWins(t *testing.T) {
	data := symptomData(
		entry("Fatigue", 7, day(2).Add(6*time.Hour)),
		entry("Fatigue", 3, day(2)),
	)

	trend := BuildTrendSeries(data, []string{"Fatigue"}, Range7Days, day(8))

	assert.Equal(t, []any{nil, 7, 7, 7, 7, 7, 7, 7}, values(trend.Series[0]))
}

func TestBuildTrendSeriesSelection(t *testing.T) {
	data := symptomData(series("Cough", 2, 3)...)

	selected := []string{"Cough", "Fever", "Cough", "a", "b", "c", "d", "e", "f", "g"}
	trend := BuildTrendSeries(data, selected, Range7Days, day(8))

	require.Len(t, trend.Series, 9, "duplicates collapse")
	assert.Equal(t, "Cough", trend.Series[0].Symptom)
	assert.Equal(t, SeriesPalette[0], trend.Series[0].Color)
	assert.Equal(t, SeriesPalette[1], trend.Series[1].Color)
	assert.Equal(t, SeriesPalette[0], trend.Series[8].Color, "palette cycles")

	// An unknown symptom yields a fully unset series
	assert.Equal(t, "Fever", trend.Series[1].Symptom)
	require.Len(t, trend.Series[1].Values, len(trend.Dates))
	for _, v := range trend.Series[1].Values {
		assert.Nil(t, v)
	}
}

func TestBuildTrendSeriesNilData(t *testing.T) {
	trend := BuildTrendSeries(nil, []string{"Headache"}, Range7Days, day(8))

	require.Len(t, trend.Series, 1)
	assert.Len(t, trend.Series[0].Values, 8)
	assert.Equal(t, string(Range7Days), trend.Range)
}

func TestBuildTrendSeriesDoesNotMutateInput(t *testing.T) {
	data := symptomData(
		entry("Headache", 8, day(5)),
		entry("Headache", 5, day(1)),
	)
	before := data.Clone()

	BuildTrendSeries(data, []string{"Headache"}, Range7Days, day(8))

	assert.Equal(t, before, data)
}
