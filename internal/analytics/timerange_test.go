package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeRange(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeRange
		wantErr bool
	}{
		{name: "empty uses default", input: "", want: Range30Days},
		{name: "7 days", input: "7days", want: Range7Days},
		{name: "6 months", input: "6months", want: Range6Months},
		{name: "all", input: "all", want: RangeAll},
		{name: "unknown", input: "fortnight", wantErr: true},
		{name: "wrong case", input: "7Days", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeRange(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownTimeRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeRangeStartFrom(t *testing.T) {
	now := time.Date(2025, time.August, 31, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		r    TimeRange
		want time.Time
	}{
		{Range7Days, time.Date(2025, time.August, 24, 15, 30, 0, 0, time.UTC)},
		{Range30Days, time.Date(2025, time.August, 1, 15, 30, 0, 0, time.UTC)},
		{Range90Days, time.Date(2025, time.June, 2, 15, 30, 0, 0, time.UTC)},
		// AddDate normalizes February 31st to March 3rd
		{Range6Months, time.Date(2025, time.March, 3, 15, 30, 0, 0, time.UTC)},
		{Range1Year, time.Date(2024, time.August, 31, 15, 30, 0, 0, time.UTC)},
		{RangeAll, time.Date(2015, time.August, 31, 15, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			assert.True(t, tt.r.StartFrom(now).Equal(tt.want), "got %s", tt.r.StartFrom(now))
		})
	}
}

func TestTimeRangeStartFromPanicsOnUnknown(t *testing.T) {
	assert.Panics(t, func() {
		TimeRange("forever").StartFrom(time.Now())
	})
}

func TestResolveWindowCoversWholeDays(t *testing.T) {
	now := time.Date(2025, time.March, 10, 15, 30, 0, 0, time.UTC)
	w := ResolveWindow(Range7Days, now)

	assert.Equal(t, time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC), w.Start)
	assert.True(t, w.Contains(time.Date(2025, time.March, 10, 23, 59, 59, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2025, time.March, 2, 23, 59, 59, 0, time.UTC)))
}

func TestDateLabels(t *testing.T) {
	start := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)

	t.Run("same day yields one label", func(t *testing.T) {
		assert.Equal(t, []string{"2025-03-01"}, DateLabels(start, start))
	})

	t.Run("next day yields two ascending labels", func(t *testing.T) {
		assert.Equal(t, []string{"2025-03-01", "2025-03-02"}, DateLabels(start, start.AddDate(0, 0, 1)))
	})

	t.Run("end before start yields empty", func(t *testing.T) {
		labels := DateLabels(start, start.AddDate(0, 0, -1))
		assert.NotNil(t, labels)
		assert.Empty(t, labels)
	})

	t.Run("label count spans whole days", func(t *testing.T) {
		end := start.AddDate(0, 0, 29)
		labels := DateLabels(start, end)
		require.Len(t, labels, 30)
		assert.Equal(t, "2025-03-30", labels[29])
	})

	t.Run("crosses month end", func(t *testing.T) {
		feb := time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, []string{"2024-02-28", "2024-02-29", "2024-03-01"}, DateLabels(feb, feb.AddDate(0, 0, 2)))
	})
}

func TestDateLabelsAcrossDaylightSaving(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	// Clocks spring forward on 2025-03-09, a 23 hour day
	start := time.Date(2025, time.March, 8, 0, 0, 0, 0, loc)
	end := time.Date(2025, time.March, 10, 0, 0, 0, 0, loc)

	assert.Equal(t, []string{"2025-03-08", "2025-03-09", "2025-03-10"}, DateLabels(start, end))
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, SameDay(a, a.Add(23*time.Hour)))
	assert.False(t, SameDay(a, a.Add(24*time.Hour)))
}
