package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-09-01")
	assert.NoError(t, err)
	assert.Equal(t, day(2025, time.September, 1), got)

	for _, bad := range []string{"", "2025-9-1", "01.09.2025", "2025-13-01", "tomorrow"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestNights(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"two nights", day(2025, time.September, 1), day(2025, time.September, 3), 2},
		{"same day is zero nights", day(2025, time.September, 1), day(2025, time.September, 1), 0},
		{"single night", day(2025, time.September, 1), day(2025, time.September, 2), 1},
		{"across month end", day(2025, time.August, 30), day(2025, time.September, 2), 3},
		{"inverted interval is negative", day(2025, time.September, 3), day(2025, time.September, 1), -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Nights(tt.from, tt.to))
		})
	}
}

// Nights must ignore any time-of-day that leaked into the inputs; a stay is
// counted in calendar days regardless of zones or hours.
func TestNightsIgnoresTimeOfDay(t *testing.T) {
	from := time.Date(2025, time.September, 1, 23, 30, 0, 0, time.FixedZone("CET", 3600))
	to := time.Date(2025, time.September, 3, 0, 5, 0, 0, time.UTC)
	assert.Equal(t, 2, Nights(from, to))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aFrom, aTo, bFrom, bTo     time.Time
		want                       bool
	}{
		{
			"plain overlap",
			day(2025, time.September, 1), day(2025, time.September, 3),
			day(2025, time.September, 2), day(2025, time.September, 4),
			true,
		},
		{
			"shared boundary day blocks",
			day(2025, time.September, 1), day(2025, time.September, 3),
			day(2025, time.September, 3), day(2025, time.September, 5),
			true,
		},
		{
			"contained interval",
			day(2025, time.September, 1), day(2025, time.September, 10),
			day(2025, time.September, 4), day(2025, time.September, 5),
			true,
		},
		{
			"disjoint",
			day(2025, time.September, 1), day(2025, time.September, 3),
			day(2025, time.September, 4), day(2025, time.September, 6),
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aFrom, tt.aTo, tt.bFrom, tt.bTo))
			// overlap is symmetric
			assert.Equal(t, tt.want, Overlaps(tt.bFrom, tt.bTo, tt.aFrom, tt.aTo))
		})
	}
}

func TestVariableSymbol(t *testing.T) {
	vs := VariableSymbol(day(2025, time.September, 1), day(2025, time.September, 3))
	assert.Equal(t, "010925030925", vs)
}
