package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTimePeriod(t *testing.T, str string) TimePeriod {
	t.Helper()
	period, err := ParseTimePeriod(str)
	require.NoError(t, err)
	return period
}

func TestParseTimePeriod(t *testing.T) {
	period := mustTimePeriod(t, "09:00 - 12:30")
	assert.Equal(t, "09:00 - 12:30", period.String())
	assert.Equal(t, 3*time.Hour+30*time.Minute, period.Duration())

	_, err := ParseTimePeriod("09:00")
	assert.Error(t, err)
	_, err = ParseTimePeriod("bogus - input")
	assert.Error(t, err)
}

func TestTimePeriodIntersectsWith(t *testing.T) {
	base := mustTimePeriod(t, "09:00 - 12:00")

	tests := []struct {
		name       string
		other      string
		intersects bool
	}{
		{"overlapping", "11:00 - 13:00", true},
		{"contained", "10:00 - 11:00", true},
		{"touching end", "12:00 - 13:00", false},
		{"touching start", "08:00 - 09:00", false},
		{"disjoint", "13:00 - 14:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := mustTimePeriod(t, tt.other)
			assert.Equal(t, tt.intersects, base.IntersectsWith(other))
			assert.Equal(t, tt.intersects, other.IntersectsWith(base))
		})
	}
}

func TestTimePeriodIsSubperiodOf(t *testing.T) {
	base := mustTimePeriod(t, "09:00 - 12:00")

	assert.True(t, mustTimePeriod(t, "09:00 - 12:00").IsSubperiodOf(base))
	assert.True(t, mustTimePeriod(t, "10:00 - 11:00").IsSubperiodOf(base))
	assert.False(t, mustTimePeriod(t, "08:00 - 11:00").IsSubperiodOf(base))
	assert.False(t, mustTimePeriod(t, "10:00 - 13:00").IsSubperiodOf(base))
}

func TestTimePeriodMergePeriod(t *testing.T) {
	period := mustTimePeriod(t, "10:00 - 11:00")
	period.MergePeriod(mustTimePeriod(t, "09:00 - 10:30"))
	assert.Equal(t, "09:00 - 11:00", period.String())

	period.MergePeriod(mustTimePeriod(t, "10:30 - 12:00"))
	assert.Equal(t, "09:00 - 12:00", period.String())
}

func TestTimePeriodDiffPeriod(t *testing.T) {
	// An earlier-starting period caps the end at its own start; any other
	// overlap pushes the start past its end. Overlaps can thus leave the
	// period empty rather than trimmed to the uncovered side.
	period := mustTimePeriod(t, "09:00 - 12:00")
	period.DiffPeriod(mustTimePeriod(t, "08:00 - 10:00"))
	assert.Equal(t, "08:00", period.EndTime.Format("15:04"))
	assert.True(t, period.IsEmpty())

	period = mustTimePeriod(t, "09:00 - 12:00")
	period.DiffPeriod(mustTimePeriod(t, "10:00 - 13:00"))
	assert.Equal(t, "13:00", period.StartTime.Format("15:04"))
	assert.True(t, period.IsEmpty())
}

func TestTimePeriodSplitByPeriod(t *testing.T) {
	base := mustTimePeriod(t, "09:00 - 17:00")

	residuals := base.SplitByPeriod(mustTimePeriod(t, "12:00 - 13:00"))
	require.Len(t, residuals, 2)
	assert.Equal(t, "09:00 - 12:00", residuals[0].String())
	assert.Equal(t, "13:00 - 17:00", residuals[1].String())

	residuals = base.SplitByPeriod(mustTimePeriod(t, "09:00 - 13:00"))
	require.Len(t, residuals, 1)
	assert.Equal(t, "13:00 - 17:00", residuals[0].String())

	residuals = base.SplitByPeriod(base)
	assert.Empty(t, residuals)
}

func TestTimePeriodSetDate(t *testing.T) {
	period := mustTimePeriod(t, "09:00 - 10:00")
	date := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)
	period.SetDate(date)

	assert.Equal(t, 2026, period.StartTime.Year())
	assert.Equal(t, time.March, period.StartTime.Month())
	assert.Equal(t, 14, period.EndTime.Day())
	assert.Equal(t, "09:00 - 10:00", period.String())
}

func TestTimePeriodJSONRoundTrip(t *testing.T) {
	period := mustTimePeriod(t, "08:15 - 09:45")
	data, err := json.Marshal(period)
	require.NoError(t, err)
	assert.JSONEq(t, `"08:15 - 09:45"`, string(data))

	var decoded TimePeriod
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, period.String(), decoded.String())
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDatePeriodCalcDays(t *testing.T) {
	single := NewDatePeriod(date(2026, time.May, 10), date(2026, time.May, 10))
	assert.Equal(t, 0, single.CalcDays())

	week := NewDatePeriod(date(2026, time.May, 10), date(2026, time.May, 17))
	assert.Equal(t, 7, week.CalcDays())
}

func TestDatePeriodCalcDaysAcrossDSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// The spring-forward day is only 23 hours long; the count must still
	// agree with SplitToDates.
	period := NewDatePeriod(
		time.Date(2026, time.March, 8, 0, 0, 0, 0, loc),
		time.Date(2026, time.March, 9, 0, 0, 0, 0, loc),
	)
	assert.Equal(t, 1, period.CalcDays())
	assert.Len(t, period.SplitToDates(), 2)
}

func TestDatePeriodInPeriod(t *testing.T) {
	period := NewDatePeriod(date(2026, time.May, 10), date(2026, time.May, 12))

	assert.True(t, period.InPeriod(date(2026, time.May, 10)))
	assert.True(t, period.InPeriod(date(2026, time.May, 12)))
	assert.False(t, period.InPeriod(date(2026, time.May, 9)))
	assert.False(t, period.InPeriod(date(2026, time.May, 13)))
}

func TestDatePeriodSplitToDates(t *testing.T) {
	period := NewDatePeriod(date(2026, time.May, 10), date(2026, time.May, 12))
	dates := period.SplitToDates()

	require.Len(t, dates, 3)
	assert.Equal(t, date(2026, time.May, 10), dates[0])
	assert.Equal(t, date(2026, time.May, 12), dates[2])

	single := NewDatePeriod(date(2026, time.May, 10), date(2026, time.May, 10))
	assert.Len(t, single.SplitToDates(), 1)
}

func TestDatePeriodTruncatesClock(t *testing.T) {
	noisy := time.Date(2026, time.May, 10, 15, 42, 7, 0, time.UTC)
	period := NewDatePeriod(noisy, noisy)
	assert.Equal(t, 0, period.StartDate.Hour())
	assert.Equal(t, 0, period.CalcDays())
}
