package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, time.June, 5, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-06-05", FormatDate(d, FormatInternal))
	assert.Equal(t, "Jun 5, 2026", FormatDate(d, FormatShort))
	// Unknown selectors act as raw layouts.
	assert.Equal(t, "05/06/2026", FormatDate(d, "02/01/2006"))
}

func TestParseDateRoundTrip(t *testing.T) {
	parsed, err := ParseDate("2026-06-05")
	require.NoError(t, err)
	assert.Equal(t, "2026-06-05", FormatDate(parsed, FormatInternal))

	parsed, err = ParseDate("  2026-06-05 ")
	require.NoError(t, err)
	assert.Equal(t, 5, parsed.Day())

	_, err = ParseDate("05.06.2026")
	assert.Error(t, err)
}

func TestParseTime(t *testing.T) {
	parsed, err := ParseTime("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, parsed.Hour())
	assert.Equal(t, 30, parsed.Minute())

	_, err = ParseTime("9:30pm")
	assert.Error(t, err)
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0min"},
		{45, "45min"},
		{60, "1h"},
		{90, "1h 30min"},
		{135, "2h 15min"},
		{-10, "0min"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMinutes(tt.minutes))
	}
}
