package utils

import (
	"fmt"
	"strings"
	"time"

	"bookify/config"
)

// Canonical machine-readable formats. All hashing, storage and wire
// representations of dates and times go through these.
const (
	InternalDateFormat = "2006-01-02"
	InternalTimeFormat = "15:04"
)

// Named format selectors accepted by FormatDate/FormatTime.
const (
	FormatInternal = "internal"
	FormatPublic   = "public"
	FormatShort    = "short"
)

// FormatDate renders a date using a named format selector. Unknown selectors
// are treated as a raw Go layout string.
func FormatDate(d time.Time, format string) string {
	switch format {
	case FormatInternal:
		return d.Format(InternalDateFormat)
	case FormatPublic:
		return d.Format(config.AppConfig.DateFormat)
	case FormatShort:
		return d.Format("Jan 2, 2006")
	default:
		return d.Format(format)
	}
}

// FormatTime renders a time-of-day using a named format selector.
func FormatTime(t time.Time, format string) string {
	switch format {
	case FormatInternal:
		return t.Format(InternalTimeFormat)
	case FormatPublic:
		return t.Format(config.AppConfig.TimeFormat)
	case FormatShort:
		return t.Format("15:04")
	default:
		return t.Format(format)
	}
}

// ParseDate parses an internal-format date string in the configured timezone.
func ParseDate(str string) (time.Time, error) {
	parsed, err := time.ParseInLocation(InternalDateFormat, strings.TrimSpace(str), config.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date %q: %w", str, err)
	}
	return parsed, nil
}

// ParseTime parses an internal-format time-of-day string. The result carries
// the zero date; bind it to a calendar date with TimePeriod.SetDate.
func ParseTime(str string) (time.Time, error) {
	parsed, err := time.Parse(InternalTimeFormat, strings.TrimSpace(str))
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse time %q: %w", str, err)
	}
	return parsed, nil
}

// FormatMinutes renders a duration in minutes as "Nh Mmin" display text.
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	hours := minutes / 60
	mins := minutes % 60
	switch {
	case hours > 0 && mins > 0:
		return fmt.Sprintf("%dh %dmin", hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dmin", mins)
	}
}
