package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"bookify/utils"
)

// PeriodGlue joins the two bounds in the string form of a period.
const PeriodGlue = " - "

// TimePeriod is a start/end pair of instants. Comparisons are by raw instant
// value; bind a period to a calendar date with SetDate before comparing
// against dated instants.
type TimePeriod struct {
	StartTime time.Time
	EndTime   time.Time
}

func NewTimePeriod(start, end time.Time) TimePeriod {
	return TimePeriod{StartTime: start, EndTime: end}
}

// ParseTimePeriod parses the "HH:MM - HH:MM" wire form.
func ParseTimePeriod(str string) (TimePeriod, error) {
	parts := strings.Split(str, PeriodGlue)
	if len(parts) != 2 {
		return TimePeriod{}, fmt.Errorf("invalid time period %q", str)
	}
	start, err := utils.ParseTime(parts[0])
	if err != nil {
		return TimePeriod{}, err
	}
	end, err := utils.ParseTime(parts[1])
	if err != nil {
		return TimePeriod{}, err
	}
	return TimePeriod{StartTime: start, EndTime: end}, nil
}

// IsEmpty reports whether the period violates startTime <= endTime.
func (p TimePeriod) IsEmpty() bool {
	return p.StartTime.After(p.EndTime)
}

// Duration returns the length of the period.
func (p TimePeriod) Duration() time.Duration {
	return p.EndTime.Sub(p.StartTime)
}

// IntersectsWith is the half-open interval overlap test.
func (p TimePeriod) IntersectsWith(other TimePeriod) bool {
	return p.StartTime.Before(other.EndTime) && p.EndTime.After(other.StartTime)
}

// IsSubperiodOf is inclusive containment.
func (p TimePeriod) IsSubperiodOf(other TimePeriod) bool {
	return !p.StartTime.Before(other.StartTime) && !p.EndTime.After(other.EndTime)
}

// MergePeriod extends both ends outward to the union bounds.
func (p *TimePeriod) MergePeriod(other TimePeriod) {
	if other.StartTime.Before(p.StartTime) {
		p.StartTime = other.StartTime
	}
	if other.EndTime.After(p.EndTime) {
		p.EndTime = other.EndTime
	}
}

// DiffPeriod subtracts other from p with a single-sided trim. This is not a
// general interval difference: the caller must know which side overlaps.
func (p *TimePeriod) DiffPeriod(other TimePeriod) {
	if other.StartTime.Before(p.StartTime) {
		if other.StartTime.Before(p.EndTime) {
			p.EndTime = other.StartTime
		}
	} else {
		if other.EndTime.After(p.StartTime) {
			p.StartTime = other.EndTime
		}
	}
}

// SplitByPeriod removes sub, assumed fully contained in p, and returns the
// zero, one or two non-empty residual periods around it.
func (p TimePeriod) SplitByPeriod(sub TimePeriod) []TimePeriod {
	var residuals []TimePeriod
	if p.StartTime.Before(sub.StartTime) {
		residuals = append(residuals, TimePeriod{StartTime: p.StartTime, EndTime: sub.StartTime})
	}
	if sub.EndTime.Before(p.EndTime) {
		residuals = append(residuals, TimePeriod{StartTime: sub.EndTime, EndTime: p.EndTime})
	}
	return residuals
}

// SetDate rebinds both instants to the given calendar date, keeping the
// clock values.
func (p *TimePeriod) SetDate(date time.Time) {
	p.StartTime = time.Date(date.Year(), date.Month(), date.Day(),
		p.StartTime.Hour(), p.StartTime.Minute(), 0, 0, date.Location())
	p.EndTime = time.Date(date.Year(), date.Month(), date.Day(),
		p.EndTime.Hour(), p.EndTime.Minute(), 0, 0, date.Location())
}

// ToString renders the period with the named format. When both bounds format
// identically under 'short' it collapses to a single value.
func (p TimePeriod) ToString(format, glue string) string {
	if glue == "" {
		glue = PeriodGlue
	}
	start := utils.FormatTime(p.StartTime, format)
	end := utils.FormatTime(p.EndTime, format)
	if format == utils.FormatShort && start == end {
		return start
	}
	return start + glue + end
}

func (p TimePeriod) String() string {
	return p.ToString(utils.FormatInternal, PeriodGlue)
}

func (p TimePeriod) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *TimePeriod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseTimePeriod(str)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// DatePeriod is a start/end pair of calendar dates, time-of-day zeroed,
// bounds inclusive.
type DatePeriod struct {
	StartDate time.Time
	EndDate   time.Time
}

func NewDatePeriod(start, end time.Time) DatePeriod {
	return DatePeriod{StartDate: truncateToDate(start), EndDate: truncateToDate(end)}
}

// ParseDatePeriod parses the "YYYY-MM-DD - YYYY-MM-DD" wire form.
func ParseDatePeriod(str string) (DatePeriod, error) {
	parts := strings.Split(str, PeriodGlue)
	if len(parts) != 2 {
		return DatePeriod{}, fmt.Errorf("invalid date period %q", str)
	}
	start, err := utils.ParseDate(parts[0])
	if err != nil {
		return DatePeriod{}, err
	}
	end, err := utils.ParseDate(parts[1])
	if err != nil {
		return DatePeriod{}, err
	}
	return NewDatePeriod(start, end), nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (p DatePeriod) IsEmpty() bool {
	return p.StartDate.After(p.EndDate)
}

// CalcDays returns the number of calendar days between the bounds. A
// single-day period yields 0.
func (p DatePeriod) CalcDays() int {
	return int(utcDate(p.EndDate).Sub(utcDate(p.StartDate)).Hours() / 24)
}

// InPeriod reports whether the given date falls within the bounds, inclusive.
func (p DatePeriod) InPeriod(date time.Time) bool {
	d := truncateToDate(date)
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}

// SplitToDates enumerates every calendar day in the period, inclusive.
func (p DatePeriod) SplitToDates() []time.Time {
	var dates []time.Time
	for d := p.StartDate; !d.After(p.EndDate); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// ToString renders the period with the named format, collapsing equal bounds
// under 'short'.
func (p DatePeriod) ToString(format, glue string) string {
	if glue == "" {
		glue = PeriodGlue
	}
	start := utils.FormatDate(p.StartDate, format)
	end := utils.FormatDate(p.EndDate, format)
	if format == utils.FormatShort && start == end {
		return start
	}
	return start + glue + end
}

func (p DatePeriod) String() string {
	return p.ToString(utils.FormatInternal, PeriodGlue)
}

func (p DatePeriod) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *DatePeriod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseDatePeriod(str)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
