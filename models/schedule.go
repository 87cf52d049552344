package models

import "time"

// SchedulePeriod is one working interval in a timetable, optionally pinned
// to a location.
type SchedulePeriod struct {
	Time       TimePeriod `json:"time"`
	LocationID int        `json:"locationId,omitempty"`
}

// CustomWorkday overrides the weekday timetable for a single date.
type CustomWorkday struct {
	Date time.Time  `json:"date"`
	Time TimePeriod `json:"time"`
}

// Schedule is an employee's working timetable: a weekly pattern plus custom
// workdays and days off.
type Schedule struct {
	ID             int                               `json:"id"`
	Name           string                            `json:"name"`
	EmployeeID     int                               `json:"employeeId"`
	LocationID     int                               `json:"locationId"`
	Timetable      map[time.Weekday][]SchedulePeriod `json:"timetable,omitempty"`
	DaysOff        []DatePeriod                      `json:"daysOff,omitempty"`
	CustomWorkdays []CustomWorkday                   `json:"customWorkdays,omitempty"`
}

// IsDayOff reports whether the date falls in any day-off period.
func (s *Schedule) IsDayOff(date time.Time) bool {
	for _, period := range s.DaysOff {
		if period.InPeriod(date) {
			return true
		}
	}
	return false
}

// GetWorkingPeriods computes the working periods for a date, each with its
// resolved location: a per-period pin wins over the schedule-level location.
// Custom workdays take precedence over the weekly timetable; a day off
// yields nothing.
func (s *Schedule) GetWorkingPeriods(date time.Time) []SchedulePeriod {
	if s.IsDayOff(date) {
		return nil
	}

	var periods []SchedulePeriod
	for _, workday := range s.CustomWorkdays {
		if sameDate(workday.Date, date) {
			period := workday.Time
			period.SetDate(date)
			periods = append(periods, SchedulePeriod{Time: period, LocationID: s.LocationID})
		}
	}
	if len(periods) > 0 {
		return periods
	}

	for _, slot := range s.Timetable[date.Weekday()] {
		period := slot.Time
		period.SetDate(date)
		locationID := slot.LocationID
		if locationID == 0 {
			locationID = s.LocationID
		}
		periods = append(periods, SchedulePeriod{Time: period, LocationID: locationID})
	}
	return periods
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
