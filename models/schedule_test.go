package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleGetWorkingPeriodsResolvesLocations(t *testing.T) {
	schedule := &Schedule{
		ID:         1,
		EmployeeID: 10,
		LocationID: 100,
		Timetable: map[time.Weekday][]SchedulePeriod{
			time.Monday: {
				{Time: TimePeriod{
					StartTime: time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
					EndTime:   time.Date(0, 1, 1, 12, 0, 0, 0, time.UTC),
				}},
				{Time: TimePeriod{
					StartTime: time.Date(0, 1, 1, 13, 0, 0, 0, time.UTC),
					EndTime:   time.Date(0, 1, 1, 17, 0, 0, 0, time.UTC),
				}, LocationID: 200},
			},
		},
	}

	// 2026-06-01 is a Monday.
	periods := schedule.GetWorkingPeriods(date(2026, time.June, 1))
	require.Len(t, periods, 2)

	// An unpinned period inherits the schedule-level location; a pinned one
	// keeps its own.
	assert.Equal(t, 100, periods[0].LocationID)
	assert.Equal(t, "09:00 - 12:00", periods[0].Time.String())
	assert.Equal(t, 200, periods[1].LocationID)
	assert.Equal(t, "13:00 - 17:00", periods[1].Time.String())
}

func TestScheduleGetWorkingPeriodsCustomWorkdayAndDayOff(t *testing.T) {
	schedule := &Schedule{
		ID:         1,
		EmployeeID: 10,
		LocationID: 100,
		Timetable: map[time.Weekday][]SchedulePeriod{
			time.Monday: {{Time: TimePeriod{
				StartTime: time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
				EndTime:   time.Date(0, 1, 1, 12, 0, 0, 0, time.UTC),
			}, LocationID: 200}},
		},
		CustomWorkdays: []CustomWorkday{{
			Date: date(2026, time.June, 1),
			Time: TimePeriod{
				StartTime: time.Date(0, 1, 1, 14, 0, 0, 0, time.UTC),
				EndTime:   time.Date(0, 1, 1, 16, 0, 0, 0, time.UTC),
			},
		}},
		DaysOff: []DatePeriod{NewDatePeriod(date(2026, time.June, 8), date(2026, time.June, 8))},
	}

	// A custom workday replaces the weekly timetable and works at the
	// schedule-level location.
	periods := schedule.GetWorkingPeriods(date(2026, time.June, 1))
	require.Len(t, periods, 1)
	assert.Equal(t, "14:00 - 16:00", periods[0].Time.String())
	assert.Equal(t, 100, periods[0].LocationID)

	assert.Empty(t, schedule.GetWorkingPeriods(date(2026, time.June, 8)))
}
