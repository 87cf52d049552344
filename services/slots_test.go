package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookify/api"
	"bookify/models"
)

type fakeServiceRepo struct{ service *models.Service }

func (r *fakeServiceRepo) List(ctx context.Context) []models.Service {
	if r.service == nil {
		return nil
	}
	return []models.Service{*r.service}
}

func (r *fakeServiceRepo) FindByID(ctx context.Context, id int) *models.Service {
	if r.service != nil && r.service.ID == id {
		return r.service
	}
	return nil
}

type fakeEmployeeRepo struct{ employees []models.Employee }

func (r *fakeEmployeeRepo) List(ctx context.Context) []models.Employee { return r.employees }

func (r *fakeEmployeeRepo) FindByID(ctx context.Context, id int) *models.Employee {
	for i := range r.employees {
		if r.employees[i].ID == id {
			return &r.employees[i]
		}
	}
	return nil
}

type fakeScheduleRepo struct{ schedules map[int]*models.Schedule }

func (r *fakeScheduleRepo) List(ctx context.Context) []models.Schedule {
	var out []models.Schedule
	for _, s := range r.schedules {
		out = append(out, *s)
	}
	return out
}

func (r *fakeScheduleRepo) FindByEmployee(ctx context.Context, employeeID int) *models.Schedule {
	return r.schedules[employeeID]
}

type fakeReservationRepo struct{ reservations []models.Reservation }

func (r *fakeReservationRepo) ListByService(ctx context.Context, serviceID int, period models.DatePeriod) []models.Reservation {
	return r.reservations
}

func parsePeriod(t *testing.T, str string) models.TimePeriod {
	t.Helper()
	period, err := models.ParseTimePeriod(str)
	require.NoError(t, err)
	return period
}

// monday is 2026-06-01, a Monday.
var monday = time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

func newTestSlotService(reservations []models.Reservation) *SlotService {
	schedule := &models.Schedule{
		ID:         1,
		EmployeeID: 10,
		LocationID: 100,
		Timetable: map[time.Weekday][]models.SchedulePeriod{
			time.Monday: {{Time: models.TimePeriod{
				StartTime: time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
				EndTime:   time.Date(0, 1, 1, 12, 0, 0, 0, time.UTC),
			}}},
		},
	}
	return NewSlotService(
		&fakeServiceRepo{service: &models.Service{ID: 1, Name: "Massage", Duration: 60}},
		&fakeEmployeeRepo{employees: []models.Employee{{ID: 10, Name: "Alex"}}},
		&fakeScheduleRepo{schedules: map[int]*models.Schedule{10: schedule}},
		&fakeReservationRepo{reservations: reservations},
	)
}

func TestComputeTimeSlotsFromWorkingHours(t *testing.T) {
	svc := newTestSlotService(nil)

	slots := svc.ComputeTimeSlots(context.Background(), api.TimeSlotsQuery{
		ServiceID: 1,
		Period:    models.NewDatePeriod(monday, monday),
	})

	day := slots["2026-06-01"]
	require.NotNil(t, day)
	require.Len(t, day, 3)
	for _, period := range []string{"09:00 - 10:00", "10:00 - 11:00", "11:00 - 12:00"} {
		pairs := day[period]
		require.Len(t, pairs, 1, period)
		assert.Equal(t, models.EmployeeLocation{EmployeeID: 10, LocationID: 100}, pairs[0])
	}
}

func TestComputeTimeSlotsCarvesReservations(t *testing.T) {
	buffer := parsePeriod(t, "10:00 - 11:00")
	svc := newTestSlotService([]models.Reservation{{
		ID:         1,
		ServiceID:  1,
		EmployeeID: 10,
		Date:       monday,
		BufferTime: buffer,
	}})

	slots := svc.ComputeTimeSlots(context.Background(), api.TimeSlotsQuery{
		ServiceID: 1,
		Period:    models.NewDatePeriod(monday, monday),
	})

	day := slots["2026-06-01"]
	require.Len(t, day, 2)
	assert.Contains(t, day, "09:00 - 10:00")
	assert.Contains(t, day, "11:00 - 12:00")
	assert.NotContains(t, day, "10:00 - 11:00")
}

func TestComputeTimeSlotsExcludesCartItems(t *testing.T) {
	svc := newTestSlotService(nil)

	held := parsePeriod(t, "09:00 - 10:00")
	item := models.NewCartItem()
	item.Service = &models.Service{ID: 1}
	item.Employee = &models.Employee{ID: 10}
	item.Location = &models.Location{ID: 100}
	item.Date = monday
	item.Time = &held

	slots := svc.ComputeTimeSlots(context.Background(), api.TimeSlotsQuery{
		ServiceID:    1,
		Period:       models.NewDatePeriod(monday, monday),
		ExcludeItems: []*models.CartItem{item},
	})

	day := slots["2026-06-01"]
	require.Len(t, day, 2)
	assert.NotContains(t, day, "09:00 - 10:00")
}

func TestComputeTimeSlotsLocationFilter(t *testing.T) {
	svc := newTestSlotService(nil)

	slots := svc.ComputeTimeSlots(context.Background(), api.TimeSlotsQuery{
		ServiceID:   1,
		LocationIDs: []int{200},
		Period:      models.NewDatePeriod(monday, monday),
	})
	assert.Empty(t, slots)
}

func TestComputeTimeSlotsHonorsPeriodLocationPins(t *testing.T) {
	svc := newTestSlotService(nil)
	schedule := svc.Schedules.FindByEmployee(context.Background(), 10)
	schedule.Timetable[time.Monday] = append(schedule.Timetable[time.Monday],
		models.SchedulePeriod{Time: models.TimePeriod{
			StartTime: time.Date(0, 1, 1, 13, 0, 0, 0, time.UTC),
			EndTime:   time.Date(0, 1, 1, 14, 0, 0, 0, time.UTC),
		}, LocationID: 200})

	slots := svc.ComputeTimeSlots(context.Background(), api.TimeSlotsQuery{
		ServiceID: 1,
		Period:    models.NewDatePeriod(monday, monday),
	})

	day := slots["2026-06-01"]
	require.Len(t, day, 4)
	assert.Equal(t, models.EmployeeLocation{EmployeeID: 10, LocationID: 100}, day["09:00 - 10:00"][0])
	assert.Equal(t, models.EmployeeLocation{EmployeeID: 10, LocationID: 200}, day["13:00 - 14:00"][0])

	// Filtering by the pinned location keeps only that period's slots.
	slots = svc.ComputeTimeSlots(context.Background(), api.TimeSlotsQuery{
		ServiceID:   1,
		LocationIDs: []int{200},
		Period:      models.NewDatePeriod(monday, monday),
	})
	day = slots["2026-06-01"]
	require.Len(t, day, 1)
	assert.Equal(t, models.EmployeeLocation{EmployeeID: 10, LocationID: 200}, day["13:00 - 14:00"][0])
}

func TestCarvePeriodPartialOverlap(t *testing.T) {
	free := []models.TimePeriod{parsePeriod(t, "09:00 - 12:00")}

	// Busy overlapping the start trims it; overlapping the end trims that.
	out := carvePeriod(free, parsePeriod(t, "08:00 - 10:00"))
	require.Len(t, out, 1)
	assert.Equal(t, "10:00 - 12:00", out[0].String())

	out = carvePeriod(free, parsePeriod(t, "11:00 - 13:00"))
	require.Len(t, out, 1)
	assert.Equal(t, "09:00 - 11:00", out[0].String())

	// A fully covering busy period removes it entirely.
	out = carvePeriod(free, parsePeriod(t, "08:00 - 13:00"))
	assert.Empty(t, out)
}
