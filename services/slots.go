package services

import (
	"context"
	"time"

	"bookify/api"
	"bookify/models"
	"bookify/utils"
)

// SlotService computes bookable time slots locally from employee timetables
// and confirmed reservations. The booking backend normally answers slot
// queries itself; this is the fallback path when it cannot.
type SlotService struct {
	Services     api.ServiceRepository
	Employees    api.EmployeeRepository
	Schedules    api.ScheduleRepository
	Reservations api.ReservationRepository
}

func NewSlotService(services api.ServiceRepository, employees api.EmployeeRepository,
	schedules api.ScheduleRepository, reservations api.ReservationRepository) *SlotService {
	return &SlotService{
		Services:     services,
		Employees:    employees,
		Schedules:    schedules,
		Reservations: reservations,
	}
}

// ComputeTimeSlots builds the date → period → employee/location map for the
// query. Working hours come from each employee's schedule; reservation
// buffer periods and the query's excluded in-progress items are carved out
// before the remainder is cut into service-length slots.
func (s *SlotService) ComputeTimeSlots(ctx context.Context, query api.TimeSlotsQuery) models.TimeSlots {
	service := s.Services.FindByID(ctx, query.ServiceID)
	if service == nil {
		return models.TimeSlots{}
	}

	employeeIDs := query.EmployeeIDs
	if len(employeeIDs) == 0 {
		for _, employee := range s.Employees.List(ctx) {
			employeeIDs = append(employeeIDs, employee.ID)
		}
	}

	reservations := s.Reservations.ListByService(ctx, query.ServiceID, query.Period)

	slots := models.TimeSlots{}
	today := time.Now()
	for _, date := range query.Period.SplitToDates() {
		if query.SinceToday && date.Before(time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, date.Location())) {
			continue
		}
		for _, employeeID := range employeeIDs {
			schedule := s.Schedules.FindByEmployee(ctx, employeeID)
			if schedule == nil {
				continue
			}
			duration := time.Duration(service.GetDuration(employeeID)) * time.Minute
			if duration <= 0 {
				continue
			}
			dateKey := utils.FormatDate(date, utils.FormatInternal)
			for _, work := range schedule.GetWorkingPeriods(date) {
				if len(query.LocationIDs) > 0 && !containsID(query.LocationIDs, work.LocationID) {
					continue
				}

				free := []models.TimePeriod{work.Time}
				free = carveReservations(free, reservations, employeeID, date)
				free = carveExcludedItems(free, query.ExcludeItems, employeeID, date)

				for _, period := range free {
					for start := period.StartTime; !start.Add(duration).After(period.EndTime); start = start.Add(duration) {
						slot := models.NewTimePeriod(start, start.Add(duration))
						addSlot(slots, dateKey, slot.String(), models.EmployeeLocation{
							EmployeeID: employeeID,
							LocationID: work.LocationID,
						})
					}
				}
			}
		}
	}
	return slots
}

// carveReservations removes each matching reservation's buffer period from
// the free periods.
func carveReservations(free []models.TimePeriod, reservations []models.Reservation,
	employeeID int, date time.Time) []models.TimePeriod {
	for _, reservation := range reservations {
		if reservation.EmployeeID != employeeID || !sameDay(reservation.Date, date) {
			continue
		}
		busy := reservation.BufferTime
		busy.SetDate(date)
		free = carvePeriod(free, busy)
	}
	return free
}

// carveExcludedItems treats in-progress cart items as if they were already
// booked, so two items in one cart cannot claim the same period.
func carveExcludedItems(free []models.TimePeriod, items []*models.CartItem,
	employeeID int, date time.Time) []models.TimePeriod {
	for _, item := range items {
		if !item.IsSet(models.HashScopeAll) || !sameDay(item.Date, date) {
			continue
		}
		if item.Employee != nil && item.Employee.ID != employeeID {
			continue
		}
		busy := *item.Time
		busy.SetDate(date)
		free = carvePeriod(free, busy)
	}
	return free
}

// carvePeriod subtracts busy from every free period, splitting periods that
// fully contain it and trimming the ones it overlaps on one side.
func carvePeriod(free []models.TimePeriod, busy models.TimePeriod) []models.TimePeriod {
	var out []models.TimePeriod
	for _, period := range free {
		if !period.IntersectsWith(busy) {
			out = append(out, period)
			continue
		}
		if busy.IsSubperiodOf(period) {
			out = append(out, period.SplitByPeriod(busy)...)
			continue
		}
		if busy.StartTime.After(period.StartTime) {
			period.EndTime = busy.StartTime
		} else {
			period.StartTime = busy.EndTime
		}
		if !period.IsEmpty() && period.Duration() > 0 {
			out = append(out, period)
		}
	}
	return out
}

func addSlot(slots models.TimeSlots, date, period string, pair models.EmployeeLocation) {
	if slots[date] == nil {
		slots[date] = make(map[string][]models.EmployeeLocation)
	}
	slots[date][period] = append(slots[date][period], pair)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
