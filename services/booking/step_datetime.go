package booking

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"bookify/api"
	"bookify/models"
	"bookify/utils"
)

// Step and property identifiers.
const (
	StepDatetime = "datetime"

	PropDate = "date"
	PropTime = "time"
)

// bookingWindowDays is how far ahead the step offers slots.
const bookingWindowDays = 60

// DatetimeStep picks the date and time period for the active cart item from
// the backend's slot availability. Loaded slots are cached on the step and
// invalidated through the item's ids-scope hash: reentering the step without
// changing service, employee or location skips the refetch.
type DatetimeStep struct {
	StepBase

	client *api.Client

	slots        models.TimeSlots
	lastItemHash string
}

func NewDatetimeStep(cart *models.Cart, client *api.Client) *DatetimeStep {
	step := &DatetimeStep{client: client}
	step.StepBase = newStepBase(StepDatetime, ContextCartItem, cart, map[string]PropertySchema{
		PropDate: {Type: PropString, Default: "", Options: step.dateOptions},
		PropTime: {Type: PropString, Default: "", Options: step.timeOptions},
	})
	step.hooks = step
	return step
}

func (s *DatetimeStep) dateOptions() []string {
	options := make([]string, 0, len(s.slots))
	for date := range s.slots {
		options = append(options, date)
	}
	sort.Strings(options)
	return options
}

func (s *DatetimeStep) timeOptions() []string {
	periods, ok := s.slots[s.StringProp(PropDate)]
	if !ok {
		return nil
	}
	options := make([]string, 0, len(periods))
	for period := range periods {
		options = append(options, period)
	}
	sort.Strings(options)
	return options
}

// AvailableDays lists the dates with at least one bookable slot, sorted.
func (s *DatetimeStep) AvailableDays() []string {
	return s.dateOptions()
}

// AvailableTimes lists the bookable periods on a date, sorted.
func (s *DatetimeStep) AvailableTimes(date string) []string {
	periods, ok := s.slots[date]
	if !ok {
		return nil
	}
	options := make([]string, 0, len(periods))
	for period := range periods {
		options = append(options, period)
	}
	sort.Strings(options)
	return options
}

func (s *DatetimeStep) LoadEntities(ctx context.Context, gen uint64) {
	s.fetchSlots(ctx, gen)
}

// Reload refetches only when the item's ids-scope hash moved since the last
// load; otherwise the cached slots stay valid.
func (s *DatetimeStep) Reload(ctx context.Context, gen uint64) {
	item := s.Cart().GetActiveItem()
	if item == nil {
		return
	}
	if !item.DidChange(s.lastItemHash, models.HashScopeIDs) {
		return
	}
	s.fetchSlots(ctx, gen)
}

func (s *DatetimeStep) fetchSlots(ctx context.Context, gen uint64) {
	item := s.Cart().GetActiveItem()
	if item == nil || item.Service == nil {
		utils.GetLogger().Error("datetime step loaded with no service selected")
		return
	}

	query := api.TimeSlotsQuery{
		ServiceID:  item.Service.ID,
		Period:     bookingWindow(),
		SinceToday: true,
	}
	if item.Employee != nil {
		query.EmployeeIDs = []int{item.Employee.ID}
	} else {
		for _, employee := range item.AvailableEmployees {
			query.EmployeeIDs = append(query.EmployeeIDs, employee.ID)
		}
	}
	if item.Location != nil {
		query.LocationIDs = []int{item.Location.ID}
	} else {
		for _, location := range item.AvailableLocations {
			query.LocationIDs = append(query.LocationIDs, location.ID)
		}
	}
	// Periods tentatively held by the other items in this cart must not be
	// offered twice.
	for _, other := range s.Cart().Items {
		if other.ItemID != item.ItemID {
			query.ExcludeItems = append(query.ExcludeItems, other)
		}
	}

	slots, err := s.client.GetTimeSlots(ctx, query)
	if err != nil {
		utils.GetLogger().Error("failed to fetch time slots",
			zap.Int("service", item.Service.ID), zap.Error(err))
		slots = models.TimeSlots{}
	}

	s.ApplyIfCurrent(gen, func() {
		s.slots = slots
		s.lastItemHash = item.GetHash(models.HashScopeIDs)
	})
}

func bookingWindow() models.DatePeriod {
	today := time.Now()
	return models.NewDatePeriod(today, today.AddDate(0, 0, bookingWindowDays))
}

// React clears the chosen time when the date moved under it.
func (s *DatetimeStep) React() {
	if chosen := s.StringProp(PropTime); chosen != "" && !inOptions(s.timeOptions(), chosen) {
		s.SetProperty(PropTime, "")
	}
}

func (s *DatetimeStep) IsValidInput() bool {
	date := s.StringProp(PropDate)
	period := s.StringProp(PropTime)
	if date == "" || period == "" {
		return false
	}
	_, ok := s.slots[date][period]
	return ok
}

// MaybeSubmit stamps the chosen date and period onto the active item and
// resolves the employee/location pair that fulfills the slot when the user
// left them open.
func (s *DatetimeStep) MaybeSubmit(ctx context.Context) bool {
	item := s.Cart().GetActiveItem()
	if item == nil {
		utils.GetLogger().Error("datetime step submitted with no active cart item")
		return false
	}

	dateStr := s.StringProp(PropDate)
	periodStr := s.StringProp(PropTime)
	pairs := s.slots[dateStr][periodStr]
	if len(pairs) == 0 {
		return s.FailSubmit(MsgNoTimeSelected)
	}

	date, err := utils.ParseDate(dateStr)
	if err != nil {
		return s.FailSubmit(MsgNoTimeSelected)
	}
	period, err := models.ParseTimePeriod(periodStr)
	if err != nil {
		return s.FailSubmit(MsgNoTimeSelected)
	}
	period.SetDate(date)

	item.Date = date
	item.Time = &period

	pair := pairs[0]
	if item.Employee == nil {
		item.Employee = &models.Employee{ID: pair.EmployeeID, Name: availableName(item.AvailableEmployees, pair.EmployeeID)}
	}
	if item.Location == nil {
		item.Location = &models.Location{ID: pair.LocationID, Name: availableLocationName(item.AvailableLocations, pair.LocationID)}
	}

	return true
}

func availableName(employees []models.Employee, id int) string {
	for _, employee := range employees {
		if employee.ID == id {
			return employee.Name
		}
	}
	return ""
}

func availableLocationName(locations []models.Location, id int) string {
	for _, location := range locations {
		if location.ID == id {
			return location.Name
		}
	}
	return ""
}

func (s *DatetimeStep) ResetState() {
	s.slots = nil
	s.lastItemHash = ""
}
