package booking

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"bookify/api"
	"bookify/models"
	"bookify/services"
	"bookify/utils"
)

// Step and property identifiers.
const (
	StepServiceForm = "serviceForm"

	PropCategory = "category"
	PropService  = "service"
	PropLocation = "location"
	PropEmployee = "employee"
	PropCapacity = "capacity"
)

// ServiceFormStep is the first wizard step: pick a service (optionally
// narrowed by category) plus the employee and location to perform it. Its
// option sets all come from the availability snapshot.
type ServiceFormStep struct {
	StepBase

	loader    *services.AvailabilityLoader
	services  api.ServiceRepository
	employees api.EmployeeRepository
	locations api.LocationRepository

	availability *services.AvailabilityService
}

func NewServiceFormStep(cart *models.Cart, loader *services.AvailabilityLoader,
	serviceRepo api.ServiceRepository, employeeRepo api.EmployeeRepository,
	locationRepo api.LocationRepository) *ServiceFormStep {

	step := &ServiceFormStep{
		loader:    loader,
		services:  serviceRepo,
		employees: employeeRepo,
		locations: locationRepo,
	}
	step.StepBase = newStepBase(StepServiceForm, ContextCartItem, cart, map[string]PropertySchema{
		PropCategory: {Type: PropString, Default: "", Options: step.categoryOptions},
		PropService:  {Type: PropInt, Default: 0, Options: step.serviceOptions},
		PropLocation: {Type: PropInt, Default: 0, Options: step.locationOptions},
		PropEmployee: {Type: PropInt, Default: 0, Options: step.employeeOptions},
		PropCapacity: {Type: PropInt, Default: 1},
	})
	step.hooks = step
	return step
}

func (s *ServiceFormStep) categoryOptions() []string {
	if s.availability == nil {
		return nil
	}
	var options []string
	for slug := range s.availability.GetAvailableServiceCategories(0) {
		options = append(options, slug)
	}
	return options
}

func (s *ServiceFormStep) serviceOptions() []string {
	if s.availability == nil {
		return nil
	}
	available := s.availability.GetAvailableServices(s.StringProp(PropCategory),
		s.IntProp(PropLocation), s.IntProp(PropEmployee))
	var options []string
	for id := range available {
		options = append(options, strconv.Itoa(id))
	}
	return options
}

func (s *ServiceFormStep) locationOptions() []string {
	if s.availability == nil {
		return nil
	}
	var options []string
	for id := range s.availability.GetAvailableLocations(s.IntProp(PropService), s.IntProp(PropEmployee)) {
		options = append(options, strconv.Itoa(id))
	}
	return options
}

func (s *ServiceFormStep) employeeOptions() []string {
	if s.availability == nil {
		return nil
	}
	var options []string
	for id := range s.availability.GetAvailableEmployees(s.IntProp(PropService), s.IntProp(PropLocation)) {
		options = append(options, strconv.Itoa(id))
	}
	return options
}

// Availability exposes the loaded snapshot filters for rendering.
func (s *ServiceFormStep) Availability() *services.AvailabilityService {
	return s.availability
}

func (s *ServiceFormStep) LoadEntities(ctx context.Context, gen uint64) {
	availability := s.loader.Load(ctx, false)
	s.ApplyIfCurrent(gen, func() {
		s.availability = availability

		// With exactly one service on offer and no category choice the step
		// has nothing to ask: preselect and let the wizard skip it.
		available := availability.GetAvailableServices("", 0, 0)
		categories := availability.GetAvailableServiceCategories(0)
		if len(available) == 1 && len(categories) <= 1 {
			for id := range available {
				s.props[PropService] = id
			}
			s.SetHidden(true)
		}
	})
}

func (s *ServiceFormStep) Reload(ctx context.Context, gen uint64) {
	// The snapshot is cached process-wide; a cheap re-load picks up a fresh
	// one only after the cache expired.
	availability := s.loader.Load(ctx, false)
	s.ApplyIfCurrent(gen, func() {
		s.availability = availability
	})
}

// React cascades: a narrowed dimension clears dependent selections that are
// no longer inside their option sets. Nested SetProperty calls here run
// within the same logical update and do not re-trigger React.
func (s *ServiceFormStep) React() {
	if s.availability == nil {
		return
	}
	if id := s.IntProp(PropService); id != 0 && !inOptions(s.serviceOptions(), strconv.Itoa(id)) {
		s.SetProperty(PropService, 0)
	}
	if id := s.IntProp(PropEmployee); id != 0 && !inOptions(s.employeeOptions(), strconv.Itoa(id)) {
		s.SetProperty(PropEmployee, 0)
	}
	if id := s.IntProp(PropLocation); id != 0 && !inOptions(s.locationOptions(), strconv.Itoa(id)) {
		s.SetProperty(PropLocation, 0)
	}
}

func inOptions(options []string, needle string) bool {
	for _, option := range options {
		if option == needle {
			return true
		}
	}
	return false
}

// IsValidInput requires a service selection; employee and location may stay
// 0 ("any") and get resolved by the time-slot step.
func (s *ServiceFormStep) IsValidInput() bool {
	return s.IntProp(PropService) != 0
}

// MaybeSubmit hydrates the active cart item from the selections: the full
// service record, the chosen (or still-open) employee and location, and the
// resource sets remaining available for them.
func (s *ServiceFormStep) MaybeSubmit(ctx context.Context) bool {
	if !s.IsValidInput() {
		return false
	}
	item := s.Cart().GetActiveItem()
	if item == nil {
		// Submitting with no active cart item is a contract violation, not
		// a user mistake.
		utils.GetLogger().Error("service form submitted with no active cart item")
		return false
	}

	serviceID := s.IntProp(PropService)
	service := s.services.FindByID(ctx, serviceID)
	if service == nil {
		return s.FailSubmit("service is no longer available")
	}

	item.Service = service
	item.ServiceCategories = s.availability.GetAvailableServiceCategories(serviceID)
	item.Capacity = clampCapacity(s.IntProp(PropCapacity), service, s.IntProp(PropEmployee))

	var locationIDs []int
	if locationID := s.IntProp(PropLocation); locationID != 0 {
		locationIDs = append(locationIDs, locationID)
	}
	item.AvailableEmployees = s.availability.FilterAvailableEmployees(serviceID, locationIDs)

	var employeeIDs []int
	if employeeID := s.IntProp(PropEmployee); employeeID != 0 {
		employeeIDs = append(employeeIDs, employeeID)
	}
	item.AvailableLocations = s.availability.FilterAvailableLocations(serviceID, employeeIDs)

	item.Employee = s.resolveEmployee(ctx, s.IntProp(PropEmployee))
	item.Location = s.resolveLocation(ctx, s.IntProp(PropLocation))

	utils.GetLogger().Debug("service form submitted",
		zap.Int("service", serviceID),
		zap.String("item", item.ItemID))
	return true
}

// resolveEmployee returns the full record when a concrete employee was
// picked, and nil for "any": the time-slot step fills it in later.
func (s *ServiceFormStep) resolveEmployee(ctx context.Context, employeeID int) *models.Employee {
	if employeeID == 0 {
		return nil
	}
	if employee := s.employees.FindByID(ctx, employeeID); employee != nil {
		return employee
	}
	// The backend may lag behind the snapshot; keep the thin reference.
	return &models.Employee{ID: employeeID, Name: s.availability.GetAvailableEmployees(0, 0)[employeeID]}
}

func (s *ServiceFormStep) resolveLocation(ctx context.Context, locationID int) *models.Location {
	if locationID == 0 {
		return nil
	}
	if location := s.locations.FindByID(ctx, locationID); location != nil {
		return location
	}
	return &models.Location{ID: locationID, Name: s.availability.GetAvailableLocations(0, 0)[locationID]}
}

func (s *ServiceFormStep) ResetState() {
	s.availability = nil
	s.SetHidden(false)
}

func clampCapacity(capacity int, service *models.Service, employeeID int) int {
	min, max := service.GetCapacityRange(employeeID)
	if capacity < min {
		return min
	}
	if capacity > max {
		return max
	}
	return capacity
}
