// services/availability.go
package services

import (
	"sort"

	"bookify/models"
)

// AvailabilityService answers filtered queries over a server-provided
// availability snapshot. Every method is a pure function of the snapshot and
// its arguments; the snapshot is read-only after construction.
type AvailabilityService struct {
	snapshot models.AvailabilitySnapshot

	// Flattened id→name maps, built once at load time.
	services   map[int]string
	employees  map[int]string
	locations  map[int]string
	categories map[string]string
}

// NewAvailabilityService wraps a snapshot and flattens its directories.
func NewAvailabilityService(snapshot models.AvailabilitySnapshot) *AvailabilityService {
	s := &AvailabilityService{
		snapshot:   snapshot,
		services:   make(map[int]string),
		employees:  make(map[int]string),
		locations:  make(map[int]string),
		categories: make(map[string]string),
	}
	for serviceID, service := range snapshot {
		s.services[serviceID] = service.Name
		for slug, name := range service.Categories {
			s.categories[slug] = name
		}
		for employeeID, employee := range service.Employees {
			s.employees[employeeID] = employee.Name
			for locationID, name := range employee.Locations {
				s.locations[locationID] = name
			}
		}
	}
	return s
}

// GetAvailableServices intersect-filters services. Zero/empty arguments mean
// no constraint on that dimension.
func (s *AvailabilityService) GetAvailableServices(category string, locationID, employeeID int) map[int]string {
	result := make(map[int]string)
	for serviceID, service := range s.snapshot {
		if category != "" {
			if _, ok := service.Categories[category]; !ok {
				continue
			}
		}
		if employeeID != 0 {
			if _, ok := service.Employees[employeeID]; !ok {
				continue
			}
		}
		if locationID != 0 && !serviceHasLocation(service, locationID) {
			continue
		}
		result[serviceID] = service.Name
	}
	return result
}

func serviceHasLocation(service models.ServiceAvailability, locationID int) bool {
	for _, employee := range service.Employees {
		if _, ok := employee.Locations[locationID]; ok {
			return true
		}
	}
	return false
}

// GetAvailableServiceCategories returns the union of category maps across
// all services, or just one service's categories when serviceID is given.
func (s *AvailabilityService) GetAvailableServiceCategories(serviceID int) map[string]string {
	if serviceID != 0 {
		service, ok := s.snapshot[serviceID]
		if !ok {
			return map[string]string{}
		}
		categories := make(map[string]string, len(service.Categories))
		for slug, name := range service.Categories {
			categories[slug] = name
		}
		return categories
	}
	categories := make(map[string]string, len(s.categories))
	for slug, name := range s.categories {
		categories[slug] = name
	}
	return categories
}

// GetAvailableEmployees filters employees by service and location; zero
// arguments mean no constraint.
func (s *AvailabilityService) GetAvailableEmployees(serviceID, locationID int) map[int]string {
	result := make(map[int]string)
	for sid, service := range s.snapshot {
		if serviceID != 0 && sid != serviceID {
			continue
		}
		for employeeID, employee := range service.Employees {
			if locationID != 0 {
				if _, ok := employee.Locations[locationID]; !ok {
					continue
				}
			}
			result[employeeID] = employee.Name
		}
	}
	return result
}

// GetAvailableLocations is the symmetric filter over the same structure.
func (s *AvailabilityService) GetAvailableLocations(serviceID, employeeID int) map[int]string {
	result := make(map[int]string)
	for sid, service := range s.snapshot {
		if serviceID != 0 && sid != serviceID {
			continue
		}
		for eid, employee := range service.Employees {
			if employeeID != 0 && eid != employeeID {
				continue
			}
			for locationID, name := range employee.Locations {
				result[locationID] = name
			}
		}
	}
	return result
}

// FilterAvailableEmployeeIDs keeps, for a fixed service, the employees with
// zero location constraints or at least one location among the given ids.
// Empty locationIDs means every employee of the service passes.
func (s *AvailabilityService) FilterAvailableEmployeeIDs(serviceID int, locationIDs []int) []int {
	service, ok := s.snapshot[serviceID]
	if !ok {
		return nil
	}
	var ids []int
	for employeeID, employee := range service.Employees {
		if len(locationIDs) == 0 || len(employee.Locations) == 0 || hasAnyLocation(employee, locationIDs) {
			ids = append(ids, employeeID)
		}
	}
	sort.Ints(ids)
	return ids
}

func hasAnyLocation(employee models.EmployeeAvailability, locationIDs []int) bool {
	for _, locationID := range locationIDs {
		if _, ok := employee.Locations[locationID]; ok {
			return true
		}
	}
	return false
}

// FilterAvailableEmployees is FilterAvailableEmployeeIDs with the results
// hydrated from the snapshot's name directory.
func (s *AvailabilityService) FilterAvailableEmployees(serviceID int, locationIDs []int) []models.Employee {
	ids := s.FilterAvailableEmployeeIDs(serviceID, locationIDs)
	employees := make([]models.Employee, 0, len(ids))
	for _, id := range ids {
		employees = append(employees, models.Employee{ID: id, Name: s.employees[id]})
	}
	return employees
}

// FilterAvailableLocationIDs is the mirror filter: for a fixed service, the
// union of locations served by the given employees. Empty employeeIDs means
// all of the service's employees.
func (s *AvailabilityService) FilterAvailableLocationIDs(serviceID int, employeeIDs []int) []int {
	service, ok := s.snapshot[serviceID]
	if !ok {
		return nil
	}
	seen := make(map[int]bool)
	for employeeID, employee := range service.Employees {
		if len(employeeIDs) > 0 && !containsID(employeeIDs, employeeID) {
			continue
		}
		for locationID := range employee.Locations {
			seen[locationID] = true
		}
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func containsID(ids []int, id int) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// FilterAvailableLocations is FilterAvailableLocationIDs with the results
// hydrated from the snapshot's name directory.
func (s *AvailabilityService) FilterAvailableLocations(serviceID int, employeeIDs []int) []models.Location {
	ids := s.FilterAvailableLocationIDs(serviceID, employeeIDs)
	locations := make([]models.Location, 0, len(ids))
	for _, id := range ids {
		locations = append(locations, models.Location{ID: id, Name: s.locations[id]})
	}
	return locations
}

// Membership predicates against the unfiltered directories.

func (s *AvailabilityService) IsAvailableService(serviceID int) bool {
	_, ok := s.services[serviceID]
	return ok
}

func (s *AvailabilityService) IsAvailableEmployee(employeeID int) bool {
	_, ok := s.employees[employeeID]
	return ok
}

func (s *AvailabilityService) IsAvailableLocation(locationID int) bool {
	_, ok := s.locations[locationID]
	return ok
}

func (s *AvailabilityService) IsAvailableCategory(slug string) bool {
	_, ok := s.categories[slug]
	return ok
}

// GetServiceName returns the snapshot's display name for a service.
func (s *AvailabilityService) GetServiceName(serviceID int) string {
	return s.services[serviceID]
}
