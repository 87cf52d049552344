package models

// Deposit types supported by a service.
const (
	DepositDisabled   = "disabled"
	DepositFixed      = "fixed"
	DepositPercentage = "percentage"
)

// ServiceVariation is a per-employee override of the base service fields.
// Absent fields fall back to the base value.
type ServiceVariation struct {
	Price       *float64 `json:"price,omitempty"`
	Duration    *int     `json:"duration,omitempty"`
	MinCapacity *int     `json:"min_capacity,omitempty"`
	MaxCapacity *int     `json:"max_capacity,omitempty"`
}

// Service is a bookable service definition. Durations and buffers are in
// minutes.
type Service struct {
	ID                int                      `json:"id"`
	Name              string                   `json:"name"`
	Price             float64                  `json:"price"`
	Duration          int                      `json:"duration"`
	BufferTimeBefore  int                      `json:"bufferTimeBefore"`
	BufferTimeAfter   int                      `json:"bufferTimeAfter"`
	TimeBeforeBooking int                      `json:"timeBeforeBooking"`
	MinCapacity       int                      `json:"minCapacity"`
	MaxCapacity       int                      `json:"maxCapacity"`
	MultiplyPrice     bool                     `json:"multiplyPrice"`
	DepositType       string                   `json:"depositType"`
	DepositAmount     float64                  `json:"depositAmount"`
	Variations        map[int]ServiceVariation `json:"variations,omitempty"`
}

func (s *Service) variation(employeeID int) (ServiceVariation, bool) {
	if s.Variations == nil {
		return ServiceVariation{}, false
	}
	v, ok := s.Variations[employeeID]
	return v, ok
}

// GetUnitPrice returns the per-unit price for an employee, honoring the
// per-employee variation when one is set.
func (s *Service) GetUnitPrice(employeeID int) float64 {
	if v, ok := s.variation(employeeID); ok && v.Price != nil {
		return *v.Price
	}
	return s.Price
}

// GetPrice computes the price for booking the service with the given
// employee and capacity. Capacity defaults to the minimum capacity when
// unset; it only scales the price when MultiplyPrice is enabled.
func (s *Service) GetPrice(employeeID, capacity int) float64 {
	price := s.GetUnitPrice(employeeID)
	if !s.MultiplyPrice {
		return price
	}
	if capacity <= 0 {
		capacity = s.GetMinCapacity(employeeID)
	}
	return price * float64(capacity)
}

// GetDuration returns the service duration in minutes for an employee.
func (s *Service) GetDuration(employeeID int) int {
	if v, ok := s.variation(employeeID); ok && v.Duration != nil {
		return *v.Duration
	}
	return s.Duration
}

func (s *Service) GetMinCapacity(employeeID int) int {
	if v, ok := s.variation(employeeID); ok && v.MinCapacity != nil {
		return *v.MinCapacity
	}
	if s.MinCapacity <= 0 {
		return 1
	}
	return s.MinCapacity
}

func (s *Service) GetMaxCapacity(employeeID int) int {
	if v, ok := s.variation(employeeID); ok && v.MaxCapacity != nil {
		return *v.MaxCapacity
	}
	if s.MaxCapacity < s.GetMinCapacity(employeeID) {
		return s.GetMinCapacity(employeeID)
	}
	return s.MaxCapacity
}

// GetCapacityRange returns the [min, max] capacity for an employee.
func (s *Service) GetCapacityRange(employeeID int) (int, int) {
	return s.GetMinCapacity(employeeID), s.GetMaxCapacity(employeeID)
}
