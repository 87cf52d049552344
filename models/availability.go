package models

// EmployeeAvailability is one employee node in the availability snapshot:
// the locations where that employee performs the enclosing service.
type EmployeeAvailability struct {
	Name      string         `json:"name"`
	Locations map[int]string `json:"locations"`
}

// ServiceAvailability is one service node in the availability snapshot.
type ServiceAvailability struct {
	Name       string                       `json:"name"`
	Categories map[string]string            `json:"categories"`
	Employees  map[int]EmployeeAvailability `json:"employees"`
}

// AvailabilitySnapshot is the server-provided graph of which employees offer
// which services at which locations. Read-only after load.
type AvailabilitySnapshot map[int]ServiceAvailability

// EmployeeLocation is one employee/location pair able to fulfill a time slot.
type EmployeeLocation struct {
	EmployeeID int `json:"employeeId"`
	LocationID int `json:"locationId"`
}

// TimeSlots maps internal-format date strings to time-period strings to the
// employee/location pairs satisfying that slot.
type TimeSlots map[string]map[string][]EmployeeLocation
