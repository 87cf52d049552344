package models

import "time"

// Reservation is a confirmed booking occupying an employee's time. The
// buffer period wraps the service period with the service's before/after
// buffers and is what availability computations subtract.
type Reservation struct {
	ID          int        `json:"id"`
	ServiceID   int        `json:"serviceId"`
	EmployeeID  int        `json:"employeeId"`
	LocationID  int        `json:"locationId"`
	Date        time.Time  `json:"date"`
	ServiceTime TimePeriod `json:"serviceTime"`
	BufferTime  TimePeriod `json:"bufferTime"`
	Capacity    int        `json:"capacity"`
}
