package models

// Location is a thin reference to a bookable venue.
type Location struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Info string `json:"info,omitempty"`
}
