package models

// Employee is a thin reference to a bookable staff member. Instances built
// from an availability snapshot carry only the id and name; remaining fields
// are backfilled when the full record is fetched.
type Employee struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}
