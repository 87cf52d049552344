package models

// CustomerDetails holds the checkout contact fields.
type CustomerDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes,omitempty"`
}

// PaymentDetails holds the checkout payment fields.
type PaymentDetails struct {
	Method   string `json:"method"`
	Currency string `json:"currency,omitempty"`
}

// Supported payment methods.
const (
	PaymentMethodCard = "card"
	PaymentMethodCash = "cash"
)
