package booking

import "fmt"

// StepError is a typed wizard error with a machine-readable code.
type StepError struct {
	Code    string
	Message string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(msg string) error {
	return &StepError{
		Code:    "validationError",
		Message: msg,
	}
}

func NewCouponError(msg string) error {
	return &StepError{
		Code:    "couponError",
		Message: msg,
	}
}

// Inline validation messages surfaced to the operator.
const (
	MsgNoTimeSelected = "no contiguous time period selected"
)
