package booking

import (
	"bookify/api"
	"bookify/models"
	"bookify/services"
)

// WizardDeps bundles the collaborators the wizard steps need. Everything is
// injected at construction; no step reaches for globals.
type WizardDeps struct {
	Loader    *services.AvailabilityLoader
	Client    *api.Client
	Services  api.ServiceRepository
	Employees api.EmployeeRepository
	Locations api.LocationRepository
	Coupons   api.CouponRepository
	Orders    OrderArchiver
	Payments  PaymentHandler
	Reminders ReminderScheduler
}

// NewWizard assembles the step sequence around a cart:
// service form → date/time → cart review → checkout.
func NewWizard(cart *models.Cart, deps WizardDeps) *BookingSteps {
	wizard := NewBookingSteps(cart)
	wizard.AddStep(NewServiceFormStep(cart, deps.Loader, deps.Services, deps.Employees, deps.Locations))
	wizard.AddStep(NewDatetimeStep(cart, deps.Client))
	wizard.AddStep(NewCartStep(cart))
	wizard.AddStep(NewCheckoutStep(cart, deps.Coupons, deps.Orders, deps.Payments, deps.Reminders))
	return wizard
}

// RestoreWizard rebuilds a wizard from a persisted session, reinstating the
// saved step properties and reactivating the step that was active when the
// session was saved.
func RestoreWizard(session *WizardSession, deps WizardDeps) *BookingSteps {
	wizard := NewWizard(session.Cart, deps)
	for idx, step := range wizard.steps {
		if props, ok := session.Properties[step.ID()]; ok {
			step.RestoreProperties(props)
		}
		if session.ActiveStepID != "" && step.ID() == session.ActiveStepID {
			wizard.active = idx
		}
	}
	return wizard
}

// SnapshotSession writes the wizard's current state back into the session.
func SnapshotSession(session *WizardSession, wizard *BookingSteps) {
	session.Cart = wizard.Cart()
	session.Properties = make(map[string]map[string]interface{}, len(wizard.steps))
	for _, step := range wizard.steps {
		session.Properties[step.ID()] = step.Properties()
	}
	if active := wizard.ActiveStep(); active != nil {
		session.ActiveStepID = active.ID()
	}
}
