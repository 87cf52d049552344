package booking

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"bookify/api"
	"bookify/models"
	"bookify/utils"
)

// Step and property identifiers.
const (
	StepCheckout = "checkout"

	PropName          = "name"
	PropEmail         = "email"
	PropPhone         = "phone"
	PropNotes         = "notes"
	PropPaymentMethod = "paymentMethod"
)

// OrderArchiver persists submitted order snapshots.
type OrderArchiver interface {
	Save(ctx context.Context, order models.Order) (string, error)
}

// ReminderScheduler queues an appointment reminder for each booked item.
type ReminderScheduler interface {
	ScheduleReminder(order models.Order, item models.CartItem) error
}

// CheckoutStep collects the customer and payment details, applies coupons
// and finalizes the order: snapshot, archive, deposit payment and reminders.
type CheckoutStep struct {
	StepBase

	coupons   api.CouponRepository
	orders    OrderArchiver
	payments  PaymentHandler
	reminders ReminderScheduler

	// Order snapshot of the accepted submission, kept for the confirmation
	// response.
	submitted *models.Order
}

func NewCheckoutStep(cart *models.Cart, coupons api.CouponRepository,
	orders OrderArchiver, payments PaymentHandler, reminders ReminderScheduler) *CheckoutStep {

	step := &CheckoutStep{
		coupons:   coupons,
		orders:    orders,
		payments:  payments,
		reminders: reminders,
	}
	step.StepBase = newStepBase(StepCheckout, ContextCart, cart, map[string]PropertySchema{
		PropName:  {Type: PropString, Default: ""},
		PropEmail: {Type: PropString, Default: ""},
		PropPhone: {Type: PropString, Default: ""},
		PropNotes: {Type: PropString, Default: ""},
		PropPaymentMethod: {Type: PropString, Default: models.PaymentMethodCash,
			Options: paymentMethodOptions},
	})
	step.hooks = step
	return step
}

func paymentMethodOptions() []string {
	return []string{models.PaymentMethodCash, models.PaymentMethodCard}
}

func (s *CheckoutStep) LoadEntities(ctx context.Context, gen uint64) {
	// Prefill from a previous pass through checkout.
	customer := s.Cart().Customer
	s.ApplyIfCurrent(gen, func() {
		if customer.Name != "" {
			s.props[PropName] = customer.Name
		}
		if customer.Email != "" {
			s.props[PropEmail] = customer.Email
		}
		if customer.Phone != "" {
			s.props[PropPhone] = customer.Phone
		}
	})
}

func (s *CheckoutStep) Reload(ctx context.Context, gen uint64) {
	// Cart membership may have changed since the coupon was applied.
	s.Cart().TestCoupon()
}

// React mirrors the contact properties into the cart as they are typed so a
// reload of the wizard page keeps them.
func (s *CheckoutStep) React() {
	s.Cart().Customer = models.CustomerDetails{
		Name:  strings.TrimSpace(s.StringProp(PropName)),
		Email: strings.TrimSpace(s.StringProp(PropEmail)),
		Phone: strings.TrimSpace(s.StringProp(PropPhone)),
		Notes: s.StringProp(PropNotes),
	}
	s.Cart().Payment.Method = s.StringProp(PropPaymentMethod)
}

// ApplyCoupon fetches a coupon by code and attaches it when it is valid and
// discounts at least one cart item. This is the wizard's one rejecting
// asynchronous path.
func (s *CheckoutStep) ApplyCoupon(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return NewCouponError("coupon code is empty")
	}

	coupon, err := s.coupons.FindByCode(ctx, code)
	if err != nil {
		return err
	}
	if !coupon.IsValid(time.Now()) {
		return NewCouponError("coupon is expired or exhausted")
	}

	applicable := false
	for _, item := range s.Cart().Items {
		if coupon.IsApplicableForCartItem(item) {
			applicable = true
			break
		}
	}
	if !applicable {
		return NewCouponError("coupon does not apply to any item in the cart")
	}

	s.Cart().SetCoupon(coupon)
	return nil
}

// RemoveCoupon detaches the cart's coupon.
func (s *CheckoutStep) RemoveCoupon() {
	s.Cart().RemoveCoupon()
}

func (s *CheckoutStep) IsValidInput() bool {
	if strings.TrimSpace(s.StringProp(PropName)) == "" {
		return false
	}
	if strings.TrimSpace(s.StringProp(PropEmail)) == "" {
		return false
	}
	cart := s.Cart()
	if cart.IsEmpty() {
		return false
	}
	for _, item := range cart.Items {
		if !item.IsSet(models.HashScopeAll) {
			return false
		}
	}
	return true
}

// MaybeSubmit finalizes the booking: order snapshot, archive, deposit
// payment when paying by card, and a reminder per item.
func (s *CheckoutStep) MaybeSubmit(ctx context.Context) bool {
	if !s.IsValidInput() {
		return false
	}
	logger := utils.GetLogger()
	cart := s.Cart()

	s.React() // flush the latest property values into the cart
	cart.TestCoupon()

	order := cart.GetOrder()
	order.CreatedAt = time.Now()

	orderID, err := s.orders.Save(ctx, order)
	if err != nil {
		logger.Error("failed to archive order", zap.Error(err))
		return s.FailSubmit("could not save the booking, please retry")
	}

	if order.Payment.Method == models.PaymentMethodCard && order.Deposit > 0 {
		if _, err := s.payments.ProcessDeposit(ctx, order); err != nil {
			logger.Error("deposit payment failed",
				zap.String("order", orderID), zap.Error(err))
			return s.FailSubmit("deposit payment failed, please retry")
		}
	}

	for _, item := range cart.Items {
		if err := s.reminders.ScheduleReminder(order, *item); err != nil {
			// Reminders are best-effort; the booking stands.
			logger.Warn("failed to schedule reminder",
				zap.String("order", orderID), zap.Error(err))
		}
	}

	logger.Info("order submitted",
		zap.String("order", orderID),
		zap.Float64("total", order.Total),
		zap.Float64("deposit", order.Deposit))

	s.submitted = &order
	return true
}

// SubmittedOrder returns the snapshot of the accepted order, or nil.
func (s *CheckoutStep) SubmittedOrder() *models.Order {
	return s.submitted
}

func (s *CheckoutStep) ResetState() {
	s.submitted = nil
}
