package booking

import (
	"context"

	"bookify/models"
)

// StepCart reviews the collected items before checkout.
const StepCart = "cart"

// CartStep shows the assembled items with their prices. It carries no input
// properties; the item list mutates through the wizard's new-item and
// remove-item operations, and the step just re-renders. Reentry detection
// uses the cart's items-scope hash.
type CartStep struct {
	StepBase

	lastCartHash string
}

func NewCartStep(cart *models.Cart) *CartStep {
	step := &CartStep{}
	step.StepBase = newStepBase(StepCart, ContextCart, cart, map[string]PropertySchema{})
	step.hooks = step
	return step
}

func (s *CartStep) LoadEntities(ctx context.Context, gen uint64) {
	s.ApplyIfCurrent(gen, func() {
		s.lastCartHash = s.Cart().GetHash(models.CartScopeItems)
	})
}

func (s *CartStep) Reload(ctx context.Context, gen uint64) {
	if !s.Cart().DidChange(s.lastCartHash, models.CartScopeItems) {
		return
	}
	s.ApplyIfCurrent(gen, func() {
		// Membership changed: an attached coupon may have lost its last
		// eligible item.
		s.Cart().TestCoupon()
		s.lastCartHash = s.Cart().GetHash(models.CartScopeItems)
	})
}

func (s *CartStep) React() {}

// RemoveItem drops an item from the cart and re-validates the coupon.
func (s *CartStep) RemoveItem(itemID string) {
	s.Cart().RemoveItem(itemID)
	s.Cart().TestCoupon()
}

// IsValidInput requires a non-empty cart of fully assembled items.
func (s *CartStep) IsValidInput() bool {
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

func (s *CartStep) MaybeSubmit(ctx context.Context) bool {
	if !s.IsValidInput() {
		return false
	}
	s.Cart().TestCoupon()
	return true
}

func (s *CartStep) ResetState() {
	s.lastCartHash = ""
}
