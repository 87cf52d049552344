package models

import "time"

// Coupon discount types.
const (
	CouponTypeFixed      = "fixed"
	CouponTypePercentage = "percentage"
)

// CouponStatusActive marks a coupon usable at checkout.
const CouponStatusActive = "active"

// Coupon is a discount voucher applied to a cart at checkout.
type Coupon struct {
	ID             int        `json:"id"`
	Status         string     `json:"status"`
	Code           string     `json:"code"`
	Description    string     `json:"description,omitempty"`
	Type           string     `json:"type"`
	Amount         float64    `json:"amount"`
	ExpirationDate *time.Time `json:"expirationDate,omitempty"`
	ServiceIDs     []int      `json:"serviceIds,omitempty"`
	MinDate        *time.Time `json:"minDate,omitempty"`
	MaxDate        *time.Time `json:"maxDate,omitempty"`
	UsageLimit     int        `json:"usageLimit"`
	UsageCount     int        `json:"usageCount"`
}

// IsExpired reports whether the coupon's expiration date has passed.
func (c *Coupon) IsExpired(now time.Time) bool {
	return c.ExpirationDate != nil && now.After(*c.ExpirationDate)
}

// HasUsageLeft reports whether the usage limit still allows one more use.
// A zero limit means unlimited.
func (c *Coupon) HasUsageLeft() bool {
	return c.UsageLimit == 0 || c.UsageCount < c.UsageLimit
}

// IsValid reports whether the coupon can be applied at all right now.
func (c *Coupon) IsValid(now time.Time) bool {
	return c.Status == CouponStatusActive && !c.IsExpired(now) && c.HasUsageLeft()
}

// IsApplicableForCartItem checks whether the coupon may discount the item:
// the item must be fully set, its service must be covered by the coupon's
// service restriction, and its date must fall within the coupon's window.
func (c *Coupon) IsApplicableForCartItem(item *CartItem) bool {
	if item == nil || !item.IsSet(HashScopeAll) {
		return false
	}
	if len(c.ServiceIDs) > 0 {
		covered := false
		for _, id := range c.ServiceIDs {
			if item.Service.ID == id {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	// The window bounds and the item date may carry different zones, so the
	// comparison runs on wall-clock calendar dates only.
	itemDate := utcDate(item.Date)
	if c.MinDate != nil && itemDate.Before(utcDate(*c.MinDate)) {
		return false
	}
	if c.MaxDate != nil && itemDate.After(utcDate(*c.MaxDate)) {
		return false
	}
	return true
}

func utcDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CalcDiscountForCartItem returns the discount for one item, never negative
// and never more than the item's own price.
func (c *Coupon) CalcDiscountForCartItem(item *CartItem) float64 {
	if !c.IsApplicableForCartItem(item) {
		return 0
	}
	price := item.GetPrice()
	var discount float64
	switch c.Type {
	case CouponTypeFixed:
		discount = c.Amount
	case CouponTypePercentage:
		discount = price * c.Amount / 100
	}
	if discount < 0 {
		return 0
	}
	if discount > price {
		return price
	}
	return discount
}

// CalcDiscountForCart sums the per-item discounts, capped at the cart
// subtotal.
func (c *Coupon) CalcDiscountForCart(cart *Cart) float64 {
	var discount float64
	for _, item := range cart.Items {
		discount += c.CalcDiscountForCartItem(item)
	}
	if subtotal := cart.Subtotal(); discount > subtotal {
		return subtotal
	}
	return discount
}
