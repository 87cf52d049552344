package models

import (
	"time"

	"bookify/utils"
)

// Cart hash scopes, in addition to HashScopeAll.
const (
	CartScopeItems = "items"
	CartScopeOrder = "order"
)

// Cart is the ordered collection of line items plus the customer, payment
// and coupon state gathered through the wizard. Items keep insertion order.
type Cart struct {
	Items        []*CartItem     `json:"items"`
	ActiveItemID string          `json:"activeItemId,omitempty"`
	Customer     CustomerDetails `json:"customer"`
	Payment      PaymentDetails  `json:"payment"`
	Coupon       *Coupon         `json:"coupon,omitempty"`
}

func NewCart() *Cart {
	return &Cart{}
}

// AddItem appends the item and makes it active.
func (c *Cart) AddItem(item *CartItem) {
	c.Items = append(c.Items, item)
	c.ActiveItemID = item.ItemID
}

// GetItem returns the item with the given id, or nil.
func (c *Cart) GetItem(itemID string) *CartItem {
	for _, item := range c.Items {
		if item.ItemID == itemID {
			return item
		}
	}
	return nil
}

// RemoveItem deletes the item with the given id. Removing the active item
// clears the active pointer; callers select a new active item explicitly.
func (c *Cart) RemoveItem(itemID string) {
	for idx, item := range c.Items {
		if item.ItemID == itemID {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			if c.ActiveItemID == itemID {
				c.ActiveItemID = ""
			}
			return
		}
	}
}

// GetActiveItem returns the currently active item, or nil when none is set.
func (c *Cart) GetActiveItem() *CartItem {
	if c.ActiveItemID == "" {
		return nil
	}
	return c.GetItem(c.ActiveItemID)
}

// SetActiveItem points the cart at an item already present in it.
func (c *Cart) SetActiveItem(itemID string) bool {
	if c.GetItem(itemID) == nil {
		return false
	}
	c.ActiveItemID = itemID
	return true
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Subtotal sums the undiscounted item prices.
func (c *Cart) Subtotal() float64 {
	var subtotal float64
	for _, item := range c.Items {
		subtotal += item.GetPrice()
	}
	return subtotal
}

// GetCouponDiscount returns the total discount of the attached coupon, zero
// without one.
func (c *Cart) GetCouponDiscount() float64 {
	if c.Coupon == nil {
		return 0
	}
	return c.Coupon.CalcDiscountForCart(c)
}

// GetTotalPrice is the subtotal less the coupon discount, floored at zero.
func (c *Cart) GetTotalPrice() float64 {
	total := c.Subtotal() - c.GetCouponDiscount()
	if total < 0 {
		return 0
	}
	return total
}

// GetDeposit sums each item's deposit computed against its coupon-discounted
// price: the discount applies before the deposit logic, per item.
func (c *Cart) GetDeposit() float64 {
	var deposit float64
	for _, item := range c.Items {
		price := item.GetPrice()
		if c.Coupon != nil {
			price -= c.Coupon.CalcDiscountForCartItem(item)
		}
		deposit += item.GetDeposit(price)
	}
	return deposit
}

// SetCoupon attaches a coupon, replacing any previous one.
func (c *Cart) SetCoupon(coupon *Coupon) {
	c.Coupon = coupon
}

func (c *Cart) HasCoupon() bool {
	return c.Coupon != nil
}

func (c *Cart) RemoveCoupon() {
	c.Coupon = nil
}

// TestCoupon re-validates the attached coupon against the current items and
// silently detaches it when no item remains eligible. Called whenever cart
// membership changes.
func (c *Cart) TestCoupon() {
	if c.Coupon == nil {
		return
	}
	for _, item := range c.Items {
		if c.Coupon.IsApplicableForCartItem(item) {
			return
		}
	}
	c.RemoveCoupon()
}

// GetOrder produces the order snapshot for checkout and archiving.
func (c *Cart) GetOrder() Order {
	order := Order{
		Subtotal: c.Subtotal(),
		Total:    c.GetTotalPrice(),
		Deposit:  c.GetDeposit(),
		Customer: c.Customer,
		Payment:  c.Payment,
	}
	for _, item := range c.Items {
		name := ""
		if item.Service != nil {
			name = item.Service.Name
		}
		order.Products = append(order.Products, OrderProduct{
			Name:  name,
			Price: item.GetPrice(),
		})
	}
	if c.Coupon != nil {
		order.Coupon = &OrderCoupon{
			Code:   c.Coupon.Code,
			Amount: c.GetCouponDiscount(),
		}
	}
	return order
}

// GetHash digests the scope-selected view of the cart, mirroring the item
// level change-detection pattern at cart granularity.
func (c *Cart) GetHash(scope string) string {
	fields := make(map[string]interface{})

	itemHashes := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		itemHashes = append(itemHashes, item.GetHash(HashScopeAll))
	}

	switch scope {
	case CartScopeItems:
		fields["items"] = itemHashes
	case CartScopeOrder:
		fields["items"] = itemHashes
		fields["coupon"] = c.couponCode()
	default:
		fields["items"] = itemHashes
		fields["customer"] = c.Customer
		fields["payment"] = c.Payment
		fields["coupon"] = c.couponCode()
	}

	return utils.ContentHash(fields)
}

// DidChange reports whether the scoped view differs from a previously
// captured hash.
func (c *Cart) DidChange(prevHash, scope string) bool {
	return c.GetHash(scope) != prevHash
}

func (c *Cart) couponCode() string {
	if c.Coupon == nil {
		return ""
	}
	return c.Coupon.Code
}

// Reset drops every item and all customer, payment and coupon state.
func (c *Cart) Reset() {
	c.Items = nil
	c.ActiveItemID = ""
	c.Customer = CustomerDetails{}
	c.Payment = PaymentDetails{}
	c.Coupon = nil
}

// Order is the snapshot of a cart handed to checkout.
type Order struct {
	Products  []OrderProduct  `json:"products"`
	Subtotal  float64         `json:"subtotal"`
	Total     float64         `json:"total"`
	Deposit   float64         `json:"deposit"`
	Customer  CustomerDetails `json:"customer"`
	Payment   PaymentDetails  `json:"payment"`
	Coupon    *OrderCoupon    `json:"coupon,omitempty"`
	CreatedAt time.Time       `json:"createdAt,omitzero"`
}

// OrderProduct is one priced line in the order snapshot.
type OrderProduct struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// OrderCoupon records the applied coupon and its realized discount.
type OrderCoupon struct {
	Code   string  `json:"code"`
	Amount float64 `json:"amount"`
}
