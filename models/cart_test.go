package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddAndActiveItem(t *testing.T) {
	cart := NewCart()
	assert.True(t, cart.IsEmpty())
	assert.Nil(t, cart.GetActiveItem())

	first := NewCartItem()
	second := NewCartItem()
	cart.AddItem(first)
	cart.AddItem(second)

	// Insertion order is preserved and the newest item is active.
	require.Len(t, cart.Items, 2)
	assert.Same(t, first, cart.Items[0])
	assert.Same(t, second, cart.GetActiveItem())

	assert.True(t, cart.SetActiveItem(first.ItemID))
	assert.Same(t, first, cart.GetActiveItem())
	assert.False(t, cart.SetActiveItem("nonexistent"))
	assert.Same(t, first, cart.GetActiveItem())
}

func TestCartRemoveItem(t *testing.T) {
	cart := NewCart()
	first := NewCartItem()
	second := NewCartItem()
	cart.AddItem(first)
	cart.AddItem(second)

	// Removing a non-active item keeps the active pointer.
	cart.RemoveItem(first.ItemID)
	assert.Len(t, cart.Items, 1)
	assert.Same(t, second, cart.GetActiveItem())

	// Removing the active item clears the pointer.
	cart.RemoveItem(second.ItemID)
	assert.True(t, cart.IsEmpty())
	assert.Empty(t, cart.ActiveItemID)
	assert.Nil(t, cart.GetActiveItem())
}

func TestCartTotals(t *testing.T) {
	cart := NewCart()
	cart.AddItem(completeItem(&Service{ID: 1, Name: "Massage", Price: 40}))
	cart.AddItem(completeItem(&Service{ID: 2, Name: "Facial", Price: 35}))

	assert.Equal(t, 75.0, cart.Subtotal())
	assert.Equal(t, 0.0, cart.GetCouponDiscount())
	assert.Equal(t, 75.0, cart.GetTotalPrice())

	cart.SetCoupon(&Coupon{Status: CouponStatusActive, Code: "SAVE20", Type: CouponTypeFixed, Amount: 20})
	assert.Equal(t, 40.0, cart.GetCouponDiscount())
	assert.Equal(t, 35.0, cart.GetTotalPrice())

	// The total never goes below zero.
	cart.SetCoupon(&Coupon{Status: CouponStatusActive, Code: "FREE", Type: CouponTypePercentage, Amount: 100})
	assert.Equal(t, 0.0, cart.GetTotalPrice())
}

func TestCartGetDepositUsesDiscountedPrices(t *testing.T) {
	cart := NewCart()
	cart.AddItem(completeItem(&Service{ID: 1, Price: 40, DepositType: DepositPercentage, DepositAmount: 50}))
	cart.SetCoupon(&Coupon{Status: CouponStatusActive, Code: "HALF", Type: CouponTypePercentage, Amount: 50})

	// 40 discounted to 20, deposit is 50% of that.
	assert.Equal(t, 10.0, cart.GetDeposit())
}

func TestCartTestCoupon(t *testing.T) {
	cart := NewCart()
	cart.AddItem(completeItem(&Service{ID: 1, Price: 40}))
	cart.SetCoupon(&Coupon{Status: CouponStatusActive, Code: "SVC1", Type: CouponTypeFixed, Amount: 5, ServiceIDs: []int{1}})

	cart.TestCoupon()
	assert.True(t, cart.HasCoupon())

	// Once no item is eligible anymore the coupon silently detaches.
	cart.RemoveItem(cart.Items[0].ItemID)
	cart.AddItem(completeItem(&Service{ID: 2, Price: 35}))
	cart.TestCoupon()
	assert.False(t, cart.HasCoupon())
}

func TestCartGetOrder(t *testing.T) {
	cart := NewCart()
	cart.AddItem(completeItem(&Service{ID: 1, Name: "Massage", Price: 40}))
	cart.AddItem(completeItem(&Service{ID: 2, Name: "Facial", Price: 35}))
	cart.Customer = CustomerDetails{Name: "Pat", Email: "pat@example.com"}
	cart.SetCoupon(&Coupon{Status: CouponStatusActive, Code: "SAVE20", Type: CouponTypeFixed, Amount: 20, ServiceIDs: []int{1}})

	order := cart.GetOrder()
	require.Len(t, order.Products, 2)
	assert.Equal(t, "Massage", order.Products[0].Name)
	assert.Equal(t, 40.0, order.Products[0].Price)
	assert.Equal(t, 75.0, order.Subtotal)
	assert.Equal(t, 55.0, order.Total)
	require.NotNil(t, order.Coupon)
	assert.Equal(t, "SAVE20", order.Coupon.Code)
	assert.Equal(t, 20.0, order.Coupon.Amount)
	assert.Equal(t, "Pat", order.Customer.Name)
}

func TestCartHashScopes(t *testing.T) {
	cart := NewCart()
	cart.AddItem(completeItem(&Service{ID: 1, Price: 40}))

	itemsHash := cart.GetHash(CartScopeItems)
	orderHash := cart.GetHash(CartScopeOrder)
	allHash := cart.GetHash(HashScopeAll)

	// Attaching a coupon is invisible to the items view.
	cart.SetCoupon(&Coupon{Status: CouponStatusActive, Code: "SAVE", Type: CouponTypeFixed, Amount: 5})
	assert.False(t, cart.DidChange(itemsHash, CartScopeItems))
	assert.True(t, cart.DidChange(orderHash, CartScopeOrder))
	assert.True(t, cart.DidChange(allHash, HashScopeAll))

	// Customer details only affect the full view.
	orderHash = cart.GetHash(CartScopeOrder)
	allHash = cart.GetHash(HashScopeAll)
	cart.Customer.Name = "Pat"
	assert.False(t, cart.DidChange(orderHash, CartScopeOrder))
	assert.True(t, cart.DidChange(allHash, HashScopeAll))

	// Cart membership affects every view.
	itemsHash = cart.GetHash(CartScopeItems)
	cart.AddItem(NewCartItem())
	assert.True(t, cart.DidChange(itemsHash, CartScopeItems))
}

func TestCartReset(t *testing.T) {
	cart := NewCart()
	cart.AddItem(completeItem(&Service{ID: 1, Price: 40}))
	cart.Customer = CustomerDetails{Name: "Pat"}
	cart.SetCoupon(&Coupon{Status: CouponStatusActive, Code: "SAVE"})

	cart.Reset()
	assert.True(t, cart.IsEmpty())
	assert.Empty(t, cart.ActiveItemID)
	assert.Empty(t, cart.Customer.Name)
	assert.False(t, cart.HasCoupon())
}
