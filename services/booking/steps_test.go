package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookify/models"
)

func newTestWizard(cart *models.Cart) (*BookingSteps, *fakeStep, *fakeStep, *fakeStep) {
	first := newFakeStep("first", ContextCartItem, cart, nil)
	second := newFakeStep("second", ContextCartItem, cart, nil)
	third := newFakeStep("third", ContextCart, cart, nil)

	wizard := NewBookingSteps(cart)
	wizard.AddStep(first)
	wizard.AddStep(second)
	wizard.AddStep(third)
	return wizard, first, second, third
}

func TestBookingStepsStart(t *testing.T) {
	cart := models.NewCart()
	wizard, first, _, _ := newTestWizard(cart)
	ctx := context.Background()

	assert.Nil(t, wizard.ActiveStep())

	wizard.Start(ctx)

	// Start provisions the first cart item and loads the first step.
	require.NotNil(t, cart.GetActiveItem())
	assert.Equal(t, "first", wizard.ActiveStep().ID())
	assert.Equal(t, 1, first.loadEntities)
}

func TestBookingStepsWalkForwardAndBack(t *testing.T) {
	wizard, _, second, _ := newTestWizard(models.NewCart())
	ctx := context.Background()
	wizard.Start(ctx)

	wizard.GoToNextStep(ctx, "first")
	assert.Equal(t, "second", wizard.ActiveStep().ID())
	assert.Equal(t, 1, second.loadEntities)

	wizard.GoToNextStep(ctx, "second")
	assert.Equal(t, "third", wizard.ActiveStep().ID())

	// Advancing past the last step is a no-op.
	wizard.GoToNextStep(ctx, "third")
	assert.Equal(t, "third", wizard.ActiveStep().ID())

	wizard.GoToPreviousStep(ctx, "third")
	assert.Equal(t, "second", wizard.ActiveStep().ID())
	wizard.GoToPreviousStep(ctx, "second")
	wizard.GoToPreviousStep(ctx, "first")
	assert.Equal(t, "first", wizard.ActiveStep().ID())
}

func TestBookingStepsIgnoresInactiveEvents(t *testing.T) {
	wizard, _, _, _ := newTestWizard(models.NewCart())
	ctx := context.Background()
	wizard.Start(ctx)

	// Events tagged with a non-active step id must not move the wizard.
	wizard.GoToNextStep(ctx, "second")
	assert.Equal(t, "first", wizard.ActiveStep().ID())
	wizard.GoToNextStep(ctx, "third")
	assert.Equal(t, "first", wizard.ActiveStep().ID())
}

func TestBookingStepsSkipsHiddenSteps(t *testing.T) {
	wizard, _, second, _ := newTestWizard(models.NewCart())
	second.hideOnLoad = true
	ctx := context.Background()
	wizard.Start(ctx)

	// The hidden middle step resolves itself and is skipped forward.
	wizard.GoToNextStep(ctx, "first")
	assert.Equal(t, "third", wizard.ActiveStep().ID())

	// And skipped again on the way back.
	wizard.GoToPreviousStep(ctx, "third")
	assert.Equal(t, "first", wizard.ActiveStep().ID())
}

func TestBookingStepsHiddenBoundaryStaysActive(t *testing.T) {
	wizard, _, _, third := newTestWizard(models.NewCart())
	third.hideOnLoad = true
	ctx := context.Background()
	wizard.Start(ctx)

	wizard.GoToNextStep(ctx, "first")
	wizard.GoToNextStep(ctx, "second")

	// Hidden last step has nothing to skip to, so it stays active.
	assert.Equal(t, "third", wizard.ActiveStep().ID())
}

func TestBookingStepsSubmit(t *testing.T) {
	wizard, first, _, _ := newTestWizard(models.NewCart())
	ctx := context.Background()
	wizard.Start(ctx)

	// A rejected submit keeps the step active.
	first.submitOK = false
	assert.False(t, wizard.Submit(ctx, "first"))
	assert.Equal(t, "first", wizard.ActiveStep().ID())
	assert.Equal(t, "submit rejected", first.LastError())

	// An accepted submit advances.
	first.submitOK = true
	assert.True(t, wizard.Submit(ctx, "first"))
	assert.Equal(t, "second", wizard.ActiveStep().ID())

	// Submits from inactive steps are ignored.
	assert.False(t, wizard.Submit(ctx, "first"))
}

func TestBookingStepsNewItem(t *testing.T) {
	cart := models.NewCart()
	wizard, first, second, third := newTestWizard(cart)
	ctx := context.Background()
	wizard.Start(ctx)
	wizard.GoToNextStep(ctx, "first")

	wizard.NewItem(ctx)

	// Only the per-item steps reset; the cart-scoped step keeps its state.
	assert.Equal(t, 1, first.resets)
	assert.Equal(t, 1, second.resets)
	assert.Zero(t, third.resets)

	assert.Len(t, cart.Items, 2)
	assert.Equal(t, "first", wizard.ActiveStep().ID())
}

func TestBookingStepsReset(t *testing.T) {
	cart := models.NewCart()
	wizard, first, second, third := newTestWizard(cart)
	ctx := context.Background()
	wizard.Start(ctx)
	wizard.GoToNextStep(ctx, "first")
	cart.SetCoupon(&models.Coupon{Status: models.CouponStatusActive, Code: "SAVE"})

	wizard.Reset(ctx)

	// Everything resets and the wizard restarts with one fresh item.
	assert.Equal(t, 1, first.resets)
	assert.Equal(t, 1, second.resets)
	assert.Equal(t, 1, third.resets)
	assert.Len(t, cart.Items, 1)
	assert.False(t, cart.HasCoupon())
	assert.Equal(t, "first", wizard.ActiveStep().ID())
}

func TestRestoreWizardReinstatesState(t *testing.T) {
	cart := models.NewCart()
	deps := WizardDeps{}

	wizard := NewWizard(cart, deps)
	require.Len(t, wizard.steps, 4)

	session := &WizardSession{SessionID: "s1", Cart: cart}
	wizard.GetStep(StepCheckout).SetProperty(PropName, "Pat")
	wizard.active = 2
	SnapshotSession(session, wizard)

	restored := RestoreWizard(session, deps)
	assert.Equal(t, StepCart, restored.ActiveStep().ID())
	assert.Equal(t, "Pat", restored.GetStep(StepCheckout).GetProperty(PropName))
}
