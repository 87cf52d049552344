package booking

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"bookify/models"
	"bookify/utils"
)

// BookingSteps sequences the wizard's step controllers. Steps share one Cart
// and run in registration order; every transition is explicit and tagged
// with the id of the step that emitted it, so stale or duplicate UI events
// from an inactive step are ignored.
type BookingSteps struct {
	cart  *models.Cart
	steps []Step

	mu     sync.Mutex
	active int // index into steps, -1 before Start
}

func NewBookingSteps(cart *models.Cart) *BookingSteps {
	return &BookingSteps{
		cart:   cart,
		active: -1,
	}
}

// AddStep registers a step. Registration order is transition order.
func (m *BookingSteps) AddStep(step Step) {
	m.steps = append(m.steps, step)
}

func (m *BookingSteps) Cart() *models.Cart {
	return m.cart
}

// ActiveStep returns the currently active step, or nil before Start.
func (m *BookingSteps) ActiveStep() Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active < 0 || m.active >= len(m.steps) {
		return nil
	}
	return m.steps[m.active]
}

// GetStep returns a registered step by id, or nil.
func (m *BookingSteps) GetStep(id string) Step {
	for _, step := range m.steps {
		if step.ID() == id {
			return step
		}
	}
	return nil
}

// Start activates the first step. If the cart has no active item yet a fresh
// one is appended first.
func (m *BookingSteps) Start(ctx context.Context) {
	if m.cart.GetActiveItem() == nil {
		m.cart.AddItem(models.NewCartItem())
	}
	m.switchTo(ctx, 0, +1)
}

// isFromActive reports whether the emitting step is the active one.
func (m *BookingSteps) isFromActive(fromStepID string) bool {
	active := m.ActiveStep()
	if active == nil || active.ID() != fromStepID {
		utils.GetLogger().Debug("ignoring event from inactive step",
			zap.String("from", fromStepID))
		return false
	}
	return true
}

// GoToNextStep advances past the emitting step. No-op when it is the last
// step or when the event does not come from the active step.
func (m *BookingSteps) GoToNextStep(ctx context.Context, fromStepID string) {
	if !m.isFromActive(fromStepID) {
		return
	}
	m.mu.Lock()
	next := m.active + 1
	m.mu.Unlock()
	if next >= len(m.steps) {
		return
	}
	m.switchTo(ctx, next, +1)
}

// GoToPreviousStep retreats before the emitting step. No-op at the first
// step or when the event does not come from the active step.
func (m *BookingSteps) GoToPreviousStep(ctx context.Context, fromStepID string) {
	if !m.isFromActive(fromStepID) {
		return
	}
	m.mu.Lock()
	prev := m.active - 1
	m.mu.Unlock()
	if prev < 0 {
		return
	}
	m.switchTo(ctx, prev, -1)
}

// NewItem resets only the per-item steps, appends a fresh cart item and
// jumps to the first step: "add another item to the booking".
func (m *BookingSteps) NewItem(ctx context.Context) {
	for _, step := range m.steps {
		if step.Context() == ContextCartItem {
			step.Reset()
		}
	}
	m.cart.AddItem(models.NewCartItem())
	m.switchTo(ctx, 0, +1)
}

// Reset clears the entire cart and every step, then behaves like NewItem.
func (m *BookingSteps) Reset(ctx context.Context) {
	m.cart.Reset()
	for _, step := range m.steps {
		step.Reset()
	}
	m.cart.AddItem(models.NewCartItem())
	m.switchTo(ctx, 0, +1)
}

// Submit asks the active step to accept its data; success fires the next
// transition, failure leaves the step active for correction.
func (m *BookingSteps) Submit(ctx context.Context, fromStepID string) bool {
	if !m.isFromActive(fromStepID) {
		return false
	}
	step := m.ActiveStep()
	if !step.Submit(ctx) {
		return false
	}
	m.GoToNextStep(ctx, step.ID())
	return true
}

// switchTo activates the step at index, loading it, and skips over hidden
// steps in the direction of travel once their load has settled.
func (m *BookingSteps) switchTo(ctx context.Context, index, direction int) {
	for index >= 0 && index < len(m.steps) {
		step := m.steps[index]

		m.mu.Lock()
		m.active = index
		m.mu.Unlock()

		step.Load(ctx)
		if !step.Hidden() {
			return
		}

		next := index + direction
		if next < 0 || next >= len(m.steps) {
			// A hidden step at the boundary stays active; there is nothing
			// to skip to.
			return
		}
		index = next
	}
}
