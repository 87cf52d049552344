package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookify/models"
	"bookify/services/booking"
	"bookify/utils"
)

// BookingHandler exposes the admin booking wizard over HTTP. Each request
// restores the wizard from its Redis session, applies one operation and
// persists the result, so the handlers themselves hold no state.
type BookingHandler struct {
	Sessions *booking.SessionStore
	Deps     booking.WizardDeps
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(sessions *booking.SessionStore, deps booking.WizardDeps) *BookingHandler {
	return &BookingHandler{Sessions: sessions, Deps: deps}
}

// StartSession creates a fresh wizard session and activates the first step.
func (h *BookingHandler) StartSession(c *gin.Context) {
	ctx := c.Request.Context()

	cart := &models.Cart{}
	wizard := booking.NewWizard(cart, h.Deps)
	wizard.Start(ctx)

	session, err := h.Sessions.Create(ctx, cart)
	if err != nil {
		utils.GetLogger().Error("Failed to create wizard session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking session"})
		return
	}
	h.saveAndRespond(c, session, wizard)
}

// GetSession returns the current wizard state.
func (h *BookingHandler) GetSession(c *gin.Context) {
	session, wizard, ok := h.restore(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sessionView(session, wizard))
}

// SetProperty applies one property update to a step. The step reloads first
// so dependent option lists are in place before reactions run.
func (h *BookingHandler) SetProperty(c *gin.Context) {
	var input struct {
		Step  string      `json:"step"`
		Name  string      `json:"name" binding:"required"`
		Value interface{} `json:"value"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, wizard, ok := h.restore(c)
	if !ok {
		return
	}

	step := wizard.ActiveStep()
	if input.Step != "" {
		step = wizard.GetStep(input.Step)
	}
	if step == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown wizard step"})
		return
	}

	step.Load(c.Request.Context())
	step.SetProperty(input.Name, input.Value)
	h.saveAndRespond(c, session, wizard)
}

// NextStep advances the wizard past the active step.
func (h *BookingHandler) NextStep(c *gin.Context) {
	session, wizard, ok := h.restore(c)
	if !ok {
		return
	}
	if active := wizard.ActiveStep(); active != nil {
		wizard.GoToNextStep(c.Request.Context(), active.ID())
	}
	h.saveAndRespond(c, session, wizard)
}

// PreviousStep moves the wizard back one step.
func (h *BookingHandler) PreviousStep(c *gin.Context) {
	session, wizard, ok := h.restore(c)
	if !ok {
		return
	}
	if active := wizard.ActiveStep(); active != nil {
		wizard.GoToPreviousStep(c.Request.Context(), active.ID())
	}
	h.saveAndRespond(c, session, wizard)
}

// NewItem begins another cart item, resetting only the per-item steps.
func (h *BookingHandler) NewItem(c *gin.Context) {
	session, wizard, ok := h.restore(c)
	if !ok {
		return
	}
	wizard.NewItem(c.Request.Context())
	h.saveAndRespond(c, session, wizard)
}

// ResetSession clears the cart and restarts the wizard from the first step.
func (h *BookingHandler) ResetSession(c *gin.Context) {
	session, wizard, ok := h.restore(c)
	if !ok {
		return
	}
	wizard.Reset(c.Request.Context())
	h.saveAndRespond(c, session, wizard)
}

// SubmitStep submits the active step; on success the wizard has already
// advanced by the time the state is returned.
func (h *BookingHandler) SubmitStep(c *gin.Context) {
	session, wizard, ok := h.restore(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	active := wizard.ActiveStep()
	if active == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "wizard has no active step"})
		return
	}
	active.Load(ctx)
	submitted := wizard.Submit(ctx, active.ID())

	if err := h.saveSession(ctx, session, wizard); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store booking session"})
		return
	}
	state := sessionView(session, wizard)
	state["submitted"] = submitted
	if !submitted {
		state["error"] = active.LastError()
	}
	c.JSON(http.StatusOK, state)
}

// RemoveItem drops one item from the cart.
func (h *BookingHandler) RemoveItem(c *gin.Context) {
	session, wizard, ok := h.restore(c)
	if !ok {
		return
	}
	step, _ := wizard.GetStep(booking.StepCart).(*booking.CartStep)
	if step == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cart step is not registered"})
		return
	}
	step.RemoveItem(c.Param("itemId"))
	h.saveAndRespond(c, session, wizard)
}

// ApplyCoupon validates a coupon code against the cart and attaches it.
func (h *BookingHandler) ApplyCoupon(c *gin.Context) {
	var input struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, wizard, ok := h.restore(c)
	if !ok {
		return
	}
	step, _ := wizard.GetStep(booking.StepCheckout).(*booking.CheckoutStep)
	if step == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout step is not registered"})
		return
	}
	if err := step.ApplyCoupon(c.Request.Context(), input.Code); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	h.saveAndRespond(c, session, wizard)
}

// RemoveCoupon detaches the cart's coupon.
func (h *BookingHandler) RemoveCoupon(c *gin.Context) {
	session, wizard, ok := h.restore(c)
	if !ok {
		return
	}
	step, _ := wizard.GetStep(booking.StepCheckout).(*booking.CheckoutStep)
	if step == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout step is not registered"})
		return
	}
	step.RemoveCoupon()
	h.saveAndRespond(c, session, wizard)
}

// Checkout submits the checkout step directly: order snapshot, archive,
// deposit payment and reminders. The session is deleted on success.
func (h *BookingHandler) Checkout(c *gin.Context) {
	session, wizard, ok := h.restore(c)
	if !ok {
		return
	}
	step, _ := wizard.GetStep(booking.StepCheckout).(*booking.CheckoutStep)
	if step == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout step is not registered"})
		return
	}

	ctx := c.Request.Context()
	step.Load(ctx)
	if !step.Submit(ctx) {
		if err := h.saveSession(ctx, session, wizard); err != nil {
			utils.GetLogger().Error("Failed to store wizard session", zap.Error(err))
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": step.LastError()})
		return
	}

	if err := h.Sessions.Delete(ctx, session.SessionID); err != nil {
		utils.GetLogger().Warn("Failed to delete completed wizard session",
			zap.String("sessionId", session.SessionID), zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"order": step.SubmittedOrder()})
}

func (h *BookingHandler) restore(c *gin.Context) (*booking.WizardSession, *booking.BookingSteps, bool) {
	session, err := h.Sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found or expired"})
		return nil, nil, false
	}
	return session, booking.RestoreWizard(session, h.Deps), true
}

func (h *BookingHandler) saveSession(ctx context.Context, session *booking.WizardSession, wizard *booking.BookingSteps) error {
	booking.SnapshotSession(session, wizard)
	return h.Sessions.Save(ctx, session)
}

func (h *BookingHandler) saveAndRespond(c *gin.Context, session *booking.WizardSession, wizard *booking.BookingSteps) {
	if err := h.saveSession(c.Request.Context(), session, wizard); err != nil {
		utils.GetLogger().Error("Failed to store wizard session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store booking session"})
		return
	}
	c.JSON(http.StatusOK, sessionView(session, wizard))
}

func sessionView(session *booking.WizardSession, wizard *booking.BookingSteps) gin.H {
	view := gin.H{
		"sessionId": session.SessionID,
		"cart":      cartView(wizard.Cart()),
	}
	if active := wizard.ActiveStep(); active != nil {
		view["activeStep"] = gin.H{
			"id":         active.ID(),
			"context":    active.Context(),
			"hidden":     active.Hidden(),
			"valid":      active.IsValidInput(),
			"properties": active.Properties(),
			"lastError":  active.LastError(),
		}
	}
	return view
}

func cartView(cart *models.Cart) gin.H {
	items := make([]gin.H, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, itemView(item))
	}
	view := gin.H{
		"items":        items,
		"activeItemId": cart.ActiveItemID,
		"subtotal":     cart.Subtotal(),
		"discount":     cart.GetCouponDiscount(),
		"total":        cart.GetTotalPrice(),
		"deposit":      cart.GetDeposit(),
	}
	if cart.Coupon != nil {
		view["coupon"] = cart.Coupon.Code
	}
	return view
}

func itemView(item *models.CartItem) gin.H {
	view := gin.H{
		"itemId":   item.ItemID,
		"capacity": item.Capacity,
		"complete": item.IsSet(models.HashScopeAll),
	}
	if item.Service != nil {
		view["serviceId"] = item.Service.ID
		view["serviceName"] = item.Service.Name
		view["price"] = item.GetPrice()
	}
	if item.Employee != nil {
		view["employee"] = item.Employee.Name
	}
	if item.Location != nil {
		view["location"] = item.Location.Name
	}
	if !item.Date.IsZero() {
		view["date"] = utils.FormatDate(item.Date, utils.FormatInternal)
	}
	if item.Time != nil {
		view["time"] = item.Time.String()
	}
	return view
}
