package booking

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"

	"bookify/models"
)

// PaymentHandler charges the up-front deposit of an order.
type PaymentHandler interface {
	ProcessDeposit(ctx context.Context, order models.Order) (*models.Invoice, error)
}

// StripePaymentHandler collects card deposits through Stripe payment
// intents. The global stripe key is set at bootstrap.
type StripePaymentHandler struct {
	logger *zap.Logger
}

func NewStripePaymentHandler(logger *zap.Logger) *StripePaymentHandler {
	return &StripePaymentHandler{logger: logger}
}

func (h *StripePaymentHandler) ProcessDeposit(ctx context.Context, order models.Order) (*models.Invoice, error) {
	if order.Deposit <= 0 {
		return nil, fmt.Errorf("order has no deposit to charge")
	}

	currency := order.Payment.Currency
	if currency == "" {
		currency = "usd"
	}

	inv := &models.Invoice{
		InvoiceID: uuid.New().String(),
		Amount:    order.Deposit,
		Currency:  currency,
		Method:    order.Payment.Method,
		Status:    "pending",
		CreatedAt: time.Now(),
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(toMinorUnits(order.Deposit)),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		ReceiptEmail: stripe.String(order.Customer.Email),
		Description:  stripe.String("Booking deposit"),
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	inv.PaymentID = pi.ID
	inv.Status = string(pi.Status)

	h.logger.Info("deposit payment intent created",
		zap.String("invoice", inv.InvoiceID),
		zap.String("paymentIntent", pi.ID),
		zap.Float64("amount", order.Deposit))
	return inv, nil
}

// toMinorUnits converts a decimal amount to the integer minor units Stripe
// expects.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
