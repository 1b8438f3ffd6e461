package payment

import (
	"context"
	"errors"
	"math"
	"net/http"

	"slotbook/models"
	"slotbook/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// Verifier checks a confirm request against the payment gateway before
// any booking state is touched.
type Verifier interface {
	Verify(ctx context.Context, req models.ConfirmRequest) error
}

// IntentFetcher loads a PaymentIntent by ID.
type IntentFetcher func(id string) (*stripe.PaymentIntent, error)

// StripeVerifier treats GatewayPaymentID as a Stripe PaymentIntent ID and
// requires it to have succeeded for the requested amount.
type StripeVerifier struct {
	Fetch  IntentFetcher
	Logger *zap.Logger
}

// NewStripeVerifier configures the stripe client with key.
func NewStripeVerifier(key string, logger *zap.Logger) *StripeVerifier {
	stripe.Key = key
	return &StripeVerifier{
		Fetch: func(id string) (*stripe.PaymentIntent, error) {
			return paymentintent.Get(id, nil)
		},
		Logger: logger,
	}
}

func (v *StripeVerifier) Verify(ctx context.Context, req models.ConfirmRequest) error {
	if req.GatewayPaymentID == "" {
		return utils.NewValidationError("Payment ID is required")
	}

	intent, err := v.Fetch(req.GatewayPaymentID)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == http.StatusNotFound {
			return utils.NewValidationError("Payment not found")
		}
		return utils.NewInternalError("Failed to verify payment", err)
	}

	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		v.Logger.Warn("Payment not settled",
			zap.String("paymentID", req.GatewayPaymentID),
			zap.String("status", string(intent.Status)))
		return utils.NewValidationError("Payment has not succeeded")
	}
	// PaymentIntent amounts are in minor units.
	if intent.Amount != int64(math.Round(req.Amount*100)) {
		v.Logger.Warn("Payment amount mismatch",
			zap.String("paymentID", req.GatewayPaymentID),
			zap.Int64("charged", intent.Amount),
			zap.Float64("requested", req.Amount))
		return utils.NewValidationError("Payment amount does not match")
	}
	return nil
}

// NoopVerifier accepts every request. It is used when no gateway key is
// configured.
type NoopVerifier struct{}

func (NoopVerifier) Verify(ctx context.Context, req models.ConfirmRequest) error { return nil }
