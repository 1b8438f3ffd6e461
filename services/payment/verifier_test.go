package payment

import (
	"context"
	"errors"
	"testing"

	"slotbook/models"
	"slotbook/utils"

	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func TestStripeVerifier(t *testing.T) {
	intents := map[string]*stripe.PaymentIntent{
		"pi_ok":      {ID: "pi_ok", Amount: 50000, Status: stripe.PaymentIntentStatusSucceeded},
		"pi_pending": {ID: "pi_pending", Amount: 50000, Status: stripe.PaymentIntentStatusProcessing},
	}
	v := &StripeVerifier{
		Logger: zap.NewNop(),
		Fetch: func(id string) (*stripe.PaymentIntent, error) {
			if id == "pi_down" {
				return nil, errors.New("connection reset")
			}
			if pi, ok := intents[id]; ok {
				return pi, nil
			}
			return nil, &stripe.Error{HTTPStatusCode: 404}
		},
	}

	cases := []struct {
		name      string
		paymentID string
		amount    float64
		want      utils.ErrorKind
	}{
		{"succeeded", "pi_ok", 500, ""},
		{"missing id", "", 500, utils.KindValidation},
		{"unknown intent", "pi_nope", 500, utils.KindValidation},
		{"not settled", "pi_pending", 500, utils.KindValidation},
		{"amount mismatch", "pi_ok", 499.99, utils.KindValidation},
		{"gateway down", "pi_down", 500, utils.KindInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Verify(context.Background(), models.ConfirmRequest{GatewayPaymentID: tc.paymentID, Amount: tc.amount})
			if tc.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !utils.IsKind(err, tc.want) {
				t.Fatalf("expected %s, got %v", tc.want, err)
			}
		})
	}
}
