package payment

import (
	"context"
	"errors"
	"strings"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
	"github.com/stripe/stripe-go/v79/paymentmethod"
)

// Config for the Stripe-backed confirmer
type Config struct {
	PublishableKey string
}

// StripeConfirmer confirms payment intents through the Stripe SDK using
// the publishable key and the server-issued client secret.
type StripeConfirmer struct{}

// NewStripeConfirmer configures the SDK and returns a confirmer.
func NewStripeConfirmer(cfg Config) *StripeConfirmer {
	stripe.Key = cfg.PublishableKey
	return &StripeConfirmer{}
}

// ConfirmIntent builds a payment method from the card and billing details
// and confirms the intent the client secret belongs to. Stripe rejections
// come back as *ProcessorError with Stripe's own message.
func (s *StripeConfirmer) ConfirmIntent(ctx context.Context, clientSecret string, card Card, billing BillingDetails) (*Confirmation, error) {
	intentID, ok := intentIDFromSecret(clientSecret)
	if !ok {
		return nil, errors.New("malformed payment client secret")
	}

	pmParams := &stripe.PaymentMethodParams{
		Params: stripe.Params{Context: ctx},
		Type:   stripe.String("card"),
		Card: &stripe.PaymentMethodCardParams{
			Number:   stripe.String(card.Number),
			ExpMonth: stripe.Int64(card.ExpMonth),
			ExpYear:  stripe.Int64(card.ExpYear),
			CVC:      stripe.String(card.CVC),
		},
		BillingDetails: &stripe.PaymentMethodBillingDetailsParams{
			Name: stripe.String(billing.Name),
			Address: &stripe.AddressParams{
				Line1:      stripe.String(billing.Address.Line1),
				City:       stripe.String(billing.Address.City),
				State:      stripe.String(billing.Address.State),
				PostalCode: stripe.String(billing.Address.PostalCode),
				Country:    stripe.String(billing.Address.Country),
			},
		},
	}

	pm, err := paymentmethod.New(pmParams)
	if err != nil {
		return nil, asProcessorError(err)
	}

	confirmParams := &stripe.PaymentIntentConfirmParams{
		Params:        stripe.Params{Context: ctx},
		PaymentMethod: stripe.String(pm.ID),
	}

	intent, err := paymentintent.Confirm(intentID, confirmParams)
	if err != nil {
		return nil, asProcessorError(err)
	}

	return &Confirmation{IntentID: intent.ID, Status: string(intent.Status)}, nil
}

// intentIDFromSecret extracts the intent id from a "pi_..._secret_..."
// client secret.
func intentIDFromSecret(secret string) (string, bool) {
	id, _, found := strings.Cut(secret, "_secret_")
	if !found || id == "" {
		return "", false
	}
	return id, true
}

func asProcessorError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return &ProcessorError{Message: stripeErr.Msg}
	}
	return err
}
