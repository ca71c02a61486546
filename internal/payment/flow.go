package payment

import (
	"context"
	"fmt"
	"sync"

	"staynest/internal/api"
	apperrors "staynest/internal/errors"
	"staynest/internal/logger"
	"staynest/internal/models"
)

var (
	// ErrNotReady means intent creation has not succeeded yet; the card
	// form stays blocked until Start is retried explicitly.
	ErrNotReady = apperrors.Message("payment form is not ready, try again")

	ErrConfirmInFlight   = apperrors.Message("your payment is already being processed")
	ErrBillingIncomplete = apperrors.Message("enter the cardholder name and full billing address")

	// ErrPaymentFailed covers any SDK outcome that is neither an error
	// nor a confirmed success.
	ErrPaymentFailed = apperrors.Message("the payment could not be completed, please try again")
)

// ProcessorError carries a message from the payment processor verbatim.
type ProcessorError struct {
	Message string
}

func (e *ProcessorError) Error() string {
	return e.Message
}

// UserFacing marks the processor's text as shown to the user as-is.
func (e *ProcessorError) UserFacing() {}

// Card - raw card input captured from the user
type Card struct {
	Number   string
	ExpMonth int64
	ExpYear  int64
	CVC      string
}

// Address - billing address; every field is required by the processor's
// regional rules
type Address struct {
	Line1      string
	City       string
	State      string
	PostalCode string
	Country    string
}

// BillingDetails - cardholder name plus billing address
type BillingDetails struct {
	Name    string
	Address Address
}

// Confirmation is what a Confirmer reports back for a charge attempt.
type Confirmation struct {
	IntentID string
	Status   string
}

// StatusSucceeded is the only Confirmation status treated as success.
const StatusSucceeded = "succeeded"

// Confirmer confirms a charge against a server-issued client secret.
// The production implementation wraps the Stripe SDK.
type Confirmer interface {
	ConfirmIntent(ctx context.Context, clientSecret string, card Card, billing BillingDetails) (*Confirmation, error)
}

// Result of a successful confirmation. Warning is set when the charge went
// through but reporting it back to the API failed; the user should refresh,
// not pay again.
type Result struct {
	BookingID string
	IntentID  string
	Warning   string
}

// Flow drives the two-phase payment protocol for one booking: create an
// intent via the API, then confirm the charge with the processor SDK and
// report the outcome back. Nothing here retries automatically.
type Flow struct {
	client    *api.Client
	confirmer Confirmer
	bookingID string

	mu           sync.Mutex
	clientSecret string
	busy         bool
}

// NewFlow creates a payment flow for the booking.
func NewFlow(client *api.Client, confirmer Confirmer, bookingID string) *Flow {
	return &Flow{
		client:    client,
		confirmer: confirmer,
		bookingID: bookingID,
	}
}

// Start requests a payment intent and stores its client secret. Until this
// has succeeded the flow is not ready and Confirm is blocked; a failure is
// terminal until the caller explicitly calls Start again.
func (f *Flow) Start(ctx context.Context) error {
	intent, err := f.client.Payments.CreateIntent(ctx, f.bookingID)
	if err != nil {
		return fmt.Errorf("failed to prepare payment: %w", err)
	}

	f.mu.Lock()
	f.clientSecret = intent.ClientSecret
	f.mu.Unlock()
	return nil
}

// Ready reports whether the card form may be rendered.
func (f *Flow) Ready() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clientSecret != ""
}

// Confirm validates billing input, confirms the charge with the processor
// and reports the outcome to the API. Three outcomes: a processor error is
// surfaced verbatim and the form stays; a confirmed success reports paid
// status best-effort; anything else is a generic failure.
func (f *Flow) Confirm(ctx context.Context, card Card, billing BillingDetails) (*Result, error) {
	f.mu.Lock()
	if f.clientSecret == "" {
		f.mu.Unlock()
		return nil, ErrNotReady
	}
	if f.busy {
		f.mu.Unlock()
		return nil, ErrConfirmInFlight
	}
	f.busy = true
	secret := f.clientSecret
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.busy = false
		f.mu.Unlock()
	}()

	if err := validateBilling(billing); err != nil {
		return nil, err
	}

	conf, err := f.confirmer.ConfirmIntent(ctx, secret, card, billing)
	if err != nil {
		// Processor rejections are surfaced as-is; the form stays up
		// for an explicit retry.
		return nil, err
	}

	if conf.Status != StatusSucceeded {
		return nil, ErrPaymentFailed
	}

	result := &Result{BookingID: f.bookingID, IntentID: conf.IntentID}

	// The charge has already happened; failing to record it must not
	// look like a failed payment.
	if err := f.client.Payments.UpdateStatus(ctx, f.bookingID, models.PaymentPaid, conf.IntentID); err != nil {
		logger.Get().Warn("payment confirmed but status update failed",
			"booking_id", f.bookingID, "intent_id", conf.IntentID, "error", err)
		result.Warning = "your payment went through, but the booking may take a moment to update; refresh to see its status"
	}

	return result, nil
}

func validateBilling(billing BillingDetails) error {
	switch {
	case billing.Name == "",
		billing.Address.Line1 == "",
		billing.Address.City == "",
		billing.Address.State == "",
		billing.Address.PostalCode == "",
		billing.Address.Country == "":
		return ErrBillingIncomplete
	}
	return nil
}
