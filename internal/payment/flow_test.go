package payment

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staynest/internal/api"
	"staynest/internal/apitest"
	apperrors "staynest/internal/errors"
	"staynest/internal/models"
	"staynest/internal/session"
)

// fakeConfirmer stands in for the processor SDK.
type fakeConfirmer struct {
	confirmation *Confirmation
	err          error

	gotSecret  string
	gotBilling BillingDetails
	calls      int
}

func (f *fakeConfirmer) ConfirmIntent(_ context.Context, clientSecret string, _ Card, billing BillingDetails) (*Confirmation, error) {
	f.calls++
	f.gotSecret = clientSecret
	f.gotBilling = billing
	if f.err != nil {
		return nil, f.err
	}
	return f.confirmation, nil
}

func setup(t *testing.T) (*apitest.Server, *api.Client, string) {
	t.Helper()

	fake := apitest.NewServer()
	ts := httptest.NewServer(fake.Handler())
	t.Cleanup(ts.Close)

	store, err := session.NewStore(session.Config{TokenPath: filepath.Join(t.TempDir(), "token")})
	require.NoError(t, err)
	require.NoError(t, store.SetToken(fake.IssueToken("u-guest")))

	client := api.NewClient(api.Config{BaseURL: ts.URL}, store)

	booking, err := client.Bookings.Create(context.Background(), models.CreateBookingRequest{
		ListingID: "l-1",
		CheckIn:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:  time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
		Adults:    2,
		FirstName: "Gil", LastName: "Moss",
		Email: "gil@example.com", Phone: "+31612345678",
	})
	require.NoError(t, err)

	return fake, client, booking.ID
}

func validCard() Card {
	return Card{Number: "4242424242424242", ExpMonth: 12, ExpYear: 2030, CVC: "123"}
}

func validBilling() BillingDetails {
	return BillingDetails{
		Name: "Gil Moss",
		Address: Address{
			Line1: "12 Canal St", City: "Leiden", State: "ZH",
			PostalCode: "2311GB", Country: "NL",
		},
	}
}

func TestConfirmBlockedUntilStartSucceeds(t *testing.T) {
	fake, client, bookingID := setup(t)
	confirmer := &fakeConfirmer{confirmation: &Confirmation{IntentID: "pi_1", Status: StatusSucceeded}}
	flow := NewFlow(client, confirmer, bookingID)

	// Intent creation fails: the card form never becomes ready.
	fake.FailIntents = true
	err := flow.Start(context.Background())
	require.Error(t, err)
	assert.False(t, flow.Ready())

	_, err = flow.Confirm(context.Background(), validCard(), validBilling())
	assert.ErrorIs(t, err, ErrNotReady)
	assert.Zero(t, confirmer.calls)

	// Explicit retry after the failure is the only way forward.
	fake.FailIntents = false
	require.NoError(t, flow.Start(context.Background()))
	assert.True(t, flow.Ready())
}

func TestConfirmSuccessReportsPaid(t *testing.T) {
	fake, client, bookingID := setup(t)
	confirmer := &fakeConfirmer{confirmation: &Confirmation{IntentID: "pi_1", Status: StatusSucceeded}}
	flow := NewFlow(client, confirmer, bookingID)

	require.NoError(t, flow.Start(context.Background()))

	result, err := flow.Confirm(context.Background(), validCard(), validBilling())
	require.NoError(t, err)
	assert.Equal(t, bookingID, result.BookingID)
	assert.Empty(t, result.Warning)

	// The SDK received the server-issued secret untouched.
	assert.Equal(t, "pi_"+bookingID+"_secret_test", confirmer.gotSecret)

	updates := fake.StatusUpdates()
	require.Len(t, updates, 1)
	assert.Equal(t, models.PaymentPaid, updates[0].Status)
	assert.Equal(t, "pi_1", updates[0].PaymentIntentID)

	stored, ok := fake.Booking(bookingID)
	require.True(t, ok)
	assert.Equal(t, models.BookingConfirmed, stored.Status)
	assert.Equal(t, models.PaymentPaid, stored.PaymentStatus)
}

func TestIncompleteBillingRejectedBeforeSDK(t *testing.T) {
	_, client, bookingID := setup(t)
	confirmer := &fakeConfirmer{confirmation: &Confirmation{IntentID: "pi_1", Status: StatusSucceeded}}
	flow := NewFlow(client, confirmer, bookingID)
	require.NoError(t, flow.Start(context.Background()))

	billing := validBilling()
	billing.Address.PostalCode = ""

	_, err := flow.Confirm(context.Background(), validCard(), billing)
	assert.ErrorIs(t, err, ErrBillingIncomplete)
	assert.Zero(t, confirmer.calls)
}

func TestProcessorErrorSurfacedVerbatim(t *testing.T) {
	fake, client, bookingID := setup(t)
	confirmer := &fakeConfirmer{err: &ProcessorError{Message: "Your card was declined."}}
	flow := NewFlow(client, confirmer, bookingID)
	require.NoError(t, flow.Start(context.Background()))

	_, err := flow.Confirm(context.Background(), validCard(), validBilling())
	require.Error(t, err)

	var procErr *ProcessorError
	require.ErrorAs(t, err, &procErr)
	assert.Equal(t, "Your card was declined.", procErr.Message)

	// Nothing was reported back; the form stays for an explicit retry.
	assert.Empty(t, fake.StatusUpdates())
}

func TestUnexpectedStatusIsGenericFailure(t *testing.T) {
	fake, client, bookingID := setup(t)
	confirmer := &fakeConfirmer{confirmation: &Confirmation{IntentID: "pi_1", Status: "requires_action"}}
	flow := NewFlow(client, confirmer, bookingID)
	require.NoError(t, flow.Start(context.Background()))

	_, err := flow.Confirm(context.Background(), validCard(), validBilling())
	assert.ErrorIs(t, err, ErrPaymentFailed)
	assert.Empty(t, fake.StatusUpdates())
}

func TestStatusUpdateFailureStillSucceeds(t *testing.T) {
	fake, client, bookingID := setup(t)
	confirmer := &fakeConfirmer{confirmation: &Confirmation{IntentID: "pi_1", Status: StatusSucceeded}}
	flow := NewFlow(client, confirmer, bookingID)
	require.NoError(t, flow.Start(context.Background()))

	// The charge goes through but the report back to the API does not.
	fake.ForceUnauthorized = true

	result, err := flow.Confirm(context.Background(), validCard(), validBilling())
	require.NoError(t, err, "a confirmed charge must never look like a failed payment")
	assert.NotEmpty(t, result.Warning)
	assert.Empty(t, fake.StatusUpdates())
}

func TestIntentIDFromSecret(t *testing.T) {
	id, ok := intentIDFromSecret("pi_b1_secret_abc")
	assert.True(t, ok)
	assert.Equal(t, "pi_b1", id)

	_, ok = intentIDFromSecret("garbage")
	assert.False(t, ok)

	_, ok = intentIDFromSecret("_secret_abc")
	assert.False(t, ok)
}

func TestErrorMessagesAreUserFacing(t *testing.T) {
	assert.Equal(t, "Your card was declined.", (&ProcessorError{Message: "Your card was declined."}).Error())
	assert.NotEqual(t, apperrors.GenericMessage, ErrBillingIncomplete.Error())
}
