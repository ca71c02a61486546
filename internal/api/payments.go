package api

import (
	"context"

	"staynest/internal/models"
)

// PaymentsService wraps the payment endpoints. The heavy lifting (capture,
// settlement) is the server's and the processor's; this only creates
// intents and reports confirmation outcomes back.
type PaymentsService struct {
	client *Client
}

// CreateIntent asks the API for a payment intent covering the booking's
// total and returns the opaque client secret the SDK confirms against.
func (s *PaymentsService) CreateIntent(ctx context.Context, bookingID string) (*models.PaymentIntent, error) {
	var intent models.PaymentIntent
	req := models.CreateIntentRequest{BookingID: bookingID}
	if err := s.client.post(ctx, "/payments/intent", "payments", req, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// UpdateStatus reports the client-side confirmation outcome. Callers treat
// a failure here as best-effort after a successful charge.
func (s *PaymentsService) UpdateStatus(ctx context.Context, bookingID string, status models.PaymentStatus, intentID string) error {
	req := models.UpdatePaymentStatusRequest{
		BookingID:       bookingID,
		Status:          status,
		PaymentIntentID: intentID,
	}
	return s.client.patch(ctx, "/payments/status", "payments", req, nil)
}
