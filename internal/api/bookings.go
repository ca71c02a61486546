package api

import (
	"context"

	"staynest/internal/models"
)

// BookingsService wraps the booking endpoints.
type BookingsService struct {
	client *Client
}

// Create submits the full booking form payload. Validation has already
// happened client-side; the server revalidates everything regardless.
func (s *BookingsService) Create(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error) {
	var booking models.Booking
	if err := s.client.post(ctx, "/bookings", "bookings", req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *BookingsService) Get(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := s.client.get(ctx, "/bookings/"+escape(id), "bookings", &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListMine returns the viewer's bookings as guest.
func (s *BookingsService) ListMine(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.client.get(ctx, "/bookings", "bookings", &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// HostBookings returns bookings against the viewer's listings.
func (s *BookingsService) HostBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.client.get(ctx, "/host/bookings", "bookings", &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *BookingsService) Cancel(ctx context.Context, id, reason string) (*models.Booking, error) {
	var booking models.Booking
	req := models.CancelBookingRequest{Reason: reason}
	if err := s.client.patch(ctx, "/bookings/"+escape(id)+"/cancel", "bookings", req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}
