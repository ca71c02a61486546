package api

import (
	"context"
	"strconv"

	"staynest/internal/models"
)

// AdminService wraps the admin-scoped variants of users and bookings.
// Rendering these is gated on the admin role locally; the API enforces it.
type AdminService struct {
	client *Client
}

func (s *AdminService) ListUsers(ctx context.Context, page int) ([]models.User, error) {
	path := "/admin/users"
	if page > 0 {
		path += "?page=" + strconv.Itoa(page)
	}
	var users []models.User
	if err := s.client.get(ctx, path, "admin", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *AdminService) SetUserStatus(ctx context.Context, userID string, active bool) (*models.User, error) {
	var user models.User
	req := models.SetUserStatusRequest{IsActive: active}
	if err := s.client.patch(ctx, "/admin/users/"+escape(userID)+"/status", "admin", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AdminService) ListBookings(ctx context.Context, page int) ([]models.Booking, error) {
	path := "/admin/bookings"
	if page > 0 {
		path += "?page=" + strconv.Itoa(page)
	}
	var bookings []models.Booking
	if err := s.client.get(ctx, path, "admin", &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
