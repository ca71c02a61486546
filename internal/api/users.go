package api

import (
	"context"

	"staynest/internal/models"
)

// UsersService wraps the user profile endpoints.
type UsersService struct {
	client *Client
}

func (s *UsersService) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.client.get(ctx, "/users/"+escape(id), "users", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UsersService) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error) {
	var user models.User
	if err := s.client.put(ctx, "/profile", "users", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
