package api

import (
	"context"
	"fmt"
	"net/url"

	"staynest/internal/models"
)

// AuthService wraps the authentication endpoints. Login and VerifyOTP are
// the only writers of the token slot besides the 401 handler.
type AuthService struct {
	client *Client
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	var user models.User
	if err := s.client.post(ctx, "/auth/register", "auth", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates and stores the returned token in the session slot.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	var resp models.LoginResponse
	req := models.LoginRequest{Email: email, Password: password}
	if err := s.client.post(ctx, "/auth/login", "auth", req, &resp); err != nil {
		return nil, err
	}
	if err := s.client.session.SetToken(resp.Token); err != nil {
		return nil, fmt.Errorf("signed in but failed to persist session: %w", err)
	}
	return &resp.User, nil
}

// Logout clears the local slot even when the API call fails; the server
// side token expires on its own.
func (s *AuthService) Logout(ctx context.Context) error {
	err := s.client.post(ctx, "/auth/logout", "auth", nil, nil)
	if clearErr := s.client.session.Clear(); clearErr != nil {
		return clearErr
	}
	return err
}

// ResendOTP is a manual, explicit retry control; nothing in this layer
// retries on its own.
func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	return s.client.post(ctx, "/auth/otp/resend", "auth", models.OTPRequest{Email: email}, nil)
}

// VerifyOTP exchanges a one-time code for a session token and stores it.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (*models.User, error) {
	var resp models.LoginResponse
	req := models.VerifyOTPRequest{Email: email, Code: code}
	if err := s.client.post(ctx, "/auth/otp/verify", "auth", req, &resp); err != nil {
		return nil, err
	}
	if err := s.client.session.SetToken(resp.Token); err != nil {
		return nil, fmt.Errorf("verified but failed to persist session: %w", err)
	}
	return &resp.User, nil
}

// Me returns the authenticated account as the server sees it.
func (s *AuthService) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := s.client.get(ctx, "/auth/me", "auth", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// escape is shared by services building paths from caller-supplied ids.
func escape(id string) string {
	return url.PathEscape(id)
}
