package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	apperrors "staynest/internal/errors"
	"staynest/internal/logger"
	"staynest/internal/metrics"
	"staynest/internal/session"
)

// Config for the API client
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is the single HTTP client every other component calls through.
// It injects the bearer token from the session slot on each request and
// invalidates the session when any call comes back 401.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Store

	Auth      *AuthService
	Listings  *ListingsService
	Bookings  *BookingsService
	Payments  *PaymentsService
	Reviews   *ReviewsService
	Users     *UsersService
	Messages  *MessagesService
	Wishlist  *WishlistService
	Analytics *AnalyticsService
	Admin     *AdminService
}

// NewClient creates a client for the marketplace API.
func NewClient(cfg Config, store *session.Store) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}

	c := &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		session: store,
	}

	c.Auth = &AuthService{client: c}
	c.Listings = &ListingsService{client: c}
	c.Bookings = &BookingsService{client: c}
	c.Payments = &PaymentsService{client: c}
	c.Reviews = &ReviewsService{client: c}
	c.Users = &UsersService{client: c}
	c.Messages = &MessagesService{client: c}
	c.Wishlist = &WishlistService{client: c}
	c.Analytics = &AnalyticsService{client: c}
	c.Admin = &AdminService{client: c}

	return c
}

// errorBody is the message envelope the API uses for failures.
type errorBody struct {
	Message string `json:"message"`
}

// do issues one request. resource is the coarse group used for metric
// labels. out may be nil for calls with no interesting response body.
func (c *Client) do(ctx context.Context, method, path, resource string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID := logger.NewRequestID()
	req.Header.Set("X-Request-ID", requestID)

	// The token slot is read at request time, never cached on the client.
	if token, ok := c.session.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log := logger.WithRequestID(requestID)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.APIRequests.WithLabelValues(resource, method, "transport_error").Inc()
		log.Error("request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, apperrors.ErrUnavailable)
	}
	defer resp.Body.Close()

	metrics.APIRequests.WithLabelValues(resource, method, strconv.Itoa(resp.StatusCode)).Inc()
	metrics.APIRequestDuration.WithLabelValues(resource, method).Observe(time.Since(start).Seconds())

	if resp.StatusCode == http.StatusUnauthorized {
		// Cross-cutting by contract: any 401 evicts the session,
		// regardless of which call triggered it. Navigation is the
		// subscriber's decision, not this layer's.
		c.session.Invalidate("unauthorized")
		log.Warn("session invalidated by API", "method", method, "path", path)
		return fmt.Errorf("%s %s: %w", method, path, apperrors.ErrUnauthorized)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg := apperrors.GenericMessage
		var errResp errorBody
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Message != "" {
			msg = errResp.Message
		}
		log.Warn("request rejected", "method", method, "path", path, "status", resp.StatusCode, "message", msg)
		return &apperrors.APIError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	log.Debug("request completed", "method", method, "path", path,
		"status", resp.StatusCode, "latency_ms", time.Since(start).Milliseconds())
	return nil
}

func (c *Client) get(ctx context.Context, path, resource string, out any) error {
	return c.do(ctx, http.MethodGet, path, resource, nil, out)
}

func (c *Client) post(ctx context.Context, path, resource string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, resource, body, out)
}

func (c *Client) put(ctx context.Context, path, resource string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, resource, body, out)
}

func (c *Client) patch(ctx context.Context, path, resource string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, resource, body, out)
}

func (c *Client) delete(ctx context.Context, path, resource string) error {
	return c.do(ctx, http.MethodDelete, path, resource, nil, nil)
}

// Session exposes the store for components that derive identity or
// subscribe to invalidation.
func (c *Client) Session() *session.Store {
	return c.session
}
