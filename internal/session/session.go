package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"staynest/internal/models"
)

// tokenFileName is the fixed key for the single persisted token slot.
const tokenFileName = "token"

// Config for the session store
type Config struct {
	// TokenPath overrides where the token slot lives. Empty means
	// the user config dir.
	TokenPath string
}

// Store is the single persistent auth-token slot. It is read at request
// time by the API client and written only by the login flow and the
// unauthorized-response handler. Invalidation is surfaced as an event so
// the data layer never decides navigation itself.
type Store struct {
	mu     sync.Mutex
	path   string
	subs   map[int]func(reason string)
	nextID int
}

// NewStore creates a store backed by the given path, or a per-user
// default when cfg.TokenPath is empty.
func NewStore(cfg Config) (*Store, error) {
	path := cfg.TokenPath
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "staynest", tokenFileName)
	}
	return &Store{
		path: path,
		subs: make(map[int]func(reason string)),
	}, nil
}

// Token returns the stored token, if any.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", false
	}
	return token, true
}

// SetToken persists a new token, replacing any previous one.
func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to prepare token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

// Clear removes the stored token. A missing slot is not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked()
}

func (s *Store) clearLocked() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

// Invalidate clears the slot and notifies every subscriber once. Called by
// the API client when any call comes back 401; explicit logout uses Clear
// and emits no event.
func (s *Store) Invalidate(reason string) {
	s.mu.Lock()
	_ = s.clearLocked()
	subs := make([]func(string), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	// Callbacks run outside the lock so a subscriber may call back into
	// the store.
	for _, fn := range subs {
		fn(reason)
	}
}

// OnInvalidated registers a callback for session-invalidated events and
// returns an unsubscribe func.
func (s *Store) OnInvalidated(fn func(reason string)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Identity decodes the stored token's claims without verifying the
// signature. The server is the authority; this only decides which views
// render locally. Unknown or missing role claims fall back to guest.
func (s *Store) Identity() (*models.UserIdentity, bool) {
	token, ok := s.Token()
	if !ok {
		return nil, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, false
	}

	id := &models.UserIdentity{Role: models.RoleGuest}
	if sub, err := claims.GetSubject(); err == nil {
		id.UserID = sub
	}
	if email, ok := claims["email"].(string); ok {
		id.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		switch models.Role(role) {
		case models.RoleHost, models.RoleAdmin, models.RoleGuest:
			id.Role = models.Role(role)
		}
	}
	return id, true
}
