package api

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staynest/internal/apitest"
	apperrors "staynest/internal/errors"
	"staynest/internal/models"
	"staynest/internal/session"
)

func newTestClient(t *testing.T) (*apitest.Server, *Client, *session.Store) {
	t.Helper()

	fake := apitest.NewServer()
	ts := httptest.NewServer(fake.Handler())
	t.Cleanup(ts.Close)

	store, err := session.NewStore(session.Config{TokenPath: filepath.Join(t.TempDir(), "token")})
	require.NoError(t, err)

	client := NewClient(Config{BaseURL: ts.URL}, store)
	return fake, client, store
}

func TestLoginStoresToken(t *testing.T) {
	_, client, store := newTestClient(t)

	user, err := client.Auth.Login(context.Background(), "gil@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "u-guest", user.ID)

	token, ok := store.Token()
	assert.True(t, ok)
	assert.NotEmpty(t, token)

	// The stored token carries identity the client can decode locally.
	id, ok := store.Identity()
	require.True(t, ok)
	assert.Equal(t, "u-guest", id.UserID)
	assert.Equal(t, models.RoleGuest, id.Role)
}

func TestLoginRejectionSurfacesServerMessage(t *testing.T) {
	_, client, _ := newTestClient(t)

	_, err := client.Auth.Login(context.Background(), "gil@example.com", "wrong")
	require.Error(t, err)

	var apiErr *apperrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid email or password", apiErr.Message)
	assert.Equal(t, "invalid email or password", apperrors.UserMessage(err))
}

func TestBearerTokenAttached(t *testing.T) {
	fake, client, store := newTestClient(t)
	require.NoError(t, store.SetToken(fake.IssueToken("u-guest")))

	user, err := client.Auth.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "gil@example.com", user.Email)
}

func TestUnauthorizedInvalidatesSessionFromAnyCall(t *testing.T) {
	fake, client, store := newTestClient(t)
	require.NoError(t, store.SetToken(fake.IssueToken("u-guest")))

	var events []string
	store.OnInvalidated(func(reason string) { events = append(events, reason) })

	fake.ForceUnauthorized = true

	// Two unrelated endpoints: the eviction is cross-cutting, not scoped
	// to a particular call.
	_, err := client.Listings.Get(context.Background(), "l-1")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, ok := store.Token()
	assert.False(t, ok)
	assert.Equal(t, []string{"unauthorized"}, events)

	_, err = client.Wishlist.Contains(context.Background(), "l-1")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Len(t, events, 2)
}

func TestTransportFailure(t *testing.T) {
	store, err := session.NewStore(session.Config{TokenPath: filepath.Join(t.TempDir(), "token")})
	require.NoError(t, err)

	// Nothing listens here.
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1"}, store)

	_, err = client.Listings.Search(context.Background(), models.SearchFilters{})
	assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	assert.Equal(t, apperrors.ErrUnavailable.Error(), apperrors.UserMessage(err))
}

func TestSearchFiltersBuildQuery(t *testing.T) {
	fake, client, store := newTestClient(t)
	require.NoError(t, store.SetToken(fake.IssueToken("u-guest")))

	listings, err := client.Listings.Search(context.Background(), models.SearchFilters{City: "Leiden"})
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "l-1", listings[0].ID)

	listings, err = client.Listings.Search(context.Background(), models.SearchFilters{City: "Utrecht"})
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestWishlistRoundTrip(t *testing.T) {
	fake, client, store := newTestClient(t)
	require.NoError(t, store.SetToken(fake.IssueToken("u-guest")))
	ctx := context.Background()

	saved, err := client.Wishlist.Contains(ctx, "l-1")
	require.NoError(t, err)
	assert.False(t, saved)

	require.NoError(t, client.Wishlist.Add(ctx, "l-1"))

	saved, err = client.Wishlist.Contains(ctx, "l-1")
	require.NoError(t, err)
	assert.True(t, saved)

	listings, err := client.Wishlist.Get(ctx)
	require.NoError(t, err)
	require.Len(t, listings, 1)

	require.NoError(t, client.Wishlist.Remove(ctx, "l-1"))

	saved, err = client.Wishlist.Contains(ctx, "l-1")
	require.NoError(t, err)
	assert.False(t, saved)
}

func TestLogoutClearsTokenEvenWhenCallFails(t *testing.T) {
	fake, client, store := newTestClient(t)
	require.NoError(t, store.SetToken(fake.IssueToken("u-guest")))

	fake.ForceUnauthorized = true
	_ = client.Auth.Logout(context.Background())

	_, ok := store.Token()
	assert.False(t, ok)
}
