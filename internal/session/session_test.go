package session

import (
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staynest/internal/models"
)

func newTestStore(t *testing.T) *Store {
	store, err := NewStore(Config{TokenPath: filepath.Join(t.TempDir(), "token")})
	require.NoError(t, err)
	return store
}

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test"))
	require.NoError(t, err)
	return token
}

func TestTokenRoundTrip(t *testing.T) {
	store := newTestStore(t)

	_, ok := store.Token()
	assert.False(t, ok)

	require.NoError(t, store.SetToken("tok-1"))

	token, ok := store.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok-1", token)

	require.NoError(t, store.Clear())
	_, ok = store.Token()
	assert.False(t, ok)

	// Clearing an already empty slot is not an error.
	require.NoError(t, store.Clear())
}

func TestInvalidateClearsAndNotifiesOnce(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SetToken("tok-1"))

	var reasons []string
	store.OnInvalidated(func(reason string) {
		reasons = append(reasons, reason)
	})

	store.Invalidate("unauthorized")

	_, ok := store.Token()
	assert.False(t, ok)
	assert.Equal(t, []string{"unauthorized"}, reasons)
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	store := newTestStore(t)

	calls := 0
	unsubscribe := store.OnInvalidated(func(string) { calls++ })

	store.Invalidate("unauthorized")
	unsubscribe()
	store.Invalidate("logout")

	assert.Equal(t, 1, calls)
}

func TestIdentityFromClaims(t *testing.T) {
	store := newTestStore(t)
	token := mintToken(t, jwt.MapClaims{
		"sub":   "u-42",
		"email": "host@example.com",
		"role":  "host",
	})
	require.NoError(t, store.SetToken(token))

	id, ok := store.Identity()
	require.True(t, ok)
	assert.Equal(t, "u-42", id.UserID)
	assert.Equal(t, "host@example.com", id.Email)
	assert.Equal(t, models.RoleHost, id.Role)
}

func TestIdentityUnknownRoleFallsBackToGuest(t *testing.T) {
	store := newTestStore(t)
	token := mintToken(t, jwt.MapClaims{"sub": "u-1", "role": "superuser"})
	require.NoError(t, store.SetToken(token))

	id, ok := store.Identity()
	require.True(t, ok)
	assert.Equal(t, models.RoleGuest, id.Role)
}

func TestIdentityWithoutToken(t *testing.T) {
	store := newTestStore(t)
	_, ok := store.Identity()
	assert.False(t, ok)
}

func TestIdentityMalformedToken(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SetToken("not-a-jwt"))

	_, ok := store.Identity()
	assert.False(t, ok)
}
