package session

import (
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/RealtyClient/internal/models"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func TestNewStore_StartsLoggedOut(t *testing.T) {
	store := NewStore(NewMemStorage())

	assert.False(t, store.IsLoggedIn())
	assert.Nil(t, store.Identity())
	assert.Empty(t, store.AccessToken())
	assert.Empty(t, store.RefreshToken())
}

func TestNewStore_StartsLoggedInFromPersistedToken(t *testing.T) {
	storage := NewMemStorage()
	access := signToken(t, jwt.MapClaims{"sub": "42", "username": "bob"})
	require.NoError(t, storage.Set("accessToken", access))
	require.NoError(t, storage.Set("refreshToken", "refresh-opaque"))

	store := NewStore(storage)

	assert.True(t, store.IsLoggedIn())
	require.NotNil(t, store.Identity())
	assert.Equal(t, models.Identity{ID: "42", Username: "bob"}, *store.Identity())
}

func TestNewStore_DegradedIdentity(t *testing.T) {
	storage := NewMemStorage()
	require.NoError(t, storage.Set("accessToken", "not-a-jwt"))

	store := NewStore(storage)

	// An undecodable token still counts as logged in; only the
	// identity is absent.
	assert.True(t, store.IsLoggedIn())
	assert.Nil(t, store.Identity())
}

func TestStore_LoginThenLogout(t *testing.T) {
	store := NewStore(NewMemStorage())
	access := signToken(t, jwt.MapClaims{"sub": "42", "username": "bob"})

	require.NoError(t, store.Login(models.TokenPair{AccessToken: access, RefreshToken: "r1"}))

	assert.True(t, store.IsLoggedIn())
	assert.Equal(t, access, store.AccessToken())
	assert.Equal(t, "r1", store.RefreshToken())
	require.NotNil(t, store.Identity())
	assert.Equal(t, "bob", store.Identity().Username)

	require.NoError(t, store.Logout())

	assert.False(t, store.IsLoggedIn())
	assert.Nil(t, store.Identity())
	assert.Empty(t, store.AccessToken())
	assert.Empty(t, store.RefreshToken())

	// Logging out twice is safe.
	require.NoError(t, store.Logout())
}

func TestStore_LoginReplacesPair(t *testing.T) {
	store := NewStore(NewMemStorage())

	first := signToken(t, jwt.MapClaims{"sub": "1", "username": "alice"})
	second := signToken(t, jwt.MapClaims{"sub": "2", "username": "carol"})

	require.NoError(t, store.Login(models.TokenPair{AccessToken: first, RefreshToken: "r1"}))
	require.NoError(t, store.Login(models.TokenPair{AccessToken: second, RefreshToken: "r2"}))

	assert.Equal(t, second, store.AccessToken())
	assert.Equal(t, "r2", store.RefreshToken())
	require.NotNil(t, store.Identity())
	assert.Equal(t, "carol", store.Identity().Username)
}

func TestStore_FileBackedRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	storage, err := NewFileStorage(path)
	require.NoError(t, err)

	store := NewStore(storage)
	access := signToken(t, jwt.MapClaims{"sub": "9", "username": "dave"})
	require.NoError(t, store.Login(models.TokenPair{AccessToken: access, RefreshToken: "r9"}))

	// A fresh store over the same file restores the session.
	reopened, err := NewFileStorage(path)
	require.NoError(t, err)
	restored := NewStore(reopened)

	assert.True(t, restored.IsLoggedIn())
	require.NotNil(t, restored.Identity())
	assert.Equal(t, "dave", restored.Identity().Username)
	assert.Equal(t, "r9", restored.RefreshToken())
}
