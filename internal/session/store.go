package session

import (
	"fmt"
	"sync"

	"github.com/atinyakov/RealtyClient/internal/models"
	"github.com/atinyakov/RealtyClient/internal/token"
)

// Storage keys for the persisted credential pair.
const (
	accessTokenKey  = "accessToken"
	refreshTokenKey = "refreshToken"
)

// Store holds the current access/refresh token pair and the session
// state derived from it. Exactly one Store exists per process; it is
// injected into every component that needs credentials.
type Store struct {
	mu       sync.RWMutex
	storage  Storage
	loggedIn bool
	identity *models.Identity
}

// NewStore builds a Store on top of the given persisted storage.
// When an access token is already persisted the session starts
// logged-in, with the identity derived from the token payload. A token
// that fails to decode still counts as logged-in; only the identity is
// absent.
func NewStore(storage Storage) *Store {
	s := &Store{storage: storage}
	if access := storage.Get(accessTokenKey); access != "" {
		s.loggedIn = true
		s.identity = token.IdentityOrNil(access)
	}
	return s
}

// Login persists both tokens of the pair, replacing any previous pair
// wholesale, and recomputes the session state. It serves both the
// initial login and every refresh.
func (s *Store) Login(pair models.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Set(accessTokenKey, pair.AccessToken); err != nil {
		return fmt.Errorf("persist access token: %w", err)
	}
	if err := s.storage.Set(refreshTokenKey, pair.RefreshToken); err != nil {
		return fmt.Errorf("persist refresh token: %w", err)
	}

	// Logged-in state tracks the presence of a persisted access token.
	s.loggedIn = pair.AccessToken != ""
	s.identity = nil
	if s.loggedIn {
		s.identity = token.IdentityOrNil(pair.AccessToken)
	}
	return nil
}

// Logout clears both persisted tokens and the derived state. It is
// safe to call when already logged out; storage is cleared regardless.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loggedIn = false
	s.identity = nil

	if err := s.storage.Remove(accessTokenKey); err != nil {
		return fmt.Errorf("clear access token: %w", err)
	}
	if err := s.storage.Remove(refreshTokenKey); err != nil {
		return fmt.Errorf("clear refresh token: %w", err)
	}
	return nil
}

// AccessToken returns the currently persisted access token, or "".
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.storage.Get(accessTokenKey)
}

// RefreshToken returns the currently persisted refresh token, or "".
func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.storage.Get(refreshTokenKey)
}

// IsLoggedIn reports whether a session is active. Navigation guards
// gate protected views on this predicate.
func (s *Store) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn
}

// Identity returns the display identity decoded from the access token,
// or nil when logged out or when the token payload did not decode.
func (s *Store) Identity() *models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil
	}
	identity := *s.identity
	return &identity
}
