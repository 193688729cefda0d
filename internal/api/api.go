// Package api exposes the realty backend's REST surface as typed
// service methods. Every call goes through the request pipeline, which
// owns credential attachment, error classification, and refresh.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/atinyakov/RealtyClient/internal/models"
	"github.com/atinyakov/RealtyClient/internal/session"
	"github.com/atinyakov/RealtyClient/internal/transport"
)

// Pipeline is the request envelope the service submits calls through.
type Pipeline interface {
	// Do performs one originating request, refreshing credentials and
	// replaying at most once on an authentication failure.
	Do(ctx context.Context, req transport.Request) (*transport.Response, error)
}

// Service provides the domain operations of the realty backend.
type Service struct {
	pipeline Pipeline
	store    *session.Store
}

// NewService constructs a Service over the given pipeline and
// credential store.
func NewService(pipeline Pipeline, store *session.Store) *Service {
	return &Service{pipeline: pipeline, store: store}
}

// totalCount reads the out-of-band list total from the response
// headers; a missing or malformed header counts as zero.
func totalCount(resp *transport.Response) int {
	total, _ := strconv.Atoi(resp.Header.Get("X-Total-Count"))
	return total
}

// ListRealty returns one page of listings matching the filter, along
// with the total number of matches reported by the backend.
func (s *Service) ListRealty(ctx context.Context, filter models.RealtyFilter) ([]models.RealtyShort, int, error) {
	resp, err := s.pipeline.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/realtys/",
		Query:  filter.Values(),
	})
	if err != nil {
		return nil, 0, err
	}

	var items []models.RealtyShort
	if err := json.Unmarshal(resp.Body, &items); err != nil {
		return nil, 0, fmt.Errorf("parse realty list: %w", err)
	}
	return items, totalCount(resp), nil
}

// GetRealty returns the full detail of one listing.
func (s *Service) GetRealty(ctx context.Context, id int) (*models.RealtyFull, error) {
	resp, err := s.pipeline.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/realtys/%d/", id),
	})
	if err != nil {
		return nil, err
	}

	var realty models.RealtyFull
	if err := json.Unmarshal(resp.Body, &realty); err != nil {
		return nil, fmt.Errorf("parse realty: %w", err)
	}
	return &realty, nil
}

// CreateRealty publishes a new listing and returns it.
func (s *Service) CreateRealty(ctx context.Context, in models.RealtyCreate) (*models.RealtyFull, error) {
	resp, err := s.pipeline.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/realtys/",
		Body:   in,
	})
	if err != nil {
		return nil, err
	}

	var realty models.RealtyFull
	if err := json.Unmarshal(resp.Body, &realty); err != nil {
		return nil, fmt.Errorf("parse created realty: %w", err)
	}
	return &realty, nil
}

// UpdateRealty applies a partial edit to an owned listing.
func (s *Service) UpdateRealty(ctx context.Context, id int, in models.RealtyUpdate) (*models.RealtyFull, error) {
	resp, err := s.pipeline.Do(ctx, transport.Request{
		Method: http.MethodPatch,
		Path:   fmt.Sprintf("/realtys/%d/", id),
		Body:   in,
	})
	if err != nil {
		return nil, err
	}

	var realty models.RealtyFull
	if err := json.Unmarshal(resp.Body, &realty); err != nil {
		return nil, fmt.Errorf("parse updated realty: %w", err)
	}
	return &realty, nil
}

// DeleteRealty removes an owned listing.
func (s *Service) DeleteRealty(ctx context.Context, id int) error {
	_, err := s.pipeline.Do(ctx, transport.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/realtys/%d/", id),
	})
	return err
}

// Favorites returns the current user's favorited listings and their
// total count.
func (s *Service) Favorites(ctx context.Context) ([]models.RealtyShort, int, error) {
	resp, err := s.pipeline.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/realtys/favorites",
	})
	if err != nil {
		return nil, 0, err
	}

	var items []models.RealtyShort
	if err := json.Unmarshal(resp.Body, &items); err != nil {
		return nil, 0, fmt.Errorf("parse favorites: %w", err)
	}
	return items, totalCount(resp), nil
}

// AddFavorite marks a listing as favorite.
func (s *Service) AddFavorite(ctx context.Context, id int) error {
	_, err := s.pipeline.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/realtys/favorites/%d/", id),
	})
	return err
}

// RemoveFavorite unmarks a favorited listing.
func (s *Service) RemoveFavorite(ctx context.Context, id int) error {
	_, err := s.pipeline.Do(ctx, transport.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/realtys/favorites/%d/", id),
	})
	return err
}

// TokenByPassword exchanges user credentials for a token pair and
// logs the session in.
func (s *Service) TokenByPassword(ctx context.Context, email, password string) (models.TokenPair, error) {
	form := url.Values{
		"grant_type": {"password"},
		"username":   {email},
		"password":   {password},
	}
	resp, err := s.pipeline.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/auth/jwt/token",
		Body:   form,
	})
	if err != nil {
		return models.TokenPair{}, err
	}
	return s.storePair(resp.Body)
}

// TokenByRegister creates a new account, receives the same token pair
// shape as login, and logs the session in.
func (s *Service) TokenByRegister(ctx context.Context, username, email, phone, password string) (models.TokenPair, error) {
	resp, err := s.pipeline.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/auth/jwt/register",
		Body: map[string]string{
			"username": username,
			"email":    email,
			"phone":    phone,
			"password": password,
		},
	})
	if err != nil {
		return models.TokenPair{}, err
	}
	return s.storePair(resp.Body)
}

// storePair decodes a token-pair response and persists it.
func (s *Service) storePair(body []byte) (models.TokenPair, error) {
	var pair models.TokenPair
	if err := json.Unmarshal(body, &pair); err != nil {
		return models.TokenPair{}, fmt.Errorf("parse token pair: %w", err)
	}
	if err := s.store.Login(pair); err != nil {
		return models.TokenPair{}, err
	}
	return pair, nil
}

// Logout clears the persisted credentials. The backend keeps no
// session state, so this is a purely local operation.
func (s *Service) Logout() error {
	return s.store.Logout()
}

// Profile returns the current user's profile.
func (s *Service) Profile(ctx context.Context) (*models.User, error) {
	resp, err := s.pipeline.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/users/me/",
	})
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(resp.Body, &user); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	return &user, nil
}

// UpdateProfile applies a partial edit to the user's own profile.
func (s *Service) UpdateProfile(ctx context.Context, id int, in models.UserUpdate) error {
	_, err := s.pipeline.Do(ctx, transport.Request{
		Method: http.MethodPatch,
		Path:   fmt.Sprintf("/users/%d/", id),
		Body:   in,
	})
	return err
}

// MyRealty returns the listings owned by the current user.
func (s *Service) MyRealty(ctx context.Context) ([]models.RealtyShort, error) {
	resp, err := s.pipeline.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/users/me/realtys",
	})
	if err != nil {
		return nil, err
	}

	var items []models.RealtyShort
	if err := json.Unmarshal(resp.Body, &items); err != nil {
		return nil, fmt.Errorf("parse my realty list: %w", err)
	}
	return items, nil
}
