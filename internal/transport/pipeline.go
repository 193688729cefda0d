// Package transport wraps every outgoing backend call in a
// before/after envelope: it attaches the bearer credential, classifies
// failures into typed errors, and transparently refreshes an expired
// credential at most once per originating request before replaying it.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atinyakov/RealtyClient/internal/apierror"
	"github.com/atinyakov/RealtyClient/internal/models"
	"github.com/atinyakov/RealtyClient/internal/session"
)

// refreshPath is the dedicated token refresh endpoint. Refresh calls
// go straight to the underlying transport so a 401 from the refresh
// endpoint can never trigger another refresh.
const refreshPath = "/auth/jwt/refresh"

// Doer abstracts the underlying HTTP transport. *http.Client
// satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Pipeline drives authenticated calls against the backend. One
// Pipeline is shared by all API services; any number of calls may be
// in flight concurrently.
type Pipeline struct {
	baseURL string
	client  Doer
	store   *session.Store
	log     *zap.Logger
}

// NewPipeline constructs a Pipeline over the given credential store.
// client defaults to http.DefaultClient and log to a nop logger when
// nil.
func NewPipeline(baseURL string, client Doer, store *session.Store, log *zap.Logger) *Pipeline {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{baseURL: baseURL, client: client, store: store, log: log}
}

// Do submits one originating request through the envelope. On a 401
// while logged in it refreshes the credential pair and replays the
// request exactly once; every other failure propagates as a typed
// error. The response of the replay, when one happens, is the final
// outcome.
func (p *Pipeline) Do(ctx context.Context, req Request) (*Response, error) {
	return p.do(ctx, req, uuid.NewString())
}

func (p *Pipeline) do(ctx context.Context, req Request, requestID string) (*Response, error) {
	resp, apiErr := p.send(ctx, req, requestID)
	if apiErr == nil {
		return resp, nil
	}

	if apiErr.Kind == apierror.NotAuthenticated && p.store.IsLoggedIn() && !req.retried {
		p.log.Info("access token rejected, refreshing",
			zap.String("request_id", requestID),
			zap.String("method", req.Method),
			zap.String("path", req.Path))

		if err := p.refresh(ctx); err != nil {
			p.log.Warn("token refresh failed",
				zap.String("request_id", requestID),
				zap.Error(err))
			// The caller learns why refresh failed, not why the
			// original call did.
			return nil, err
		}

		replay := req
		replay.retried = true
		return p.do(ctx, replay, requestID)
	}

	p.log.Debug("request failed",
		zap.String("request_id", requestID),
		zap.String("method", req.Method),
		zap.String("path", req.Path),
		zap.String("kind", apiErr.Kind.String()),
		zap.Error(apiErr))
	return nil, apiErr
}

// send performs one attempt: build, transmit, classify.
func (p *Pipeline) send(ctx context.Context, req Request, requestID string) (*Response, *apierror.Error) {
	httpReq, err := p.build(ctx, req, requestID)
	if err != nil {
		return nil, apierror.RequestError(err)
	}

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, apierror.ConnectionError()
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, apierror.ConnectionError()
	}

	if httpResp.StatusCode >= http.StatusBadRequest {
		return nil, apierror.FromResponse(httpResp.StatusCode, body)
	}
	return &Response{StatusCode: httpResp.StatusCode, Header: httpResp.Header, Body: body}, nil
}

// refresh exchanges the persisted refresh token for a new pair and
// stores it. A 401 from the refresh endpoint means the refresh token
// itself is no longer valid, so the session is forced logged-out
// before the error propagates; any other failure keeps the session,
// since a transient outage must not destroy still-valid credentials.
//
// Concurrent requests may each run their own refresh; the last
// successful pair wins, which is safe because a newer pair always
// supersedes an older one.
func (p *Pipeline) refresh(ctx context.Context) error {
	refreshToken := p.store.RefreshToken()
	if refreshToken == "" {
		return &apierror.Error{Kind: apierror.NotAuthenticated, Message: "refresh unavailable"}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+refreshPath, nil)
	if err != nil {
		return apierror.RequestError(err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+refreshToken)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return apierror.ConnectionError()
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return apierror.ConnectionError()
	}

	if httpResp.StatusCode >= http.StatusBadRequest {
		apiErr := apierror.FromResponse(httpResp.StatusCode, body)
		if apiErr.Kind == apierror.NotAuthenticated {
			if logoutErr := p.store.Logout(); logoutErr != nil {
				p.log.Warn("logout after failed refresh", zap.Error(logoutErr))
			}
		}
		return apiErr
	}

	var pair models.TokenPair
	if err := json.Unmarshal(body, &pair); err != nil {
		return apierror.RequestError(fmt.Errorf("parse refresh response: %w", err))
	}
	if err := p.store.Login(pair); err != nil {
		return fmt.Errorf("store refreshed tokens: %w", err)
	}

	p.log.Debug("token pair refreshed")
	return nil
}
