package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Request describes one domain call to the backend. Paths are relative
// to the pipeline's base URL. A Request value is never mutated after
// submission; the replay of a failed call is a copy with the retried
// flag set, so concurrent in-flight calls cannot alias each other's
// state.
type Request struct {
	// Method is the HTTP method of the call.
	Method string
	// Path is the endpoint path, relative to the base URL.
	Path string
	// Query holds optional query parameters.
	Query url.Values
	// Body is the request payload: nil, url.Values (sent as an
	// urlencoded form), []byte (sent as-is), or any JSON-marshalable
	// value.
	Body any
	// retried marks the one-time replay of an originating request.
	retried bool
}

// Response is the successful outcome of a domain call.
type Response struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Header holds the response headers (e.g. X-Total-Count).
	Header http.Header
	// Body is the full response body.
	Body []byte
}

// encodeBody renders the request payload and reports its content type.
func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case url.Values:
		return strings.NewReader(b.Encode()), "application/x-www-form-urlencoded", nil
	case []byte:
		return bytes.NewReader(b), "application/json", nil
	default:
		buf, err := json.Marshal(b)
		if err != nil {
			return nil, "", fmt.Errorf("encode request body: %w", err)
		}
		return bytes.NewReader(buf), "application/json", nil
	}
}

// build assembles the outgoing *http.Request, attaching the bearer
// credential when an access token is present. A fresh header map is
// built per attempt, so a replay picks up the refreshed token and a
// logged-out session sends no stale credential.
func (p *Pipeline) build(ctx context.Context, req Request, requestID string) (*http.Request, error) {
	target := p.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("X-Request-ID", requestID)

	if access := p.store.AccessToken(); access != "" {
		httpReq.Header.Set("Authorization", "Bearer "+access)
	}
	return httpReq, nil
}
