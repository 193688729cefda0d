// Package apierror maps transport outcomes onto the typed errors the
// client propagates to callers. Classification is pure: it never fails
// and has no side effects.
package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies the class of a backend failure.
type Kind int

const (
	// Generic covers every status the client has no special handling for,
	// as well as transport-level failures without a status at all.
	Generic Kind = iota
	// NotAuthenticated marks a 401 response.
	NotAuthenticated
	// NotFound marks a 404 response.
	NotFound
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case NotAuthenticated:
		return "not_authenticated"
	case NotFound:
		return "not_found"
	default:
		return "generic"
	}
}

// Error is the typed error produced for every failed backend call.
type Error struct {
	// Kind is the failure class.
	Kind Kind
	// Message is the backend-supplied detail, or a fallback.
	Message string
	// StatusCode is the HTTP status of the response, or nil when no
	// response was received.
	StatusCode *int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode != nil {
		return fmt.Sprintf("%s (status %d)", e.Message, *e.StatusCode)
	}
	return e.Message
}

// FromResponse classifies a response that carried an error status.
// The message is taken from the backend's "detail" field when present,
// falling back to the standard status text.
func FromResponse(status int, body []byte) *Error {
	message := http.StatusText(status)
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		message = payload.Detail
	}

	e := &Error{Message: message, StatusCode: &status}
	switch status {
	case http.StatusUnauthorized:
		e.Kind = NotAuthenticated
	case http.StatusNotFound:
		e.Kind = NotFound
	default:
		e.Kind = Generic
	}
	return e
}

// ConnectionError classifies a call that was sent but received no
// response. The status code is absent.
func ConnectionError() *Error {
	return &Error{Kind: Generic, Message: "connection error"}
}

// RequestError classifies a call that could not even be constructed
// or sent. The status code is absent.
func RequestError(err error) *Error {
	return &Error{Kind: Generic, Message: fmt.Sprintf("request error: %v", err)}
}

// IsNotAuthenticated reports whether err is a typed error of kind
// NotAuthenticated.
func IsNotAuthenticated(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == NotAuthenticated
}

// IsNotFound reports whether err is a typed error of kind NotFound.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == NotFound
}
