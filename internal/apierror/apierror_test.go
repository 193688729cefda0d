package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFromResponse_KindByStatus(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{http.StatusUnauthorized, NotAuthenticated},
		{http.StatusNotFound, NotFound},
		{http.StatusBadRequest, Generic},
		{http.StatusForbidden, Generic},
		{http.StatusConflict, Generic},
		{http.StatusInternalServerError, Generic},
		{http.StatusBadGateway, Generic},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.status), func(t *testing.T) {
			e := FromResponse(tt.status, nil)
			if e.Kind != tt.want {
				t.Errorf("FromResponse(%d).Kind = %v; want %v", tt.status, e.Kind, tt.want)
			}
			if e.StatusCode == nil || *e.StatusCode != tt.status {
				t.Errorf("FromResponse(%d).StatusCode = %v; want %d", tt.status, e.StatusCode, tt.status)
			}
		})
	}
}

func TestFromResponse_DetailMessage(t *testing.T) {
	e := FromResponse(http.StatusUnauthorized, []byte(`{"detail":"Token has expired"}`))
	if e.Message != "Token has expired" {
		t.Errorf("Message = %q; want backend detail", e.Message)
	}
}

func TestFromResponse_FallbackMessage(t *testing.T) {
	tests := []struct {
		name string
		body []byte
	}{
		{"empty body", nil},
		{"not json", []byte("<html>oops</html>")},
		{"json without detail", []byte(`{"error":"nope"}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := FromResponse(http.StatusNotFound, tt.body)
			if e.Message != http.StatusText(http.StatusNotFound) {
				t.Errorf("Message = %q; want status text fallback", e.Message)
			}
		})
	}
}

func TestConnectionError(t *testing.T) {
	e := ConnectionError()
	if e.Kind != Generic {
		t.Errorf("Kind = %v; want Generic", e.Kind)
	}
	if e.StatusCode != nil {
		t.Errorf("StatusCode = %v; want nil", *e.StatusCode)
	}
	if e.Message != "connection error" {
		t.Errorf("Message = %q", e.Message)
	}
}

func TestRequestError(t *testing.T) {
	e := RequestError(errors.New("bad url"))
	if e.Kind != Generic || e.StatusCode != nil {
		t.Errorf("unexpected error: %+v", e)
	}
	if e.Message != "request error: bad url" {
		t.Errorf("Message = %q", e.Message)
	}
}

func TestErrorString(t *testing.T) {
	withStatus := FromResponse(http.StatusUnauthorized, []byte(`{"detail":"no token"}`))
	if got := withStatus.Error(); got != "no token (status 401)" {
		t.Errorf("Error() = %q", got)
	}
	if got := ConnectionError().Error(); got != "connection error" {
		t.Errorf("Error() = %q", got)
	}
}

func TestKindHelpers(t *testing.T) {
	notAuth := FromResponse(http.StatusUnauthorized, nil)
	notFound := FromResponse(http.StatusNotFound, nil)

	if !IsNotAuthenticated(notAuth) {
		t.Error("IsNotAuthenticated returned false for a 401 error")
	}
	if IsNotAuthenticated(notFound) {
		t.Error("IsNotAuthenticated returned true for a 404 error")
	}
	if !IsNotFound(notFound) {
		t.Error("IsNotFound returned false for a 404 error")
	}
	if IsNotFound(errors.New("plain")) {
		t.Error("IsNotFound returned true for a plain error")
	}

	// Helpers must see through wrapping.
	wrapped := fmt.Errorf("list realty: %w", notAuth)
	if !IsNotAuthenticated(wrapped) {
		t.Error("IsNotAuthenticated failed to unwrap")
	}
}
