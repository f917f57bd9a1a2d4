package engine

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"
	"testing"
)

func TestEngineError_Error(t *testing.T) {
	err := NewHTTPError(502, "bad gateway from engine")
	if err.Error() != "HTTP Error: bad gateway from engine" {
		t.Errorf("Error() = %q", err.Error())
	}

	wrapped := NewParseError("bad body", errors.New("unexpected EOF"))
	if wrapped.Error() != "Parse Error: bad body (caused by: unexpected EOF)" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
}

func TestEngineError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewParseError("bad body", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestNewNetworkError_ClassifiesDNS(t *testing.T) {
	dnsErr := &net.DNSError{Name: "engine.invalid", Err: "no such host"}
	err := NewNetworkError("status request failed", dnsErr)

	if err.Type != ErrTypeDNS {
		t.Errorf("Type = %v, want ErrTypeDNS", err.Type)
	}
	if !IsNetworkError(err) {
		t.Error("DNS errors should count as network errors")
	}
}

func TestNewNetworkError_ClassifiesConnectionRefused(t *testing.T) {
	opErr := &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}
	err := NewNetworkError("start request failed", opErr)

	if err.Type != ErrTypeConnectionRefused {
		t.Errorf("Type = %v, want ErrTypeConnectionRefused", err.Type)
	}
}

func TestNewNetworkError_UnwrapsURLError(t *testing.T) {
	inner := &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}
	urlErr := &url.Error{Op: "Get", URL: "http://localhost:8000/api/v1/outbound/status", Err: inner}
	err := NewNetworkError("status request failed", urlErr)

	if err.Type != ErrTypeConnectionRefused {
		t.Errorf("Type = %v, want ErrTypeConnectionRefused through url.Error", err.Type)
	}
}

func TestErrorPredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
		want bool
	}{
		{"http error matches", NewHTTPError(500, "boom"), IsHTTPError, true},
		{"http error is not parse", NewHTTPError(500, "boom"), IsParseError, false},
		{"parse error matches", NewParseError("bad", nil), IsParseError, true},
		{"validation error matches", NewValidationError("empty batch"), IsValidationError, true},
		{"plain error matches nothing", errors.New("plain"), IsNetworkError, false},
		{"wrapped engine error still matches", fmt.Errorf("context: %w", NewHTTPError(503, "down")), IsHTTPError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pred(tt.err); got != tt.want {
				t.Errorf("predicate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetShortErrorMessage(t *testing.T) {
	if msg := GetShortErrorMessage(NewHTTPError(502, "boom")); msg != "Engine error (HTTP 502)" {
		t.Errorf("GetShortErrorMessage() = %q", msg)
	}

	if msg := GetShortErrorMessage(errors.New("plain failure")); msg != "plain failure" {
		t.Errorf("GetShortErrorMessage() = %q", msg)
	}
}
