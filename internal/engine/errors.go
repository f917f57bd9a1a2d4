package engine

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error (connection reset, unreachable host, etc.)
	ErrTypeNetwork ErrorType = iota
	// ErrTypeTimeout indicates a request timeout
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates the engine refused the connection
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a DNS resolution failure
	ErrTypeDNS
	// ErrTypeHTTP indicates an HTTP-level error (non-2xx status code)
	ErrTypeHTTP
	// ErrTypeParse indicates a parsing error (malformed JSON, invalid response)
	ErrTypeParse
	// ErrTypeValidation indicates a rejected request (e.g. empty batch)
	ErrTypeValidation
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeValidation:
		return "Validation Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// EngineError represents an error that occurred while talking to the engine
type EngineError struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable error message
	StatusCode int       // HTTP status code (if applicable)
	Err        error     // Underlying error (if any)
}

// Error implements the error interface
func (e *EngineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *EngineError) Unwrap() error {
	return e.Err
}

// classifyNetworkError analyzes a transport error and assigns a specific type.
func classifyNetworkError(err error) *EngineError {
	if err == nil {
		return nil
	}

	if os.IsTimeout(err) {
		return &EngineError{
			Type:    ErrTypeTimeout,
			Message: "request timed out",
			Err:     err,
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &EngineError{
			Type:    ErrTypeDNS,
			Message: fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Err:     err,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return &EngineError{
			Type:    ErrTypeConnectionRefused,
			Message: "engine refused connection",
			Err:     err,
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		// Classify the transport error inside the url wrapper.
		classified := classifyNetworkError(urlErr.Err)
		if classified != nil {
			classified.Err = err
			return classified
		}
	}

	return &EngineError{
		Type:    ErrTypeNetwork,
		Message: "network error occurred",
		Err:     err,
	}
}

// NewNetworkError creates a network-level error with automatic classification
func NewNetworkError(message string, err error) *EngineError {
	classified := classifyNetworkError(err)
	if classified != nil {
		classified.Message = message
		return classified
	}
	return &EngineError{
		Type:    ErrTypeNetwork,
		Message: message,
		Err:     err,
	}
}

// NewHTTPError creates an HTTP-level error
func NewHTTPError(statusCode int, message string) *EngineError {
	return &EngineError{
		Type:       ErrTypeHTTP,
		Message:    message,
		StatusCode: statusCode,
	}
}

// NewParseError creates a parsing error
func NewParseError(message string, err error) *EngineError {
	return &EngineError{
		Type:    ErrTypeParse,
		Message: message,
		Err:     err,
	}
}

// NewValidationError creates a validation error
func NewValidationError(message string) *EngineError {
	return &EngineError{
		Type:    ErrTypeValidation,
		Message: message,
	}
}

// IsNetworkError checks if an error is a transport-level failure
// (including timeout, connection refused, and DNS errors)
func IsNetworkError(err error) bool {
	var engErr *EngineError
	if errors.As(err, &engErr) {
		return engErr.Type == ErrTypeNetwork ||
			engErr.Type == ErrTypeTimeout ||
			engErr.Type == ErrTypeConnectionRefused ||
			engErr.Type == ErrTypeDNS
	}
	return false
}

// IsHTTPError checks if an error is an HTTP status error
func IsHTTPError(err error) bool {
	var engErr *EngineError
	if errors.As(err, &engErr) {
		return engErr.Type == ErrTypeHTTP
	}
	return false
}

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool {
	var engErr *EngineError
	if errors.As(err, &engErr) {
		return engErr.Type == ErrTypeParse
	}
	return false
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var engErr *EngineError
	if errors.As(err, &engErr) {
		return engErr.Type == ErrTypeValidation
	}
	return false
}

// GetShortErrorMessage returns a concise, user-friendly error message
func GetShortErrorMessage(err error) string {
	var engErr *EngineError
	if !errors.As(err, &engErr) {
		return err.Error()
	}

	switch engErr.Type {
	case ErrTypeTimeout:
		return "Engine not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Engine refused connection - is it running?"
	case ErrTypeDNS:
		return "Cannot resolve engine hostname"
	case ErrTypeNetwork:
		return "Network error - check connection"
	case ErrTypeHTTP:
		return fmt.Sprintf("Engine error (HTTP %d)", engErr.StatusCode)
	case ErrTypeParse:
		return "Failed to parse engine response"
	default:
		return engErr.Message
	}
}
