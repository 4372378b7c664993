package control

import (
	"errors"
	"fmt"
	"net"
	"syscall"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error (connection refused, timeout, etc.)
	ErrTypeNetwork ErrorType = iota
	// ErrTypeHTTP indicates an HTTP-level error (non-200 status code)
	ErrTypeHTTP
	// ErrTypeParse indicates a parsing error (malformed XML, invalid response)
	ErrTypeParse
	// ErrTypeTimeout indicates a request timeout
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates the player refused the connection
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a DNS resolution failure
	ErrTypeDNS
	// ErrTypeUnknown indicates an unknown or unexpected error
	ErrTypeUnknown
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	default:
		return "Unknown Error"
	}
}

// ClientError is a categorized error from a player control operation
type ClientError struct {
	// Type is the error category
	Type ErrorType

	// Err is the underlying error
	Err error
}

// Error returns a human-readable description of the failure
func (e *ClientError) Error() string {
	return fmt.Sprintf("%s: %v", e.Type, e.Err)
}

// Unwrap returns the underlying error for errors.Is/errors.As chains
func (e *ClientError) Unwrap() error {
	return e.Err
}

// classifyError wraps err in a ClientError with the most specific category
// that matches
func classifyError(err error) *ClientError {
	var dnsErr *net.DNSError
	var netErr net.Error

	switch {
	case errors.As(err, &dnsErr):
		return &ClientError{Type: ErrTypeDNS, Err: err}
	case errors.Is(err, syscall.ECONNREFUSED):
		return &ClientError{Type: ErrTypeConnectionRefused, Err: err}
	case errors.As(err, &netErr) && netErr.Timeout():
		return &ClientError{Type: ErrTypeTimeout, Err: err}
	case errors.As(err, &netErr):
		return &ClientError{Type: ErrTypeNetwork, Err: err}
	default:
		return &ClientError{Type: ErrTypeUnknown, Err: err}
	}
}
