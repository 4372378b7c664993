package ssdp

import (
	"errors"
	"fmt"
	"net"
	"syscall"
)

// NetworkError indicates that the discovery transport could not complete.
// It wraps socket bind/send/receive failures from the multicast transport
// and HTTP failures from the proxy transport.
type NetworkError struct {
	// Op is the operation that failed ("bind", "interface", "send",
	// "receive", "proxy")
	Op string

	// URL is the proxy URL in use, set only for proxy failures
	URL string

	// Err is the underlying error
	Err error
}

// Error returns a human-readable description of the failure
func (e *NetworkError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("ssdp: %s: %s: %v", e.Reason(), e.URL, e.Err)
	}
	return fmt.Sprintf("ssdp: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/errors.As chains
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was a network timeout
func (e *NetworkError) Timeout() bool {
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// Reason returns a short classification of the failure, suitable for
// display and log fields
func (e *NetworkError) Reason() string {
	if e.Op == "proxy" {
		return "proxy unreachable"
	}

	var dnsErr *net.DNSError
	switch {
	case errors.As(e.Err, &dnsErr):
		return "dns failure"
	case errors.Is(e.Err, syscall.ECONNREFUSED):
		return "connection refused"
	case errors.Is(e.Err, syscall.EHOSTUNREACH), errors.Is(e.Err, syscall.ENETUNREACH):
		return "host unreachable"
	case e.Timeout():
		return "timeout"
	default:
		return "network failure"
	}
}

// newNetworkError wraps err in a NetworkError for the given operation
func newNetworkError(op string, err error) *NetworkError {
	return &NetworkError{Op: op, Err: err}
}

// newProxyError wraps a proxy transport failure, recording the URL in use
func newProxyError(url string, err error) *NetworkError {
	return &NetworkError{Op: "proxy", URL: url, Err: err}
}
