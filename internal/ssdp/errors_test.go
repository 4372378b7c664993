package ssdp

import (
	"errors"
	"strings"
	"syscall"
	"testing"
)

func TestNetworkError_Error(t *testing.T) {
	err := newNetworkError("bind", errors.New("address in use"))
	if !strings.Contains(err.Error(), "bind") {
		t.Errorf("Error() = %q, should mention the failed op", err.Error())
	}

	proxyErr := newProxyError("http://proxy.local/ssdp", errors.New("no route to host"))
	if !strings.Contains(proxyErr.Error(), "http://proxy.local/ssdp") {
		t.Errorf("Error() = %q, should mention the proxy URL", proxyErr.Error())
	}
}

func TestNetworkError_Unwrap(t *testing.T) {
	underlying := syscall.ECONNREFUSED
	err := newNetworkError("send", underlying)

	if !errors.Is(err, syscall.ECONNREFUSED) {
		t.Error("errors.Is should reach the underlying error through Unwrap")
	}
}

func TestNetworkError_Reason(t *testing.T) {
	tests := []struct {
		name string
		err  *NetworkError
		want string
	}{
		{"proxy failure", newProxyError("http://x", errors.New("boom")), "proxy unreachable"},
		{"connection refused", newNetworkError("send", syscall.ECONNREFUSED), "connection refused"},
		{"host unreachable", newNetworkError("send", syscall.EHOSTUNREACH), "host unreachable"},
		{"generic failure", newNetworkError("receive", errors.New("boom")), "network failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Reason(); got != tt.want {
				t.Errorf("Reason() = %q, want %q", got, tt.want)
			}
		})
	}
}
