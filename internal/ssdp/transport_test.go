package ssdp

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSearchRequest(t *testing.T) {
	request := string(searchRequest("239.255.255.250"))

	wantLines := []string{
		"M-SEARCH * HTTP/1.1",
		"HOST: 239.255.255.250:1900",
		`MAN: "ssdp:discover"`,
		"ST: " + SearchTarget,
	}
	for _, line := range wantLines {
		if !strings.Contains(request, line+"\r\n") {
			t.Errorf("search request missing line %q:\n%s", line, request)
		}
	}
	if !strings.HasSuffix(request, "\r\n\r\n") {
		t.Error("search request must end with a blank line")
	}
}

func TestConfig_withDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()

	if cfg.MulticastAddress != DefaultMulticastAddress {
		t.Errorf("MulticastAddress = %q, want %q", cfg.MulticastAddress, DefaultMulticastAddress)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}

	cfg = Config{MulticastAddress: "239.0.0.1", Timeout: time.Second}.withDefaults()
	if cfg.MulticastAddress != "239.0.0.1" {
		t.Errorf("explicit MulticastAddress overridden: %q", cfg.MulticastAddress)
	}
	if cfg.Timeout != time.Second {
		t.Errorf("explicit Timeout overridden: %v", cfg.Timeout)
	}
}

func TestNewTransport(t *testing.T) {
	if _, ok := NewTransport(Config{}).(*MulticastTransport); !ok {
		t.Error("NewTransport without proxy URL should return a MulticastTransport")
	}
	if _, ok := NewTransport(Config{ProxyURL: "http://proxy.local/ssdp"}).(*ProxyTransport); !ok {
		t.Error("NewTransport with proxy URL should return a ProxyTransport")
	}
}

// udpResponder listens on loopback and answers the first M-SEARCH query with
// the given replies, each sent as a separate datagram.
func udpResponder(t *testing.T, replies []string) int {
	t.Helper()

	conn, err := net.ListenPacket("udp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to bind responder socket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	go func() {
		buffer := make([]byte, maxDatagramSize)
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		n, addr, err := conn.ReadFrom(buffer)
		if err != nil {
			return
		}
		query := string(buffer[:n])
		if !strings.HasPrefix(query, "M-SEARCH") || !strings.Contains(query, SearchTarget) {
			return
		}
		for _, reply := range replies {
			_, _ = conn.WriteTo([]byte(reply), addr)
		}
	}()

	return conn.LocalAddr().(*net.UDPAddr).Port
}

func TestMulticastTransport_Request(t *testing.T) {
	replyA := "HTTP/1.1 200 OK\r\n" +
		"ST: urn:schemas-upnp-org:device:ZonePlayer:1\r\n" +
		"USN: uuid:RINCON_A::urn:schemas-upnp-org:device:ZonePlayer:1\r\n" +
		"LOCATION: http://192.168.1.51:1400/xml/device_description.xml\r\n\r\n"
	replyB := "HTTP/1.1 200 OK\r\n" +
		"ST: urn:schemas-upnp-org:device:ZonePlayer:1\r\n" +
		"USN: uuid:RINCON_B::urn:schemas-upnp-org:device:ZonePlayer:1\r\n" +
		"LOCATION: http://192.168.1.52:1400/xml/device_description.xml\r\n\r\n"

	port := udpResponder(t, []string{replyA, replyB})

	transport := NewMulticastTransport(Config{
		MulticastAddress: "127.0.0.1",
		Timeout:          500 * time.Millisecond,
	})
	transport.port = port

	raw, err := transport.Request(context.Background())
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}

	devices := Extract(raw)
	if len(devices) != 2 {
		t.Fatalf("Extract() returned %d devices, want 2 (raw: %q)", len(devices), raw)
	}
	if devices[0].Host != "192.168.1.51" || devices[1].Host != "192.168.1.52" {
		t.Errorf("unexpected hosts: %+v", devices)
	}
}

func TestMulticastTransport_NoReplies(t *testing.T) {
	port := udpResponder(t, nil)

	transport := NewMulticastTransport(Config{
		MulticastAddress: "127.0.0.1",
		Timeout:          200 * time.Millisecond,
	})
	transport.port = port

	raw, err := transport.Request(context.Background())
	if err != nil {
		t.Fatalf("Request() error = %v, want nil (empty result is not an error)", err)
	}
	if raw != "" {
		t.Errorf("Request() = %q, want empty text", raw)
	}
}

func TestMulticastTransport_UnknownInterface(t *testing.T) {
	transport := NewMulticastTransport(Config{
		InterfaceName: "definitely-not-a-real-interface0",
		Timeout:       100 * time.Millisecond,
	})

	_, err := transport.Request(context.Background())
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("Request() error = %v, want *NetworkError", err)
	}
	if netErr.Op != "interface" {
		t.Errorf("NetworkError.Op = %q, want %q", netErr.Op, "interface")
	}
}

func TestProxyTransport_Request(t *testing.T) {
	body := "ST: urn:schemas-upnp-org:device:ZonePlayer:1\r\n" +
		"USN: uuid:RINCON_A::urn:schemas-upnp-org:device:ZonePlayer:1\r\n" +
		"LOCATION: http://192.168.1.51:1400/xml/device_description.xml\r\n"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("proxy request method = %s, want GET", r.Method)
		}
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	transport := NewProxyTransport(Config{ProxyURL: server.URL})

	raw, err := transport.Request(context.Background())
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if raw != body {
		t.Errorf("Request() = %q, want response body verbatim", raw)
	}
}

func TestProxyTransport_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not here", http.StatusBadGateway)
	}))
	defer server.Close()

	transport := NewProxyTransport(Config{ProxyURL: server.URL})

	_, err := transport.Request(context.Background())
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("Request() error = %v, want *NetworkError", err)
	}
	if netErr.Reason() != "proxy unreachable" {
		t.Errorf("Reason() = %q, want %q", netErr.Reason(), "proxy unreachable")
	}
	if netErr.URL != server.URL {
		t.Errorf("NetworkError.URL = %q, want %q", netErr.URL, server.URL)
	}
}

func TestProxyTransport_Unreachable(t *testing.T) {
	// Grab a free port and close it again so nothing is listening
	server := httptest.NewServer(http.NotFoundHandler())
	proxyURL := server.URL
	server.Close()

	transport := NewProxyTransport(Config{ProxyURL: proxyURL, Timeout: time.Second})

	_, err := transport.Request(context.Background())
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("Request() error = %v, want *NetworkError", err)
	}
	if netErr.Op != "proxy" {
		t.Errorf("NetworkError.Op = %q, want %q", netErr.Op, "proxy")
	}
}
