package ssdp

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/ipv4"

	"github.com/jmcrae/zonectl/internal/logging"
)

const (
	// SearchTarget is the SSDP search target (ST) for Sonos ZonePlayer devices
	SearchTarget = "urn:schemas-upnp-org:device:ZonePlayer:1"

	// DefaultMulticastAddress is the well-known SSDP multicast group
	DefaultMulticastAddress = "239.255.255.250"

	// Port is the standard SSDP port
	Port = 1900

	// DefaultTimeout is the listen window for collecting reply datagrams
	DefaultTimeout = 3 * time.Second

	// frameDelimiter separates announcement blocks in the aggregate response,
	// matching HTTP-style header framing
	frameDelimiter = "\r\n\r\n"

	// maxDatagramSize bounds a single SSDP reply datagram
	maxDatagramSize = 4096
)

// Config holds the discovery transport configuration.
//
// The zero value is usable: it performs multicast discovery on the default
// interface with the standard multicast group and listen window.
type Config struct {
	// InterfaceName selects the outbound multicast interface, by name
	// (e.g., "eth0") or numeric index. Empty means the OS default.
	InterfaceName string

	// MulticastAddress is the SSDP multicast group
	// (default "239.255.255.250")
	MulticastAddress string

	// ProxyURL, when non-empty, replaces multicast discovery with an HTTP
	// GET whose response body is the raw aggregate SSDP reply text
	ProxyURL string

	// Timeout is the listen window for collecting replies (default 3s)
	Timeout time.Duration
}

// withDefaults fills in zero-valued fields
func (c Config) withDefaults() Config {
	if c.MulticastAddress == "" {
		c.MulticastAddress = DefaultMulticastAddress
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Transport performs one discovery round trip and returns the raw aggregate
// reply text, frames separated by a blank line.
type Transport interface {
	Request(ctx context.Context) (string, error)
}

// NewTransport returns the transport selected by cfg: the HTTP proxy
// transport when a proxy URL is configured, multicast otherwise.
func NewTransport(cfg Config) Transport {
	if cfg.ProxyURL != "" {
		return NewProxyTransport(cfg)
	}
	return NewMulticastTransport(cfg)
}

// MulticastTransport performs SSDP discovery over UDP multicast.
// It is stateless aside from its configuration; a fresh socket is bound for
// every Request call and closed on all exit paths.
type MulticastTransport struct {
	Config Config

	// port overrides the SSDP destination port in tests (0 = standard)
	port int
}

// NewMulticastTransport creates a multicast transport with the given config
func NewMulticastTransport(cfg Config) *MulticastTransport {
	return &MulticastTransport{Config: cfg}
}

// Request sends an M-SEARCH query and collects all reply datagrams received
// within the configured listen window. The replies are concatenated into one
// text buffer, frames separated by a blank line.
func (t *MulticastTransport) Request(ctx context.Context) (string, error) {
	cfg := t.Config.withDefaults()

	logging.LogDiscoveryStart(cfg.MulticastAddress, cfg.InterfaceName)

	conn, err := net.ListenPacket("udp4", ":0")
	if err != nil {
		logging.LogTransportError("bind", err)
		return "", newNetworkError("bind", err)
	}
	defer conn.Close()

	if cfg.InterfaceName != "" {
		if err := selectMulticastInterface(conn, cfg.InterfaceName); err != nil {
			logging.LogTransportError("interface", err)
			return "", newNetworkError("interface", err)
		}
	}

	port := t.port
	if port == 0 {
		port = Port
	}
	dst, err := net.ResolveUDPAddr("udp4", net.JoinHostPort(cfg.MulticastAddress, strconv.Itoa(port)))
	if err != nil {
		logging.LogTransportError("resolve", err)
		return "", newNetworkError("send", err)
	}

	if _, err := conn.WriteTo(searchRequest(cfg.MulticastAddress), dst); err != nil {
		logging.LogTransportError("send", err)
		return "", newNetworkError("send", err)
	}

	// Bound the listen window by the configured timeout, or the context
	// deadline if that comes first
	deadline := time.Now().Add(cfg.Timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	var frames []string
	buffer := make([]byte, maxDatagramSize)
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		if err := conn.SetReadDeadline(deadline); err != nil {
			logging.LogTransportError("receive", err)
			return "", newNetworkError("receive", err)
		}

		n, addr, err := conn.ReadFrom(buffer)
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				// Listen window elapsed - normal end of collection
				break
			}
			logging.LogTransportError("receive", err)
			return "", newNetworkError("receive", err)
		}

		reply := strings.TrimRight(string(buffer[:n]), "\r\n")
		logging.Debug("SSDP reply received",
			zap.String("from", addr.String()),
			zap.Int("length", n),
		)
		frames = append(frames, reply)
	}

	return strings.Join(frames, frameDelimiter), nil
}

// searchRequest renders the M-SEARCH discovery query for the multicast group
func searchRequest(multicastAddr string) []byte {
	return []byte("M-SEARCH * HTTP/1.1\r\n" +
		"HOST: " + multicastAddr + ":1900\r\n" +
		"MAN: \"ssdp:discover\"\r\n" +
		"MX: 1\r\n" +
		"ST: " + SearchTarget + "\r\n\r\n")
}

// selectMulticastInterface sets the outbound multicast interface on the
// socket (IP_MULTICAST_IF). The identifier may be an interface name or a
// numeric interface index.
func selectMulticastInterface(conn net.PacketConn, identifier string) error {
	var (
		ifi *net.Interface
		err error
	)
	if index, convErr := strconv.Atoi(identifier); convErr == nil {
		ifi, err = net.InterfaceByIndex(index)
	} else {
		ifi, err = net.InterfaceByName(identifier)
	}
	if err != nil {
		return fmt.Errorf("unknown interface %q: %w", identifier, err)
	}

	return ipv4.NewPacketConn(conn).SetMulticastInterface(ifi)
}

// ProxyTransport fetches a pre-aggregated SSDP reply body over HTTP instead
// of performing multicast discovery. Used on networks where multicast is
// filtered.
type ProxyTransport struct {
	Config Config

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client
}

// NewProxyTransport creates a proxy transport with the given config
func NewProxyTransport(cfg Config) *ProxyTransport {
	return &ProxyTransport{
		Config:     cfg,
		HTTPClient: &http.Client{Timeout: cfg.withDefaults().Timeout},
	}
}

// Request performs an HTTP GET to the configured proxy URL and returns the
// response body as the raw aggregate reply text.
func (t *ProxyTransport) Request(ctx context.Context) (string, error) {
	proxyURL := t.Config.ProxyURL

	logging.LogProxyDiscovery(proxyURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, proxyURL, nil)
	if err != nil {
		return "", newProxyError(proxyURL, err)
	}

	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		logging.LogTransportError("proxy", err)
		return "", newProxyError(proxyURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("unexpected status %s", resp.Status)
		logging.LogTransportError("proxy", err)
		return "", newProxyError(proxyURL, err)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logging.LogTransportError("proxy", err)
		return "", newProxyError(proxyURL, err)
	}

	return string(body), nil
}
