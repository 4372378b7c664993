package discovery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// MDNSServiceType is the mDNS service type Sonos players advertise
	MDNSServiceType = "_sonos._tcp"

	// MDNSDomain is the mDNS domain (typically "local.")
	MDNSDomain = "local."

	// DefaultMDNSTimeout is the default timeout for an mDNS scan
	DefaultMDNSTimeout = 5 * time.Second
)

// MDNSScanner discovers players via multicast DNS. Newer players advertise
// a _sonos._tcp service alongside SSDP; this scanner is the fallback for
// networks where SSDP traffic on UDP port 1900 is filtered but mDNS is not.
type MDNSScanner struct {
	// Timeout is the maximum time to wait for service advertisements
	Timeout time.Duration
}

// NewMDNSScanner creates an mDNS scanner with default settings
func NewMDNSScanner() *MDNSScanner {
	return &MDNSScanner{Timeout: DefaultMDNSTimeout}
}

// Scan browses for Sonos services on the local network and returns the
// players seen before the timeout elapses.
func (s *MDNSScanner) Scan(ctx context.Context) ([]*ZonePlayer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	players := make([]*ZonePlayer, 0)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		for entry := range entries {
			if player := s.parseServiceEntry(entry); player != nil {
				players = append(players, player)
			}
		}
	}()

	if err := resolver.Browse(ctx, MDNSServiceType, MDNSDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()

	return players, nil
}

// parseServiceEntry converts a zeroconf service entry to a ZonePlayer.
// Returns nil for entries that do not look like Sonos players.
func (s *MDNSScanner) parseServiceEntry(entry *zeroconf.ServiceEntry) *ZonePlayer {
	// Prefer IPv4; Sonos control endpoints are reachable over IPv4
	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	// TXT records carry "uuid=RINCON_..." on real players
	var uid string
	for _, txt := range entry.Text {
		key, value, found := strings.Cut(txt, "=")
		if found && key == "uuid" {
			uid = value
			break
		}
	}
	if !strings.HasPrefix(uid, "RINCON_") {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	return &ZonePlayer{
		IP:           ip,
		Port:         port,
		UID:          uid,
		DiscoveredAt: time.Now(),
	}
}
