package discovery

import (
	"fmt"
	"time"
)

// DefaultPort is the HTTP control port Sonos players listen on
const DefaultPort = 1400

// ZonePlayer represents a discovered Sonos player on the network
type ZonePlayer struct {
	// IP is the player's network address (e.g., "192.168.1.50")
	IP string

	// Port is the HTTP control port (typically 1400)
	Port int

	// UID is the player's RINCON identifier when known
	// (e.g., "RINCON_000E5812BC8001400"). Empty for players registered by
	// bare address; SSDP discovery yields only the announcing host.
	UID string

	// DiscoveredAt is when the player was discovered or registered
	DiscoveredAt time.Time
}

// NewZonePlayer creates a player handle from a bare network address
func NewZonePlayer(ip string) *ZonePlayer {
	return &ZonePlayer{
		IP:           ip,
		Port:         DefaultPort,
		DiscoveredAt: time.Now(),
	}
}

// String returns a human-readable string representation of the player
func (z *ZonePlayer) String() string {
	if z.UID != "" {
		return fmt.Sprintf("ZonePlayer %s at %s:%d", z.UID, z.IP, z.Port)
	}
	return fmt.Sprintf("ZonePlayer at %s:%d", z.IP, z.Port)
}

// BaseURL returns the HTTP base URL for the player
func (z *ZonePlayer) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", z.IP, z.Port)
}

// DescriptionURL returns the URL of the player's UPnP description document
func (z *ZonePlayer) DescriptionURL() string {
	return z.BaseURL() + "/xml/device_description.xml"
}
