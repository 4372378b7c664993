package config

import "time"

// Registry represents the entire user configuration file.
// This stores user-defined metadata for players and application preferences.
type Registry struct {
	Version     int                `yaml:"version"`
	Players     map[string]*Player `yaml:"players,omitempty"` // Keyed by player UID (RINCON id)
	Preferences *Preferences       `yaml:"preferences,omitempty"`
}

// Player represents user-defined metadata for a single Sonos player.
// This is keyed by the player's RINCON identifier in the Registry.
// Discovery results themselves are never persisted; only user metadata is.
type Player struct {
	Nickname string    `yaml:"nickname,omitempty"`  // User-friendly name (e.g., "Kitchen")
	LastIP   string    `yaml:"last_ip,omitempty"`   // Last known IP address
	LastSeen time.Time `yaml:"last_seen,omitempty"` // Last discovery/connection time
}

// Preferences represents application-wide user preferences, including the
// discovery configuration surface.
type Preferences struct {
	AutoDiscover     bool   `yaml:"auto_discover"`               // Run discovery automatically on startup
	DiscoverTimeout  int    `yaml:"discover_timeout"`            // Discovery listen window in seconds
	MulticastAddress string `yaml:"multicast_address,omitempty"` // SSDP multicast group override
	Interface        string `yaml:"interface,omitempty"`         // Outbound multicast interface (name or index)
	ProxyURL         string `yaml:"proxy_url,omitempty"`         // Discovery proxy URL (empty = multicast)
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Players: make(map[string]*Player),
		Preferences: &Preferences{
			AutoDiscover:    true,
			DiscoverTimeout: 3,
		},
	}
}

// GetPlayer retrieves player metadata by UID.
// Returns nil if the player doesn't exist in the registry.
func (r *Registry) GetPlayer(uid string) *Player {
	return r.Players[uid]
}

// EnsurePlayer ensures a player entry exists in the registry.
// If the player doesn't exist, creates a new entry with default values.
// Returns the player entry (existing or newly created).
func (r *Registry) EnsurePlayer(uid string) *Player {
	if r.Players == nil {
		r.Players = make(map[string]*Player)
	}

	if player, exists := r.Players[uid]; exists {
		return player
	}

	player := &Player{}
	r.Players[uid] = player
	return player
}

// UpdatePlayerLastSeen updates the last seen timestamp and IP for a player.
func (r *Registry) UpdatePlayerLastSeen(uid, ip string) {
	player := r.EnsurePlayer(uid)
	player.LastSeen = time.Now()
	player.LastIP = ip
}

// SetNickname sets or updates the user-friendly name for a player.
func (r *Registry) SetNickname(uid, nickname string) {
	r.EnsurePlayer(uid).Nickname = nickname
}
