package discovery

import (
	"testing"
	"time"
)

func TestZonePlayer_String(t *testing.T) {
	player := &ZonePlayer{
		IP:   "192.168.1.50",
		Port: 1400,
		UID:  "RINCON_000E5812BC8001400",
	}

	expected := "ZonePlayer RINCON_000E5812BC8001400 at 192.168.1.50:1400"
	if player.String() != expected {
		t.Errorf("ZonePlayer.String() = %v, want %v", player.String(), expected)
	}

	anonymous := &ZonePlayer{IP: "10.0.0.8", Port: 1400}
	expected = "ZonePlayer at 10.0.0.8:1400"
	if anonymous.String() != expected {
		t.Errorf("ZonePlayer.String() = %v, want %v", anonymous.String(), expected)
	}
}

func TestZonePlayer_BaseURL(t *testing.T) {
	tests := []struct {
		name     string
		player   *ZonePlayer
		expected string
	}{
		{
			name:     "standard control port",
			player:   &ZonePlayer{IP: "192.168.1.50", Port: 1400},
			expected: "http://192.168.1.50:1400",
		},
		{
			name:     "custom port",
			player:   &ZonePlayer{IP: "10.0.0.5", Port: 3400},
			expected: "http://10.0.0.5:3400",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.player.BaseURL(); got != tt.expected {
				t.Errorf("ZonePlayer.BaseURL() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestZonePlayer_DescriptionURL(t *testing.T) {
	player := &ZonePlayer{IP: "192.168.1.50", Port: 1400}

	expected := "http://192.168.1.50:1400/xml/device_description.xml"
	if got := player.DescriptionURL(); got != expected {
		t.Errorf("ZonePlayer.DescriptionURL() = %v, want %v", got, expected)
	}
}

func TestNewZonePlayer(t *testing.T) {
	before := time.Now()
	player := NewZonePlayer("192.168.1.50")

	if player.IP != "192.168.1.50" {
		t.Errorf("IP = %v, want 192.168.1.50", player.IP)
	}
	if player.Port != DefaultPort {
		t.Errorf("Port = %v, want %v", player.Port, DefaultPort)
	}
	if player.UID != "" {
		t.Errorf("UID = %v, want empty for address-only registration", player.UID)
	}
	if player.DiscoveredAt.Before(before) {
		t.Error("DiscoveredAt should be set to the registration time")
	}
}
