package discovery

import (
	"context"
	"sync"
	"time"

	"github.com/jmcrae/zonectl/internal/ssdp"
)

// Manager coordinates SSDP discovery and the player Collection.
//
// Network discovery is expensive (a multicast round trip with a multi-second
// listen window), so it runs at most once per Manager: the first Players call
// triggers it and later calls return the cached Collection contents. A failed
// transport does not count as a run, so the next call retries.
//
// The Manager is safe for concurrent use; the run-once check-and-set and all
// Collection mutation happen under one mutex.
type Manager struct {
	mu         sync.Mutex
	cfg        ssdp.Config
	collection Collection
	ran        bool

	// newTransport builds the transport for one discovery run from the
	// current config. Replaced in tests.
	newTransport func(ssdp.Config) ssdp.Transport
}

// NewManager creates a Manager feeding the given collection. A nil collection
// defaults to a fresh in-memory one.
func NewManager(collection Collection) *Manager {
	if collection == nil {
		collection = NewMemoryCollection()
	}
	return &Manager{
		collection:   collection,
		newTransport: ssdp.NewTransport,
	}
}

// Collection returns the manager's player collection
func (m *Manager) Collection() Collection {
	return m.collection
}

// SetInterface selects the outbound multicast interface, by name or numeric
// index. Takes effect on the next discovery run; it has no effect while a
// completed run is cached.
func (m *Manager) SetInterface(identifier string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.InterfaceName = identifier
}

// SetMulticast overrides the SSDP multicast group address. Takes effect on
// the next discovery run.
func (m *Manager) SetMulticast(address string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.MulticastAddress = address
}

// SetProxyURL routes the next discovery run through an HTTP discovery proxy
// instead of multicast. Empty disables the proxy.
func (m *Manager) SetProxyURL(url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.ProxyURL = url
}

// SetTimeout overrides the discovery listen window. Takes effect on the next
// discovery run.
func (m *Manager) SetTimeout(timeout time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.Timeout = timeout
}

// HasRun reports whether a discovery run has completed successfully
func (m *Manager) HasRun() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ran
}

// Players returns all known players, running network discovery first if it
// has not completed yet. On transport failure the error propagates, nothing
// is cached, and the Collection is left untouched; there is no automatic
// retry.
func (m *Manager) Players(ctx context.Context) ([]*ZonePlayer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.ran {
		transport := m.newTransport(m.cfg)
		raw, err := transport.Request(ctx)
		if err != nil {
			return nil, err
		}
		for _, dev := range ssdp.Extract(raw) {
			m.collection.AddAddress(dev.Host)
		}
		m.ran = true
	}

	return m.collection.Players(), nil
}

// AddPlayer registers an existing player handle. Manually registered players
// merge with discovered ones; this never affects whether discovery runs.
func (m *Manager) AddPlayer(player *ZonePlayer) {
	m.collection.Add(player)
}

// AddAddress registers a player by bare network address. Usable both before
// and after discovery has executed.
func (m *Manager) AddAddress(address string) {
	m.collection.AddAddress(address)
}

// Clear empties the Collection. It deliberately does not re-arm discovery:
// a later Players call returns the (now empty) cached contents without a new
// network query. Use Reset to force a fresh discovery run.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collection.Clear()
}

// Reset empties the Collection and re-arms discovery, so the next Players
// call performs a new network query.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collection.Clear()
	m.ran = false
}
