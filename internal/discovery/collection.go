package discovery

import (
	"sync"

	"go.uber.org/zap"

	"github.com/jmcrae/zonectl/internal/logging"
)

// Collection stores discovered player handles. The Manager feeds it during
// discovery; callers may also register players directly. Implementations
// must be safe for concurrent use.
type Collection interface {
	// Add registers an existing player handle
	Add(player *ZonePlayer)

	// AddAddress registers a player by bare network address
	AddAddress(address string)

	// Clear removes all players
	Clear()

	// Players returns the stored players in registration order
	Players() []*ZonePlayer

	// Logger returns the collection's logger sink
	Logger() *zap.Logger

	// SetLogger replaces the collection's logger sink
	SetLogger(logger *zap.Logger)
}

// MemoryCollection is the default in-memory Collection implementation
type MemoryCollection struct {
	mu      sync.Mutex
	players []*ZonePlayer
	logger  *zap.Logger
}

// NewMemoryCollection creates an empty in-memory collection using the
// process-wide logger
func NewMemoryCollection() *MemoryCollection {
	return &MemoryCollection{logger: logging.GetLogger()}
}

// Add registers an existing player handle
func (c *MemoryCollection) Add(player *ZonePlayer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.players = append(c.players, player)
}

// AddAddress registers a player by bare network address
func (c *MemoryCollection) AddAddress(address string) {
	c.Add(NewZonePlayer(address))
}

// Clear removes all players
func (c *MemoryCollection) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.players = nil
}

// Players returns the stored players in registration order
func (c *MemoryCollection) Players() []*ZonePlayer {
	c.mu.Lock()
	defer c.mu.Unlock()
	players := make([]*ZonePlayer, len(c.players))
	copy(players, c.players)
	return players
}

// Logger returns the collection's logger sink
func (c *MemoryCollection) Logger() *zap.Logger {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.logger
}

// SetLogger replaces the collection's logger sink
func (c *MemoryCollection) SetLogger(logger *zap.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger = logger
}
