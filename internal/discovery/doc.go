// Package discovery locates Sonos ZonePlayer devices on the local network
// and maintains the collection of known players.
//
// The Manager is the entry point: its first Players call performs SSDP
// discovery (see the ssdp package) and feeds each announcing host into the
// player Collection; later calls return the cached contents. Players can
// also be registered manually by address, and those merge with discovered
// ones.
//
// # Usage Example
//
//	manager := discovery.NewManager(nil)
//	players, err := manager.Players(context.Background())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, player := range players {
//	    fmt.Println(player)
//	}
//
// # Caching
//
// Discovery runs at most once per Manager. Clear empties the collection but
// does not re-arm discovery; Reset does both. A failed discovery run is not
// cached, so the next Players call retries.
//
// # mDNS Fallback
//
// MDNSScanner offers an alternative scan over multicast DNS for networks
// where SSDP (UDP port 1900) is filtered. It yields player handles directly
// and is independent of the Manager's run-once cache.
//
// # Thread Safety
//
// The Manager and MemoryCollection are safe for concurrent use.
package discovery
