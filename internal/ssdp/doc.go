// Package ssdp implements SSDP (Simple Service Discovery Protocol) search
// for Sonos ZonePlayer devices.
//
// SSDP is a UDP-multicast protocol using HTTP-style header framing. Discovery
// sends an M-SEARCH query to the well-known multicast group 239.255.255.250
// on port 1900 and collects unicast replies for a bounded listen window.
//
// # Discovery Process
//
// The discovery process works as follows:
//  1. Bind a UDP socket (optionally selecting the outbound multicast interface)
//  2. Send an M-SEARCH query for ST urn:schemas-upnp-org:device:ZonePlayer:1
//  3. Collect all reply datagrams received within the timeout window
//  4. Parse the aggregate text into per-device announcements
//  5. Filter to ZonePlayer announcements, deduplicate by USN, and extract
//     each announcing host from its LOCATION header
//
// # Usage Example
//
//	transport := ssdp.NewTransport(ssdp.Config{})
//	raw, err := transport.Request(context.Background())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, dev := range ssdp.Extract(raw) {
//	    fmt.Printf("Found: %s at %s\n", dev.USN, dev.Host)
//	}
//
// # Proxy Mode
//
// On networks where multicast is filtered, a discovery proxy URL can be
// configured instead. The proxy must return, as its HTTP response body, the
// same multi-block SSDP reply text that the multicast transport would have
// collected. Both transports satisfy the same Transport interface.
//
// # Network Requirements
//
// - Requires multicast support on the network interface (multicast mode)
// - Devices must be on the same local network segment
// - Firewall must allow SSDP (UDP port 1900)
package ssdp
