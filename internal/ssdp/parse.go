package ssdp

import (
	"net/url"
	"strings"

	"github.com/jmcrae/zonectl/internal/logging"
)

// Device is one deduplicated ZonePlayer announcement extracted from a raw
// discovery response.
type Device struct {
	// USN is the announcement's unique service name
	// (e.g., "uuid:RINCON_000E5812BC8001400::urn:schemas-upnp-org:device:ZonePlayer:1")
	USN string

	// Host is the network address taken from the LOCATION header's URL.
	// Empty when the URL has no parseable host.
	Host string
}

// Headers is one announcement's header block, keyed by lower-cased header
// name with whitespace-trimmed values. Matching announcements carry at least
// "st", "usn" and "location".
type Headers map[string]string

// parseHeaders parses one announcement block into a header map. Each line is
// split on its first colon; lines without a colon are dropped.
func parseHeaders(block string) Headers {
	headers := make(Headers)
	for _, line := range strings.Split(block, "\r\n") {
		name, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		headers[strings.ToLower(strings.TrimSpace(name))] = strings.TrimSpace(value)
	}
	return headers
}

// locationHost extracts the host component from a LOCATION header value.
// Returns an empty string when the URL has no parseable host; a malformed
// location never aborts the discovery pass.
func locationHost(location string) string {
	u, err := url.Parse(location)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// Extract parses a raw aggregate discovery response into the ordered sequence
// of ZonePlayer devices it announces.
//
// The raw text is split on blank lines into announcement blocks. Blocks are
// filtered to those whose ST header equals the ZonePlayer search target
// exactly, and deduplicated by USN with the first occurrence winning. Result
// order follows announcement order in the raw response.
//
// Extract is pure given one raw text blob: malformed blocks are skipped,
// never fatal, and an empty result is a valid outcome.
func Extract(raw string) []Device {
	var devices []Device
	seen := make(map[string]bool)

	for _, block := range strings.Split(raw, frameDelimiter) {
		if strings.TrimSpace(block) == "" {
			continue
		}

		// Cheap substring pre-filter before structured parsing. The exact
		// ST match below is the real filter; a block can contain the
		// search target elsewhere and still be rejected there.
		if !strings.Contains(block, SearchTarget) {
			continue
		}

		headers := parseHeaders(block)
		if headers["st"] != SearchTarget {
			continue
		}

		// A matching announcement without a USN cannot be deduplicated;
		// treat it as non-matching rather than guessing
		usn := headers["usn"]
		if usn == "" {
			continue
		}
		if seen[usn] {
			continue
		}
		seen[usn] = true

		host := locationHost(headers["location"])
		logging.LogDeviceFound(usn, host)
		devices = append(devices, Device{USN: usn, Host: host})
	}

	return devices
}
