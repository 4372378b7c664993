package control

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// EventPort is the TLS websocket port Sonos players expose
	EventPort = 1443

	// eventPath is the websocket endpoint path
	eventPath = "/websocket/api"

	// apiKeyHeader carries the client API key on the upgrade request
	apiKeyHeader = "X-Sonos-Api-Key"

	// websocketSubprotocol is the Sonos local-API websocket subprotocol
	websocketSubprotocol = "v1.api.smartspeaker.audio"

	// defaultHandshakeTimeout bounds the websocket upgrade
	defaultHandshakeTimeout = 10 * time.Second
)

// EventStream is a websocket subscription to one player's local event
// channel. Players push state changes (volume, playback, grouping) as JSON
// messages over this channel.
type EventStream struct {
	// URL is the websocket endpoint (e.g., "wss://192.168.1.50:1443/websocket/api")
	URL string

	// APIKey is sent on the upgrade request. Players accept any
	// well-formed key for local connections.
	APIKey string

	// Dialer is the underlying websocket dialer
	Dialer *websocket.Dialer

	conn *websocket.Conn
}

// NewEventStream creates an event stream for the player at the given address.
// Players use self-signed certificates, so verification is disabled for the
// local TLS connection.
func NewEventStream(ip string) *EventStream {
	return &EventStream{
		URL: fmt.Sprintf("wss://%s:%d%s", ip, EventPort, eventPath),
		Dialer: &websocket.Dialer{
			HandshakeTimeout: defaultHandshakeTimeout,
			Subprotocols:     []string{websocketSubprotocol},
			TLSClientConfig:  &tls.Config{InsecureSkipVerify: true},
		},
	}
}

// Connect dials the player's websocket endpoint
func (s *EventStream) Connect(ctx context.Context) error {
	header := http.Header{}
	if s.APIKey != "" {
		header.Set(apiKeyHeader, s.APIKey)
	}

	conn, _, err := s.Dialer.DialContext(ctx, s.URL, header)
	if err != nil {
		return classifyError(err)
	}
	s.conn = conn
	return nil
}

// Next blocks until the player pushes the next event message and returns its
// raw payload. Connect must have succeeded first.
func (s *EventStream) Next() ([]byte, error) {
	if s.conn == nil {
		return nil, &ClientError{Type: ErrTypeNetwork, Err: fmt.Errorf("event stream not connected")}
	}

	_, payload, err := s.conn.ReadMessage()
	if err != nil {
		return nil, classifyError(err)
	}
	return payload, nil
}

// Close closes the websocket connection. Safe to call when not connected.
func (s *EventStream) Close() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}
