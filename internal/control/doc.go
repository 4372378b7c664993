// Package control talks to individual Sonos players over HTTP.
//
// Discovery (see the discovery package) yields bare network addresses; this
// package builds per-player control objects from them. The Client fetches
// the player's UPnP description document to identify it (room name, model,
// RINCON id), and the EventStream subscribes to the player's local websocket
// event channel.
//
// The full UPnP control protocol (service descriptions, SOAP actions) is
// deliberately not modeled.
package control
