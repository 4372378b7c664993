package control

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// Mock description document in the shape real players serve
const mockDescription = `<?xml version="1.0" encoding="utf-8"?>
<root xmlns="urn:schemas-upnp-org:device-1-0">
  <device>
    <deviceType>urn:schemas-upnp-org:device:ZonePlayer:1</deviceType>
    <friendlyName>192.168.1.50 - Sonos Play:1</friendlyName>
    <roomName>Kitchen</roomName>
    <modelName>Sonos Play:1</modelName>
    <modelNumber>S12</modelNumber>
    <serialNum>00-0E-58-12-BC-80:7</serialNum>
    <UDN>uuid:RINCON_000E5812BC8001400</UDN>
    <softwareVersion>70.4-35220</softwareVersion>
  </device>
</root>`

func TestNewClient(t *testing.T) {
	client := NewClient("192.168.1.50", 1400)

	if client.BaseURL != "http://192.168.1.50:1400" {
		t.Errorf("BaseURL = %s, want http://192.168.1.50:1400", client.BaseURL)
	}

	if client.HTTPClient == nil {
		t.Error("HTTPClient should not be nil")
	}
}

func TestNewClientWithURL(t *testing.T) {
	client := NewClientWithURL("http://192.168.1.50:3400")

	if client.BaseURL != "http://192.168.1.50:3400" {
		t.Errorf("BaseURL = %s, want http://192.168.1.50:3400", client.BaseURL)
	}
}

func TestSetTimeout(t *testing.T) {
	client := NewClient("192.168.1.50", 1400)
	client.SetTimeout(5 * time.Second)

	if client.HTTPClient.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", client.HTTPClient.Timeout)
	}
}

func TestClient_Description(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/xml/device_description.xml" {
			t.Errorf("request path = %s, want /xml/device_description.xml", r.URL.Path)
		}
		_, _ = w.Write([]byte(mockDescription))
	}))
	defer server.Close()

	client := NewClientWithURL(server.URL)

	desc, err := client.Description(context.Background())
	if err != nil {
		t.Fatalf("Description() error = %v", err)
	}

	if desc.RoomName != "Kitchen" {
		t.Errorf("RoomName = %s, want Kitchen", desc.RoomName)
	}
	if desc.ModelName != "Sonos Play:1" {
		t.Errorf("ModelName = %s, want Sonos Play:1", desc.ModelName)
	}
	if desc.UID() != "RINCON_000E5812BC8001400" {
		t.Errorf("UID() = %s, want RINCON_000E5812BC8001400", desc.UID())
	}
}

func TestClient_DescriptionHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClientWithURL(server.URL)

	_, err := client.Description(context.Background())
	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		t.Fatalf("Description() error = %v, want *ClientError", err)
	}
	if clientErr.Type != ErrTypeHTTP {
		t.Errorf("ClientError.Type = %v, want ErrTypeHTTP", clientErr.Type)
	}
}

func TestClient_DescriptionMalformedXML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<root><device><broken"))
	}))
	defer server.Close()

	client := NewClientWithURL(server.URL)

	_, err := client.Description(context.Background())
	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		t.Fatalf("Description() error = %v, want *ClientError", err)
	}
	if clientErr.Type != ErrTypeParse {
		t.Errorf("ClientError.Type = %v, want ErrTypeParse", clientErr.Type)
	}
}

func TestClient_DescriptionUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client := NewClientWithURL(baseURL)

	_, err := client.Description(context.Background())
	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		t.Fatalf("Description() error = %v, want *ClientError", err)
	}
	if clientErr.Type != ErrTypeConnectionRefused && clientErr.Type != ErrTypeNetwork {
		t.Errorf("ClientError.Type = %v, want a network category", clientErr.Type)
	}
}
