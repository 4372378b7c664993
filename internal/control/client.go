package control

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultPort is the HTTP control port Sonos players listen on
	DefaultPort = 1400

	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second

	// descriptionPath is the path of the UPnP device description document
	descriptionPath = "/xml/device_description.xml"
)

// Client is an HTTP client for one Sonos player, constructed from a bare
// network address. It fetches the player's description document; it does not
// model the full UPnP control protocol.
type Client struct {
	// BaseURL is the base URL for the player (e.g., "http://192.168.1.50:1400")
	BaseURL string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client
}

// NewClient creates a control client for a player.
// ip: player IP address (e.g., "192.168.1.50")
// port: player HTTP port (typically 1400)
func NewClient(ip string, port int) *Client {
	return NewClientWithURL(fmt.Sprintf("http://%s:%d", ip, port))
}

// NewClientWithURL creates a client with a full base URL
// baseURL: Full base URL (e.g., "http://192.168.1.50:1400")
func NewClientWithURL(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// SetTimeout updates the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// Description is the subset of the UPnP device description document that
// identifies a player.
type Description struct {
	DeviceType      string `xml:"device>deviceType"`
	FriendlyName    string `xml:"device>friendlyName"`
	RoomName        string `xml:"device>roomName"`
	ModelName       string `xml:"device>modelName"`
	ModelNumber     string `xml:"device>modelNumber"`
	SerialNumber    string `xml:"device>serialNum"`
	UDN             string `xml:"device>UDN"`
	SoftwareVersion string `xml:"device>softwareVersion"`
}

// UID returns the player's RINCON identifier, stripping the "uuid:" prefix
// from the description's UDN field.
func (d *Description) UID() string {
	return strings.TrimPrefix(d.UDN, "uuid:")
}

// Description fetches and parses the player's device description document
func (c *Client) Description(ctx context.Context) (*Description, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+descriptionPath, nil)
	if err != nil {
		return nil, classifyError(err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, classifyError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ClientError{
			Type: ErrTypeHTTP,
			Err:  fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyError(err)
	}

	var desc Description
	if err := xml.Unmarshal(body, &desc); err != nil {
		return nil, &ClientError{
			Type: ErrTypeParse,
			Err:  fmt.Errorf("malformed description document: %w", err),
		}
	}

	return &desc, nil
}
