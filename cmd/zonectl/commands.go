package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmcrae/zonectl/internal/config"
	"github.com/jmcrae/zonectl/internal/control"
	"github.com/jmcrae/zonectl/internal/discovery"
	"github.com/jmcrae/zonectl/internal/ssdp"
	"github.com/jmcrae/zonectl/internal/tui"
)

// Discovery command flags
var (
	ifaceName    string
	multicast    string
	proxyURL     string
	scanTimeout  int
	outputFormat string
)

func init() {
	// Common discovery flags (persistent on root)
	rootCmd.PersistentFlags().StringVar(&ifaceName, "interface", "", "Outbound multicast interface (name or index)")
	rootCmd.PersistentFlags().StringVar(&multicast, "multicast", "", "SSDP multicast group (default 239.255.255.250)")
	rootCmd.PersistentFlags().StringVar(&proxyURL, "proxy", "", "Discovery proxy URL (replaces multicast)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "text", "Output format (text, json)")

	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(mdnsCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(eventsCmd)
}

// newManager builds a discovery manager from the saved preferences with any
// command-line flags layered on top.
func newManager() *discovery.Manager {
	manager := discovery.NewManager(nil)

	if registry, err := config.LoadRegistry(); err == nil && registry.Preferences != nil {
		prefs := registry.Preferences
		if prefs.Interface != "" {
			manager.SetInterface(prefs.Interface)
		}
		if prefs.MulticastAddress != "" {
			manager.SetMulticast(prefs.MulticastAddress)
		}
		if prefs.ProxyURL != "" {
			manager.SetProxyURL(prefs.ProxyURL)
		}
		if prefs.DiscoverTimeout > 0 {
			manager.SetTimeout(time.Duration(prefs.DiscoverTimeout) * time.Second)
		}
	}

	// Flags override saved preferences
	if ifaceName != "" {
		manager.SetInterface(ifaceName)
	}
	if multicast != "" {
		manager.SetMulticast(multicast)
	}
	if proxyURL != "" {
		manager.SetProxyURL(proxyURL)
	}
	if scanTimeout > 0 {
		manager.SetTimeout(time.Duration(scanTimeout) * time.Second)
	}

	return manager
}

// discoverCmd finds players on the network
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover Sonos players on the network",
	Long: `Discover Sonos players using SSDP multicast.

Sends an M-SEARCH query for ZonePlayer devices and lists every player
that answers within the listen window. Use --proxy to route discovery
through an HTTP proxy on networks where multicast is blocked.`,
	Example: `  # Discover with the default 3-second window
  zonectl discover

  # Longer window for sleepy networks
  zonectl discover --timeout 10

  # Pin the outbound interface
  zonectl discover --interface eth0

  # Multicast-free environments
  zonectl discover --proxy http://gateway.local/ssdp`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().IntVar(&scanTimeout, "timeout", 0, "Listen window in seconds")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	manager := newManager()

	players, err := manager.Players(context.Background())
	if err != nil {
		var netErr *ssdp.NetworkError
		if errors.As(err, &netErr) {
			return fmt.Errorf("discovery failed (%s): %w", netErr.Reason(), err)
		}
		return fmt.Errorf("discovery failed: %w", err)
	}

	return printPlayers(players)
}

// mdnsCmd is the fallback scan over multicast DNS
var mdnsCmd = &cobra.Command{
	Use:   "mdns",
	Short: "Discover players via mDNS instead of SSDP",
	Long: `Discover Sonos players via multicast DNS.

Newer players advertise a _sonos._tcp service. This scan is useful on
networks that filter SSDP traffic on UDP port 1900 but pass mDNS.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scanner := discovery.NewMDNSScanner()
		if scanTimeout > 0 {
			scanner.Timeout = time.Duration(scanTimeout) * time.Second
		}

		players, err := scanner.Scan(context.Background())
		if err != nil {
			return fmt.Errorf("mDNS scan failed: %w", err)
		}

		return printPlayers(players)
	},
}

func init() {
	mdnsCmd.Flags().IntVar(&scanTimeout, "timeout", 0, "Scan timeout in seconds")
}

func printPlayers(players []*discovery.ZonePlayer) error {
	if outputFormat == "json" {
		data, err := json.MarshalIndent(players, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(players) == 0 {
		fmt.Println("No players found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure players are powered on and on the same network segment")
		fmt.Println("  - Check that your firewall allows UDP port 1900 (SSDP)")
		fmt.Println("  - Try 'zonectl mdns' if your network filters SSDP")
		fmt.Println("  - Try increasing --timeout on busy networks")
		fmt.Println("  - Use --proxy if multicast is blocked entirely")
		return nil
	}

	fmt.Printf("Found %d player(s):\n\n", len(players))
	for i, player := range players {
		fmt.Printf("%d. %s\n", i+1, player)
	}

	fmt.Println("\nUse 'zonectl describe <ip>' to identify a player")
	return nil
}

// describeCmd identifies a single player over HTTP
var describeCmd = &cobra.Command{
	Use:   "describe <ip>",
	Short: "Fetch and display a player's description document",
	Long: `Fetch a player's UPnP description document and display its identity:
room name, model, serial number, RINCON id and software version.

The player's last seen address is recorded in the zonectl config file.`,
	Args: cobra.ExactArgs(1),
	RunE: runDescribe,
}

func runDescribe(cmd *cobra.Command, args []string) error {
	client := control.NewClient(args[0], control.DefaultPort)

	desc, err := client.Description(context.Background())
	if err != nil {
		return fmt.Errorf("failed to describe %s: %w", args[0], err)
	}

	if outputFormat == "json" {
		data, err := json.MarshalIndent(desc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
	} else {
		fmt.Printf("Room:     %s\n", desc.RoomName)
		fmt.Printf("Model:    %s (%s)\n", desc.ModelName, desc.ModelNumber)
		fmt.Printf("UID:      %s\n", desc.UID())
		fmt.Printf("Serial:   %s\n", desc.SerialNumber)
		fmt.Printf("Software: %s\n", desc.SoftwareVersion)
	}

	// Remember the player in the config registry
	if registry, err := config.LoadRegistry(); err == nil && desc.UID() != "" {
		registry.UpdatePlayerLastSeen(desc.UID(), args[0])
		if err := registry.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save config: %v\n", err)
		}
	}

	return nil
}

// eventsCmd streams a player's local event channel
var eventsCmd = &cobra.Command{
	Use:   "events <ip>",
	Short: "Stream a player's event channel",
	Long: `Subscribe to a player's local websocket event channel and print each
event as it arrives. Press Ctrl-C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runEvents,
}

func runEvents(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	stream := control.NewEventStream(args[0])
	if err := stream.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to %s: %w", args[0], err)
	}
	defer stream.Close()

	fmt.Printf("Streaming events from %s (Ctrl-C to stop)\n", args[0])

	// Close the stream when interrupted so the blocked read returns
	go func() {
		<-ctx.Done()
		stream.Close()
	}()

	for {
		payload, err := stream.Next()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("event stream ended: %w", err)
		}
		fmt.Println(string(payload))
	}
}

// runPicker launches the interactive player picker
func runPicker(cmd *cobra.Command, args []string) error {
	player, err := tui.Run(newManager())
	if err != nil {
		return err
	}
	if player == nil {
		return nil
	}

	fmt.Println(player)
	return nil
}
