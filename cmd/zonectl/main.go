// Zonectl is a discovery and inspection utility for Sonos players.
//
// It locates ZonePlayer devices on the local network via SSDP multicast
// (with an mDNS fallback and an optional HTTP discovery proxy), identifies
// players over HTTP, and can stream a player's local event channel.
//
// Usage:
//
//	zonectl [command] [flags]
//
// Running without arguments on a terminal launches the interactive picker.
// See 'zonectl --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmcrae/zonectl/internal/logging"
	"github.com/jmcrae/zonectl/internal/version"
)

func main() {
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "zonectl",
	Short: "Sonos player discovery utility",
	Long: `A standalone utility for finding and inspecting Sonos players.

Discovers ZonePlayer devices on the local network via SSDP multicast,
with an mDNS fallback for networks that filter SSDP and an optional
HTTP discovery proxy.

If no command is specified on a terminal, the interactive picker launches.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: interactive picker on a terminal, plain
		// discovery otherwise
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return runPicker(cmd, args)
		}
		return runDiscover(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("zonectl %s (commit: %s)\n", version.Version, version.Commit)
	},
}
