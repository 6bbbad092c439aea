// Gwprov provisions fleets of UG63 LoRaWAN gateways.
//
// It scans for Gateway_* WiFi access points, joins each selected gateway,
// and drives the embedded web interface through the standard
// configuration sequence: ChirpStack packet forwarding, admin password
// rotation, Cellular WAN mode, and WiFi security.
//
// Usage:
//
//	gwprov [flags]
//
// Running without flags performs an unattended provisioning run over the
// gateways selected at the prompt. See 'gwprov --help' for flags.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lorawan-tools/gwprov/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gwprov",
	Short: "UG63 LoRaWAN Gateway Provisioning Bot",
	Long: `Automates the configuration of multiple UG63 gateways by scanning for
Gateway_* WiFi networks and applying the standard configuration:
ChirpStack packet forwarding, admin password change, Cellular WAN mode,
and WiFi security.

Configuration values (credentials, ChirpStack target, WiFi password) are
read from config.yaml; see config.example.yaml for the recognized keys.`,
	Version: version.Version,
	RunE:    runProvision,
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
		fmt.Printf("gwprov %s (commit: %s)\n", version.Version, version.Commit)
	},
}
