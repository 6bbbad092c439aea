package discovery

import (
	"fmt"
	"time"
)

// Gateway represents a discovered LoRaWAN gateway on the local network
type Gateway struct {
	// Hostname is the mDNS hostname (e.g., "Gateway-24E124F.local")
	Hostname string

	// IP is the IPv4 address (e.g., "192.168.1.1")
	IP string

	// Port is the web interface port (typically 80)
	Port int

	// Metadata contains additional mDNS TXT record data
	Metadata map[string]string

	// DiscoveredAt is when the gateway was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the gateway
func (g *Gateway) String() string {
	return fmt.Sprintf("Gateway %s at %s:%d", g.Hostname, g.IP, g.Port)
}

// AdminURL returns the web interface base URL for the gateway using the
// given scheme ("http" or "https"). Standard ports are omitted.
func (g *Gateway) AdminURL(scheme string) string {
	if scheme == "" {
		scheme = "http"
	}
	if (scheme == "http" && g.Port == 80) || (scheme == "https" && g.Port == 443) || g.Port == 0 {
		return fmt.Sprintf("%s://%s", scheme, g.IP)
	}
	return fmt.Sprintf("%s://%s:%d", scheme, g.IP, g.Port)
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (g *Gateway) GetMetadata(key string) string {
	if g.Metadata == nil {
		return ""
	}
	return g.Metadata[key]
}
