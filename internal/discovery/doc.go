// Package discovery provides mDNS-based gateway discovery on the local network.
//
// This package implements multicast DNS (mDNS) service discovery to locate
// LoRaWAN gateways advertising their web interface. Gateways advertise
// themselves using the "_http._tcp" service type.
//
// The primary use is resolving the gateway's admin address after joining its
// access point network, when the configured address is unknown:
//
//	scanner := discovery.NewScanner()
//	gateway, err := scanner.ResolveAdminAddress(ctx)
//	if err != nil {
//	    // fall back to the conventional 192.168.1.1 address
//	}
//	url := gateway.AdminURL("http")
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - The gateway must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
package discovery
