package discovery

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the mDNS service type gateways advertise their
	// web interface under
	ServiceType = "_http._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for gateway discovery
	DefaultScanTimeout = 10 * time.Second

	// DefaultPort is the default web interface port
	DefaultPort = 80
)

// hostPattern matches gateway hostnames (e.g., "Gateway-24E124F.local"
// or "UG65-GW.local")
var hostPattern = regexp.MustCompile(`(?i)^(gateway|ug6\d|milesight)[-_]?.*\.local\.?$`)

// Scanner handles mDNS gateway discovery
type Scanner struct {
	// Timeout is the maximum time to wait for gateway discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// Scan discovers all gateways advertising a web interface on the local
// network. Returns a list of discovered gateways or an error.
func (s *Scanner) Scan(ctx context.Context) ([]*Gateway, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	gateways := make([]*Gateway, 0)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for entry := range entries {
			gateway := parseServiceEntry(entry)
			if gateway != nil {
				gateways = append(gateways, gateway)
			}
		}
	}()

	err = resolver.Browse(ctx, ServiceType, ServiceDomain, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	// Wait for the browse to finish draining entries
	<-ctx.Done()
	<-done

	return gateways, nil
}

// ResolveAdminAddress finds the web interface address of the gateway the
// host is currently joined to. It returns the first gateway seen, which
// on a gateway's own access point network is the gateway itself.
func (s *Scanner) ResolveAdminAddress(ctx context.Context) (*Gateway, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	found := make(chan *Gateway, 1)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		for entry := range entries {
			gateway := parseServiceEntry(entry)
			if gateway != nil {
				select {
				case found <- gateway:
				default:
				}
				cancel()
				return
			}
		}
	}()

	err = resolver.Browse(ctx, ServiceType, ServiceDomain, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	select {
	case gateway := <-found:
		return gateway, nil
	case <-ctx.Done():
		select {
		case gateway := <-found:
			return gateway, nil
		default:
		}
		return nil, fmt.Errorf("no gateway web interface found within timeout")
	}
}

// parseServiceEntry converts a zeroconf service entry to a Gateway.
// Returns nil if the entry does not look like a gateway.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Gateway {
	hostname := entry.HostName
	if hostname == "" || !hostPattern.MatchString(hostname) {
		return nil
	}

	// Prefer IPv4; the gateway admin interface binds v4 only
	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}

	return &Gateway{
		Hostname:     hostname,
		IP:           ip,
		Port:         port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}
