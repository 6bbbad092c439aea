package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func TestParseServiceEntry(t *testing.T) {
	tests := []struct {
		name     string
		entry    *zeroconf.ServiceEntry
		wantNil  bool
		wantIP   string
		wantPort int
	}{
		{
			name: "gateway with IPv4",
			entry: &zeroconf.ServiceEntry{
				HostName: "Gateway-24E124F.local.",
				Port:     80,
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.1")},
				Text:     []string{"path=/"},
			},
			wantNil:  false,
			wantIP:   "192.168.1.1",
			wantPort: 80,
		},
		{
			name: "gateway without trailing dot",
			entry: &zeroconf.ServiceEntry{
				HostName: "UG65-gw.local",
				Port:     80,
				AddrIPv4: []net.IP{net.ParseIP("10.0.0.5")},
			},
			wantNil:  false,
			wantIP:   "10.0.0.5",
			wantPort: 80,
		},
		{
			name: "gateway with custom port",
			entry: &zeroconf.ServiceEntry{
				HostName: "milesight-gateway.local",
				Port:     8080,
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.100")},
			},
			wantNil:  false,
			wantIP:   "192.168.1.100",
			wantPort: 8080,
		},
		{
			name: "no port specified defaults to 80",
			entry: &zeroconf.ServiceEntry{
				HostName: "Gateway_F00D.local",
				Port:     0,
				AddrIPv4: []net.IP{net.ParseIP("172.16.0.1")},
			},
			wantNil:  false,
			wantIP:   "172.16.0.1",
			wantPort: 80,
		},
		{
			name: "unrelated device",
			entry: &zeroconf.ServiceEntry{
				HostName: "printer.local",
				Port:     80,
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.7")},
			},
			wantNil: true,
		},
		{
			name: "empty hostname",
			entry: &zeroconf.ServiceEntry{
				HostName: "",
				Port:     80,
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.1")},
			},
			wantNil: true,
		},
		{
			name: "no IP address",
			entry: &zeroconf.ServiceEntry{
				HostName: "Gateway-24E124F.local",
				Port:     80,
			},
			wantNil: true,
		},
		{
			name: "IPv6 only",
			entry: &zeroconf.ServiceEntry{
				HostName: "Gateway-24E124F.local",
				Port:     80,
				AddrIPv6: []net.IP{net.ParseIP("fe80::1")},
			},
			wantNil:  false,
			wantIP:   "fe80::1",
			wantPort: 80,
		},
		{
			name: "both IPv4 and IPv6 prefers IPv4",
			entry: &zeroconf.ServiceEntry{
				HostName: "Gateway-24E124F.local",
				Port:     80,
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.50")},
				AddrIPv6: []net.IP{net.ParseIP("fe80::2")},
			},
			wantNil:  false,
			wantIP:   "192.168.1.50",
			wantPort: 80,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := parseServiceEntry(tt.entry)

			if tt.wantNil {
				if gateway != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", gateway)
				}
				return
			}

			if gateway == nil {
				t.Fatal("parseServiceEntry() = nil, want gateway")
			}
			if gateway.IP != tt.wantIP {
				t.Errorf("gateway.IP = %v, want %v", gateway.IP, tt.wantIP)
			}
			if gateway.Port != tt.wantPort {
				t.Errorf("gateway.Port = %v, want %v", gateway.Port, tt.wantPort)
			}
			if gateway.Hostname != tt.entry.HostName {
				t.Errorf("gateway.Hostname = %v, want %v", gateway.Hostname, tt.entry.HostName)
			}
			if time.Since(gateway.DiscoveredAt) > time.Second {
				t.Errorf("gateway.DiscoveredAt is not recent: %v", gateway.DiscoveredAt)
			}
		})
	}
}

func TestParseServiceEntry_Metadata(t *testing.T) {
	entry := &zeroconf.ServiceEntry{
		HostName: "Gateway-24E124F.local",
		Port:     80,
		AddrIPv4: []net.IP{net.ParseIP("192.168.1.1")},
		Text:     []string{"path=/", "model=UG65", "flag", "version=60.0.0.35"},
	}

	gateway := parseServiceEntry(entry)
	if gateway == nil {
		t.Fatal("parseServiceEntry() = nil, want gateway")
	}

	expected := map[string]string{
		"path":    "/",
		"model":   "UG65",
		"flag":    "",
		"version": "60.0.0.35",
	}

	if len(gateway.Metadata) != len(expected) {
		t.Errorf("gateway.Metadata has %d entries, want %d", len(gateway.Metadata), len(expected))
	}
	for key, want := range expected {
		if got, ok := gateway.Metadata[key]; !ok {
			t.Errorf("gateway.Metadata missing key %q", key)
		} else if got != want {
			t.Errorf("gateway.Metadata[%q] = %q, want %q", key, got, want)
		}
	}
}

func TestNewScanner(t *testing.T) {
	scanner := NewScanner()

	if scanner == nil {
		t.Fatal("NewScanner() = nil, want scanner")
	}
	if scanner.Timeout != DefaultScanTimeout {
		t.Errorf("scanner.Timeout = %v, want %v", scanner.Timeout, DefaultScanTimeout)
	}
}

func TestHostPattern(t *testing.T) {
	tests := []struct {
		hostname    string
		shouldMatch bool
	}{
		{"Gateway-24E124F.local", true},
		{"Gateway-24E124F.local.", true},
		{"Gateway_F00D.local", true},
		{"gateway.local", true},
		{"UG65-gw.local", true},
		{"ug67.local", true},
		{"milesight-gateway.local", true},
		{"printer.local", false},
		{"mygateway.local", false},
		{"Gateway-24E124F", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.hostname, func(t *testing.T) {
			if got := hostPattern.MatchString(tt.hostname); got != tt.shouldMatch {
				t.Errorf("hostPattern.MatchString(%q) = %v, want %v", tt.hostname, got, tt.shouldMatch)
			}
		})
	}
}
