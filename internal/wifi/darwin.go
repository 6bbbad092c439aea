package wifi

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lorawan-tools/gwprov/internal/logging"
)

// darwinAdapter drives the macOS WiFi stack through system_profiler and
// networksetup. The deprecated airport utility is deliberately avoided.
type darwinAdapter struct {
	iface string
	run   runner
	sleep func(time.Duration)
}

func newDarwinAdapter() *darwinAdapter {
	return &darwinAdapter{
		iface: "en0",
		run:   execRunner{},
		sleep: time.Sleep,
	}
}

func (a *darwinAdapter) Scan(ctx context.Context, prefix string) []Network {
	stdout, _, err := a.run.run(ctx, "system_profiler", "SPAirPortDataType")
	if err != nil {
		logging.Warn("WiFi scan failed", zap.Error(err))
		return nil
	}
	return parseAirportProfile(stdout, prefix)
}

func (a *darwinAdapter) Connect(ctx context.Context, ssid, password string) error {
	args := []string{"-setairportnetwork", a.iface, ssid}
	if password != "" {
		args = append(args, password)
	}

	if _, _, err := a.run.run(ctx, "networksetup", args...); err != nil {
		return &joinError{SSID: ssid, Err: err}
	}

	// networksetup returns before DHCP has settled
	a.sleep(ConnectSettleDelay)
	return nil
}

// parseAirportProfile extracts networks matching prefix from
// system_profiler SPAirPortDataType output. Network names appear as
// indented lines ending with a colon inside the "Other Local Wi-Fi
// Networks:" section, each followed by indented attribute lines.
func parseAirportProfile(output, prefix string) []Network {
	var (
		networks  []Network
		inSection bool
		current   *Network
		seen      = map[string]bool{}
	)

	flush := func() {
		if current != nil {
			networks = append(networks, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.Contains(line, "Other Local Wi-Fi Networks:") {
			inSection = true
			continue
		}
		if !inSection {
			continue
		}

		// A network name line ends with a colon and carries the prefix.
		if strings.HasSuffix(trimmed, ":") && strings.Contains(trimmed, prefix) {
			flush()
			ssid := strings.TrimSuffix(trimmed, ":")
			if seen[ssid] {
				continue
			}
			seen[ssid] = true
			current = &Network{SSID: ssid, Signal: "Unknown", Security: "Unknown"}
			continue
		}

		if current == nil {
			continue
		}

		if idx := strings.Index(line, "Security:"); idx >= 0 {
			current.Security = strings.TrimSpace(line[idx+len("Security:"):])
			flush()
			continue
		}
		if idx := strings.Index(line, "Signal / Noise:"); idx >= 0 {
			current.Signal = strings.TrimSpace(line[idx+len("Signal / Noise:"):])
		}
	}
	flush()

	return networks
}
