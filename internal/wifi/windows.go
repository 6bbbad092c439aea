package wifi

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lorawan-tools/gwprov/internal/logging"
)

// windowsAdapter drives the Windows WLAN stack through netsh.
type windowsAdapter struct {
	run   runner
	sleep func(time.Duration)
}

func newWindowsAdapter() *windowsAdapter {
	return &windowsAdapter{
		run:   execRunner{},
		sleep: time.Sleep,
	}
}

func (a *windowsAdapter) Scan(ctx context.Context, prefix string) []Network {
	stdout, _, err := a.run.run(ctx, "netsh", "wlan", "show", "networks")
	if err != nil {
		logging.Warn("WiFi scan failed", zap.Error(err))
		return nil
	}
	return parseNetshNetworks(stdout, prefix)
}

func (a *windowsAdapter) Connect(ctx context.Context, ssid, password string) error {
	args := []string{"wlan", "connect", "ssid=" + ssid}
	if password != "" {
		args = append(args, "key="+password)
	}

	if _, _, err := a.run.run(ctx, "netsh", args...); err != nil {
		return &joinError{SSID: ssid, Err: err}
	}

	a.sleep(ConnectSettleDelay)
	return nil
}

// parseNetshNetworks extracts networks matching prefix from
// "netsh wlan show networks" output. Blocks look like:
//
//	SSID 3 : Gateway_6222F1
//	    Network type            : Infrastructure
//	    Authentication          : Open
//	    Encryption              : None
func parseNetshNetworks(output, prefix string) []Network {
	var (
		networks []Network
		current  *Network
		seen     = map[string]bool{}
	)

	flush := func() {
		if current != nil {
			networks = append(networks, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "SSID ") && strings.Contains(trimmed, ":") {
			flush()
			ssid := strings.TrimSpace(trimmed[strings.Index(trimmed, ":")+1:])
			if !strings.HasPrefix(ssid, prefix) || seen[ssid] {
				continue
			}
			seen[ssid] = true
			current = &Network{SSID: ssid, Signal: "Unknown", Security: "Unknown"}
			continue
		}

		if current == nil {
			continue
		}

		if strings.HasPrefix(trimmed, "Authentication") && strings.Contains(trimmed, ":") {
			auth := strings.TrimSpace(trimmed[strings.Index(trimmed, ":")+1:])
			if auth == "Open" {
				current.Security = OpenSecurity
			} else {
				current.Security = auth
			}
			continue
		}
		if strings.HasPrefix(trimmed, "Signal") && strings.Contains(trimmed, ":") {
			current.Signal = strings.TrimSpace(trimmed[strings.Index(trimmed, ":")+1:])
		}
	}
	flush()

	return networks
}
