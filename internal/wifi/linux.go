package wifi

import (
	"context"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lorawan-tools/gwprov/internal/logging"
)

// Regular expressions for parsing iwlist scan output
var (
	cellRE      = regexp.MustCompile(`(?m)^\s*Cell \d+`)
	essidRE     = regexp.MustCompile(`(?m)^\s*ESSID:"([^"]*)"`)
	encKeyRE    = regexp.MustCompile(`(?m)^\s*Encryption key:(on|off)`)
	qualityRE   = regexp.MustCompile(`(?m)Signal level[=:]\s*(-?\d+ ?dBm?)`)
	wpa2TagRE   = regexp.MustCompile(`(?m)^\s*IE: IEEE 802\.11i/WPA2`)
	wpaV1TagRE  = regexp.MustCompile(`(?m)^\s*IE: WPA Version 1`)
)

// linuxAdapter scans with iwlist and joins through NetworkManager's
// nmcli, which handles supplicant configuration and DHCP itself.
type linuxAdapter struct {
	run   runner
	sleep func(time.Duration)
}

func newLinuxAdapter() *linuxAdapter {
	return &linuxAdapter{
		run:   execRunner{},
		sleep: time.Sleep,
	}
}

func (a *linuxAdapter) Scan(ctx context.Context, prefix string) []Network {
	stdout, _, err := a.run.run(ctx, "iwlist", "scan")
	if err != nil {
		logging.Warn("WiFi scan failed", zap.Error(err))
		return nil
	}
	return parseIwlistScan(stdout, prefix)
}

func (a *linuxAdapter) Connect(ctx context.Context, ssid, password string) error {
	args := []string{"dev", "wifi", "connect", ssid}
	if password != "" {
		args = append(args, "password", password)
	}

	if _, _, err := a.run.run(ctx, "nmcli", args...); err != nil {
		return &joinError{SSID: ssid, Err: err}
	}

	a.sleep(ConnectSettleDelay)
	return nil
}

// parseIwlistScan extracts networks matching prefix from iwlist output.
// Each cell block is examined independently: the encryption-key flag
// decides open vs secured, and the WPA information elements narrow the
// secured label down where present.
func parseIwlistScan(output, prefix string) []Network {
	cells := cellRE.FindAllStringIndex(output, -1)
	if cells == nil {
		return nil
	}

	var networks []Network
	seen := map[string]bool{}

	for i, cell := range cells {
		start, end := cell[0], len(output)
		if i < len(cells)-1 {
			end = cells[i+1][0]
		}
		block := output[start:end]

		essid := essidRE.FindStringSubmatch(block)
		if essid == nil || !strings.HasPrefix(essid[1], prefix) || seen[essid[1]] {
			continue
		}
		seen[essid[1]] = true

		network := Network{SSID: essid[1], Signal: "Unknown", Security: "Unknown"}

		if quality := qualityRE.FindStringSubmatch(block); quality != nil {
			network.Signal = quality[1]
		}

		switch enc := encKeyRE.FindStringSubmatch(block); {
		case enc == nil:
			// leave Unknown
		case enc[1] == "off":
			network.Security = OpenSecurity
		case wpa2TagRE.MatchString(block):
			network.Security = "WPA2"
		case wpaV1TagRE.MatchString(block):
			network.Security = "WPA"
		default:
			network.Security = "WEP"
		}

		networks = append(networks, network)
	}

	return networks
}
