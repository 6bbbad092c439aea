package provision

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lorawan-tools/gwprov/internal/wifi"
)

// Selection inputs recognized beyond comma-separated indices.
const (
	SelectAll  = "all"
	SelectOpen = "allnone"
)

// ParseSelection resolves one line of selection input against the scanned
// networks. Accepted forms are comma-separated 1-based indices, "all",
// and "allnone" (only networks with no security). The returned SSIDs
// preserve scan order for the keyword forms and input order for indices.
// Invalid input returns an error so the caller can re-prompt.
func ParseSelection(input string, networks []wifi.Network) ([]string, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return nil, fmt.Errorf("empty selection")
	}

	switch input {
	case SelectAll:
		ssids := make([]string, 0, len(networks))
		for _, network := range networks {
			ssids = append(ssids, network.SSID)
		}
		return ssids, nil

	case SelectOpen:
		var ssids []string
		for _, network := range networks {
			if network.Open() {
				ssids = append(ssids, network.SSID)
			}
		}
		if len(ssids) == 0 {
			return nil, fmt.Errorf("no open networks found")
		}
		return ssids, nil
	}

	var ssids []string
	for _, field := range strings.Split(input, ",") {
		index, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("invalid input %q: enter numbers separated by commas, %q, or %q", field, SelectAll, SelectOpen)
		}
		if index < 1 || index > len(networks) {
			return nil, fmt.Errorf("invalid selection %d: enter numbers between 1 and %d", index, len(networks))
		}
		ssids = append(ssids, networks[index-1].SSID)
	}
	return ssids, nil
}
