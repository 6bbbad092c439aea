package wifi

import (
	"context"
	"runtime"
	"time"
)

// OpenSecurity is the label reported for networks with no encryption.
// Gateway access points ship open out of the box, so this is the label
// the "allnone" selection shorthand filters on.
const OpenSecurity = "None"

// ConnectSettleDelay is how long an adapter waits after a successful
// join command before reporting success. The OS reports the join as
// complete before DHCP and routing have actually settled.
const ConnectSettleDelay = 5 * time.Second

// Network is one access point found by a scan.
type Network struct {
	SSID     string
	Signal   string
	Security string
}

// Open reports whether the network advertises no encryption.
func (n Network) Open() bool {
	return n.Security == OpenSecurity
}

// Adapter enumerates nearby access points and joins one. Implementations
// are platform-specific but expose the same contract: Scan never fails
// (failures are logged and produce an empty result) and Connect blocks
// through the post-join settle interval before reporting success.
type Adapter interface {
	// Scan returns networks whose SSID starts with prefix. A failed
	// scan is logged and returns nil.
	Scan(ctx context.Context, prefix string) []Network

	// Connect joins the named network. password is empty for open
	// networks. On success the adapter has already waited out the
	// settle interval.
	Connect(ctx context.Context, ssid, password string) error
}

// ForPlatform returns the adapter for the given GOOS value.
func ForPlatform(goos string) Adapter {
	switch goos {
	case "darwin":
		return newDarwinAdapter()
	case "windows":
		return newWindowsAdapter()
	default:
		return newLinuxAdapter()
	}
}

// Native returns the adapter for the running platform.
func Native() Adapter {
	return ForPlatform(runtime.GOOS)
}
