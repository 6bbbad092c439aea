package wifi

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// fakeRunner returns canned output keyed by command name and records
// every invocation.
type fakeRunner struct {
	stdout map[string]string
	err    map[string]error
	calls  [][]string
}

func (f *fakeRunner) run(_ context.Context, name string, args ...string) (string, string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.stdout[name], "", f.err[name]
}

func noSleep(time.Duration) {}

const airportOutput = `Wi-Fi:

      Interfaces:
        en0:
          Card Type: Wi-Fi
          Current Network Information:
            HomeNet:
              PHY Mode: 802.11ax
          Other Local Wi-Fi Networks:
            Gateway_6222F1:
              PHY Mode: 802.11n
              Channel: 6
              Security: None
            HomeNet-Guest:
              PHY Mode: 802.11ac
              Security: WPA2 Personal
            Gateway_7A01BC:
              PHY Mode: 802.11n
              Security: WPA2 Personal
            Gateway_NO_SEC_LINE:
`

func TestDarwinScan(t *testing.T) {
	runner := &fakeRunner{stdout: map[string]string{"system_profiler": airportOutput}}
	adapter := &darwinAdapter{iface: "en0", run: runner, sleep: noSleep}

	networks := adapter.Scan(context.Background(), "Gateway_")

	want := []Network{
		{SSID: "Gateway_6222F1", Signal: "Unknown", Security: "None"},
		{SSID: "Gateway_7A01BC", Signal: "Unknown", Security: "WPA2 Personal"},
		{SSID: "Gateway_NO_SEC_LINE", Signal: "Unknown", Security: "Unknown"},
	}

	if len(networks) != len(want) {
		t.Fatalf("Scan() returned %d networks, want %d: %+v", len(networks), len(want), networks)
	}
	for i, network := range networks {
		if network != want[i] {
			t.Errorf("Scan()[%d] = %+v, want %+v", i, network, want[i])
		}
	}
}

func TestDarwinScan_Failure(t *testing.T) {
	runner := &fakeRunner{err: map[string]error{"system_profiler": errors.New("boom")}}
	adapter := &darwinAdapter{iface: "en0", run: runner, sleep: noSleep}

	if networks := adapter.Scan(context.Background(), "Gateway_"); networks != nil {
		t.Errorf("Scan() on failure = %+v, want nil", networks)
	}
}

func TestDarwinConnect(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantArgs []string
	}{
		{
			name:     "open network omits password",
			password: "",
			wantArgs: []string{"networksetup", "-setairportnetwork", "en0", "Gateway_6222F1"},
		},
		{
			name:     "secured network includes password",
			password: "hunter2",
			wantArgs: []string{"networksetup", "-setairportnetwork", "en0", "Gateway_6222F1", "hunter2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{}
			slept := false
			adapter := &darwinAdapter{iface: "en0", run: runner, sleep: func(d time.Duration) {
				slept = true
				if d != ConnectSettleDelay {
					t.Errorf("settle delay = %v, want %v", d, ConnectSettleDelay)
				}
			}}

			if err := adapter.Connect(context.Background(), "Gateway_6222F1", tt.password); err != nil {
				t.Fatalf("Connect() error = %v", err)
			}
			if !slept {
				t.Error("Connect() should wait out the settle interval on success")
			}
			if got := strings.Join(runner.calls[0], " "); got != strings.Join(tt.wantArgs, " ") {
				t.Errorf("Connect() ran %q, want %q", got, strings.Join(tt.wantArgs, " "))
			}
		})
	}
}

func TestDarwinConnect_Failure(t *testing.T) {
	runner := &fakeRunner{err: map[string]error{"networksetup": errors.New("no such network")}}
	adapter := &darwinAdapter{iface: "en0", run: runner, sleep: func(time.Duration) {
		t.Error("Connect() must not settle after a failed join")
	}}

	err := adapter.Connect(context.Background(), "Gateway_6222F1", "")
	if err == nil {
		t.Fatal("Connect() should fail when the join command fails")
	}

	var join *joinError
	if !errors.As(err, &join) || join.SSID != "Gateway_6222F1" {
		t.Errorf("Connect() error = %v, want joinError for Gateway_6222F1", err)
	}
}

const iwlistOutput = `wlan0     Scan completed :
          Cell 01 - Address: 00:11:22:33:44:55
                    Channel:6
                    Quality=60/70  Signal level=-50 dBm
                    Encryption key:off
                    ESSID:"Gateway_6222F1"
          Cell 02 - Address: 00:11:22:33:44:66
                    Channel:11
                    Quality=40/70  Signal level=-70 dBm
                    Encryption key:on
                    ESSID:"Gateway_7A01BC"
                    IE: IEEE 802.11i/WPA2 Version 1
                        Authentication Suites (1) : PSK
          Cell 03 - Address: 00:11:22:33:44:77
                    Channel:1
                    Encryption key:on
                    ESSID:"HomeNet"
                    IE: IEEE 802.11i/WPA2 Version 1
          Cell 04 - Address: 00:11:22:33:44:88
                    Channel:3
                    Encryption key:on
                    ESSID:"Gateway_OLD"
`

func TestLinuxScan(t *testing.T) {
	runner := &fakeRunner{stdout: map[string]string{"iwlist": iwlistOutput}}
	adapter := &linuxAdapter{run: runner, sleep: noSleep}

	networks := adapter.Scan(context.Background(), "Gateway_")

	want := []Network{
		{SSID: "Gateway_6222F1", Signal: "-50 dBm", Security: "None"},
		{SSID: "Gateway_7A01BC", Signal: "-70 dBm", Security: "WPA2"},
		{SSID: "Gateway_OLD", Signal: "Unknown", Security: "WEP"},
	}

	if len(networks) != len(want) {
		t.Fatalf("Scan() returned %d networks, want %d: %+v", len(networks), len(want), networks)
	}
	for i, network := range networks {
		if network != want[i] {
			t.Errorf("Scan()[%d] = %+v, want %+v", i, network, want[i])
		}
	}
}

func TestLinuxConnect(t *testing.T) {
	runner := &fakeRunner{}
	adapter := &linuxAdapter{run: runner, sleep: noSleep}

	if err := adapter.Connect(context.Background(), "Gateway_6222F1", "hunter2"); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	want := "nmcli dev wifi connect Gateway_6222F1 password hunter2"
	if got := strings.Join(runner.calls[0], " "); got != want {
		t.Errorf("Connect() ran %q, want %q", got, want)
	}
}

const netshOutput = `
Interface name : Wi-Fi
There are 3 networks currently visible.

SSID 1 : Gateway_6222F1
    Network type            : Infrastructure
    Authentication          : Open
    Encryption              : None
    Signal                  : 82%

SSID 2 : HomeNet
    Network type            : Infrastructure
    Authentication          : WPA2-Personal
    Encryption              : CCMP

SSID 3 : Gateway_7A01BC
    Network type            : Infrastructure
    Authentication          : WPA2-Personal
    Encryption              : CCMP
    Signal                  : 44%
`

func TestWindowsScan(t *testing.T) {
	runner := &fakeRunner{stdout: map[string]string{"netsh": netshOutput}}
	adapter := &windowsAdapter{run: runner, sleep: noSleep}

	networks := adapter.Scan(context.Background(), "Gateway_")

	want := []Network{
		{SSID: "Gateway_6222F1", Signal: "82%", Security: "None"},
		{SSID: "Gateway_7A01BC", Signal: "44%", Security: "WPA2-Personal"},
	}

	if len(networks) != len(want) {
		t.Fatalf("Scan() returned %d networks, want %d: %+v", len(networks), len(want), networks)
	}
	for i, network := range networks {
		if network != want[i] {
			t.Errorf("Scan()[%d] = %+v, want %+v", i, network, want[i])
		}
	}
}

func TestWindowsConnect_OpenNetwork(t *testing.T) {
	runner := &fakeRunner{}
	adapter := &windowsAdapter{run: runner, sleep: noSleep}

	if err := adapter.Connect(context.Background(), "Gateway_6222F1", ""); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	want := "netsh wlan connect ssid=Gateway_6222F1"
	if got := strings.Join(runner.calls[0], " "); got != want {
		t.Errorf("Connect() ran %q, want %q", got, want)
	}
}

func TestNetworkOpen(t *testing.T) {
	if !(Network{Security: "None"}).Open() {
		t.Error("security None should be open")
	}
	if (Network{Security: "WPA2"}).Open() {
		t.Error("security WPA2 should not be open")
	}
}

func TestForPlatform(t *testing.T) {
	if _, ok := ForPlatform("darwin").(*darwinAdapter); !ok {
		t.Error("ForPlatform(darwin) should return the macOS adapter")
	}
	if _, ok := ForPlatform("windows").(*windowsAdapter); !ok {
		t.Error("ForPlatform(windows) should return the Windows adapter")
	}
	if _, ok := ForPlatform("linux").(*linuxAdapter); !ok {
		t.Error("ForPlatform(linux) should return the Linux adapter")
	}
}
