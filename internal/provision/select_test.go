package provision

import (
	"fmt"
	"testing"

	"github.com/lorawan-tools/gwprov/internal/wifi"
)

func scanResults() []wifi.Network {
	return []wifi.Network{
		{SSID: "Gateway_AA", Signal: "-40 dBm", Security: "None"},
		{SSID: "Gateway_BB", Signal: "-55 dBm", Security: "WPA2"},
		{SSID: "Gateway_CC", Signal: "-62 dBm", Security: "None"},
	}
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{
			name:  "all preserves scan order",
			input: "all",
			want:  []string{"Gateway_AA", "Gateway_BB", "Gateway_CC"},
		},
		{
			name:  "allnone selects only open networks in scan order",
			input: "allnone",
			want:  []string{"Gateway_AA", "Gateway_CC"},
		},
		{
			name:  "keywords are case-insensitive",
			input: "  ALL ",
			want:  []string{"Gateway_AA", "Gateway_BB", "Gateway_CC"},
		},
		{
			name:  "single index",
			input: "2",
			want:  []string{"Gateway_BB"},
		},
		{
			name:  "comma-separated indices keep input order",
			input: "3,1",
			want:  []string{"Gateway_CC", "Gateway_AA"},
		},
		{
			name:  "indices tolerate spaces",
			input: "1, 3",
			want:  []string{"Gateway_AA", "Gateway_CC"},
		},
		{
			name:    "index zero rejected",
			input:   "0",
			wantErr: true,
		},
		{
			name:    "index past end rejected",
			input:   "4",
			wantErr: true,
		},
		{
			name:    "mixed valid and invalid rejected",
			input:   "1,9",
			wantErr: true,
		},
		{
			name:    "non-numeric rejected",
			input:   "first",
			wantErr: true,
		},
		{
			name:    "empty rejected",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSelection(tt.input, scanResults())

			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSelection(%q) error = nil, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSelection(%q) error = %v", tt.input, err)
			}
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Errorf("ParseSelection(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseSelection_AllNoneWithoutOpenNetworks(t *testing.T) {
	secured := []wifi.Network{
		{SSID: "Gateway_AA", Security: "WPA2"},
	}

	if _, err := ParseSelection("allnone", secured); err == nil {
		t.Error("ParseSelection(allnone) with no open networks should error for re-prompt")
	}
}
