package ui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/lorawan-tools/gwprov/internal/provision"
)

func TestRenderSummary(t *testing.T) {
	summary := provision.Summary{
		Attempted: 2,
		Succeeded: 1,
		Results: []provision.DeviceResult{
			{SSID: "Gateway_AA", Succeeded: true},
			{SSID: "Gateway_BB", Succeeded: false},
		},
	}

	rendered := RenderSummary(summary, 80)

	for _, want := range []string{"Gateway_AA", "Gateway_BB", "1/2"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("RenderSummary() missing %q:\n%s", want, rendered)
		}
	}
}

func TestRenderSummary_NarrowWidthClamped(t *testing.T) {
	summary := provision.Summary{
		Attempted: 1,
		Succeeded: 1,
		Results:   []provision.DeviceResult{{SSID: "Gateway_AA", Succeeded: true}},
	}

	// Must not panic or collapse below the minimum layout width
	rendered := RenderSummary(summary, 10)
	if !strings.Contains(rendered, "Gateway_AA") {
		t.Errorf("RenderSummary() missing SSID:\n%s", rendered)
	}
}

func TestStepObserver_PrintsProgress(t *testing.T) {
	var lines []string
	observer := StepObserver{Out: func(format string, args ...any) {
		lines = append(lines, strings.TrimSpace(fmt.Sprintf(format, args...)))
	}}

	step := provision.Step{Index: 2, Name: "Browser & Login"}
	observer.AttemptStarted("Gateway_AA", 0, 2)
	observer.StepStarted("Gateway_AA", step)
	observer.StepCompleted("Gateway_AA", step)
	observer.DeviceDone("Gateway_AA", true)

	joined := strings.Join(lines, "\n")
	for _, want := range []string{"Gateway_AA", "Step 2", "Browser & Login"} {
		if !strings.Contains(joined, want) {
			t.Errorf("observer output missing %q:\n%s", want, joined)
		}
	}
}
