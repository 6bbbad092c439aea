package provision

import (
	"context"
	"fmt"
	"testing"
)

// fakeGatewayRunner maps SSIDs to outcomes and records run order.
type fakeGatewayRunner struct {
	outcomes map[string]bool
	ran      []string
}

func (r *fakeGatewayRunner) Run(ctx context.Context, ssid string) bool {
	r.ran = append(r.ran, ssid)
	return r.outcomes[ssid]
}

// fakeContinuePrompter answers ContinueAfterFailure from a script.
type fakeContinuePrompter struct {
	answers []bool
	asked   []string
}

func (p *fakeContinuePrompter) ContinueAfterFailure(ssid string) bool {
	p.asked = append(p.asked, ssid)
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer
}

func TestFleet_AllSucceed(t *testing.T) {
	runner := &fakeGatewayRunner{outcomes: map[string]bool{
		"Gateway_AA": true,
		"Gateway_BB": true,
	}}
	fleet := &Fleet{Runner: runner}

	summary := fleet.Run(context.Background(), []string{"Gateway_AA", "Gateway_BB"})

	if summary.Attempted != 2 || summary.Succeeded != 2 {
		t.Errorf("summary = %d/%d, want 2/2", summary.Succeeded, summary.Attempted)
	}
	if !summary.AllSucceeded() {
		t.Error("AllSucceeded() = false, want true")
	}
	if fmt.Sprint(runner.ran) != fmt.Sprint([]string{"Gateway_AA", "Gateway_BB"}) {
		t.Errorf("run order = %v", runner.ran)
	}
}

func TestFleet_FailureThenContinue(t *testing.T) {
	runner := &fakeGatewayRunner{outcomes: map[string]bool{
		"Gateway_AA": false,
		"Gateway_BB": true,
	}}
	prompter := &fakeContinuePrompter{answers: []bool{true}}
	fleet := &Fleet{Runner: runner, Prompter: prompter}

	summary := fleet.Run(context.Background(), []string{"Gateway_AA", "Gateway_BB"})

	if summary.Attempted != 2 || summary.Succeeded != 1 {
		t.Errorf("summary = %d/%d, want 1/2", summary.Succeeded, summary.Attempted)
	}
	if fmt.Sprint(prompter.asked) != fmt.Sprint([]string{"Gateway_AA"}) {
		t.Errorf("prompted for = %v, want [Gateway_AA]", prompter.asked)
	}
	if summary.AllSucceeded() {
		t.Error("AllSucceeded() = true, want false")
	}
}

func TestFleet_FailureThenAbort(t *testing.T) {
	runner := &fakeGatewayRunner{outcomes: map[string]bool{
		"Gateway_AA": false,
		"Gateway_BB": true,
		"Gateway_CC": true,
	}}
	prompter := &fakeContinuePrompter{answers: []bool{false}}
	fleet := &Fleet{Runner: runner, Prompter: prompter}

	summary := fleet.Run(context.Background(), []string{"Gateway_AA", "Gateway_BB", "Gateway_CC"})

	if summary.Attempted != 1 {
		t.Errorf("Attempted = %d, want 1 (abort skips the rest)", summary.Attempted)
	}
	if len(runner.ran) != 1 {
		t.Errorf("ran = %v, want just Gateway_AA", runner.ran)
	}
	if len(summary.Results) != 1 || summary.Results[0].Succeeded {
		t.Errorf("Results = %v, want single failed entry", summary.Results)
	}
}

func TestFleet_FailureOnLastDeviceDoesNotPrompt(t *testing.T) {
	runner := &fakeGatewayRunner{outcomes: map[string]bool{
		"Gateway_AA": true,
		"Gateway_BB": false,
	}}
	prompter := &fakeContinuePrompter{}
	fleet := &Fleet{Runner: runner, Prompter: prompter}

	summary := fleet.Run(context.Background(), []string{"Gateway_AA", "Gateway_BB"})

	if len(prompter.asked) != 0 {
		t.Errorf("prompted for = %v, want none after the last device", prompter.asked)
	}
	if summary.Attempted != 2 || summary.Succeeded != 1 {
		t.Errorf("summary = %d/%d, want 1/2", summary.Succeeded, summary.Attempted)
	}
}

func TestFleet_NilPrompterContinues(t *testing.T) {
	runner := &fakeGatewayRunner{outcomes: map[string]bool{
		"Gateway_AA": false,
		"Gateway_BB": true,
	}}
	fleet := &Fleet{Runner: runner}

	summary := fleet.Run(context.Background(), []string{"Gateway_AA", "Gateway_BB"})

	if summary.Attempted != 2 {
		t.Errorf("Attempted = %d, want 2", summary.Attempted)
	}
}

func TestSummary_AllSucceededEmptyRun(t *testing.T) {
	if (Summary{}).AllSucceeded() {
		t.Error("empty run must not report success")
	}
}
