package provision

import "context"

// DeviceResult records one gateway's outcome within a fleet run.
type DeviceResult struct {
	SSID      string
	Succeeded bool
}

// Summary is the tally of a fleet run. Results holds one entry per
// attempted gateway, in run order.
type Summary struct {
	Attempted int
	Succeeded int
	Results   []DeviceResult
}

// AllSucceeded reports whether every attempted gateway provisioned
// cleanly.
func (s Summary) AllSucceeded() bool {
	return s.Attempted > 0 && s.Succeeded == s.Attempted
}

// GatewayRunner provisions one gateway. Satisfied by *Workflow.
type GatewayRunner interface {
	Run(ctx context.Context, ssid string) bool
}

// ContinuePrompter asks whether to keep going after a gateway fails.
type ContinuePrompter interface {
	ContinueAfterFailure(ssid string) bool
}

// Fleet runs the provisioning workflow over a selected set of gateways,
// one at a time, collecting a pass/fail tally.
type Fleet struct {
	Runner   GatewayRunner
	Prompter ContinuePrompter
}

// Run provisions each gateway in order. After a failure it consults the
// prompter before moving on; gateways skipped by an abort are not counted
// as attempted. A nil prompter always continues.
func (f *Fleet) Run(ctx context.Context, ssids []string) Summary {
	var summary Summary

	for i, ssid := range ssids {
		summary.Attempted++
		ok := f.Runner.Run(ctx, ssid)
		summary.Results = append(summary.Results, DeviceResult{SSID: ssid, Succeeded: ok})

		if ok {
			summary.Succeeded++
			continue
		}

		remaining := len(ssids) - i - 1
		if remaining > 0 && f.Prompter != nil && !f.Prompter.ContinueAfterFailure(ssid) {
			break
		}
	}

	return summary
}
