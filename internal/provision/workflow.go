package provision

import (
	"context"
	"errors"
	"time"

	"github.com/lorawan-tools/gwprov/internal/browser"
	"github.com/lorawan-tools/gwprov/internal/config"
	"github.com/lorawan-tools/gwprov/internal/wifi"
)

// Disposition is the operator's choice at an interactive pause point.
type Disposition int

const (
	// Continue runs the step's automated action.
	Continue Disposition = iota
	// ManualDone means the operator handled the step by hand; the
	// workflow advances as if the action ran.
	ManualDone
	// Skip advances past the step without running its action.
	Skip
	// Quit aborts the whole attempt immediately with no retry.
	Quit
)

// Prompter asks the operator for a disposition before each step. A
// ManualDone result is returned only after the operator has acknowledged
// finishing the manual work. A nil Prompter runs every step unattended.
type Prompter interface {
	StepDisposition(step Step) (Disposition, error)
}

const (
	// DefaultRetries is the number of whole-attempt retries after the
	// first failed execution.
	DefaultRetries = 2

	// DefaultRetryBackoff is the pause before a retry begins.
	DefaultRetryBackoff = 5 * time.Second

	lastStep = 7
)

// Options configures one gateway's provisioning run.
type Options struct {
	// StartStep is the 1-based step to resume from. Steps below it are
	// never executed, in any attempt.
	StartStep int

	// Retries is the whole-attempt retry budget. Zero means a single
	// execution.
	Retries int

	// RetryFromFailed resumes a retry at the step that failed instead
	// of restarting from StartStep. The restart-from-start policy can
	// re-run steps whose effects stuck (a changed admin password makes
	// the original login credentials stale), so this is offered as an
	// opt-in alternative.
	RetryFromFailed bool

	// RetryBackoff is the pause before each retry. Defaults to
	// DefaultRetryBackoff.
	RetryBackoff time.Duration

	// ResolveAdminURL supplies the gateway admin URL when the
	// configuration does not set web_interface.ip_address. Optional.
	ResolveAdminURL func(ctx context.Context) (string, error)
}

// Workflow provisions a single gateway through the fixed step sequence
// with retry, skip, pause-for-manual, resume-from-step, and quit
// semantics.
type Workflow struct {
	steps    []Step
	cfg      *config.Config
	adapter  wifi.Adapter
	open     browser.Opener
	opts     Options
	prompter Prompter
	observer Observer
	settle   Settle
}

// NewWorkflow builds a workflow over the standard step sequence.
// prompter may be nil for unattended runs; observer may be nil to discard
// progress events; settle may be nil to sleep for real.
func NewWorkflow(cfg *config.Config, adapter wifi.Adapter, open browser.Opener, opts Options, prompter Prompter, observer Observer, settle Settle) *Workflow {
	if opts.StartStep < 1 {
		opts.StartStep = 1
	}
	if opts.StartStep > lastStep {
		opts.StartStep = lastStep
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = DefaultRetryBackoff
	}
	if observer == nil {
		observer = NopObserver{}
	}
	if settle == nil {
		settle = time.Sleep
	}
	return &Workflow{
		steps:    Steps(),
		cfg:      cfg,
		adapter:  adapter,
		open:     open,
		opts:     opts,
		prompter: prompter,
		observer: observer,
		settle:   settle,
	}
}

// Run provisions the gateway behind ssid. It returns true on success and
// false when the retry budget is exhausted, a required secret is missing,
// or the operator quits.
func (w *Workflow) Run(ctx context.Context, ssid string) bool {
	from := w.opts.StartStep

	for attempt := 0; ; attempt++ {
		w.observer.AttemptStarted(ssid, attempt, w.opts.Retries)
		if attempt > 0 {
			w.settle(w.opts.RetryBackoff)
		}

		failedAt, err := w.runAttempt(ctx, ssid, from)
		if err == nil {
			w.observer.DeviceDone(ssid, true)
			return true
		}

		// Quit and missing secrets are terminal; neither consumes
		// a retry
		if errors.Is(err, ErrQuit) || IsConfigError(err) {
			w.observer.DeviceDone(ssid, false)
			return false
		}

		if attempt >= w.opts.Retries {
			w.observer.DeviceDone(ssid, false)
			return false
		}

		if w.opts.RetryFromFailed && failedAt > from {
			from = failedAt
		}
	}
}

// runAttempt executes one pass over the step sequence starting at from.
// It returns the index of the failed step along with the failure. The
// attempt's browser session is torn down on every exit path.
func (w *Workflow) runAttempt(ctx context.Context, ssid string, from int) (failedAt int, err error) {
	env := &Env{
		SSID:    ssid,
		Config:  w.cfg,
		Adapter: w.adapter,
		Open:    w.open,
		Settle:  w.settle,
		Resolve: w.opts.ResolveAdminURL,
	}
	defer env.CloseSession()

	for _, step := range w.steps {
		if step.Index < from {
			continue
		}

		if step.Precondition != nil {
			if err := step.Precondition(w.cfg); err != nil {
				w.observer.StepFailed(ssid, step, err)
				return step.Index, err
			}
		}

		disposition := Continue
		if w.prompter != nil {
			disposition, err = w.prompter.StepDisposition(step)
			if err != nil {
				return step.Index, err
			}
		}

		switch disposition {
		case Quit:
			return step.Index, ErrQuit
		case Skip:
			w.observer.StepSkipped(ssid, step)
		case ManualDone:
			w.observer.StepManual(ssid, step)
		default:
			w.observer.StepStarted(ssid, step)
			if err := step.Run(ctx, env); err != nil {
				w.observer.StepFailed(ssid, step, err)
				return step.Index, err
			}
			w.observer.StepCompleted(ssid, step)
		}
	}

	return 0, nil
}
