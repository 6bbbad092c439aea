package browser

import (
	"context"
	"time"
)

const (
	// DefaultActionTimeout bounds a single element wait or interaction.
	DefaultActionTimeout = 10 * time.Second

	// DefaultNavigateTimeout bounds a page navigation. The gateway's
	// embedded web server can take a long time to serve the first page
	// after a WiFi join.
	DefaultNavigateTimeout = 30 * time.Second

	// elementPollInterval is how often WaitFor re-checks the DOM.
	elementPollInterval = 250 * time.Millisecond
)

// Session drives a single remote device's web UI. One session maps to
// one browser page; it is opened at login and torn down on every
// workflow exit path.
//
// All failures surface as *UIActionError so the workflow can treat any
// UI problem uniformly as "this step failed".
type Session interface {
	// Navigate loads url and waits for the document to finish loading.
	Navigate(ctx context.Context, url string) error

	// WaitFor blocks until an element matching selector is present, or
	// the action timeout elapses.
	WaitFor(ctx context.Context, selector string) error

	// Fill sets the value of the input matching selector and fires the
	// input events the page's scripts listen for.
	Fill(ctx context.Context, selector, value string) error

	// Click clicks the first element matching selector. When text is
	// non-empty only elements whose content contains it are considered.
	Click(ctx context.Context, selector, text string) error

	// ClickVisibleUnselected scans every element matching selector and
	// text, and clicks the first that is visible and not already the
	// active selection. The gateway UI renders duplicate and stale
	// option nodes, so clicking the first bare match is not safe.
	ClickVisibleUnselected(ctx context.Context, selector, text string) error

	// Close tears the browser down. Safe to call more than once.
	Close() error
}

// Options configures a new browser session.
type Options struct {
	// Headless runs the browser without a visible window.
	Headless bool

	// ActionTimeout overrides DefaultActionTimeout when positive.
	ActionTimeout time.Duration

	// NavigateTimeout overrides DefaultNavigateTimeout when positive.
	NavigateTimeout time.Duration
}

// Opener creates sessions. The workflow holds an Opener rather than a
// Session because a session must not outlive a single attempt.
type Opener func(ctx context.Context) (Session, error)

// NewOpener returns an Opener that launches a local Chrome or Chromium
// and attaches to it over the DevTools protocol.
func NewOpener(opts Options) Opener {
	return func(ctx context.Context) (Session, error) {
		return Open(ctx, opts)
	}
}
