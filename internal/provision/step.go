package provision

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lorawan-tools/gwprov/internal/browser"
	"github.com/lorawan-tools/gwprov/internal/config"
	"github.com/lorawan-tools/gwprov/internal/logging"
	"github.com/lorawan-tools/gwprov/internal/wifi"
)

// Step is one entry in the fixed provisioning sequence. Steps execute in
// ascending index order; the index doubles as the resume and skip
// granularity.
type Step struct {
	Index       int
	Name        string
	Description string

	// Precondition, when set, is checked before the step prompts or
	// touches the device. A ConfigError from it fails the device
	// without consuming a retry.
	Precondition func(cfg *config.Config) error

	Run func(ctx context.Context, env *Env) error
}

// Settle blocks for the given duration. The device UI gives no completion
// signal after state-changing actions, so steps wait a fixed interval
// instead. Injectable so tests run without sleeping.
type Settle func(d time.Duration)

// Env carries the capabilities one attempt's steps execute against. A
// fresh Env is created per attempt and its session is torn down on every
// exit path.
type Env struct {
	SSID    string
	Config  *config.Config
	Adapter wifi.Adapter
	Open    browser.Opener
	Settle  Settle

	// Resolve, when set, supplies the gateway admin URL if the
	// configuration does not name one. Typically backed by mDNS
	// discovery on the gateway's own network.
	Resolve func(ctx context.Context) (string, error)

	session browser.Session
}

// Session returns the attempt's browser session, opening one on first
// use. Opening lazily keeps resumed attempts working when the start step
// is past the login step.
func (e *Env) Session(ctx context.Context) (browser.Session, error) {
	if e.session != nil {
		return e.session, nil
	}
	session, err := e.Open(ctx)
	if err != nil {
		return nil, err
	}
	e.session = session
	logging.LogSession(e.SSID, "opened")
	return session, nil
}

// CloseSession tears down the attempt's browser session if one is open.
// Safe to call multiple times.
func (e *Env) CloseSession() {
	if e.session == nil {
		return
	}
	if err := e.session.Close(); err != nil {
		logging.Warn("Error closing browser session",
			zap.String("ssid", e.SSID),
			zap.Error(err))
	}
	e.session = nil
	logging.LogSession(e.SSID, "closed")
}

func (e *Env) settle(d time.Duration) {
	if e.Settle != nil {
		e.Settle(d)
		return
	}
	time.Sleep(d)
}
