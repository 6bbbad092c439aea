package provision

import (
	"go.uber.org/zap"

	"github.com/lorawan-tools/gwprov/internal/logging"
)

// Observer receives progress events from the workflow and fleet runner.
// The core stays free of terminal I/O; presentation lives behind this
// interface.
type Observer interface {
	AttemptStarted(ssid string, attempt, retries int)
	StepStarted(ssid string, step Step)
	StepCompleted(ssid string, step Step)
	StepSkipped(ssid string, step Step)
	StepManual(ssid string, step Step)
	StepFailed(ssid string, step Step, err error)
	DeviceDone(ssid string, succeeded bool)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) AttemptStarted(string, int, int) {}
func (NopObserver) StepStarted(string, Step)        {}
func (NopObserver) StepCompleted(string, Step)      {}
func (NopObserver) StepSkipped(string, Step)        {}
func (NopObserver) StepManual(string, Step)         {}
func (NopObserver) StepFailed(string, Step, error)  {}
func (NopObserver) DeviceDone(string, bool)         {}

// LogObserver writes progress events to the structured log.
type LogObserver struct{}

func (LogObserver) AttemptStarted(ssid string, attempt, retries int) {
	if attempt > 0 {
		logging.LogAttempt(ssid, attempt, retries-attempt)
	}
}

func (LogObserver) StepStarted(ssid string, step Step) {
	logging.LogStep(ssid, step.Index, step.Name, "started")
}

func (LogObserver) StepCompleted(ssid string, step Step) {
	logging.LogStep(ssid, step.Index, step.Name, "completed")
}

func (LogObserver) StepSkipped(ssid string, step Step) {
	logging.LogStep(ssid, step.Index, step.Name, "skipped")
}

func (LogObserver) StepManual(ssid string, step Step) {
	logging.LogStep(ssid, step.Index, step.Name, "manual")
}

func (LogObserver) StepFailed(ssid string, step Step, err error) {
	logging.Error("Provisioning step failed",
		zap.String("ssid", ssid),
		zap.Int("step", step.Index),
		zap.String("name", step.Name),
		zap.Error(err))
}

func (LogObserver) DeviceDone(ssid string, succeeded bool) {
	logging.Info("Gateway provisioning finished",
		zap.String("ssid", ssid),
		zap.Bool("succeeded", succeeded))
}
