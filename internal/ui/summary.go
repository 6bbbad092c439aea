package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lorawan-tools/gwprov/internal/provision"
)

// RenderSummary renders the fleet run tally as a bordered box.
func RenderSummary(summary provision.Summary, width int) string {
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	var lines []string
	lines = append(lines, TitleStyle.Render("Provisioning Summary"))
	lines = append(lines, "")

	for _, result := range summary.Results {
		if result.Succeeded {
			lines = append(lines, SuccessStyle.Render(fmt.Sprintf("%s %s", SuccessMarker, result.SSID)))
		} else {
			lines = append(lines, ErrorStyle.Render(fmt.Sprintf("%s %s", FailureMarker, result.SSID)))
		}
	}
	lines = append(lines, "")

	tally := fmt.Sprintf("Successfully configured: %d/%d gateways", summary.Succeeded, summary.Attempted)
	switch {
	case summary.AllSucceeded():
		lines = append(lines, SuccessStyle.Render(tally))
	case summary.Succeeded > 0:
		lines = append(lines, lipgloss.NewStyle().Foreground(WarningColor).Render(tally))
	default:
		lines = append(lines, ErrorStyle.Render(tally))
	}

	return SummaryBoxStyle(width).Render(strings.Join(lines, "\n"))
}

// StepObserver prints workflow progress to the terminal. It wraps the
// structured log observer so events land in both places.
type StepObserver struct {
	provision.LogObserver
	Out func(format string, args ...any)
}

func (o StepObserver) printf(format string, args ...any) {
	if o.Out != nil {
		o.Out(format, args...)
	}
}

func (o StepObserver) AttemptStarted(ssid string, attempt, retries int) {
	o.LogObserver.AttemptStarted(ssid, attempt, retries)
	if attempt == 0 {
		o.printf("%s\n", TitleStyle.Render(fmt.Sprintf("Starting configuration for %s", ssid)))
	} else {
		o.printf("%s\n", PromptStyle.Render(fmt.Sprintf("Retry attempt %d/%d for %s", attempt, retries, ssid)))
	}
}

func (o StepObserver) StepStarted(ssid string, step provision.Step) {
	o.LogObserver.StepStarted(ssid, step)
	o.printf("  Step %d: %s...\n", step.Index, step.Name)
}

func (o StepObserver) StepCompleted(ssid string, step provision.Step) {
	o.LogObserver.StepCompleted(ssid, step)
	o.printf("  %s\n", SuccessStyle.Render(fmt.Sprintf("%s %s", SuccessMarker, step.Name)))
}

func (o StepObserver) StepSkipped(ssid string, step provision.Step) {
	o.LogObserver.StepSkipped(ssid, step)
	o.printf("  Skipped %s (assuming manual completion)\n", step.Name)
}

func (o StepObserver) StepFailed(ssid string, step provision.Step, err error) {
	o.LogObserver.StepFailed(ssid, step, err)
	o.printf("  %s\n", ErrorStyle.Render(fmt.Sprintf("%s %s: %v", FailureMarker, step.Name, err)))
}

func (o StepObserver) DeviceDone(ssid string, succeeded bool) {
	o.LogObserver.DeviceDone(ssid, succeeded)
	if succeeded {
		o.printf("%s\n", SuccessStyle.Render(fmt.Sprintf("Successfully configured %s", ssid)))
	}
}
