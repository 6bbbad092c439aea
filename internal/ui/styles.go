package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette for the provisioning CLI
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - headers, borders
	SuccessColor = lipgloss.Color("#43BF6D") // Green - success, open networks
	ErrorColor   = lipgloss.Color("#FF5555") // Red - errors, failures
	WarningColor = lipgloss.Color("#FFA500") // Orange - secured networks, retries
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Layout constants
const (
	MinTerminalWidth = 60  // Minimum supported terminal width
	MaxContentWidth  = 100 // Maximum content width before capping
)

// Shared styles
var (
	// TitleStyle is for the banner and section titles
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	// StepNameStyle is for a step's name in pause prompts
	StepNameStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	// StepDescriptionStyle is for a step's description text
	StepDescriptionStyle = lipgloss.NewStyle().
				Foreground(MutedColor)

	// PromptStyle is for input prompts
	PromptStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// SuccessStyle is for success lines
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// ErrorStyle is for error lines
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// OpenSecurityStyle marks networks with no encryption
	OpenSecurityStyle = lipgloss.NewStyle().
				Foreground(SuccessColor)

	// SecuredSecurityStyle marks networks with encryption enabled
	SecuredSecurityStyle = lipgloss.NewStyle().
				Foreground(WarningColor)

	// SelectedItemStyle highlights the cursor row in the picker
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)
)

// Result markers
const (
	SuccessMarker = "✓"
	FailureMarker = "✗"
)

// GetTerminalWidth returns the current terminal width, with fallback
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}

// SummaryBoxStyle returns the border style for the fleet summary box
func SummaryBoxStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Width(width - 2).
		Padding(0, 2)
}
