// Package ui implements the terminal surface of the provisioning CLI.
//
// It holds the shared lipgloss color palette and styles, the line-based
// operator prompts (step dispositions, gateway selection, continue-after-
// failure), the fleet summary rendering, and an optional Bubble Tea
// picker for choosing gateways interactively.
//
// The provisioning core never prints; it reports through the observer and
// prompter interfaces this package implements.
package ui
