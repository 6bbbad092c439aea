package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lorawan-tools/gwprov/internal/provision"
	"github.com/lorawan-tools/gwprov/internal/wifi"
)

// Console prompts the operator on a terminal. It implements
// provision.Prompter and provision.ContinuePrompter.
type Console struct {
	in  *bufio.Reader
	out io.Writer

	// Interactive enables the per-step pause prompt. When false,
	// StepDisposition always answers Continue without asking.
	Interactive bool
}

// NewConsole builds a Console over the given streams.
func NewConsole(in io.Reader, out io.Writer, interactive bool) *Console {
	return &Console{
		in:          bufio.NewReader(in),
		out:         out,
		Interactive: interactive,
	}
}

// StepDisposition presents the step and asks what to do with it. A pause
// answer blocks until the operator confirms the manual work is done.
// Invalid input is re-prompted.
func (c *Console) StepDisposition(step provision.Step) (provision.Disposition, error) {
	if !c.Interactive {
		return provision.Continue, nil
	}

	fmt.Fprintf(c.out, "\n%s\n", StepNameStyle.Render(fmt.Sprintf("Step %d: %s", step.Index, step.Name)))
	fmt.Fprintf(c.out, "%s\n\n", StepDescriptionStyle.Render(step.Description))
	fmt.Fprintln(c.out, "Options:")
	fmt.Fprintln(c.out, "  'c' or 'continue' - Continue with automation")
	fmt.Fprintln(c.out, "  'p' or 'pause'    - Pause here (you handle this step manually)")
	fmt.Fprintln(c.out, "  's' or 'skip'     - Skip this step entirely")
	fmt.Fprintln(c.out, "  'q' or 'quit'     - Quit provisioning this gateway")

	for {
		fmt.Fprint(c.out, PromptStyle.Render("What would you like to do? "))
		line, err := c.readLine()
		if err != nil {
			return provision.Continue, err
		}

		switch line {
		case "c", "continue":
			return provision.Continue, nil
		case "p", "pause":
			fmt.Fprintln(c.out, "Pausing for manual work. Press Enter when you're done...")
			if _, err := c.readLine(); err != nil {
				return provision.Continue, err
			}
			fmt.Fprintln(c.out, "Resuming automation...")
			return provision.ManualDone, nil
		case "s", "skip":
			fmt.Fprintln(c.out, "Skipping this step...")
			return provision.Skip, nil
		case "q", "quit":
			return provision.Quit, nil
		default:
			fmt.Fprintln(c.out, ErrorStyle.Render("Invalid choice. Please enter 'c', 'p', 's', or 'q'"))
		}
	}
}

// ContinueAfterFailure asks whether to keep provisioning the remaining
// gateways after one failed. Read errors abort the run.
func (c *Console) ContinueAfterFailure(ssid string) bool {
	fmt.Fprintf(c.out, "%s\n", ErrorStyle.Render(fmt.Sprintf("%s Failed to provision %s", FailureMarker, ssid)))
	fmt.Fprint(c.out, PromptStyle.Render("Continue with remaining gateways? (y/n): "))

	line, err := c.readLine()
	if err != nil {
		return false
	}
	return line == "y" || line == "yes"
}

// SelectGateways presents the scanned networks and reads a selection.
// Invalid input is re-prompted; a read error returns nil.
func (c *Console) SelectGateways(networks []wifi.Network) []string {
	if len(networks) == 0 {
		return nil
	}

	fmt.Fprintf(c.out, "\n%s\n", TitleStyle.Render("Found Gateway Networks:"))
	openCount := 0
	for i, network := range networks {
		securityStyle := SecuredSecurityStyle
		if network.Open() {
			securityStyle = OpenSecurityStyle
			openCount++
		}
		fmt.Fprintf(c.out, "%2d. %s (Signal: %s, Security: %s)\n",
			i+1, network.SSID, network.Signal, securityStyle.Render(network.Security))
	}
	fmt.Fprintf(c.out, "\n%d open, %d secured\n", openCount, len(networks)-openCount)

	fmt.Fprintln(c.out, "\nSelect gateways to configure:")
	fmt.Fprintln(c.out, "  Enter numbers separated by commas (e.g., 1,3,5)")
	fmt.Fprintln(c.out, "  Enter 'all' for all gateways")
	fmt.Fprintf(c.out, "  Enter 'allnone' for all open gateways (%d networks)\n", openCount)

	for {
		fmt.Fprint(c.out, PromptStyle.Render("> "))
		line, err := c.readLine()
		if err != nil {
			return nil
		}

		ssids, err := provision.ParseSelection(line, networks)
		if err != nil {
			fmt.Fprintln(c.out, ErrorStyle.Render(err.Error()))
			continue
		}
		return ssids
	}
}

func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}
