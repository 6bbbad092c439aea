package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lorawan-tools/gwprov/internal/browser"
	"github.com/lorawan-tools/gwprov/internal/config"
	"github.com/lorawan-tools/gwprov/internal/discovery"
	"github.com/lorawan-tools/gwprov/internal/logging"
	"github.com/lorawan-tools/gwprov/internal/provision"
	"github.com/lorawan-tools/gwprov/internal/ui"
	"github.com/lorawan-tools/gwprov/internal/wifi"
)

// Provisioning flags
var (
	headless        bool
	stepTimeout     int
	interactive     bool
	startFrom       int
	retries         int
	configPath      string
	usePicker       bool
	retryFromFailed bool
)

func init() {
	rootCmd.Flags().BoolVar(&headless, "headless", false, "Run browser in headless mode")
	rootCmd.Flags().IntVar(&stepTimeout, "timeout", 30, "Timeout for each configuration step (seconds)")
	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Enable interactive mode with pause/resume capability")
	rootCmd.Flags().IntVar(&startFrom, "start-from", 1, "Start from specific step (1-7)")
	rootCmd.Flags().IntVar(&retries, "retries", provision.DefaultRetries, "Whole-attempt retries per gateway")
	rootCmd.Flags().StringVar(&configPath, "config", config.DefaultPath, "Path to the configuration file")
	rootCmd.Flags().BoolVar(&usePicker, "picker", false, "Select gateways with the interactive picker instead of a text prompt")
	rootCmd.Flags().BoolVar(&retryFromFailed, "retry-from-failed", false, "Resume retries at the failed step instead of restarting from the start step")
}

func runProvision(cmd *cobra.Command, args []string) error {
	if startFrom < 1 || startFrom > 7 {
		return fmt.Errorf("--start-from must be between 1 and 7, got %d", startFrom)
	}

	// Silent by default; set GWPROV_LOG_LEVEL=debug for detailed logs
	if err := logging.InitializeFromEnv(); err != nil {
		_ = err
	}
	defer logging.Sync()

	// A broken or missing config file is fatal before any gateway is
	// touched
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Println(ui.TitleStyle.Render("UG63 Gateway Provisioning Bot"))
	fmt.Println(ui.TitleStyle.Render("=============================="))
	if interactive {
		fmt.Println("\nInteractive mode enabled: you can pause at each step to do manual work")
	}
	if startFrom > 1 {
		fmt.Printf("\nStarting from step %d\n", startFrom)
	}

	adapter := wifi.Native()

	fmt.Println("\nScanning for Gateway networks...")
	networks := adapter.Scan(ctx, "Gateway_")
	if len(networks) == 0 {
		fmt.Println(ui.ErrorStyle.Render("No Gateway networks found. Please make sure gateways are powered on and broadcasting."))
		return nil
	}

	console := ui.NewConsole(os.Stdin, os.Stdout, interactive)

	var selected []string
	if usePicker {
		selected, err = ui.RunPicker(networks)
		if err != nil {
			return err
		}
	} else {
		selected = console.SelectGateways(networks)
	}
	if len(selected) == 0 {
		fmt.Println("No gateways selected. Exiting.")
		return nil
	}
	fmt.Printf("\nSelected %d gateway(s) for configuration\n", len(selected))

	opener := browser.NewOpener(browser.Options{
		Headless:      headless,
		ActionTimeout: time.Duration(stepTimeout) * time.Second,
	})

	workflow := provision.NewWorkflow(cfg, adapter, opener, provision.Options{
		StartStep:       startFrom,
		Retries:         retries,
		RetryFromFailed: retryFromFailed,
		ResolveAdminURL: resolveAdminURL(cfg),
	}, console, ui.StepObserver{Out: printf}, nil)

	fleet := &provision.Fleet{Runner: workflow, Prompter: console}
	summary := fleet.Run(ctx, selected)

	fmt.Println()
	fmt.Println(ui.RenderSummary(summary, ui.GetTerminalWidth()))

	if !summary.AllSucceeded() {
		return fmt.Errorf("%d of %d gateways failed", summary.Attempted-summary.Succeeded, summary.Attempted)
	}
	return nil
}

// resolveAdminURL backs the workflow's address fallback with mDNS
// discovery on the gateway's own network.
func resolveAdminURL(cfg *config.Config) func(ctx context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		scanner := discovery.NewScanner()
		scanner.Timeout = 5 * time.Second
		gateway, err := scanner.ResolveAdminAddress(ctx)
		if err != nil {
			return "", err
		}
		scheme := cfg.GetString(config.KeyWebProtocol, "http")
		return gateway.AdminURL(scheme), nil
	}
}

func printf(format string, args ...any) {
	fmt.Printf(format, args...)
}
