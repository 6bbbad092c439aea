// Package logging provides structured logging for the gwprov tool.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the provisioning workflow. It provides both general
// logging functions and specialized functions for domain events.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (OS command output, CDP traffic, settle waits)
//   - Info: Normal operations (step transitions, device results)
//   - Warn: Non-fatal issues (failed scans, attempt retries)
//   - Error: Fatal issues (startup failures, configuration errors)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Gateway selected",
//	    zap.String("ssid", "Gateway_6222F1"),
//	    zap.String("security", "None"),
//	)
//
// # Specialized Logging
//
// The package provides domain-specific logging functions:
//
//	logging.LogCommand("nmcli", args, stdout, stderr, err)
//	logging.LogStep(ssid, 3, "ChirpStack Config", "started")
//	logging.LogAttempt(ssid, 1, 1)
//	logging.LogSession("http://192.168.1.1", "closed")
//
// # Configuration
//
// Logging is silent by default so interactive prompts stay readable.
// Set GWPROV_LOG_LEVEL=debug to see every OS command and browser action.
//
// Initialize logging at startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
