// Package provision implements the gateway provisioning workflow.
//
// One Workflow drives a single gateway through a fixed seven-step
// sequence: join its WiFi access point, log into the embedded web
// interface, point the packet forwarder at ChirpStack, rotate the admin
// password, re-login, switch the WAN mode to Cellular, and secure the
// access point. A failed step tears down the browser session and retries
// the whole attempt from the start step, up to a retry budget.
//
// Fleet iterates the workflow over a selected set of discovered gateways,
// collecting a pass/fail Summary and offering the operator a chance to
// abort after a failure.
//
// The workflow core performs no terminal I/O. Prompting goes through the
// Prompter interfaces and progress reporting through Observer, so the
// state machine is testable with fakes.
package provision
