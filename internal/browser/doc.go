// Package browser drives the gateway's embedded web UI through a real
// browser.
//
// A Session wraps one Chrome/Chromium page attached over the DevTools
// protocol (launched with a debugging port, driven over its websocket).
// The surface is deliberately tiny: navigate, wait for a selector,
// fill, click, and a defensive "click the first visible unselected
// option" for dropdowns that render stale duplicate nodes.
//
// The gateway UI gives no completion signal for most state changes, so
// element presence is polled rather than event-driven, and callers
// insert settle delays after save-and-apply actions.
//
// Every failure is a *UIActionError carrying the selector and reason;
// the provisioning workflow treats any of them as a failed step.
package browser
