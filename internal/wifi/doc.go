// Package wifi provides access point scanning and joining on top of the
// platform's own networking utilities.
//
// Each platform gets its own Adapter implementation (system_profiler +
// networksetup on macOS, iwlist + nmcli on Linux, netsh on Windows),
// selected once at startup via ForPlatform or Native. Call sites never
// branch on the operating system.
//
// The contract is deliberately forgiving: Scan logs failures and
// returns an empty result, and Connect reports success only after a
// fixed settle interval has passed, because the join command returns
// before the link is actually usable.
package wifi
