package wifi

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/lorawan-tools/gwprov/internal/logging"
)

// runner abstracts OS command execution so the adapters can be tested
// against canned command output.
type runner interface {
	run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)
}

// execRunner is the real runner backed by os/exec.
type execRunner struct{}

func (execRunner) run(ctx context.Context, name string, args ...string) (string, string, error) {
	var outBuf, errBuf bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	stdout, stderr := outBuf.String(), errBuf.String()
	logging.LogCommand(name, args, stdout, stderr, err)

	if err != nil {
		return stdout, stderr, fmt.Errorf("%s failed: %w", name, err)
	}
	return stdout, stderr, nil
}

// joinError wraps a failed join command so callers can report the SSID.
type joinError struct {
	SSID string
	Err  error
}

func (e *joinError) Error() string {
	return fmt.Sprintf("failed to join network %q: %v", e.SSID, e.Err)
}

func (e *joinError) Unwrap() error {
	return e.Err
}
