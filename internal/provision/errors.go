package provision

import (
	"errors"
	"fmt"
)

// ErrQuit is returned when the operator aborts the current attempt at an
// interactive pause point. It terminates the attempt immediately and is
// never retried.
var ErrQuit = errors.New("operator quit")

// ConfigError reports a required configuration value that is absent. It is
// a hard stop for the device being provisioned and does not consume a
// retry.
type ConfigError struct {
	Key string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("required configuration value %q is not set", e.Key)
}

// IsConfigError reports whether err is a missing-configuration failure.
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}
