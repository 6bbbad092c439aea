package browser

import (
	"errors"
	"fmt"
)

// UIActionError reports a failed interaction with the device's web UI:
// a selector that never appeared, an element that would not accept the
// action, or a protocol-level failure underneath.
type UIActionError struct {
	// Action is the attempted operation ("navigate", "wait", "fill",
	// "click", "select").
	Action string

	// Selector is the CSS selector involved, or the URL for navigation.
	Selector string

	// Reason is a human-readable explanation.
	Reason string

	// Err is the underlying error, if any.
	Err error
}

func (e *UIActionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %q: %s: %v", e.Action, e.Selector, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %q: %s", e.Action, e.Selector, e.Reason)
}

func (e *UIActionError) Unwrap() error {
	return e.Err
}

// IsUIActionError reports whether err is (or wraps) a UIActionError.
func IsUIActionError(err error) bool {
	var uiErr *UIActionError
	return errors.As(err, &uiErr)
}

func newActionError(action, selector, reason string, err error) *UIActionError {
	return &UIActionError{Action: action, Selector: selector, Reason: reason, Err: err}
}
