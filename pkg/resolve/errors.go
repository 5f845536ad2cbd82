package resolve

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is wrapped by a Strategy that did not find a server, allowing
// the next one to try.
var ErrNotFound = errors.New("server not found")

// ErrNotRunnable is returned by a Prober when the command cannot be started
// or exits unsuccessfully.
var ErrNotRunnable = errors.New("not runnable")

// NotFound marks reason as a deferral to the next Strategy.
func NotFound(reason error) error {
	if reason == nil {
		return ErrNotFound
	}

	return fmt.Errorf("%w: %w", ErrNotFound, reason)
}

// UnavailableError means no server could be found or obtained. It is shown
// to the user as a warning rather than treated as an internal failure.
type UnavailableError struct {
	// Message is the user-facing text.
	Message string

	// Err holds the reasons collected along the way.
	Err error
}

func (err *UnavailableError) Error() string {
	if err.Err == nil {
		return err.Message
	}

	return fmt.Sprintf("%s (%s)", err.Message, oneLine(err.Err.Error()))
}

func (err *UnavailableError) Unwrap() error {
	return err.Err
}

// IsUnavailable reports whether err means the server could not be found or
// obtained.
func IsUnavailable(err error) bool {
	var unavailable *UnavailableError
	return errors.As(err, &unavailable)
}

func oneLine(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
