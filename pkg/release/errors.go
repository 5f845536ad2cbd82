package release

import (
	"errors"
	"fmt"
)

// ErrUnsupportedPlatform is returned for platforms without a published
// release archive.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// ErrEntryNotFound is returned when a zip archive has no server executable.
var ErrEntryNotFound = errors.New("server executable not found in archive")

// FetchError wraps any failure to download or extract a release.
type FetchError struct {
	Target Target
	URL    string
	Err    error
}

func (err *FetchError) Error() string {
	if err.URL == "" {
		return fmt.Sprintf("fetch %s: %s", err.Target, err.Err)
	}

	return fmt.Sprintf("fetch %s from %s: %s", err.Target, err.URL, err.Err)
}

func (err *FetchError) Unwrap() error {
	return err.Err
}

// StatusError is returned for a non-2xx response.
type StatusError struct {
	StatusCode int
	Status     string
}

func (err StatusError) Error() string {
	return fmt.Sprintf("unexpected response: %s", err.Status)
}
