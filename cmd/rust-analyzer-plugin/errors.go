package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// NiceError is an error that is able to provide some extra guidance to the
// user.
type NiceError interface {
	error

	NiceError(io.Writer) error
}

type FlagError struct {
	Err   error
	Flags *pflag.FlagSet
}

func (err FlagError) Error() string {
	return err.Err.Error()
}

func (err FlagError) Unwrap() error {
	return err.Err
}

func (err FlagError) NiceError(w io.Writer) error {
	fmt.Fprintf(w, "\x1b[31m%s\x1b[0m\n", err)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "flags:")

	// copy so the caller's output isn't changed
	cp := *err.Flags
	cp.SetOutput(w)
	cp.PrintDefaults()

	return nil
}

// errUnavailable is returned by resolve after a warning has already been
// printed.
var errUnavailable = errors.New("no server available")

func WriteError(w io.Writer, err error) {
	if errors.Is(err, errUnavailable) {
		return
	}

	var nice NiceError
	if errors.As(err, &nice) {
		if metaErr := nice.NiceError(w); metaErr != nil {
			fmt.Fprintf(w, "\x1b[31merrored while erroring: %s\x1b[0m\n", metaErr)
			fmt.Fprintf(w, "\x1b[31moriginal error: %T: %s\x1b[0m\n", err, err)
		}

		return
	}

	fmt.Fprintf(w, "\x1b[31m%s\x1b[0m\n", err)
}
