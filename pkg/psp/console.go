package psp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vito/rust-analyzer-plugin/pkg/ioctx"
)

// ConsoleHost is a Host for running outside an editor. The server reference
// is printed to stdout and everything else to stderr, both from ctx.
type ConsoleHost struct {
	// Verbose includes the document selector and options in the output.
	Verbose bool

	// Started is set once StartLspServer has been called.
	Started bool

	// Warned is set once a warning or error message has been shown.
	Warned bool
}

var _ Host = (*ConsoleHost)(nil)

func (host *ConsoleHost) StartLspServer(ctx context.Context, params StartLspServerParams) error {
	host.Started = true

	out := ioctx.StdoutFromContext(ctx)

	if !host.Verbose {
		_, err := fmt.Fprintln(out, params.ServerURI)
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(params)
}

func (host *ConsoleHost) ShowMessage(ctx context.Context, typ MessageType, msg string) error {
	if typ == MessageWarning || typ == MessageError {
		host.Warned = true
	}

	_, err := fmt.Fprintf(ioctx.StderrFromContext(ctx), "%s: %s\n", typ, msg)
	return err
}

func (host *ConsoleHost) Stderr(ctx context.Context, msg string) {
	WriteStderr(ctx, msg)
}
