package psp

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/vito/rust-analyzer-plugin/pkg/ioctx"
	"github.com/vito/rust-analyzer-plugin/pkg/zapctx"
	"go.uber.org/zap"
)

// Host is the set of calls the plugin makes back into the editor.
type Host interface {
	// StartLspServer registers a language server with the host, which then
	// owns its process and protocol.
	StartLspServer(context.Context, StartLspServerParams) error

	// ShowMessage displays a message to the user.
	ShowMessage(context.Context, MessageType, string) error

	// Stderr emits a diagnostic line for the host's plugin log.
	Stderr(context.Context, string)
}

// ConnHost is a Host reached over a JSON-RPC connection.
type ConnHost struct {
	conn *jsonrpc2.Conn
}

var _ Host = (*ConnHost)(nil)

func NewConnHost(conn *jsonrpc2.Conn) *ConnHost {
	return &ConnHost{conn: conn}
}

func (host *ConnHost) StartLspServer(ctx context.Context, params StartLspServerParams) error {
	zapctx.FromContext(ctx).Info("starting language server",
		zap.String("uri", params.ServerURI),
		zap.Strings("args", params.ServerArgs))

	if err := host.conn.Notify(ctx, MethodStartLspServer, params); err != nil {
		return fmt.Errorf("notify %s: %w", MethodStartLspServer, err)
	}

	return nil
}

func (host *ConnHost) ShowMessage(ctx context.Context, typ MessageType, msg string) error {
	zapctx.FromContext(ctx).Debug("show message",
		zap.Stringer("type", typ),
		zap.String("message", msg))

	err := host.conn.Notify(ctx, MethodShowMessage, ShowMessageParams{
		Type:    typ,
		Message: msg,
	})
	if err != nil {
		return fmt.Errorf("notify %s: %w", MethodShowMessage, err)
	}

	return nil
}

func (host *ConnHost) Stderr(ctx context.Context, msg string) {
	WriteStderr(ctx, msg)
}

// WriteStderr writes msg as a single line to the stderr writer in ctx.
func WriteStderr(ctx context.Context, msg string) {
	zapctx.FromContext(ctx).Error(msg)

	w := ioctx.StderrFromContext(ctx)
	fmt.Fprintln(w, strings.TrimRight(msg, "\n"))
}
