package plugin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/vito/rust-analyzer-plugin/pkg/psp"
	"github.com/vito/rust-analyzer-plugin/pkg/zapctx"
	"go.uber.org/zap"
)

// NewHandler creates the JSON-RPC handler the host talks to.
func NewHandler(plugin *Plugin) jsonrpc2.Handler {
	handler := &pluginHandler{
		plugin: plugin,
		host: func(conn *jsonrpc2.Conn) psp.Host {
			return psp.NewConnHost(conn)
		},
	}

	return jsonrpc2.HandlerWithError(handler.handle)
}

type pluginHandler struct {
	plugin *Plugin
	host   func(*jsonrpc2.Conn) psp.Host
}

func (h *pluginHandler) handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (result any, err error) {
	logger := zapctx.FromContext(ctx)

	logger.Debug("handle", zap.String("method", req.Method))

	switch req.Method {
	case psp.MethodInitialize:
		return h.handleInitialize(ctx, conn, req)
	case psp.MethodInitialized, psp.MethodShutdown:
		return nil, nil
	case psp.MethodExit:
		return nil, conn.Close()
	}

	if req.Notif {
		return nil, nil
	}

	return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeMethodNotFound, Message: fmt.Sprintf("method not supported: %s", req.Method)}
}

func (h *pluginHandler) handleInitialize(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (result any, err error) {
	host := h.host(conn)

	var params psp.InitializeParams
	if req.Params != nil {
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			host.Stderr(ctx, fmt.Sprintf("malformed initialize params: %s", err))
			return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
		}
	}

	if err := h.plugin.Initialize(ctx, host, params); err != nil {
		host.Stderr(ctx, fmt.Sprintf("plugin returned with error: %s", err))
	}

	return nil, nil
}
