package plugin

import (
	"context"
	"errors"
	"fmt"

	"github.com/vito/rust-analyzer-plugin/pkg/config"
	"github.com/vito/rust-analyzer-plugin/pkg/psp"
	"github.com/vito/rust-analyzer-plugin/pkg/resolve"
	"github.com/vito/rust-analyzer-plugin/pkg/zapctx"
	"go.uber.org/zap"
)

// LanguageID is the document language the server is registered for.
const LanguageID = "rust"

// Resolver locates a server for a session's options.
type Resolver interface {
	Resolve(context.Context, config.Options) (resolve.Server, error)
}

// Plugin starts rust-analyzer for the host.
type Plugin struct {
	Resolver Resolver
}

func New(resolver Resolver) *Plugin {
	return &Plugin{
		Resolver: resolver,
	}
}

// DocumentSelector matches every Rust document.
func DocumentSelector() psp.DocumentSelector {
	return psp.DocumentSelector{
		{Language: LanguageID},
	}
}

// Initialize resolves a server and asks the host to start it.
//
// If no server can be found or downloaded the user is warned once and the
// host is left running without one; nil is returned. Any other error is
// internal and returned to the caller.
func (plugin *Plugin) Initialize(ctx context.Context, host psp.Host, params psp.InitializeParams) error {
	ctx, logger := zapctx.Named(ctx, "initialize")

	opts := config.ParseOptions(params.InitializationOptions)

	logger.Debug("resolving server", zap.String("serverPath", opts.ServerPath))

	server, err := plugin.Resolver.Resolve(ctx, opts)
	if err != nil {
		var unavailable *resolve.UnavailableError
		if errors.As(err, &unavailable) {
			logger.Warn("no server available", zap.Error(err))
			return host.ShowMessage(ctx, psp.MessageWarning, unavailable.Message)
		}

		return fmt.Errorf("resolve server: %w", err)
	}

	return host.StartLspServer(ctx, psp.StartLspServerParams{
		ServerURI:        server.URI.String(),
		ServerArgs:       []string{},
		DocumentSelector: DocumentSelector(),
		Options:          params.InitializationOptions,
	})
}
