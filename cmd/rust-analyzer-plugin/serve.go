package main

import (
	"fmt"
	"os"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/spf13/cobra"
	"github.com/vito/rust-analyzer-plugin/pkg/config"
	"github.com/vito/rust-analyzer-plugin/pkg/ioctx"
	"github.com/vito/rust-analyzer-plugin/pkg/plugin"
	"github.com/vito/rust-analyzer-plugin/pkg/resolve"
	"github.com/vito/rust-analyzer-plugin/pkg/zapctx"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "speak JSON-RPC with the editor over stdio (default)",
	Args:  cobra.NoArgs,
	RunE:  serve,
}

func serve(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}

	// stdout carries JSON-RPC, so logs go to a file
	logs, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	defer logs.Close()

	logger := plugin.LoggerTo(logs, cfg.LogLevel)
	defer logger.Sync()

	ctx = zapctx.ToContext(ctx, logger)
	ctx = ioctx.StderrToContext(ctx, os.Stderr)

	env := config.EnvironmentFromOS()

	chain, err := resolve.NewChain(ctx, *cfg, env, resolve.ExecProber{})
	if err != nil {
		return fmt.Errorf("build resolver: %w", err)
	}

	logger.Debug("starting",
		zap.String("arch", env.Arch),
		zap.String("os", env.OS),
		zap.Bool("download", cfg.Download.Enabled))

	<-jsonrpc2.NewConn(
		ctx,
		jsonrpc2.NewBufferedStream(stdrwc{}, jsonrpc2.VSCodeObjectCodec{}),
		plugin.NewHandler(plugin.New(chain)),
	).DisconnectNotify()

	logger.Debug("closed")

	return nil
}

type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (c stdrwc) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (c stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}
