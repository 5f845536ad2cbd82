package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/vito/rust-analyzer-plugin/pkg/config"
	"github.com/vito/rust-analyzer-plugin/pkg/ioctx"
	"github.com/vito/rust-analyzer-plugin/pkg/plugin"
	"github.com/vito/rust-analyzer-plugin/pkg/psp"
	"github.com/vito/rust-analyzer-plugin/pkg/resolve"
	"github.com/vito/rust-analyzer-plugin/pkg/zapctx"
)

var (
	resolveServerPath string
	resolveOptions    string
	resolveVerbose    bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "resolve rust-analyzer as the editor would and print the server reference",
	Args:  cobra.NoArgs,
	RunE:  resolveServer,
}

func init() {
	resolveFlags(resolveCmd.Flags())
}

func resolveFlags(flags *pflag.FlagSet) {
	flags.StringVar(&resolveServerPath, "server-path", "", "explicit serverPath option")
	flags.StringVar(&resolveOptions, "options", "", "initialization options as JSON")
	flags.BoolVarP(&resolveVerbose, "verbose", "v", false, "print the full start request")
}

func resolveServer(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}

	ctx = zapctx.ToContext(ctx, plugin.Logger(cfg.LogLevel))
	ctx = ioctx.StdoutToContext(ctx, cmd.OutOrStdout())
	ctx = ioctx.StderrToContext(ctx, Stderr)

	opts, err := resolveInitOptions(cmd)
	if err != nil {
		return err
	}

	chain, err := resolve.NewChain(ctx, *cfg, config.EnvironmentFromOS(), resolve.ExecProber{})
	if err != nil {
		return err
	}

	host := &psp.ConsoleHost{Verbose: resolveVerbose}

	err = plugin.New(chain).Initialize(ctx, host, psp.InitializeParams{
		InitializationOptions: opts,
	})
	if err != nil {
		return err
	}

	if !host.Started {
		return errUnavailable
	}

	return nil
}

func resolveInitOptions(cmd *cobra.Command) (json.RawMessage, error) {
	if resolveOptions == "" && !cmd.Flags().Changed("server-path") {
		return nil, nil
	}

	opts := map[string]any{}
	if resolveOptions != "" {
		if err := json.Unmarshal([]byte(resolveOptions), &opts); err != nil {
			return nil, FlagError{
				Err:   fmt.Errorf("--options: %w", err),
				Flags: cmd.Flags(),
			}
		}
	}

	if cmd.Flags().Changed("server-path") {
		opts[config.ServerPathKey] = resolveServerPath
	}

	payload, err := json.Marshal(opts)
	if err != nil {
		return nil, err
	}

	return payload, nil
}
