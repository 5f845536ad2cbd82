package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/vito/rust-analyzer-plugin/pkg/config"
	"go.uber.org/zap/zapcore"
)

var Stderr = colorable.NewColorableStderr()

var rootCmd = &cobra.Command{
	Use:   "rust-analyzer-plugin",
	Short: "start rust-analyzer on behalf of an editor",
	Long: `Locates rust-analyzer (an explicit serverPath, then $PATH, then a
downloaded release) and asks the editor to start it for Rust documents.

With no subcommand, speaks JSON-RPC with the editor over stdin/stdout.`,
	Version:       versionString(),
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          serve,
}

var (
	configPath string
	logFile    string
	logLevel   string
	noDownload bool
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/rust-analyzer-plugin/config.yml)")
	flags.StringVar(&logFile, "log-file", filepath.Join(os.TempDir(), config.Name+".log"), "file to write logs to while serving")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&noDownload, "no-download", false, "never download rust-analyzer releases")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return FlagError{Err: err, Flags: cmd.Flags()}
	})

	rootCmd.AddCommand(serveCmd, resolveCmd, versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		WriteError(Stderr, err)
		stop()
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.Path()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.LoadFile(path, config.Default())
	if err != nil {
		return nil, err
	}

	if noDownload {
		cfg.Download.Enabled = false
	}

	if logLevel != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(logLevel)); err != nil {
			return nil, FlagError{Err: err, Flags: flags}
		}

		cfg.LogLevel = level
	}

	return cfg, nil
}
