package resolve

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/vito/rust-analyzer-plugin/pkg/zapctx"
	"go.uber.org/zap"
)

// VersionFlag is passed to a candidate server to check that it runs.
const VersionFlag = "--version"

// Prober checks whether a command is runnable.
type Prober interface {
	Probe(ctx context.Context, command string) error
}

// ExecProber runs the command with --version.
//
// A non-zero exit counts as not runnable, not just a failure to spawn. A
// rustup proxy without the rust-analyzer component installed exits non-zero
// here.
type ExecProber struct{}

func (ExecProber) Probe(ctx context.Context, command string) error {
	logger := zapctx.FromContext(ctx).With(zap.String("command", command))

	// #nosec G204 -- running the configured server is the point
	cmd := exec.CommandContext(ctx, command, VersionFlag)
	output, err := cmd.CombinedOutput()
	if err != nil {
		logger.Debug("probe failed",
			zap.Error(err),
			zap.ByteString("output", output))
		return fmt.Errorf("%s %s: %w: %s", command, VersionFlag, ErrNotRunnable, err)
	}

	logger.Debug("probed", zap.String("version", strings.TrimSpace(string(output))))

	return nil
}

// ProberFunc adapts a function to Prober.
type ProberFunc func(context.Context, string) error

func (f ProberFunc) Probe(ctx context.Context, command string) error {
	return f(ctx, command)
}
