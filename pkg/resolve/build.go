package resolve

import (
	"context"

	"github.com/vito/rust-analyzer-plugin/pkg/config"
	"github.com/vito/rust-analyzer-plugin/pkg/release"
	"github.com/vito/rust-analyzer-plugin/pkg/zapctx"
	"go.uber.org/zap"
)

// NewChain assembles the standard order: explicit serverPath, then the
// default command on the search path, then a previously downloaded release,
// then a fresh download.
//
// The download strategies are omitted when downloads are disabled, the
// platform has no release archive, or the install dir cannot be resolved.
func NewChain(ctx context.Context, cfg config.Config, env config.Environment, prober Prober) (Chain, error) {
	logger := zapctx.FromContext(ctx)

	chain := Chain{
		Configured{Prober: prober},
		OnPath{Prober: prober, Command: release.DefaultServerName(env.OS)},
	}

	if !cfg.Download.Enabled {
		logger.Debug("downloads disabled")
		return chain, nil
	}

	target, err := release.DetectTarget(env.Arch, env.OS)
	if err != nil {
		logger.Warn("no release for platform", zap.Error(err))
		return chain, nil
	}

	dir, err := cfg.ResolveInstallDir(env)
	if err != nil {
		logger.Warn("no install dir", zap.Error(err))
		return chain, nil
	}

	installer := release.NewInstaller(release.NewFetcher(cfg.Download), dir)

	return append(chain,
		Installed{Installer: installer, Target: target},
		Download{Installer: installer, Target: target},
	), nil
}
