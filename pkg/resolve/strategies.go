package resolve

import (
	"context"
	"errors"
	"fmt"

	"github.com/vito/rust-analyzer-plugin/pkg/config"
	"github.com/vito/rust-analyzer-plugin/pkg/release"
)

// Configured uses an explicit serverPath. An explicit path that does not run
// is final: resolution does not fall back to the search path or a download.
type Configured struct {
	Prober Prober
}

func (Configured) Name() string { return "configured" }

func (strategy Configured) Resolve(ctx context.Context, opts config.Options) (Server, error) {
	if !opts.HasServerPath() {
		return Server{}, NotFound(errors.New("no serverPath configured"))
	}

	if err := strategy.Prober.Probe(ctx, opts.ServerPath); err != nil {
		return Server{}, &UnavailableError{
			Message: NotFoundMessage(opts.ServerPath),
			Err:     err,
		}
	}

	return CommandServer(opts.ServerPath, strategy.Name())
}

// OnPath probes the default command name on the search path.
type OnPath struct {
	Prober  Prober
	Command string
}

func (OnPath) Name() string { return "path" }

func (strategy OnPath) Resolve(ctx context.Context, opts config.Options) (Server, error) {
	if err := strategy.Prober.Probe(ctx, strategy.Command); err != nil {
		return Server{}, NotFound(err)
	}

	return CommandServer(strategy.Command, strategy.Name())
}

// Installed uses a server previously downloaded for Target.
type Installed struct {
	Installer *release.Installer
	Target    release.Target
}

func (Installed) Name() string { return "installed" }

func (strategy Installed) Resolve(ctx context.Context, opts config.Options) (Server, error) {
	path, ok := strategy.Installer.Installed(strategy.Target)
	if !ok {
		return Server{}, NotFound(fmt.Errorf("%s not installed in %s", strategy.Target.BinaryName(), strategy.Installer.Dir))
	}

	return FileServer(path, strategy.Name())
}

// Download fetches the release archive for Target. Any failure is final and
// reported as a single warning.
type Download struct {
	Installer *release.Installer
	Target    release.Target
}

func (Download) Name() string { return "download" }

func (strategy Download) Resolve(ctx context.Context, opts config.Options) (Server, error) {
	path, err := strategy.Installer.Install(ctx, strategy.Target)
	if err != nil {
		return Server{}, &UnavailableError{
			Message: DownloadFailedMessage(strategy.Target),
			Err:     err,
		}
	}

	return FileServer(path, strategy.Name())
}

// DownloadFailedMessage is shown when a release could not be obtained.
func DownloadFailedMessage(target release.Target) string {
	return fmt.Sprintf(
		"rust-analyzer could not be downloaded for %s. Please install "+
			"rust-analyzer or configure 'serverPath' in the plugin settings.",
		target.Triple(),
	)
}
