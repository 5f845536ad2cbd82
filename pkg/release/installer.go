package release

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/vito/rust-analyzer-plugin/pkg/zapctx"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	lockName = ".rust-analyzer.lock"

	// long enough for another editor window to finish a slow download
	lockTimeout = 10 * time.Minute
)

// Installer manages downloaded servers in a single directory.
type Installer struct {
	Fetcher *Fetcher
	Dir     string

	installs singleflight.Group
}

func NewInstaller(fetcher *Fetcher, dir string) *Installer {
	return &Installer{
		Fetcher: fetcher,
		Dir:     dir,
	}
}

// Path returns where target's executable lives once installed.
func (installer *Installer) Path(target Target) string {
	return filepath.Join(installer.Dir, target.BinaryName())
}

// Installed returns target's executable path if it has already been
// downloaded.
func (installer *Installer) Installed(target Target) (string, bool) {
	path := installer.Path(target)

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() || info.Size() == 0 {
		return "", false
	}

	return path, true
}

// Install downloads target's executable unless it is already present.
//
// Concurrent calls in this process share one download, and a file lock in
// Dir keeps other processes from fetching into the same directory at once.
func (installer *Installer) Install(ctx context.Context, target Target) (string, error) {
	res, err, _ := installer.installs.Do(target.Triple(), func() (any, error) {
		return installer.install(ctx, target)
	})
	if err != nil {
		return "", err
	}

	return res.(string), nil
}

func (installer *Installer) install(ctx context.Context, target Target) (string, error) {
	logger := zapctx.FromContext(ctx)

	if err := os.MkdirAll(installer.Dir, 0755); err != nil {
		return "", &FetchError{Target: target, Err: err}
	}

	lockPath := filepath.Join(installer.Dir, lockName)
	lock := flock.New(lockPath)

	logger.Debug("acquiring install lock", zap.String("lockPath", lockPath))

	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	locked, err := lock.TryLockContext(lockCtx, 100*time.Millisecond)
	if err != nil {
		return "", &FetchError{Target: target, Err: fmt.Errorf("lock %s: %w", lockPath, err)}
	}

	if !locked {
		return "", &FetchError{Target: target, Err: fmt.Errorf("failed to acquire %s", lockPath)}
	}

	defer lock.Unlock()

	// someone else may have finished while we waited
	if path, ok := installer.Installed(target); ok {
		logger.Debug("already installed", zap.String("path", path))
		return path, nil
	}

	if installer.Fetcher == nil {
		return "", &FetchError{Target: target, Err: fmt.Errorf("downloads are disabled")}
	}

	return installer.Fetcher.Fetch(ctx, target, installer.Dir)
}
