package plugintest

import (
	"context"
	"fmt"
	"sync"

	"github.com/vito/rust-analyzer-plugin/pkg/resolve"
)

// Prober treats the listed commands as runnable and everything else as
// missing.
type Prober struct {
	mu sync.Mutex

	Runnable []string
	Probed   []string
}

var _ resolve.Prober = (*Prober)(nil)

func NewProber(runnable ...string) *Prober {
	return &Prober{Runnable: runnable}
}

func (prober *Prober) Probe(ctx context.Context, command string) error {
	prober.mu.Lock()
	defer prober.mu.Unlock()

	prober.Probed = append(prober.Probed, command)

	for _, r := range prober.Runnable {
		if r == command {
			return nil
		}
	}

	return fmt.Errorf("%s: %w: executable file not found in $PATH", command, resolve.ErrNotRunnable)
}
