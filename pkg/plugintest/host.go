package plugintest

import (
	"context"
	"sync"

	"github.com/vito/rust-analyzer-plugin/pkg/psp"
)

// Host records every call made into it.
type Host struct {
	mu sync.Mutex

	Started  []psp.StartLspServerParams
	Messages []psp.ShowMessageParams
	Errors   []string
}

var _ psp.Host = (*Host)(nil)

func (host *Host) StartLspServer(ctx context.Context, params psp.StartLspServerParams) error {
	host.mu.Lock()
	defer host.mu.Unlock()
	host.Started = append(host.Started, params)
	return nil
}

func (host *Host) ShowMessage(ctx context.Context, typ psp.MessageType, msg string) error {
	host.mu.Lock()
	defer host.mu.Unlock()
	host.Messages = append(host.Messages, psp.ShowMessageParams{
		Type:    typ,
		Message: msg,
	})
	return nil
}

func (host *Host) Stderr(ctx context.Context, msg string) {
	host.mu.Lock()
	defer host.mu.Unlock()
	host.Errors = append(host.Errors, msg)
}
