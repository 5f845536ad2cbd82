package plugin_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/vito/is"
	"github.com/vito/rust-analyzer-plugin/pkg/config"
	"github.com/vito/rust-analyzer-plugin/pkg/plugin"
	"github.com/vito/rust-analyzer-plugin/pkg/plugintest"
	"github.com/vito/rust-analyzer-plugin/pkg/psp"
	"github.com/vito/rust-analyzer-plugin/pkg/release"
	"github.com/vito/rust-analyzer-plugin/pkg/resolve"
)

func pathChain(prober resolve.Prober) resolve.Chain {
	return resolve.Chain{
		resolve.Configured{Prober: prober},
		resolve.OnPath{Prober: prober, Command: release.DefaultServerName("linux")},
	}
}

func TestInitializeExplicitServerPath(t *testing.T) {
	is := is.New(t)

	opts := json.RawMessage(`{"serverPath":"/opt/ra/rust-analyzer","cargo":{"buildScripts":{"enable":true}}}`)

	host := &plugintest.Host{}
	p := plugin.New(pathChain(plugintest.NewProber("/opt/ra/rust-analyzer")))

	err := p.Initialize(context.Background(), host, psp.InitializeParams{
		InitializationOptions: opts,
	})
	is.NoErr(err)

	plugintest.Equal(t, []psp.StartLspServerParams{
		{
			ServerURI:        "urn:/opt/ra/rust-analyzer",
			ServerArgs:       []string{},
			DocumentSelector: psp.DocumentSelector{{Language: "rust"}},
			Options:          opts,
		},
	}, host.Started)
	is.Equal(len(host.Messages), 0)
	is.Equal(len(host.Errors), 0)
}

func TestInitializeDefault(t *testing.T) {
	for _, raw := range []string{"", `{}`, `{"serverPath":""}`, `{"serverPath":null}`} {
		is := is.New(t)

		host := &plugintest.Host{}
		p := plugin.New(pathChain(plugintest.NewProber("rust-analyzer")))

		err := p.Initialize(context.Background(), host, psp.InitializeParams{
			InitializationOptions: json.RawMessage(raw),
		})
		is.NoErr(err)

		is.Equal(len(host.Started), 1)
		is.Equal(host.Started[0].ServerURI, "urn:rust-analyzer")
		is.Equal(string(host.Started[0].Options), raw)
	}
}

func TestInitializeUnavailable(t *testing.T) {
	is := is.New(t)

	host := &plugintest.Host{}
	p := plugin.New(pathChain(plugintest.NewProber()))

	err := p.Initialize(context.Background(), host, psp.InitializeParams{})
	is.NoErr(err)

	is.Equal(len(host.Started), 0)
	plugintest.Equal(t, []psp.ShowMessageParams{
		{
			Type:    psp.MessageWarning,
			Message: resolve.NotFoundMessage("rust-analyzer"),
		},
	}, host.Messages)
}

func TestInitializeUnresolvableServerPath(t *testing.T) {
	is := is.New(t)

	host := &plugintest.Host{}
	p := plugin.New(pathChain(plugintest.NewProber("rust-analyzer")))

	err := p.Initialize(context.Background(), host, psp.InitializeParams{
		InitializationOptions: json.RawMessage(`{"serverPath":"/nope"}`),
	})
	is.NoErr(err)

	is.Equal(len(host.Started), 0)
	is.Equal(len(host.Messages), 1)
	is.Equal(host.Messages[0].Message, resolve.NotFoundMessage("/nope"))
}

func TestInitializeInternalError(t *testing.T) {
	is := is.New(t)

	host := &plugintest.Host{}
	p := plugin.New(pathChain(plugintest.NewProber("bad\x7fpath")))

	err := p.Initialize(context.Background(), host, psp.InitializeParams{
		InitializationOptions: json.RawMessage(`{"serverPath":"bad\u007fpath"}`),
	})
	is.True(err != nil)
	is.True(!resolve.IsUnavailable(err))

	is.Equal(len(host.Started), 0)
	is.Equal(len(host.Messages), 0)
}

func TestInitializeIdempotent(t *testing.T) {
	is := is.New(t)

	host := &plugintest.Host{}
	p := plugin.New(pathChain(plugintest.NewProber("rust-analyzer")))

	params := psp.InitializeParams{
		InitializationOptions: json.RawMessage(`{"serverPath":""}`),
	}

	is.NoErr(p.Initialize(context.Background(), host, params))
	is.NoErr(p.Initialize(context.Background(), host, params))

	is.Equal(len(host.Started), 2)
	plugintest.Equal(t, host.Started[0], host.Started[1])
}

type failingResolver struct{ err error }

func (r failingResolver) Resolve(context.Context, config.Options) (resolve.Server, error) {
	return resolve.Server{}, r.err
}

func TestInitializeWrappedUnavailable(t *testing.T) {
	is := is.New(t)

	host := &plugintest.Host{}
	p := plugin.New(failingResolver{
		err: &resolve.UnavailableError{
			Message: "nope",
			Err:     errors.New("boom"),
		},
	})

	is.NoErr(p.Initialize(context.Background(), host, psp.InitializeParams{}))
	is.Equal(len(host.Messages), 1)
	is.Equal(host.Messages[0].Message, "nope")
}
