package psp_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/vito/is"
	"github.com/vito/rust-analyzer-plugin/pkg/ioctx"
	"github.com/vito/rust-analyzer-plugin/pkg/psp"
)

type notifications chan *jsonrpc2.Request

func (ch notifications) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	ch <- req
}

func ignore(context.Context, *jsonrpc2.Conn, *jsonrpc2.Request) (any, error) {
	return nil, nil
}

func pipe(t *testing.T) (*psp.ConnHost, notifications) {
	a, b := net.Pipe()

	ch := make(notifications, 10)

	pluginConn := jsonrpc2.NewConn(context.Background(), jsonrpc2.NewBufferedStream(a, jsonrpc2.VSCodeObjectCodec{}), jsonrpc2.HandlerWithError(ignore))
	editorConn := jsonrpc2.NewConn(context.Background(), jsonrpc2.NewBufferedStream(b, jsonrpc2.VSCodeObjectCodec{}), ch)

	t.Cleanup(func() {
		pluginConn.Close()
		editorConn.Close()
	})

	return psp.NewConnHost(pluginConn), ch
}

func receive(t *testing.T, ch notifications) *jsonrpc2.Request {
	t.Helper()

	select {
	case req := <-ch:
		return req
	case <-time.After(5 * time.Second):
		t.Fatal("timed out")
		return nil
	}
}

func TestConnHostStartLspServer(t *testing.T) {
	is := is.New(t)

	host, ch := pipe(t)

	is.NoErr(host.StartLspServer(context.Background(), psp.StartLspServerParams{
		ServerURI:        "urn:rust-analyzer",
		ServerArgs:       []string{},
		DocumentSelector: psp.DocumentSelector{{Language: "rust"}},
		Options:          json.RawMessage(`{"serverPath":""}`),
	}))

	req := receive(t, ch)
	is.True(req.Notif)
	is.Equal(req.Method, "host/startLspServer")
	is.Equal(string(*req.Params), `{"serverUri":"urn:rust-analyzer","serverArgs":[],"documentSelector":[{"language":"rust"}],"options":{"serverPath":""}}`)
}

func TestConnHostStartLspServerWithoutOptions(t *testing.T) {
	is := is.New(t)

	host, ch := pipe(t)

	is.NoErr(host.StartLspServer(context.Background(), psp.StartLspServerParams{
		ServerURI:        "file:///plugins/rust-analyzer-x86_64-unknown-linux-gnu",
		ServerArgs:       []string{},
		DocumentSelector: psp.DocumentSelector{{Language: "rust"}},
	}))

	req := receive(t, ch)
	is.Equal(string(*req.Params), `{"serverUri":"file:///plugins/rust-analyzer-x86_64-unknown-linux-gnu","serverArgs":[],"documentSelector":[{"language":"rust"}]}`)
}

func TestConnHostShowMessage(t *testing.T) {
	is := is.New(t)

	host, ch := pipe(t)

	is.NoErr(host.ShowMessage(context.Background(), psp.MessageWarning, "heads up"))

	req := receive(t, ch)
	is.Equal(req.Method, "window/showMessage")
	is.Equal(string(*req.Params), `{"type":2,"message":"heads up"}`)
}

func TestConnHostStderr(t *testing.T) {
	is := is.New(t)

	host, _ := pipe(t)

	buf := new(bytes.Buffer)
	ctx := ioctx.StderrToContext(context.Background(), buf)

	host.Stderr(ctx, "plugin returned with error: boom\n")
	is.Equal(buf.String(), "plugin returned with error: boom\n")
}

func TestConsoleHost(t *testing.T) {
	is := is.New(t)

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)

	ctx := context.Background()
	ctx = ioctx.StdoutToContext(ctx, stdout)
	ctx = ioctx.StderrToContext(ctx, stderr)

	host := &psp.ConsoleHost{}

	is.NoErr(host.StartLspServer(ctx, psp.StartLspServerParams{ServerURI: "urn:rust-analyzer"}))
	is.NoErr(host.ShowMessage(ctx, psp.MessageWarning, "careful"))

	is.True(host.Started)
	is.True(host.Warned)
	is.Equal(stdout.String(), "urn:rust-analyzer\n")
	is.Equal(stderr.String(), "warning: careful\n")
}
