package release

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/vito/rust-analyzer-plugin/pkg/config"
	"github.com/vito/rust-analyzer-plugin/pkg/zapctx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// LatestVersion selects the most recent stable release instead of a tag.
const LatestVersion = "latest"

var tracer = otel.Tracer("rust-analyzer-plugin/release")

// Fetcher downloads and unpacks release archives.
type Fetcher struct {
	Client  *http.Client
	BaseURL string
	Version string
}

// NewFetcher returns a Fetcher for the configured release source.
func NewFetcher(cfg config.DownloadConfig) *Fetcher {
	return &Fetcher{
		Client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   cfg.Timeout,
		},
		BaseURL: cfg.BaseURL,
		Version: cfg.Version,
	}
}

// URL returns the download location of target's archive.
func (fetcher *Fetcher) URL(target Target) (*url.URL, error) {
	base := fetcher.BaseURL
	if base == "" {
		base = config.DefaultBaseURL
	}

	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	version := fetcher.Version
	if version == "" {
		version = config.DefaultVersion
	}

	if version == LatestVersion && path.Base(u.Path) == "download" {
		// .../releases/download -> .../releases/latest/download
		u.Path = path.Join(path.Dir(u.Path), LatestVersion, "download", target.ArchiveName())
	} else {
		u.Path = path.Join(u.Path, version, target.ArchiveName())
	}

	return u, nil
}

// Fetch downloads target's archive into dir, extracts the server executable
// next to it, and removes the archive. It returns the executable's path.
func (fetcher *Fetcher) Fetch(ctx context.Context, target Target, dir string) (_ string, err error) {
	ctx, span := tracer.Start(ctx, "release.Fetch", trace.WithAttributes(
		attribute.String("target", target.Triple()),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	u, err := fetcher.URL(target)
	if err != nil {
		return "", &FetchError{Target: target, Err: err}
	}

	ctx, logger := zapctx.With(ctx,
		zap.String("target", target.Triple()),
		zap.String("url", u.String()))

	fail := func(err error) (string, error) {
		return "", &FetchError{Target: target, URL: u.String(), Err: err}
	}

	archive := filepath.Join(dir, target.ArchiveName())

	logger.Info("downloading release")

	if err := fetcher.download(ctx, u, archive); err != nil {
		_ = os.Remove(archive)
		return fail(err)
	}

	defer func() {
		if rmErr := os.Remove(archive); rmErr != nil && !os.IsNotExist(rmErr) {
			logger.Warn("failed to remove archive", zap.Error(rmErr))
		}
	}()

	binary := filepath.Join(dir, target.BinaryName())
	if err := Extract(target.Format(), archive, binary); err != nil {
		return fail(err)
	}

	logger.Info("extracted server", zap.String("path", binary))

	return binary, nil
}

func (fetcher *Fetcher) download(ctx context.Context, u *url.URL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	client := fetcher.Client
	if client == nil {
		client = http.DefaultClient
	}

	res, err := client.Do(req)
	if err != nil {
		return err
	}

	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return StatusError{
			StatusCode: res.StatusCode,
			Status:     res.Status,
		}
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}

	file, err := os.Create(dest)
	if err != nil {
		return err
	}

	if _, err := io.Copy(file, res.Body); err != nil {
		file.Close()
		return fmt.Errorf("write archive: %w", err)
	}

	return file.Close()
}
