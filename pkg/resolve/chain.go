package resolve

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/vito/rust-analyzer-plugin/pkg/config"
	"github.com/vito/rust-analyzer-plugin/pkg/zapctx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("rust-analyzer-plugin/resolve")

// Strategy is one way of locating a server.
//
// Resolve returns an error wrapping ErrNotFound to defer to the next
// Strategy. Any other error ends resolution.
type Strategy interface {
	Name() string
	Resolve(context.Context, config.Options) (Server, error)
}

// Chain tries each Strategy in order; the first to find a server wins.
type Chain []Strategy

func (chain Chain) Resolve(ctx context.Context, opts config.Options) (_ Server, err error) {
	ctx, span := tracer.Start(ctx, "resolve.Chain", trace.WithAttributes(
		attribute.Bool("explicit", opts.HasServerPath()),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	logger := zapctx.FromContext(ctx)

	var reasons *multierror.Error
	for _, strategy := range chain {
		logger := logger.With(zap.String("strategy", strategy.Name()))

		server, err := strategy.Resolve(ctx, opts)
		if err == nil {
			logger.Info("resolved server", zap.Stringer("server", server))
			span.SetAttributes(attribute.String("source", server.Source))
			return server, nil
		}

		if errors.Is(err, ErrNotFound) {
			logger.Debug("not found", zap.Error(err))
			reasons = multierror.Append(reasons, fmt.Errorf("%s: %w", strategy.Name(), err))
			continue
		}

		logger.Debug("strategy failed", zap.Error(err))

		var unavailable *UnavailableError
		if errors.As(err, &unavailable) && reasons != nil {
			unavailable.Err = multierror.Append(reasons, unavailable.Err).ErrorOrNil()
		}

		return Server{}, err
	}

	return Server{}, &UnavailableError{
		Message: NotFoundMessage(defaultName(chain)),
		Err:     reasons.ErrorOrNil(),
	}
}

// NotFoundMessage is shown when no server could be found or fetched.
func NotFoundMessage(command string) string {
	return fmt.Sprintf(
		"rust-analyzer not found: '%s'. Please install rust-analyzer "+
			"or configure 'serverPath' in the plugin settings.",
		command,
	)
}

func defaultName(chain Chain) string {
	for _, strategy := range chain {
		if onPath, ok := strategy.(OnPath); ok {
			return onPath.Command
		}
	}

	return "rust-analyzer"
}
