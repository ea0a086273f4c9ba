// Package temporal dials Temporal with the process-wide tracing and logging setup.
package temporal

import (
	"errors"
	"log/slog"
	"os"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	platformobservability "github.com/Apurer/pet-adoption-api/internal/platform/observability"
)

// ErrDisabled is returned by Dial when Temporal is switched off by configuration.
var ErrDisabled = errors.New("temporal disabled via TEMPORAL_DISABLED env")

// Options selects the Temporal frontend and namespace.
type Options struct {
	Address    string
	Namespace  string
	Disabled   bool
	TracerName string
}

// Dial connects a Temporal client with the OpenTelemetry tracing interceptor and a structured logger.
func Dial(opts Options, instruments *platformobservability.Instruments) (client.Client, error) {
	if opts.Disabled {
		return nil, ErrDisabled
	}
	if opts.Address == "" {
		opts.Address = client.DefaultHostPort
	}
	if opts.Namespace == "" {
		opts.Namespace = client.DefaultNamespace
	}
	if opts.TracerName == "" {
		opts.TracerName = "temporal-client"
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer(opts.TracerName),
	})
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  opts.Address,
		Namespace: opts.Namespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
