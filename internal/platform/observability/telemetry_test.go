package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestZeroServiceTelemetryIsUsable(t *testing.T) {
	var telemetry ServiceTelemetry
	ctx, span := telemetry.Start(context.Background(), "Service.Noop")
	telemetry.Info(ctx, "ignored")
	err := telemetry.Fail(ctx, span, slog.LevelError, errors.New("boom"), "ignored")
	span.End()
	assert.EqualError(t, err, "boom")

	Inc(ctx, NewCounter(nil, "unused", ""))
}

func TestFailMarksSpanAndLogsAtLevel(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	var logs bytes.Buffer
	telemetry := ServiceTelemetry{
		Tracer: sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)).Tracer("test"),
		Logger: slog.New(slog.NewJSONHandler(&logs, nil)),
	}

	ctx, span := telemetry.Start(context.Background(), "Service.SubmitApplication")
	_ = telemetry.Fail(ctx, span, slog.LevelWarn, errors.New("duplicate"), "refused", slog.String("user.id", "u-1"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Contains(t, logs.String(), `"level":"WARN"`)
	assert.Contains(t, logs.String(), `"error":"duplicate"`)
	assert.Contains(t, logs.String(), `"user.id":"u-1"`)
}
