// Package telemetry wraps an OpenTelemetry tracer, operations open spans and close them with the result error.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "github.com/plc-tools/tia-export"

type ctxKey string

type Telemetry interface {
	Tracer() Tracer
	TracerProvider() trace.TracerProvider
}

type Tracer interface {
	Start(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, Span)
}

type telemetry struct {
	provider trace.TracerProvider
	tracer   *tracer
}

type tracer struct {
	tracer trace.Tracer
}

// New creates telemetry from the provider, nil provider disables tracing.
func New(provider trace.TracerProvider) Telemetry {
	if provider == nil {
		provider = noop.NewTracerProvider()
	}
	return &telemetry{provider: provider, tracer: &tracer{tracer: provider.Tracer(tracerName)}}
}

func NewNop() Telemetry {
	return New(nil)
}

func (t *telemetry) Tracer() Tracer {
	return t.tracer
}

func (t *telemetry) TracerProvider() trace.TracerProvider {
	return t.provider
}

func (t *tracer) Start(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, Span) {
	if IsTracingDisabled(ctx) {
		return ctx, &span{span: trace.SpanFromContext(ctx), disabled: true}
	}
	ctx, s := t.tracer.Start(ctx, spanName, opts...)
	return ctx, &span{span: s}
}

const disabledCtxKey = ctxKey("tracing-disabled")

// ContextWithDisabledTracing returns a context in which no spans are recorded, for example for noisy per-entity work.
func ContextWithDisabledTracing(ctx context.Context) context.Context {
	return context.WithValue(ctx, disabledCtxKey, true)
}

func IsTracingDisabled(ctx context.Context) bool {
	disabled, _ := ctx.Value(disabledCtxKey).(bool)
	return disabled
}
