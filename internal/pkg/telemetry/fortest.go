package telemetry

import (
	"context"
	"testing"

	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// ForTest records all ended spans in memory.
type ForTest interface {
	Telemetry
	Spans() tracetest.SpanStubs
	SpanNames() []string
	Reset()
}

type forTest struct {
	Telemetry
	exporter *tracetest.InMemoryExporter
}

func NewForTest(tb testing.TB) ForTest {
	tb.Helper()
	exporter := tracetest.NewInMemoryExporter()
	provider := tracesdk.NewTracerProvider(tracesdk.WithSyncer(exporter))
	tb.Cleanup(func() {
		_ = provider.Shutdown(context.Background())
	})
	return &forTest{Telemetry: New(provider), exporter: exporter}
}

func (t *forTest) Spans() tracetest.SpanStubs {
	return t.exporter.GetSpans()
}

func (t *forTest) SpanNames() []string {
	var out []string
	for _, s := range t.exporter.GetSpans() {
		out = append(out, s.Name)
	}
	return out
}

func (t *forTest) Reset() {
	t.exporter.Reset()
}
