package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Tracer wraps OpenTelemetry tracing for documentation operations.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartOperation starts a span for a documentation operation.
	// Span name format: docs.op.<operation>
	StartOperation(ctx context.Context, op, correlationID string) (context.Context, trace.Span)

	// EndOperation ends the span, recording cache outcome and any error.
	EndOperation(span trace.Span, cacheHit bool, err error)
}

type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer wrapping the given OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

func (t *tracerImpl) StartOperation(ctx context.Context, op, correlationID string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("docs.operation", op),
	}
	if correlationID != "" {
		attrs = append(attrs, attribute.String("correlation.id", correlationID))
	}

	return t.tracer.Start(ctx, "docs.op."+op, trace.WithAttributes(attrs...))
}

func (t *tracerImpl) EndOperation(span trace.Span, cacheHit bool, err error) {
	span.SetAttributes(attribute.Bool("cache.hit", cacheHit))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	span.End()
}

// NopTracer returns a Tracer that produces no-op spans.
func NopTracer() Tracer {
	return &tracerImpl{tracer: tracenoop.NewTracerProvider().Tracer("noop")}
}

// Ensure tracerImpl implements Tracer
var _ Tracer = (*tracerImpl)(nil)
