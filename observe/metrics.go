package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records cache and invocation metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must return quickly; recording never blocks request handling.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordLookup records a cache lookup and its outcome.
	RecordLookup(ctx context.Context, op, strategy string, hit bool)

	// RecordStoreError records a failed cache store write or read.
	RecordStoreError(ctx context.Context, op string)

	// RecordInvocation records a downstream tool invocation.
	RecordInvocation(ctx context.Context, op string, duration time.Duration, err error)

	// RecordWarmScenario records the outcome of one warm-up scenario
	// (warmed, skipped, or failed).
	RecordWarmScenario(ctx context.Context, outcome string)
}

type metricsImpl struct {
	lookupTotal    metric.Int64Counter
	lookupHits     metric.Int64Counter
	storeErrors    metric.Int64Counter
	invokeDuration metric.Float64Histogram
	invokeErrors   metric.Int64Counter
	warmScenarios  metric.Int64Counter
}

// NewMetrics creates a Metrics instance backed by the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	lookupTotal, err := meter.Int64Counter(
		"cache.lookup.total",
		metric.WithDescription("Total number of cache lookups"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	lookupHits, err := meter.Int64Counter(
		"cache.lookup.hits",
		metric.WithDescription("Number of cache lookups served from the store"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	storeErrors, err := meter.Int64Counter(
		"cache.store.errors",
		metric.WithDescription("Number of cache store failures"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	invokeDuration, err := meter.Float64Histogram(
		"docs.invoke.duration_ms",
		metric.WithDescription("Downstream tool invocation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	invokeErrors, err := meter.Int64Counter(
		"docs.invoke.errors",
		metric.WithDescription("Number of downstream tool invocation failures"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	warmScenarios, err := meter.Int64Counter(
		"warm.scenario.total",
		metric.WithDescription("Warm-up scenario outcomes"),
		metric.WithUnit("{scenario}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		lookupTotal:    lookupTotal,
		lookupHits:     lookupHits,
		storeErrors:    storeErrors,
		invokeDuration: invokeDuration,
		invokeErrors:   invokeErrors,
		warmScenarios:  warmScenarios,
	}, nil
}

func (m *metricsImpl) RecordLookup(ctx context.Context, op, strategy string, hit bool) {
	opt := metric.WithAttributes(
		attribute.String("docs.operation", op),
		attribute.String("cache.strategy", strategy),
		attribute.Bool("cache.hit", hit),
	)
	m.lookupTotal.Add(ctx, 1, opt)
	if hit {
		m.lookupHits.Add(ctx, 1, opt)
	}
}

func (m *metricsImpl) RecordStoreError(ctx context.Context, op string) {
	m.storeErrors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("docs.operation", op),
	))
}

func (m *metricsImpl) RecordInvocation(ctx context.Context, op string, duration time.Duration, err error) {
	opt := metric.WithAttributes(attribute.String("docs.operation", op))
	m.invokeDuration.Record(ctx, float64(duration.Milliseconds()), opt)
	if err != nil {
		m.invokeErrors.Add(ctx, 1, opt)
	}
}

func (m *metricsImpl) RecordWarmScenario(ctx context.Context, outcome string) {
	m.warmScenarios.Add(ctx, 1, metric.WithAttributes(
		attribute.String("warm.outcome", outcome),
	))
}

// NopMetrics returns a Metrics implementation that records nothing.
func NopMetrics() Metrics {
	return nopMetrics{}
}

type nopMetrics struct{}

func (nopMetrics) RecordLookup(context.Context, string, string, bool)             {}
func (nopMetrics) RecordStoreError(context.Context, string)                       {}
func (nopMetrics) RecordInvocation(context.Context, string, time.Duration, error) {}
func (nopMetrics) RecordWarmScenario(context.Context, string)                     {}

// Ensure implementations satisfy Metrics
var (
	_ Metrics = (*metricsImpl)(nil)
	_ Metrics = nopMetrics{}
)
