package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dpark2025/personal-pipeline-sub007/docs"
	"github.com/dpark2025/personal-pipeline-sub007/observe"
	"github.com/dpark2025/personal-pipeline-sub007/resilience"
)

// ErrNilRequest is returned when Resolve is called with a nil request.
var ErrNilRequest = errors.New("cache: request is nil")

// SkipRule determines whether to bypass the cache entirely for an operation.
// Returns true if caching should be skipped.
type SkipRule func(op docs.Operation) bool

// DefaultSkipRule bypasses the cache for mutating operations.
func DefaultSkipRule(op docs.Operation) bool {
	return op.Mutating()
}

// Result is the annotated outcome of resolving an operation request.
type Result struct {
	// Data is the raw JSON result from the store or the downstream layer.
	Data json.RawMessage `json:"data"`

	// Cached reports whether the result was served from the store.
	Cached bool `json:"cached"`

	// Strategy is the caching strategy the request classified into.
	Strategy Strategy `json:"strategy"`

	// CacheHitTime is when the hit was served; zero on misses.
	CacheHitTime time.Time `json:"cache_hit_time,omitzero"`
}

// GatewayConfig configures a Gateway. Store and Invoker are required;
// everything else has working defaults.
type GatewayConfig struct {
	Store   Store
	Invoker docs.Invoker

	// KeyBuilder derives cache keys. Default: NewDefaultKeyBuilder().
	KeyBuilder KeyBuilder

	// TTL computes effective TTLs. Default: NewTTLCalculator().
	TTL *TTLCalculator

	// SkipRule decides which operations bypass the cache.
	// Default: DefaultSkipRule.
	SkipRule SkipRule

	// InvokeTimeout bounds downstream invocations.
	// Default: resilience.DefaultTimeout.
	InvokeTimeout time.Duration

	Logger  observe.Logger
	Metrics observe.Metrics
	Tracer  observe.Tracer
}

// Gateway orchestrates lookup-or-execute-and-store for operation requests.
//
// Concurrent requests for the same key are not deduplicated: each proceeds
// independently and may populate the store. Entries are idempotent overwrites
// keyed by content, so last-write-wins is acceptable.
type Gateway struct {
	store         Store
	stats         StatsStore // nil when the store has no counters
	invoker       docs.Invoker
	keys          KeyBuilder
	ttl           *TTLCalculator
	skipRule      SkipRule
	invokeTimeout time.Duration
	logger        observe.Logger
	metrics       observe.Metrics
	tracer        observe.Tracer
}

// NewGateway creates a gateway from the given configuration.
func NewGateway(cfg GatewayConfig) (*Gateway, error) {
	if cfg.Store == nil {
		return nil, ErrNilStore
	}
	if cfg.Invoker == nil {
		return nil, errors.New("cache: invoker is nil")
	}

	g := &Gateway{
		store:         cfg.Store,
		invoker:       cfg.Invoker,
		keys:          cfg.KeyBuilder,
		ttl:           cfg.TTL,
		skipRule:      cfg.SkipRule,
		invokeTimeout: cfg.InvokeTimeout,
		logger:        cfg.Logger,
		metrics:       cfg.Metrics,
		tracer:        cfg.Tracer,
	}
	if stats, ok := cfg.Store.(StatsStore); ok {
		g.stats = stats
	}
	if g.keys == nil {
		g.keys = NewDefaultKeyBuilder()
	}
	if g.ttl == nil {
		g.ttl = NewTTLCalculator()
	}
	if g.skipRule == nil {
		g.skipRule = DefaultSkipRule
	}
	if g.invokeTimeout <= 0 {
		g.invokeTimeout = resilience.DefaultTimeout
	}
	if g.logger == nil {
		g.logger = observe.NopLogger()
	}
	if g.metrics == nil {
		g.metrics = observe.NopMetrics()
	}
	if g.tracer == nil {
		g.tracer = observe.NopTracer()
	}

	return g, nil
}

// Resolve serves a request from the cache, or executes it downstream and
// stores the result under the strategy's effective TTL.
//
// On downstream failure the raw error is returned unwrapped so the boundary
// can run it through the fault classifier; nothing is cached. Store failures
// degrade gracefully: a failed write is logged and the result still returned.
func (g *Gateway) Resolve(ctx context.Context, req *docs.Request) (*Result, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	opName := req.Operation.String()
	log := g.logger.WithOperation(opName).WithCorrelation(req.CorrelationID)
	strategy := Classify(req)

	ctx, span := g.tracer.StartOperation(ctx, opName, req.CorrelationID)

	if g.skipRule(req.Operation) {
		data, err := g.invoke(ctx, req)
		g.tracer.EndOperation(span, false, err)
		if err != nil {
			return nil, err
		}
		return &Result{Data: data, Cached: false, Strategy: strategy}, nil
	}

	key, keyErr := g.keys.Key(req.Operation, req.Params())
	if keyErr != nil {
		// Unkeyable request - execute without caching.
		log.Warn(ctx, "cache key derivation failed, bypassing cache",
			observe.Field{Key: "error", Value: keyErr.Error()})
		data, err := g.invoke(ctx, req)
		g.tracer.EndOperation(span, false, err)
		if err != nil {
			return nil, err
		}
		return &Result{Data: data, Cached: false, Strategy: strategy}, nil
	}

	if value, ok := g.store.Get(ctx, key); ok {
		g.recordStrategy(strategy, true)
		g.metrics.RecordLookup(ctx, opName, string(strategy), true)
		g.tracer.EndOperation(span, true, nil)
		log.Debug(ctx, "cache hit",
			observe.Field{Key: "strategy", Value: string(strategy)})
		return &Result{
			Data:         value,
			Cached:       true,
			Strategy:     strategy,
			CacheHitTime: time.Now(),
		}, nil
	}

	g.recordStrategy(strategy, false)
	g.metrics.RecordLookup(ctx, opName, string(strategy), false)

	data, err := g.invoke(ctx, req)
	if err != nil {
		// Never cache failures; propagate raw for classification.
		g.tracer.EndOperation(span, false, err)
		return nil, err
	}

	result := &Result{Data: data, Cached: false, Strategy: strategy}

	// Canceled upstream: the result exists, but skip the store write.
	if ctx.Err() != nil {
		g.tracer.EndOperation(span, false, nil)
		return result, nil
	}

	ttl := g.ttl.EffectiveTTL(strategy, req)
	if setErr := g.store.Set(ctx, key, data, ttl); setErr != nil {
		g.metrics.RecordStoreError(ctx, opName)
		log.Warn(ctx, "cache write failed",
			observe.Field{Key: "strategy", Value: string(strategy)},
			observe.Field{Key: "ttl_seconds", Value: int(ttl.Seconds())},
			observe.Field{Key: "error", Value: setErr.Error()})
	} else {
		log.Debug(ctx, "cache store",
			observe.Field{Key: "strategy", Value: string(strategy)},
			observe.Field{Key: "ttl_seconds", Value: int(ttl.Seconds())})
	}

	g.tracer.EndOperation(span, false, nil)
	return result, nil
}

func (g *Gateway) invoke(ctx context.Context, req *docs.Request) ([]byte, error) {
	var data []byte
	start := time.Now()
	err := resilience.ExecuteWithTimeout(ctx, g.invokeTimeout, func(ctx context.Context) error {
		var ierr error
		data, ierr = g.invoker.Invoke(ctx, req.Operation, req.Params())
		return ierr
	})
	g.metrics.RecordInvocation(ctx, req.Operation.String(), time.Since(start), err)
	return data, err
}

func (g *Gateway) recordStrategy(strategy Strategy, hit bool) {
	if g.stats != nil {
		g.stats.RecordStrategy(strategy, hit)
	}
}
