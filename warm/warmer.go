package warm

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dpark2025/personal-pipeline-sub007/cache"
	"github.com/dpark2025/personal-pipeline-sub007/docs"
	"github.com/dpark2025/personal-pipeline-sub007/observe"
	"github.com/dpark2025/personal-pipeline-sub007/resilience"
)

// Outcome is the result of warming one scenario.
type Outcome string

const (
	// OutcomeWarmed means the scenario was invoked and stored.
	OutcomeWarmed Outcome = "warmed"
	// OutcomeSkipped means the entry was already present.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeFailed means the scenario could not be warmed.
	OutcomeFailed Outcome = "failed"
)

// ScenarioOutcome records what happened to one scenario.
type ScenarioOutcome struct {
	Scenario  string  `json:"scenario"`
	Operation string  `json:"operation"`
	Outcome   Outcome `json:"outcome"`
	Error     string  `json:"error,omitempty"`
}

// Report summarizes one warm-up run. Partial failure is the normal case:
// the per-scenario outcomes make it explicit instead of burying it in logs.
type Report struct {
	Attempted int               `json:"attempted"`
	Warmed    int               `json:"warmed"`
	Skipped   int               `json:"skipped"`
	Failed    int               `json:"failed"`
	Outcomes  []ScenarioOutcome `json:"outcomes"`
	Duration  time.Duration     `json:"duration_ns"`
}

// Config configures a Warmer. Store and Invoker are required.
type Config struct {
	Store   cache.Store
	Invoker docs.Invoker

	// KeyBuilder must match the live request path so warmed entries are
	// found by real traffic. Default: cache.NewDefaultKeyBuilder().
	KeyBuilder cache.KeyBuilder

	// TTL computes entry TTLs exactly as the live path would.
	// Default: cache.NewTTLCalculator().
	TTL *cache.TTLCalculator

	// Concurrency bounds how many scenarios warm in parallel. Default: 2.
	Concurrency int

	// ScenarioTimeout bounds each downstream invocation. Default: 10s.
	ScenarioTimeout time.Duration

	// RetryAttempts is how many times a failing scenario is attempted
	// before it is recorded as failed. Default: 2.
	RetryAttempts int

	Logger  observe.Logger
	Metrics observe.Metrics
}

// Warmer pre-populates the cache from a scenario catalogue.
type Warmer struct {
	store       cache.Store
	invoker     docs.Invoker
	keys        cache.KeyBuilder
	ttl         *cache.TTLCalculator
	concurrency int
	timeout     time.Duration
	retry       *resilience.Retry
	logger      observe.Logger
	metrics     observe.Metrics
}

// NewWarmer creates a warmer from the given configuration.
func NewWarmer(cfg Config) (*Warmer, error) {
	if cfg.Store == nil {
		return nil, cache.ErrNilStore
	}
	if cfg.Invoker == nil {
		return nil, errors.New("warm: invoker is nil")
	}

	w := &Warmer{
		store:       cfg.Store,
		invoker:     cfg.Invoker,
		keys:        cfg.KeyBuilder,
		ttl:         cfg.TTL,
		concurrency: cfg.Concurrency,
		timeout:     cfg.ScenarioTimeout,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
	}
	if w.keys == nil {
		w.keys = cache.NewDefaultKeyBuilder()
	}
	if w.ttl == nil {
		w.ttl = cache.NewTTLCalculator()
	}
	if w.concurrency <= 0 {
		w.concurrency = 2
	}
	if w.timeout <= 0 {
		w.timeout = 10 * time.Second
	}
	attempts := cfg.RetryAttempts
	if attempts <= 0 {
		attempts = 2
	}
	w.retry = resilience.NewRetry(resilience.RetryConfig{
		MaxAttempts:  attempts,
		InitialDelay: 250 * time.Millisecond,
		Jitter:       true,
	})
	if w.logger == nil {
		w.logger = observe.NopLogger()
	}
	if w.metrics == nil {
		w.metrics = observe.NopMetrics()
	}

	return w, nil
}

// Warm pre-populates the store for every scenario in the catalogue.
//
// Scenarios run with bounded concurrency. One scenario's failure never
// aborts the rest; the outcome of every scenario is collected into the
// report. Warm itself has no error return - per-scenario failures are data,
// not control flow.
func (w *Warmer) Warm(ctx context.Context, scenarios []Scenario) Report {
	start := time.Now()
	outcomes := make([]ScenarioOutcome, len(scenarios))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)

	for i, scenario := range scenarios {
		i, scenario := i, scenario
		g.Go(func() error {
			outcomes[i] = w.warmOne(ctx, scenario)
			w.metrics.RecordWarmScenario(ctx, string(outcomes[i].Outcome))
			return nil
		})
	}

	// Goroutines never return errors; Wait is for completion only.
	_ = g.Wait()

	report := Report{
		Attempted: len(scenarios),
		Outcomes:  outcomes,
		Duration:  time.Since(start),
	}
	for _, o := range outcomes {
		switch o.Outcome {
		case OutcomeWarmed:
			report.Warmed++
		case OutcomeSkipped:
			report.Skipped++
		case OutcomeFailed:
			report.Failed++
		}
	}

	w.logger.Info(ctx, "cache warm-up finished",
		observe.Field{Key: "attempted", Value: report.Attempted},
		observe.Field{Key: "warmed", Value: report.Warmed},
		observe.Field{Key: "skipped", Value: report.Skipped},
		observe.Field{Key: "failed", Value: report.Failed},
		observe.Field{Key: "duration_ms", Value: time.Since(start).Milliseconds()})

	return report
}

func (w *Warmer) warmOne(ctx context.Context, scenario Scenario) ScenarioOutcome {
	outcome := ScenarioOutcome{
		Scenario:  scenario.Name,
		Operation: scenario.Operation.String(),
	}
	log := w.logger.WithOperation(scenario.Operation.String())

	req := scenario.Request()

	key, err := w.keys.Key(scenario.Operation, scenario.Params)
	if err != nil {
		outcome.Outcome = OutcomeFailed
		outcome.Error = err.Error()
		log.Warn(ctx, "warm scenario unkeyable",
			observe.Field{Key: "scenario", Value: scenario.Name},
			observe.Field{Key: "error", Value: err.Error()})
		return outcome
	}

	if _, ok := w.store.Get(ctx, key); ok {
		outcome.Outcome = OutcomeSkipped
		return outcome
	}

	var data []byte
	err = w.retry.Execute(ctx, func(ctx context.Context) error {
		return resilience.ExecuteWithTimeout(ctx, w.timeout, func(ctx context.Context) error {
			var ierr error
			data, ierr = w.invoker.Invoke(ctx, scenario.Operation, scenario.Params)
			return ierr
		})
	})
	if err != nil {
		outcome.Outcome = OutcomeFailed
		outcome.Error = err.Error()
		log.Warn(ctx, "warm scenario failed",
			observe.Field{Key: "scenario", Value: scenario.Name},
			observe.Field{Key: "error", Value: err.Error()})
		return outcome
	}

	strategy := cache.Classify(req)
	ttl := w.ttl.EffectiveTTL(strategy, req)
	if err := w.store.Set(ctx, key, data, ttl); err != nil {
		outcome.Outcome = OutcomeFailed
		outcome.Error = err.Error()
		log.Warn(ctx, "warm scenario store failed",
			observe.Field{Key: "scenario", Value: scenario.Name},
			observe.Field{Key: "error", Value: err.Error()})
		return outcome
	}

	outcome.Outcome = OutcomeWarmed
	log.Debug(ctx, "warm scenario stored",
		observe.Field{Key: "scenario", Value: scenario.Name},
		observe.Field{Key: "strategy", Value: string(strategy)},
		observe.Field{Key: "ttl_seconds", Value: int(ttl.Seconds())})
	return outcome
}
