package warm

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dpark2025/personal-pipeline-sub007/cache"
	"github.com/dpark2025/personal-pipeline-sub007/docs"
)

// scriptedInvoker fails for the scenarios whose params carry a poisoned
// alert_type and succeeds otherwise.
type scriptedInvoker struct {
	calls    atomic.Int64
	failWhen func(params map[string]any) bool
}

func (i *scriptedInvoker) Invoke(_ context.Context, op docs.Operation, params map[string]any) ([]byte, error) {
	i.calls.Add(1)
	if i.failWhen != nil && i.failWhen(params) {
		return nil, docs.NewInvocationError(op, "source unavailable", nil)
	}
	return []byte(`{"results":[]}`), nil
}

func newTestWarmer(t *testing.T, store cache.Store, invoker docs.Invoker) *Warmer {
	t.Helper()
	w, err := NewWarmer(Config{
		Store:         store,
		Invoker:       invoker,
		RetryAttempts: 1,
	})
	if err != nil {
		t.Fatalf("NewWarmer() error = %v", err)
	}
	return w
}

func testScenarios(n int) []Scenario {
	scenarios := make([]Scenario, n)
	for i := range scenarios {
		scenarios[i] = Scenario{
			Name:      fmt.Sprintf("scenario-%d", i),
			Operation: docs.OpSearchRunbooks,
			Params: map[string]any{
				"alert_type": fmt.Sprintf("alert-%d", i),
				"severity":   "high",
			},
		}
	}
	return scenarios
}

func TestWarmer_AllSucceed(t *testing.T) {
	store := cache.NewMemoryStore()
	invoker := &scriptedInvoker{}
	w := newTestWarmer(t, store, invoker)

	report := w.Warm(context.Background(), testScenarios(5))

	if report.Attempted != 5 || report.Warmed != 5 || report.Failed != 0 || report.Skipped != 0 {
		t.Errorf("report = %+v, want 5 attempted, 5 warmed", report)
	}
	if store.Len() != 5 {
		t.Errorf("store entries = %d, want 5", store.Len())
	}
}

// TestWarmer_PartialFailure verifies one failing scenario never aborts the
// rest: every other scenario still warms and the failure is reported as data.
func TestWarmer_PartialFailure(t *testing.T) {
	store := cache.NewMemoryStore()
	invoker := &scriptedInvoker{
		failWhen: func(params map[string]any) bool {
			return params["alert_type"] == "alert-3"
		},
	}
	w := newTestWarmer(t, store, invoker)

	scenarios := testScenarios(10)
	report := w.Warm(context.Background(), scenarios)

	if report.Attempted != 10 {
		t.Errorf("Attempted = %d, want 10", report.Attempted)
	}
	if report.Warmed != 9 {
		t.Errorf("Warmed = %d, want 9", report.Warmed)
	}
	if report.Failed != 1 {
		t.Errorf("Failed = %d, want 1", report.Failed)
	}
	if len(report.Outcomes) != 10 {
		t.Fatalf("len(Outcomes) = %d, want 10", len(report.Outcomes))
	}

	// Outcomes keep catalogue order.
	for i, outcome := range report.Outcomes {
		if outcome.Scenario != scenarios[i].Name {
			t.Errorf("Outcomes[%d].Scenario = %q, want %q", i, outcome.Scenario, scenarios[i].Name)
		}
	}
	failed := report.Outcomes[3]
	if failed.Outcome != OutcomeFailed {
		t.Errorf("Outcomes[3].Outcome = %q, want %q", failed.Outcome, OutcomeFailed)
	}
	if failed.Error == "" {
		t.Error("failed outcome has empty Error")
	}
}

func TestWarmer_SkipsPresentEntries(t *testing.T) {
	store := cache.NewMemoryStore()
	invoker := &scriptedInvoker{}
	w := newTestWarmer(t, store, invoker)

	scenarios := testScenarios(3)

	first := w.Warm(context.Background(), scenarios)
	if first.Warmed != 3 {
		t.Fatalf("first run Warmed = %d, want 3", first.Warmed)
	}

	second := w.Warm(context.Background(), scenarios)
	if second.Skipped != 3 || second.Warmed != 0 {
		t.Errorf("second run = %+v, want 3 skipped, 0 warmed", second)
	}
	if invoker.calls.Load() != 3 {
		t.Errorf("invoker calls = %d, want 3 (no re-invocation of warm entries)", invoker.calls.Load())
	}
}

func TestWarmer_RetriesBeforeFailing(t *testing.T) {
	store := cache.NewMemoryStore()
	var attempts atomic.Int64
	invoker := docs.InvokerFunc(func(_ context.Context, op docs.Operation, _ map[string]any) ([]byte, error) {
		if attempts.Add(1) == 1 {
			return nil, docs.NewInvocationError(op, "transient timeout", nil)
		}
		return []byte(`{}`), nil
	})

	w, err := NewWarmer(Config{Store: store, Invoker: invoker, RetryAttempts: 2})
	if err != nil {
		t.Fatalf("NewWarmer() error = %v", err)
	}

	report := w.Warm(context.Background(), testScenarios(1))
	if report.Warmed != 1 {
		t.Errorf("Warmed = %d, want 1 after retry", report.Warmed)
	}
	if attempts.Load() != 2 {
		t.Errorf("attempts = %d, want 2", attempts.Load())
	}
}

// TestWarmer_SlowScenarioTimesOut verifies a scenario that outlives its
// timeout fails cleanly: every attempt has returned before the report does,
// so a late invocation can never write a stale value into the store.
func TestWarmer_SlowScenarioTimesOut(t *testing.T) {
	store := cache.NewMemoryStore()
	var finished atomic.Int64
	invoker := docs.InvokerFunc(func(ctx context.Context, op docs.Operation, _ map[string]any) ([]byte, error) {
		<-ctx.Done()
		finished.Add(1)
		return nil, docs.NewInvocationError(op, "search timed out", ctx.Err())
	})

	w, err := NewWarmer(Config{
		Store:           store,
		Invoker:         invoker,
		ScenarioTimeout: 10 * time.Millisecond,
		RetryAttempts:   2,
	})
	if err != nil {
		t.Fatalf("NewWarmer() error = %v", err)
	}

	report := w.Warm(context.Background(), testScenarios(1))
	if report.Failed != 1 || report.Warmed != 0 {
		t.Errorf("report = %+v, want 1 failed", report)
	}
	if got := finished.Load(); got != 2 {
		t.Errorf("completed attempts = %d, want 2 (none abandoned mid-flight)", got)
	}
	if store.Len() != 0 {
		t.Errorf("store entries = %d after timeout, want 0", store.Len())
	}
}

func TestWarmer_StoreWriteFailureCountsAsFailed(t *testing.T) {
	store := &failingStore{MemoryStore: cache.NewMemoryStore()}
	w := newTestWarmer(t, store, &scriptedInvoker{})

	report := w.Warm(context.Background(), testScenarios(2))
	if report.Failed != 2 || report.Warmed != 0 {
		t.Errorf("report = %+v, want 2 failed", report)
	}
}

type failingStore struct {
	*cache.MemoryStore
}

func (s *failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("store full")
}

func TestWarmer_EmptyCatalogue(t *testing.T) {
	w := newTestWarmer(t, cache.NewMemoryStore(), &scriptedInvoker{})

	report := w.Warm(context.Background(), nil)
	if report.Attempted != 0 || len(report.Outcomes) != 0 {
		t.Errorf("report = %+v, want empty", report)
	}
}

func TestNewWarmer_RequiresStoreAndInvoker(t *testing.T) {
	if _, err := NewWarmer(Config{Invoker: &scriptedInvoker{}}); !errors.Is(err, cache.ErrNilStore) {
		t.Errorf("NewWarmer() without store = %v, want %v", err, cache.ErrNilStore)
	}
	if _, err := NewWarmer(Config{Store: cache.NewMemoryStore()}); err == nil {
		t.Error("NewWarmer() without invoker = nil, want error")
	}
}
