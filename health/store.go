package health

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/dpark2025/personal-pipeline-sub007/cache"
	"github.com/dpark2025/personal-pipeline-sub007/docs"
)

// criticalHitRate is the hit-rate fraction below which the store check
// reports degraded. It matches the analyzer's critical tier.
const criticalHitRate = 0.4

// minSampleSize is how many lookups must accumulate before the hit rate is
// trusted enough to degrade the check.
const minSampleSize = 50

// StoreChecker verifies the cache store can round-trip an entry and, when
// the store exposes counters, that cache effectiveness has not collapsed.
type StoreChecker struct {
	store cache.Store
}

// NewStoreChecker creates a store checker.
func NewStoreChecker(store cache.Store) *StoreChecker {
	return &StoreChecker{store: store}
}

// Name returns "cache-store".
func (c *StoreChecker) Name() string { return "cache-store" }

// Check writes, reads, and deletes a probe entry, then inspects counters.
func (c *StoreChecker) Check(ctx context.Context) Result {
	// Snapshot counters before the probe round-trip so probe traffic never
	// enters the hit-rate sample.
	var counters cache.Counters
	stats, hasStats := c.store.(cache.StatsStore)
	if hasStats {
		counters = stats.Counters()
	}

	key := fmt.Sprintf("%shealth:%d", cache.ProbePrefix, time.Now().UnixNano())
	probe := []byte(`{"probe":true}`)

	if err := c.store.Set(ctx, key, probe, time.Minute); err != nil {
		return Unhealthy("cache store write failed", err)
	}
	value, ok := c.store.Get(ctx, key)
	if !ok || !bytes.Equal(value, probe) {
		return Unhealthy("cache store read-after-write failed", nil)
	}
	if err := c.store.Delete(ctx, key); err != nil {
		return Unhealthy("cache store delete failed", err)
	}

	result := Healthy("cache store operational")

	if hasStats {
		total := counters.TotalRequests()
		result.Details = map[string]any{
			"hits":   counters.Hits,
			"misses": counters.Misses,
		}
		if total >= minSampleSize {
			hitRate := float64(counters.Hits) / float64(total)
			if hitRate < criticalHitRate {
				degraded := Degraded(fmt.Sprintf("cache hit rate %.0f%% below critical threshold", hitRate*100))
				degraded.Details = result.Details
				return degraded
			}
		}
	}

	return result
}

// InvokerChecker verifies the downstream tool layer responds to its health
// operation.
type InvokerChecker struct {
	invoker docs.Invoker
}

// NewInvokerChecker creates an invoker checker.
func NewInvokerChecker(invoker docs.Invoker) *InvokerChecker {
	return &InvokerChecker{invoker: invoker}
}

// Name returns "tool-layer".
func (c *InvokerChecker) Name() string { return "tool-layer" }

// Check invokes the health operation downstream.
func (c *InvokerChecker) Check(ctx context.Context) Result {
	if _, err := c.invoker.Invoke(ctx, docs.OpHealthCheck, nil); err != nil {
		return Unhealthy("tool layer health check failed", err)
	}
	return Healthy("tool layer reachable")
}

// Ensure checkers implement Checker
var (
	_ Checker = (*StoreChecker)(nil)
	_ Checker = (*InvokerChecker)(nil)
)
