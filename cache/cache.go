package cache

import (
	"context"
	"errors"
	"strings"
	"time"
)

// MaxKeyLength is the maximum allowed length for a cache key.
const MaxKeyLength = 512

// ProbePrefix marks keys used by synthetic health probes. Stores exclude
// probe traffic from effectiveness counters so probes never skew hit-rate
// reporting.
const ProbePrefix = "pp:probe:"

// Sentinel errors for cache operations.
var (
	ErrNilStore   = errors.New("cache: store is nil")
	ErrInvalidKey = errors.New("cache: key is invalid")
	ErrKeyTooLong = errors.New("cache: key exceeds max length")
)

// Store is the key/value store behind the cache. The concrete engine is an
// external collaborator; this layer only requires get/set/delete with TTL.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: methods should honor cancellation/deadlines where applicable.
// - Errors: Get never errors; it returns (nil, false) on miss.
type Store interface {
	// Get retrieves a cached value. Returns (nil, false) on miss.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores a value with the given TTL. TTL<=0 means no caching.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a cached value. Idempotent - no error on miss.
	Delete(ctx context.Context, key string) error
}

// StatsStore extends Store with cumulative effectiveness counters.
// Counters are owned by the store: monotonically updated, reset only by
// operator action outside this layer.
type StatsStore interface {
	Store

	// RecordStrategy attributes a hit or miss to a caching strategy.
	RecordStrategy(strategy Strategy, hit bool)

	// Counters returns a snapshot of the cumulative counters.
	Counters() Counters
}

// StrategyCounters holds hit/miss counts for a single strategy.
type StrategyCounters struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

// Counters is a snapshot of cumulative cache effectiveness counters.
type Counters struct {
	Hits          int64                         `json:"hits"`
	Misses        int64                         `json:"misses"`
	Evictions     int64                         `json:"evictions"`
	MemoryUsageMB float64                       `json:"memory_usage_mb"`
	PerStrategy   map[Strategy]StrategyCounters `json:"per_strategy,omitempty"`
	HourlyUsage   [24]int64                     `json:"hourly_usage"`
}

// TotalRequests returns hits plus misses.
func (c Counters) TotalRequests() int64 {
	return c.Hits + c.Misses
}

// ValidateKey checks if a key is valid for caching.
func ValidateKey(key string) error {
	if key == "" || strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	// Reject keys with newlines or carriage returns
	if strings.ContainsAny(key, "\n\r") {
		return ErrInvalidKey
	}
	return nil
}
