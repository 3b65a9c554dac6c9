package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store with cumulative effectiveness counters.
// It is the development and test store; production deployments plug in an
// external key/value engine behind the same interfaces.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
	bytes   int64

	hits        int64
	misses      int64
	evictions   int64
	perStrategy map[Strategy]StrategyCounters
	hourly      [24]int64

	now func() time.Time
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries:     make(map[string]*memoryEntry),
		perStrategy: make(map[Strategy]StrategyCounters),
		now:         time.Now,
	}
}

// Get retrieves a value. Returns (nil, false) on miss or expiry.
// Every lookup counts toward the hit/miss and hourly-usage counters, except
// probe keys, which are exempt from accounting.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	now := s.now()
	probe := strings.HasPrefix(key, ProbePrefix)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !probe {
		s.hourly[now.Hour()]++
	}

	entry, ok := s.entries[key]
	if !ok {
		if !probe {
			s.misses++
		}
		return nil, false
	}

	if now.After(entry.expiresAt) {
		// Expired - clean up lazily and count the eviction.
		s.bytes -= int64(len(entry.value))
		delete(s.entries, key)
		if !probe {
			s.evictions++
			s.misses++
		}
		return nil, false
	}

	if !probe {
		s.hits++
	}
	return entry.value, true
}

// Set stores a value with the given TTL. TTL<=0 means no caching.
// Overwrites are last-write-wins.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.entries[key]; ok {
		s.bytes -= int64(len(prev.value))
	}
	s.entries[key] = &memoryEntry{
		value:     value,
		expiresAt: s.now().Add(ttl),
	}
	s.bytes += int64(len(value))

	return nil
}

// Delete removes a value. Idempotent - no error on miss.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.entries[key]; ok {
		s.bytes -= int64(len(entry.value))
		delete(s.entries, key)
	}
	return nil
}

// RecordStrategy attributes a hit or miss to a caching strategy.
func (s *MemoryStore) RecordStrategy(strategy Strategy, hit bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counters := s.perStrategy[strategy]
	if hit {
		counters.Hits++
	} else {
		counters.Misses++
	}
	s.perStrategy[strategy] = counters
}

// Counters returns a snapshot of the cumulative counters.
func (s *MemoryStore) Counters() Counters {
	s.mu.RLock()
	defer s.mu.RUnlock()

	perStrategy := make(map[Strategy]StrategyCounters, len(s.perStrategy))
	for strategy, counters := range s.perStrategy {
		perStrategy[strategy] = counters
	}

	return Counters{
		Hits:          s.hits,
		Misses:        s.misses,
		Evictions:     s.evictions,
		MemoryUsageMB: float64(s.bytes) / (1024 * 1024),
		PerStrategy:   perStrategy,
		HourlyUsage:   s.hourly,
	}
}

// Len returns the number of live entries, counting expired ones not yet
// swept.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Ensure MemoryStore implements StatsStore
var _ StatsStore = (*MemoryStore)(nil)
