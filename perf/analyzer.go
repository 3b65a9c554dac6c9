package perf

import (
	"fmt"
	"math"

	"github.com/dpark2025/personal-pipeline-sub007/cache"
)

// Performance impact tiers, from worst to best.
const (
	ImpactCritical  = "critical"
	ImpactPoor      = "poor"
	ImpactModerate  = "moderate"
	ImpactGood      = "good"
	ImpactExcellent = "excellent"
)

// Weights of the efficiency score components.
const (
	hitRateWeight  = 0.6
	memoryWeight   = 0.2
	evictionWeight = 0.2
)

// memoryBudgetMB is the memory footprint the efficiency score treats as
// fully efficient.
const memoryBudgetMB = 100.0

// peakFactor marks an hour as peak when its usage exceeds this multiple of
// the 24-hour average.
const peakFactor = 1.5

// StrategyReport is the per-strategy hit/miss breakdown.
type StrategyReport struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"` // percentage
}

// DetailedMetrics carries the raw numbers behind the headline figures.
type DetailedMetrics struct {
	Hits               int64                             `json:"hits"`
	Misses             int64                             `json:"misses"`
	Evictions          int64                             `json:"evictions"`
	MemoryUsageMB      float64                           `json:"memory_usage_mb"`
	EvictionRate       float64                           `json:"eviction_rate"`
	MemoryEfficiency   float64                           `json:"memory_efficiency"`
	EvictionEfficiency float64                           `json:"eviction_efficiency"`
	PerStrategy        map[cache.Strategy]StrategyReport `json:"per_strategy,omitempty"`
	HourlyUsage        [24]int64                         `json:"hourly_usage"`
}

// Report is the cache effectiveness report served to operators.
type Report struct {
	HitRate           float64         `json:"hit_rate"` // percentage
	TotalRequests     int64           `json:"total_requests"`
	EfficiencyScore   float64         `json:"efficiency_score"`
	PerformanceImpact string          `json:"performance_impact"`
	PeakHours         []int           `json:"peak_hours"`
	Recommendations   []string        `json:"recommendations"`
	DetailedMetrics   DetailedMetrics `json:"detailed_metrics"`
}

// Analyze computes the effectiveness report from a counter snapshot.
// It is pure and idempotent: the same counters always produce the same
// report.
func Analyze(c cache.Counters) Report {
	total := c.TotalRequests()

	hitRate := 0.0
	evictionRate := 0.0
	if total > 0 {
		hitRate = float64(c.Hits) / float64(total)
		evictionRate = float64(c.Evictions) / float64(total)
	}

	memoryEfficiency := 1.0
	if c.MemoryUsageMB > 0 {
		memoryEfficiency = math.Min(1, memoryBudgetMB/c.MemoryUsageMB)
	}
	evictionEfficiency := math.Max(0, 1-2*evictionRate)

	efficiency := 100 * (hitRateWeight*hitRate +
		memoryWeight*memoryEfficiency +
		evictionWeight*evictionEfficiency)

	peaks := peakHours(c.HourlyUsage)

	return Report{
		HitRate:           round2(hitRate * 100),
		TotalRequests:     total,
		EfficiencyScore:   round2(efficiency),
		PerformanceImpact: impactTier(hitRate),
		PeakHours:         peaks,
		Recommendations:   recommendations(total, hitRate, evictionRate, c.MemoryUsageMB, peaks),
		DetailedMetrics: DetailedMetrics{
			Hits:               c.Hits,
			Misses:             c.Misses,
			Evictions:          c.Evictions,
			MemoryUsageMB:      round2(c.MemoryUsageMB),
			EvictionRate:       round2(evictionRate),
			MemoryEfficiency:   round2(memoryEfficiency),
			EvictionEfficiency: round2(evictionEfficiency),
			PerStrategy:        perStrategy(c.PerStrategy),
			HourlyUsage:        c.HourlyUsage,
		},
	}
}

// impactTier maps a hit-rate fraction to a performance tier.
func impactTier(hitRate float64) string {
	switch {
	case hitRate < 0.4:
		return ImpactCritical
	case hitRate < 0.6:
		return ImpactPoor
	case hitRate < 0.75:
		return ImpactModerate
	case hitRate < 0.9:
		return ImpactGood
	default:
		return ImpactExcellent
	}
}

// peakHours returns the hours whose usage exceeds peakFactor times the
// 24-hour average.
func peakHours(hourly [24]int64) []int {
	var sum int64
	for _, n := range hourly {
		sum += n
	}
	if sum == 0 {
		return nil
	}

	avg := float64(sum) / 24
	var peaks []int
	for hour, n := range hourly {
		if float64(n) > peakFactor*avg {
			peaks = append(peaks, hour)
		}
	}
	return peaks
}

// recommendations derives operator guidance from the analysis thresholds.
// The output is deterministic for a given counter snapshot.
func recommendations(total int64, hitRate, evictionRate, memoryMB float64, peaks []int) []string {
	var recs []string

	if total == 0 {
		return []string{
			"No cache traffic recorded yet; trigger cache warming to pre-populate high-value scenarios",
		}
	}

	switch {
	case hitRate < 0.4:
		recs = append(recs, "Hit rate below 40%: review strategy TTLs and enable scheduled cache warming")
	case hitRate < 0.6:
		recs = append(recs, "Hit rate below 60%: consider longer TTLs for stable content and warming high-value scenarios")
	}

	if evictionRate > 0.1 {
		recs = append(recs, "Eviction rate above 10%: increase the cache memory allocation")
	}

	if memoryMB > memoryBudgetMB {
		recs = append(recs, fmt.Sprintf("Memory usage above %.0fMB: review entry sizes or shorten metadata TTLs", memoryBudgetMB))
	}

	if len(peaks) > 0 {
		recs = append(recs, fmt.Sprintf("Schedule cache warming ahead of peak hours %v", peaks))
	}

	if len(recs) == 0 {
		recs = append(recs, "Cache performance is healthy; no action required")
	}

	return recs
}

func perStrategy(counters map[cache.Strategy]cache.StrategyCounters) map[cache.Strategy]StrategyReport {
	if len(counters) == 0 {
		return nil
	}

	out := make(map[cache.Strategy]StrategyReport, len(counters))
	for strategy, c := range counters {
		rate := 0.0
		if c.Hits+c.Misses > 0 {
			rate = float64(c.Hits) / float64(c.Hits+c.Misses)
		}
		out[strategy] = StrategyReport{
			Hits:    c.Hits,
			Misses:  c.Misses,
			HitRate: round2(rate * 100),
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
