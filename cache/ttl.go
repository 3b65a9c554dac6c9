package cache

import (
	"math"
	"time"

	"github.com/dpark2025/personal-pipeline-sub007/docs"
)

// Global TTL bounds. Every effective TTL is clamped into this range,
// regardless of strategy or multipliers.
const (
	MinTTL = 300 * time.Second
	MaxTTL = 28800 * time.Second
)

// baseTTLSeconds is the per-strategy base TTL table.
var baseTTLSeconds = map[Strategy]float64{
	StrategyCriticalIncident:     7200,
	StrategyHighPriorityIncident: 3600,
	StrategyBusinessCritical:     2700,
	StrategyComplexQuery:         1800,
	StrategySimpleQuery:          900,
	StrategyDecisionLogic:        5400,
	StrategyProcedureSteps:       4320,
	StrategyMetadata:             14400,
	StrategyAnalytics:            300,
	StrategyStandard:             600,
}

// BaseTTL returns the base TTL for a strategy before multipliers.
func BaseTTL(strategy Strategy) time.Duration {
	base, ok := baseTTLSeconds[strategy]
	if !ok {
		base = baseTTLSeconds[StrategyStandard]
	}
	return time.Duration(base) * time.Second
}

// TTLCalculator computes effective TTLs from the strategy, the request
// payload, and the wall clock. It holds no mutable state; the clock is
// injectable so the time-of-day factor stays testable.
type TTLCalculator struct {
	// Clock returns the current local time. Defaults to time.Now.
	Clock func() time.Time
}

// NewTTLCalculator creates a calculator using the system clock.
func NewTTLCalculator() *TTLCalculator {
	return &TTLCalculator{Clock: time.Now}
}

// EffectiveTTL computes round(base × timeOfDay × freshness) clamped to
// [MinTTL, MaxTTL]. There is no failure mode.
func (c *TTLCalculator) EffectiveTTL(strategy Strategy, req *docs.Request) time.Duration {
	now := time.Now()
	if c != nil && c.Clock != nil {
		now = c.Clock()
	}

	base := baseTTLSeconds[StrategyStandard]
	if b, ok := baseTTLSeconds[strategy]; ok {
		base = b
	}

	seconds := base * timeOfDayMultiplier(now) * freshnessMultiplier(req)
	ttl := time.Duration(math.Round(seconds)) * time.Second

	return clampTTL(ttl)
}

// timeOfDayMultiplier scales TTLs by operational tempo: entries cached during
// business hours turn over quickly, night-time entries can live longer.
//
//	09:00-17:59 -> 1.0
//	22:00-05:59 -> 1.5
//	otherwise   -> 1.2
func timeOfDayMultiplier(now time.Time) float64 {
	hour := now.Hour()
	switch {
	case hour >= 9 && hour < 18:
		return 1.0
	case hour >= 22 || hour < 6:
		return 1.5
	default:
		return 1.2
	}
}

// freshnessMultiplier scales TTLs by how volatile the requested content is
// expected to be. Factors compose multiplicatively when several hold:
//
//	declared critical severity -> ×0.8 (fresher data for live incidents)
//	more than 20 results       -> ×1.1 (broad queries change slowly)
//	more than 3 systems listed -> ×0.9 (wide blast radius, re-check sooner)
func freshnessMultiplier(req *docs.Request) float64 {
	m := 1.0
	if req == nil {
		return m
	}
	if req.Severity() == "critical" {
		m *= 0.8
	}
	if req.MaxResults() > 20 {
		m *= 1.1
	}
	if len(req.AffectedSystems()) > 3 {
		m *= 0.9
	}
	return m
}

func clampTTL(ttl time.Duration) time.Duration {
	if ttl < MinTTL {
		return MinTTL
	}
	if ttl > MaxTTL {
		return MaxTTL
	}
	return ttl
}
