// Package perf turns cumulative cache counters into an effectiveness report:
// hit rate, efficiency score, per-strategy breakdowns, peak-hour detection,
// and deterministic recommendations for operators.
package perf
