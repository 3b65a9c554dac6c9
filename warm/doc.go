// Package warm pre-populates the cache for known high-value scenarios:
// the canonical incident archetypes and searches responders reach for first.
// Warm-up is best-effort - individual scenario failures are collected in the
// report, never raised - and runs out-of-band from live request handling.
package warm
