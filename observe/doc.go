// Package observe provides telemetry for the documentation cache layer:
// structured logging with explicit correlation ids, OpenTelemetry tracing for
// operation execution, and metrics for cache lookups, downstream invocations,
// and warm-up batches.
package observe
