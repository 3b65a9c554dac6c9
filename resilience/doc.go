// Package resilience provides timeout and retry wrappers for the blocking
// points of the cache layer: store I/O and downstream tool invocation.
// Neither may hang indefinitely; failures surface as errors for the fault
// classifier rather than stalled requests.
package resilience
