// Package health provides liveness and readiness checks for the cache layer:
// a cache-store probe that degrades when effectiveness drops, a downstream
// invoker reachability check, and the HTTP probe handlers.
package health
