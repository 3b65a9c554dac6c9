// Package cache implements the adaptive caching layer for documentation
// operations: strategy classification, dynamic TTL calculation, deterministic
// key derivation, and the lookup-or-execute-and-store gateway.
package cache
