// Package docs defines the shared domain types for the operational
// documentation tool layer: the closed set of operations, the request shape
// handed in by the HTTP boundary, and the downstream invoker contract.
package docs
