// Package auth guards the operator-facing endpoints (cache warm trigger,
// performance report) with JWT bearer tokens. Live operation requests are
// authenticated by the HTTP boundary upstream and are not this package's
// concern.
package auth
