package resilience

import (
	"context"
	"errors"
	"time"
)

// DefaultTimeout bounds store and downstream I/O when no explicit timeout is
// configured.
const DefaultTimeout = 30 * time.Second

// Timeout wraps operations with a deadline.
type Timeout struct {
	timeout time.Duration
}

// NewTimeout creates a new timeout wrapper. Non-positive durations fall back
// to DefaultTimeout.
func NewTimeout(timeout time.Duration) *Timeout {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Timeout{timeout: timeout}
}

// Execute runs the operation on the caller's goroutine under the configured
// deadline. The operation observes the deadline through its context and must
// return once canceled; no work outlives Execute, so values the operation
// writes are safe to read as soon as it returns.
// Returns ErrTimeout when the deadline expired and the operation reported it.
func (t *Timeout) Execute(ctx context.Context, op func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	err := op(ctx)
	if err != nil && ctx.Err() == context.DeadlineExceeded && errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	return err
}

// Duration returns the configured timeout.
func (t *Timeout) Duration() time.Duration {
	return t.timeout
}

// ExecuteWithTimeout is a convenience function to run one operation with a
// timeout.
func ExecuteWithTimeout(ctx context.Context, timeout time.Duration, op func(context.Context) error) error {
	return NewTimeout(timeout).Execute(ctx, op)
}
