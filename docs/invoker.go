package docs

import (
	"context"
	"fmt"
)

// Invoker executes a documentation operation against the downstream tool
// layer and returns the raw JSON result.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: Invoke must honor cancellation/deadlines.
// - Errors: failures should be *InvocationError values so the fault
//   classifier has a stable message surface to match against.
type Invoker interface {
	Invoke(ctx context.Context, op Operation, params map[string]any) ([]byte, error)
}

// InvokerFunc adapts a function to the Invoker interface.
type InvokerFunc func(ctx context.Context, op Operation, params map[string]any) ([]byte, error)

// Invoke calls f.
func (f InvokerFunc) Invoke(ctx context.Context, op Operation, params map[string]any) ([]byte, error) {
	return f(ctx, op, params)
}

// InvocationError is a structured failure from the downstream tool layer.
// The Message field is the stable surface pattern-matched by the fault
// classifier; Cause carries the underlying error for logs.
type InvocationError struct {
	Op      Operation
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *InvocationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("docs: %s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("docs: %s: %s", e.Op, e.Message)
}

// Unwrap returns the underlying cause.
func (e *InvocationError) Unwrap() error {
	return e.Cause
}

// NewInvocationError creates a structured invocation failure.
func NewInvocationError(op Operation, message string, cause error) *InvocationError {
	return &InvocationError{Op: op, Message: message, Cause: cause}
}
