package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestTimeout_CompletesInTime(t *testing.T) {
	timeout := NewTimeout(time.Second)

	err := timeout.Execute(context.Background(), func(context.Context) error {
		return nil
	})
	if err != nil {
		t.Errorf("Execute() = %v, want nil", err)
	}
}

func TestTimeout_Expires(t *testing.T) {
	timeout := NewTimeout(20 * time.Millisecond)

	err := timeout.Execute(context.Background(), func(ctx context.Context) error {
		select {
		case <-time.After(5 * time.Second):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("Execute() = %v, want %v", err, ErrTimeout)
	}
}

// TestTimeout_OperationFinishesBeforeReturn verifies Execute never abandons
// the operation: by the time Execute returns, everything the operation wrote
// is visible to the caller, even when the deadline expired.
func TestTimeout_OperationFinishesBeforeReturn(t *testing.T) {
	timeout := NewTimeout(10 * time.Millisecond)

	finished := false
	err := timeout.Execute(context.Background(), func(ctx context.Context) error {
		<-ctx.Done()
		// A late write after the deadline must still land before Execute
		// returns.
		time.Sleep(5 * time.Millisecond)
		finished = true
		return ctx.Err()
	})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("Execute() = %v, want %v", err, ErrTimeout)
	}
	if !finished {
		t.Error("Execute() returned before the operation finished")
	}
}

func TestTimeout_InnerDeadlineNotMistakenForOwn(t *testing.T) {
	timeout := NewTimeout(time.Minute)

	// The operation surfaces a DeadlineExceeded from some inner deadline
	// while the wrapper's own deadline has not expired.
	err := timeout.Execute(context.Background(), func(context.Context) error {
		return context.DeadlineExceeded
	})
	if errors.Is(err, ErrTimeout) {
		t.Errorf("Execute() = %v, want the inner deadline error untranslated", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Execute() = %v, want context.DeadlineExceeded", err)
	}
}

func TestTimeout_PropagatesOperationError(t *testing.T) {
	timeout := NewTimeout(time.Second)
	opErr := errors.New("downstream failure")

	err := timeout.Execute(context.Background(), func(context.Context) error {
		return opErr
	})
	if !errors.Is(err, opErr) {
		t.Errorf("Execute() = %v, want %v", err, opErr)
	}
}

func TestTimeout_ParentCancellation(t *testing.T) {
	timeout := NewTimeout(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := timeout.Execute(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Execute() = %v, want context.Canceled", err)
	}
}

func TestNewTimeout_Defaults(t *testing.T) {
	if got := NewTimeout(0).Duration(); got != DefaultTimeout {
		t.Errorf("Duration() = %v, want %v", got, DefaultTimeout)
	}
	if got := NewTimeout(-time.Second).Duration(); got != DefaultTimeout {
		t.Errorf("Duration() = %v, want %v", got, DefaultTimeout)
	}
}
