package httputil

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errUpstream = errors.New("upstream unavailable")

func TestRetryableError(t *testing.T) {
	// Retryable(nil) returns nil
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	// Non-nil error is wrapped
	err := Retryable(errUpstream)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}

	// Error message is preserved
	if err.Error() != errUpstream.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}

	// errors.Is still reaches the cause
	if !errors.Is(err, errUpstream) {
		t.Error("wrapped error should unwrap to the cause")
	}

	// Non-wrapped errors are not retryable
	if IsRetryable(errUpstream) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetry(t *testing.T) {
	ctx := context.Background()

	// Success on first try
	calls := 0
	err := Retry(ctx, 3, time.Millisecond, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error stops immediately
	calls = 0
	err = Retry(ctx, 3, time.Millisecond, func() error {
		calls++
		return errUpstream
	})
	if !errors.Is(err, errUpstream) {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	// Retryable error triggers retries
	calls = 0
	err = Retry(ctx, 3, time.Millisecond, func() error {
		calls++
		if calls < 2 {
			return Retryable(errUpstream)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}

	// All attempts exhausted returns the last error
	calls = 0
	err = Retry(ctx, 3, time.Millisecond, func() error {
		calls++
		return Retryable(errUpstream)
	})
	if !errors.Is(err, errUpstream) {
		t.Errorf("Should return last error: %v", err)
	}
	if calls != 3 {
		t.Errorf("Should attempt 3 times: %d", calls)
	}
}

func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := Retry(ctx, 3, time.Millisecond, func() error {
		return Retryable(errUpstream)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
