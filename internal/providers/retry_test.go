package providers

import (
	"context"
	"errors"
	"testing"
)

func TestIsRetryable(t *testing.T) {
	if isRetryable(&authError{message: "bad key"}) {
		t.Error("auth errors must not be retried")
	}
	if !isRetryable(&rateLimitError{}) {
		t.Error("rate limit errors should be retried")
	}
	if !isRetryable(&serverError{statusCode: 503}) {
		t.Error("5xx errors should be retried")
	}
	if isRetryable(errors.New("parsing response")) {
		t.Error("generic errors must not be retried")
	}
	if isRetryable(context.Canceled) {
		t.Error("context cancellation must not be retried")
	}
}

func TestRetryWithBackoff_NonRetryableStopsImmediately(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), 3, func() error {
		calls++
		return &authError{message: "nope"}
	})
	if !IsAuthError(err) {
		t.Fatalf("want auth error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryWithBackoff_SucceedsFirstTry(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), 3, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryWithBackoff_ExhaustsRetries(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), 0, func() error {
		calls++
		return &rateLimitError{}
	})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 with maxRetries=0", calls)
	}
}

func TestRetryWithBackoff_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := retryWithBackoff(ctx, 2, func() error {
		return &rateLimitError{}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, got %v", err)
	}
}

func TestServerError_Message(t *testing.T) {
	se := &serverError{statusCode: 502, body: "bad gateway"}
	want := "server error (status 502): bad gateway"
	if se.Error() != want {
		t.Errorf("Error() = %q, want %q", se.Error(), want)
	}
}
