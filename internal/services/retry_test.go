package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWithRetries_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	got, err := withRetries(context.Background(), 3, LinearBackoff(0), func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != "ok" || calls != 1 {
		t.Errorf("Expected one call returning ok, got %q after %d calls", got, calls)
	}
}

func TestWithRetries_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	got, err := withRetries(context.Background(), 3, LinearBackoff(time.Millisecond), func(ctx context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("transient")
		}
		return 42, nil
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != 42 || calls != 3 {
		t.Errorf("Expected success on third call, got %d after %d calls", got, calls)
	}
}

func TestWithRetries_ExhaustsAttempts(t *testing.T) {
	lastErr := errors.New("still broken")
	calls := 0
	got, err := withRetries(context.Background(), 3, LinearBackoff(0), func(ctx context.Context) (string, error) {
		calls++
		return "partial", lastErr
	})
	if calls != 3 {
		t.Errorf("Expected exactly 3 attempts, got %d", calls)
	}
	if !errors.Is(err, lastErr) {
		t.Errorf("Expected last error returned, got %v", err)
	}
	if got != "" {
		t.Errorf("Expected zero value on failure, got %q", got)
	}
}

func TestWithRetries_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := withRetries(ctx, 5, LinearBackoff(time.Hour), func(ctx context.Context) (string, error) {
		calls++
		cancel()
		return "", errors.New("fail")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected no further attempts after cancel, got %d", calls)
	}
}

func TestWithRetries_MinimumOneAttempt(t *testing.T) {
	calls := 0
	_, err := withRetries(context.Background(), 0, LinearBackoff(0), func(ctx context.Context) (string, error) {
		calls++
		return "", errors.New("fail")
	})
	if calls != 1 {
		t.Errorf("Expected exactly 1 attempt for maxAttempts=0, got %d", calls)
	}
	if err == nil {
		t.Error("Expected error")
	}
}

func TestLinearBackoff(t *testing.T) {
	backoff := LinearBackoff(time.Second)
	for attempt := 1; attempt <= 3; attempt++ {
		expected := time.Duration(attempt) * time.Second
		if got := backoff(attempt); got != expected {
			t.Errorf("Expected %v for attempt %d, got %v", expected, attempt, got)
		}
	}
}
