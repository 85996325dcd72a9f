package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		MaxRetries: 3,
		BaseDelay:  5 * time.Millisecond,
		MaxDelay:   50 * time.Millisecond,
		Timeout:    time.Second,
	}
}

func TestDoFirstAttemptSucceeds(t *testing.T) {
	calls := 0
	result, err := Do(context.Background(), testConfig(), func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})

	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if result != "ok" {
		t.Errorf("Expected ok, got %s", result)
	}
	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
}

func TestDoSucceedsAfterFailures(t *testing.T) {
	calls := 0
	result, err := Do(context.Background(), testConfig(), func(ctx context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("transient")
		}
		return 42, nil
	})

	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if result != 42 {
		t.Errorf("Expected 42, got %d", result)
	}
	if calls != 3 {
		t.Errorf("Expected 3 calls, got %d", calls)
	}
}

func TestDoExhaustsRetries(t *testing.T) {
	cfg := testConfig()
	cfg.MaxRetries = 2

	calls := 0
	_, err := Do(context.Background(), cfg, func(ctx context.Context) (string, error) {
		calls++
		return "", errors.New("persistent")
	})

	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if calls != 3 {
		t.Errorf("Expected 3 calls (MaxRetries+1), got %d", calls)
	}
}

func TestDoStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	_, err := Do(ctx, testConfig(), func(ctx context.Context) (string, error) {
		calls++
		if calls == 2 {
			cancel()
		}
		return "", errors.New("failure")
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if calls > 2 {
		t.Errorf("Expected at most 2 calls after cancellation, got %d", calls)
	}
}

func TestBackoffDelayBounds(t *testing.T) {
	base := 10 * time.Millisecond
	max := 100 * time.Millisecond

	tests := []struct {
		attempt int
		lo      time.Duration
		hi      time.Duration
	}{
		{0, 5 * time.Millisecond, 15 * time.Millisecond},
		{1, 10 * time.Millisecond, 30 * time.Millisecond},
		{2, 20 * time.Millisecond, 60 * time.Millisecond},
		{10, 50 * time.Millisecond, 100 * time.Millisecond},
		{100, 50 * time.Millisecond, 100 * time.Millisecond}, // shift must not overflow
	}

	for _, tt := range tests {
		for i := 0; i < 20; i++ {
			got := backoffDelay(tt.attempt, base, max)
			if got < tt.lo || got > tt.hi {
				t.Errorf("backoffDelay(%d) = %v, expected between %v and %v",
					tt.attempt, got, tt.lo, tt.hi)
			}
		}
	}
}
