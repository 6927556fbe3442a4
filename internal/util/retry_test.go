// ABOUTME: Tests for backoff calculation
// ABOUTME: Covers bounds, capping, and jitter variation
package util

import (
	"testing"
	"time"
)

func TestCalculateBackoff_NonPositiveAttempt(t *testing.T) {
	for _, attempt := range []int{0, -1, -100} {
		if got := CalculateBackoff(time.Second, attempt); got != 0 {
			t.Errorf("attempt %d: expected 0, got %v", attempt, got)
		}
	}
}

func TestCalculateBackoff_ExponentialGrowth(t *testing.T) {
	baseDelay := 100 * time.Millisecond

	for attempt := 1; attempt <= 5; attempt++ {
		expectedBase := baseDelay * time.Duration(1<<uint(attempt))
		minExpected := expectedBase * 3 / 4
		maxExpected := expectedBase * 5 / 4

		got := CalculateBackoff(baseDelay, attempt)
		if got < minExpected || got > maxExpected {
			t.Errorf("attempt %d: expected between %v and %v, got %v",
				attempt, minExpected, maxExpected, got)
		}
	}
}

func TestCalculateBackoff_CapsAt30Seconds(t *testing.T) {
	// 2^10 * 1s would be 1024s uncapped; 30s cap plus 25% jitter = 37.5s max
	maxAllowed := 37500 * time.Millisecond

	for _, attempt := range []int{10, 100} {
		got := CalculateBackoff(time.Second, attempt)
		if got > maxAllowed {
			t.Errorf("attempt %d: expected <= %v, got %v", attempt, maxAllowed, got)
		}
		if got < 0 {
			t.Errorf("attempt %d: backoff must not be negative, got %v", attempt, got)
		}
	}
}

func TestCalculateBackoff_JitterVaries(t *testing.T) {
	baseDelay := time.Second
	first := CalculateBackoff(baseDelay, 2)

	varied := false
	for i := 0; i < 100; i++ {
		got := CalculateBackoff(baseDelay, 2)
		if got != first {
			varied = true
		}
		// 4s base, ±25% jitter
		if got < 3*time.Second || got > 5*time.Second {
			t.Errorf("sample %d: expected between 3s and 5s, got %v", i, got)
		}
	}
	if !varied {
		t.Error("expected jitter to vary across 100 samples")
	}
}
