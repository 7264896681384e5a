package pipeline

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dgallion1/pagemerge/internal/translate"
)

func TestIsRetryable(t *testing.T) {
	retryable := &translate.RetryableError{StatusCode: 503, Message: "busy"}
	if !IsRetryable(retryable) {
		t.Error("expected RetryableError to be retryable")
	}
	if !IsRetryable(fmt.Errorf("wrapped: %w", retryable)) {
		t.Error("expected wrapped RetryableError to be retryable")
	}
	if IsRetryable(errors.New("parse failure")) {
		t.Error("expected plain error not retryable")
	}
	if IsRetryable(nil) {
		t.Error("expected nil not retryable")
	}
}

func TestBackoff_GrowsAndCaps(t *testing.T) {
	for attempt, wantBase := range []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
	} {
		d := Backoff(attempt)
		if d < wantBase || d >= wantBase+wantBase/2 {
			t.Errorf("attempt %d: expected backoff in [%v, %v), got %v",
				attempt, wantBase, wantBase+wantBase/2, d)
		}
	}

	// Far past the cap the base stays at 30s.
	if d := Backoff(20); d < 30*time.Second || d >= 45*time.Second {
		t.Errorf("expected capped backoff in [30s, 45s), got %v", d)
	}
}
