package retry

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	errs "moltscraper/pkg/errors"
	"moltscraper/pkg/logger"
)

func TestExponentialBackoffDoubling(t *testing.T) {
	backoff := &ExponentialBackoff{
		BaseDelay:    100 * time.Millisecond,
		MaxDelay:     1 * time.Second,
		Multiplier:   2.0,
		JitterFactor: 0.0, // deterministic for the test
	}

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{4, 800 * time.Millisecond},
		{5, 1 * time.Second}, // capped
		{6, 1 * time.Second}, // still capped
	}

	for _, tt := range tests {
		if got := backoff.NextDelay(tt.attempt); got != tt.expected {
			t.Errorf("attempt %d: expected %v, got %v", tt.attempt, tt.expected, got)
		}
	}
}

func TestBackoffGrowthAcrossFailures(t *testing.T) {
	// Three consecutive transient failures: observed delays must be
	// non-decreasing and the third at least the first.
	var delays []time.Duration

	op := func() error {
		return errs.New(errs.ErrorTypeServerError, "transient")
	}

	cfg := &Config{
		MaxAttempts: 3,
		Backoff: &ExponentialBackoff{
			BaseDelay:    time.Millisecond,
			MaxDelay:     100 * time.Millisecond,
			Multiplier:   2.0,
			JitterFactor: 0,
		},
		RetryIf: DefaultRetryIf,
		OnRetry: func(attempt int, err error, delay time.Duration) {
			delays = append(delays, delay)
		},
		Context: context.Background(),
		Logger:  logger.NewNop(),
	}

	if err := Do(op, cfg); err == nil {
		t.Fatal("expected error after exhausting retries")
	}

	if len(delays) != 3 {
		t.Fatalf("expected 3 recorded delays, got %d", len(delays))
	}
	for i := 1; i < len(delays); i++ {
		if delays[i] < delays[i-1] {
			t.Errorf("delay %d (%v) decreased from %v", i, delays[i], delays[i-1])
		}
	}
	if delays[2] < delays[0] {
		t.Errorf("third delay %v below first %v", delays[2], delays[0])
	}
}

func TestExponentialBackoffJitterVaries(t *testing.T) {
	backoff := &ExponentialBackoff{
		BaseDelay:    100 * time.Millisecond,
		MaxDelay:     1 * time.Second,
		Multiplier:   2.0,
		JitterFactor: 0.3,
	}

	delays := make(map[time.Duration]bool)
	for i := 0; i < 10; i++ {
		delays[backoff.NextDelay(2)] = true
	}
	if len(delays) < 2 {
		t.Error("expected varying delays with jitter enabled")
	}
}

func TestDoSucceedsAfterRetries(t *testing.T) {
	attempts := 0
	op := func() error {
		attempts++
		if attempts < 3 {
			return errs.New(errs.ErrorTypeNetwork, "flaky")
		}
		return nil
	}

	cfg := &Config{
		MaxAttempts: 5,
		Backoff:     &ConstantBackoff{Delay: time.Millisecond},
		RetryIf:     DefaultRetryIf,
		Context:     context.Background(),
		Logger:      logger.NewNop(),
	}

	if err := Do(op, cfg); err != nil {
		t.Errorf("expected success after retries, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestDoMaxAttemptsExceeded(t *testing.T) {
	attempts := 0
	op := func() error {
		attempts++
		return errs.New(errs.ErrorTypeServerError, "persistent")
	}

	cfg := &Config{
		MaxAttempts: 3,
		Backoff:     &ConstantBackoff{Delay: time.Millisecond},
		RetryIf:     DefaultRetryIf,
		Context:     context.Background(),
		Logger:      logger.NewNop(),
	}

	err := Do(op, cfg)
	if err == nil {
		t.Fatal("expected error when retries are exhausted")
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}

	// The underlying typed error must stay reachable for callers
	var apiErr *errs.Error
	if !stderrors.As(err, &apiErr) {
		t.Error("expected wrapped typed error")
	}
}

func TestDoNonRetryableStops(t *testing.T) {
	attempts := 0
	op := func() error {
		attempts++
		return errs.New(errs.ErrorTypeAuth, "forbidden")
	}

	cfg := &Config{
		MaxAttempts: 5,
		Backoff:     &ConstantBackoff{Delay: time.Millisecond},
		RetryIf:     DefaultRetryIf,
		Context:     context.Background(),
		Logger:      logger.NewNop(),
	}

	if err := Do(op, cfg); err == nil {
		t.Fatal("expected error from non-retryable failure")
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt for non-retryable error, got %d", attempts)
	}
}

func TestDoWithResult(t *testing.T) {
	attempts := 0
	op := func() (int, error) {
		attempts++
		if attempts < 2 {
			return 0, errs.New(errs.ErrorTypeNetwork, "flaky")
		}
		return 42, nil
	}

	cfg := &Config{
		MaxAttempts: 3,
		Backoff:     &ConstantBackoff{Delay: time.Millisecond},
		RetryIf:     DefaultRetryIf,
		Context:     context.Background(),
		Logger:      logger.NewNop(),
	}

	result, err := DoWithResult(op, cfg)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if result != 42 {
		t.Errorf("expected 42, got %d", result)
	}
}

func TestDoContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	op := func() error {
		return errs.New(errs.ErrorTypeNetwork, "flaky")
	}

	cfg := &Config{
		MaxAttempts: 5,
		Backoff:     &ConstantBackoff{Delay: time.Second},
		RetryIf:     DefaultRetryIf,
		Context:     ctx,
		Logger:      logger.NewNop(),
	}

	if err := Do(op, cfg); err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestDefaultRetryIf(t *testing.T) {
	if DefaultRetryIf(nil) {
		t.Error("nil error must not be retried")
	}
	if !DefaultRetryIf(errs.New(errs.ErrorTypeRateLimit, "slow down")) {
		t.Error("rate limit errors are retryable")
	}
	if DefaultRetryIf(errs.New(errs.ErrorTypeParsing, "bad json")) {
		t.Error("parsing errors are not retryable")
	}
	if DefaultRetryIf(context.Canceled) {
		t.Error("context cancellation is not retryable")
	}
	if !DefaultRetryIf(stderrors.New("plain error")) {
		t.Error("untyped errors default to retryable")
	}
}
