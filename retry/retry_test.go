/*
Copyright 2026 RepoLens Authors
SPDX-License-Identifier: Apache-2.0
*/

package retry_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/repolens/repolens/retry"
)

func testConfig() retry.Config {
	return retry.Config{
		MaxRetries:  3,
		BaseBackoff: time.Millisecond,
		MaxBackoff:  10 * time.Millisecond,
		MaxJitter:   time.Millisecond,
	}
}

// alwaysRetryable considers every error transient.
func alwaysRetryable(err error) bool {
	return err != nil
}

func TestDo_Success(t *testing.T) {
	t.Parallel()
	var attempts atomic.Int32
	result, err := retry.Do(context.Background(), testConfig(), "test_op", alwaysRetryable, func() (string, error) {
		attempts.Add(1)
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "ok" {
		t.Fatalf("expected result %q, got %q", "ok", result)
	}
	if got := attempts.Load(); got != 1 {
		t.Fatalf("expected 1 attempt, got %d", got)
	}
}

func TestDo_SuccessAfterRetries(t *testing.T) {
	t.Parallel()
	var attempts atomic.Int32
	transient := errors.New("503 service unavailable")

	result, err := retry.Do(context.Background(), testConfig(), "test_op", alwaysRetryable, func() (string, error) {
		n := attempts.Add(1)
		if n < 3 {
			return "", transient
		}
		return "recovered", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "recovered" {
		t.Fatalf("expected result %q, got %q", "recovered", result)
	}
	if got := attempts.Load(); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestDo_ExhaustedRetries(t *testing.T) {
	t.Parallel()
	transient := errors.New("429 too many requests")

	var attempts atomic.Int32
	_, err := retry.Do(context.Background(), testConfig(), "test_op", alwaysRetryable, func() (string, error) {
		attempts.Add(1)
		return "", transient
	})
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}

	// 1 initial attempt + MaxRetries retries.
	if got := attempts.Load(); got != 4 {
		t.Fatalf("expected 4 attempts, got %d", got)
	}
	if !errors.Is(err, transient) {
		t.Fatalf("expected wrapped error to contain original, got: %v", err)
	}
	if !strings.HasPrefix(err.Error(), "test_op failed after 3 retries") {
		t.Fatalf("unexpected error message: %v", err)
	}
}

func TestDo_NonRetryableFailsFast(t *testing.T) {
	t.Parallel()
	fatal := errors.New("404 not found")

	var attempts atomic.Int32
	_, err := retry.Do(context.Background(), testConfig(), "test_op", func(error) bool { return false }, func() (string, error) {
		attempts.Add(1)
		return "", fatal
	})
	if !errors.Is(err, fatal) {
		t.Fatalf("expected original error, got: %v", err)
	}
	if got := attempts.Load(); got != 1 {
		t.Fatalf("expected 1 attempt, got %d", got)
	}
}

func TestDo_ContextCancellation(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.BaseBackoff = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := retry.Do(ctx, cfg, "test_op", alwaysRetryable, func() (string, error) {
		return "", errors.New("transient")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()
	if err := retry.DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	bad := retry.Config{MaxRetries: -1}
	if err := bad.Validate(); err == nil {
		t.Fatal("expected validation error for negative MaxRetries")
	}
}
