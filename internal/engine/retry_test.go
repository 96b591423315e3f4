package engine

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"
)

var fastRetry = RetryConfig{
	MaxRetries:  2,
	InitialWait: time.Millisecond,
	MaxWait:     5 * time.Millisecond,
	Multiplier:  2.0,
}

func TestRetryDo_SucceedsAfterTransientErrors(t *testing.T) {
	calls := 0
	got, err := RetryDo(context.Background(), fastRetry, func() (string, error) {
		calls++
		if calls < 3 {
			return "", &net.OpError{Op: "dial", Err: errors.New("refused")}
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("RetryDo: %v", err)
	}
	if got != "ok" || calls != 3 {
		t.Errorf("got %q after %d calls, want ok after 3", got, calls)
	}
}

func TestRetryDo_PermanentErrorNotRetried(t *testing.T) {
	calls := 0
	permanent := errors.New("bad request")
	_, err := RetryDo(context.Background(), fastRetry, func() (int, error) {
		calls++
		return 0, permanent
	})
	if !errors.Is(err, permanent) {
		t.Fatalf("err = %v, want %v", err, permanent)
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}
}

func TestRetryDo_ExhaustsRetries(t *testing.T) {
	calls := 0
	_, err := RetryDo(context.Background(), fastRetry, func() (int, error) {
		calls++
		return 0, &net.OpError{Op: "read", Err: errors.New("reset")}
	})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if want := fastRetry.MaxRetries + 1; calls != want {
		t.Errorf("fn called %d times, want %d", calls, want)
	}
}

func TestRetryDo_CustomRetryIf(t *testing.T) {
	// Oracle calls retry on any error, not only transient network ones.
	rc := fastRetry
	rc.RetryIf = func(error) bool { return true }

	calls := 0
	got, err := RetryDo(context.Background(), rc, func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("model overloaded")
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("RetryDo: %v", err)
	}
	if got != "ok" || calls != 3 {
		t.Errorf("got %q after %d calls, want ok after 3", got, calls)
	}
}

func TestRetryDo_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := RetryDo(ctx, fastRetry, func() (int, error) {
		calls++
		return 0, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if calls != 0 {
		t.Errorf("fn called %d times after cancellation, want 0", calls)
	}
}

func TestRetryableStatus(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{http.StatusOK, false},
		{http.StatusNotFound, false},
		{http.StatusForbidden, false},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusBadGateway, true},
		{http.StatusServiceUnavailable, true},
		{http.StatusGatewayTimeout, true},
	}
	for _, tt := range tests {
		if got := retryableStatus(tt.code); got != tt.want {
			t.Errorf("retryableStatus(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestIsTransient(t *testing.T) {
	if isTransient(errors.New("plain")) {
		t.Error("plain error should not be transient")
	}
	if !isTransient(&httpStatusError{StatusCode: 503}) {
		t.Error("retryable status error should be transient")
	}
	if !isTransient(&net.DNSError{Err: "no such host"}) {
		t.Error("DNS error should be transient")
	}
}
