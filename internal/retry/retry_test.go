package retry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amishk599/jobsift/internal/model"
	"github.com/amishk599/jobsift/internal/scrape"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockFetcher calls a function on each invocation, tracking call count.
type mockFetcher struct {
	calls int
	fn    func(attempt int) ([]byte, error)
}

func (m *mockFetcher) FetchPage(_ context.Context, _ string) ([]byte, error) {
	m.calls++
	return m.fn(m.calls)
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	mock := &mockFetcher{fn: func(_ int) ([]byte, error) {
		return []byte("page"), nil
	}}

	rf := NewRetryFetcher(mock, 2, 10*time.Millisecond, discardLogger())
	got, err := rf.FetchPage(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "page" {
		t.Fatalf("unexpected body: %q", got)
	}
	if mock.calls != 1 {
		t.Fatalf("expected 1 call, got %d", mock.calls)
	}
}

func TestRetry_RetriesOn5xx_SucceedsOnSecondAttempt(t *testing.T) {
	mock := &mockFetcher{fn: func(attempt int) ([]byte, error) {
		if attempt == 1 {
			return nil, &model.HTTPError{StatusCode: 503, Err: errors.New("service unavailable")}
		}
		return []byte("page"), nil
	}}

	rf := NewRetryFetcher(mock, 2, 10*time.Millisecond, discardLogger())
	got, err := rf.FetchPage(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "page" {
		t.Fatalf("unexpected body: %q", got)
	}
	if mock.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.calls)
	}
}

func TestRetry_RetriesNetworkErrors(t *testing.T) {
	mock := &mockFetcher{fn: func(attempt int) ([]byte, error) {
		if attempt < 3 {
			return nil, errors.New("connection reset by peer")
		}
		return []byte("page"), nil
	}}

	rf := NewRetryFetcher(mock, 2, time.Millisecond, discardLogger())
	if _, err := rf.FetchPage(context.Background(), "https://example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.calls != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.calls)
	}
}

func TestRetry_DoesNotRetryOn4xx(t *testing.T) {
	mock := &mockFetcher{fn: func(_ int) ([]byte, error) {
		return nil, &model.HTTPError{StatusCode: 404, Err: errors.New("not found")}
	}}

	rf := NewRetryFetcher(mock, 2, 10*time.Millisecond, discardLogger())
	_, err := rf.FetchPage(context.Background(), "https://example.com")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != 404 {
		t.Fatalf("expected HTTPError with status 404, got %v", err)
	}
	if mock.calls != 1 {
		t.Fatalf("expected 1 call (no retry), got %d", mock.calls)
	}
}

func TestRetry_ZeroRetriesMeansSingleAttempt(t *testing.T) {
	mock := &mockFetcher{fn: func(_ int) ([]byte, error) {
		return nil, &model.HTTPError{StatusCode: 500, Err: errors.New("internal error")}
	}}

	rf := NewRetryFetcher(mock, 0, time.Millisecond, discardLogger())
	if _, err := rf.FetchPage(context.Background(), "https://example.com"); err == nil {
		t.Fatal("expected error, got nil")
	}
	if mock.calls != 1 {
		t.Fatalf("expected 1 call, got %d", mock.calls)
	}
}

func TestRetry_GivesUpAfterMaxRetries(t *testing.T) {
	mock := &mockFetcher{fn: func(_ int) ([]byte, error) {
		return nil, &model.HTTPError{StatusCode: 500, Err: errors.New("internal error")}
	}}

	rf := NewRetryFetcher(mock, 2, 10*time.Millisecond, discardLogger())
	_, err := rf.FetchPage(context.Background(), "https://example.com")
	if err == nil {
		t.Fatal("expected error after max retries, got nil")
	}
	// 1 initial + 2 retries = 3
	if mock.calls != 3 {
		t.Fatalf("expected 3 calls (1 + 2 retries), got %d", mock.calls)
	}
}

func TestRetry_RespectsContextCancellation(t *testing.T) {
	mock := &mockFetcher{fn: func(_ int) ([]byte, error) {
		return nil, &model.HTTPError{StatusCode: 500, Err: errors.New("internal error")}
	}}

	ctx, cancel := context.WithCancel(context.Background())
	// Cancel immediately so the backoff sleep is interrupted.
	cancel()

	rf := NewRetryFetcher(mock, 2, time.Second, discardLogger())
	_, err := rf.FetchPage(ctx, "https://example.com")
	if err == nil {
		t.Fatal("expected error from context cancellation, got nil")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if mock.calls != 1 {
		t.Fatalf("expected 1 call before cancellation, got %d", mock.calls)
	}
}

func TestBackoffDelay_HonorsRetryAfter(t *testing.T) {
	rf := NewRetryFetcher(nil, 2, time.Second, discardLogger())
	err := &model.HTTPError{StatusCode: 429, RetryAfter: 42 * time.Second}
	if got := rf.backoffDelay(1, err); got != 42*time.Second {
		t.Errorf("backoffDelay = %v, want 42s", got)
	}
}

func TestBackoffDelay_ExponentialWithinJitter(t *testing.T) {
	rf := NewRetryFetcher(nil, 3, time.Second, discardLogger())
	got := rf.backoffDelay(3, errors.New("timeout"))
	// 1s * 2^2 = 4s, ±30%
	if got < 2800*time.Millisecond || got > 5200*time.Millisecond {
		t.Errorf("backoffDelay(3) = %v, want within 4s ±30%%", got)
	}
}

func TestBackoffDelay_CapsRetryAfter(t *testing.T) {
	rf := NewRetryFetcher(nil, 2, time.Second, discardLogger())
	err := &model.HTTPError{StatusCode: 503, RetryAfter: time.Hour}
	if got := rf.backoffDelay(1, err); got != maxRetryAfter {
		t.Errorf("backoffDelay = %v, want %v", got, maxRetryAfter)
	}
}

func TestRetry_RetriesClientTimeout(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			select {
			case <-time.After(500 * time.Millisecond):
			case <-r.Context().Done():
			}
			return
		}
		io.WriteString(w, "ok")
	}))
	defer srv.Close()

	client := &http.Client{Timeout: 50 * time.Millisecond}
	rf := NewRetryFetcher(scrape.NewHTTPFetcher(client, ""), 2, time.Millisecond, discardLogger())

	body, err := rf.FetchPage(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("expected success after a timed-out first attempt, got %v", err)
	}
	if string(body) != "ok" || calls.Load() != 2 {
		t.Errorf("body=%q calls=%d, want ok after 2 calls", body, calls.Load())
	}
}

func TestRetry_StopsWhenCallerDeadlinePasses(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	<-ctx.Done()

	mock := &mockFetcher{fn: func(_ int) ([]byte, error) {
		return nil, ctx.Err()
	}}
	rf := NewRetryFetcher(mock, 2, time.Millisecond, discardLogger())
	if _, err := rf.FetchPage(ctx, "https://example.com"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
	if mock.calls != 1 {
		t.Errorf("expected 1 call, got %d", mock.calls)
	}
}
