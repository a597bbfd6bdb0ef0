package nlp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/types"
)

// mockClient returns scripted errors then a success
type mockClient struct {
	failures int
	err      error
	calls    int
}

func (m *mockClient) Chat(ctx context.Context, messages []types.Message) (*types.Response, error) {
	m.calls++
	if m.calls <= m.failures {
		return nil, m.err
	}
	return &types.Response{Content: "ok"}, nil
}

func (m *mockClient) Close() error { return nil }

func fastRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:        3,
		InitialDelay:      time.Millisecond,
		MaxDelay:          5 * time.Millisecond,
		BackoffMultiplier: 2.0,
	}
}

func TestRetryClientSucceedsAfterTransientFailure(t *testing.T) {
	mock := &mockClient{failures: 2, err: errors.New("503 service unavailable")}
	client := NewRetryClient(mock, fastRetryConfig())

	resp, err := client.Chat(context.Background(), nil)
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if resp.Content != "ok" {
		t.Errorf("Content = %q, want ok", resp.Content)
	}
	if mock.calls != 3 {
		t.Errorf("calls = %d, want 3", mock.calls)
	}
}

func TestRetryClientGivesUpAfterMaxRetries(t *testing.T) {
	mock := &mockClient{failures: 10, err: errors.New("connection refused")}
	client := NewRetryClient(mock, fastRetryConfig())

	_, err := client.Chat(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if mock.calls != 4 {
		t.Errorf("calls = %d, want 4 (1 initial + 3 retries)", mock.calls)
	}
}

func TestRetryClientDoesNotRetryPermanentErrors(t *testing.T) {
	mock := &mockClient{failures: 10, err: errors.New("invalid api key")}
	client := NewRetryClient(mock, fastRetryConfig())

	_, err := client.Chat(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if mock.calls != 1 {
		t.Errorf("calls = %d, want 1 (permanent errors are not retried)", mock.calls)
	}
}

func TestRetryClientRetriesRateLimitError(t *testing.T) {
	mock := &mockClient{failures: 1, err: NewRateLimitError("slow down")}
	client := NewRetryClient(mock, fastRetryConfig())

	if _, err := client.Chat(context.Background(), nil); err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if mock.calls != 2 {
		t.Errorf("calls = %d, want 2", mock.calls)
	}
}

func TestRetryClientHonorsContextDuringBackoff(t *testing.T) {
	mock := &mockClient{failures: 10, err: errors.New("timeout")}
	client := NewRetryClient(mock, &RetryConfig{
		MaxRetries:        3,
		InitialDelay:      time.Minute,
		MaxDelay:          time.Minute,
		BackoffMultiplier: 2.0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.Chat(ctx, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if time.Since(start) > time.Second {
		t.Error("backoff did not yield to context cancellation")
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("500 internal server error"), true},
		{errors.New("request timeout"), true},
		{errors.New("429 too many requests"), true},
		{ErrRateLimit, true},
		{errors.New("model not found"), false},
	}
	for _, tt := range tests {
		if got := isRetryableError(tt.err); got != tt.want {
			t.Errorf("isRetryableError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
