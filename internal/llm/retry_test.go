package llm

import (
	"context"
	"errors"
	"testing"
)

// flakyClient падает заданное число раз, потом отвечает.
type flakyClient struct {
	failures int
	err      error
	calls    int
}

func (c *flakyClient) Provider() string {
	return "flaky"
}

func (c *flakyClient) Complete(context.Context, Request) (string, error) {
	c.calls++
	if c.calls <= c.failures {
		return "", c.err
	}
	return "ok", nil
}

func TestWithRetry_RecoversFromTransientErrors(t *testing.T) {
	client := &flakyClient{
		failures: 1,
		err:      &APIError{Provider: "flaky", StatusCode: 429, Message: "rate limited"},
	}

	r := WithRetry(client, 3, nil)

	text, err := r.Complete(context.Background(), Request{Prompt: "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "ok" {
		t.Errorf("expected ok, got %q", text)
	}
	if client.calls != 2 {
		t.Errorf("expected 2 calls, got %d", client.calls)
	}
}

func TestWithRetry_DoesNotRetryConfigErrors(t *testing.T) {
	client := &flakyClient{
		failures: 10,
		err:      ErrMissingAPIKey,
	}

	r := WithRetry(client, 3, nil)

	_, err := r.Complete(context.Background(), Request{Prompt: "hi"})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if client.calls != 1 {
		t.Errorf("config errors should not be retried, calls: %d", client.calls)
	}
}

func TestWithRetry_DoesNotRetryClientAPIErrors(t *testing.T) {
	client := &flakyClient{
		failures: 10,
		err:      &APIError{Provider: "flaky", StatusCode: 400, Message: "bad request"},
	}

	r := WithRetry(client, 3, nil)

	_, err := r.Complete(context.Background(), Request{Prompt: "hi"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 400 {
		t.Fatalf("expected 400 APIError, got %v", err)
	}
	if client.calls != 1 {
		t.Errorf("4xx errors should not be retried, calls: %d", client.calls)
	}
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	_, err := NewClient("mistral", "key", "model")
	if !errors.Is(err, ErrUnsupportedProvider) {
		t.Errorf("expected ErrUnsupportedProvider, got %v", err)
	}
}

func TestAPIError_Retryable(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{400, false},
		{401, false},
		{404, false},
		{429, true},
		{500, true},
		{503, true},
	}

	for _, tt := range tests {
		e := &APIError{Provider: "p", StatusCode: tt.status}
		if e.Retryable() != tt.want {
			t.Errorf("status %d: expected retryable=%v", tt.status, tt.want)
		}
	}
}
