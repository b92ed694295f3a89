package llm

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// defaultMaxAttempts — число попыток по умолчанию.
const defaultMaxAttempts = 3

// RetryingClient — Client с ретраями и экспоненциальной задержкой.
//
// Повторяются сетевые сбои и retryable-ошибки API (429, 5xx).
// Ошибки конфигурации и невалидные запросы не повторяются.
type RetryingClient struct {
	client      Client
	maxAttempts int
	logger      *slog.Logger
}

// WithRetry оборачивает клиента в ретраи.
func WithRetry(client Client, maxAttempts int, logger *slog.Logger) *RetryingClient {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RetryingClient{
		client:      client,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

func (c *RetryingClient) Provider() string {
	return c.client.Provider()
}

// Complete выполняет запрос, повторяя его при временных сбоях.
func (c *RetryingClient) Complete(ctx context.Context, req Request) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		text, err := c.client.Complete(ctx, req)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if !retryable(err) || attempt == c.maxAttempts {
			break
		}

		// Экспоненциальная задержка: 1s, 2s, 4s...
		backoff := time.Duration(1<<(attempt-1)) * time.Second

		c.logger.Warn("llm call failed, retrying",
			slog.String("provider", c.client.Provider()),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", c.maxAttempts),
			slog.Duration("backoff", backoff),
			slog.String("error", err.Error()),
		)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
	}

	return "", lastErr
}

// retryable сообщает, стоит ли повторять запрос после этой ошибки.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrMissingAPIKey) || errors.Is(err, ErrUnsupportedProvider) {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}

	// Сетевые и прочие транспортные сбои повторяем
	return true
}
