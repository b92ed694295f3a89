package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Провайдеры LLM.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// defaultTimeout — таймаут одного HTTP-запроса к провайдеру.
const defaultTimeout = 60 * time.Second

// Request — один запрос на генерацию текста.
type Request struct {
	// System — системное сообщение (роль ассистента).
	System string

	// Prompt — пользовательский промпт.
	Prompt string

	// Model — модель провайдера. Пустая строка — модель клиента
	// по умолчанию.
	Model string

	// MaxTokens — максимум токенов в ответе.
	MaxTokens int

	// Temperature — температура сэмплирования.
	Temperature float64
}

// Client — клиент одного LLM-провайдера.
type Client interface {
	// Provider возвращает имя провайдера.
	Provider() string

	// Complete выполняет один запрос и возвращает текст ответа.
	Complete(ctx context.Context, req Request) (string, error)
}

// NewClient создаёт клиента указанного провайдера.
func NewClient(provider, apiKey, model string) (Client, error) {
	switch provider {
	case ProviderOpenAI:
		return NewOpenAIClient(apiKey, model), nil
	case ProviderAnthropic:
		return NewAnthropicClient(apiKey, model), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, provider)
	}
}

// newHTTPClient создаёт HTTP-клиент с таймаутом запроса.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}
