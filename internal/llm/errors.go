package llm

import (
	"errors"
	"fmt"
)

// Ошибки LLM-клиентов.
var (
	// ErrUnsupportedProvider — неизвестный провайдер.
	ErrUnsupportedProvider = errors.New("unsupported llm provider")

	// ErrMissingAPIKey — не задан API-ключ провайдера.
	ErrMissingAPIKey = errors.New("missing api key")

	// ErrEmptyCompletion — провайдер вернул пустой ответ.
	ErrEmptyCompletion = errors.New("empty completion")
)

// APIError — ошибка HTTP API провайдера.
type APIError struct {
	// Provider — имя провайдера.
	Provider string

	// StatusCode — HTTP-статус ответа.
	StatusCode int

	// Message — сообщение об ошибке из тела ответа.
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s api error %d: %s", e.Provider, e.StatusCode, e.Message)
}

// Retryable сообщает, имеет ли смысл повторить запрос.
// Повторяются rate limit и серверные ошибки.
func (e *APIError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}
