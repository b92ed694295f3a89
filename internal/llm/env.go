package llm

import (
	"log/slog"
	"os"
	"strconv"
)

// FromEnv создаёт клиента по переменным окружения.
//
// Переменные:
//   - LLM_PROVIDER — "openai" (по умолчанию) или "anthropic"
//   - LLM_MODEL — модель провайдера (пустая — дефолт клиента)
//   - LLM_MAX_RETRIES — число попыток (по умолчанию 3)
//   - OPENAI_API_KEY / ANTHROPIC_API_KEY — ключ провайдера
func FromEnv(logger *slog.Logger) (Client, error) {
	provider := os.Getenv("LLM_PROVIDER")
	if provider == "" {
		provider = ProviderOpenAI
	}

	var apiKey string
	switch provider {
	case ProviderOpenAI:
		apiKey = os.Getenv("OPENAI_API_KEY")
	case ProviderAnthropic:
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	client, err := NewClient(provider, apiKey, os.Getenv("LLM_MODEL"))
	if err != nil {
		return nil, err
	}

	maxAttempts := 0
	if v := os.Getenv("LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			maxAttempts = n
		}
	}

	return WithRetry(client, maxAttempts, logger), nil
}
