// Package llm содержит клиенты LLM-провайдеров.
//
// Клиенты разных провайдеров (OpenAI, Anthropic) скрыты за общим
// интерфейсом Client: один текстовый запрос — один текстовый ответ.
// Ретраи с экспоненциальной задержкой добавляются обёрткой WithRetry.
//
// Агентам не нужны стриминг и tool use, поэтому клиенты ходят в
// HTTP API провайдеров напрямую, без SDK.
package llm
