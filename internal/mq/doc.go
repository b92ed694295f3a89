// Package mq предоставляет инфраструктуру для работы с RabbitMQ.
//
// Структура:
//   - connection.go — управление соединением с RabbitMQ (reconnect, graceful shutdown)
//   - topology.go   — объявление exchanges, queues, bindings
//   - publisher.go  — публикация сообщений в очереди
//   - consumer.go   — потребление сообщений из очередей
//
// Типы сообщений:
//   - run.pending    — новый запуск ожидает выполнения
//   - run.completed  — запуск завершён
//
// Exchanges:
//   - agentum.runs — события запусков
//   - agentum.dlq  — dead letter queue
package mq
