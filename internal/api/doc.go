// Package api содержит HTTP API сервер.
//
// Структура:
//   - handler.go           — Handler с DI (репозитории, registry, publisher, logger)
//   - routes.go            — регистрация маршрутов
//   - middleware.go        — middleware (logging, recovery)
//   - response.go          — унифицированные JSON-ответы и обработка ошибок
//   - dto.go               — Data Transfer Objects (request/response)
//   - workflow_handler.go  — обработчики для /workflows
//   - run_handler.go       — обработчики для /runs
//   - schedule_handler.go  — обработчики для /schedules
//   - agent_handler.go     — обработчики для /agents
//
// API предоставляет REST endpoints для управления workflows, их
// запусками, расписаниями и прямым вызовом агентов.
package api
