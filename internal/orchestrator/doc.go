// Package orchestrator управляет выполнением запусков workflow.
//
// Orchestrator отвечает за:
//   - Получение новых запусков из очереди RabbitMQ (плюс polling fallback)
//   - Загрузку версии workflow и построение графа шагов
//   - Последовательное выполнение шагов через Runner
//   - Финализацию запуска (SUCCEEDED/FAILED) и публикацию run.completed
//
// Orchestrator — это "мозг" системы, который координирует выполнение.
package orchestrator
