// Package engine содержит ядро оркестрации workflow.
//
// Включает:
//   - step.go      — определение шага (Step) и его нормализация
//   - value.go     — значения входов: литерал или ссылка ($name)
//   - graph.go     — граф шагов, топологический порядок, поиск циклов
//   - resolver.go  — резолвинг ссылок на initial inputs и результаты шагов
//   - condition.go — вычисление условия выполнения шага
//   - result.go    — накопление результатов выполнения (Result, StepOutcome)
//
// Engine отвечает за структуру workflow и порядок выполнения шагов.
// Сами агенты (LLM-вызовы и прочее) для engine непрозрачны — их
// выполняет пакет runner через узкий интерфейс StepExecutor.
package engine
