// Package runner выполняет граф workflow последовательно.
//
// Runner берёт готовый engine.Graph, резолвит порядок шагов и
// прогоняет их один за другим через StepExecutor: резолвинг входов,
// проверка условия, вызов агента, запись исхода в engine.Result.
//
// Политика отказов строгая: первая ошибка шага (данных или агента)
// помечает запуск как FAILED и останавливает выполнение — оставшиеся
// шаги не выполняются и в исходах отсутствуют. SKIPPED означает
// ровно одно: условие шага оказалось ложным.
// Структурные ошибки графа дают FAILED без единого исхода шага.
// Execute никогда не возвращает error за пределы Result: все ошибки
// выполнения фиксируются внутри него.
package runner
