package orchestrator

import (
	"time"

	"github.com/google/uuid"
)

// ActiveRun — запуск в процессе выполнения.
//
// Создаётся когда Orchestrator берёт запуск в работу и удаляется
// когда запуск завершается (SUCCEEDED/FAILED). Используется для
// дедупликации: один и тот же запуск может прийти и из очереди,
// и из polling.
type ActiveRun struct {
	// RunID — идентификатор запуска.
	RunID uuid.UUID

	// WorkflowID — идентификатор workflow.
	WorkflowID uuid.UUID

	// Workflow — имя workflow (для логов и метрик).
	Workflow string

	// StartedAt — время взятия в работу.
	StartedAt time.Time
}

// Age возвращает время, прошедшее с взятия запуска в работу.
func (a *ActiveRun) Age() time.Duration {
	return time.Since(a.StartedAt)
}

// isRunActive проверяет, находится ли запуск в обработке.
func (o *Orchestrator) isRunActive(runID uuid.UUID) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	_, exists := o.activeRuns[runID]
	return exists
}

// addActiveRun добавляет запуск в активные.
func (o *Orchestrator) addActiveRun(active *ActiveRun) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, exists := o.activeRuns[active.RunID]; exists {
		return ErrRunAlreadyActive
	}

	o.activeRuns[active.RunID] = active
	return nil
}

// removeActiveRun удаляет запуск из активных.
func (o *Orchestrator) removeActiveRun(runID uuid.UUID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.activeRuns, runID)
}

// ActiveRunsCount возвращает количество активных запусков.
func (o *Orchestrator) ActiveRunsCount() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.activeRuns)
}

// ActiveRuns возвращает снимок активных запусков.
func (o *Orchestrator) ActiveRuns() []ActiveRun {
	o.mu.RLock()
	defer o.mu.RUnlock()

	runs := make([]ActiveRun, 0, len(o.activeRuns))
	for _, active := range o.activeRuns {
		runs = append(runs, *active)
	}
	return runs
}
