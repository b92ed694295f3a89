package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/shaiso/Agentum/internal/engine"
)

// Run — экземпляр выполнения workflow.
//
// Run создаётся когда:
// - Пользователь запускает workflow вручную (через API/CLI)
// - Scheduler создаёт run по расписанию
//
// Каждый run выполняет конкретную версию workflow последовательно,
// шаг за шагом, и хранит исходы всех шагов.
type Run struct {
	// ID — уникальный идентификатор run.
	ID uuid.UUID `json:"id"`

	// WorkflowID — ссылка на workflow, который выполняется.
	WorkflowID uuid.UUID `json:"workflow_id"`

	// Version — версия workflow, которая выполняется.
	Version int `json:"version"`

	// Status — текущий статус выполнения.
	Status RunStatus `json:"status"`

	// Inputs — initial inputs, переданные при запуске.
	Inputs map[string]any `json:"inputs,omitempty"`

	// Steps — исходы шагов по именам. Заполняется при завершении.
	Steps map[string]StepRecord `json:"steps,omitempty"`

	// Order — порядок, в котором шаги получали исходы.
	Order []string `json:"order,omitempty"`

	// FinalResult — результат последнего успешного шага.
	FinalResult any `json:"final_result,omitempty"`

	// StartedAt — время начала выполнения (когда статус стал RUNNING).
	// Nil, если run ещё не начался.
	StartedAt *time.Time `json:"started_at,omitempty"`

	// FinishedAt — время завершения (успешного или с ошибкой).
	// Nil, если run ещё выполняется.
	FinishedAt *time.Time `json:"finished_at,omitempty"`

	// Error — текст ошибки, если run завершился с FAILED.
	Error string `json:"error,omitempty"`

	// IdempotencyKey — ключ идемпотентности для предотвращения дубликатов.
	// Например, для scheduled runs: "{schedule_id}_{next_due_at}"
	IdempotencyKey string `json:"idempotency_key,omitempty"`

	// CreatedAt — время создания run.
	CreatedAt time.Time `json:"created_at"`
}

// StepRecord — сохранённый исход одного шага.
type StepRecord struct {
	// Status — исход шага: SUCCEEDED, FAILED или SKIPPED.
	Status engine.StepStatus `json:"status"`

	// Result — результат шага (для SUCCEEDED).
	Result any `json:"result,omitempty"`

	// Error — текст ошибки шага (для FAILED).
	Error string `json:"error,omitempty"`
}

// Duration возвращает продолжительность выполнения.
// Возвращает 0, если run ещё не завершён.
func (r *Run) Duration() time.Duration {
	if r.StartedAt == nil || r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(*r.StartedAt)
}

// IsFinished возвращает true, если run завершён (в любом статусе).
func (r *Run) IsFinished() bool {
	return r.Status.IsTerminal()
}

// MarkRunning переводит run в статус RUNNING.
func (r *Run) MarkRunning() {
	now := time.Now()
	r.Status = RunStatusRunning
	r.StartedAt = &now
}

// MarkSucceeded переводит run в статус SUCCEEDED.
func (r *Run) MarkSucceeded() {
	now := time.Now()
	r.Status = RunStatusSucceeded
	r.FinishedAt = &now
}

// MarkFailed переводит run в статус FAILED с ошибкой.
func (r *Run) MarkFailed(err string) {
	now := time.Now()
	r.Status = RunStatusFailed
	r.FinishedAt = &now
	r.Error = err
}

// MarkCancelled переводит run в статус CANCELLED.
func (r *Run) MarkCancelled() {
	now := time.Now()
	r.Status = RunStatusCancelled
	r.FinishedAt = &now
}

// ApplyResult переносит результат движка в run.
//
// COMPLETED переводит run в SUCCEEDED, FAILED — в FAILED с текстом
// ошибки. Исходы шагов и final_result сохраняются в обоих случаях.
func (r *Run) ApplyResult(res *engine.Result) {
	r.Steps = make(map[string]StepRecord, len(res.Steps))
	for name, out := range res.Steps {
		rec := StepRecord{Status: out.Status, Result: out.Result}
		if out.Err != nil {
			rec.Error = out.Err.Error()
		}
		r.Steps[name] = rec
	}
	r.Order = res.Order
	r.FinalResult = res.FinalResult

	if res.Status == engine.StatusFailed {
		msg := "workflow failed"
		if res.Err != nil {
			msg = res.Err.Error()
		}
		r.MarkFailed(msg)
		return
	}
	r.MarkSucceeded()
}
