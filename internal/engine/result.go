package engine

// Status — статус выполнения workflow.
//
// Жизненный цикл:
//
//	RUNNING → COMPLETED
//	        ↘ FAILED
type Status string

const (
	// StatusRunning — выполнение в процессе.
	StatusRunning Status = "RUNNING"

	// StatusCompleted — все шаги обработаны без ошибок.
	StatusCompleted Status = "COMPLETED"

	// StatusFailed — выполнение прервано на упавшем шаге.
	StatusFailed Status = "FAILED"
)

// StepStatus — статус одного шага.
type StepStatus string

const (
	// StepSucceeded — шаг выполнен успешно, результат доступен по ссылке.
	StepSucceeded StepStatus = "SUCCEEDED"

	// StepFailed — шаг упал; выполнение workflow останавливается.
	StepFailed StepStatus = "FAILED"

	// StepSkipped — условие шага не выполнилось; зависимые шаги
	// всё равно выполняются, но ссылка на результат этого шага
	// резолвится с ошибкой.
	StepSkipped StepStatus = "SKIPPED"
)

// StepOutcome — исход одного обработанного шага.
type StepOutcome struct {
	// Status — статус шага.
	Status StepStatus

	// Result — результат агента. Заполнен только при SUCCEEDED.
	Result any

	// Err — ошибка шага. Заполнена только при FAILED.
	Err error
}

// Result — накопленный результат одного выполнения workflow.
//
// Создаётся заново на каждый Execute и принадлежит исключительно
// выполняющему Runner: между одновременными выполнениями одного
// графа Result не разделяется.
type Result struct {
	// Workflow — имя workflow.
	Workflow string

	// Status — текущий статус выполнения.
	Status Status

	// Steps — исходы шагов по имени.
	Steps map[string]StepOutcome

	// Order — имена обработанных шагов в порядке выполнения.
	Order []string

	// FinalResult — результат последнего успешно выполненного шага.
	FinalResult any

	// Err — ошибка выполнения (при StatusFailed).
	Err error

	// hasFinal — был ли хоть один успешный шаг.
	hasFinal bool
}

// NewResult создаёт пустой Result со статусом RUNNING.
func NewResult(workflow string) *Result {
	return &Result{
		Workflow: workflow,
		Status:   StatusRunning,
		Steps:    make(map[string]StepOutcome),
	}
}

// Outcome возвращает исход шага по имени.
func (r *Result) Outcome(name string) (StepOutcome, bool) {
	out, ok := r.Steps[name]
	return out, ok
}

// RecordSucceeded записывает успешный исход шага и обновляет FinalResult.
// FinalResult всегда отражает последний успешный шаг, а не последний
// шаг порядка определения.
func (r *Result) RecordSucceeded(name string, result any) {
	r.record(name, StepOutcome{Status: StepSucceeded, Result: result})
	r.FinalResult = result
	r.hasFinal = true
}

// RecordSkipped записывает пропуск шага.
func (r *Result) RecordSkipped(name string) {
	r.record(name, StepOutcome{Status: StepSkipped})
}

// RecordFailed записывает падение шага и переводит workflow в FAILED.
func (r *Result) RecordFailed(name string, err error) {
	r.record(name, StepOutcome{Status: StepFailed, Err: err})
	r.Status = StatusFailed
	r.Err = err
}

// Fail переводит workflow в FAILED без привязки к шагу
// (структурные ошибки определения: цикл, неизвестная зависимость).
func (r *Result) Fail(err error) {
	r.Status = StatusFailed
	r.Err = err
}

// Complete переводит workflow в COMPLETED, если не было падений.
func (r *Result) Complete() {
	if r.Status == StatusRunning {
		r.Status = StatusCompleted
	}
}

// HasFinalResult возвращает true, если хотя бы один шаг завершился успешно.
func (r *Result) HasFinalResult() bool {
	return r.hasFinal
}

func (r *Result) record(name string, out StepOutcome) {
	if _, exists := r.Steps[name]; !exists {
		r.Order = append(r.Order, name)
	}
	r.Steps[name] = out
}
