package engine

import "errors"

// Ошибки определения workflow (структурные).
var (
	// ErrEmptyStepName — шаг не имеет имени.
	ErrEmptyStepName = errors.New("step has empty name")

	// ErrEmptyAgentName — шаг не указывает агента.
	ErrEmptyAgentName = errors.New("step has empty agent name")

	// ErrDuplicateStep — несколько шагов с одинаковым именем.
	ErrDuplicateStep = errors.New("duplicate step name")

	// ErrUnknownDependency — шаг зависит от несуществующего шага.
	ErrUnknownDependency = errors.New("step depends on unknown step")

	// ErrSelfDependency — шаг зависит от самого себя.
	ErrSelfDependency = errors.New("step depends on itself")

	// ErrCyclicDependency — обнаружен цикл в зависимостях.
	ErrCyclicDependency = errors.New("cyclic dependency detected")

	// ErrInvalidCondition — условие шага не является ссылкой "$name".
	ErrInvalidCondition = errors.New("condition is not a reference")
)

// Ошибки резолвинга данных (возникают во время выполнения).
var (
	// ErrUnresolvedReference — ссылка на отсутствующий, пропущенный
	// или упавший шаг. Ссылка никогда молча не резолвится в nil.
	ErrUnresolvedReference = errors.New("unresolved reference")
)

// DefinitionError — структурная ошибка определения workflow с контекстом.
type DefinitionError struct {
	Step    string // имя шага, где произошла ошибка
	Field   string // поле, вызвавшее ошибку
	Message string // описание ошибки
	Err     error  // базовая ошибка
}

// Error реализует интерфейс error.
func (e *DefinitionError) Error() string {
	if e.Step != "" {
		return "step " + e.Step + ": " + e.Message
	}
	return e.Message
}

// Unwrap возвращает базовую ошибку.
func (e *DefinitionError) Unwrap() error {
	return e.Err
}

// NewDefinitionError создаёт новую ошибку определения.
func NewDefinitionError(step, field, message string, err error) *DefinitionError {
	return &DefinitionError{
		Step:    step,
		Field:   field,
		Message: message,
		Err:     err,
	}
}
