package agents

import (
	"context"
	"errors"
	"fmt"
)

// Ошибки агентов.
var (
	// ErrAgentNotRegistered — агент не найден в реестре.
	ErrAgentNotRegistered = errors.New("agent not registered")

	// ErrMissingInput — обязательный вход агента отсутствует или пуст.
	ErrMissingInput = errors.New("missing agent input")
)

// Agent — именованная единица работы.
type Agent interface {
	// Name возвращает имя агента.
	Name() string

	// Execute выполняет агента с заданными входами.
	// Агент должен проверять ctx.Done() в долгих операциях.
	Execute(ctx context.Context, inputs map[string]any) (any, error)
}

// Func — адаптер функции к интерфейсу Agent.
type Func struct {
	name string
	fn   func(ctx context.Context, inputs map[string]any) (any, error)
}

// NewFunc создаёт агента из функции.
func NewFunc(name string, fn func(ctx context.Context, inputs map[string]any) (any, error)) *Func {
	return &Func{name: name, fn: fn}
}

func (f *Func) Name() string {
	return f.name
}

func (f *Func) Execute(ctx context.Context, inputs map[string]any) (any, error) {
	return f.fn(ctx, inputs)
}

// InputString извлекает обязательный строковый вход.
//
// Нестроковое значение приводится через fmt.Sprint, отсутствующее
// или пустое — ошибка ErrMissingInput.
func InputString(inputs map[string]any, key string) (string, error) {
	v, ok := inputs[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%w: %s", ErrMissingInput, key)
	}

	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	if s == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingInput, key)
	}
	return s, nil
}
