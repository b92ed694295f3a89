package engine

import (
	"fmt"
	"strings"
)

// ResolveInputs строит конкретные входы шага из его шаблона.
//
// Каждая ссылка резолвится в фиксированном порядке приоритета:
// сначала initial inputs вызывающей стороны, затем результаты уже
// выполненных шагов. Initial input не может быть затенён шагом
// с тем же именем.
//
// Ссылка на шаг, который ещё не выполнялся, был пропущен или упал —
// ошибка резолвинга: такая ссылка никогда молча не даёт nil.
// Резолвинг выводится заново для каждого шага из текущего снимка
// Result; шаг по построению может ссылаться только на шаги,
// предшествующие ему в порядке выполнения.
func ResolveInputs(step *Step, initial map[string]any, res *Result) (map[string]any, error) {
	resolved := make(map[string]any, len(step.values))

	for key, value := range step.values {
		if !value.IsRef() {
			resolved[key] = value.Literal()
			continue
		}

		v, err := resolveRef(value.RefName(), initial, res)
		if err != nil {
			return nil, fmt.Errorf("input %q of step %q: %w", key, step.Name, err)
		}
		resolved[key] = v
	}

	return resolved, nil
}

// resolveRef резолвит одну ссылку по имени.
//
// Имя может содержать доступ к полю результата: "step.field" берёт
// field из результата-словаря шага step. Полное имя сначала
// проверяется среди initial inputs (точное совпадение ключа).
func resolveRef(ref string, initial map[string]any, res *Result) (any, error) {
	if v, ok := initial[ref]; ok {
		return v, nil
	}

	name, field, dotted := strings.Cut(ref, ".")

	out, ok := res.Outcome(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an initial input or a completed step", ErrUnresolvedReference, ref)
	}

	switch out.Status {
	case StepSkipped:
		return nil, fmt.Errorf("%w: step %q was skipped", ErrUnresolvedReference, name)
	case StepFailed:
		return nil, fmt.Errorf("%w: step %q failed", ErrUnresolvedReference, name)
	}

	if !dotted {
		return out.Result, nil
	}

	return resolveField(name, field, out.Result)
}

// resolveField извлекает поле из результата-словаря шага.
func resolveField(step, field string, result any) (any, error) {
	m, ok := result.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: result of step %q is not a map, cannot take field %q", ErrUnresolvedReference, step, field)
	}

	v, ok := m[field]
	if !ok {
		return nil, fmt.Errorf("%w: result of step %q has no field %q", ErrUnresolvedReference, step, field)
	}
	return v, nil
}
