package engine

import (
	"fmt"
	"strings"
)

// ShouldRun решает, выполнять ли шаг согласно его условию.
//
// Шаг без условия выполняется всегда. Условие — это одна ссылка,
// значение которой проверяется на истинность: nil, false и пустая
// строка ложны, всё остальное истинно (в том числе 0).
//
// Ссылка в условии на пропущенный или упавший шаг даёт false —
// пропуск каскадируется по цепочке условий, а не роняет запуск.
// Ссылка на имя, которое не является ни initial input, ни уже
// выполненным шагом — ошибка определения условия.
func ShouldRun(step *Step, initial map[string]any, res *Result) (bool, error) {
	if !step.HasCondition() {
		return true, nil
	}

	ref := step.condRef

	if v, ok := initial[ref]; ok {
		return truthy(v), nil
	}

	name, field, dotted := strings.Cut(ref, ".")

	out, ok := res.Outcome(name)
	if !ok {
		return false, fmt.Errorf("condition of step %q: %w: %q is not an initial input or a completed step", step.Name, ErrUnresolvedReference, ref)
	}

	if out.Status != StepSucceeded {
		return false, nil
	}

	if !dotted {
		return truthy(out.Result), nil
	}

	// Отсутствующее поле в условии трактуется как ложь, а не как
	// ошибка: условие спрашивает «есть ли значение», и его нет.
	m, isMap := out.Result.(map[string]any)
	if !isMap {
		return false, nil
	}
	return truthy(m[field]), nil
}

// truthy проверяет значение на истинность по правилам условий.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	default:
		return true
	}
}
