package runner

import "fmt"

// AgentExecutionError — ошибка выполнения агента на конкретном шаге.
//
// Оборачивает исходную ошибку агента и имя шага, на котором она
// произошла. Runner записывает её в исход шага, а не пробрасывает
// наружу.
type AgentExecutionError struct {
	// Step — имя шага, на котором упал агент.
	Step string

	// Agent — имя агента.
	Agent string

	// Err — исходная ошибка агента.
	Err error
}

func (e *AgentExecutionError) Error() string {
	return fmt.Sprintf("agent %q failed at step %q: %v", e.Agent, e.Step, e.Err)
}

func (e *AgentExecutionError) Unwrap() error {
	return e.Err
}
