package runner

import (
	"context"

	"github.com/shaiso/Agentum/internal/agents"
	"github.com/shaiso/Agentum/internal/engine"
)

// StepExecutor — интерфейс выполнения одного шага графа.
//
// Runner передаёт шаг с уже отрезолвленными входами; реализация
// находит агента и возвращает его результат. Инфраструктурные и
// логические ошибки агента возвращаются через error.
type StepExecutor interface {
	ExecuteStep(ctx context.Context, step *engine.Step, inputs map[string]any) (any, error)
}

// AgentExecutor — StepExecutor поверх реестра агентов.
type AgentExecutor struct {
	registry *agents.Registry
}

// NewAgentExecutor создаёт executor поверх реестра агентов.
func NewAgentExecutor(registry *agents.Registry) *AgentExecutor {
	return &AgentExecutor{registry: registry}
}

// ExecuteStep находит агента шага в реестре и выполняет его.
func (e *AgentExecutor) ExecuteStep(ctx context.Context, step *engine.Step, inputs map[string]any) (any, error) {
	agent, err := e.registry.Get(step.Agent)
	if err != nil {
		return nil, err
	}
	return agent.Execute(ctx, inputs)
}
