package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/shaiso/Agentum/internal/engine"
)

// Workflow — определение workflow.
//
// Workflow — это "рецепт": именованный набор шагов-агентов с
// зависимостями. Один workflow может иметь множество версий
// (WorkflowVersion), каждый запуск (Run) выполняет конкретную версию.
type Workflow struct {
	// ID — уникальный идентификатор workflow.
	ID uuid.UUID `json:"id"`

	// Name — уникальное имя workflow (например, "hypothesis_refinement").
	Name string `json:"name"`

	// Description — описание назначения workflow.
	Description string `json:"description,omitempty"`

	// IsActive — флаг активности. Неактивные workflows не запускаются
	// по расписанию.
	IsActive bool `json:"is_active"`

	// CreatedAt — время создания workflow.
	CreatedAt time.Time `json:"created_at"`
}

// WorkflowVersion — версия workflow с конкретной спецификацией.
//
// Версионирование позволяет отслеживать историю изменений и
// запускать старые версии для сравнения.
type WorkflowVersion struct {
	// WorkflowID — ссылка на родительский workflow.
	WorkflowID uuid.UUID `json:"workflow_id"`

	// Version — номер версии (1, 2, 3, ...).
	// Автоинкремент при создании новой версии.
	Version int `json:"version"`

	// Spec — спецификация workflow в формате JSON.
	Spec WorkflowSpec `json:"spec"`

	// CreatedAt — время создания версии.
	CreatedAt time.Time `json:"created_at"`
}

// WorkflowSpec — спецификация workflow (содержимое JSONB поля spec).
//
// Это "программа" для Agentum: какие агенты выполняются, в каком
// порядке и откуда берут входы.
type WorkflowSpec struct {
	// Name — имя workflow (дублирует Workflow.Name для удобства).
	Name string `json:"name,omitempty"`

	// Description — описание назначения workflow.
	Description string `json:"description,omitempty"`

	// Steps — список шагов для выполнения.
	Steps []StepSpec `json:"steps"`
}

// StepSpec — определение шага в workflow.
type StepSpec struct {
	// Name — уникальное имя шага в рамках workflow.
	// Используется в depends_on и для ссылок на результаты.
	Name string `json:"name"`

	// Agent — имя агента, выполняющего шаг.
	Agent string `json:"agent"`

	// Inputs — входы шага. Строка вида "$name" или "$step.field" —
	// ссылка на initial input или результат шага, остальное — литералы.
	Inputs map[string]any `json:"inputs,omitempty"`

	// DependsOn — список имён шагов, от которых зависит этот шаг.
	// Единственный источник порядка: ссылки в inputs рёбер не создают.
	DependsOn []string `json:"depends_on,omitempty"`

	// Condition — условие выполнения: одна ссылка вида "$name".
	// Ложное значение пропускает шаг.
	Condition string `json:"condition,omitempty"`
}

// ToGraph строит engine.Graph из спецификации.
//
// Ошибки определения (дубликаты, пустые имена, невалидные условия)
// откладываются внутри графа и всплывают при ResolveOrder.
func (s *WorkflowSpec) ToGraph() *engine.Graph {
	g := engine.NewGraph(s.Name)
	for _, step := range s.Steps {
		g.AddStep(engine.Step{
			Name:      step.Name,
			Agent:     step.Agent,
			Inputs:    step.Inputs,
			DependsOn: step.DependsOn,
			Condition: step.Condition,
		})
	}
	return g
}
