package workflows

import (
	"log/slog"

	"github.com/shaiso/Agentum/internal/agents"
	"github.com/shaiso/Agentum/internal/engine"
	"github.com/shaiso/Agentum/internal/llm"
)

// HypothesisRefinementName — имя workflow уточнения гипотез.
const HypothesisRefinementName = "hypothesis_refinement"

// HypothesisRefinement строит граф уточнения гипотезы:
// refine → analyze → revise.
//
// Каждый шаг питается результатом предыдущего; исходная гипотеза
// приходит через initial input "hypothesis".
func HypothesisRefinement() *engine.Graph {
	return engine.NewGraph(HypothesisRefinementName).
		AddStep(engine.Step{
			Name:   "refine",
			Agent:  agents.HypothesisRefinerName,
			Inputs: map[string]any{"hypothesis": "$hypothesis"},
		}).
		AddStep(engine.Step{
			Name:      "analyze",
			Agent:     agents.HypothesisAnalyzerName,
			Inputs:    map[string]any{"refined_hypothesis": "$refine"},
			DependsOn: []string{"refine"},
		}).
		AddStep(engine.Step{
			Name:      "revise",
			Agent:     agents.HypothesisReviserName,
			Inputs:    map[string]any{"original": "$refine", "reflection": "$analyze"},
			DependsOn: []string{"analyze"},
		})
}

// RegisterHypothesisAgents регистрирует агентов гипотез в реестре.
//
// Агенты оборачиваются в логирование и метрики.
func RegisterHypothesisAgents(registry *agents.Registry, client llm.Client, logger *slog.Logger) {
	registry.Register(agents.Instrument(agents.NewHypothesisRefiner(client, agents.LLMOptions{}), logger))
	registry.Register(agents.Instrument(agents.NewHypothesisAnalyzer(client, agents.LLMOptions{}), logger))
	registry.Register(agents.Instrument(agents.NewHypothesisReviser(client, agents.LLMOptions{}), logger))
}
