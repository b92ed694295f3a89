package workflows

import (
	"context"
	"testing"

	"github.com/shaiso/Agentum/internal/agents"
	"github.com/shaiso/Agentum/internal/llm"
	"github.com/shaiso/Agentum/internal/runner"
)

// scriptedLLM отвечает по очереди.
type scriptedLLM struct {
	replies []string
	n       int
}

func (s *scriptedLLM) Provider() string {
	return "scripted"
}

func (s *scriptedLLM) Complete(context.Context, llm.Request) (string, error) {
	reply := s.replies[s.n%len(s.replies)]
	s.n++
	return reply, nil
}

func TestHypothesisRefinement_EndToEnd(t *testing.T) {
	registry := agents.NewRegistry()
	RegisterHypothesisAgents(registry, &scriptedLLM{
		replies: []string{"refined", "analysis", "revised"},
	}, nil)

	if registry.Count() != 3 {
		t.Fatalf("expected 3 registered agents, got %d", registry.Count())
	}

	graph := HypothesisRefinement()
	if err := graph.Err(); err != nil {
		t.Fatalf("graph definition error: %v", err)
	}

	r := runner.New(runner.Config{Executor: runner.NewAgentExecutor(registry)})
	res := r.Execute(context.Background(), graph, map[string]any{
		"hypothesis": "plants grow faster with music",
	})

	if res.Status != "COMPLETED" {
		t.Fatalf("expected COMPLETED, got %s (err: %v)", res.Status, res.Err)
	}

	// Финальный результат — выход последнего шага revise
	if res.FinalResult != "revised" {
		t.Errorf("expected final result from revise, got %v", res.FinalResult)
	}

	want := []string{"refine", "analyze", "revise"}
	if len(res.Order) != len(want) {
		t.Fatalf("expected %d steps, got %d", len(want), len(res.Order))
	}
	for i := range want {
		if res.Order[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], res.Order[i])
		}
	}
}
