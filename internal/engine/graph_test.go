package engine

import (
	"errors"
	"testing"
)

func TestResolveOrder_SimpleChain(t *testing.T) {
	g := NewGraph("chain").
		AddStep(Step{Name: "a", Agent: "echo"}).
		AddStep(Step{Name: "b", Agent: "echo", DependsOn: []string{"a"}}).
		AddStep(Step{Name: "c", Agent: "echo", DependsOn: []string{"b"}})

	order, err := g.ResolveOrder()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("expected %d steps in order, got %d", len(want), len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], order[i])
		}
	}
}

func TestResolveOrder_Diamond(t *testing.T) {
	// a → b → d
	// a → c → d
	g := NewGraph("diamond").
		AddStep(Step{Name: "a", Agent: "echo"}).
		AddStep(Step{Name: "b", Agent: "echo", DependsOn: []string{"a"}}).
		AddStep(Step{Name: "c", Agent: "echo", DependsOn: []string{"a"}}).
		AddStep(Step{Name: "d", Agent: "echo", DependsOn: []string{"b", "c"}})

	order, err := g.ResolveOrder()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	positions := make(map[string]int)
	for i, name := range order {
		positions[name] = i
	}

	if positions["a"] > positions["b"] {
		t.Error("a should come before b")
	}
	if positions["a"] > positions["c"] {
		t.Error("a should come before c")
	}
	if positions["b"] > positions["d"] {
		t.Error("b should come before d")
	}
	if positions["c"] > positions["d"] {
		t.Error("c should come before d")
	}

	// Равные по готовности шаги идут в порядке добавления
	if positions["b"] > positions["c"] {
		t.Error("b was added before c, so b should come first")
	}
}

func TestResolveOrder_InsertionOrderTieBreak(t *testing.T) {
	// Независимые шаги: порядок определяется только порядком добавления
	g := NewGraph("independent").
		AddStep(Step{Name: "gamma", Agent: "echo"}).
		AddStep(Step{Name: "alpha", Agent: "echo"}).
		AddStep(Step{Name: "beta", Agent: "echo"})

	order, err := g.ResolveOrder()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"gamma", "alpha", "beta"}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], order[i])
		}
	}
}

func TestResolveOrder_DependencyOverridesInsertion(t *testing.T) {
	// "b" добавлен первым, но зависит от "a"
	g := NewGraph("reorder").
		AddStep(Step{Name: "b", Agent: "echo", DependsOn: []string{"a"}}).
		AddStep(Step{Name: "a", Agent: "echo"})

	order, err := g.ResolveOrder()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order[0] != "a" || order[1] != "b" {
		t.Errorf("expected order [a b], got %v", order)
	}
}

func TestResolveOrder_Deterministic(t *testing.T) {
	g := NewGraph("stable").
		AddStep(Step{Name: "x", Agent: "echo"}).
		AddStep(Step{Name: "y", Agent: "echo"}).
		AddStep(Step{Name: "z", Agent: "echo", DependsOn: []string{"x"}})

	first, err := g.ResolveOrder()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Повторные вызовы дают тот же порядок
	for i := 0; i < 10; i++ {
		again, err := g.ResolveOrder()
		if err != nil {
			t.Fatalf("unexpected error on repeat: %v", err)
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("order changed between calls: %v vs %v", first, again)
			}
		}
	}
}

func TestResolveOrder_CyclicDependency(t *testing.T) {
	g := NewGraph("cycle").
		AddStep(Step{Name: "a", Agent: "echo", DependsOn: []string{"c"}}).
		AddStep(Step{Name: "b", Agent: "echo", DependsOn: []string{"a"}}).
		AddStep(Step{Name: "c", Agent: "echo", DependsOn: []string{"b"}})

	_, err := g.ResolveOrder()
	if !errors.Is(err, ErrCyclicDependency) {
		t.Errorf("expected ErrCyclicDependency, got %v", err)
	}

	// Ошибка называет хотя бы один шаг цикла
	var defErr *DefinitionError
	if !errors.As(err, &defErr) {
		t.Fatalf("expected DefinitionError, got %T", err)
	}
	if defErr.Step == "" {
		t.Error("cycle error should name an involved step")
	}
}

func TestResolveOrder_SelfDependency(t *testing.T) {
	g := NewGraph("self").
		AddStep(Step{Name: "a", Agent: "echo", DependsOn: []string{"a"}})

	_, err := g.ResolveOrder()
	if !errors.Is(err, ErrSelfDependency) {
		t.Errorf("expected ErrSelfDependency, got %v", err)
	}
}

func TestResolveOrder_UnknownDependency(t *testing.T) {
	g := NewGraph("dangling").
		AddStep(Step{Name: "a", Agent: "echo"}).
		AddStep(Step{Name: "b", Agent: "echo", DependsOn: []string{"ghost"}})

	_, err := g.ResolveOrder()
	if !errors.Is(err, ErrUnknownDependency) {
		t.Errorf("expected ErrUnknownDependency, got %v", err)
	}

	var defErr *DefinitionError
	if !errors.As(err, &defErr) {
		t.Fatalf("expected DefinitionError, got %T", err)
	}
	if defErr.Step != "b" {
		t.Errorf("error should name step b, got %q", defErr.Step)
	}
}

func TestAddStep_DuplicateName(t *testing.T) {
	g := NewGraph("dup").
		AddStep(Step{Name: "a", Agent: "echo"}).
		AddStep(Step{Name: "a", Agent: "echo"})

	if !errors.Is(g.Err(), ErrDuplicateStep) {
		t.Errorf("expected ErrDuplicateStep, got %v", g.Err())
	}

	// Отложенная ошибка всплывает и при резолвинге порядка
	if _, err := g.ResolveOrder(); !errors.Is(err, ErrDuplicateStep) {
		t.Errorf("ResolveOrder should surface the deferred error, got %v", err)
	}
}

func TestAddStep_EmptyName(t *testing.T) {
	g := NewGraph("bad")
	if err := g.Add(Step{Name: "", Agent: "echo"}); !errors.Is(err, ErrEmptyStepName) {
		t.Errorf("expected ErrEmptyStepName, got %v", err)
	}
}

func TestAddStep_EmptyAgent(t *testing.T) {
	g := NewGraph("bad")
	if err := g.Add(Step{Name: "a", Agent: ""}); !errors.Is(err, ErrEmptyAgentName) {
		t.Errorf("expected ErrEmptyAgentName, got %v", err)
	}
}

func TestAddStep_InvalidCondition(t *testing.T) {
	g := NewGraph("bad")
	err := g.Add(Step{Name: "a", Agent: "echo", Condition: "not-a-reference"})
	if !errors.Is(err, ErrInvalidCondition) {
		t.Errorf("expected ErrInvalidCondition, got %v", err)
	}
}

func TestGraph_Step(t *testing.T) {
	g := NewGraph("lookup").
		AddStep(Step{Name: "a", Agent: "echo"})

	if _, ok := g.Step("a"); !ok {
		t.Error("expected step a to be found")
	}
	if _, ok := g.Step("missing"); ok {
		t.Error("missing step should not be found")
	}
	if g.Len() != 1 {
		t.Errorf("expected 1 step, got %d", g.Len())
	}
}
