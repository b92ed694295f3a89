package engine

import (
	"errors"
	"testing"
)

func mustStep(t *testing.T, s Step) *Step {
	t.Helper()
	g := NewGraph("test")
	if err := g.Add(s); err != nil {
		t.Fatalf("failed to add step: %v", err)
	}
	step, _ := g.Step(s.Name)
	return step
}

func TestResolveInputs_Literals(t *testing.T) {
	step := mustStep(t, Step{
		Name:  "a",
		Agent: "echo",
		Inputs: map[string]any{
			"text":  "hello",
			"count": 3,
			"flag":  true,
		},
	})

	resolved, err := ResolveInputs(step, nil, NewResult("w"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resolved["text"] != "hello" {
		t.Errorf("expected literal text to pass through, got %v", resolved["text"])
	}
	if resolved["count"] != 3 {
		t.Errorf("expected literal count to pass through, got %v", resolved["count"])
	}
	if resolved["flag"] != true {
		t.Errorf("expected literal flag to pass through, got %v", resolved["flag"])
	}
}

func TestResolveInputs_InitialInput(t *testing.T) {
	step := mustStep(t, Step{
		Name:   "a",
		Agent:  "echo",
		Inputs: map[string]any{"hypothesis": "$hypothesis"},
	})

	initial := map[string]any{"hypothesis": "plants grow faster with music"}

	resolved, err := ResolveInputs(step, initial, NewResult("w"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved["hypothesis"] != "plants grow faster with music" {
		t.Errorf("expected initial input value, got %v", resolved["hypothesis"])
	}
}

func TestResolveInputs_StepResult(t *testing.T) {
	step := mustStep(t, Step{
		Name:   "analyze",
		Agent:  "analyzer",
		Inputs: map[string]any{"refined": "$refine"},
	})

	res := NewResult("w")
	res.RecordSucceeded("refine", "a sharper hypothesis")

	resolved, err := ResolveInputs(step, nil, res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved["refined"] != "a sharper hypothesis" {
		t.Errorf("expected step result, got %v", resolved["refined"])
	}
}

func TestResolveInputs_InitialShadowsStep(t *testing.T) {
	// Initial input с тем же именем, что у шага, имеет приоритет
	step := mustStep(t, Step{
		Name:   "b",
		Agent:  "echo",
		Inputs: map[string]any{"v": "$refine"},
	})

	res := NewResult("w")
	res.RecordSucceeded("refine", "from step")

	initial := map[string]any{"refine": "from caller"}

	resolved, err := ResolveInputs(step, initial, res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved["v"] != "from caller" {
		t.Errorf("initial input should shadow step result, got %v", resolved["v"])
	}
}

func TestResolveInputs_UnknownReference(t *testing.T) {
	step := mustStep(t, Step{
		Name:   "a",
		Agent:  "echo",
		Inputs: map[string]any{"v": "$ghost"},
	})

	_, err := ResolveInputs(step, nil, NewResult("w"))
	if !errors.Is(err, ErrUnresolvedReference) {
		t.Errorf("expected ErrUnresolvedReference, got %v", err)
	}
}

func TestResolveInputs_SkippedStep(t *testing.T) {
	step := mustStep(t, Step{
		Name:   "b",
		Agent:  "echo",
		Inputs: map[string]any{"v": "$a"},
	})

	res := NewResult("w")
	res.RecordSkipped("a")

	// Ссылка на пропущенный шаг никогда не даёт nil молча
	_, err := ResolveInputs(step, nil, res)
	if !errors.Is(err, ErrUnresolvedReference) {
		t.Errorf("expected ErrUnresolvedReference for skipped step, got %v", err)
	}
}

func TestResolveInputs_FailedStep(t *testing.T) {
	step := mustStep(t, Step{
		Name:   "b",
		Agent:  "echo",
		Inputs: map[string]any{"v": "$a"},
	})

	res := NewResult("w")
	res.RecordFailed("a", errors.New("boom"))

	_, err := ResolveInputs(step, nil, res)
	if !errors.Is(err, ErrUnresolvedReference) {
		t.Errorf("expected ErrUnresolvedReference for failed step, got %v", err)
	}
}

func TestResolveInputs_DottedField(t *testing.T) {
	step := mustStep(t, Step{
		Name:   "b",
		Agent:  "echo",
		Inputs: map[string]any{"score": "$analyze.score"},
	})

	res := NewResult("w")
	res.RecordSucceeded("analyze", map[string]any{"score": 0.92, "notes": "solid"})

	resolved, err := ResolveInputs(step, nil, res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved["score"] != 0.92 {
		t.Errorf("expected field value 0.92, got %v", resolved["score"])
	}
}

func TestResolveInputs_DottedFieldMissing(t *testing.T) {
	step := mustStep(t, Step{
		Name:   "b",
		Agent:  "echo",
		Inputs: map[string]any{"v": "$a.missing"},
	})

	res := NewResult("w")
	res.RecordSucceeded("a", map[string]any{"present": 1})

	_, err := ResolveInputs(step, nil, res)
	if !errors.Is(err, ErrUnresolvedReference) {
		t.Errorf("expected ErrUnresolvedReference for missing field, got %v", err)
	}
}

func TestResolveInputs_DottedFieldOnScalar(t *testing.T) {
	step := mustStep(t, Step{
		Name:   "b",
		Agent:  "echo",
		Inputs: map[string]any{"v": "$a.field"},
	})

	res := NewResult("w")
	res.RecordSucceeded("a", "just a string")

	_, err := ResolveInputs(step, nil, res)
	if !errors.Is(err, ErrUnresolvedReference) {
		t.Errorf("expected ErrUnresolvedReference for field access on scalar, got %v", err)
	}
}

func TestResolveInputs_DollarStringStaysLiteralWhenInvalid(t *testing.T) {
	// "$" без валидного идентификатора — литерал, а не ссылка
	step := mustStep(t, Step{
		Name:   "a",
		Agent:  "echo",
		Inputs: map[string]any{"price": "$100"},
	})

	resolved, err := ResolveInputs(step, nil, NewResult("w"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved["price"] != "$100" {
		t.Errorf("expected literal passthrough, got %v", resolved["price"])
	}
}
