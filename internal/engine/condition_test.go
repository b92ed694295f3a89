package engine

import (
	"errors"
	"testing"
)

func TestShouldRun_NoCondition(t *testing.T) {
	step := mustStep(t, Step{Name: "a", Agent: "echo"})

	run, err := ShouldRun(step, nil, NewResult("w"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !run {
		t.Error("step without condition should always run")
	}
}

func TestShouldRun_Truthiness(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"true bool", true, true},
		{"false bool", false, false},
		{"nil", nil, false},
		{"empty string", "", false},
		{"non-empty string", "yes", true},
		{"zero is truthy", 0, true},
		{"number", 42, true},
		{"empty map is truthy", map[string]any{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step := mustStep(t, Step{Name: "b", Agent: "echo", Condition: "$flag"})
			initial := map[string]any{"flag": tt.value}

			run, err := ShouldRun(step, initial, NewResult("w"))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if run != tt.want {
				t.Errorf("value %v: expected %v, got %v", tt.value, tt.want, run)
			}
		})
	}
}

func TestShouldRun_SucceededStepResult(t *testing.T) {
	step := mustStep(t, Step{Name: "b", Agent: "echo", Condition: "$a"})

	res := NewResult("w")
	res.RecordSucceeded("a", "non-empty")

	run, err := ShouldRun(step, nil, res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !run {
		t.Error("truthy step result should allow the step to run")
	}
}

func TestShouldRun_SkippedStepIsFalse(t *testing.T) {
	// Условие на пропущенный шаг — false, пропуск каскадируется
	step := mustStep(t, Step{Name: "b", Agent: "echo", Condition: "$a"})

	res := NewResult("w")
	res.RecordSkipped("a")

	run, err := ShouldRun(step, nil, res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run {
		t.Error("condition on a skipped step should evaluate to false")
	}
}

func TestShouldRun_FailedStepIsFalse(t *testing.T) {
	step := mustStep(t, Step{Name: "b", Agent: "echo", Condition: "$a"})

	res := NewResult("w")
	res.RecordFailed("a", errors.New("boom"))

	run, err := ShouldRun(step, nil, res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run {
		t.Error("condition on a failed step should evaluate to false")
	}
}

func TestShouldRun_UnknownReference(t *testing.T) {
	step := mustStep(t, Step{Name: "b", Agent: "echo", Condition: "$ghost"})

	_, err := ShouldRun(step, nil, NewResult("w"))
	if !errors.Is(err, ErrUnresolvedReference) {
		t.Errorf("expected ErrUnresolvedReference, got %v", err)
	}
}

func TestShouldRun_DottedField(t *testing.T) {
	step := mustStep(t, Step{Name: "b", Agent: "echo", Condition: "$a.ok"})

	res := NewResult("w")
	res.RecordSucceeded("a", map[string]any{"ok": true})

	run, err := ShouldRun(step, nil, res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !run {
		t.Error("truthy field should allow the step to run")
	}
}

func TestShouldRun_DottedFieldMissingIsFalse(t *testing.T) {
	step := mustStep(t, Step{Name: "b", Agent: "echo", Condition: "$a.nope"})

	res := NewResult("w")
	res.RecordSucceeded("a", map[string]any{"ok": true})

	run, err := ShouldRun(step, nil, res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run {
		t.Error("missing condition field should evaluate to false")
	}
}
