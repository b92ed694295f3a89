package domain

import (
	"errors"
	"testing"

	"github.com/shaiso/Agentum/internal/engine"
)

func TestWorkflowSpec_ToGraph(t *testing.T) {
	spec := WorkflowSpec{
		Name: "hypothesis_refinement",
		Steps: []StepSpec{
			{Name: "refine", Agent: "hypothesis_refiner", Inputs: map[string]any{"hypothesis": "$hypothesis"}},
			{Name: "analyze", Agent: "hypothesis_analyzer", Inputs: map[string]any{"refined_hypothesis": "$refine"}, DependsOn: []string{"refine"}},
			{Name: "revise", Agent: "hypothesis_reviser", Inputs: map[string]any{"original": "$refine", "reflection": "$analyze"}, DependsOn: []string{"analyze"}},
		},
	}

	g := spec.ToGraph()
	if g.Name() != "hypothesis_refinement" {
		t.Errorf("expected graph name hypothesis_refinement, got %s", g.Name())
	}
	if g.Len() != 3 {
		t.Errorf("expected 3 steps, got %d", g.Len())
	}

	order, err := g.ResolveOrder()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"refine", "analyze", "revise"}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], order[i])
		}
	}
}

func TestWorkflowSpec_ToGraph_DefinitionError(t *testing.T) {
	spec := WorkflowSpec{
		Name: "broken",
		Steps: []StepSpec{
			{Name: "a", Agent: "echo"},
			{Name: "a", Agent: "echo"},
		},
	}

	g := spec.ToGraph()
	if _, err := g.ResolveOrder(); !errors.Is(err, engine.ErrDuplicateStep) {
		t.Errorf("expected ErrDuplicateStep, got %v", err)
	}
}

func TestRun_ApplyResult_Succeeded(t *testing.T) {
	res := engine.NewResult("w")
	res.RecordSucceeded("refine", "refined")
	res.RecordSucceeded("revise", "revised")
	res.Complete()

	run := &Run{Status: RunStatusRunning}
	run.ApplyResult(res)

	if run.Status != RunStatusSucceeded {
		t.Fatalf("expected SUCCEEDED, got %s", run.Status)
	}
	if run.FinalResult != "revised" {
		t.Errorf("expected final result revised, got %v", run.FinalResult)
	}
	if run.FinishedAt == nil {
		t.Error("finished_at should be set")
	}
	if len(run.Steps) != 2 {
		t.Fatalf("expected 2 step records, got %d", len(run.Steps))
	}
	if run.Steps["refine"].Status != engine.StepSucceeded {
		t.Errorf("refine should be SUCCEEDED, got %s", run.Steps["refine"].Status)
	}
	if len(run.Order) != 2 || run.Order[0] != "refine" {
		t.Errorf("order should record outcome sequence, got %v", run.Order)
	}
}

func TestRun_ApplyResult_Failed(t *testing.T) {
	res := engine.NewResult("w")
	res.RecordSucceeded("a", "fine")
	res.RecordSkipped("b")
	res.RecordFailed("c", errors.New("agent exploded"))

	run := &Run{Status: RunStatusRunning}
	run.ApplyResult(res)

	if run.Status != RunStatusFailed {
		t.Fatalf("expected FAILED, got %s", run.Status)
	}
	if run.Error == "" {
		t.Error("run error should carry the step error text")
	}
	if run.Steps["b"].Status != engine.StepSkipped {
		t.Errorf("b should be SKIPPED, got %s", run.Steps["b"].Status)
	}
	if run.Steps["c"].Error != "agent exploded" {
		t.Errorf("step record should carry error text, got %q", run.Steps["c"].Error)
	}

	// Частичный успех сохраняется
	if run.FinalResult != "fine" {
		t.Errorf("final result should come from last succeeded step, got %v", run.FinalResult)
	}
}

func TestRunStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status RunStatus
		want   bool
	}{
		{RunStatusPending, false},
		{RunStatusRunning, false},
		{RunStatusSucceeded, true},
		{RunStatusFailed, true},
		{RunStatusCancelled, true},
	}

	for _, tt := range tests {
		if tt.status.IsTerminal() != tt.want {
			t.Errorf("%s: expected IsTerminal=%v", tt.status, tt.want)
		}
	}
}
