package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shaiso/Agentum/internal/engine"
)

// fakeExecutor выполняет шаги через заданные функции по имени агента.
type fakeExecutor struct {
	agents map[string]func(inputs map[string]any) (any, error)
	calls  []string
}

func (f *fakeExecutor) ExecuteStep(_ context.Context, step *engine.Step, inputs map[string]any) (any, error) {
	f.calls = append(f.calls, step.Name)
	fn, ok := f.agents[step.Agent]
	if !ok {
		return nil, fmt.Errorf("no such agent: %s", step.Agent)
	}
	return fn(inputs)
}

func upperAgent(inputs map[string]any) (any, error) {
	s, _ := inputs["text"].(string)
	return strings.ToUpper(s), nil
}

func TestExecute_LinearPipeline(t *testing.T) {
	// refine → analyze → revise, результат каждого шага питает следующий
	g := engine.NewGraph("pipeline").
		AddStep(engine.Step{
			Name:   "refine",
			Agent:  "upper",
			Inputs: map[string]any{"text": "$hypothesis"},
		}).
		AddStep(engine.Step{
			Name:      "analyze",
			Agent:     "suffix",
			Inputs:    map[string]any{"text": "$refine"},
			DependsOn: []string{"refine"},
		}).
		AddStep(engine.Step{
			Name:      "revise",
			Agent:     "suffix",
			Inputs:    map[string]any{"text": "$analyze"},
			DependsOn: []string{"analyze"},
		})

	exec := &fakeExecutor{agents: map[string]func(map[string]any) (any, error){
		"upper": upperAgent,
		"suffix": func(inputs map[string]any) (any, error) {
			s, _ := inputs["text"].(string)
			return s + "!", nil
		},
	}}

	r := New(Config{Executor: exec})
	res := r.Execute(context.Background(), g, map[string]any{"hypothesis": "plants like music"})

	if res.Status != engine.StatusCompleted {
		t.Fatalf("expected COMPLETED, got %s (err: %v)", res.Status, res.Err)
	}

	want := "PLANTS LIKE MUSIC!!"
	if res.FinalResult != want {
		t.Errorf("expected final result %q, got %v", want, res.FinalResult)
	}

	// Все три шага выполнены в порядке зависимостей
	if len(exec.calls) != 3 {
		t.Fatalf("expected 3 executed steps, got %d", len(exec.calls))
	}
	for i, name := range []string{"refine", "analyze", "revise"} {
		if exec.calls[i] != name {
			t.Errorf("call %d: expected %s, got %s", i, name, exec.calls[i])
		}
		out, ok := res.Outcome(name)
		if !ok || out.Status != engine.StepSucceeded {
			t.Errorf("step %s should be SUCCEEDED", name)
		}
	}
}

func TestExecute_ConditionSkipsStep(t *testing.T) {
	g := engine.NewGraph("conditional").
		AddStep(engine.Step{Name: "check", Agent: "gate"}).
		AddStep(engine.Step{
			Name:      "publish",
			Agent:     "echo",
			Condition: "$check",
			DependsOn: []string{"check"},
		}).
		AddStep(engine.Step{
			Name:      "wrap",
			Agent:     "echo",
			DependsOn: []string{"publish"},
		})

	exec := &fakeExecutor{agents: map[string]func(map[string]any) (any, error){
		"gate": func(map[string]any) (any, error) { return false, nil },
		"echo": func(map[string]any) (any, error) { return "ran", nil },
	}}

	r := New(Config{Executor: exec})
	res := r.Execute(context.Background(), g, nil)

	if res.Status != engine.StatusCompleted {
		t.Fatalf("expected COMPLETED, got %s (err: %v)", res.Status, res.Err)
	}

	out, _ := res.Outcome("publish")
	if out.Status != engine.StepSkipped {
		t.Errorf("publish should be SKIPPED, got %s", out.Status)
	}

	// wrap не зависит от результата publish по данным и выполняется
	out, _ = res.Outcome("wrap")
	if out.Status != engine.StepSucceeded {
		t.Errorf("wrap should be SUCCEEDED, got %s", out.Status)
	}

	// final_result — последний успешный шаг
	if res.FinalResult != "ran" {
		t.Errorf("expected final result from wrap, got %v", res.FinalResult)
	}
}

func TestExecute_ConditionCascades(t *testing.T) {
	// Условие на пропущенный шаг — false, пропуск тянется по цепочке
	g := engine.NewGraph("cascade").
		AddStep(engine.Step{Name: "check", Agent: "gate"}).
		AddStep(engine.Step{
			Name:      "first",
			Agent:     "echo",
			Condition: "$check",
			DependsOn: []string{"check"},
		}).
		AddStep(engine.Step{
			Name:      "second",
			Agent:     "echo",
			Condition: "$first",
			DependsOn: []string{"first"},
		})

	exec := &fakeExecutor{agents: map[string]func(map[string]any) (any, error){
		"gate": func(map[string]any) (any, error) { return "", nil },
		"echo": func(map[string]any) (any, error) { return "ran", nil },
	}}

	r := New(Config{Executor: exec})
	res := r.Execute(context.Background(), g, nil)

	if res.Status != engine.StatusCompleted {
		t.Fatalf("expected COMPLETED, got %s (err: %v)", res.Status, res.Err)
	}

	for _, name := range []string{"first", "second"} {
		out, _ := res.Outcome(name)
		if out.Status != engine.StepSkipped {
			t.Errorf("%s should be SKIPPED, got %s", name, out.Status)
		}
	}

	// Успешен только check, он и есть final_result
	if res.FinalResult != "" {
		t.Errorf("expected final result from check, got %v", res.FinalResult)
	}
	if !res.HasFinalResult() {
		t.Error("check succeeded, final result should be present")
	}
}

func TestExecute_StopOnFirstFailure(t *testing.T) {
	g := engine.NewGraph("failing").
		AddStep(engine.Step{Name: "a", Agent: "ok"}).
		AddStep(engine.Step{Name: "b", Agent: "boom", DependsOn: []string{"a"}}).
		AddStep(engine.Step{Name: "c", Agent: "ok", DependsOn: []string{"b"}}).
		AddStep(engine.Step{Name: "d", Agent: "ok"})

	bang := errors.New("agent exploded")
	exec := &fakeExecutor{agents: map[string]func(map[string]any) (any, error){
		"ok":   func(map[string]any) (any, error) { return "fine", nil },
		"boom": func(map[string]any) (any, error) { return nil, bang },
	}}

	r := New(Config{Executor: exec})
	res := r.Execute(context.Background(), g, nil)

	if res.Status != engine.StatusFailed {
		t.Fatalf("expected FAILED, got %s", res.Status)
	}

	out, _ := res.Outcome("b")
	if out.Status != engine.StepFailed {
		t.Errorf("b should be FAILED, got %s", out.Status)
	}
	if !errors.Is(out.Err, bang) {
		t.Errorf("step error should wrap the agent error, got %v", out.Err)
	}

	var execErr *AgentExecutionError
	if !errors.As(out.Err, &execErr) {
		t.Fatalf("expected AgentExecutionError, got %T", out.Err)
	}
	if execErr.Step != "b" || execErr.Agent != "boom" {
		t.Errorf("error should name step b and agent boom, got %+v", execErr)
	}

	// Шаги после упавшего не фиксируются вовсе, даже независимый d
	for _, name := range []string{"c", "d"} {
		if out, ok := res.Outcome(name); ok {
			t.Errorf("%s should be absent after failure, got outcome %s", name, out.Status)
		}
	}

	// В порядке исходов — только обработанные шаги
	if len(res.Order) != 2 || res.Order[0] != "a" || res.Order[1] != "b" {
		t.Errorf("expected order [a b], got %v", res.Order)
	}

	// Исполнены только a и b
	if len(exec.calls) != 2 {
		t.Errorf("expected 2 executed steps, got %d: %v", len(exec.calls), exec.calls)
	}

	// Ошибка запуска — ошибка упавшего шага
	if !errors.Is(res.Err, bang) {
		t.Errorf("run error should wrap the step error, got %v", res.Err)
	}
}

func TestExecute_UnresolvedReferenceFailsStep(t *testing.T) {
	g := engine.NewGraph("badref").
		AddStep(engine.Step{Name: "a", Agent: "ok"}).
		AddStep(engine.Step{
			Name:      "b",
			Agent:     "ok",
			Inputs:    map[string]any{"v": "$ghost"},
			DependsOn: []string{"a"},
		})

	exec := &fakeExecutor{agents: map[string]func(map[string]any) (any, error){
		"ok": func(map[string]any) (any, error) { return "fine", nil },
	}}

	r := New(Config{Executor: exec})
	res := r.Execute(context.Background(), g, nil)

	if res.Status != engine.StatusFailed {
		t.Fatalf("expected FAILED, got %s", res.Status)
	}

	out, _ := res.Outcome("b")
	if out.Status != engine.StepFailed {
		t.Errorf("b should be FAILED, got %s", out.Status)
	}
	if !errors.Is(out.Err, engine.ErrUnresolvedReference) {
		t.Errorf("expected ErrUnresolvedReference, got %v", out.Err)
	}

	// Агент шага b не вызывался
	if len(exec.calls) != 1 {
		t.Errorf("agent b should not run, calls: %v", exec.calls)
	}
}

func TestExecute_StructuralErrorYieldsNoOutcomes(t *testing.T) {
	g := engine.NewGraph("cyclic").
		AddStep(engine.Step{Name: "a", Agent: "ok", DependsOn: []string{"b"}}).
		AddStep(engine.Step{Name: "b", Agent: "ok", DependsOn: []string{"a"}})

	exec := &fakeExecutor{agents: map[string]func(map[string]any) (any, error){
		"ok": func(map[string]any) (any, error) { return "fine", nil },
	}}

	r := New(Config{Executor: exec})
	res := r.Execute(context.Background(), g, nil)

	if res.Status != engine.StatusFailed {
		t.Fatalf("expected FAILED, got %s", res.Status)
	}
	if !errors.Is(res.Err, engine.ErrCyclicDependency) {
		t.Errorf("expected ErrCyclicDependency, got %v", res.Err)
	}
	if len(res.Steps) != 0 {
		t.Errorf("structural error should produce no step outcomes, got %d", len(res.Steps))
	}
	if len(exec.calls) != 0 {
		t.Errorf("no agent should run, calls: %v", exec.calls)
	}
}

func TestExecute_ReferencesDoNotOrder(t *testing.T) {
	// Ссылка без depends_on не меняет порядок: "use" добавлен первым
	// и выполняется первым, ссылка на ещё не выполненный шаг — ошибка
	g := engine.NewGraph("noedge").
		AddStep(engine.Step{
			Name:   "use",
			Agent:  "ok",
			Inputs: map[string]any{"v": "$produce"},
		}).
		AddStep(engine.Step{Name: "produce", Agent: "ok"})

	exec := &fakeExecutor{agents: map[string]func(map[string]any) (any, error){
		"ok": func(map[string]any) (any, error) { return "fine", nil },
	}}

	r := New(Config{Executor: exec})
	res := r.Execute(context.Background(), g, nil)

	if res.Status != engine.StatusFailed {
		t.Fatalf("expected FAILED, got %s", res.Status)
	}
	out, _ := res.Outcome("use")
	if !errors.Is(out.Err, engine.ErrUnresolvedReference) {
		t.Errorf("expected ErrUnresolvedReference, got %v", out.Err)
	}
}

func TestExecute_EmptyGraphCompletes(t *testing.T) {
	g := engine.NewGraph("empty")

	r := New(Config{Executor: &fakeExecutor{}})
	res := r.Execute(context.Background(), g, nil)

	if res.Status != engine.StatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", res.Status)
	}
	if res.HasFinalResult() {
		t.Error("empty run has no final result")
	}
	if res.FinalResult != nil {
		t.Errorf("expected nil final result, got %v", res.FinalResult)
	}
}

func TestExecute_CancelledContextFailsAtAgent(t *testing.T) {
	// Отмена контекста доходит до агента и фиксируется как его
	// ошибка на текущем шаге; у самого движка отмены нет
	g := engine.NewGraph("cancel").
		AddStep(engine.Step{Name: "a", Agent: "llm"}).
		AddStep(engine.Step{Name: "b", Agent: "llm", DependsOn: []string{"a"}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExecutor{agents: map[string]func(map[string]any) (any, error){
		"llm": func(map[string]any) (any, error) { return nil, ctx.Err() },
	}}

	r := New(Config{Executor: exec})
	res := r.Execute(ctx, g, nil)

	if res.Status != engine.StatusFailed {
		t.Fatalf("expected FAILED, got %s", res.Status)
	}

	out, ok := res.Outcome("a")
	if !ok || out.Status != engine.StepFailed {
		t.Fatalf("a should be FAILED, got %+v (ok=%v)", out, ok)
	}
	var execErr *AgentExecutionError
	if !errors.As(out.Err, &execErr) {
		t.Fatalf("expected AgentExecutionError, got %T", out.Err)
	}
	if !errors.Is(res.Err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", res.Err)
	}

	if _, ok := res.Outcome("b"); ok {
		t.Error("b should be absent after a's failure")
	}
}
