package agents

import (
	"context"
	"errors"
	"testing"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()

	echo := NewFunc("echo", func(_ context.Context, inputs map[string]any) (any, error) {
		return inputs["text"], nil
	})
	r.Register(echo)

	agent, err := r.Get("echo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if agent.Name() != "echo" {
		t.Errorf("expected name echo, got %s", agent.Name())
	}

	out, err := agent.Execute(context.Background(), map[string]any{"text": "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "hi" {
		t.Errorf("expected hi, got %v", out)
	}
}

func TestRegistry_GetNotRegistered(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get("ghost")
	if !errors.Is(err, ErrAgentNotRegistered) {
		t.Errorf("expected ErrAgentNotRegistered, got %v", err)
	}
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry()
	noop := func(context.Context, map[string]any) (any, error) { return nil, nil }

	r.Register(NewFunc("zeta", noop))
	r.Register(NewFunc("alpha", noop))
	r.Register(NewFunc("mid", noop))

	names := r.Names()
	want := []string{"alpha", "mid", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], names[i])
		}
	}
}

func TestRegistry_HasAndUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register(NewFunc("a", func(context.Context, map[string]any) (any, error) { return nil, nil }))

	if !r.Has("a") {
		t.Error("expected a to be registered")
	}
	if r.Count() != 1 {
		t.Errorf("expected count 1, got %d", r.Count())
	}

	r.Unregister("a")
	if r.Has("a") {
		t.Error("a should be unregistered")
	}
}

func TestInputString(t *testing.T) {
	if _, err := InputString(map[string]any{}, "text"); !errors.Is(err, ErrMissingInput) {
		t.Errorf("expected ErrMissingInput for absent key, got %v", err)
	}
	if _, err := InputString(map[string]any{"text": ""}, "text"); !errors.Is(err, ErrMissingInput) {
		t.Errorf("expected ErrMissingInput for empty string, got %v", err)
	}
	if _, err := InputString(map[string]any{"text": nil}, "text"); !errors.Is(err, ErrMissingInput) {
		t.Errorf("expected ErrMissingInput for nil, got %v", err)
	}

	s, err := InputString(map[string]any{"text": "ok"}, "text")
	if err != nil || s != "ok" {
		t.Errorf("expected ok, got %q (err %v)", s, err)
	}

	// Нестроковые значения приводятся к строке
	s, err = InputString(map[string]any{"n": 42}, "n")
	if err != nil || s != "42" {
		t.Errorf("expected 42, got %q (err %v)", s, err)
	}
}
