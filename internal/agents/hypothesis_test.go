package agents

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shaiso/Agentum/internal/llm"
)

// fakeLLM возвращает заготовленный ответ и запоминает запрос.
type fakeLLM struct {
	reply string
	err   error
	last  llm.Request
}

func (f *fakeLLM) Provider() string {
	return "fake"
}

func (f *fakeLLM) Complete(_ context.Context, req llm.Request) (string, error) {
	f.last = req
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestHypothesisRefiner(t *testing.T) {
	client := &fakeLLM{reply: "refined hypothesis"}
	agent := NewHypothesisRefiner(client, LLMOptions{})

	out, err := agent.Execute(context.Background(), map[string]any{
		"hypothesis": "plants grow faster with music",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "refined hypothesis" {
		t.Errorf("expected llm reply, got %v", out)
	}

	// Гипотеза попадает в промпт, параметры — из дефолтов
	if !strings.Contains(client.last.Prompt, "plants grow faster with music") {
		t.Error("prompt should contain the hypothesis")
	}
	if client.last.MaxTokens != 250 {
		t.Errorf("expected max_tokens 250, got %d", client.last.MaxTokens)
	}
	if client.last.Temperature != 0.7 {
		t.Errorf("expected temperature 0.7, got %v", client.last.Temperature)
	}
	if client.last.System == "" {
		t.Error("system message should be set")
	}
}

func TestHypothesisRefiner_MissingInput(t *testing.T) {
	agent := NewHypothesisRefiner(&fakeLLM{reply: "x"}, LLMOptions{})

	_, err := agent.Execute(context.Background(), map[string]any{})
	if !errors.Is(err, ErrMissingInput) {
		t.Errorf("expected ErrMissingInput, got %v", err)
	}
}

func TestHypothesisAnalyzer(t *testing.T) {
	client := &fakeLLM{reply: "a thorough review"}
	agent := NewHypothesisAnalyzer(client, LLMOptions{})

	out, err := agent.Execute(context.Background(), map[string]any{
		"refined_hypothesis": "a refined hypothesis",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "a thorough review" {
		t.Errorf("expected llm reply, got %v", out)
	}

	if client.last.MaxTokens != 400 {
		t.Errorf("expected max_tokens 400, got %d", client.last.MaxTokens)
	}
	if client.last.Temperature != 0.6 {
		t.Errorf("expected temperature 0.6, got %v", client.last.Temperature)
	}
}

func TestHypothesisReviser(t *testing.T) {
	client := &fakeLLM{reply: "final hypothesis"}
	agent := NewHypothesisReviser(client, LLMOptions{})

	out, err := agent.Execute(context.Background(), map[string]any{
		"original":   "the refined one",
		"reflection": "the review",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "final hypothesis" {
		t.Errorf("expected llm reply, got %v", out)
	}

	if !strings.Contains(client.last.Prompt, "the refined one") {
		t.Error("prompt should contain the original hypothesis")
	}
	if !strings.Contains(client.last.Prompt, "the review") {
		t.Error("prompt should contain the reflection")
	}
}

func TestHypothesisReviser_LLMError(t *testing.T) {
	boom := errors.New("provider down")
	agent := NewHypothesisReviser(&fakeLLM{err: boom}, LLMOptions{})

	_, err := agent.Execute(context.Background(), map[string]any{
		"original":   "h",
		"reflection": "r",
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected llm error to propagate, got %v", err)
	}
}
