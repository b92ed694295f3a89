package agents

import (
	"context"
	"fmt"

	"github.com/shaiso/Agentum/internal/llm"
)

// Имена агентов гипотез.
const (
	HypothesisRefinerName  = "hypothesis_refiner"
	HypothesisAnalyzerName = "hypothesis_analyzer"
	HypothesisReviserName  = "hypothesis_reviser"
)

// LLMOptions — параметры LLM-вызова агента.
type LLMOptions struct {
	// Model — модель провайдера. Пустая строка — модель клиента
	// по умолчанию.
	Model string

	// MaxTokens — максимум токенов в ответе.
	MaxTokens int

	// Temperature — температура сэмплирования.
	Temperature float64
}

// HypothesisRefiner делает гипотезу более конкретной и проверяемой.
//
// Вход: hypothesis. Выход: одна уточнённая формулировка.
type HypothesisRefiner struct {
	client llm.Client
	opts   LLMOptions
}

// NewHypothesisRefiner создаёт агента уточнения гипотез.
func NewHypothesisRefiner(client llm.Client, opts LLMOptions) *HypothesisRefiner {
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 250
	}
	if opts.Temperature == 0 {
		opts.Temperature = 0.7
	}
	return &HypothesisRefiner{client: client, opts: opts}
}

func (a *HypothesisRefiner) Name() string {
	return HypothesisRefinerName
}

func (a *HypothesisRefiner) Execute(ctx context.Context, inputs map[string]any) (any, error) {
	hypothesis, err := InputString(inputs, "hypothesis")
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`You are a Hypothesis Refinement Agent.

Task:
Given the following hypothesis, rewrite it to make it more specific,
measurable, and testable. Use clear metrics or conditions where possible.

Original hypothesis:
%q

Output:
A single refined hypothesis that is concrete, falsifiable, and written
in one or two sentences.`, hypothesis)

	return a.client.Complete(ctx, llm.Request{
		System:      "You are a helpful experiment design assistant.",
		Prompt:      prompt,
		Model:       a.opts.Model,
		MaxTokens:   a.opts.MaxTokens,
		Temperature: a.opts.Temperature,
	})
}

// HypothesisAnalyzer рецензирует уточнённую гипотезу.
//
// Вход: refined_hypothesis. Выход: структурированная рецензия с
// сильными сторонами, слабыми местами и следующим шагом.
type HypothesisAnalyzer struct {
	client llm.Client
	opts   LLMOptions
}

// NewHypothesisAnalyzer создаёт агента анализа гипотез.
func NewHypothesisAnalyzer(client llm.Client, opts LLMOptions) *HypothesisAnalyzer {
	// Рецензия длиннее уточнения, поэтому лимит выше, а
	// температура ниже
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 400
	}
	if opts.Temperature == 0 {
		opts.Temperature = 0.6
	}
	return &HypothesisAnalyzer{client: client, opts: opts}
}

func (a *HypothesisAnalyzer) Name() string {
	return HypothesisAnalyzerName
}

func (a *HypothesisAnalyzer) Execute(ctx context.Context, inputs map[string]any) (any, error) {
	refined, err := InputString(inputs, "refined_hypothesis")
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`You are a Hypothesis Reflection Agent.

Task:
Critically evaluate the following refined hypothesis as if you are a peer reviewer
preparing it for a real-world experiment.

Refined hypothesis:
%q

Analyze it on the following criteria:
1. **Clarity** - Is the hypothesis clearly stated and easy to understand?
2. **Specificity** - Does it define measurable metrics, timeframes, or success conditions?
3. **Testability** - Could it realistically be validated or falsified with an experiment?
4. **Assumptions** - Are there any hidden assumptions or biases?
5. **Actionability** - Can it guide a meaningful next experiment?

Output:
Provide a short, structured reflection in 3-5 paragraphs that includes:
- A summary of the hypothesis quality
- Two concrete strengths
- Two areas to improve
- One actionable suggestion for refinement or next steps.`, refined)

	return a.client.Complete(ctx, llm.Request{
		System:      "You are a thoughtful and critical experiment design reviewer.",
		Prompt:      prompt,
		Model:       a.opts.Model,
		MaxTokens:   a.opts.MaxTokens,
		Temperature: a.opts.Temperature,
	})
}

// HypothesisReviser объединяет гипотезу и рецензию в финальную версию.
//
// Входы: original, reflection. Выход: одна пересмотренная гипотеза.
type HypothesisReviser struct {
	client llm.Client
	opts   LLMOptions
}

// NewHypothesisReviser создаёт агента пересмотра гипотез.
func NewHypothesisReviser(client llm.Client, opts LLMOptions) *HypothesisReviser {
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 250
	}
	if opts.Temperature == 0 {
		opts.Temperature = 0.7
	}
	return &HypothesisReviser{client: client, opts: opts}
}

func (a *HypothesisReviser) Name() string {
	return HypothesisReviserName
}

func (a *HypothesisReviser) Execute(ctx context.Context, inputs map[string]any) (any, error) {
	original, err := InputString(inputs, "original")
	if err != nil {
		return nil, err
	}
	reflection, err := InputString(inputs, "reflection")
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`You are a Hypothesis Revision Agent.

Original hypothesis:
%q

Reflection feedback:
%q

Task:
Produce one revised hypothesis that integrates the reflection feedback
while remaining specific, measurable, and testable.`, original, reflection)

	return a.client.Complete(ctx, llm.Request{
		System:      "You are a precise experiment improvement agent.",
		Prompt:      prompt,
		Model:       a.opts.Model,
		MaxTokens:   a.opts.MaxTokens,
		Temperature: a.opts.Temperature,
	})
}
