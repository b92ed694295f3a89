package runner

import (
	"context"
	"log/slog"

	"github.com/shaiso/Agentum/internal/engine"
)

// Config — конфигурация Runner.
type Config struct {
	// Executor выполняет отдельные шаги.
	Executor StepExecutor

	// Logger — структурированный логгер.
	Logger *slog.Logger
}

// Runner последовательно выполняет граф workflow.
type Runner struct {
	executor StepExecutor
	logger   *slog.Logger
}

// New создаёт Runner.
func New(cfg Config) *Runner {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		executor: cfg.Executor,
		logger:   logger,
	}
}

// Execute выполняет граф с заданными initial inputs.
//
// Всегда возвращает ненулевой Result. Структурная ошибка графа
// (цикл, висячая зависимость, дубликат) даёт Result со статусом
// FAILED без единого исхода шага. Ошибка данных или агента
// фиксируется на упавшем шаге и останавливает выполнение:
// шаги после упавшего не выполняются и в исходах не появляются.
// SKIPPED получают только шаги с ложным условием.
func (r *Runner) Execute(ctx context.Context, graph *engine.Graph, initial map[string]any) *engine.Result {
	res := engine.NewResult(graph.Name())

	order, err := graph.ResolveOrder()
	if err != nil {
		r.logger.Error("workflow definition rejected",
			slog.String("workflow", graph.Name()),
			slog.String("error", err.Error()),
		)
		res.Fail(err)
		return res
	}

	r.logger.Info("workflow started",
		slog.String("workflow", graph.Name()),
		slog.Int("steps", len(order)),
	)

	for _, name := range order {
		step, _ := graph.Step(name)

		run, err := engine.ShouldRun(step, initial, res)
		if err != nil {
			res.RecordFailed(name, err)
			r.logger.Error("condition evaluation failed",
				slog.String("workflow", graph.Name()),
				slog.String("step", name),
				slog.String("error", err.Error()),
			)
			break
		}
		if !run {
			res.RecordSkipped(name)
			r.logger.Info("step skipped",
				slog.String("workflow", graph.Name()),
				slog.String("step", name),
				slog.String("reason", "condition is false"),
			)
			continue
		}

		inputs, err := engine.ResolveInputs(step, initial, res)
		if err != nil {
			res.RecordFailed(name, err)
			r.logger.Error("input resolution failed",
				slog.String("workflow", graph.Name()),
				slog.String("step", name),
				slog.String("error", err.Error()),
			)
			break
		}

		output, err := r.executor.ExecuteStep(ctx, step, inputs)
		if err != nil {
			execErr := &AgentExecutionError{Step: name, Agent: step.Agent, Err: err}
			res.RecordFailed(name, execErr)
			r.logger.Error("step failed",
				slog.String("workflow", graph.Name()),
				slog.String("step", name),
				slog.String("agent", step.Agent),
				slog.String("error", err.Error()),
			)
			break
		}

		res.RecordSucceeded(name, output)
		r.logger.Info("step succeeded",
			slog.String("workflow", graph.Name()),
			slog.String("step", name),
			slog.String("agent", step.Agent),
		)
	}

	res.Complete()

	r.logger.Info("workflow finished",
		slog.String("workflow", graph.Name()),
		slog.String("status", string(res.Status)),
	)

	return res
}
