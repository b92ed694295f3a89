package agents

import (
	"context"
	"log/slog"
	"time"

	"github.com/shaiso/Agentum/internal/telemetry"
)

// instrumented — агент, обёрнутый в логирование и метрики.
type instrumented struct {
	agent  Agent
	logger *slog.Logger
}

// Instrument оборачивает агента в логирование и Prometheus-метрики.
//
// Каждый вызов логируется с именем агента и длительностью,
// инкрементирует agentum_agent_executions_total и записывает
// длительность в agentum_agent_duration_seconds.
func Instrument(agent Agent, logger *slog.Logger) Agent {
	if logger == nil {
		logger = slog.Default()
	}
	return &instrumented{
		agent:  agent,
		logger: telemetry.WithAgent(logger, agent.Name()),
	}
}

func (a *instrumented) Name() string {
	return a.agent.Name()
}

func (a *instrumented) Execute(ctx context.Context, inputs map[string]any) (any, error) {
	a.logger.Info("agent execution started")
	telemetry.AgentExecutions.WithLabelValues(a.agent.Name()).Inc()

	start := time.Now()
	result, err := a.agent.Execute(ctx, inputs)
	duration := time.Since(start)

	if err != nil {
		telemetry.AgentErrors.WithLabelValues(a.agent.Name()).Inc()
		telemetry.AgentDuration.WithLabelValues(a.agent.Name(), "error").Observe(duration.Seconds())

		a.logger.Error("agent execution failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	telemetry.AgentDuration.WithLabelValues(a.agent.Name(), "success").Observe(duration.Seconds())

	a.logger.Info("agent execution finished",
		slog.Duration("duration", duration),
	)
	return result, nil
}
