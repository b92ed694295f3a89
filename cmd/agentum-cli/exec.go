package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaiso/Agentum/internal/agents"
	"github.com/shaiso/Agentum/internal/cli"
	"github.com/shaiso/Agentum/internal/llm"
	"github.com/shaiso/Agentum/internal/runner"
	"github.com/shaiso/Agentum/internal/telemetry"
	"github.com/shaiso/Agentum/internal/workflows"
)

// newExecCmd — локальное выполнение workflow уточнения гипотезы,
// без API и базы данных: агенты, runner и граф создаются прямо
// в процессе CLI. Нужен настроенный LLM-провайдер (LLM_PROVIDER
// и API key в окружении).
func newExecCmd(outputFn func() *cli.Output) *cobra.Command {
	return &cobra.Command{
		Use:   "exec HYPOTHESIS",
		Short: "Run the hypothesis refinement workflow locally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn()

			logger := telemetry.SetupLogger()

			client, err := llm.FromEnv(logger)
			if err != nil {
				return fmt.Errorf("LLM provider not configured: %w", err)
			}

			registry := agents.NewRegistry()
			workflows.RegisterHypothesisAgents(registry, client, logger)

			run := runner.New(runner.Config{
				Executor: runner.NewAgentExecutor(registry),
				Logger:   logger,
			})

			graph := workflows.HypothesisRefinement()
			res := run.Execute(cmd.Context(), graph, map[string]any{
				"hypothesis": args[0],
			})

			headers := []string{"STEP", "STATUS", "RESULT"}
			rows := make([][]string, 0, len(res.Order))
			for _, name := range res.Order {
				step, ok := res.Steps[name]
				if !ok {
					continue
				}
				result := ""
				if step.Result != nil {
					if s, isStr := step.Result.(string); isStr {
						result = s
					} else if data, merr := json.Marshal(step.Result); merr == nil {
						result = string(data)
					}
				}
				rows = append(rows, []string{name, string(step.Status), result})
			}
			out.Print(headers, rows, res)

			if res.Err != nil {
				return res.Err
			}

			out.Success(fmt.Sprintf("Final result: %v", res.FinalResult))
			return nil
		},
	}
}
