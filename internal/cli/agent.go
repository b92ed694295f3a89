package cli

import (
	"github.com/spf13/cobra"
)

// NewAgentCmd создаёт группу команд для работы с агентами.
func NewAgentCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Inspect and invoke agents",
	}

	cmd.AddCommand(
		newAgentListCmd(clientFn, outputFn),
		newAgentExecCmd(clientFn, outputFn),
	)

	return cmd
}

func newAgentListCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered agents",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			agents, err := client.ListAgents()
			if err != nil {
				return err
			}

			rows := make([][]string, len(agents))
			for i, name := range agents {
				rows[i] = []string{name}
			}

			out.Print([]string{"NAME"}, rows, agents)
			return nil
		},
	}
}

func newAgentExecCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var inputs []string

	cmd := &cobra.Command{
		Use:   "exec NAME",
		Short: "Execute an agent directly, outside of any workflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			parsed, err := parseInputs(inputs)
			if err != nil {
				return err
			}

			resp, err := client.ExecuteAgent(args[0], parsed)
			if err != nil {
				return err
			}

			out.Print(
				[]string{"AGENT", "RESULT"},
				[][]string{{resp.Agent, renderResult(resp.Result)}},
				resp,
			)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&inputs, "input", nil, "Input values as KEY=VALUE (repeatable)")

	return cmd
}
