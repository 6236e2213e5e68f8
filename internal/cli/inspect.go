package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/CursiveCrow/cadence/pkg/pipeline"
)

// newInspectCmd creates the inspect command.
func newInspectCmd(configPath *string) *cobra.Command {
	var (
		maxParallel int
		rowCount    int
	)

	cmd := &cobra.Command{
		Use:   "inspect <plan-file>",
		Short: "Browse a computed schedule in an interactive task list",
		Long: `Inspect computes a schedule and opens it in an interactive terminal
browser. Tasks are listed in topological order with their start, duration,
slack, lane, and row; critical tasks are highlighted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			applyScheduleDefaults(&maxParallel, &rowCount, cfg)

			p, err := loadPlan(args[0])
			if err != nil {
				return err
			}

			runner, err := newRunner(ctx, cfg)
			if err != nil {
				return err
			}
			defer runner.Close()

			result, err := runner.Execute(ctx, p, pipeline.Options{
				MaxParallel: maxParallel,
				RowCount:    rowCount,
				Logger:      loggerFromContext(ctx),
			})
			if err != nil {
				return err
			}

			model := NewTaskListModel(p, result)
			_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
			return err
		},
	}

	cmd.Flags().IntVar(&maxParallel, "max-parallel", 0, "level start times to at most N concurrent tasks (0 = off)")
	cmd.Flags().IntVar(&rowCount, "rows", 0, "assign each task to one of N rows (0 = off)")

	return cmd
}
