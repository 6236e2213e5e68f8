package cli

import (
	"github.com/spf13/cobra"

	"github.com/CursiveCrow/cadence/pkg/engine"
	"github.com/CursiveCrow/cadence/pkg/errors"
)

// newValidateCmd creates the validate command.
func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <plan-file>",
		Short: "Check a plan file for structural problems and cycles",
		Long: `Validate checks a plan file without computing a schedule.

It runs the same gates as scheduling: task IDs must be unique and well
formed, durations positive, dependency endpoints must exist, and the
dependency graph must be acyclic. Cycles are reported with a full trace.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			p, err := loadPlan(args[0])
			if err != nil {
				return err
			}
			logger.Debug("loaded plan", "tasks", len(p.Tasks), "dependencies", len(p.Dependencies))

			if err := p.Validate(); err != nil {
				printError("%s", errors.UserMessage(err))
				printDetail("code: %s", errors.GetCode(err))
				return err
			}
			if cerr := engine.Validate(p); cerr != nil {
				printError("%s", cerr.Error())
				printDetail("code: %s", errors.ErrCodeInvalidGraph)
				return cerr
			}

			printSuccess("Plan is valid")
			printStats(len(p.Tasks), len(p.Dependencies), false)
			printDetail("hash: %s", p.Hash())
			printNextStep("Compute a schedule", "cadence schedule "+args[0])
			return nil
		},
	}
}
