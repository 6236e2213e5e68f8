package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CursiveCrow/cadence/pkg/pipeline"
	"github.com/CursiveCrow/cadence/pkg/plan"
)

// newScheduleCmd creates the schedule command.
func newScheduleCmd(configPath *string) *cobra.Command {
	var (
		maxParallel int
		rowCount    int
		groupSpecs  []string
		refresh     bool
		noCache     bool
		output      string
	)

	cmd := &cobra.Command{
		Use:   "schedule <plan-file>",
		Short: "Compute timing, lanes, and rows for a plan",
		Long: `Schedule runs the full pipeline over a plan file: validation, topological
ordering, critical path analysis, optional resource leveling, lane
assignment, and optional row assignment.

Results are cached by plan content hash, so re-running on an unchanged
plan is instant. Use --refresh to force recomputation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if noCache {
				cfg.NoCache = true
			}
			applyScheduleDefaults(&maxParallel, &rowCount, cfg)

			groups, err := parseGroups(groupSpecs)
			if err != nil {
				return err
			}

			p, err := loadPlan(args[0])
			if err != nil {
				return err
			}

			runner, err := newRunner(ctx, cfg)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(logger)
			result, err := runner.Execute(ctx, p, pipeline.Options{
				MaxParallel: maxParallel,
				RowCount:    rowCount,
				Groups:      groups,
				Refresh:     refresh,
				Logger:      logger,
			})
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Scheduled %d tasks", len(p.Tasks)))

			if output != "" {
				if err := writeResult(result, output); err != nil {
					return err
				}
			}

			printScheduleSummary(result, p, output)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxParallel, "max-parallel", 0, "level start times to at most N concurrent tasks (0 = off)")
	cmd.Flags().IntVar(&rowCount, "rows", 0, "assign each task to one of N rows within its group (0 = off)")
	cmd.Flags().StringArrayVar(&groupSpecs, "group", nil, "row group assignment as task=group (repeatable)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if a cached schedule exists")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the schedule cache")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the full result as JSON to this file")

	return cmd
}

// applyScheduleDefaults fills unset flags from the config file.
func applyScheduleDefaults(maxParallel, rowCount *int, cfg Config) {
	if *maxParallel == 0 {
		*maxParallel = cfg.Defaults.MaxParallel
	}
	if *rowCount == 0 {
		*rowCount = cfg.Defaults.RowCount
	}
}

// parseGroups parses repeated task=group flags into a lookup map.
func parseGroups(specs []string) (map[string]string, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	groups := make(map[string]string, len(specs))
	for _, spec := range specs {
		task, group, ok := strings.Cut(spec, "=")
		if !ok || task == "" {
			return nil, fmt.Errorf("invalid --group %q (want task=group)", spec)
		}
		groups[task] = group
	}
	return groups, nil
}

// writeResult writes the pipeline result as indented JSON.
func writeResult(result *pipeline.Result, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// printScheduleSummary prints the human-readable schedule summary.
func printScheduleSummary(result *pipeline.Result, p *plan.Plan, output string) {
	printStats(result.Stats.TaskCount, result.Stats.DepCount, result.CacheInfo.ScheduleHit)
	printKeyValue("duration", fmt.Sprintf("%d units", result.Timing.ProjectDuration))
	printKeyValue("lanes", fmt.Sprintf("%d", result.Lanes.LaneCount))

	critical := 0
	for _, slack := range result.Timing.Slack {
		if slack == 0 {
			critical++
		}
	}
	printKeyValue("critical tasks", fmt.Sprintf("%d", critical))

	if result.Leveled != nil {
		tasks := p.TaskIndex()
		delayed := 0
		for _, pl := range result.Leveled {
			if pl.LeveledStart != tasks[pl.ID].Start {
				delayed++
			}
		}
		printKeyValue("leveled", fmt.Sprintf("%d tasks delayed", delayed))
	}
	if result.Rows != nil {
		conflicts := 0
		for _, c := range result.Rows.Conflicts {
			conflicts += c
		}
		if conflicts > 0 {
			printWarning("%d row conflicts remain", conflicts)
		}
	}

	if output != "" {
		printFile(output)
	}
}
