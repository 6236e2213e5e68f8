package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CursiveCrow/cadence/pkg/engine"
	"github.com/CursiveCrow/cadence/pkg/engine/layout"
	"github.com/CursiveCrow/cadence/pkg/engine/timing"
	"github.com/CursiveCrow/cadence/pkg/errors"
	"github.com/CursiveCrow/cadence/pkg/render"
)

// newRenderCmd creates the render command.
func newRenderCmd() *cobra.Command {
	var (
		output   string
		detailed bool
		dotOnly  bool
	)

	cmd := &cobra.Command{
		Use:   "render <plan-file>",
		Short: "Generate an SVG or DOT diagram of the dependency graph",
		Long: `Render draws the plan's dependency graph as a node-link diagram.
Tasks on the critical path are highlighted, and with --detailed each node
carries its start, duration, slack, and lane.

The output format follows the output file extension: .svg renders through
Graphviz, .dot writes the raw DOT source. Use --dot to print DOT to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			p, err := loadPlan(args[0])
			if err != nil {
				return err
			}
			if err := p.Validate(); err != nil {
				return err
			}
			if cerr := engine.Validate(p); cerr != nil {
				return errors.Wrap(errors.ErrCodeInvalidGraph, cerr, "cycle detection")
			}

			dot := render.ToDOT(p, render.Options{
				Detailed: detailed,
				Timing:   timing.Analyze(p),
				Lanes:    layout.AssignLanes(p),
			})

			if dotOnly {
				fmt.Print(dot)
				return nil
			}
			if output == "" {
				output = strings.TrimSuffix(args[0], ".json")
				output = strings.TrimSuffix(output, ".toml") + ".svg"
			}

			if strings.HasSuffix(output, ".dot") {
				if err := os.WriteFile(output, []byte(dot), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				printSuccess("Wrote DOT source")
				printFile(output)
				return nil
			}

			spin := newSpinner(ctx, "Rendering diagram...")
			spin.Start()
			svg, err := render.RenderSVG(ctx, dot)
			spin.Stop()
			if err != nil {
				return err
			}
			logger.Debug("rendered svg", "bytes", len(svg))

			if err := os.WriteFile(output, svg, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			printSuccess("Rendered %d tasks", len(p.Tasks))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.svg or .dot, default <plan>.svg)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include timing and lane annotations in labels")
	cmd.Flags().BoolVar(&dotOnly, "dot", false, "print DOT source to stdout instead of writing a file")

	return cmd
}
