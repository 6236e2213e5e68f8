// Package render converts plan snapshots into Graphviz diagrams.
//
// The renderer draws the dependency graph as a node-link diagram: one box per
// task, one arrow per dependency. When timing analysis is supplied, tasks on
// the critical path are filled red and every label carries its slack. When a
// lane assignment is supplied, labels carry the lane number.
//
// Rendering is a diagnostic surface, not the editor's drawing path: the
// editor consumes raw lane and row numbers, while the CLI uses this package
// to produce shareable SVGs for plan reviews.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/CursiveCrow/cadence/pkg/engine/layout"
	"github.com/CursiveCrow/cadence/pkg/engine/timing"
	"github.com/CursiveCrow/cadence/pkg/plan"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes start, duration, and any timing/lane annotations in
	// node labels. When false, only the task ID is shown.
	Detailed bool

	// Timing, when set, highlights zero-slack tasks and annotates labels
	// with slack values.
	Timing *timing.Analysis

	// Lanes, when set, annotates labels with lane numbers.
	Lanes *layout.LaneAssignment
}

// ToDOT converts a plan to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG].
//
// Tasks are emitted in input order and dependencies in input order, so the
// output is deterministic for a fixed plan.
func ToDOT(p *plan.Plan, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph plan {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, t := range p.Tasks {
		label := fmtLabel(t, opts)
		attrs := fmtAttrs(t, label, opts)
		fmt.Fprintf(&buf, "  %q [%s];\n", t.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, d := range p.Dependencies {
		if d.Type != "" && d.Type != plan.FinishToStart {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, label=%q];\n", d.Src, d.Dst, string(d.Type))
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", d.Src, d.Dst)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(t plan.Task, opts Options) string {
	if !opts.Detailed {
		return t.ID
	}

	parts := []string{fmt.Sprintf("start: %d, dur: %d", t.Start, t.Duration)}
	if opts.Timing != nil {
		if slack, ok := opts.Timing.Slack[t.ID]; ok {
			parts = append(parts, fmt.Sprintf("slack: %d", slack))
		}
	}
	if opts.Lanes != nil {
		if lane, ok := opts.Lanes.Lanes[t.ID]; ok {
			parts = append(parts, fmt.Sprintf("lane: %d", lane))
		}
	}

	return t.ID + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(t plan.Task, label string, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if opts.Timing != nil {
		if slack, analyzed := opts.Timing.Slack[t.ID]; analyzed && slack == 0 {
			attrs = append(attrs, "fillcolor=lightcoral", "penwidth=2")
		}
	}
	return attrs
}
