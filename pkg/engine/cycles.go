package engine

import (
	"fmt"
	"strings"

	"github.com/CursiveCrow/cadence/pkg/plan"
)

// DFS node colors. White nodes are unvisited, gray nodes are on the current
// traversal path, black nodes are fully explored.
const (
	white = iota
	gray
	black
)

// CycleError reports a directed cycle found in a snapshot. Trace holds the
// task IDs along the cycle in edge order: each consecutive pair is a
// dependency edge present in the input, and the last task has an edge back
// to the first. A self-loop yields a one-element trace.
type CycleError struct {
	Trace []string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	if len(e.Trace) == 1 {
		return fmt.Sprintf("task %s depends on itself", e.Trace[0])
	}
	return fmt.Sprintf("dependency cycle: %s -> %s", strings.Join(e.Trace, " -> "), e.Trace[0])
}

// Validate checks that the snapshot's dependency graph is acyclic.
//
// It runs a three-color depth-first search over the forward adjacency,
// starting a fresh traversal from every unvisited task in input order, so
// cycles are found in every connected component and the reported cycle is
// deterministic when several exist. The DFS uses an explicit frame stack
// rather than native recursion.
//
// Returns nil when no directed cycle exists, or a *CycleError describing
// the first cycle encountered.
func Validate(p *plan.Plan) *CycleError {
	idx := NewIndex(p)
	return validate(p, idx)
}

// ValidateIndexed is like [Validate] but reuses an already-built index, for
// callers that need the adjacency for later stages anyway.
func ValidateIndexed(p *plan.Plan, idx *Index) *CycleError {
	return validate(p, idx)
}

type frame struct {
	id   string
	next int // index of the next successor to visit
}

func validate(p *plan.Plan, idx *Index) *CycleError {
	color := make(map[string]int, len(p.Tasks))

	for _, root := range p.Tasks {
		if color[root.ID] != white {
			continue
		}

		stack := []frame{{id: root.ID}}
		color[root.ID] = gray

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			succ := idx.Forward[f.id]

			if f.next >= len(succ) {
				color[f.id] = black
				stack = stack[:len(stack)-1]
				continue
			}

			child := succ[f.next]
			f.next++

			switch color[child] {
			case white:
				color[child] = gray
				stack = append(stack, frame{id: child})
			case gray:
				// The gray stack slice from child to the top is the cycle.
				start := 0
				for i := range stack {
					if stack[i].id == child {
						start = i
						break
					}
				}
				trace := make([]string, 0, len(stack)-start)
				for _, fr := range stack[start:] {
					trace = append(trace, fr.id)
				}
				return &CycleError{Trace: trace}
			}
		}
	}

	return nil
}
