package engine

import (
	"github.com/CursiveCrow/cadence/pkg/plan"
)

// TopoSort returns a dependency-respecting linear order of all task IDs:
// for every dependency src → dst, src appears before dst.
//
// Precondition: the snapshot must be acyclic. Callers must run [Validate]
// first; the result on a cyclic snapshot is unspecified. The ordering among
// unrelated tasks is implementation-defined but deterministic for a fixed
// snapshot (unvisited tasks are processed in input order).
//
// The implementation is an iterative depth-first search producing reverse
// postorder: a task is emitted after all of its successors, then the result
// is reversed.
func TopoSort(p *plan.Plan) []string {
	idx := NewIndex(p)
	return TopoSortIndexed(p, idx)
}

// TopoSortIndexed is like [TopoSort] but reuses an already-built index.
func TopoSortIndexed(p *plan.Plan, idx *Index) []string {
	color := make(map[string]int, len(p.Tasks))
	post := make([]string, 0, len(p.Tasks))

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
				post = append(post, f.id)
				stack = stack[:len(stack)-1]
				continue
			}

			child := succ[f.next]
			f.next++

			if color[child] == white {
				color[child] = gray
				stack = append(stack, frame{id: child})
			}
		}
	}

	// Reverse postorder: successors were emitted first, so flipping the
	// slice puts every source before its targets.
	for i, j := 0, len(post)-1; i < j; i, j = i+1, j-1 {
		post[i], post[j] = post[j], post[i]
	}
	return post
}

// Rank returns the position of each task in the given topological order.
// It is a convenience for callers that need fast ordering lookups, mirroring
// the order slice as an ID → index map.
func Rank(order []string) map[string]int {
	m := make(map[string]int, len(order))
	for i, id := range order {
		m[id] = i
	}
	return m
}
