package engine

import (
	"github.com/CursiveCrow/cadence/pkg/plan"
)

// Index holds forward and reverse adjacency for a snapshot.
//
// Every task in the snapshot has an entry in both maps, even when its
// adjacency list is empty, so leaf and root tasks are represented and
// lookups never need an existence check. Construction is O(V+E).
//
// Edges whose endpoints do not reference a known task are skipped here -
// adjacency construction performs no validation. Referential integrity is
// an explicit gate (plan.Validate) that callers must run first.
type Index struct {
	// Forward maps a task ID to the IDs of tasks that depend on it
	// (successors along dependency edges).
	Forward map[string][]string

	// Reverse maps a task ID to the IDs of tasks it depends on
	// (predecessors along dependency edges).
	Reverse map[string][]string
}

// NewIndex builds the adjacency index for a snapshot.
func NewIndex(p *plan.Plan) *Index {
	idx := &Index{
		Forward: make(map[string][]string, len(p.Tasks)),
		Reverse: make(map[string][]string, len(p.Tasks)),
	}

	for _, t := range p.Tasks {
		idx.Forward[t.ID] = nil
		idx.Reverse[t.ID] = nil
	}

	for _, d := range p.Dependencies {
		if _, ok := idx.Forward[d.Src]; !ok {
			continue
		}
		if _, ok := idx.Forward[d.Dst]; !ok {
			continue
		}
		idx.Forward[d.Src] = append(idx.Forward[d.Src], d.Dst)
		idx.Reverse[d.Dst] = append(idx.Reverse[d.Dst], d.Src)
	}

	return idx
}

// Successors returns the tasks that directly depend on id.
// The returned slice is a read-only view; do not modify it.
func (idx *Index) Successors(id string) []string { return idx.Forward[id] }

// Predecessors returns the tasks that id directly depends on.
// The returned slice is a read-only view; do not modify it.
func (idx *Index) Predecessors(id string) []string { return idx.Reverse[id] }

// OutDegree returns the number of tasks depending on id.
func (idx *Index) OutDegree(id string) int { return len(idx.Forward[id]) }

// InDegree returns the number of tasks id depends on.
func (idx *Index) InDegree(id string) int { return len(idx.Reverse[id]) }
