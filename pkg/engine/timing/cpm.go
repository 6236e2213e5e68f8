package timing

import (
	"github.com/CursiveCrow/cadence/pkg/engine"
	"github.com/CursiveCrow/cadence/pkg/plan"
)

// Constraint evaluates the timing bound a dependency edge imposes, per
// dependency type.
//
// The engine only ships finish-to-start math ([FinishToStart]); the other
// three dependency types are carried through the data model but have no
// agreed formulas yet. Implementing this interface lets callers add them
// without breaking the Analyze signature: return ok=false to leave an edge
// out of the timing computation.
type Constraint interface {
	// EarliestBound returns the lower bound dep imposes on the earliest
	// start of its target, given the source's earliest start and duration.
	// ok=false means the edge does not constrain the forward pass.
	EarliestBound(dep plan.Dependency, srcEarliest, srcDuration int64) (bound int64, ok bool)

	// LatestBound returns the upper bound dep imposes on the latest start
	// of its source, given the target's latest start and the source's
	// duration. ok=false means the edge does not constrain the backward pass.
	LatestBound(dep plan.Dependency, dstLatest, srcDuration int64) (bound int64, ok bool)
}

// FinishToStart is the default [Constraint]: a target may start only after
// its source finishes. Edges of any other type are ignored.
type FinishToStart struct{}

// EarliestBound implements [Constraint].
func (FinishToStart) EarliestBound(dep plan.Dependency, srcEarliest, srcDuration int64) (int64, bool) {
	if dep.Type != plan.FinishToStart {
		return 0, false
	}
	return srcEarliest + srcDuration, true
}

// LatestBound implements [Constraint].
func (FinishToStart) LatestBound(dep plan.Dependency, dstLatest, srcDuration int64) (int64, bool) {
	if dep.Type != plan.FinishToStart {
		return 0, false
	}
	return dstLatest - srcDuration, true
}

// Analysis holds per-task CPM results plus the overall project duration.
// All maps have one entry per task in the analyzed snapshot.
type Analysis struct {
	EarliestStart   map[string]int64 `json:"earliest_start" bson:"earliest_start"`
	LatestStart     map[string]int64 `json:"latest_start" bson:"latest_start"`
	Slack           map[string]int64 `json:"slack" bson:"slack"`
	ProjectDuration int64            `json:"project_duration" bson:"project_duration"`
}

// Critical returns the IDs of zero-slack tasks in snapshot input order.
// These tasks form (at least one) critical path.
func (a *Analysis) Critical(p *plan.Plan) []string {
	var ids []string
	for _, t := range p.Tasks {
		if a.Slack[t.ID] == 0 {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// Analyze runs CPM over the snapshot using the default finish-to-start
// constraint. The snapshot must be acyclic and fully referenced.
func Analyze(p *plan.Plan) *Analysis {
	return AnalyzeWithConstraint(p, FinishToStart{})
}

// AnalyzeWithConstraint runs CPM with a caller-supplied constraint
// evaluator.
//
// Forward pass (topological order): the earliest start of a task is the
// maximum bound imposed by its constrained incoming edges, floored at 0.
// The project duration is the maximum earliest finish across all tasks.
//
// Backward pass (reversed topological order): the latest start of a task
// with no constrained outgoing edges is projectDuration minus its duration;
// otherwise it is the minimum bound over its constrained outgoing edges.
// Slack is latest minus earliest and is never negative on valid input.
func AnalyzeWithConstraint(p *plan.Plan, c Constraint) *Analysis {
	tasks := p.TaskIndex()
	order := engine.TopoSort(p)

	// Group edges by endpoint once; both passes walk them.
	incoming := make(map[string][]plan.Dependency, len(p.Tasks))
	outgoing := make(map[string][]plan.Dependency, len(p.Tasks))
	for _, d := range p.Dependencies {
		if _, ok := tasks[d.Src]; !ok {
			continue
		}
		if _, ok := tasks[d.Dst]; !ok {
			continue
		}
		incoming[d.Dst] = append(incoming[d.Dst], d)
		outgoing[d.Src] = append(outgoing[d.Src], d)
	}

	a := &Analysis{
		EarliestStart: make(map[string]int64, len(p.Tasks)),
		LatestStart:   make(map[string]int64, len(p.Tasks)),
		Slack:         make(map[string]int64, len(p.Tasks)),
	}

	for _, id := range order {
		var earliest int64
		for _, d := range incoming[id] {
			src := tasks[d.Src]
			if bound, ok := c.EarliestBound(d, a.EarliestStart[d.Src], src.Duration); ok && bound > earliest {
				earliest = bound
			}
		}
		a.EarliestStart[id] = earliest

		if finish := earliest + tasks[id].Duration; finish > a.ProjectDuration {
			a.ProjectDuration = finish
		}
	}

	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		dur := tasks[id].Duration

		latest := a.ProjectDuration - dur
		constrained := false
		for _, d := range outgoing[id] {
			bound, ok := c.LatestBound(d, a.LatestStart[d.Dst], dur)
			if !ok {
				continue
			}
			if !constrained || bound < latest {
				latest = bound
			}
			constrained = true
		}

		a.LatestStart[id] = latest
		a.Slack[id] = latest - a.EarliestStart[id]
	}

	return a
}
