package layout

import (
	"cmp"
	"slices"

	"github.com/CursiveCrow/cadence/pkg/engine"
	"github.com/CursiveCrow/cadence/pkg/plan"
)

// LaneAssignment maps each task to a visual lane index (>= 0). LaneCount is
// the total number of lanes allocated; indices are dense in [0, LaneCount)
// at allocation time but lanes are never reused or renumbered, so some may
// end up sparsely occupied.
type LaneAssignment struct {
	Lanes     map[string]int `json:"lanes" bson:"lanes"`
	LaneCount int            `json:"lane_count" bson:"lane_count"`
}

// Metrics quantifies layout quality across dependency edges. Movement is
// |lane(dst) - lane(src)| per edge; Continuity is the fraction of edges
// with zero movement. These are regression-test diagnostics, not
// correctness guarantees.
type Metrics struct {
	AvgMovement float64 `json:"avg_movement" bson:"avg_movement"`
	MaxMovement int     `json:"max_movement" bson:"max_movement"`
	Continuity  float64 `json:"continuity" bson:"continuity"`
}

// AssignLanes computes a dependency-aware lane per task.
//
// Tasks are visited in topological order with earlier snapshot starts
// breaking ties among unrelated tasks (Kahn's algorithm with an ordered
// ready set). Each task prefers the lane of its latest-finishing assigned
// predecessor; if that lane is occupied at the task's start, the closest
// free lane is used, and when every lane is occupied a new one is
// allocated. A final smoothing pass straightens single-predecessor,
// single-successor pass-through tasks back onto their neighbors' shared
// lane when no interval overlap prevents it.
//
// The snapshot must be acyclic (run engine.Validate first).
func AssignLanes(p *plan.Plan) *LaneAssignment {
	idx := engine.NewIndex(p)
	tasks := p.TaskIndex()
	order := laneOrder(p, idx)

	lanes := make(map[string]int, len(p.Tasks))
	var laneEnds []int64 // per lane, the latest finish among assigned intervals

	// free reports whether no interval already on the lane extends past the
	// task's start.
	free := func(lane int, start int64) bool { return laneEnds[lane] <= start }

	occupy := func(lane int, t plan.Task) {
		lanes[t.ID] = lane
		if end := t.End(); end > laneEnds[lane] {
			laneEnds[lane] = end
		}
	}

	for _, id := range order {
		t := tasks[id]

		// Preferred lane: the lane of the latest-finishing predecessor that
		// already has one.
		preferred := -1
		var latestFinish int64
		for _, pred := range idx.Reverse[id] {
			lane, ok := lanes[pred]
			if !ok {
				continue
			}
			if finish := tasks[pred].End(); preferred < 0 || finish > latestFinish {
				preferred = lane
				latestFinish = finish
			}
		}

		if preferred >= 0 && free(preferred, t.Start) {
			occupy(preferred, t)
			continue
		}

		// Search existing lanes for one free at the task's start, preferring
		// numeric closeness to the preferred lane when there is one.
		best := -1
		for lane := range laneEnds {
			if !free(lane, t.Start) {
				continue
			}
			if best < 0 {
				best = lane
				continue
			}
			if preferred >= 0 && abs(lane-preferred) < abs(best-preferred) {
				best = lane
			}
		}

		if best < 0 {
			// Monotonic allocation: lanes are never reused or recompacted.
			// The fresh lane's end is the occupying task's end; starts are
			// caller-defined instants and may be negative, so a zero seed
			// would keep the lane occupied through time 0.
			best = len(laneEnds)
			laneEnds = append(laneEnds, t.End())
		}
		occupy(best, t)
	}

	smooth(p, idx, tasks, lanes)

	return &LaneAssignment{Lanes: lanes, LaneCount: len(laneEnds)}
}

// laneOrder returns a topological order whose ties among ready tasks are
// broken by ascending snapshot start, then ID.
func laneOrder(p *plan.Plan, idx *engine.Index) []string {
	tasks := p.TaskIndex()
	inDegree := make(map[string]int, len(p.Tasks))
	var ready []string
	for _, t := range p.Tasks {
		inDegree[t.ID] = idx.InDegree(t.ID)
		if inDegree[t.ID] == 0 {
			ready = append(ready, t.ID)
		}
	}

	less := func(a, b string) int {
		if c := cmp.Compare(tasks[a].Start, tasks[b].Start); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	}

	order := make([]string, 0, len(p.Tasks))
	for len(ready) > 0 {
		slices.SortFunc(ready, less)
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)

		for _, succ := range idx.Forward[next] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				ready = append(ready, succ)
			}
		}
	}
	return order
}

// smooth reassigns simple pass-through tasks onto their neighbors' shared
// lane: exactly one predecessor, exactly one successor, both on the same
// lane, the task on a different one, and no interval overlap with either
// neighbor.
func smooth(p *plan.Plan, idx *engine.Index, tasks map[string]plan.Task, lanes map[string]int) {
	for _, t := range p.Tasks {
		preds := idx.Reverse[t.ID]
		succs := idx.Forward[t.ID]
		if len(preds) != 1 || len(succs) != 1 {
			continue
		}

		shared := lanes[preds[0]]
		if lanes[succs[0]] != shared || lanes[t.ID] == shared {
			continue
		}
		if t.Overlaps(tasks[preds[0]]) || t.Overlaps(tasks[succs[0]]) {
			continue
		}
		lanes[t.ID] = shared
	}
}

// LaneMetrics computes continuity diagnostics for an assignment over the
// snapshot's dependency edges. Returns zero metrics for a plan without
// dependencies.
func (a *LaneAssignment) LaneMetrics(p *plan.Plan) Metrics {
	var m Metrics
	edges := 0
	total := 0
	straight := 0

	for _, d := range p.Dependencies {
		src, okS := a.Lanes[d.Src]
		dst, okD := a.Lanes[d.Dst]
		if !okS || !okD {
			continue
		}
		move := abs(dst - src)
		edges++
		total += move
		if move > m.MaxMovement {
			m.MaxMovement = move
		}
		if move == 0 {
			straight++
		}
	}

	if edges > 0 {
		m.AvgMovement = float64(total) / float64(edges)
		m.Continuity = float64(straight) / float64(edges)
	}
	return m
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
