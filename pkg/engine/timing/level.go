package timing

import (
	"cmp"
	"slices"

	"github.com/CursiveCrow/cadence/pkg/plan"
)

// Placement records where the leveler put one task. LeveledStart equals the
// task's snapshot start when no delay was needed.
type Placement struct {
	ID           string `json:"id" bson:"id"`
	LeveledStart int64  `json:"leveled_start" bson:"leveled_start"`
}

// Level delays tasks greedily so that at most maxParallel run at any
// instant. Tasks are processed by ascending snapshot start (ties broken by
// ID); each task keeps its start if fewer than maxParallel already-placed
// intervals are active there, otherwise it is pushed just past the
// earliest-ending active interval and rechecked.
//
// This is a heuristic, not an optimal resource-constrained schedule: it can
// produce longer makespans than an exact solver, which is the accepted
// trade-off for near-linear behavior. The returned placements are in
// processing order. maxParallel < 1 is treated as 1.
func Level(tasks []plan.Task, maxParallel int) []Placement {
	if maxParallel < 1 {
		maxParallel = 1
	}

	ordered := slices.Clone(tasks)
	slices.SortStableFunc(ordered, func(a, b plan.Task) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	type interval struct{ start, end int64 }
	placed := make([]interval, 0, len(ordered))
	out := make([]Placement, 0, len(ordered))

	for _, t := range ordered {
		start := t.Start

		for {
			active := 0
			earliestEnd := int64(-1)
			for _, iv := range placed {
				if iv.start <= start && start < iv.end {
					active++
					if earliestEnd < 0 || iv.end < earliestEnd {
						earliestEnd = iv.end
					}
				}
			}
			if active < maxParallel {
				break
			}
			// Step past the earliest-ending occupant and recheck; other
			// occupants may still block the new instant.
			start = earliestEnd + 1
		}

		placed = append(placed, interval{start: start, end: start + t.Duration})
		out = append(out, Placement{ID: t.ID, LeveledStart: start})
	}

	return out
}
