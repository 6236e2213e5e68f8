package layout

import (
	"cmp"
	"maps"
	"slices"

	"github.com/CursiveCrow/cadence/pkg/plan"
)

// RowAssignment maps each task to a row index in [0, rowCount) within its
// group, plus the number of temporal overlap conflicts the chosen row
// already carried at placement time. A nonzero conflict count means more
// tasks were concurrently active than rows available; the task is placed
// anyway in the least-conflicting row.
type RowAssignment struct {
	Rows      map[string]int `json:"rows" bson:"rows"`
	Conflicts map[string]int `json:"conflicts" bson:"conflicts"`
}

// AssignRows packs tasks into a bounded set of rows per group.
//
// Each group (e.g., one staff) is processed independently: tasks sorted by
// ascending start (ties by ID), each scanned against rows 0..rowCount-1
// counting temporal overlaps with intervals already placed in that row. The
// first zero-conflict row wins immediately; otherwise the row with the
// fewest conflicts does, lowest index breaking ties. Dependency structure
// is deliberately ignored here.
//
// rowCount < 1 is treated as 1. AssignRows never fails: with insufficient
// rows it reports conflicts rather than rejecting the task.
func AssignRows(tasksByGroup map[string][]plan.Task, rowCount int) *RowAssignment {
	if rowCount < 1 {
		rowCount = 1
	}

	out := &RowAssignment{
		Rows:      make(map[string]int),
		Conflicts: make(map[string]int),
	}

	for _, group := range slices.Sorted(maps.Keys(tasksByGroup)) {
		assignGroup(tasksByGroup[group], rowCount, out)
	}
	return out
}

func assignGroup(tasks []plan.Task, rowCount int, out *RowAssignment) {
	ordered := slices.Clone(tasks)
	slices.SortStableFunc(ordered, func(a, b plan.Task) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	rows := make([][]plan.Task, rowCount)

	for _, t := range ordered {
		bestRow := 0
		bestConflicts := -1

		for row := 0; row < rowCount; row++ {
			conflicts := 0
			for _, placed := range rows[row] {
				if t.Overlaps(placed) {
					conflicts++
				}
			}
			if conflicts == 0 {
				bestRow, bestConflicts = row, 0
				break
			}
			if bestConflicts < 0 || conflicts < bestConflicts {
				bestRow, bestConflicts = row, conflicts
			}
		}

		rows[bestRow] = append(rows[bestRow], t)
		out.Rows[t.ID] = bestRow
		out.Conflicts[t.ID] = bestConflicts
	}
}
