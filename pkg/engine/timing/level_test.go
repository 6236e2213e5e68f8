package timing

import (
	"testing"

	"github.com/CursiveCrow/cadence/pkg/plan"
)

func placementMap(ps []Placement) map[string]int64 {
	m := make(map[string]int64, len(ps))
	for _, p := range ps {
		m[p.ID] = p.LeveledStart
	}
	return m
}

// maxConcurrent returns the highest number of tasks simultaneously active
// under the given placements.
func maxConcurrent(tasks []plan.Task, starts map[string]int64) int {
	max := 0
	for _, t := range tasks {
		s := starts[t.ID]
		// Sample at each task's leveled start; concurrency maxima occur at
		// interval starts.
		active := 0
		for _, o := range tasks {
			os := starts[o.ID]
			if os <= s && s < os+o.Duration {
				active++
			}
		}
		if active > max {
			max = active
		}
	}
	return max
}

func TestLevel_ThreeAtOnce(t *testing.T) {
	// Scenario: three tasks all starting at 0, maxParallel 2. Exactly one
	// must be pushed later, and no instant may have more than 2 running.
	tasks := []plan.Task{
		{ID: "a", Start: 0, Duration: 2},
		{ID: "b", Start: 0, Duration: 2},
		{ID: "c", Start: 0, Duration: 2},
	}

	starts := placementMap(Level(tasks, 2))

	delayed := 0
	for _, task := range tasks {
		if starts[task.ID] > task.Start {
			delayed++
		}
	}
	if delayed != 1 {
		t.Errorf("%d tasks delayed, want exactly 1", delayed)
	}
	if got := maxConcurrent(tasks, starts); got > 2 {
		t.Errorf("max concurrency = %d, want <= 2", got)
	}
}

func TestLevel_NoDelayWhenUnderLimit(t *testing.T) {
	tasks := []plan.Task{
		{ID: "a", Start: 0, Duration: 3},
		{ID: "b", Start: 1, Duration: 3},
		{ID: "c", Start: 10, Duration: 1},
	}

	starts := placementMap(Level(tasks, 2))

	for _, task := range tasks {
		if starts[task.ID] != task.Start {
			t.Errorf("task %s moved from %d to %d, want unchanged", task.ID, task.Start, starts[task.ID])
		}
	}
}

func TestLevel_CascadingDelays(t *testing.T) {
	tasks := []plan.Task{
		{ID: "a", Start: 0, Duration: 4},
		{ID: "b", Start: 0, Duration: 4},
		{ID: "c", Start: 1, Duration: 2},
		{ID: "d", Start: 1, Duration: 2},
	}

	starts := placementMap(Level(tasks, 2))

	if got := maxConcurrent(tasks, starts); got > 2 {
		t.Errorf("max concurrency = %d, want <= 2", got)
	}
	// c and d cannot run inside [1, 4); both must move past a/b's end.
	if starts["c"] <= 4 && starts["d"] <= 4 {
		t.Errorf("c=%d d=%d: both overlap the saturated window", starts["c"], starts["d"])
	}
}

func TestLevel_StableTieBreakOnID(t *testing.T) {
	tasks := []plan.Task{
		{ID: "z", Start: 0, Duration: 1},
		{ID: "a", Start: 0, Duration: 1},
	}

	placed := Level(tasks, 1)

	// Equal starts are ordered by ID, so "a" is placed first and keeps its
	// start while "z" is delayed.
	if placed[0].ID != "a" {
		t.Errorf("first placement = %s, want a", placed[0].ID)
	}
	if placed[0].LeveledStart != 0 {
		t.Errorf("a leveled to %d, want 0", placed[0].LeveledStart)
	}
	if placed[1].LeveledStart <= 0 {
		t.Errorf("z leveled to %d, want > 0", placed[1].LeveledStart)
	}
}

func TestLevel_DoesNotMutateInput(t *testing.T) {
	tasks := []plan.Task{
		{ID: "b", Start: 5, Duration: 1},
		{ID: "a", Start: 0, Duration: 1},
	}

	Level(tasks, 1)

	if tasks[0].ID != "b" || tasks[1].ID != "a" {
		t.Error("Level reordered the caller's slice")
	}
}

func TestLevel_Deterministic(t *testing.T) {
	tasks := []plan.Task{
		{ID: "a", Start: 0, Duration: 3},
		{ID: "b", Start: 0, Duration: 2},
		{ID: "c", Start: 0, Duration: 4},
		{ID: "d", Start: 2, Duration: 2},
		{ID: "e", Start: 3, Duration: 1},
	}

	first := placementMap(Level(tasks, 2))
	for i := 0; i < 5; i++ {
		got := placementMap(Level(tasks, 2))
		for id, want := range first {
			if got[id] != want {
				t.Fatalf("Level() not deterministic for %s: %d vs %d", id, got[id], want)
			}
		}
	}
}
