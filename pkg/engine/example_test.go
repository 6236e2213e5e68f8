package engine_test

import (
	"fmt"

	"github.com/CursiveCrow/cadence/pkg/engine"
	"github.com/CursiveCrow/cadence/pkg/plan"
)

func ExampleValidate() {
	p := &plan.Plan{
		Tasks: []plan.Task{
			{ID: "a", Start: 0, Duration: 1},
			{ID: "b", Start: 1, Duration: 1},
		},
		Dependencies: []plan.Dependency{
			{Src: "a", Dst: "b"},
			{Src: "b", Dst: "a"},
		},
	}

	if err := engine.Validate(p); err != nil {
		fmt.Println(err)
	}
	// Output: dependency cycle: a -> b -> a
}

func ExampleTopoSort() {
	p := &plan.Plan{
		Tasks: []plan.Task{
			{ID: "deploy", Start: 8, Duration: 1},
			{ID: "build", Start: 3, Duration: 5},
			{ID: "design", Start: 0, Duration: 3},
		},
		Dependencies: []plan.Dependency{
			{Src: "design", Dst: "build"},
			{Src: "build", Dst: "deploy"},
		},
	}

	fmt.Println(engine.TopoSort(p))
	// Output: [design build deploy]
}
