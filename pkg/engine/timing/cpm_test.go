package timing

import (
	"testing"

	"github.com/CursiveCrow/cadence/pkg/plan"
)

func chainPlan() *plan.Plan {
	return &plan.Plan{
		Tasks: []plan.Task{
			{ID: "A", Start: 0, Duration: 2},
			{ID: "B", Start: 2, Duration: 2},
			{ID: "C", Start: 4, Duration: 1},
		},
		Dependencies: []plan.Dependency{
			{ID: "d1", Src: "A", Dst: "B", Type: plan.FinishToStart},
			{ID: "d2", Src: "B", Dst: "C", Type: plan.FinishToStart},
		},
	}
}

func TestAnalyze_Chain(t *testing.T) {
	a := Analyze(chainPlan())

	wantES := map[string]int64{"A": 0, "B": 2, "C": 4}
	for id, want := range wantES {
		if got := a.EarliestStart[id]; got != want {
			t.Errorf("EarliestStart[%s] = %d, want %d", id, got, want)
		}
	}
	if a.ProjectDuration != 5 {
		t.Errorf("ProjectDuration = %d, want 5", a.ProjectDuration)
	}
	for _, id := range []string{"A", "B", "C"} {
		if got := a.Slack[id]; got != 0 {
			t.Errorf("Slack[%s] = %d, want 0 (whole chain is critical)", id, got)
		}
	}
}

func TestAnalyze_SlackOnShortBranch(t *testing.T) {
	// A(3) and B(1) both feed C. B has 2 units of slack.
	p := &plan.Plan{
		Tasks: []plan.Task{
			{ID: "A", Start: 0, Duration: 3},
			{ID: "B", Start: 0, Duration: 1},
			{ID: "C", Start: 3, Duration: 2},
		},
		Dependencies: []plan.Dependency{
			{ID: "d1", Src: "A", Dst: "C", Type: plan.FinishToStart},
			{ID: "d2", Src: "B", Dst: "C", Type: plan.FinishToStart},
		},
	}

	a := Analyze(p)

	if a.ProjectDuration != 5 {
		t.Errorf("ProjectDuration = %d, want 5", a.ProjectDuration)
	}
	if a.Slack["A"] != 0 {
		t.Errorf("Slack[A] = %d, want 0", a.Slack["A"])
	}
	if a.Slack["B"] != 2 {
		t.Errorf("Slack[B] = %d, want 2", a.Slack["B"])
	}
	if a.Slack["C"] != 0 {
		t.Errorf("Slack[C] = %d, want 0", a.Slack["C"])
	}

	crit := a.Critical(p)
	if len(crit) != 2 || crit[0] != "A" || crit[1] != "C" {
		t.Errorf("Critical() = %v, want [A C]", crit)
	}
}

func TestAnalyze_Invariants(t *testing.T) {
	p := &plan.Plan{
		Tasks: []plan.Task{
			{ID: "a", Start: 0, Duration: 4},
			{ID: "b", Start: 0, Duration: 2},
			{ID: "c", Start: 4, Duration: 3},
			{ID: "d", Start: 4, Duration: 1},
			{ID: "e", Start: 9, Duration: 2},
		},
		Dependencies: []plan.Dependency{
			{ID: "d1", Src: "a", Dst: "c", Type: plan.FinishToStart},
			{ID: "d2", Src: "b", Dst: "c", Type: plan.FinishToStart},
			{ID: "d3", Src: "b", Dst: "d", Type: plan.FinishToStart},
			{ID: "d4", Src: "c", Dst: "e", Type: plan.FinishToStart},
			{ID: "d5", Src: "d", Dst: "e", Type: plan.FinishToStart},
		},
	}

	a := Analyze(p)
	tasks := p.TaskIndex()

	zeroSlack := false
	for _, t2 := range p.Tasks {
		es := a.EarliestStart[t2.ID]
		if es+t2.Duration > a.ProjectDuration {
			t.Errorf("task %s: earliest finish %d exceeds project duration %d", t2.ID, es+t2.Duration, a.ProjectDuration)
		}
		if a.Slack[t2.ID] < 0 {
			t.Errorf("task %s: negative slack %d", t2.ID, a.Slack[t2.ID])
		}
		if a.Slack[t2.ID] == 0 {
			zeroSlack = true
		}
	}
	if !zeroSlack {
		t.Error("no zero-slack task; every non-empty graph has a critical path")
	}

	for _, d := range p.Dependencies {
		src := tasks[d.Src]
		if a.EarliestStart[d.Dst] < a.EarliestStart[d.Src]+src.Duration {
			t.Errorf("dependency %s -> %s: target starts before source finishes", d.Src, d.Dst)
		}
	}
}

func TestAnalyze_EmptyPlan(t *testing.T) {
	a := Analyze(&plan.Plan{})
	if a.ProjectDuration != 0 {
		t.Errorf("ProjectDuration = %d, want 0", a.ProjectDuration)
	}
	if len(a.EarliestStart) != 0 {
		t.Errorf("EarliestStart has %d entries, want 0", len(a.EarliestStart))
	}
}

// skipAll ignores every edge, so CPM degenerates to independent tasks.
type skipAll struct{}

func (skipAll) EarliestBound(plan.Dependency, int64, int64) (int64, bool) { return 0, false }
func (skipAll) LatestBound(plan.Dependency, int64, int64) (int64, bool)  { return 0, false }

func TestAnalyzeWithConstraint_PluggableEvaluator(t *testing.T) {
	a := AnalyzeWithConstraint(chainPlan(), skipAll{})

	// With all edges ignored, every task starts at 0 and the longest task
	// sets the project duration.
	for _, id := range []string{"A", "B", "C"} {
		if a.EarliestStart[id] != 0 {
			t.Errorf("EarliestStart[%s] = %d, want 0", id, a.EarliestStart[id])
		}
	}
	if a.ProjectDuration != 2 {
		t.Errorf("ProjectDuration = %d, want 2", a.ProjectDuration)
	}
}

func TestAnalyze_NonFinishToStartEdgesIgnored(t *testing.T) {
	p := chainPlan()
	p.Dependencies[1].Type = plan.StartToStart

	a := Analyze(p)

	// The B→C start-to-start edge has no implemented math, so C is
	// unconstrained in the forward pass.
	if a.EarliestStart["C"] != 0 {
		t.Errorf("EarliestStart[C] = %d, want 0 for unimplemented edge type", a.EarliestStart["C"])
	}
	if a.EarliestStart["B"] != 2 {
		t.Errorf("EarliestStart[B] = %d, want 2", a.EarliestStart["B"])
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	p := chainPlan()
	first := Analyze(p)
	for i := 0; i < 5; i++ {
		got := Analyze(p)
		if got.ProjectDuration != first.ProjectDuration {
			t.Fatal("Analyze() not deterministic")
		}
		for id := range first.EarliestStart {
			if got.EarliestStart[id] != first.EarliestStart[id] ||
				got.LatestStart[id] != first.LatestStart[id] ||
				got.Slack[id] != first.Slack[id] {
				t.Fatal("Analyze() not deterministic")
			}
		}
	}
}
