// Package timing computes critical-path timing and resource leveling over a
// validated snapshot.
//
// [Analyze] runs the classic Critical Path Method (CPM): a forward pass over
// the topological order derives the earliest start of every task, a backward
// pass derives the latest start, and slack is the difference. Tasks with
// zero slack lie on (at least one) critical path.
//
// [Level] applies a greedy delay heuristic so that no more than a fixed
// number of tasks run concurrently. Resource-constrained scheduling is
// NP-hard; the heuristic trades optimality for O(N log N) behavior and can
// produce longer makespans than an exact solver on some inputs.
//
// Both functions assume the snapshot has already passed plan.Validate and
// engine.Validate. They do not re-validate.
package timing
