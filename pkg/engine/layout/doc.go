// Package layout assigns tasks to visual tracks.
//
// Two independent assignments are provided:
//
//   - [AssignLanes] places each task on an unbounded, dependency-aware lane,
//     keeping chains of dependent tasks on the same lane where possible and
//     separating temporally overlapping unrelated tasks. Lane indices are
//     allocated monotonically and never recompacted.
//
//   - [AssignRows] packs tasks into a small fixed set of rows (staff lines)
//     purely by temporal overlap, ignoring dependency structure entirely.
//     When rows are insufficient it still places every task and reports
//     conflict counts instead of failing.
//
// Both functions are pure: they allocate all working state per call and
// assume the snapshot has already passed the validation gates.
package layout
