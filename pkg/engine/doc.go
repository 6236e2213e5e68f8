// Package engine implements the dependency-graph core of the Cadence
// scheduler: adjacency indexing, cycle validation, and topological ordering
// over a task/dependency snapshot.
//
// # Pipeline position
//
// The engine packages form a strict gate chain:
//
//	plan.Validate  → referential integrity (dangling refs, self-deps)
//	engine.Validate → acyclicity (multi-node cycles)
//	engine.TopoSort → dependency-respecting linear order
//
// Downstream consumers (timing analysis, resource leveling, lane assignment)
// assume a validated acyclic graph and do not re-validate. Feeding them a
// cyclic or dangling snapshot is a programmer error, not a recoverable
// runtime condition.
//
// # Determinism
//
// All traversals iterate tasks in snapshot input order, so for a fixed
// snapshot every function returns bit-identical output on every call. The
// exact ordering among unrelated tasks is implementation-defined; only the
// partial-order guarantee (every edge points forward) is part of the
// contract.
//
// # Iteration, not recursion
//
// Cycle detection and topological sort both use an explicit frame stack
// rather than native recursion, so deeply chained snapshots cannot exhaust
// the call stack.
package engine
