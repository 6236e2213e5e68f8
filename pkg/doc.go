// Package pkg provides the core libraries for Cadence dependency-aware
// scheduling.
//
// # Overview
//
// Cadence takes a snapshot of tasks and dependencies (a plan) and derives
// everything a timeline editor needs to draw it: a topological order,
// critical path timing, leveled start times, lane assignments, and bounded
// row positions. The pkg directory is organized into five main areas:
//
//  1. [plan] - The task and dependency snapshot, validation, content hashing
//  2. [engine] - Graph index, cycle detection, topological ordering, and the
//     timing and layout subpackages
//  3. [pipeline] - Orchestration (validate → schedule → layout) with caching
//  4. [cache], [store] - Schedule caching and persistence backends
//  5. [io], [render] - Plan file formats and Graphviz diagram output
//
// # Architecture
//
// The typical data flow through Cadence:
//
//	Plan file / API request
//	         ↓
//	plan.Validate + engine.Validate   (referential integrity, cycles)
//	         ↓
//	engine.TopoSort                   (dependency-respecting order)
//	         ↓
//	timing.Analyze (+ timing.Level)   (critical path, resource leveling)
//	         ↓
//	layout.AssignLanes + AssignRows   (visual placement)
//	         ↓
//	Editor / JSON / SVG
//
// Every derived value is a pure function of the plan snapshot and the
// options, which is what makes the content-hash cache in [cache] sound.
//
// Supporting packages: [errors] (coded errors shared by CLI and API),
// [observability] (hook registry for instrumentation), [buildinfo]
// (ldflags-injected version data).
package pkg
