// Package io provides JSON and TOML import/export for plan snapshots.
//
// # Overview
//
// Plans arrive from two kinds of sources: machine-produced JSON (API clients,
// cached snapshots, other tools) and hand-written TOML manifests. Both decode
// into the same [plan.Plan] snapshot, which is then normalized and validated
// before any scheduling runs.
//
// # JSON Format
//
// The JSON format mirrors the plan structure directly:
//
//	{
//	  "tasks": [
//	    {"id": "design", "start": 0, "duration": 3},
//	    {"id": "build", "start": 3, "duration": 5}
//	  ],
//	  "dependencies": [
//	    {"src": "design", "dst": "build", "type": "finish_to_start"}
//	  ]
//	}
//
// Dependency "id" and "type" are optional; missing values are filled in by
// normalization (a fresh UUID and finish-to-start respectively).
//
// # TOML Manifest Format
//
// TOML manifests use array-of-tables syntax, one table per task and
// dependency:
//
//	[[tasks]]
//	id = "design"
//	start = 0
//	duration = 3
//
//	[[tasks]]
//	id = "build"
//	start = 3
//	duration = 5
//
//	[[dependencies]]
//	src = "design"
//	dst = "build"
//
// # Validation
//
// Import functions decode and normalize only. Structural validation (unique
// IDs, positive durations, no dangling references) is the caller's
// responsibility via [plan.Plan.Validate], so that API handlers and the CLI
// can report validation failures with their own error shapes.
package io
