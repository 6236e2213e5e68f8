// Package plan defines the task and dependency snapshot consumed by the
// scheduling engine.
//
// A [Plan] is an immutable snapshot of the external collaborative document:
// an ordered collection of tasks and an ordered collection of dependencies
// between them. The engine never mutates a plan; every computation takes the
// snapshot as input and returns derived values (topological rank, timing,
// lanes, rows) that the caller attaches back to its own data model.
//
// # Validation
//
// [Plan.Validate] runs the referential-integrity gates required before any
// timing or layout computation: task identifiers must be unique and
// well-formed, durations must be positive, and every dependency must
// reference two distinct existing tasks. Cycle detection is a separate gate
// (see pkg/engine) because it needs the adjacency index.
package plan

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/CursiveCrow/cadence/pkg/errors"
)

// DependencyType tags the constraint semantics of a dependency edge.
//
// Only finish-to-start is evaluated by the critical path analyzer and the
// resource leveler today. The remaining three types are carried through the
// data model so that per-type constraint evaluation can be added without an
// interface break (see timing.Constraint).
type DependencyType string

// Supported dependency types.
const (
	FinishToStart  DependencyType = "finish_to_start"
	StartToStart   DependencyType = "start_to_start"
	FinishToFinish DependencyType = "finish_to_finish"
	StartToFinish  DependencyType = "start_to_finish"
)

// Valid reports whether t is one of the four recognized dependency types.
func (t DependencyType) Valid() bool {
	switch t {
	case FinishToStart, StartToStart, FinishToFinish, StartToFinish:
		return true
	}
	return false
}

// Task is a scheduled unit of work. Start and Duration are expressed in a
// caller-defined integer unit (days, beats); the engine never interprets the
// unit. Duration must be positive.
//
// Lane and row assignments are engine outputs, not task fields - the caller
// owns attaching them back to its document.
type Task struct {
	ID       string `json:"id" toml:"id" bson:"id"`
	Start    int64  `json:"start" toml:"start" bson:"start"`
	Duration int64  `json:"duration" toml:"duration" bson:"duration"`
}

// End returns the first instant after the task's interval (Start + Duration).
func (t Task) End() int64 { return t.Start + t.Duration }

// Overlaps reports whether the half-open intervals [t.Start, t.End()) and
// [o.Start, o.End()) intersect.
func (t Task) Overlaps(o Task) bool {
	return t.Start < o.End() && o.Start < t.End()
}

// Dependency is a directed edge between two tasks: Dst depends on Src.
type Dependency struct {
	ID   string         `json:"id,omitempty" toml:"id" bson:"id,omitempty"`
	Src  string         `json:"src" toml:"src" bson:"src"`
	Dst  string         `json:"dst" toml:"dst" bson:"dst"`
	Type DependencyType `json:"type,omitempty" toml:"type" bson:"type,omitempty"`
}

// Plan is a snapshot of tasks and dependencies. The order of both slices is
// significant: the engine iterates them in input order to keep outputs
// deterministic for a fixed snapshot.
type Plan struct {
	Tasks        []Task       `json:"tasks" toml:"tasks" bson:"tasks"`
	Dependencies []Dependency `json:"dependencies,omitempty" toml:"dependencies" bson:"dependencies,omitempty"`
}

// TaskIndex returns a lookup map from task ID to the task value.
// The map is freshly allocated on each call.
func (p *Plan) TaskIndex() map[string]Task {
	idx := make(map[string]Task, len(p.Tasks))
	for _, t := range p.Tasks {
		idx[t.ID] = t
	}
	return idx
}

// Normalize fills in defaults that external documents commonly omit:
// dependencies without an ID get a fresh UUID, and dependencies without a
// type default to finish-to-start. Normalize mutates the plan in place and
// is idempotent.
func (p *Plan) Normalize() {
	for i := range p.Dependencies {
		if p.Dependencies[i].ID == "" {
			p.Dependencies[i].ID = uuid.NewString()
		}
		if p.Dependencies[i].Type == "" {
			p.Dependencies[i].Type = FinishToStart
		}
	}
}

// Validate runs the referential-integrity gates over the snapshot.
//
// It checks, in order:
//   - every task has a well-formed, unique ID and a positive duration
//   - every dependency has a recognized type (empty means finish-to-start)
//   - no dependency is a self-loop (src == dst)
//   - every dependency endpoint references an existing task
//
// The first violation is returned as a coded error (ErrCodeInvalidTask,
// ErrCodeSelfDependency, ErrCodeDanglingReference, ...). Validate does not
// detect multi-node cycles; run engine.Validate for that.
func (p *Plan) Validate() error {
	seen := make(map[string]struct{}, len(p.Tasks))
	for _, t := range p.Tasks {
		if err := errors.ValidateID(t.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidTask, err, "task %q", t.ID)
		}
		if _, dup := seen[t.ID]; dup {
			return errors.New(errors.ErrCodeInvalidTask, "duplicate task id %q", t.ID)
		}
		seen[t.ID] = struct{}{}
		if t.Duration <= 0 {
			return errors.New(errors.ErrCodeInvalidTask, "task %q has non-positive duration %d", t.ID, t.Duration)
		}
	}

	for _, d := range p.Dependencies {
		if d.Type != "" && !d.Type.Valid() {
			return errors.New(errors.ErrCodeInvalidDependency, "dependency %q has unknown type %q", d.ID, d.Type)
		}
		if d.Src == d.Dst {
			return errors.New(errors.ErrCodeSelfDependency, "task %q depends on itself", d.Src)
		}
		if _, ok := seen[d.Src]; !ok {
			return errors.New(errors.ErrCodeDanglingReference, "dependency %q names unknown source task %q", d.ID, d.Src)
		}
		if _, ok := seen[d.Dst]; !ok {
			return errors.New(errors.ErrCodeDanglingReference, "dependency %q names unknown target task %q", d.ID, d.Dst)
		}
	}

	return nil
}

// Hash returns a stable SHA-256 content hash of the plan, used as the cache
// key component for computed schedules. Two plans with identical task and
// dependency collections (in the same order) hash identically.
func (p *Plan) Hash() string {
	data, _ := json.Marshal(p)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
