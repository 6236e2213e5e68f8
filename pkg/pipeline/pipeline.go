// Package pipeline provides the core scheduling pipeline for Cadence.
//
// This package implements the complete validate → schedule → layout pipeline
// that can be used by CLI, API, and worker components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Validate: Referential integrity checks plus cycle detection
//  2. Schedule: Topological order, critical path timing, optional leveling
//  3. Layout: Lane assignment and bounded row assignment
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    MaxParallel: 2,
//	    RowCount:    5,
//	}
//	result, err := runner.Execute(ctx, p, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Timing.ProjectDuration)
package pipeline

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/CursiveCrow/cadence/pkg/cache"
	"github.com/CursiveCrow/cadence/pkg/engine/layout"
	"github.com/CursiveCrow/cadence/pkg/engine/timing"
	"github.com/CursiveCrow/cadence/pkg/errors"
)

// DefaultRowCount is the row bound used when row assignment is requested
// without an explicit count. Matches the five-line staff rendering the
// schedule feeds.
const DefaultRowCount = 5

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the scheduling pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Schedule options
	MaxParallel int `json:"max_parallel,omitempty"` // 0 disables resource leveling

	// Layout options
	RowCount int               `json:"row_count,omitempty"` // 0 disables row assignment
	Groups   map[string]string `json:"groups,omitempty"`    // task ID -> row group; ungrouped tasks share one group

	// Cache options
	Refresh bool `json:"refresh,omitempty"` // bypass the schedule cache

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// Constraint overrides the timing evaluator. The computed schedule
	// depends on it, so it must identify itself via [ConstraintNamer] to
	// participate in cache keys; runs with an unnamed custom constraint
	// bypass the schedule cache entirely.
	Constraint timing.Constraint `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ConstraintNamer is implemented by constraint evaluators that can identify
// themselves for cache keying. The name must be distinct per evaluator
// behavior: two constraints that produce different timing must not share a
// name.
type ConstraintNamer interface {
	ConstraintName() string
}

// ValidateAndSetDefaults checks option ranges and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.MaxParallel != 0 {
		if err := errors.ValidateMaxParallel(o.MaxParallel); err != nil {
			return err
		}
	}
	if o.RowCount != 0 {
		if err := errors.ValidateRowCount(o.RowCount); err != nil {
			return err
		}
	}
	o.validated = true
	return nil
}

// ShouldLevel reports whether resource leveling is enabled.
func (o *Options) ShouldLevel() bool { return o.MaxParallel > 0 }

// ShouldAssignRows reports whether row assignment is enabled.
func (o *Options) ShouldAssignRows() bool { return o.RowCount > 0 }

// KeyOpts returns the cache key options for this configuration.
// Group membership changes the row assignment, so it is folded into the key
// as a content hash; a named custom constraint is folded in by name.
func (o *Options) KeyOpts() cache.ScheduleKeyOpts {
	opts := cache.ScheduleKeyOpts{
		MaxParallel: o.MaxParallel,
		RowCount:    o.RowCount,
		Level:       o.ShouldLevel(),
	}
	if len(o.Groups) > 0 {
		data, _ := json.Marshal(o.Groups)
		opts.GroupsHash = cache.Hash(data)
	}
	if name, ok := o.constraintName(); ok {
		opts.Constraint = name
	}
	return opts
}

// constraintName returns the cache key identity of the configured
// constraint. ok=false means the constraint has no identity and results
// computed under it must not be cached.
func (o *Options) constraintName() (string, bool) {
	switch c := o.Constraint.(type) {
	case nil:
		return "", true
	case timing.FinishToStart:
		// The default evaluator; keyed the same as a nil Constraint.
		return "", true
	case ConstraintNamer:
		return c.ConstraintName(), true
	default:
		return "", false
	}
}

// cacheable reports whether results under these options may be cached.
func (o *Options) cacheable() bool {
	_, ok := o.constraintName()
	return ok
}

// =============================================================================
// Results
// =============================================================================

// Schedule is the cacheable, storable output of a pipeline run: everything
// derived from the plan snapshot and the options, and nothing about how the
// run itself went.
type Schedule struct {
	// PlanHash is the content hash of the input plan.
	PlanHash string `json:"plan_hash" bson:"plan_hash"`

	// Order is a topological order of task IDs.
	Order []string `json:"order" bson:"order"`

	// Timing holds the critical path analysis.
	Timing *timing.Analysis `json:"timing" bson:"timing"`

	// Leveled holds adjusted start times, present only when leveling ran.
	Leveled []timing.Placement `json:"leveled,omitempty" bson:"leveled,omitempty"`

	// Lanes holds the lane assignment.
	Lanes *layout.LaneAssignment `json:"lanes" bson:"lanes"`

	// Rows holds the row assignment, present only when row assignment ran.
	Rows *layout.RowAssignment `json:"rows,omitempty" bson:"rows,omitempty"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Schedule

	// Stats contains timing and size information.
	Stats Stats `json:"stats" bson:"stats"`

	// CacheInfo tracks whether the schedule came from cache.
	CacheInfo CacheInfo `json:"cache_info" bson:"cache_info"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TaskCount    int           `json:"task_count" bson:"task_count"`
	DepCount     int           `json:"dep_count" bson:"dep_count"`
	ValidateTime time.Duration `json:"validate_time" bson:"validate_time"`
	ScheduleTime time.Duration `json:"schedule_time" bson:"schedule_time"`
	LayoutTime   time.Duration `json:"layout_time" bson:"layout_time"`
}

// CacheInfo tracks cache hits for the pipeline.
type CacheInfo struct {
	ScheduleHit bool `json:"schedule_hit" bson:"schedule_hit"` // whether the schedule came from cache
}
