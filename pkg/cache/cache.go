// Package cache provides pluggable result caching for computed schedules.
//
// Scheduling a large plan is cheap but not free, and interactive editors
// recompute on every edit. Schedules are pure functions of the plan
// snapshot and the schedule options, so they cache perfectly: the key is
// the plan's content hash plus the options.
//
// Backends:
//   - [FileCache]: directory-backed, for CLI usage
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: disabled caching, for tests and one-shot runs
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long cached schedules stay valid. Schedules are content
// addressed, so staleness is not a correctness concern; the TTL only bounds
// disk/memory growth.
const DefaultTTL = 24 * time.Hour

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ScheduleKeyOpts are the schedule options that affect cached output.
// Any option that changes the computed result must appear here.
type ScheduleKeyOpts struct {
	MaxParallel int    `json:"max_parallel"`
	RowCount    int    `json:"row_count"`
	Level       bool   `json:"level"`
	GroupsHash  string `json:"groups_hash,omitempty"`
	Constraint  string `json:"constraint,omitempty"` // empty for the default finish-to-start evaluator
}

// Keyer generates cache keys for the engine's cacheable artifacts.
type Keyer interface {
	// PlanKey generates a key for a stored plan snapshot.
	PlanKey(planHash string) string

	// ScheduleKey generates a key for a computed schedule.
	ScheduleKey(planHash string, opts ScheduleKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// PlanKey generates a key for a stored plan snapshot.
func (k *DefaultKeyer) PlanKey(planHash string) string {
	return "plan:" + planHash
}

// ScheduleKey generates a key for a computed schedule.
func (k *DefaultKeyer) ScheduleKey(planHash string, opts ScheduleKeyOpts) string {
	return hashKey("schedule", planHash, opts)
}
