// Package store persists computed schedules.
//
// The cache (pkg/cache) answers "have we computed this exact schedule
// before"; the store answers "what schedules has this project saved". Stored
// records are named, timestamped, and survive cache eviction, which makes
// them the backing for the server's saved-schedule endpoints.
//
// Backends:
//   - [MongoStore]: durable storage for server deployments
//   - [MemoryStore]: in-process storage for tests and one-shot runs
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/CursiveCrow/cadence/pkg/pipeline"
)

// Record is a saved schedule with identity and provenance.
type Record struct {
	ID        string            `json:"id" bson:"_id"`
	Name      string            `json:"name,omitempty" bson:"name,omitempty"`
	CreatedAt time.Time         `json:"created_at" bson:"created_at"`
	Schedule  pipeline.Schedule `json:"schedule" bson:"schedule"`
}

// NewRecord builds a record for a computed schedule with a fresh ID and
// the current time.
func NewRecord(name string, s pipeline.Schedule) Record {
	return Record{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Schedule:  s,
	}
}

// Store is the persistence interface shared by all backends.
type Store interface {
	// Put saves a record, replacing any record with the same ID.
	Put(ctx context.Context, rec Record) error

	// Get retrieves a record by ID. Missing records return a coded
	// schedule-not-found error.
	Get(ctx context.Context, id string) (Record, error)

	// ListByPlan returns all records for a plan content hash, newest first.
	ListByPlan(ctx context.Context, planHash string) ([]Record, error)

	// Delete removes a record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
