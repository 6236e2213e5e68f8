package store

import (
	"context"
	"sort"
	"sync"

	"github.com/CursiveCrow/cadence/pkg/errors"
)

// MemoryStore implements Store with an in-process map.
// Safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	recs map[string]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{recs: make(map[string]Record)}
}

// Put saves a record, replacing any record with the same ID.
func (s *MemoryStore) Put(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs[rec.ID] = rec
	return nil
}

// Get retrieves a record by ID.
func (s *MemoryStore) Get(_ context.Context, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.recs[id]
	if !ok {
		return Record{}, errors.New(errors.ErrCodeScheduleNotFound, "schedule %s not found", id)
	}
	return rec, nil
}

// ListByPlan returns all records for a plan content hash, newest first.
func (s *MemoryStore) ListByPlan(_ context.Context, planHash string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var recs []Record
	for _, rec := range s.recs {
		if rec.Schedule.PlanHash == planHash {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].CreatedAt.After(recs[j].CreatedAt)
		}
		return recs[i].ID < recs[j].ID
	})
	return recs, nil
}

// Delete removes a record.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.recs, id)
	return nil
}

// Close releases nothing; it exists to satisfy Store.
func (s *MemoryStore) Close(context.Context) error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
