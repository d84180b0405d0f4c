package progress

import (
	"sync"

	"github.com/tubegrab/tubegrab/internal/domain"
)

// Store is the concurrency-safe map from request ID to progress record.
// It is written by the download handler and the engine's progress sink and
// read by the polling endpoint, so every operation takes the lock. Nothing
// here touches I/O.
//
// There is no eviction beyond explicit Remove: a session that errors before
// reaching file handoff leaves its record behind on purpose, so a polling
// client can still observe the failure post-mortem.
type Store struct {
	mu      sync.RWMutex
	records map[string]domain.ProgressRecord
}

func NewStore() *Store {
	return &Store{
		records: make(map[string]domain.ProgressRecord),
	}
}

// Set creates or overwrites the record for id.
func (s *Store) Set(id string, rec domain.ProgressRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = rec
}

// Get returns the record for id, or a StatusUnknown record when the id was
// never registered or has been evicted.
func (s *Store) Get(id string) domain.ProgressRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return domain.UnknownProgress()
	}
	return rec
}

// Remove deletes the record for id. Removing an absent id is a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
}

// Len reports the number of live records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
