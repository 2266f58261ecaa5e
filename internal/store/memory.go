package store

import (
	"context"
	"sync"
)

// MemoryStore is the default process-lifetime UserStore.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]UserRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]UserRecord)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (UserRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return UserRecord{}, false, nil
	}
	return rec.Clone(), true, nil
}

func (s *MemoryStore) Put(_ context.Context, id string, record UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[id] = record.Clone()
	return nil
}
