package store

import (
	"context"
	"sync"
)

// MemoryStore holds the snapshot in memory. It exists for unit tests, which
// also use it to count saves and to inject save failures.
type MemoryStore struct {
	mu      sync.Mutex
	snap    Snapshot
	ok      bool
	saves   int
	saveErr error
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.snap = snap
	s.ok = true
	return nil
}

func (s *MemoryStore) Load(_ context.Context) (Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap, s.ok, nil
}

// SaveCount reports how many times Save was called, successful or not.
func (s *MemoryStore) SaveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// FailSavesWith makes every subsequent Save return err. Pass nil to restore
// normal behavior.
func (s *MemoryStore) FailSavesWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}
