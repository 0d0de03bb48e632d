package store

import (
	"context"
	"sync"
)

// MemoryStore keeps the high score for the lifetime of the process
type MemoryStore struct {
	mu    sync.RWMutex
	score int
}

func NewMemoryStore(initial int) *MemoryStore {
	return &MemoryStore{score: initial}
}

func (s *MemoryStore) Load(context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.score, nil
}

func (s *MemoryStore) Save(_ context.Context, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.score = score
	return nil
}
