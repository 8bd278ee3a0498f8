package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/turing/pkg/domain"
)

// Store implements ports.ResultStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.RunResult
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.RunResult),
	}
}

// Save persists the result in memory.
func (s *Store) Save(ctx context.Context, result domain.RunResult) error {
	// Copy the trace so the caller can't mutate what was stored.
	result.IDs = slices.Clone(result.IDs)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[result.RunID] = result
	return nil
}

// Load retrieves the result from memory.
func (s *Store) Load(ctx context.Context, runID string) (domain.RunResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.data[runID]
	if !ok {
		return domain.RunResult{}, domain.ErrRunNotFound
	}
	result.IDs = slices.Clone(result.IDs)
	return result, nil
}

// Delete removes the result.
func (s *Store) Delete(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, runID)
	return nil
}

// List returns archived run IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}
