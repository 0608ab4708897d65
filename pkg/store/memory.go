package store

import (
	"context"
	"slices"
	"sync"

	"github.com/mhersche/isoline/pkg/errors"
)

// MemoryStore keeps sets in process memory.
// Useful for tests and single-process CLI or server runs.
type MemoryStore struct {
	mu   sync.RWMutex
	sets map[string]Set
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sets: make(map[string]Set)}
}

// Put stores a set, replacing any set with the same ID.
func (m *MemoryStore) Put(ctx context.Context, s Set) error {
	if s.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "set ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets[s.ID] = s
	return nil
}

// Get retrieves a set by ID.
func (m *MemoryStore) Get(ctx context.Context, id string) (Set, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sets[id]
	if !ok {
		return Set{}, errors.New(errors.ErrCodeSetNotFound, "no contour set with ID %s", id)
	}
	return s, nil
}

// List returns summaries of all sets, newest first.
func (m *MemoryStore) List(ctx context.Context) ([]Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	summaries := make([]Summary, 0, len(m.sets))
	for _, s := range m.sets {
		summaries = append(summaries, Summarize(s))
	}
	slices.SortFunc(summaries, func(a, b Summary) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return summaries, nil
}

// Delete removes a set by ID.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sets[id]; !ok {
		return errors.New(errors.ErrCodeSetNotFound, "no contour set with ID %s", id)
	}
	delete(m.sets, id)
	return nil
}

// Close does nothing for the in-memory store.
func (m *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
