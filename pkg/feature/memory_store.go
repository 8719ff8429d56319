package feature

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory implementation of the Store interface. It's
// useful for testing and single-process applications; values do not survive
// restarts.
type MemoryStore struct {
	mu    sync.RWMutex
	flags map[string]bool
}

// NewMemoryStore creates an empty in-memory flag store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		flags: make(map[string]bool),
	}
}

// Get returns the stored value for a flag and whether it exists.
func (m *MemoryStore) Get(ctx context.Context, name string) (bool, bool, error) {
	m.mu.RLock()
	value, ok := m.flags[name]
	m.mu.RUnlock()

	return value, ok, nil
}

// Set stores a value for a flag, overwriting any previous entry.
func (m *MemoryStore) Set(ctx context.Context, name string, value bool) error {
	m.mu.Lock()
	m.flags[name] = value
	m.mu.Unlock()

	return nil
}

// Delete removes a flag. Deleting an absent flag is a no-op.
func (m *MemoryStore) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	delete(m.flags, name)
	m.mu.Unlock()

	return nil
}

// Persistent reports false: values live in process memory only.
func (m *MemoryStore) Persistent() bool {
	return false
}
