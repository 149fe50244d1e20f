package persist

import (
	"context"
	"sync"
)

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu     sync.Mutex
	values map[string][]byte
	saves  int
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string][]byte)}
}

func (m *MemStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}

	out := make([]byte, len(value))
	copy(out, value)

	return out, true, nil
}

func (m *MemStore) Set(_ context.Context, key string, value []byte) error {
	staged := make([]byte, len(value))
	copy(staged, value)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = staged

	return nil
}

func (m *MemStore) Save(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saves++

	return nil
}

// SaveCount reports how many times Save has been called.
func (m *MemStore) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.saves
}

func (*MemStore) Close() error {
	return nil
}

var _ Store = (*MemStore)(nil)
