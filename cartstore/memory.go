package cartstore

import (
	cmap "github.com/orcaman/concurrent-map/v2"
)

// MemoryStore is the lowest-ranked tier. It exists only for parity with the
// session lifetime and is explicitly non-durable: a restart loses it.
type MemoryStore struct {
	carts cmap.ConcurrentMap[string, []byte]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: cmap.New[[]byte]()}
}

func (m *MemoryStore) Get(key string) ([]byte, error) {
	data, ok := m.carts.Get(key)
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

func (m *MemoryStore) Set(key string, value []byte) error {
	m.carts.Set(key, value)
	return nil
}

func (m *MemoryStore) Remove(key string) error {
	m.carts.Remove(key)
	return nil
}
