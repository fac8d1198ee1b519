package storage

import "sync"

// MemoryStore holds values in process memory only. Used in tests and as
// a fallback when no durable backend is configured.
type MemoryStore struct { // implements Store
	values sync.Map
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Read(key string) ([]byte, error) {
	if value, ok := s.values.Load(key); ok {
		data := value.([]byte)
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil
	}
	return nil, ErrKeyNotFound
}

func (s *MemoryStore) Write(key string, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)
	s.values.Store(key, stored)
	return nil
}
