package repository

import (
	"context"
	"sync"

	"EWaste-App/internal/domain/repository"
)

// MemoryKeyValueStore プロセス内メモリに保持するKVストア（テスト・開発用）
type MemoryKeyValueStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryKeyValueStore() *MemoryKeyValueStore {
	return &MemoryKeyValueStore{data: make(map[string][]byte)}
}

var _ repository.KeyValueStore = (*MemoryKeyValueStore)(nil)

func (s *MemoryKeyValueStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (s *MemoryKeyValueStore) Put(ctx context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = stored
	return nil
}
