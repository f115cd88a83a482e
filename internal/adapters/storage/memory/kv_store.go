package memory

import (
	"context"
	"strings"
	"sync"

	"vet-clinic-admin/internal/ports/kv"
)

type kvStore struct {
	mu    sync.RWMutex
	byKey map[string][]byte
}

func NewKVStore() kv.Store {
	return &kvStore{
		byKey: make(map[string][]byte),
	}
}

func (s *kvStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.byKey[key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	// copia: el caller puede mutar el slice
	return append([]byte(nil), v...), nil
}

func (s *kvStore) Set(ctx context.Context, key string, value []byte) error {
	if strings.TrimSpace(key) == "" {
		return kv.ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.byKey[key] = append([]byte(nil), value...)
	return nil
}

func (s *kvStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byKey, key)
	return nil
}
