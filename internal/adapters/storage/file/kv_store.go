// Package file guarda el estado local de la consola en un único archivo JSON.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"vet-clinic-admin/internal/ports/kv"
)

// KVStore persiste {clave: valor} en path. Cada Set/Delete reescribe el archivo
// completo vía archivo temporal + rename.
type KVStore struct {
	mu   sync.Mutex
	path string
}

func NewKVStore(path string) (*KVStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("file kv: path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("file kv: mkdir: %w", err)
	}
	return &KVStore{path: path}, nil
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return nil, err
	}
	v, ok := m[key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	return []byte(v), nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	if strings.TrimSpace(key) == "" {
		return kv.ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	m[key] = string(value)
	return s.save(m)
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := m[key]; !ok {
		return nil
	}
	delete(m, key)
	return s.save(m)
}

func (s *KVStore) load() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file kv: read: %w", err)
	}
	m := map[string]string{}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("file kv: decode %s: %w", s.path, err)
	}
	return m, nil
}

func (s *KVStore) save(m map[string]string) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("file kv: encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".kv-*")
	if err != nil {
		return fmt.Errorf("file kv: temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file kv: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file kv: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("file kv: rename: %w", err)
	}
	return nil
}
