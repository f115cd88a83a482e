package kv

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("kv: key not found")
	ErrEmptyKey = errors.New("kv: key required")
)

// Store guarda blobs serializados por clave.
// Es el único acceso a estado persistido local (caché de imágenes y sesión).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete de una clave inexistente no es error.
	Delete(ctx context.Context, key string) error
}
