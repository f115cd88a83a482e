package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic-admin/internal/ports/kv"
)

// Requiere una base real: TEST_DB_DSN=postgres://... go test ./...
func openTestStore(t *testing.T) *KVStore {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	db, err := Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := NewKVStore(db)
	require.NoError(t, s.EnsureSchema(context.Background()))
	return s
}

func TestKVStore_Upsert(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	key := "test:" + t.Name()
	t.Cleanup(func() { _ = s.Delete(ctx, key) })

	require.NoError(t, s.Set(ctx, key, []byte(`{"1":"a"}`)))
	require.NoError(t, s.Set(ctx, key, []byte(`{"1":"b"}`)))

	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"1":"b"}`, string(got))

	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := Open(" ")
	assert.Error(t, err)
}
