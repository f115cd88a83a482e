package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic-admin/internal/ports/kv"
)

func TestKVStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewKVStore()

	_, err := s.Get(ctx, "vetAdmin")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, s.Set(ctx, "vetAdmin", []byte(`{"IdAdministrador":1}`)))
	got, err := s.Get(ctx, "vetAdmin")
	require.NoError(t, err)
	assert.JSONEq(t, `{"IdAdministrador":1}`, string(got))

	// mutar el resultado no cambia lo guardado
	got[0] = 'x'
	again, _ := s.Get(ctx, "vetAdmin")
	assert.Equal(t, byte('{'), again[0])

	require.NoError(t, s.Delete(ctx, "vetAdmin"))
	require.NoError(t, s.Delete(ctx, "vetAdmin"))
	_, err = s.Get(ctx, "vetAdmin")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestKVStore_RejectsEmptyKey(t *testing.T) {
	err := NewKVStore().Set(context.Background(), " ", []byte("x"))
	assert.ErrorIs(t, err, kv.ErrEmptyKey)
}
