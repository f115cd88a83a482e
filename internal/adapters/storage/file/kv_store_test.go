package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic-admin/internal/ports/kv"
)

func TestKVStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "vetadmin.json")

	s, err := NewKVStore(path)
	require.NoError(t, err)

	_, err = s.Get(ctx, "mascotasImagenes")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, s.Set(ctx, "mascotasImagenes", []byte(`{"3":"data:image/png;base64,AA=="}`)))
	require.NoError(t, s.Set(ctx, "vetAdmin", []byte(`{"Nombre":"Ana"}`)))

	reopened, err := NewKVStore(path)
	require.NoError(t, err)

	got, err := reopened.Get(ctx, "mascotasImagenes")
	require.NoError(t, err)
	assert.JSONEq(t, `{"3":"data:image/png;base64,AA=="}`, string(got))

	require.NoError(t, reopened.Delete(ctx, "vetAdmin"))
	_, err = s.Get(ctx, "vetAdmin")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestKVStore_CorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := NewKVStore(path)
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "vetAdmin")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, kv.ErrNotFound)
}

func TestNewKVStore_RequiresPath(t *testing.T) {
	_, err := NewKVStore("  ")
	assert.Error(t, err)
}
