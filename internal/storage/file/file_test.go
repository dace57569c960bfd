package file

import (
	"context"
	"moviehub/proj/internal/storage"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSet(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "moviehub.json")
	s, err := New(path)
	require.NoError(t, err)

	_, err = s.Get(ctx, "favorites")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Set(ctx, "favorites", `[{"id":603}]`))
	require.NoError(t, s.Set(ctx, "other", "x"))
	value, err := s.Get(ctx, "favorites")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":603}]`, value)

	t.Run("survives reopen", func(t *testing.T) {
		reopened, err := New(path)
		require.NoError(t, err)
		value, err := reopened.Get(ctx, "favorites")
		require.NoError(t, err)
		assert.Equal(t, `[{"id":603}]`, value)
	})

	t.Run("no temp files left", func(t *testing.T) {
		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}

func TestCorruptedFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "moviehub.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	s, err := New(path)
	require.NoError(t, err)

	_, err = s.Get(ctx, "favorites")
	assert.ErrorIs(t, err, storage.ErrStorage)

	require.NoError(t, s.Set(ctx, "favorites", "[]"))
	value, err := s.Get(ctx, "favorites")
	require.NoError(t, err)
	assert.Equal(t, "[]", value)
}
