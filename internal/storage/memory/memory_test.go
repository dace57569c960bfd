package memory

import (
	"context"
	"moviehub/proj/internal/storage"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSet(t *testing.T) {
	ctx := context.Background()
	s := New()
	_, err := s.Get(ctx, "favorites")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Set(ctx, "favorites", `[{"id":1}]`))
	value, err := s.Get(ctx, "favorites")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, value)
}
