package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/listpane/cache"
)

func TestMemoryStorageTTL(t *testing.T) {
	ctx := context.Background()
	s := cache.NewMemoryStorage()

	require.NoError(t, s.Set(ctx, "short", []byte("v"), 20*time.Millisecond))
	require.NoError(t, s.Set(ctx, "forever", []byte("v"), 0))

	v, ok, err := s.Get(ctx, "short")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), v)

	time.Sleep(40 * time.Millisecond)

	_, ok, err = s.Get(ctx, "short")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, _ = s.Get(ctx, "forever")
	assert.True(t, ok)
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.Delete(ctx, "forever"))
	assert.Equal(t, 0, s.Len())
}

func TestSessionStorageIsShared(t *testing.T) {
	assert.Same(t, cache.SessionStorage(), cache.SessionStorage())
}
