package shareddata_test

import (
	"context"
	"testing"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/listpane/cache"
	"github.com/dev-mohitbeniwal/listpane/shareddata"
)

func newSynchroniser() (*shareddata.Synchroniser, *cache.WebStorageCache) {
	c := cache.New("sync-test", 60, cache.ScopeSession, cache.NewMemoryStorage())
	return shareddata.New(c), c
}

func TestLoadingFlag(t *testing.T) {
	s, _ := newSynchroniser()

	assert.False(t, s.IsLoading("key"))
	assert.True(t, s.TryBeginLoading("key"))
	assert.True(t, s.IsLoading("key"))
	assert.False(t, s.TryBeginLoading("key"), "second requester must not enter Loading")

	s.SetIsLoading("key", false)
	assert.False(t, s.IsLoading("key"))

	// Clearing an idle key is harmless.
	s.SetIsLoading("key", false)

	s.SetIsLoading("key", true)
	assert.True(t, s.IsLoading("key"))
}

func TestWaitersReleasedWithData(t *testing.T) {
	ctx := context.Background()
	s, c := newSynchroniser()
	require.True(t, s.TryBeginLoading("lists"))

	results := make([][]string, 5)
	var wg conc.WaitGroup
	for i := range results {
		i := i
		wg.Go(func() {
			var titles []string
			found, err := s.WaitForData(ctx, "lists", time.Second, &titles)
			assert.NoError(t, err)
			assert.True(t, found)
			results[i] = titles
		})
	}

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, c.SetItem(ctx, "lists", []string{"Tasks"}))
	s.SetIsLoading("lists", false)
	wg.Wait()

	for _, titles := range results {
		assert.Equal(t, []string{"Tasks"}, titles)
	}
}

func TestWaiterReleasedWithoutDataOnFailure(t *testing.T) {
	ctx := context.Background()
	s, _ := newSynchroniser()
	require.True(t, s.TryBeginLoading("lists"))

	go func() {
		time.Sleep(20 * time.Millisecond)
		// The fetch failed: nothing cached, flag cleared.
		s.SetIsLoading("lists", false)
	}()

	var titles []string
	found, err := s.WaitForData(ctx, "lists", time.Second, &titles)
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestWaiterTimeout(t *testing.T) {
	ctx := context.Background()
	s, c := newSynchroniser()
	require.True(t, s.TryBeginLoading("lists"))

	start := time.Now()
	var titles []string
	found, err := s.WaitForData(ctx, "lists", 50*time.Millisecond, &titles)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)

	// The abandoned fetch still completes and serves later readers.
	assert.True(t, s.IsLoading("lists"))
	require.NoError(t, c.SetItem(ctx, "lists", []string{"Tasks"}))
	s.SetIsLoading("lists", false)

	found, err = s.WaitForData(ctx, "lists", 50*time.Millisecond, &titles)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"Tasks"}, titles)
}

func TestWaiterCancelled(t *testing.T) {
	s, _ := newSynchroniser()
	require.True(t, s.TryBeginLoading("lists"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var titles []string
	found, err := s.WaitForData(ctx, "lists", time.Second, &titles)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, found)
}

func TestWaitWithoutFlightReadsCache(t *testing.T) {
	ctx := context.Background()
	s, c := newSynchroniser()

	var titles []string
	found, err := s.WaitForData(ctx, "lists", 0, &titles)
	assert.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.SetItem(ctx, "lists", []string{"Tasks"}))
	found, err = s.WaitForData(ctx, "lists", 0, &titles)
	assert.NoError(t, err)
	assert.True(t, found)
}
