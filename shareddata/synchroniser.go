// Package shareddata coordinates requests that need the same cached data, so
// that only the first requester for a key performs the remote fetch and every
// other requester waits for the result to land in the cache.
package shareddata

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/listpane/cache"
	logger "github.com/dev-mohitbeniwal/listpane/logging"
	"github.com/dev-mohitbeniwal/listpane/metrics"
)

// DefaultWaitTimeout bounds WaitForData when the caller passes no timeout.
const DefaultWaitTimeout = 30 * time.Second

// flight is one in-progress fetch. done is closed exactly once, when the
// fetching request marks the key as no longer loading.
type flight struct {
	done chan struct{}
}

// Synchroniser is the per-key loading-state registry layered on a cache.
// Each key moves Idle -> Loading -> Idle; only the requester that entered
// Loading leaves it.
type Synchroniser struct {
	cache *cache.WebStorageCache

	mu      sync.Mutex
	flights map[string]*flight
}

func New(c *cache.WebStorageCache) *Synchroniser {
	return &Synchroniser{
		cache:   c,
		flights: make(map[string]*flight),
	}
}

// IsLoading reports whether a fetch for key is in flight.
func (s *Synchroniser) IsLoading(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.flights[key]
	return ok
}

// SetIsLoading marks key as loading or not. Clearing the flag releases every
// current waiter for key. Setting an already loading key is a no-op.
func (s *Synchroniser) SetIsLoading(key string, isLoading bool) {
	if isLoading {
		s.TryBeginLoading(key)
		return
	}

	s.mu.Lock()
	f, ok := s.flights[key]
	if ok {
		delete(s.flights, key)
	}
	s.mu.Unlock()

	if ok {
		close(f.done)
		metrics.InFlight.Dec()
		logger.Debug("Released shared data waiters", zap.String("cacheKey", key))
	}
}

// TryBeginLoading atomically marks key as loading. It returns true only for
// the first requester; every later caller gets false until the key is cleared
// and should wait instead of fetching.
func (s *Synchroniser) TryBeginLoading(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.flights[key]; ok {
		return false
	}
	s.flights[key] = &flight{done: make(chan struct{})}
	metrics.InFlight.Inc()
	return true
}

// WaitForData suspends until the in-flight fetch for key completes, timeout
// elapses or ctx is done, then decodes the cached value into dest.
//
// It returns false with a nil error when no data is available: the wait timed
// out, or the fetch finished without caching anything (because it failed).
// Callers cannot tell these apart. A timeout abandons only this waiter; the
// fetch keeps running and still populates the cache.
func (s *Synchroniser) WaitForData(ctx context.Context, key string, timeout time.Duration, dest any) (bool, error) {
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}

	s.mu.Lock()
	f, ok := s.flights[key]
	s.mu.Unlock()

	if !ok {
		// Nothing in flight; the fetch may already have completed.
		metrics.ObserveWait("idle")
		return s.cache.GetItem(ctx, key, dest), nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		metrics.ObserveWait("released")
		return s.cache.GetItem(ctx, key, dest), nil
	case <-timer.C:
		metrics.ObserveWait("timeout")
		logger.Warn("Timed out waiting for shared data",
			zap.String("cacheKey", key),
			zap.Duration("timeout", timeout))
		return false, nil
	case <-ctx.Done():
		metrics.ObserveWait("cancelled")
		return false, ctx.Err()
	}
}
