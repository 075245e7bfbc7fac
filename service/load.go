// service/load.go
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	listpane_errors "github.com/dev-mohitbeniwal/listpane/errors"
	logger "github.com/dev-mohitbeniwal/listpane/logging"
	"github.com/dev-mohitbeniwal/listpane/metrics"
)

type loadRequest[T any] struct {
	key       string
	operation string
	what      string
	timeout   time.Duration
	fields    []zap.Field
	fetch     func(ctx context.Context) (T, error)
}

// load runs the cache / shared-data / fetch sequence for one request:
// a cache hit returns immediately; if another request is already fetching the
// key this one waits for it; otherwise this request starts the fetch, which
// writes the result through to the cache and then releases any waiters.
// Failures are never cached.
//
// A shared fetch is detached from the caller's context: cancelling the
// request that started it only returns that request early, while the fetch
// still completes for the waiters. The remote client's own timeout bounds it.
func load[T any](ctx context.Context, s *SharePointDataService, req loadRequest[T]) (T, error) {
	var value T
	log := logger.WithContext(append(req.fields, zap.String("cacheKey", req.key))...)

	if s.cache != nil && s.cache.GetItem(ctx, req.key, &value) {
		return value, nil
	}

	if s.sharedDataSync == nil {
		return fetchAndStore(ctx, s, req, log)
	}

	if !s.sharedDataSync.TryBeginLoading(req.key) {
		log.Debug("Waiting for shared data")
		found, err := s.sharedDataSync.WaitForData(ctx, req.key, req.timeout, &value)
		if err != nil {
			return value, listpane_errors.NewRetrievalError(
				fmt.Sprintf("Unable to retrieve %s from shared data.", req.what), err)
		}
		if !found {
			return value, listpane_errors.NewRetrievalError(
				fmt.Sprintf("Unable to retrieve %s from shared data.", req.what),
				listpane_errors.NewSynchronizationTimeoutError("no shared data became available"))
		}
		return value, nil
	}

	// The previous flight may have completed between the miss and TryBeginLoading.
	if s.cache.GetItem(ctx, req.key, &value) {
		s.sharedDataSync.SetIsLoading(req.key, false)
		return value, nil
	}

	type result struct {
		value T
		err   error
	}
	done := make(chan result, 1)
	flightCtx := context.WithoutCancel(ctx)
	go func() {
		defer s.sharedDataSync.SetIsLoading(req.key, false)
		v, err := fetchAndStore(flightCtx, s, req, log)
		done <- result{value: v, err: err}
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		log.Debug("Request cancelled, shared fetch continues", zap.Error(ctx.Err()))
		var zero T
		return zero, listpane_errors.NewRetrievalError(fmt.Sprintf("Unable to retrieve %s", req.what), ctx.Err())
	}
}

func fetchAndStore[T any](ctx context.Context, s *SharePointDataService, req loadRequest[T], log *zap.Logger) (T, error) {
	start := time.Now()
	value, err := req.fetch(ctx)
	metrics.ObserveFetch(req.operation, time.Since(start).Seconds(), err)
	if err != nil {
		log.Error("Error retrieving "+req.what, zap.Error(err))
		var zero T
		return zero, listpane_errors.NewRetrievalError(fmt.Sprintf("Unable to retrieve %s", req.what), err)
	}

	if s.cache != nil {
		if err := s.cache.SetItem(ctx, req.key, value); err != nil {
			log.Warn("Failed to cache "+req.what, zap.Error(err))
		}
	}

	log.Info("Retrieved "+req.what, zap.Duration("latency", time.Since(start)))
	return value, nil
}
