// service/sharepoint_data_service_test.go
package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/listpane/cache"
	listpane_errors "github.com/dev-mohitbeniwal/listpane/errors"
	"github.com/dev-mohitbeniwal/listpane/model"
	"github.com/dev-mohitbeniwal/listpane/service"
	"github.com/dev-mohitbeniwal/listpane/sharepoint"
	mock_source "github.com/dev-mohitbeniwal/listpane/test/mock"
)

const webURL = "https://contoso.sharepoint.com/sites/pmo"

func newService(timeoutSecs int) (*service.SharePointDataService, *mock_source.MockListSource) {
	source := new(mock_source.MockListSource)
	c := cache.New("service-test", timeoutSecs, cache.ScopeSession, cache.NewMemoryStorage())
	return service.NewSharePointDataService(source, c, "", time.Second), source
}

func taskFields() []model.Field {
	return []model.Field{
		{Title: "Title", InternalName: "Title", FieldTypeKind: model.FieldTypeText},
		{Title: "Approver", InternalName: "_ows_Approver", FieldTypeKind: model.FieldTypeUser, CanBeDeleted: true},
		{Title: "Status", InternalName: "Status", FieldTypeKind: model.FieldTypeChoice, CanBeDeleted: true},
	}
}

func TestGetCustomListTitles(t *testing.T) {
	ctx := context.Background()

	t.Run("FetchThenCacheHit", func(t *testing.T) {
		svc, source := newService(10)
		source.On("GetLists", mock.Anything, webURL).
			Return([]model.List{{Title: "tasks"}, {Title: "Contacts"}, {Title: "Issues"}}, nil).Once()

		titles, err := svc.GetCustomListTitles(ctx, webURL)
		require.NoError(t, err)
		assert.Equal(t, []string{"Contacts", "Issues", "tasks"}, titles)

		titles, err = svc.GetCustomListTitles(ctx, webURL)
		require.NoError(t, err)
		assert.Equal(t, []string{"Contacts", "Issues", "tasks"}, titles)

		source.AssertNumberOfCalls(t, "GetLists", 1)
	})

	t.Run("EmptyResultIsCached", func(t *testing.T) {
		svc, source := newService(10)
		source.On("GetLists", mock.Anything, webURL).Return([]model.List{}, nil).Once()

		for i := 0; i < 2; i++ {
			titles, err := svc.GetCustomListTitles(ctx, webURL)
			require.NoError(t, err)
			assert.Empty(t, titles)
		}
		source.AssertNumberOfCalls(t, "GetLists", 1)
	})

	t.Run("MissingURL", func(t *testing.T) {
		svc, source := newService(10)

		_, err := svc.GetCustomListTitles(ctx, "")
		assert.ErrorIs(t, err, listpane_errors.ErrConfiguration)
		assert.Equal(t, "The URL of the site wasn't provided.", err.Error())
		source.AssertNotCalled(t, "GetLists", mock.Anything, mock.Anything)
	})

	t.Run("DefaultWebURL", func(t *testing.T) {
		source := new(mock_source.MockListSource)
		c := cache.New("service-test", 10, cache.ScopeSession, cache.NewMemoryStorage())
		svc := service.NewSharePointDataService(source, c, webURL, time.Second)
		source.On("GetLists", mock.Anything, webURL).Return([]model.List{{Title: "Tasks"}}, nil).Once()

		titles, err := svc.GetCustomListTitles(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"Tasks"}, titles)
	})

	t.Run("FetchFailureIsNotCached", func(t *testing.T) {
		svc, source := newService(10)
		cause := &sharepoint.ResponseError{StatusCode: 401, Status: "401 Unauthorized", Message: "Access denied."}
		source.On("GetLists", mock.Anything, webURL).Return(nil, cause).Once()
		source.On("GetLists", mock.Anything, webURL).Return([]model.List{{Title: "Tasks"}}, nil).Once()

		_, err := svc.GetCustomListTitles(ctx, webURL)
		require.Error(t, err)
		assert.ErrorIs(t, err, listpane_errors.ErrRetrieval)
		var respErr *sharepoint.ResponseError
		assert.True(t, errors.As(err, &respErr))
		assert.Contains(t, err.Error(), "Access denied.")
		assert.Contains(t, err.Error(), webURL)

		titles, err := svc.GetCustomListTitles(ctx, webURL)
		require.NoError(t, err)
		assert.Equal(t, []string{"Tasks"}, titles)
		source.AssertNumberOfCalls(t, "GetLists", 2)
	})

	t.Run("CacheDisabled", func(t *testing.T) {
		svc, source := newService(0)
		source.On("GetLists", mock.Anything, webURL).Return([]model.List{{Title: "Tasks"}}, nil)

		for i := 0; i < 3; i++ {
			titles, err := svc.GetCustomListTitles(ctx, webURL)
			require.NoError(t, err)
			assert.Equal(t, []string{"Tasks"}, titles)
		}
		source.AssertNumberOfCalls(t, "GetLists", 3)
	})
}

// blockingLists makes the first GetLists call block until release is closed.
func blockingLists(source *mock_source.MockListSource, result []model.List, err error) (started, release chan struct{}) {
	started = make(chan struct{})
	release = make(chan struct{})
	source.On("GetLists", mock.Anything, webURL).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(result, err).Once()
	return started, release
}

func TestConcurrentRequestsShareOneFetch(t *testing.T) {
	ctx := context.Background()
	svc, source := newService(10)
	started, release := blockingLists(source, []model.List{{Title: "Tasks"}}, nil)

	const requesters = 5
	results := make([][]string, requesters)
	errs := make([]error, requesters)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], errs[0] = svc.GetCustomListTitles(ctx, webURL)
	}()
	<-started

	for i := 1; i < requesters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.GetCustomListTitles(ctx, webURL)
		}(i)
	}

	time.Sleep(30 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < requesters; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, []string{"Tasks"}, results[i])
	}
	source.AssertNumberOfCalls(t, "GetLists", 1)
}

func TestWaitersFailWhenFetchFails(t *testing.T) {
	ctx := context.Background()
	svc, source := newService(10)
	started, release := blockingLists(source, nil, errors.New("connection reset"))

	var fetchErr, waitErr error
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, fetchErr = svc.GetCustomListTitles(ctx, webURL)
	}()
	<-started

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, waitErr = svc.GetCustomListTitles(ctx, webURL)
	}()

	time.Sleep(30 * time.Millisecond)
	close(release)
	wg.Wait()

	// Only the fetching request sees the real error.
	assert.ErrorContains(t, fetchErr, "connection reset")
	assert.ErrorIs(t, waitErr, listpane_errors.ErrRetrieval)
	assert.Equal(t, "Unable to retrieve list titles from shared data.: no shared data became available", waitErr.Error())
	assert.NotContains(t, waitErr.Error(), "connection reset")
	source.AssertNumberOfCalls(t, "GetLists", 1)
}

func TestWaiterTimeoutDoesNotCancelFetch(t *testing.T) {
	ctx := context.Background()
	svc, source := newService(10)
	started, release := blockingLists(source, []model.List{{Title: "Tasks"}}, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		titles, err := svc.GetCustomListTitles(ctx, webURL)
		assert.NoError(t, err)
		assert.Equal(t, []string{"Tasks"}, titles)
	}()
	<-started

	_, err := svc.GetCustomListTitles(ctx, webURL, service.WithSharedDataTimeout(20*time.Millisecond))
	assert.ErrorIs(t, err, listpane_errors.ErrRetrieval)
	assert.ErrorIs(t, err, listpane_errors.ErrSynchronizationTimeout)

	close(release)
	<-done

	titles, err := svc.GetCustomListTitles(ctx, webURL)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tasks"}, titles)
	source.AssertNumberOfCalls(t, "GetLists", 1)
}

func TestCancelledFirstRequesterDoesNotCancelFetch(t *testing.T) {
	svc, source := newService(10)
	started := make(chan struct{})
	release := make(chan struct{})
	fetchCtxErr := make(chan error, 1)
	source.On("GetLists", mock.Anything, webURL).
		Run(func(args mock.Arguments) {
			close(started)
			<-release
			fetchCtxErr <- args.Get(0).(context.Context).Err()
		}).
		Return([]model.List{{Title: "Tasks"}}, nil).Once()

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.GetCustomListTitles(firstCtx, webURL)
		firstErr <- err
	}()
	<-started

	var titles []string
	var waitErr error
	waiterDone := make(chan struct{})
	go func() {
		defer close(waiterDone)
		titles, waitErr = svc.GetCustomListTitles(context.Background(), webURL)
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	err := <-firstErr
	assert.ErrorIs(t, err, listpane_errors.ErrRetrieval)
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	<-waiterDone

	require.NoError(t, waitErr)
	assert.Equal(t, []string{"Tasks"}, titles)
	assert.NoError(t, <-fetchCtxErr)

	cached, err := svc.GetCustomListTitles(context.Background(), webURL)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tasks"}, cached)
	source.AssertNumberOfCalls(t, "GetLists", 1)
}

func TestGetListColumns(t *testing.T) {
	ctx := context.Background()

	t.Run("ExcludesInternalColumns", func(t *testing.T) {
		svc, source := newService(10)
		source.On("GetFields", mock.Anything, webURL, "Tasks", sharepoint.FieldQuery{}).
			Return(taskFields(), nil).Once()

		columns, err := svc.GetListColumns(ctx, webURL, "Tasks", false)
		require.NoError(t, err)
		assert.Equal(t, []model.KeyValuePair[string, string]{
			{Key: "Status", Value: "Status"},
			{Key: "Title", Value: "Title"},
		}, columns)
	})

	t.Run("KeepsEncodedUserColumns", func(t *testing.T) {
		svc, source := newService(10)
		source.On("GetFields", mock.Anything, webURL, "Budget", sharepoint.FieldQuery{}).
			Return([]model.Field{
				{Title: "Title", InternalName: "Title"},
				{Title: "2024 Budget", InternalName: "_x0032_024_x0020_Budget", CanBeDeleted: true},
				{Title: "Version", InternalName: "_UIVersionString", CanBeDeleted: true},
			}, nil).Once()

		columns, err := svc.GetListColumns(ctx, webURL, "Budget", false)
		require.NoError(t, err)
		assert.Equal(t, []model.KeyValuePair[string, string]{
			{Key: "_x0032_024_x0020_Budget", Value: "2024 Budget"},
			{Key: "Title", Value: "Title"},
		}, columns)
	})

	t.Run("IncludeInternalUsesDistinctKey", func(t *testing.T) {
		svc, source := newService(10)
		source.On("GetFields", mock.Anything, webURL, "Tasks", sharepoint.FieldQuery{IncludeInternal: true}).
			Return(taskFields(), nil).Once()
		source.On("GetFields", mock.Anything, webURL, "Tasks", sharepoint.FieldQuery{}).
			Return(taskFields(), nil).Once()

		all, err := svc.GetListColumns(ctx, webURL, "Tasks", true)
		require.NoError(t, err)
		assert.Equal(t, []model.KeyValuePair[string, string]{
			{Key: "_ows_Approver", Value: "Approver"},
			{Key: "Status", Value: "Status"},
			{Key: "Title", Value: "Title"},
		}, all)

		filtered, err := svc.GetListColumns(ctx, webURL, "Tasks", false)
		require.NoError(t, err)
		assert.Less(t, len(filtered), len(all))
		assert.Contains(t, filtered, model.KeyValuePair[string, string]{Key: "Title", Value: "Title"})
		for _, c := range filtered {
			assert.False(t, model.IsInternalName(c.Key), c.Key)
		}

		// Both variants are now served from the cache.
		_, err = svc.GetListColumns(ctx, webURL, "Tasks", true)
		require.NoError(t, err)
		_, err = svc.GetListColumns(ctx, webURL, "Tasks", false)
		require.NoError(t, err)
		source.AssertNumberOfCalls(t, "GetFields", 2)
	})

	t.Run("ExtraFilter", func(t *testing.T) {
		svc, source := newService(10)
		q := sharepoint.FieldQuery{Filter: "TypeAsString eq 'Choice'"}
		source.On("GetFields", mock.Anything, webURL, "Tasks", q).
			Return([]model.Field{{Title: "Status", InternalName: "Status", CanBeDeleted: true}}, nil).Once()
		source.On("GetFields", mock.Anything, webURL, "Tasks", sharepoint.FieldQuery{}).
			Return(taskFields(), nil).Once()

		choices, err := svc.GetListColumns(ctx, webURL, "Tasks", false, service.WithFilter("TypeAsString eq 'Choice'"))
		require.NoError(t, err)
		assert.Len(t, choices, 1)

		all, err := svc.GetListColumns(ctx, webURL, "Tasks", false)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("OrderedByDisplayName", func(t *testing.T) {
		svc, source := newService(10)
		source.On("GetFields", mock.Anything, webURL, "Tasks", sharepoint.FieldQuery{}).
			Return([]model.Field{
				{Title: "due date", InternalName: "DueDate"},
				{Title: "Assigned To", InternalName: "AssignedTo"},
				{Title: "Title", InternalName: "Title"},
				{Title: "Assigned To", InternalName: "AssignedTo0"},
			}, nil).Once()

		columns, err := svc.GetListColumns(ctx, webURL, "Tasks", false)
		require.NoError(t, err)
		keys := make([]string, 0, len(columns))
		for _, c := range columns {
			keys = append(keys, c.Key)
		}
		assert.Equal(t, []string{"AssignedTo", "AssignedTo0", "DueDate", "Title"}, keys)
	})

	t.Run("MissingListTitle", func(t *testing.T) {
		svc, source := newService(10)

		_, err := svc.GetListColumns(ctx, webURL, "", false)
		assert.ErrorIs(t, err, listpane_errors.ErrConfiguration)
		source.AssertNotCalled(t, "GetFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("FetchFailure", func(t *testing.T) {
		svc, source := newService(10)
		source.On("GetFields", mock.Anything, webURL, "Missing", sharepoint.FieldQuery{}).
			Return(nil, &sharepoint.ResponseError{StatusCode: 404, Status: "404 Not Found", Message: "List 'Missing' does not exist."}).Once()

		_, err := svc.GetListColumns(ctx, webURL, "Missing", false)
		assert.ErrorIs(t, err, listpane_errors.ErrRetrieval)
		assert.Contains(t, err.Error(), `failed to retrieve columns of list "Missing"`)
		assert.Contains(t, err.Error(), "does not exist")
	})
}
