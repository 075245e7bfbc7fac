// service/sharepoint_data_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/listpane/cache"
	listpane_errors "github.com/dev-mohitbeniwal/listpane/errors"
	logger "github.com/dev-mohitbeniwal/listpane/logging"
	"github.com/dev-mohitbeniwal/listpane/model"
	"github.com/dev-mohitbeniwal/listpane/shareddata"
	"github.com/dev-mohitbeniwal/listpane/sharepoint"
)

// ListSource is the remote side of the data service.
type ListSource interface {
	GetLists(ctx context.Context, webURL string) ([]model.List, error)
	GetFields(ctx context.Context, webURL, listTitle string, q sharepoint.FieldQuery) ([]model.Field, error)
}

// ISharePointDataService defines the data operations behind the dropdowns
type ISharePointDataService interface {
	GetCustomListTitles(ctx context.Context, webURL string, opts ...RequestOption) ([]string, error)
	GetListColumns(ctx context.Context, webURL, listTitle string, includeInternalColumns bool, opts ...RequestOption) ([]model.KeyValuePair[string, string], error)
}

type requestOptions struct {
	filter            string
	sharedDataTimeout time.Duration
}

// RequestOption tunes a single data service call.
type RequestOption func(*requestOptions)

// WithFilter and-s an extra OData predicate to the column query.
func WithFilter(filter string) RequestOption {
	return func(o *requestOptions) { o.filter = filter }
}

// WithSharedDataTimeout bounds how long the call waits for another request's fetch.
func WithSharedDataTimeout(d time.Duration) RequestOption {
	return func(o *requestOptions) { o.sharedDataTimeout = d }
}

// SharePointDataService fetches list titles and list columns, caching results
// and sharing in-flight fetches between concurrent callers.
type SharePointDataService struct {
	source            ListSource
	cache             *cache.WebStorageCache
	sharedDataSync    *shareddata.Synchroniser
	defaultWebURL     string
	sharedDataTimeout time.Duration
}

var _ ISharePointDataService = &SharePointDataService{}

// NewSharePointDataService creates a data service. A nil or disabled cache
// turns off both caching and de-duplication: every call fetches.
func NewSharePointDataService(source ListSource, c *cache.WebStorageCache, defaultWebURL string, sharedDataTimeout time.Duration) *SharePointDataService {
	s := &SharePointDataService{
		source:            source,
		cache:             c,
		defaultWebURL:     defaultWebURL,
		sharedDataTimeout: sharedDataTimeout,
	}
	if c != nil && c.Enabled() {
		s.sharedDataSync = shareddata.New(c)
	}
	return s
}

// Cache returns the cache backing the service, or nil.
func (s *SharePointDataService) Cache() *cache.WebStorageCache {
	return s.cache
}

func listsCacheKey(webURL string) string {
	return fmt.Sprintf("lists-%s", webURL)
}

func columnsCacheKey(webURL, listTitle string, includeInternalColumns bool) string {
	internal := "no-internal"
	if includeInternalColumns {
		internal = "with-internal"
	}
	return fmt.Sprintf("columns-%s-%s-%s", webURL, listTitle, internal)
}

func (s *SharePointDataService) resolveWebURL(webURL string) string {
	if webURL != "" {
		return webURL
	}
	return s.defaultWebURL
}

func (s *SharePointDataService) options(opts []RequestOption) requestOptions {
	o := requestOptions{sharedDataTimeout: s.sharedDataTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// GetCustomListTitles returns the titles of the custom lists of the web, ordered by title.
func (s *SharePointDataService) GetCustomListTitles(ctx context.Context, webURL string, opts ...RequestOption) ([]string, error) {
	webURL = s.resolveWebURL(webURL)
	if webURL == "" {
		return nil, listpane_errors.NewConfigError("The URL of the site wasn't provided.")
	}
	o := s.options(opts)

	return load(ctx, s, loadRequest[[]string]{
		key:       listsCacheKey(webURL),
		operation: "lists",
		what:      "list titles",
		timeout:   o.sharedDataTimeout,
		fields:    []zap.Field{zap.String("webUrl", webURL)},
		fetch: func(ctx context.Context) ([]string, error) {
			lists, err := s.source.GetLists(ctx, webURL)
			if err != nil {
				return nil, fmt.Errorf("failed to retrieve lists from %s: %w", webURL, err)
			}
			titles := make([]string, 0, len(lists))
			for _, list := range lists {
				titles = append(titles, list.Title)
			}
			sortTitles(titles)
			return titles, nil
		},
	})
}

// GetListColumns returns internal name / display name pairs for the columns
// of listTitle, ordered by display name. Internal columns are excluded unless
// includeInternalColumns is set; the title column is always kept.
func (s *SharePointDataService) GetListColumns(ctx context.Context, webURL, listTitle string, includeInternalColumns bool, opts ...RequestOption) ([]model.KeyValuePair[string, string], error) {
	webURL = s.resolveWebURL(webURL)
	if webURL == "" || listTitle == "" {
		return nil, listpane_errors.NewConfigError("The URL and/or the list title wasn't provided.")
	}
	o := s.options(opts)

	key := columnsCacheKey(webURL, listTitle, includeInternalColumns)
	if o.filter != "" {
		key = fmt.Sprintf("%s-%s", key, o.filter)
	}

	return load(ctx, s, loadRequest[[]model.KeyValuePair[string, string]]{
		key:       key,
		operation: "columns",
		what:      "list columns",
		timeout:   o.sharedDataTimeout,
		fields:    []zap.Field{zap.String("webUrl", webURL), zap.String("listTitle", listTitle)},
		fetch: func(ctx context.Context) ([]model.KeyValuePair[string, string], error) {
			fields, err := s.source.GetFields(ctx, webURL, listTitle, sharepoint.FieldQuery{
				IncludeInternal: includeInternalColumns,
				Filter:          o.filter,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to retrieve columns of list %q from %s: %w", listTitle, webURL, err)
			}
			return toColumns(fields, includeInternalColumns), nil
		},
	})
}

// toColumns maps fields to pairs. The remote filter cannot express the
// internal naming convention exactly, so stray internal columns are dropped here.
func toColumns(fields []model.Field, includeInternalColumns bool) []model.KeyValuePair[string, string] {
	columns := make([]model.KeyValuePair[string, string], 0, len(fields))
	for _, field := range fields {
		if !includeInternalColumns && model.IsInternalName(field.InternalName) {
			logger.Debug("Ignoring internal column not caught by the REST filter",
				zap.String("internalName", field.InternalName))
			continue
		}
		columns = append(columns, model.KeyValuePair[string, string]{
			Key:   field.InternalName,
			Value: field.Title,
		})
	}
	sortColumns(columns)
	return columns
}
