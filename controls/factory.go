package controls

import (
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/listpane/cache"
	logger "github.com/dev-mohitbeniwal/listpane/logging"
	"github.com/dev-mohitbeniwal/listpane/service"
	"github.com/dev-mohitbeniwal/listpane/util"
)

// FactoryConfig holds the settings shared by every control a Factory builds.
type FactoryConfig struct {
	DefaultWebURL     string
	Scope             cache.Scope
	SharedDataTimeout time.Duration
}

// Factory builds dropdown controls. Controls with the same namespace and
// cache timeout share one data service, and therefore one cache and one
// in-flight registry, the way controls mounted in the same property pane do.
type Factory struct {
	source service.ListSource
	redis  redis.Cmdable
	bus    *util.EventBus
	config FactoryConfig

	mu       sync.Mutex
	services map[string]*service.SharePointDataService
}

// NewFactory creates a factory. redisClient may be nil when only the session scope is used.
func NewFactory(source service.ListSource, redisClient redis.Cmdable, bus *util.EventBus, config FactoryConfig) *Factory {
	return &Factory{
		source:   source,
		redis:    redisClient,
		bus:      bus,
		config:   config,
		services: make(map[string]*service.SharePointDataService),
	}
}

// DataService returns the shared data service for namespace and cacheTimeoutSecs.
// A zero timeout means DefaultCacheTimeoutSecs; a negative one disables caching.
func (f *Factory) DataService(namespace string, cacheTimeoutSecs int) (*service.SharePointDataService, error) {
	if cacheTimeoutSecs == 0 {
		cacheTimeoutSecs = DefaultCacheTimeoutSecs
	} else if cacheTimeoutSecs < 0 {
		cacheTimeoutSecs = 0
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	id := fmt.Sprintf("%s/%d", namespace, cacheTimeoutSecs)
	if svc, ok := f.services[id]; ok {
		return svc, nil
	}

	c, err := cache.NewForScope(namespace, cacheTimeoutSecs, f.config.Scope, f.redis)
	if err != nil {
		return nil, err
	}
	svc := service.NewSharePointDataService(f.source, c, f.config.DefaultWebURL, f.config.SharedDataTimeout)
	f.services[id] = svc

	logger.Info("Created data service",
		zap.String("namespace", namespace),
		zap.Int("cacheTimeoutSecs", cacheTimeoutSecs),
		zap.String("scope", f.config.Scope.String()))
	return svc, nil
}

// NewListDropdown creates a dropdown of the custom lists of a site.
func (f *Factory) NewListDropdown(targetProperty string, props ListDropdownProperties) (*ListDropdown, error) {
	svc, err := f.DataService(ListDropdownNamespace, props.CacheTimeoutSecs)
	if err != nil {
		return nil, err
	}

	d := &ListDropdown{Properties: props, dataService: svc}
	d.queryDropdown = queryDropdown{
		key:              componentKey(ListDropdownNamespace, targetProperty),
		targetProperty:   targetProperty,
		label:            props.Label,
		disabled:         props.Disabled,
		defaultKey:       props.DefaultKey,
		onPropertyChange: props.OnPropertyChange,
		bus:              f.bus,
		loadOptions:      d.LoadOptions,
		state:            State{SelectedIndex: NoSelection},
	}
	return d, nil
}

// NewListColumnDropdown creates a dropdown of the columns of a list.
func (f *Factory) NewListColumnDropdown(targetProperty string, props ListColumnDropdownProperties) (*ListColumnDropdown, error) {
	svc, err := f.DataService(ListColumnDropdownNamespace, props.CacheTimeoutSecs)
	if err != nil {
		return nil, err
	}

	d := &ListColumnDropdown{Properties: props, dataService: svc}
	d.queryDropdown = queryDropdown{
		key:              componentKey(ListColumnDropdownNamespace, targetProperty),
		targetProperty:   targetProperty,
		label:            props.Label,
		disabled:         props.Disabled,
		defaultKey:       props.DefaultKey,
		onPropertyChange: props.OnPropertyChange,
		bus:              f.bus,
		loadOptions:      d.LoadOptions,
		state:            State{SelectedIndex: NoSelection},
	}
	return d, nil
}
