package cmd

import (
	"context"

	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/listpane/cache"
	"github.com/dev-mohitbeniwal/listpane/config"
	"github.com/dev-mohitbeniwal/listpane/controls"
	"github.com/dev-mohitbeniwal/listpane/db"
	logger "github.com/dev-mohitbeniwal/listpane/logging"
	"github.com/dev-mohitbeniwal/listpane/sharepoint"
	"github.com/dev-mohitbeniwal/listpane/util"
)

// app holds what every sub-command needs once the configuration is loaded.
type app struct {
	cfg     *config.Configuration
	bus     *util.EventBus
	factory *controls.Factory

	ctx    context.Context
	cancel context.CancelFunc
}

func newApp(ctx context.Context, cfg *config.Configuration) (*app, error) {
	scope, err := cache.ParseScope(cfg.Cache.Scope)
	if err != nil {
		return nil, err
	}

	if err := db.InitRedis(cfg.Redis); err != nil {
		return nil, err
	}

	client := sharepoint.NewClient(
		sharepoint.WithAccessToken(cfg.SharePoint.AccessToken),
		sharepoint.WithTimeout(cfg.SharePoint.Timeout),
	)

	// Cancelled by close, which stops the bus error loop.
	ctx, cancel := context.WithCancel(ctx)
	bus := util.NewEventBus()
	bus.Start(ctx)
	bus.Subscribe(util.EventPropertyChanged, func(_ context.Context, e util.Event) error {
		change := e.Payload.(util.PropertyChange)
		logger.Debug("Dropdown selection changed",
			zap.String("componentKey", change.ComponentKey),
			zap.String("property", change.TargetProperty),
			zap.String("oldValue", change.OldValue),
			zap.String("newValue", change.NewValue))
		return nil
	})

	factory := controls.NewFactory(client, db.Cmdable(), bus, controls.FactoryConfig{
		DefaultWebURL:     cfg.SharePoint.WebURL,
		Scope:             scope,
		SharedDataTimeout: cfg.Cache.SharedDataTimeout(),
	})

	return &app{cfg: cfg, bus: bus, factory: factory, ctx: ctx, cancel: cancel}, nil
}

// cacheTimeoutSecs maps the configured timeout onto the factory's convention,
// where 0 means the default and a negative value disables caching.
func (a *app) cacheTimeoutSecs() int {
	if a.cfg.Cache.TimeoutSecs == 0 {
		return -1
	}
	return a.cfg.Cache.TimeoutSecs
}

func (a *app) close() {
	a.bus.Wait()
	a.cancel()
	db.CloseRedis()
}
