package notifier

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/cache"
	"github.com/polkiloo/storefront/internal/config"
)

// Module wires the confirmation dispatcher.
var Module = fx.Provide(newDispatcher)

type dispatcherParams struct {
	fx.In

	Attempts *cache.AttemptStore
	Sender   Sender
	Config   *config.Config
	Logger   *slog.Logger
}

func newDispatcher(p dispatcherParams) *Dispatcher {
	return NewDispatcher(p.Attempts, p.Sender, p.Config.NotifyAlwaysSucceed, p.Logger)
}
