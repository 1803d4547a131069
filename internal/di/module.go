package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/adapter/gateway"
	"github.com/polkiloo/storefront/internal/adapter/mailer"
	"github.com/polkiloo/storefront/internal/app"
	"github.com/polkiloo/storefront/internal/cache"
	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/guard"
	"github.com/polkiloo/storefront/internal/logger"
	"github.com/polkiloo/storefront/internal/notifier"
	"github.com/polkiloo/storefront/internal/server/http/handlers"
	"github.com/polkiloo/storefront/internal/server/http/router"
	"github.com/polkiloo/storefront/internal/storage/postgres"
	"github.com/polkiloo/storefront/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		guard.Module,
		postgres.Module,
		cache.Module,
		gateway.Module,
		mailer.Module,
		notifier.Module,
		usecase.Module,
		fx.Provide(
			func(client gateway.Client) usecase.PaymentGateway { return client },
			func(d *notifier.Dispatcher) usecase.ConfirmationNotifier { return d },
			func(f *app.CheckoutFacade) handlers.CheckoutFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
