package mailer

import (
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/notifier"
)

// Module exposes the log backed mail sender.
var Module = fx.Provide(
	New,
	func(m *LogMailer) notifier.Sender { return m },
)
