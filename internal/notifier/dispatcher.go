package notifier

import (
	"context"
	"log/slog"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// AttemptStore is an atomic increment-with-TTL counter keyed by order number.
// The counter is shared by every process notifying the same order.
type AttemptStore interface {
	Increment(ctx context.Context, orderNumber string) (previous int64, err error)
}

// Sender delivers a confirmation message to the customer.
type Sender interface {
	Send(ctx context.Context, order *model.Order, items []model.OrderItem) error
}

// Dispatcher sends order confirmations over a deliberately unreliable
// channel. Unless the always-succeed override is set, the first attempt for
// any order number fails with a simulated transient cause and every later
// attempt succeeds. Failures never escape as errors: an already committed
// order must not be affected by its notification.
type Dispatcher struct {
	attempts      AttemptStore
	sender        Sender
	alwaysSucceed bool
	logger        *slog.Logger
}

// NewDispatcher constructs Dispatcher.
func NewDispatcher(attempts AttemptStore, sender Sender, alwaysSucceed bool, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		attempts:      attempts,
		sender:        sender,
		alwaysSucceed: alwaysSucceed,
		logger:        logger,
	}
}

// SendOrderConfirmation attempts to send the confirmation for order and
// reports the outcome as a value, never as an error.
func (d *Dispatcher) SendOrderConfirmation(ctx context.Context, order *model.Order, items []model.OrderItem) model.NotificationOutcome {
	if !d.alwaysSucceed {
		previous, err := d.attempts.Increment(ctx, order.Number)
		if err != nil {
			d.logger.Error("attempt counter unavailable",
				slog.String("order_number", order.Number),
				slog.String("error", err.Error()),
			)
			return model.NotificationOutcome{}
		}
		if previous == 0 {
			cause := randomFailureCause()
			d.logger.Warn("confirmation send failed (simulated)",
				slog.String("order_number", order.Number),
				slog.Int64("attempt", previous+1),
				slog.String("error", cause.Message()),
			)
			return model.NotificationOutcome{}
		}
	}

	if err := d.sender.Send(ctx, order, items); err != nil {
		d.logger.Error("failed to send order confirmation",
			slog.String("order_number", order.Number),
			slog.String("error", err.Error()),
		)
		return model.NotificationOutcome{}
	}

	d.logger.Info("order confirmation sent",
		slog.String("order_number", order.Number),
		slog.String("recipient", order.ShippingEmail),
	)
	return model.NotificationOutcome{Sent: true}
}
