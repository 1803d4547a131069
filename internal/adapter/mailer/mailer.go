package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// LogMailer renders order confirmations into the structured log instead of a
// real mail transport. The message body mirrors what a production mailer
// would send, so operators can inspect exactly what the customer would see.
type LogMailer struct {
	logger *slog.Logger
}

// New constructs LogMailer.
func New(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send renders and "delivers" the confirmation for order.
func (m *LogMailer) Send(ctx context.Context, order *model.Order, items []model.OrderItem) error {
	m.logger.Info("delivering order confirmation",
		slog.String("to", order.ShippingEmail),
		slog.String("subject", fmt.Sprintf("Order confirmation %s", order.Number)),
		slog.String("body", renderBody(order, items)),
	)
	return nil
}

func renderBody(order *model.Order, items []model.OrderItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s, thank you for your order %s.\n", order.ShippingName, order.Number)
	for _, item := range items {
		fmt.Fprintf(&b, "%d x %s @ %s = %s\n", item.Quantity, item.ProductName, item.UnitPrice.StringFixed(2), item.LineTotal.StringFixed(2))
	}
	fmt.Fprintf(&b, "Subtotal: %s\n", order.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "Tax: %s\n", order.Tax.StringFixed(2))
	fmt.Fprintf(&b, "Shipping: %s\n", order.Shipping.StringFixed(2))
	fmt.Fprintf(&b, "Total: %s\n", order.Total.StringFixed(2))
	fmt.Fprintf(&b, "Shipping to: %s, %s, %s %s, %s\n",
		order.ShippingAddress, order.ShippingCity, order.ShippingPostcode, order.ShippingCountry, order.ShippingName)
	return b.String()
}
