package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// OrderRepository persists completed checkouts. Commit writes the order, its
// payment record, and all item snapshots as a single atomic unit.
type OrderRepository interface {
	Commit(ctx context.Context, cart *model.Cart, userID int64, decision model.PaymentDecision) (*model.Order, error)
	GetByNumber(ctx context.Context, number string) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	ItemsByOrder(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	SelectUnconfirmed(ctx context.Context, limit int) ([]model.Order, error)
	MarkConfirmationSent(ctx context.Context, orderID int64) error
}
