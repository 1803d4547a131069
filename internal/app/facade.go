package app

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
	"github.com/polkiloo/storefront/internal/usecase"
)

// CheckoutFacade is the single application entry point shared by the HTTP
// surface and the confirmation retry worker.
type CheckoutFacade struct {
	checkout *usecase.CheckoutUseCase
	orders   repository.OrderRepository
	notifier usecase.ConfirmationNotifier
}

func NewCheckoutFacade(checkout *usecase.CheckoutUseCase, orders repository.OrderRepository, notifier usecase.ConfirmationNotifier) *CheckoutFacade {
	return &CheckoutFacade{checkout: checkout, orders: orders, notifier: notifier}
}

func (f *CheckoutFacade) Checkout(ctx context.Context, sessionID string, userID int64, req usecase.CheckoutRequest) (*usecase.Confirmation, error) {
	return f.checkout.Checkout(ctx, sessionID, userID, req)
}

func (f *CheckoutFacade) OrderByNumber(ctx context.Context, number string) (*model.Order, []model.OrderItem, error) {
	order, err := f.orders.GetByNumber(ctx, number)
	if err != nil {
		return nil, nil, err
	}
	items, err := f.orders.ItemsByOrder(ctx, order.ID)
	if err != nil {
		return nil, nil, err
	}
	return order, items, nil
}

func (f *CheckoutFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *CheckoutFacade) UnconfirmedOrders(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.SelectUnconfirmed(ctx, limit)
}

func (f *CheckoutFacade) OrderItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	return f.orders.ItemsByOrder(ctx, orderID)
}

func (f *CheckoutFacade) SendConfirmation(ctx context.Context, order *model.Order, items []model.OrderItem) model.NotificationOutcome {
	return f.notifier.SendOrderConfirmation(ctx, order, items)
}

func (f *CheckoutFacade) MarkConfirmationSent(ctx context.Context, orderID int64) error {
	return f.orders.MarkConfirmationSent(ctx, orderID)
}
