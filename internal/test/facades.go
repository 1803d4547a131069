package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/usecase"
)

// CheckoutFacadeStub provides controllable behaviour for checkout endpoints.
type CheckoutFacadeStub struct {
	CheckoutFn      func(context.Context, string, int64, usecase.CheckoutRequest) (*usecase.Confirmation, error)
	OrderByNumberFn func(context.Context, string) (*model.Order, []model.OrderItem, error)
	OrdersFn        func(context.Context, int64) ([]model.Order, error)
}

// Checkout delegates to provided function or returns a default confirmation.
func (s CheckoutFacadeStub) Checkout(ctx context.Context, sessionID string, userID int64, req usecase.CheckoutRequest) (*usecase.Confirmation, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, sessionID, userID, req)
	}
	return &usecase.Confirmation{
		Order:            &model.Order{Number: "ORD-20250901-STUB01", UserID: userID},
		NotificationSent: true,
	}, nil
}

// OrderByNumber returns configured order or a default one.
func (s CheckoutFacadeStub) OrderByNumber(ctx context.Context, number string) (*model.Order, []model.OrderItem, error) {
	if s.OrderByNumberFn != nil {
		return s.OrderByNumberFn(ctx, number)
	}
	return &model.Order{Number: number}, nil, nil
}

// Orders returns predefined orders for given user.
func (s CheckoutFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{{Number: "ORD-20250901-STUB01", UserID: userID}}, nil
}

// GatewayStub answers charges for tests.
type GatewayStub struct {
	ChargeFn func(context.Context, *model.PaymentCredential, decimal.Decimal) model.PaymentDecision
	Decision *model.PaymentDecision
}

// Charge returns configured decision or accepts by default.
func (s GatewayStub) Charge(ctx context.Context, credential *model.PaymentCredential, amount decimal.Decimal) model.PaymentDecision {
	if s.ChargeFn != nil {
		return s.ChargeFn(ctx, credential, amount)
	}
	if s.Decision != nil {
		return *s.Decision
	}
	return model.PaymentDecision{Accepted: true, Message: "Payment processed successfully", TransactionID: "TXN-STUB0000000"}
}

// NotifierStub reports configured delivery outcomes and records calls.
type NotifierStub struct {
	SendFn func(context.Context, *model.Order, []model.OrderItem) model.NotificationOutcome
	Sent   bool

	mu    sync.Mutex
	Calls int
}

// SendOrderConfirmation returns the configured outcome.
func (s *NotifierStub) SendOrderConfirmation(ctx context.Context, order *model.Order, items []model.OrderItem) model.NotificationOutcome {
	s.mu.Lock()
	s.Calls++
	s.mu.Unlock()
	if s.SendFn != nil {
		return s.SendFn(ctx, order, items)
	}
	return model.NotificationOutcome{Sent: s.Sent}
}

// ConfirmationFacadeStub mimics worker interactions with the checkout facade.
type ConfirmationFacadeStub struct {
	Orders          [][]model.Order
	OrdersFn        func(context.Context, int) ([]model.Order, error)
	ItemsFn         func(context.Context, int64) ([]model.OrderItem, error)
	SendFn          func(context.Context, *model.Order, []model.OrderItem) model.NotificationOutcome
	MarkFn          func(context.Context, int64) error
	Marked          []int64
	mu              sync.Mutex
	ordersCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *ConfirmationFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *ConfirmationFacadeStub) Unlock() { s.mu.Unlock() }

// UnconfirmedOrders returns batches from configured queue.
func (s *ConfirmationFacadeStub) UnconfirmedOrders(ctx context.Context, limit int) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.ordersCallCount, 1)
	if int(call) <= len(s.Orders) {
		return s.Orders[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// OrderItems returns configured item snapshots.
func (s *ConfirmationFacadeStub) OrderItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	if s.ItemsFn != nil {
		return s.ItemsFn(ctx, orderID)
	}
	return []model.OrderItem{{OrderID: orderID, ProductName: "Widget", Quantity: 1}}, nil
}

// SendConfirmation reports delivery per configured function, sent by default.
func (s *ConfirmationFacadeStub) SendConfirmation(ctx context.Context, order *model.Order, items []model.OrderItem) model.NotificationOutcome {
	if s.SendFn != nil {
		return s.SendFn(ctx, order, items)
	}
	return model.NotificationOutcome{Sent: true}
}

// MarkConfirmationSent records marked order ids.
func (s *ConfirmationFacadeStub) MarkConfirmationSent(ctx context.Context, orderID int64) error {
	if s.MarkFn != nil {
		return s.MarkFn(ctx, orderID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Marked = append(s.Marked, orderID)
	return nil
}
