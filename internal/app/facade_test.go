package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/guard"
	testhelpers "github.com/polkiloo/storefront/internal/test"
	"github.com/polkiloo/storefront/internal/usecase"
)

func newFacade(notifier *testhelpers.NotifierStub) (*CheckoutFacade, *testhelpers.OrderRepositoryStub) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	orders := &testhelpers.OrderRepositoryStub{}
	checkout := usecase.NewCheckoutUseCase(guard.New(), testhelpers.GatewayStub{}, orders, notifier, logger)
	return NewCheckoutFacade(checkout, orders, notifier), orders
}

func widgetRequest() usecase.CheckoutRequest {
	return usecase.CheckoutRequest{
		Lines: []usecase.CartLineInput{{ID: 1, Name: "Widget", Price: decimal.RequireFromString("10.00"), Quantity: 2}},
		Customer: model.Customer{
			Name:     "Ada Lovelace",
			Email:    "ada@example.com",
			Address:  "1 Analytical Way",
			City:     "London",
			Postcode: "N1 7AA",
			Country:  "GB",
		},
		CardNumber: "4111111111111111",
		ExpiryDate: "12/25",
		CVV:        "123",
	}
}

func TestCheckoutFacadeCheckout(t *testing.T) {
	notifier := &testhelpers.NotifierStub{Sent: true}
	facade, orders := newFacade(notifier)

	confirmation, err := facade.Checkout(context.Background(), "session-1", 7, widgetRequest())
	if err != nil {
		t.Fatalf("checkout returned error: %v", err)
	}
	if !confirmation.Order.Total.Equal(decimal.RequireFromString("29.99")) {
		t.Fatalf("unexpected total %s", confirmation.Order.Total)
	}
	if !confirmation.NotificationSent {
		t.Fatal("expected confirmation to be sent")
	}

	order, items, err := facade.OrderByNumber(context.Background(), confirmation.Order.Number)
	if err != nil {
		t.Fatalf("order lookup failed: %v", err)
	}
	if order.UserID != 7 {
		t.Fatalf("unexpected user id %d", order.UserID)
	}
	if len(items) != 1 || items[0].ProductName != "Widget" {
		t.Fatalf("unexpected items %+v", items)
	}

	listed, err := facade.Orders(context.Background(), 7)
	if err != nil || len(listed) != 1 {
		t.Fatalf("expected one order, got %v err=%v", listed, err)
	}

	if len(orders.Marked) != 1 {
		t.Fatalf("expected order marked confirmed, got %d", len(orders.Marked))
	}
}

func TestCheckoutFacadeNotificationFailureThenRetry(t *testing.T) {
	notifier := &testhelpers.NotifierStub{Sent: false}
	facade, orders := newFacade(notifier)

	confirmation, err := facade.Checkout(context.Background(), "session-1", 7, widgetRequest())
	if err != nil {
		t.Fatalf("checkout returned error: %v", err)
	}
	if confirmation.NotificationSent {
		t.Fatal("expected notification to fail")
	}

	// Worker path: the unconfirmed order is picked up and resent.
	pending, err := facade.UnconfirmedOrders(context.Background(), 10)
	if err != nil || len(pending) != 1 {
		t.Fatalf("expected one unconfirmed order, got %v err=%v", pending, err)
	}
	items, err := facade.OrderItems(context.Background(), pending[0].ID)
	if err != nil {
		t.Fatalf("items lookup failed: %v", err)
	}

	notifier.Sent = true
	outcome := facade.SendConfirmation(context.Background(), &pending[0], items)
	if !outcome.Sent {
		t.Fatal("expected resend to succeed")
	}
	if err := facade.MarkConfirmationSent(context.Background(), pending[0].ID); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	pending, err = facade.UnconfirmedOrders(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no unconfirmed orders, got %d", len(pending))
	}
	if len(orders.Marked) != 1 {
		t.Fatalf("expected one mark call, got %d", len(orders.Marked))
	}
}

func TestCheckoutFacadeOrderNotFound(t *testing.T) {
	facade, _ := newFacade(&testhelpers.NotifierStub{Sent: true})
	if _, _, err := facade.OrderByNumber(context.Background(), "ORD-20250901-MISSIN"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCheckoutFacadeRejectedPayment(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	orders := &testhelpers.OrderRepositoryStub{}
	gateway := testhelpers.GatewayStub{Decision: &model.PaymentDecision{
		Accepted: false,
		Message:  "Payment service is currently unavailable. Please try again.",
	}}
	checkout := usecase.NewCheckoutUseCase(guard.New(), gateway, orders, &testhelpers.NotifierStub{}, logger)
	facade := NewCheckoutFacade(checkout, orders, &testhelpers.NotifierStub{})

	_, err := facade.Checkout(context.Background(), "session-1", 7, widgetRequest())
	var rejected *domainErrors.PaymentRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected PaymentRejectedError, got %v", err)
	}
	if len(orders.Orders) != 0 {
		t.Fatal("expected no order persisted after rejection")
	}
}
