package usecase

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
	"github.com/polkiloo/storefront/internal/guard"
)

// PaymentGateway submits a charge and always answers with a decision.
type PaymentGateway interface {
	Charge(ctx context.Context, credential *model.PaymentCredential, amount decimal.Decimal) model.PaymentDecision
}

// ConfirmationNotifier sends the order confirmation. Its outcome never
// affects the result of a checkout.
type ConfirmationNotifier interface {
	SendOrderConfirmation(ctx context.Context, order *model.Order, items []model.OrderItem) model.NotificationOutcome
}

// CheckoutRequest is the raw inbound payload of one checkout attempt.
type CheckoutRequest struct {
	Lines      []CartLineInput
	Customer   model.Customer
	CardNumber string
	ExpiryDate string
	CVV        string
}

// Confirmation references the committed order of a successful checkout.
type Confirmation struct {
	Order            *model.Order
	NotificationSent bool
}

// CheckoutUseCase sequences pricing, the payment call, persistence, and
// notification under a per-session guard.
type CheckoutUseCase struct {
	sessions *guard.SessionGuard
	gateway  PaymentGateway
	orders   repository.OrderRepository
	notifier ConfirmationNotifier
	logger   *slog.Logger
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(sessions *guard.SessionGuard, gateway PaymentGateway, orders repository.OrderRepository, notifier ConfirmationNotifier, logger *slog.Logger) *CheckoutUseCase {
	return &CheckoutUseCase{
		sessions: sessions,
		gateway:  gateway,
		orders:   orders,
		notifier: notifier,
		logger:   logger,
	}
}

// Checkout converts a submitted cart into a durable order. Validation and
// business rejections come back as returned errors; only a persistence
// failure after a captured payment carries fatal weight for the caller.
func (u *CheckoutUseCase) Checkout(ctx context.Context, sessionID string, userID int64, req CheckoutRequest) (*Confirmation, error) {
	if u.sessions.Held(sessionID) {
		return nil, domainErrors.ErrAlreadyProcessing
	}

	credential, err := model.NewPaymentCredential(req.CardNumber, req.ExpiryDate, req.CVV)
	if err != nil {
		return nil, err
	}

	customer := req.Customer
	cart, err := BuildCart(req.Lines, &customer, credential)
	if err != nil {
		return nil, err
	}

	release, ok := u.sessions.TryAcquire(sessionID)
	if !ok {
		return nil, domainErrors.ErrAlreadyProcessing
	}
	defer release()

	decision := u.gateway.Charge(ctx, credential, cart.Total)
	if !decision.Accepted {
		return nil, &domainErrors.PaymentRejectedError{Message: decision.Message}
	}

	order, err := u.orders.Commit(ctx, cart, userID, decision)
	if err != nil {
		u.logger.Error("order persistence failed after captured payment",
			slog.String("transaction_id", decision.TransactionID),
			slog.String("error", err.Error()),
		)
		return nil, &domainErrors.PersistenceError{Err: err}
	}

	outcome := u.notifier.SendOrderConfirmation(ctx, order, itemSnapshots(order, cart))
	if outcome.Sent {
		if err := u.orders.MarkConfirmationSent(ctx, order.ID); err != nil {
			u.logger.Error("mark confirmation sent failed", slog.String("order", order.Number), slog.String("error", err.Error()))
		} else {
			order.ConfirmationSent = true
		}
	} else {
		u.logger.Warn("order confirmation not sent, will be retried", slog.String("order", order.Number))
	}

	return &Confirmation{Order: order, NotificationSent: outcome.Sent}, nil
}

func itemSnapshots(order *model.Order, cart *model.Cart) []model.OrderItem {
	items := make([]model.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, model.OrderItem{
			OrderID:     order.ID,
			ProductID:   line.ProductID,
			ProductName: line.Name,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
			LineTotal:   line.LineTotal(),
		})
	}
	return items
}
