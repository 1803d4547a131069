package gateway

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
)

const (
	acceptedMessage      = "Payment processed successfully"
	invalidChargeMessage = "Payment processing failed"
	unavailableMessage   = "Payment service is currently unavailable. Please try again."
)

// Client exposes charge submission to the payment processor. Implementations
// always answer with a decision; "gateway unreachable" is indistinguishable
// from "payment did not succeed" for callers.
type Client interface {
	Charge(ctx context.Context, credential *model.PaymentCredential, amount decimal.Decimal) model.PaymentDecision
}

// SimulatedClient stands in for the real payment network. It validates its
// input strictly, waits a fixed processing delay, and accepts every
// well-formed charge with a fresh transaction identifier.
type SimulatedClient struct {
	delay  time.Duration
	logger *slog.Logger
}

// NewSimulatedClient creates a simulated processor with the given delay.
func NewSimulatedClient(delay time.Duration, logger *slog.Logger) *SimulatedClient {
	return &SimulatedClient{delay: delay, logger: logger}
}

// Charge submits one charge attempt. Decisions are never cached: two calls
// with identical input yield different transaction identifiers.
func (c *SimulatedClient) Charge(ctx context.Context, credential *model.PaymentCredential, amount decimal.Decimal) model.PaymentDecision {
	if credential == nil || amount.LessThan(decimal.RequireFromString("0.01")) {
		return model.PaymentDecision{Accepted: false, Message: invalidChargeMessage}
	}

	select {
	case <-ctx.Done():
		c.logger.Warn("charge abandoned before processing completed", slog.String("error", ctx.Err().Error()))
		return model.PaymentDecision{Accepted: false, Message: unavailableMessage}
	case <-time.After(c.delay):
	}

	txn := newTransactionID()
	c.logger.Info("payment processed",
		slog.String("transaction_id", txn),
		slog.String("amount", amount.StringFixed(2)),
	)
	return model.PaymentDecision{Accepted: true, Message: acceptedMessage, TransactionID: txn}
}

func newTransactionID() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "TXN-" + raw[:13]
}
