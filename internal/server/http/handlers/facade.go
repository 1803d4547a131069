package handlers

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/usecase"
)

// CheckoutFacade encapsulates checkout operations exposed via HTTP.
type CheckoutFacade interface {
	Checkout(ctx context.Context, sessionID string, userID int64, req usecase.CheckoutRequest) (*usecase.Confirmation, error)
	OrderByNumber(ctx context.Context, number string) (*model.Order, []model.OrderItem, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
}
