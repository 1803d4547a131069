package test

import (
	"context"
	"fmt"
	"sync"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

// OrderRepositoryStub keeps committed orders in-memory for tests.
type OrderRepositoryStub struct {
	CommitFn      func(context.Context, *model.Cart, int64, model.PaymentDecision) (*model.Order, error)
	GetByNumberFn func(context.Context, string) (*model.Order, error)
	Err           error

	mu     sync.Mutex
	nextID int64
	Orders []model.Order
	Items  map[int64][]model.OrderItem
	Marked []int64
}

// Commit stores the cart as an order unless a custom function or error is set.
func (s *OrderRepositoryStub) Commit(ctx context.Context, cart *model.Cart, userID int64, decision model.PaymentDecision) (*model.Order, error) {
	if s.CommitFn != nil {
		return s.CommitFn(ctx, cart, userID, decision)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if !cart.HasCustomer() || !cart.HasCredential() {
		return nil, domainErrors.ErrIncompleteCart
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	order := model.Order{
		ID:       s.nextID,
		Number:   fmt.Sprintf("ORD-20250901-STUB%02d", s.nextID),
		UserID:   userID,
		Subtotal: cart.Subtotal,
		Tax:      cart.Tax,
		Shipping: cart.Shipping,
		Total:    cart.Total,
		Status:   model.OrderStatusConfirmed,
	}
	s.Orders = append(s.Orders, order)
	if s.Items == nil {
		s.Items = make(map[int64][]model.OrderItem)
	}
	for _, line := range cart.Items {
		s.Items[order.ID] = append(s.Items[order.ID], model.OrderItem{
			OrderID:     order.ID,
			ProductID:   line.ProductID,
			ProductName: line.Name,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
			LineTotal:   line.LineTotal(),
		})
	}
	return &order, nil
}

// GetByNumber fetches a stored order or returns not found.
func (s *OrderRepositoryStub) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	if s.GetByNumberFn != nil {
		return s.GetByNumberFn(ctx, number)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Orders {
		if s.Orders[i].Number == number {
			order := s.Orders[i]
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns stored orders belonging to the user.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for _, order := range s.Orders {
		if order.UserID == userID {
			result = append(result, order)
		}
	}
	return result, nil
}

// ItemsByOrder returns stored item snapshots.
func (s *OrderRepositoryStub) ItemsByOrder(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Items[orderID], nil
}

// SelectUnconfirmed returns stored orders whose confirmation never went out.
func (s *OrderRepositoryStub) SelectUnconfirmed(ctx context.Context, limit int) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for _, order := range s.Orders {
		if !order.ConfirmationSent {
			result = append(result, order)
			if len(result) == limit {
				break
			}
		}
	}
	return result, nil
}

// MarkConfirmationSent records the order as confirmed.
func (s *OrderRepositoryStub) MarkConfirmationSent(ctx context.Context, orderID int64) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Orders {
		if s.Orders[i].ID == orderID {
			s.Orders[i].ConfirmationSent = true
		}
	}
	s.Marked = append(s.Marked, orderID)
	return nil
}
