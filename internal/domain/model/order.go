package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes order lifecycle.
type OrderStatus string

const (
	OrderStatusConfirmed OrderStatus = "confirmed"
)

// Order is the durable record of a completed checkout. Once created it is
// never re-created for the same checkout attempt; the order number is the
// caller-visible handle.
type Order struct {
	ID        int64
	Number    string
	UserID    int64
	PaymentID int64

	ShippingName     string
	ShippingEmail    string
	ShippingPhone    string
	ShippingAddress  string
	ShippingAddress2 string
	ShippingCity     string
	ShippingPostcode string
	ShippingCountry  string

	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal

	Status           OrderStatus
	ConfirmationSent bool
	CreatedAt        time.Time
}

// OrderItem is an immutable snapshot of a cart line taken at order creation
// time, deliberately decoupled from the live product catalog.
type OrderItem struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	LineTotal   decimal.Decimal
}
