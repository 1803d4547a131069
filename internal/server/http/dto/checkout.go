package dto

import "github.com/shopspring/decimal"

// CartItemRequest is one cart line of a checkout submission.
type CartItemRequest struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// CheckoutRequest describes a full checkout payload: shipping details,
// payment card, and the cart contents.
type CheckoutRequest struct {
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	Address    string            `json:"address"`
	Address2   string            `json:"address2"`
	City       string            `json:"city"`
	Postcode   string            `json:"postcode"`
	Country    string            `json:"country"`
	CardNumber string            `json:"card_number"`
	ExpiryDate string            `json:"expiry_date"`
	CVV        string            `json:"cvv"`
	CartItems  []CartItemRequest `json:"cart_items"`
}

// CheckoutResponse confirms a committed order.
type CheckoutResponse struct {
	OrderNumber      string          `json:"order_number"`
	Total            decimal.Decimal `json:"total"`
	NotificationSent bool            `json:"notification_sent"`
}

// ErrorResponse carries a machine readable error payload.
type ErrorResponse struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}
