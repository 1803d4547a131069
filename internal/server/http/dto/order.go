package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemResponse is one purchased line snapshot.
type OrderItemResponse struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// OrderResponse represents a stored order.
type OrderResponse struct {
	Number           string              `json:"number"`
	Status           string              `json:"status"`
	Subtotal         decimal.Decimal     `json:"subtotal"`
	Tax              decimal.Decimal     `json:"tax"`
	Shipping         decimal.Decimal     `json:"shipping"`
	Total            decimal.Decimal     `json:"total"`
	ConfirmationSent bool                `json:"confirmation_sent"`
	CreatedAt        time.Time           `json:"created_at"`
	Items            []OrderItemResponse `json:"items,omitempty"`
}
