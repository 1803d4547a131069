package model

import (
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
)

// CartLineItem is a single submitted cart line. Lines are kept in submission
// order and never merged by product id.
type CartLineItem struct {
	ProductID int64
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// NewCartLineItem validates raw line input at construction time.
func NewCartLineItem(productID int64, name string, unitPrice decimal.Decimal, quantity int) (CartLineItem, error) {
	if productID <= 0 {
		return CartLineItem{}, domainErrors.NewValidation("product_id", "product id must be a positive integer")
	}
	if strings.TrimSpace(name) == "" {
		return CartLineItem{}, domainErrors.NewValidation("name", "product name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return CartLineItem{}, domainErrors.NewValidation("price", "price cannot be negative")
	}
	if quantity <= 0 {
		return CartLineItem{}, domainErrors.NewValidation("quantity", "quantity must be a positive integer")
	}
	return CartLineItem{ProductID: productID, Name: name, UnitPrice: unitPrice, Quantity: quantity}, nil
}

// LineTotal is unit price multiplied by quantity.
func (i CartLineItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the transient priced representation of one checkout attempt.
// Totals are derived from the items when the cart is built and the cart is
// never mutated afterwards or persisted as-is.
type Cart struct {
	Items    []CartLineItem
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal

	Customer   *Customer
	Credential *PaymentCredential
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// HasCustomer reports whether shipping details are attached.
func (c *Cart) HasCustomer() bool {
	return c.Customer != nil
}

// HasCredential reports whether payment details are attached.
func (c *Cart) HasCredential() bool {
	return c.Credential != nil
}
