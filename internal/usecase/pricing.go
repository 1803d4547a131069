package usecase

import (
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

// Pricing constants are fixed properties of the engine, not caller input,
// so every cart is priced the same way and totals stay auditable.
var (
	taxRate      = decimal.RequireFromString("0.20")
	shippingCost = decimal.RequireFromString("5.99")
)

// CartLineInput is one raw cart line as submitted by the caller.
type CartLineInput struct {
	ID       int64
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// BuildCart prices raw line input into an immutable Cart, attaching the
// customer and credential. It fails with a ValidationError on the first
// invalid line and has no side effects.
func BuildCart(lines []CartLineInput, customer *model.Customer, credential *model.PaymentCredential) (*model.Cart, error) {
	if len(lines) == 0 {
		return nil, domainErrors.NewValidation("cart_items", "cart cannot be empty")
	}

	items := make([]model.CartLineItem, 0, len(lines))
	subtotal := decimal.Zero
	for _, line := range lines {
		item, err := model.NewCartLineItem(line.ID, line.Name, line.Price, line.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		subtotal = subtotal.Add(item.LineTotal())
	}

	tax := subtotal.Mul(taxRate).Round(2)
	total := subtotal.Add(tax).Add(shippingCost)

	return &model.Cart{
		Items:      items,
		Subtotal:   subtotal,
		Tax:        tax,
		Shipping:   shippingCost,
		Total:      total,
		Customer:   customer,
		Credential: credential,
	}, nil
}
