// Package cart holds the cashier-side cart: ephemeral per-terminal state
// that exists only between opening a sale and checkout.
package cart

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chapa-pos/api/internal/pos"
)

// ErrEmptyCart rejects checkout of a cart with no lines.
var ErrEmptyCart = errors.New("cart is empty")

// Line is one product in the cart with its quantity and free-text note.
type Line struct {
	Product  pos.Product
	Quantity int32
	Notes    string
}

// Subtotal is the line extension: unit price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt32(l.Quantity))
}

// Cart accumulates a sale in progress. Not safe for concurrent use; callers
// serialize access (see Sessions).
type Cart struct {
	Lines          []Line
	PaymentMethod  pos.PaymentMethod
	ReceivedAmount decimal.Decimal
}

// New returns an empty cart. PIX is the pre-selected payment method, as on
// the cashier screen.
func New() *Cart {
	return &Cart{PaymentMethod: pos.PaymentPix}
}

// AddProduct adds one unit of p. A product already in the cart gets its
// quantity bumped instead of a duplicate line.
func (c *Cart) AddProduct(p pos.Product) {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == p.ID {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, Line{Product: p, Quantity: 1})
}

// UpdateQuantity applies a delta to a line's quantity, clamped at 1. A line
// never reaches zero this way; removal is explicit. Unknown products are
// ignored.
func (c *Cart) UpdateQuantity(productID uuid.UUID, delta int32) {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID {
			q := c.Lines[i].Quantity + delta
			if q < 1 {
				q = 1
			}
			c.Lines[i].Quantity = q
			return
		}
	}
}

// RemoveItem deletes the line for productID, if present.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// UpdateNotes replaces the note on a line. Free text, no validation.
func (c *Cart) UpdateNotes(productID uuid.UUID, notes string) {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID {
			c.Lines[i].Notes = notes
			return
		}
	}
}

// SelectPayment switches the payment method. Change calculation is
// meaningless outside cash, so any other method zeroes the received amount.
func (c *Cart) SelectPayment(m pos.PaymentMethod) {
	c.PaymentMethod = m
	if m != pos.PaymentDinheiro {
		c.ReceivedAmount = decimal.Zero
	}
}

// SetReceivedAmount records the cash handed over by the customer.
func (c *Cart) SetReceivedAmount(d decimal.Decimal) {
	c.ReceivedAmount = d
}

// Total sums the line extensions.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Change is max(0, received - total) for cash sales and zero otherwise.
func (c *Cart) Change() decimal.Decimal {
	if c.PaymentMethod != pos.PaymentDinheiro {
		return decimal.Zero
	}
	change := c.ReceivedAmount.Sub(c.Total())
	if change.IsNegative() {
		return decimal.Zero
	}
	return change
}

// Owed is max(0, total - received) for cash sales and zero otherwise.
func (c *Cart) Owed() decimal.Decimal {
	if c.PaymentMethod != pos.PaymentDinheiro {
		return decimal.Zero
	}
	owed := c.Total().Sub(c.ReceivedAmount)
	if owed.IsNegative() {
		return decimal.Zero
	}
	return owed
}

// Checkout converts the cart into an immutable order. Item name, unit price
// and category are snapshotted from the catalog entries in the cart; the
// order is dispatched to the kitchen immediately, so SentToKitchenAt equals
// CreatedAt. The cart itself is left untouched; callers clear it once the
// order has been handed off.
func (c *Cart) Checkout(id uuid.UUID, now time.Time) (pos.Order, error) {
	if len(c.Lines) == 0 {
		return pos.Order{}, ErrEmptyCart
	}

	items := make([]pos.OrderItem, len(c.Lines))
	for i, l := range c.Lines {
		items[i] = pos.OrderItem{
			ProductID:   l.Product.ID,
			ProductName: l.Product.Name,
			Quantity:    l.Quantity,
			Notes:       l.Notes,
			UnitPrice:   l.Product.Price,
			Category:    l.Product.Category,
		}
	}

	return pos.Order{
		ID:              id,
		Items:           items,
		Status:          pos.StatusNovo,
		PaymentMethod:   c.PaymentMethod,
		Total:           c.Total(),
		CreatedAt:       now,
		SentToKitchenAt: now,
		UpdatedAt:       now,
	}, nil
}

// Clear resets the cart for the next sale: lines gone, received amount
// zeroed, payment method kept.
func (c *Cart) Clear() {
	c.Lines = nil
	c.ReceivedAmount = decimal.Zero
}
