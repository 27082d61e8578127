// Package service holds the checkout orchestration: turning a cart into an
// order and fanning the result out to the printer, the order store and the
// KDS feed.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chapa-pos/api/internal/cart"
	"github.com/chapa-pos/api/internal/pos"
	"github.com/chapa-pos/api/internal/print"
)

// OrderAppender is the slice of the order store checkout needs.
type OrderAppender interface {
	Add(ctx context.Context, o pos.Order)
}

// Notifier pushes order events to live KDS clients. Implementations must
// not block; delivery is best-effort.
type Notifier interface {
	OrderCreated(o pos.Order)
}

// CheckoutService finalizes sales.
type CheckoutService struct {
	store   OrderAppender
	printer print.Sink
	notify  Notifier
}

// NewCheckoutService creates a CheckoutService. notify may be nil.
func NewCheckoutService(store OrderAppender, printer print.Sink, notify Notifier) *CheckoutService {
	return &CheckoutService{store: store, printer: printer, notify: notify}
}

// Checkout builds an order from the cart, prints the customer receipt and,
// when any item routes to the kitchen, the preparation ticket, appends the
// order to the store and clears the cart. An empty cart returns
// cart.ErrEmptyCart with no side effects.
func (s *CheckoutService) Checkout(ctx context.Context, c *cart.Cart) (pos.Order, error) {
	order, err := c.Checkout(uuid.New(), time.Now())
	if err != nil {
		return pos.Order{}, err
	}

	s.printer.Print(pos.Receipt(order, c.Change(), c.ReceivedAmount, false), print.KindReceipt)
	if len(pos.KitchenItems(order)) > 0 {
		s.printer.Print(pos.Receipt(order, decimal.Zero, decimal.Zero, true), print.KindKitchen)
	}

	s.store.Add(ctx, order)
	c.Clear()

	if s.notify != nil {
		s.notify.OrderCreated(order)
	}
	return order, nil
}
