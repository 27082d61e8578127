// Package pos holds the domain core of the point of sale: the order and
// catalog types, the preparation status machine, the kitchen display
// projections and the receipt formatter. Everything here is pure; stores and
// handlers live elsewhere.
package pos

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the preparation status of an order or of a single item.
type Status string

const (
	StatusNovo      Status = "NOVO"
	StatusEmPreparo Status = "EM_PREPARO"
	StatusPronto    Status = "PRONTO"
	StatusConcluido Status = "CONCLUIDO"

	// StatusPago is set out-of-band when the cashier settles the order.
	// It is not reachable through NextStatus.
	StatusPago Status = "PAGO"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNovo, StatusEmPreparo, StatusPronto, StatusConcluido, StatusPago:
		return true
	}
	return false
}

// PaymentMethod identifies how an order was (or will be) paid.
type PaymentMethod string

const (
	PaymentDinheiro PaymentMethod = "DINHEIRO"
	PaymentCredito  PaymentMethod = "CREDITO"
	PaymentDebito   PaymentMethod = "DEBITO"
	PaymentPix      PaymentMethod = "PIX"
)

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentDinheiro, PaymentCredito, PaymentDebito, PaymentPix:
		return true
	}
	return false
}

// NormalizePayment maps legacy spellings still present in persisted data
// (CARTAO_CREDITO, CARTAO_DEBITO) onto the current method set. Unknown
// values come back unchanged and invalid.
func NormalizePayment(s string) PaymentMethod {
	switch s {
	case "CARTAO_CREDITO":
		return PaymentCredito
	case "CARTAO_DEBITO":
		return PaymentDebito
	}
	return PaymentMethod(s)
}

// GroupingMode selects how kitchen work is grouped on the KDS board.
type GroupingMode string

const (
	// GroupingSingle shows one ticket per order.
	GroupingSingle GroupingMode = "SINGLE"
	// GroupingSplitByPrepTime explodes each kitchen-relevant item into its
	// own independently advanceable ticket.
	GroupingSplitByPrepTime GroupingMode = "SPLIT_BY_PREP_TIME"
)

// Valid reports whether g is one of the known grouping modes.
func (g GroupingMode) Valid() bool {
	return g == GroupingSingle || g == GroupingSplitByPrepTime
}

// Product is a catalog entry. The catalog is read-only for the order core;
// orders snapshot the fields they need at creation time.
type Product struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	CostPrice decimal.Decimal `json:"cost_price"`
	Stock     int32           `json:"stock"`
	Category  string          `json:"category"`
	Emoji     string          `json:"emoji"`
}

// OrderItem is one line of an order. Name, unit price and category are
// snapshots taken at checkout; later catalog edits never reach back into
// historical orders.
type OrderItem struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int32           `json:"quantity"`
	Notes       string          `json:"notes,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Category    string          `json:"category"`

	// Status overrides the order-level status when non-empty (SPLIT mode).
	Status Status `json:"status,omitempty"`
	// LastModified is set whenever the item's own status changes.
	// Zero means the item was never individually advanced.
	LastModified time.Time `json:"last_modified,omitempty"`
}

// Subtotal is the line extension: unit price times quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt32(i.Quantity))
}

// Order is an immutable record of a sale, except for its status fields.
type Order struct {
	ID              uuid.UUID       `json:"id"`
	Items           []OrderItem     `json:"items"`
	Status          Status          `json:"status"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	Total           decimal.Decimal `json:"total"`
	CreatedAt       time.Time       `json:"created_at"`
	SentToKitchenAt time.Time       `json:"sent_to_kitchen_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ItemStatus resolves the effective status of the item at index i: the
// item's own status when set, else the order-level status.
func (o Order) ItemStatus(i int) Status {
	if i < 0 || i >= len(o.Items) {
		return o.Status
	}
	if s := o.Items[i].Status; s != "" {
		return s
	}
	return o.Status
}

// ItemRef identifies one item inside one order. ItemIndex is the position in
// the order's full item slice; -1 refers to the order as a whole.
type ItemRef struct {
	OrderID   uuid.UUID `json:"order_id"`
	ItemIndex int       `json:"item_index"`
}
