package pos

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const receiptDivider = "------------------------"

// Receipt renders an order as printable text. With kitchenOnly set it
// produces the preparation ticket: prices, totals and payment lines are
// suppressed and only kitchen-relevant items are listed. Received/change
// lines appear only on cash receipts.
func Receipt(o Order, change, received decimal.Decimal, kitchenOnly bool) string {
	var b strings.Builder

	if kitchenOnly {
		b.WriteString("--- PEDIDO COZINHA ---\n")
	} else {
		b.WriteString("--- RECIBO DE VENDA ---\n")
	}
	fmt.Fprintf(&b, "Pedido #%s\n", strings.ToUpper(o.ID.String()))
	fmt.Fprintf(&b, "Data: %s\n", o.CreatedAt.Format("02/01/2006 15:04:05"))
	b.WriteString(receiptDivider + "\n")

	items := o.Items
	if kitchenOnly {
		items = KitchenItems(o)
	}
	for _, item := range items {
		if kitchenOnly {
			fmt.Fprintf(&b, "%dx %s\n", item.Quantity, item.ProductName)
		} else {
			fmt.Fprintf(&b, "%dx %s - %s\n", item.Quantity, item.ProductName, formatBRL(item.UnitPrice))
		}
		if item.Notes != "" {
			fmt.Fprintf(&b, "  - Obs: %s\n", item.Notes)
		}
	}

	b.WriteString(receiptDivider + "\n")

	if kitchenOnly {
		return b.String()
	}

	fmt.Fprintf(&b, "Total: %s\n", formatBRL(o.Total))
	fmt.Fprintf(&b, "Pagamento: %s\n", o.PaymentMethod)
	if o.PaymentMethod == PaymentDinheiro {
		fmt.Fprintf(&b, "Recebido: %s\n", formatBRL(received))
		fmt.Fprintf(&b, "Troco: %s\n", formatBRL(change))
	}
	b.WriteString(receiptDivider + "\n")
	b.WriteString("Obrigado!")

	return b.String()
}

// formatBRL renders a decimal as Brazilian currency: R$ 12,34.
func formatBRL(d decimal.Decimal) string {
	return "R$ " + strings.ReplaceAll(d.StringFixed(2), ".", ",")
}
