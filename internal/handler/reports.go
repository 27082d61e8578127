package handler

import (
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chapa-pos/api/internal/pos"
)

// ReportsHandler computes sales summaries from the order history. Revenue
// follows the order snapshots; cost of goods follows the current catalog,
// so margin numbers shift when cost prices are re-entered.
type ReportsHandler struct {
	orders  OrderStore
	catalog ProductStore
}

// NewReportsHandler creates a new ReportsHandler.
func NewReportsHandler(orders OrderStore, catalog ProductStore) *ReportsHandler {
	return &ReportsHandler{orders: orders, catalog: catalog}
}

// RegisterRoutes registers report endpoints on the given Chi router.
func (h *ReportsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/reports/summary", h.Summary)
}

// --- Response types ---

type paymentSummaryResponse struct {
	PaymentMethod string `json:"payment_method"`
	OrderCount    int    `json:"order_count"`
	TotalAmount   string `json:"total_amount"`
}

type productSalesResponse struct {
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	QuantitySold int64     `json:"quantity_sold"`
	TotalRevenue string    `json:"total_revenue"`
}

type summaryResponse struct {
	OrderCount     int                      `json:"order_count"`
	GrossRevenue   string                   `json:"gross_revenue"`
	CostOfGoods    string                   `json:"cost_of_goods"`
	NetProfit      string                   `json:"net_profit"`
	PaymentSummary []paymentSummaryResponse `json:"payment_summary"`
	TopProducts    []productSalesResponse   `json:"top_products"`
}

// --- Handlers ---

// Summary returns aggregate sales figures, optionally restricted to a
// start_date/end_date range (inclusive dates, venue local time).
func (h *ReportsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	limit := 10
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > 100 {
		limit = 100
	}

	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		log.Printf("ERROR: list products for report: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	costByProduct := make(map[uuid.UUID]decimal.Decimal, len(products))
	for _, p := range products {
		costByProduct[p.ID] = p.CostPrice
	}

	type productAgg struct {
		name     string
		quantity int64
		revenue  decimal.Decimal
	}
	type paymentAgg struct {
		count int
		total decimal.Decimal
	}

	var (
		orderCount int
		gross      = decimal.Zero
		cogs       = decimal.Zero
		byProduct  = map[uuid.UUID]*productAgg{}
		byPayment  = map[pos.PaymentMethod]*paymentAgg{}
	)

	for _, o := range h.orders.List() {
		if o.CreatedAt.Before(start) || !o.CreatedAt.Before(end) {
			continue
		}

		orderCount++
		gross = gross.Add(o.Total)

		method := pos.NormalizePayment(string(o.PaymentMethod))
		pa := byPayment[method]
		if pa == nil {
			pa = &paymentAgg{}
			byPayment[method] = pa
		}
		pa.count++
		pa.total = pa.total.Add(o.Total)

		for _, item := range o.Items {
			qty := decimal.NewFromInt32(item.Quantity)
			cogs = cogs.Add(costByProduct[item.ProductID].Mul(qty))

			agg := byProduct[item.ProductID]
			if agg == nil {
				agg = &productAgg{name: item.ProductName}
				byProduct[item.ProductID] = agg
			}
			agg.quantity += int64(item.Quantity)
			agg.revenue = agg.revenue.Add(item.Subtotal())
		}
	}

	payments := make([]paymentSummaryResponse, 0, len(byPayment))
	for method, agg := range byPayment {
		payments = append(payments, paymentSummaryResponse{
			PaymentMethod: string(method),
			OrderCount:    agg.count,
			TotalAmount:   agg.total.StringFixed(2),
		})
	}
	sort.Slice(payments, func(i, j int) bool {
		return payments[i].PaymentMethod < payments[j].PaymentMethod
	})

	top := make([]productSalesResponse, 0, len(byProduct))
	for id, agg := range byProduct {
		top = append(top, productSalesResponse{
			ProductID:    id,
			ProductName:  agg.name,
			QuantitySold: agg.quantity,
			TotalRevenue: agg.revenue.StringFixed(2),
		})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].QuantitySold != top[j].QuantitySold {
			return top[i].QuantitySold > top[j].QuantitySold
		}
		return top[i].ProductName < top[j].ProductName
	})
	if len(top) > limit {
		top = top[:limit]
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		OrderCount:     orderCount,
		GrossRevenue:   gross.StringFixed(2),
		CostOfGoods:    cogs.StringFixed(2),
		NetProfit:      gross.Sub(cogs).StringFixed(2),
		PaymentSummary: payments,
		TopProducts:    top,
	})
}

// --- Helpers ---

// parseDateRange parses start_date and end_date query params as local
// calendar dates. Defaults to the last 30 days. The returned end is
// exclusive (midnight after end_date).
func parseDateRange(r *http.Request) (time.Time, time.Time, error) {
	const layout = "2006-01-02"
	loc := time.Local

	now := time.Now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	start := today.AddDate(0, 0, -30)
	end := today.AddDate(0, 0, 1)

	if s := r.URL.Query().Get("start_date"); s != "" {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date format: %w", err)
		}
		start = t
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date format: %w", err)
		}
		end = t.AddDate(0, 0, 1)
	}

	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date must be before end_date")
	}

	return start, end, nil
}
