package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chapa-pos/api/internal/handler"
	"github.com/chapa-pos/api/internal/pos"
)

func setupReportsRouter(orders []pos.Order, catalog *mockProductStore) *chi.Mux {
	mock := &mockOrderStore{listFn: func() []pos.Order { return orders }}
	h := handler.NewReportsHandler(mock, catalog)
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func decodeSummary(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestReportsSummary_Empty(t *testing.T) {
	router := setupReportsRouter(nil, newMockProductStore())

	rr := doRequest(t, router, "GET", "/reports/summary", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}
	resp := decodeSummary(t, rr)
	if resp["order_count"] != float64(0) {
		t.Errorf("order_count: got %v, want 0", resp["order_count"])
	}
	if resp["gross_revenue"] != "0.00" {
		t.Errorf("gross_revenue: got %v, want 0.00", resp["gross_revenue"])
	}
}

func TestReportsSummary_Totals(t *testing.T) {
	catalog := newMockProductStore()
	burger := seedProduct(catalog, "X-Burger", 18.90, "lanches")
	burger.CostPrice = decimal.NewFromFloat(7.50)
	catalog.products[burger.ID] = burger

	now := time.Now()
	orders := []pos.Order{
		{
			ID: uuid.New(),
			Items: []pos.OrderItem{
				{ProductID: burger.ID, ProductName: "X-Burger", Quantity: 2, UnitPrice: decimal.NewFromFloat(18.90), Category: "lanches"},
			},
			Status:        pos.StatusPago,
			PaymentMethod: pos.PaymentDinheiro,
			Total:         decimal.NewFromFloat(37.80),
			CreatedAt:     now,
		},
		{
			ID: uuid.New(),
			Items: []pos.OrderItem{
				{ProductID: burger.ID, ProductName: "X-Burger", Quantity: 1, UnitPrice: decimal.NewFromFloat(18.90), Category: "lanches"},
			},
			Status:        pos.StatusConcluido,
			PaymentMethod: "CARTAO_CREDITO",
			Total:         decimal.NewFromFloat(18.90),
			CreatedAt:     now,
		},
	}
	router := setupReportsRouter(orders, catalog)

	rr := doRequest(t, router, "GET", "/reports/summary", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}
	resp := decodeSummary(t, rr)

	if resp["order_count"] != float64(2) {
		t.Errorf("order_count: got %v, want 2", resp["order_count"])
	}
	if resp["gross_revenue"] != "56.70" {
		t.Errorf("gross_revenue: got %v, want 56.70", resp["gross_revenue"])
	}
	// 3 burgers at 7.50 cost
	if resp["cost_of_goods"] != "22.50" {
		t.Errorf("cost_of_goods: got %v, want 22.50", resp["cost_of_goods"])
	}
	if resp["net_profit"] != "34.20" {
		t.Errorf("net_profit: got %v, want 34.20", resp["net_profit"])
	}

	payments := resp["payment_summary"].([]interface{})
	if len(payments) != 2 {
		t.Fatalf("expected 2 payment rows, got %d", len(payments))
	}
	// Sorted by method name: CREDITO before DINHEIRO. The legacy spelling
	// CARTAO_CREDITO is folded into CREDITO.
	first := payments[0].(map[string]interface{})
	if first["payment_method"] != "CREDITO" {
		t.Errorf("first payment method: got %v, want CREDITO", first["payment_method"])
	}

	top := resp["top_products"].([]interface{})
	if len(top) != 1 {
		t.Fatalf("expected 1 ranked product, got %d", len(top))
	}
	rank := top[0].(map[string]interface{})
	if rank["quantity_sold"] != float64(3) {
		t.Errorf("quantity_sold: got %v, want 3", rank["quantity_sold"])
	}
	if rank["total_revenue"] != "56.70" {
		t.Errorf("total_revenue: got %v, want 56.70", rank["total_revenue"])
	}
}

func TestReportsSummary_DateRangeFilters(t *testing.T) {
	catalog := newMockProductStore()
	burger := seedProduct(catalog, "X-Burger", 18.90, "lanches")

	old := pos.Order{
		ID: uuid.New(),
		Items: []pos.OrderItem{
			{ProductID: burger.ID, ProductName: "X-Burger", Quantity: 1, UnitPrice: decimal.NewFromFloat(18.90), Category: "lanches"},
		},
		Status:        pos.StatusPago,
		PaymentMethod: pos.PaymentPix,
		Total:         decimal.NewFromFloat(18.90),
		CreatedAt:     time.Now().AddDate(0, 0, -60),
	}
	router := setupReportsRouter([]pos.Order{old}, catalog)

	// Default window is the last 30 days, so the 60-day-old order is out.
	rr := doRequest(t, router, "GET", "/reports/summary", nil)
	resp := decodeSummary(t, rr)
	if resp["order_count"] != float64(0) {
		t.Errorf("order_count in default window: got %v, want 0", resp["order_count"])
	}

	start := time.Now().AddDate(0, 0, -90).Format("2006-01-02")
	end := time.Now().Format("2006-01-02")
	rr = doRequest(t, router, "GET", "/reports/summary?start_date="+start+"&end_date="+end, nil)
	resp = decodeSummary(t, rr)
	if resp["order_count"] != float64(1) {
		t.Errorf("order_count in wide window: got %v, want 1", resp["order_count"])
	}
}

func TestReportsSummary_InvalidDates(t *testing.T) {
	router := setupReportsRouter(nil, newMockProductStore())

	rr := doRequest(t, router, "GET", "/reports/summary?start_date=20-01-2026", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("malformed date status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}

	rr = doRequest(t, router, "GET", "/reports/summary?start_date=2026-02-01&end_date=2026-01-01", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("inverted range status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}
