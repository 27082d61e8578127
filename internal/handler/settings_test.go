package handler_test

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/chapa-pos/api/internal/handler"
	"github.com/chapa-pos/api/internal/pos"
	"github.com/chapa-pos/api/internal/store"
)

func setupSettingsRouter(settings *store.SettingsStore) *chi.Mux {
	h := handler.NewSettingsHandler(settings)
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	h.RegisterAdminRoutes(r)
	return r
}

func TestSettingsGet_Default(t *testing.T) {
	router := setupSettingsRouter(store.NewSettingsStore(nil))

	rr := doRequest(t, router, "GET", "/settings", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}
	resp := decodeMap(t, rr)
	if resp["order_grouping"] != "SINGLE" {
		t.Errorf("order_grouping: got %v, want SINGLE", resp["order_grouping"])
	}
}

func TestSettingsUpdate_RoundTrip(t *testing.T) {
	settings := store.NewSettingsStore(nil)
	router := setupSettingsRouter(settings)

	rr := doRequest(t, router, "PUT", "/settings", map[string]string{
		"order_grouping": "SPLIT_BY_PREP_TIME",
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}
	if settings.Grouping() != pos.GroupingSplitByPrepTime {
		t.Errorf("store grouping: got %s", settings.Grouping())
	}

	rr = doRequest(t, router, "GET", "/settings", nil)
	resp := decodeMap(t, rr)
	if resp["order_grouping"] != "SPLIT_BY_PREP_TIME" {
		t.Errorf("order_grouping after update: got %v", resp["order_grouping"])
	}
}

func TestSettingsUpdate_InvalidMode(t *testing.T) {
	settings := store.NewSettingsStore(nil)
	router := setupSettingsRouter(settings)

	rr := doRequest(t, router, "PUT", "/settings", map[string]string{
		"order_grouping": "PAIRS",
	})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if settings.Grouping() != pos.GroupingSingle {
		t.Errorf("invalid mode reached the store: %s", settings.Grouping())
	}
}
