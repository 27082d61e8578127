package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/chapa-pos/api/internal/pos"
	"github.com/chapa-pos/api/internal/store"
)

// OrderStore defines the order state methods needed by order handlers.
// Satisfied by *store.OrderStore; narrow interface for testability.
type OrderStore interface {
	List() []pos.Order
	Get(id uuid.UUID) (pos.Order, error)
	AdvanceOrder(ctx context.Context, id uuid.UUID) (pos.Order, error)
	AdvanceItem(ctx context.Context, id uuid.UUID, itemIndex int) (pos.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status pos.Status) (pos.Order, error)
	Clear(ctx context.Context)
}

// OrderNotifier pushes order mutations to connected kitchen displays.
type OrderNotifier interface {
	OrderUpdated(o pos.Order)
}

// OrderHandler handles the order lifecycle endpoints.
type OrderHandler struct {
	store  OrderStore
	notify OrderNotifier
}

// NewOrderHandler creates a new OrderHandler. notify may be nil.
func NewOrderHandler(store OrderStore, notify OrderNotifier) *OrderHandler {
	return &OrderHandler{store: store, notify: notify}
}

// RegisterRoutes registers order endpoints on the given Chi router.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/advance", h.Advance)
	r.Post("/{id}/items/{index}/advance", h.AdvanceItem)
	r.Post("/{id}/pay", h.Pay)
}

// RegisterAdminRoutes registers the destructive endpoints.
func (h *OrderHandler) RegisterAdminRoutes(r chi.Router) {
	r.Delete("/", h.Clear)
}

// --- Handlers ---

// List returns all orders, oldest first, optionally filtered by status.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders := h.store.List()

	if statusParam := r.URL.Query().Get("status"); statusParam != "" {
		status := pos.Status(statusParam)
		if !status.Valid() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
			return
		}
		filtered := make([]pos.Order, 0, len(orders))
		for _, o := range orders {
			if o.Status == status {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}

	if orders == nil {
		orders = []pos.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// Get returns a single order by ID.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	order, err := h.store.Get(id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Advance moves the whole order to the next preparation status. Used by the
// KDS in SINGLE grouping mode; kitchen-relevant items move with the order.
func (h *OrderHandler) Advance(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	order, err := h.store.AdvanceOrder(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, "advance order", err)
		return
	}

	h.notifyUpdated(order)
	writeJSON(w, http.StatusOK, order)
}

// AdvanceItem moves a single item to the next preparation status. Used by
// the KDS in SPLIT_BY_PREP_TIME grouping mode. The index counts positions in
// the order's full item list, drinks and desserts included.
func (h *OrderHandler) AdvanceItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item index"})
		return
	}

	order, err := h.store.AdvanceItem(r.Context(), id, index)
	if err != nil {
		h.respondStoreError(w, "advance order item", err)
		return
	}

	h.notifyUpdated(order)
	writeJSON(w, http.StatusOK, order)
}

// Pay marks the order as settled.
func (h *OrderHandler) Pay(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	order, err := h.store.UpdateStatus(r.Context(), id, pos.StatusPago)
	if err != nil {
		h.respondStoreError(w, "pay order", err)
		return
	}

	h.notifyUpdated(order)
	writeJSON(w, http.StatusOK, order)
}

// Clear drops the full order history.
func (h *OrderHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.store.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// --- Helpers ---

func (h *OrderHandler) respondStoreError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, store.ErrOrderNotFound):
		log.Printf("%s: %v", op, err)
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
	case errors.Is(err, store.ErrItemNotFound):
		log.Printf("%s: %v", op, err)
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "order item not found"})
	default:
		log.Printf("ERROR: %s: %v", op, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func (h *OrderHandler) notifyUpdated(o pos.Order) {
	if h.notify != nil {
		h.notify.OrderUpdated(o)
	}
}
