package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/chapa-pos/api/internal/cart"
	"github.com/chapa-pos/api/internal/pos"
)

// ProductGetter is the catalog lookup the cart needs when a line is added.
type ProductGetter interface {
	GetProduct(ctx context.Context, id uuid.UUID) (pos.Product, error)
}

// Checkouter turns a cart into a stored order. Satisfied by
// *service.CheckoutService.
type Checkouter interface {
	Checkout(ctx context.Context, c *cart.Cart) (pos.Order, error)
}

// CartHandler handles the per-terminal cart endpoints. Each terminal name
// owns one server-side cart; concurrent requests for the same terminal are
// serialized by the session registry.
type CartHandler struct {
	sessions *cart.Sessions
	catalog  ProductGetter
	checkout Checkouter
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(sessions *cart.Sessions, catalog ProductGetter, checkout Checkouter) *CartHandler {
	return &CartHandler{sessions: sessions, catalog: catalog, checkout: checkout}
}

// RegisterRoutes registers cart endpoints on the given Chi router.
// Expected to be mounted at /carts/{terminal}.
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Get)
	r.Post("/items", h.AddItem)
	r.Patch("/items/{productID}", h.UpdateItem)
	r.Delete("/items/{productID}", h.RemoveItem)
	r.Put("/payment", h.SetPayment)
	r.Post("/checkout", h.Checkout)
}

// --- Request / Response types ---

type addItemRequest struct {
	ProductID string `json:"product_id"`
}

type updateItemRequest struct {
	Delta *int32  `json:"delta"`
	Notes *string `json:"notes"`
}

type paymentRequest struct {
	Method         string `json:"method"`
	ReceivedAmount string `json:"received_amount"`
}

type cartLineResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	UnitPrice string    `json:"unit_price"`
	Quantity  int32     `json:"quantity"`
	Notes     string    `json:"notes,omitempty"`
	Subtotal  string    `json:"subtotal"`
}

type cartResponse struct {
	Lines          []cartLineResponse `json:"lines"`
	PaymentMethod  pos.PaymentMethod  `json:"payment_method"`
	ReceivedAmount string             `json:"received_amount"`
	Total          string             `json:"total"`
	Change         string             `json:"change"`
	Owed           string             `json:"owed"`
}

func toCartResponse(c *cart.Cart) cartResponse {
	lines := make([]cartLineResponse, len(c.Lines))
	for i, l := range c.Lines {
		lines[i] = cartLineResponse{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			UnitPrice: l.Product.Price.StringFixed(2),
			Quantity:  l.Quantity,
			Notes:     l.Notes,
			Subtotal:  l.Subtotal().StringFixed(2),
		}
	}
	return cartResponse{
		Lines:          lines,
		PaymentMethod:  c.PaymentMethod,
		ReceivedAmount: c.ReceivedAmount.StringFixed(2),
		Total:          c.Total().StringFixed(2),
		Change:         c.Change().StringFixed(2),
		Owed:           c.Owed().StringFixed(2),
	}
}

// --- Handlers ---

// Get returns the current cart for the terminal.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respondWithCart(w, r, http.StatusOK, func(c *cart.Cart) error { return nil })
}

// AddItem adds one unit of a product, merging into an existing line for the
// same product.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product_id"})
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
			return
		}
		log.Printf("ERROR: get product for cart: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.respondWithCart(w, r, http.StatusOK, func(c *cart.Cart) error {
		c.AddProduct(product)
		return nil
	})
}

// UpdateItem applies a quantity delta and/or replaces the line notes.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product ID"})
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Delta == nil && req.Notes == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "delta or notes is required"})
		return
	}

	h.respondWithCart(w, r, http.StatusOK, func(c *cart.Cart) error {
		if req.Delta != nil {
			c.UpdateQuantity(productID, *req.Delta)
		}
		if req.Notes != nil {
			c.UpdateNotes(productID, *req.Notes)
		}
		return nil
	})
}

// RemoveItem drops the line for the product.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product ID"})
		return
	}

	h.respondWithCart(w, r, http.StatusOK, func(c *cart.Cart) error {
		c.RemoveItem(productID)
		return nil
	})
}

// SetPayment selects the payment method and, for cash, the received amount.
func (h *CartHandler) SetPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	method := pos.NormalizePayment(req.Method)
	if !method.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payment method"})
		return
	}

	received := decimal.Zero
	if req.ReceivedAmount != "" {
		var err error
		received, err = decimal.NewFromString(req.ReceivedAmount)
		if err != nil || received.IsNegative() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid received_amount"})
			return
		}
	}

	h.respondWithCart(w, r, http.StatusOK, func(c *cart.Cart) error {
		c.SelectPayment(method)
		if method == pos.PaymentDinheiro {
			c.SetReceivedAmount(received)
		}
		return nil
	})
}

// Checkout finalizes the cart into an order. The cart is cleared only when
// checkout succeeds.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	terminal := chi.URLParam(r, "terminal")

	var order pos.Order
	err := h.sessions.Do(terminal, func(c *cart.Cart) error {
		var err error
		order, err = h.checkout.Checkout(r.Context(), c)
		return err
	})
	if err != nil {
		if errors.Is(err, cart.ErrEmptyCart) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "cart is empty"})
			return
		}
		log.Printf("ERROR: checkout: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// --- Helpers ---

func (h *CartHandler) respondWithCart(w http.ResponseWriter, r *http.Request, status int, fn func(c *cart.Cart) error) {
	terminal := chi.URLParam(r, "terminal")

	var resp cartResponse
	err := h.sessions.Do(terminal, func(c *cart.Cart) error {
		if err := fn(c); err != nil {
			return err
		}
		resp = toCartResponse(c)
		return nil
	})
	if err != nil {
		log.Printf("ERROR: cart operation: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, status, resp)
}
