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

	"github.com/chapa-pos/api/internal/pos"
)

// ProductStore defines the database methods needed by product handlers.
// Satisfied by *database.ProductRepo; narrow interface for testability.
type ProductStore interface {
	ListProducts(ctx context.Context) ([]pos.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (pos.Product, error)
	CreateProduct(ctx context.Context, p pos.Product) (pos.Product, error)
	UpdateProduct(ctx context.Context, p pos.Product) (pos.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// ProductHandler handles catalog CRUD endpoints.
type ProductHandler struct {
	store ProductStore
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(store ProductStore) *ProductHandler {
	return &ProductHandler{store: store}
}

// RegisterRoutes registers catalog endpoints on the given Chi router.
// Write operations are expected to be wrapped in a RequireRole("ADMIN")
// group by the caller.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
}

// RegisterAdminRoutes registers the write endpoints.
func (h *ProductHandler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// --- Request / Response types ---

type productRequest struct {
	Name      string `json:"name"`
	Price     string `json:"price"`
	CostPrice string `json:"cost_price"`
	Stock     int32  `json:"stock"`
	Category  string `json:"category"`
	Emoji     string `json:"emoji"`
}

type productResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	CostPrice string    `json:"cost_price"`
	Stock     int32     `json:"stock"`
	Category  string    `json:"category"`
	Emoji     string    `json:"emoji"`
}

func toProductResponse(p pos.Product) productResponse {
	return productResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price.StringFixed(2),
		CostPrice: p.CostPrice.StringFixed(2),
		Stock:     p.Stock,
		Category:  p.Category,
		Emoji:     p.Emoji,
	}
}

// --- Helpers ---

var errNegativePrice = errors.New("negative price")

func parsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if d.IsNegative() {
		return decimal.Decimal{}, errNegativePrice
	}
	return d, nil
}

// validateProductRequest parses the money fields and reports the first
// problem as a client-facing message. An empty cost_price defaults to zero.
func validateProductRequest(req productRequest) (pos.Product, string) {
	if req.Name == "" {
		return pos.Product{}, "name is required"
	}
	if req.Category == "" {
		return pos.Product{}, "category is required"
	}
	if req.Price == "" {
		return pos.Product{}, "price is required"
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		if errors.Is(err, errNegativePrice) {
			return pos.Product{}, "price must be >= 0"
		}
		return pos.Product{}, "invalid price"
	}

	cost := decimal.Zero
	if req.CostPrice != "" {
		cost, err = parsePrice(req.CostPrice)
		if err != nil {
			if errors.Is(err, errNegativePrice) {
				return pos.Product{}, "cost_price must be >= 0"
			}
			return pos.Product{}, "invalid cost_price"
		}
	}

	if req.Stock < 0 {
		return pos.Product{}, "stock must be >= 0"
	}

	return pos.Product{
		Name:      req.Name,
		Price:     price,
		CostPrice: cost,
		Stock:     req.Stock,
		Category:  req.Category,
		Emoji:     req.Emoji,
	}, ""
}

// --- Handlers ---

// List returns the full catalog.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.ListProducts(r.Context())
	if err != nil {
		log.Printf("ERROR: list products: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = toProductResponse(p)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single product by ID.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product ID"})
		return
	}

	product, err := h.store.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
			return
		}
		log.Printf("ERROR: get product: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// Create adds a new product to the catalog.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	p, msg := validateProductRequest(req)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	product, err := h.store.CreateProduct(r.Context(), p)
	if err != nil {
		log.Printf("ERROR: create product: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toProductResponse(product))
}

// Update modifies an existing product.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product ID"})
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	p, msg := validateProductRequest(req)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}
	p.ID = id

	product, err := h.store.UpdateProduct(r.Context(), p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
			return
		}
		log.Printf("ERROR: update product: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// Delete removes a product from the catalog. Orders keep their own
// snapshots, so deleting a product never touches order history.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product ID"})
		return
	}

	if err := h.store.DeleteProduct(r.Context(), id); err != nil {
		log.Printf("ERROR: delete product: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
