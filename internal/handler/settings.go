package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chapa-pos/api/internal/pos"
)

// SettingsStore defines the settings methods needed by the settings
// handlers. Satisfied by *store.SettingsStore.
type SettingsStore interface {
	Grouping() pos.GroupingMode
	SetGrouping(ctx context.Context, mode pos.GroupingMode)
}

// SettingsHandler handles the venue settings endpoints.
type SettingsHandler struct {
	store SettingsStore
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(store SettingsStore) *SettingsHandler {
	return &SettingsHandler{store: store}
}

// RegisterRoutes registers the read endpoint on the given Chi router.
func (h *SettingsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/settings", h.Get)
}

// RegisterAdminRoutes registers the write endpoint.
func (h *SettingsHandler) RegisterAdminRoutes(r chi.Router) {
	r.Put("/settings", h.Update)
}

type settingsResponse struct {
	OrderGrouping pos.GroupingMode `json:"order_grouping"`
}

type updateSettingsRequest struct {
	OrderGrouping string `json:"order_grouping"`
}

// Get returns the current settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, settingsResponse{OrderGrouping: h.store.Grouping()})
}

// Update changes the KDS grouping mode.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	mode := pos.GroupingMode(req.OrderGrouping)
	if !mode.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order_grouping"})
		return
	}

	h.store.SetGrouping(r.Context(), mode)
	writeJSON(w, http.StatusOK, settingsResponse{OrderGrouping: mode})
}
