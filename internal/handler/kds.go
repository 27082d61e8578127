package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chapa-pos/api/internal/pos"
)

// GroupingReader reports the current KDS grouping mode. Satisfied by
// *store.SettingsStore.
type GroupingReader interface {
	Grouping() pos.GroupingMode
}

// KDSHandler serves the kitchen display board.
type KDSHandler struct {
	orders   OrderStore
	settings GroupingReader
}

// NewKDSHandler creates a new KDSHandler.
func NewKDSHandler(orders OrderStore, settings GroupingReader) *KDSHandler {
	return &KDSHandler{orders: orders, settings: settings}
}

// RegisterRoutes registers the KDS endpoint on the given Chi router.
func (h *KDSHandler) RegisterRoutes(r chi.Router) {
	r.Get("/kds", h.Board)
}

// Board projects the current orders into the three-column board. The
// grouping mode is read per request, so a settings change shows up on the
// next poll without a restart.
func (h *KDSHandler) Board(w http.ResponseWriter, r *http.Request) {
	board := pos.ProjectBoard(h.orders.List(), h.settings.Grouping())
	writeJSON(w, http.StatusOK, board)
}
