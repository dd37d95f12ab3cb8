package category

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Lister returns the category names a transaction can be filed under.
type Lister interface {
	Categories(ctx context.Context) ([]string, error)
}

type Handler struct {
	lister Lister
}

func NewHandler(lister Lister) *Handler {
	return &Handler{lister: lister}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
}

type listResponse struct {
	Categories []string `json:"categories"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	names, err := h.lister.Categories(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if names == nil {
		names = []string{}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(listResponse{Categories: names}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
