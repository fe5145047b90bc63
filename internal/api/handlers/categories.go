package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/miguelurquijo/menuda/internal/api/middleware"
	"github.com/miguelurquijo/menuda/internal/store"
)

// CategoryRepository is the slice of the store the categories handler needs.
type CategoryRepository interface {
	List(ctx context.Context, ownerID string) ([]store.CategoryRow, error)
	Create(ctx context.Context, ownerID, name string) (store.CategoryRow, error)
}

// CategoriesHandler handles category endpoints.
type CategoriesHandler struct {
	repo CategoryRepository
	log  zerolog.Logger
}

// NewCategoriesHandler creates a new categories handler.
func NewCategoriesHandler(repo CategoryRepository, log zerolog.Logger) *CategoriesHandler {
	return &CategoriesHandler{repo: repo, log: log}
}

// ListCategories handles GET /api/categories?user_id=
func (h *CategoriesHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("user_id")

	categories, err := h.repo.List(r.Context(), ownerID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", ownerID).Msg("Failed to list categories")
		middleware.WriteAppError(w, err)
		return
	}

	middleware.WriteSuccess(w, http.StatusOK, map[string]any{
		"data":  categories,
		"count": len(categories),
	})
}

// CreateCategory handles POST /api/categories. Creating an existing
// (owner, name) category returns the existing row.
func (h *CategoriesHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OwnerID string `json:"user_id"`
		Name    string `json:"category_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.repo.Create(r.Context(), req.OwnerID, req.Name)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", req.OwnerID).Msg("Failed to create category")
		middleware.WriteAppError(w, err)
		return
	}

	middleware.WriteSuccess(w, http.StatusOK, map[string]any{"data": category})
}
