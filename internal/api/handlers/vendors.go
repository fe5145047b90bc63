package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/miguelurquijo/menuda/internal/api/middleware"
	"github.com/miguelurquijo/menuda/internal/store"
)

// VendorRepository is the slice of the store the vendors handler needs.
type VendorRepository interface {
	List(ctx context.Context, ownerID string) ([]store.VendorRow, error)
	Create(ctx context.Context, ownerID, name, categoryID string) (store.VendorRow, error)
}

// VendorsHandler handles vendor endpoints.
type VendorsHandler struct {
	repo VendorRepository
	log  zerolog.Logger
}

// NewVendorsHandler creates a new vendors handler.
func NewVendorsHandler(repo VendorRepository, log zerolog.Logger) *VendorsHandler {
	return &VendorsHandler{repo: repo, log: log}
}

// ListVendors handles GET /api/vendors?user_id=
func (h *VendorsHandler) ListVendors(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("user_id")

	vendors, err := h.repo.List(r.Context(), ownerID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", ownerID).Msg("Failed to list vendors")
		middleware.WriteAppError(w, err)
		return
	}

	middleware.WriteSuccess(w, http.StatusOK, map[string]any{
		"data":  vendors,
		"count": len(vendors),
	})
}

// CreateVendor handles POST /api/vendors. Re-creating an existing
// (owner, name) vendor updates its category instead of duplicating.
func (h *VendorsHandler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OwnerID    string `json:"user_id"`
		Name       string `json:"vendor_name"`
		CategoryID string `json:"category_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	vendor, err := h.repo.Create(r.Context(), req.OwnerID, req.Name, req.CategoryID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", req.OwnerID).Msg("Failed to create vendor")
		middleware.WriteAppError(w, err)
		return
	}

	middleware.WriteSuccess(w, http.StatusOK, map[string]any{"data": vendor})
}
