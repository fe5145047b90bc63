// Package handlers implements the HTTP endpoints of the finance API. Each
// resource gets one handler struct over a repository interface, so tests can
// swap in mocks.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/miguelurquijo/menuda/internal/api/middleware"
	"github.com/miguelurquijo/menuda/internal/store"
)

// UserRepository is the slice of the store the users handler needs.
type UserRepository interface {
	CheckOrCreate(ctx context.Context, email, name, picture string) (string, error)
	Get(ctx context.Context, userID string) (store.UserRow, error)
}

// UsersHandler handles user endpoints.
type UsersHandler struct {
	repo UserRepository
	log  zerolog.Logger
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(repo UserRepository, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{repo: repo, log: log}
}

// CheckUser handles POST /api/users/check: upsert-by-email returning the
// user's id. An existing user gets name and picture refreshed.
func (h *UsersHandler) CheckUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Missing required user data")
		return
	}

	userID, err := h.repo.CheckOrCreate(r.Context(), req.Email, req.Name, req.Picture)
	if err != nil {
		h.log.Error().Err(err).Str("email", req.Email).Msg("Failed to check user")
		middleware.WriteAppError(w, err)
		return
	}

	middleware.WriteSuccess(w, http.StatusOK, map[string]any{"user_id": userID})
}

// GetUser handles GET /api/users/{id}.
func (h *UsersHandler) GetUser(w http.ResponseWriter, r *http.Request, userID string) {
	user, err := h.repo.Get(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to get user")
		middleware.WriteAppError(w, err)
		return
	}

	middleware.WriteSuccess(w, http.StatusOK, map[string]any{"data": user})
}
