package handlers

import (
	"net/http"
	"time"

	"github.com/miguelurquijo/menuda/internal/api/middleware"
)

// Health handles GET /health. Liveness only; it does not touch the database.
func Health(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}
