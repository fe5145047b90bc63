package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/miguelurquijo/menuda/internal/api/middleware"
)

// InvoiceProcessor runs the receipt extraction pipeline.
type InvoiceProcessor interface {
	Process(ctx context.Context, ownerID string, file io.Reader, filename string) (map[string]any, error)
}

// InvoicesHandler handles receipt extraction requests.
type InvoicesHandler struct {
	pipeline InvoiceProcessor
	log      zerolog.Logger
}

// NewInvoicesHandler creates a new invoices handler.
func NewInvoicesHandler(pipeline InvoiceProcessor, log zerolog.Logger) *InvoicesHandler {
	return &InvoicesHandler{pipeline: pipeline, log: log}
}

// Process handles POST /api/invoices/process: multipart form with `invoice`
// and `user_id`. The extracted fields come back to the client; nothing is
// persisted here.
func (h *InvoicesHandler) Process(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "No invoice file provided")
		return
	}

	file, header, err := r.FormFile("invoice")
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "No invoice file provided")
		return
	}
	defer file.Close()

	ownerID := r.FormValue("user_id")

	fields, err := h.pipeline.Process(r.Context(), ownerID, file, header.Filename)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", ownerID).Msg("Failed to process invoice")
		middleware.WriteAppError(w, err)
		return
	}

	middleware.WriteSuccess(w, http.StatusOK, map[string]any{
		"message": "Invoice processed successfully",
		"data":    fields,
	})
}
