package handlers

import (
	"io"
	"net/http"
	"path"

	"github.com/rs/zerolog"

	"github.com/miguelurquijo/menuda/internal/api/middleware"
	"github.com/miguelurquijo/menuda/internal/attachment"
	"github.com/miguelurquijo/menuda/internal/blobstore"
)

// maxUploadBytes caps multipart parsing memory for attachment and invoice
// uploads.
const maxUploadBytes = 32 << 20

// AttachmentsHandler handles attachment uploads.
type AttachmentsHandler struct {
	blobs blobstore.Store
	log   zerolog.Logger
}

// NewAttachmentsHandler creates a new attachments handler.
func NewAttachmentsHandler(blobs blobstore.Store, log zerolog.Logger) *AttachmentsHandler {
	return &AttachmentsHandler{blobs: blobs, log: log}
}

// Upload handles POST /api/attachments/upload: multipart form with `file`
// and `user_id`. The stored file lands under the owner's prefix and the
// response carries its url, classified type, and stored filename.
func (h *AttachmentsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "No file provided")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		middleware.WriteError(w, http.StatusBadRequest, "No file selected")
		return
	}

	ownerID := r.FormValue("user_id")
	if ownerID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", ownerID).Msg("Failed to read upload")
		middleware.WriteError(w, http.StatusInternalServerError, "Server error occurred")
		return
	}

	contentType := header.Header.Get("Content-Type")

	url, err := h.blobs.Save(r.Context(), data, ownerID, header.Filename, contentType)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", ownerID).Str("filename", header.Filename).Msg("Failed to store attachment")
		middleware.WriteAppError(w, err)
		return
	}

	middleware.WriteSuccess(w, http.StatusOK, map[string]any{
		"message": "File uploaded successfully",
		"data": map[string]any{
			"url":      url,
			"type":     attachment.FromContentType(contentType, header.Filename),
			"filename": path.Base(url),
		},
	})
}
