// Package invoice extracts transaction fields from a photographed receipt by
// sending the image to a vision model and parsing its free-text reply.
package invoice

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/miguelurquijo/menuda/internal/apperr"
)

// Pipeline runs one synchronous extraction per call. It holds no state
// between invocations.
type Pipeline struct {
	model VisionModel
	log   zerolog.Logger
}

// NewPipeline creates an extraction pipeline over the given vision model.
func NewPipeline(model VisionModel, log zerolog.Logger) *Pipeline {
	return &Pipeline{model: model, log: log}
}

// Process stages the uploaded receipt image, submits it to the vision model,
// and returns a map holding the five extracted fields (title, amount, date,
// vendor, category), each defaulted to "" when the model omitted it. The
// result is not persisted; creating the transaction is the caller's move.
func (p *Pipeline) Process(ctx context.Context, ownerID string, file io.Reader, filename string) (map[string]any, error) {
	const op = "invoice.Pipeline.Process"

	if ownerID == "" {
		return nil, apperr.Validation(op, "User ID is required")
	}
	if file == nil || filename == "" {
		return nil, apperr.Validation(op, "No invoice file provided")
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, apperr.Storage(op, fmt.Errorf("reading upload: %w", err))
	}
	if len(data) == 0 {
		return nil, apperr.Validation(op, "No invoice file selected")
	}

	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}

	// Stage under a unique scratch name, and remove it on every exit path
	// once the model call has finished.
	scratch := filepath.Join(os.TempDir(), "invoice_"+strings.ReplaceAll(uuid.NewString(), "-", "")+ext)
	if err := os.WriteFile(scratch, data, 0o600); err != nil {
		return nil, apperr.Storage(op, fmt.Errorf("staging scratch file: %w", err))
	}
	defer func() {
		if err := os.Remove(scratch); err != nil {
			p.log.Warn().Err(err).Str("path", scratch).Msg("Failed to remove scratch file")
		}
	}()

	staged, err := os.ReadFile(scratch)
	if err != nil {
		return nil, apperr.Storage(op, fmt.Errorf("reading scratch file: %w", err))
	}

	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	reply, err := p.model.Describe(ctx, systemPrompt, userPrompt, staged, mimeType)
	if err != nil {
		p.log.Error().Err(err).Str("user_id", ownerID).Msg("Vision model call failed")
		return nil, apperr.Upstream(op, err.Error(), err)
	}

	fields, err := ParseReply(reply)
	if err != nil {
		p.log.Error().Err(err).Str("user_id", ownerID).Str("reply", reply).Msg("Unparseable model reply")
		return nil, apperr.Parse(op, err)
	}

	return normalizeFields(fields), nil
}
