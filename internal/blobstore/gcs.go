package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"

	"github.com/miguelurquijo/menuda/internal/apperr"
)

// GCS uploads attachments to a Google Cloud Storage bucket and returns
// absolute URLs. It assumes Application Default Credentials are configured.
type GCS struct {
	client *storage.Client
	bucket string
}

// NewGCS creates a GCS backend over an existing client.
func NewGCS(client *storage.Client, bucket string) *GCS {
	return &GCS{client: client, bucket: bucket}
}

// Save uploads data under uploads/<owner>/<unique name> and returns the
// public object URL.
func (g *GCS) Save(ctx context.Context, data []byte, ownerID, filename, contentType string) (string, error) {
	const op = "blobstore.GCS.Save"

	if !validOwner(ownerID) {
		return "", apperr.Validation(op, "Invalid user ID")
	}

	key := objectKey(ownerID, filename)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := g.client.Bucket(g.bucket).Object(key).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return "", apperr.Storage(op, fmt.Errorf("copy to GCS writer: %w", err))
	}

	// Close finalizes the upload; errors here mean the object was not stored.
	if err := w.Close(); err != nil {
		return "", apperr.Storage(op, fmt.Errorf("finalize upload: %w", err))
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, key), nil
}
