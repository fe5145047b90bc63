package blobstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/miguelurquijo/menuda/internal/apperr"
)

// Local writes uploads to a directory on disk and returns path-style URLs.
// The API serves the root directory at /uploads/.
type Local struct {
	root string
}

// NewLocal creates a local backend rooted at dir.
func NewLocal(dir string) *Local {
	return &Local{root: dir}
}

// Save writes data under <root>/<owner>/<unique name> and returns the
// relative URL "/uploads/<owner>/<name>".
func (l *Local) Save(ctx context.Context, data []byte, ownerID, filename, contentType string) (string, error) {
	const op = "blobstore.Local.Save"

	if !validOwner(ownerID) {
		return "", apperr.Validation(op, "Invalid user ID")
	}

	key := objectKey(ownerID, filename)
	// key is "uploads/<owner>/<name>"; on disk the root replaces "uploads".
	rel, err := filepath.Rel("uploads", filepath.FromSlash(key))
	if err != nil {
		return "", apperr.Storage(op, fmt.Errorf("building path for %q: %w", key, err))
	}
	dst := filepath.Join(l.root, rel)

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", apperr.Storage(op, fmt.Errorf("creating owner dir: %w", err))
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", apperr.Storage(op, fmt.Errorf("writing %q: %w", dst, err))
	}

	return "/" + key, nil
}
