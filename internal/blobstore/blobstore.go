// Package blobstore persists uploaded attachment files under an owner-scoped
// location and hands back a retrieval URL. Two interchangeable backends
// exist: local disk for development and Google Cloud Storage for production.
package blobstore

import (
	"context"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Store saves file bytes for one owner and returns the URL the file can be
// fetched from afterwards.
type Store interface {
	Save(ctx context.Context, data []byte, ownerID, filename, contentType string) (url string, err error)
}

// validOwner reports whether ownerID is safe to embed in a storage key.
// Separators and dot-dot sequences would let a crafted id escape the
// owner-scoped prefix, so they are refused outright.
func validOwner(ownerID string) bool {
	return ownerID != "" &&
		!strings.ContainsAny(ownerID, `/\`) &&
		!strings.Contains(ownerID, "..")
}

// uniqueName generates a collision-resistant object name, preserving the
// original file extension.
func uniqueName(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return strings.ReplaceAll(uuid.NewString(), "-", "") + ext
}

// objectKey builds the owner-scoped key both backends share.
func objectKey(ownerID, filename string) string {
	return path.Join("uploads", ownerID, uniqueName(filename))
}
