package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miguelurquijo/menuda/internal/apperr"
)

// The owner guard fires before the client is touched, so a nil client is
// enough to exercise the rejection path.
func TestGCSSaveRejectsTraversalOwner(t *testing.T) {
	store := NewGCS(nil, "bucket")

	for _, owner := range []string{"..", "../outside", "a/b", ""} {
		_, err := store.Save(context.Background(), []byte("x"), owner, "x.txt", "")
		require.Error(t, err, "owner %q", owner)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "owner %q", owner)
	}
}
