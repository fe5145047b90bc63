package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vendorResult(id, name, categoryID, categoryName string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"vendor_id", "vendor_name", "category_id", "category_name", "created_at", "updated_at",
	}).AddRow(id, name, categoryID, categoryName, now, now)
}

// Re-creating an existing (owner, name) vendor must go through the update
// branch of the conflict clause: the original row keeps its id and moves to
// the newly supplied category.
func TestCreateVendorAgainMovesCategory(t *testing.T) {
	st, mock := mockStore(t)
	repo := NewVendorRepo(st)
	ctx := context.Background()

	upsert := regexp.QuoteMeta("ON CONFLICT (user_id, vendor_name) WHERE is_active DO UPDATE")
	readBack := regexp.QuoteMeta("SELECT v.vendor_id, v.vendor_name, v.category_id, c.category_name")

	mock.ExpectBegin()
	mock.ExpectQuery(upsert).
		WithArgs(sqlmock.AnyArg(), "user-1", "Cafe", "cat-1").
		WillReturnRows(sqlmock.NewRows([]string{"vendor_id"}).AddRow("ven-1"))
	mock.ExpectQuery(readBack).
		WithArgs("ven-1").
		WillReturnRows(vendorResult("ven-1", "Cafe", "cat-1", "Food"))
	mock.ExpectCommit()

	first, err := repo.Create(ctx, "user-1", "Cafe", "cat-1")
	require.NoError(t, err)
	assert.Equal(t, "cat-1", first.CategoryID)

	// Same vendor name, different category: the conflict resolves to the
	// existing id and the read-back reflects the new category.
	mock.ExpectBegin()
	mock.ExpectQuery(upsert).
		WithArgs(sqlmock.AnyArg(), "user-1", "Cafe", "cat-2").
		WillReturnRows(sqlmock.NewRows([]string{"vendor_id"}).AddRow("ven-1"))
	mock.ExpectQuery(readBack).
		WithArgs("ven-1").
		WillReturnRows(vendorResult("ven-1", "Cafe", "cat-2", "Transportation"))
	mock.ExpectCommit()

	second, err := repo.Create(ctx, "user-1", "Cafe", "cat-2")
	require.NoError(t, err)

	assert.Equal(t, first.VendorID, second.VendorID)
	assert.Equal(t, "cat-2", second.CategoryID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
