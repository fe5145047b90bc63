package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/miguelurquijo/menuda/internal/apperr"
)

// VendorRepo lists and upserts one user's vendors.
type VendorRepo struct {
	store *Store
}

// NewVendorRepo creates a vendor repository over the store.
func NewVendorRepo(s *Store) *VendorRepo {
	return &VendorRepo{store: s}
}

// List returns the owner's active vendors with category names, ordered by
// vendor name.
func (r *VendorRepo) List(ctx context.Context, ownerID string) ([]VendorRow, error) {
	const op = "VendorRepo.List"

	if ownerID == "" {
		return nil, apperr.Validation(op, "Missing required parameter: user_id")
	}

	rows, err := r.store.db.QueryContext(ctx, `
		SELECT v.vendor_id, v.vendor_name, v.category_id, c.category_name,
		       v.created_at, v.updated_at
		FROM vendors v
		JOIN categories c ON v.category_id = c.category_id
		WHERE v.user_id = $1 AND v.is_active
		ORDER BY v.vendor_name
	`, ownerID)
	if err != nil {
		return nil, apperr.Storage(op, err)
	}
	defer rows.Close()

	vendors := []VendorRow{}
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, apperr.Storage(op, err)
		}
		vendors = append(vendors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage(op, err)
	}

	return vendors, nil
}

// Create inserts a vendor, or, when the owner already has an active vendor
// with this name, moves the existing row to the given category and returns
// it. Re-creating a vendor is how the client changes its category.
func (r *VendorRepo) Create(ctx context.Context, ownerID, name, categoryID string) (VendorRow, error) {
	const op = "VendorRepo.Create"

	if ownerID == "" || name == "" || categoryID == "" {
		return VendorRow{}, apperr.Validation(op, "Missing required field: user_id, vendor_name or category_id")
	}

	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return VendorRow{}, apperr.Storage(op, err)
	}
	defer tx.Rollback()

	var vendorID string
	err = tx.QueryRowContext(ctx, `
		INSERT INTO vendors (vendor_id, user_id, vendor_name, category_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, vendor_name) WHERE is_active DO UPDATE
			SET category_id = EXCLUDED.category_id,
			    updated_at = now()
		RETURNING vendor_id
	`, uuid.NewString(), ownerID, name, categoryID).Scan(&vendorID)
	if err != nil {
		return VendorRow{}, apperr.Storage(op, err)
	}

	v, err := getVendorTx(ctx, tx, vendorID)
	if err != nil {
		return VendorRow{}, apperr.Storage(op, err)
	}

	if err := tx.Commit(); err != nil {
		return VendorRow{}, apperr.Storage(op, err)
	}
	return v, nil
}

func getVendorTx(ctx context.Context, tx *sql.Tx, vendorID string) (VendorRow, error) {
	row := tx.QueryRowContext(ctx, `
		SELECT v.vendor_id, v.vendor_name, v.category_id, c.category_name,
		       v.created_at, v.updated_at
		FROM vendors v
		JOIN categories c ON v.category_id = c.category_id
		WHERE v.vendor_id = $1
	`, vendorID)
	return scanVendor(row)
}

func scanVendor(row rowScanner) (VendorRow, error) {
	var (
		v                    VendorRow
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&v.VendorID, &v.VendorName, &v.CategoryID, &v.CategoryName, &createdAt, &updatedAt); err != nil {
		return VendorRow{}, err
	}
	v.CreatedAt = createdAt.Format(timestampFormat)
	v.UpdatedAt = updatedAt.Format(timestampFormat)
	return v, nil
}
