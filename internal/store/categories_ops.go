package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/miguelurquijo/menuda/internal/apperr"
)

// CategoryRepo lists and upserts one user's spending categories.
type CategoryRepo struct {
	store *Store
}

// NewCategoryRepo creates a category repository over the store.
func NewCategoryRepo(s *Store) *CategoryRepo {
	return &CategoryRepo{store: s}
}

// List returns the owner's active categories ordered by name.
func (r *CategoryRepo) List(ctx context.Context, ownerID string) ([]CategoryRow, error) {
	const op = "CategoryRepo.List"

	if ownerID == "" {
		return nil, apperr.Validation(op, "Missing required parameter: user_id")
	}

	rows, err := r.store.db.QueryContext(ctx, `
		SELECT category_id, category_name, created_at, updated_at
		FROM categories
		WHERE user_id = $1 AND is_active
		ORDER BY category_name
	`, ownerID)
	if err != nil {
		return nil, apperr.Storage(op, err)
	}
	defer rows.Close()

	categories := []CategoryRow{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, apperr.Storage(op, err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage(op, err)
	}

	return categories, nil
}

// Create inserts a category, or returns the existing active row when the
// owner already has one with this name. The conflict path is the uniqueness
// guarantee, not an error.
func (r *CategoryRepo) Create(ctx context.Context, ownerID, name string) (CategoryRow, error) {
	const op = "CategoryRepo.Create"

	if ownerID == "" || name == "" {
		return CategoryRow{}, apperr.Validation(op, "Missing required field: user_id or category_name")
	}

	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return CategoryRow{}, apperr.Storage(op, err)
	}
	defer tx.Rollback()

	var categoryID string
	err = tx.QueryRowContext(ctx, `
		INSERT INTO categories (category_id, user_id, category_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, category_name) WHERE is_active DO NOTHING
		RETURNING category_id
	`, uuid.NewString(), ownerID, name).Scan(&categoryID)
	if errors.Is(err, sql.ErrNoRows) {
		// Conflict: the category already exists, look it up instead.
		err = tx.QueryRowContext(ctx, `
			SELECT category_id FROM categories
			WHERE user_id = $1 AND category_name = $2 AND is_active
		`, ownerID, name).Scan(&categoryID)
	}
	if err != nil {
		return CategoryRow{}, apperr.Storage(op, err)
	}

	c, err := getCategoryTx(ctx, tx, categoryID)
	if err != nil {
		return CategoryRow{}, apperr.Storage(op, err)
	}

	if err := tx.Commit(); err != nil {
		return CategoryRow{}, apperr.Storage(op, err)
	}
	return c, nil
}

func getCategoryTx(ctx context.Context, tx *sql.Tx, categoryID string) (CategoryRow, error) {
	row := tx.QueryRowContext(ctx, `
		SELECT category_id, category_name, created_at, updated_at
		FROM categories
		WHERE category_id = $1
	`, categoryID)
	return scanCategory(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (CategoryRow, error) {
	var (
		c                    CategoryRow
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&c.CategoryID, &c.CategoryName, &createdAt, &updatedAt); err != nil {
		return CategoryRow{}, err
	}
	c.CreatedAt = createdAt.Format(timestampFormat)
	c.UpdatedAt = updatedAt.Format(timestampFormat)
	return c, nil
}
