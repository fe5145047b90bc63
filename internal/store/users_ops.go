package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/miguelurquijo/menuda/internal/apperr"
)

// UserRepo looks up and upserts user profiles.
type UserRepo struct {
	store *Store
}

// NewUserRepo creates a user repository over the store.
func NewUserRepo(s *Store) *UserRepo {
	return &UserRepo{store: s}
}

// CheckOrCreate looks a user up by email. An existing user gets name and
// picture refreshed and keeps their id; an unknown email gets a new row.
// The email unique constraint makes concurrent first-login calls converge
// on one row.
func (r *UserRepo) CheckOrCreate(ctx context.Context, email, name, picture string) (string, error) {
	const op = "UserRepo.CheckOrCreate"

	if email == "" || name == "" {
		return "", apperr.Validation(op, "Missing required user data")
	}

	var userID string
	err := r.store.db.QueryRowContext(ctx, `
		INSERT INTO users (user_id, name, email, picture)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE
			SET name = EXCLUDED.name,
			    picture = EXCLUDED.picture,
			    updated_at = now()
		RETURNING user_id
	`, uuid.NewString(), name, email, picture).Scan(&userID)
	if err != nil {
		return "", apperr.Storage(op, err)
	}

	return userID, nil
}

// Get returns one user profile by id.
func (r *UserRepo) Get(ctx context.Context, userID string) (UserRow, error) {
	const op = "UserRepo.Get"

	if userID == "" {
		return UserRow{}, apperr.Validation(op, "Missing required parameter: user_id")
	}

	var (
		u                    UserRow
		createdAt, updatedAt time.Time
	)
	err := r.store.db.QueryRowContext(ctx, `
		SELECT user_id, name, email, picture, created_at, updated_at
		FROM users
		WHERE user_id = $1
	`, userID).Scan(&u.UserID, &u.Name, &u.Email, &u.Picture, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return UserRow{}, apperr.NotFound(op, "User not found")
	}
	if err != nil {
		return UserRow{}, apperr.Storage(op, err)
	}

	u.CreatedAt = createdAt.Format(timestampFormat)
	u.UpdatedAt = updatedAt.Format(timestampFormat)
	return u, nil
}
