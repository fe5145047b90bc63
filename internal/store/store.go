// Package store implements the Postgres-backed repositories for users,
// categories, vendors, and transactions.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Postgres driver registration.
	_ "github.com/lib/pq"
)

// Store owns the database handle shared by the entity repositories.
type Store struct {
	db *sql.DB
}

// Open connects to Postgres and bootstraps the schema.
func Open(connStr string) (*Store, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("store.Open: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store.Open: bootstrapping schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Timestamp formats used on every read: timestamps as RFC 3339 strings,
// calendar dates as YYYY-MM-DD.
const (
	timestampFormat = time.RFC3339
	dateFormat      = "2006-01-02"
)

// The partial unique indexes close the create-vs-create race on
// (owner, name): a concurrent duplicate insert surfaces as a conflict, which
// the repositories treat as the already-exists success path.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	user_id    TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL UNIQUE,
	picture    TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS categories (
	category_id   TEXT PRIMARY KEY,
	user_id       TEXT NOT NULL REFERENCES users (user_id),
	category_name TEXT NOT NULL,
	is_active     BOOLEAN NOT NULL DEFAULT TRUE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS categories_owner_name_active
	ON categories (user_id, category_name) WHERE is_active;

CREATE TABLE IF NOT EXISTS vendors (
	vendor_id   TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL REFERENCES users (user_id),
	vendor_name TEXT NOT NULL,
	category_id TEXT NOT NULL REFERENCES categories (category_id),
	is_active   BOOLEAN NOT NULL DEFAULT TRUE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS vendors_owner_name_active
	ON vendors (user_id, vendor_name) WHERE is_active;

CREATE TABLE IF NOT EXISTS transactions (
	transaction_id  TEXT PRIMARY KEY,
	user_id         TEXT NOT NULL REFERENCES users (user_id),
	title           TEXT NOT NULL,
	amount          NUMERIC(12,2) NOT NULL,
	transaction_date DATE NOT NULL,
	category_id     TEXT NOT NULL REFERENCES categories (category_id),
	vendor_id       TEXT NOT NULL REFERENCES vendors (vendor_id),
	attachment_url  TEXT NOT NULL DEFAULT '',
	attachment_type TEXT NOT NULL DEFAULT '',
	is_deleted      BOOLEAN NOT NULL DEFAULT FALSE,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS transactions_owner_date
	ON transactions (user_id, transaction_date DESC) WHERE NOT is_deleted;
`
