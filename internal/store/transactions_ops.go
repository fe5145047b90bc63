package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/miguelurquijo/menuda/internal/apperr"
	"github.com/miguelurquijo/menuda/internal/attachment"
	"github.com/miguelurquijo/menuda/internal/logger"
)

// TransactionRepo implements transaction reads and writes. Every operation
// filters on the owner id, so rows are invisible across users, and every
// read excludes soft-deleted rows.
type TransactionRepo struct {
	store *Store
}

// NewTransactionRepo creates a transaction repository over the store.
func NewTransactionRepo(s *Store) *TransactionRepo {
	return &TransactionRepo{store: s}
}

const transactionSelect = `
	SELECT t.transaction_id, t.title, t.amount, t.transaction_date,
	       t.attachment_url, t.attachment_type, t.created_at, t.updated_at,
	       c.category_id, c.category_name,
	       v.vendor_id, v.vendor_name
	FROM transactions t
	JOIN categories c ON t.category_id = c.category_id
	JOIN vendors v ON t.vendor_id = v.vendor_id
`

// List returns the owner's transactions, newest transaction date first.
func (r *TransactionRepo) List(ctx context.Context, ownerID string) ([]TransactionRow, error) {
	const op = "TransactionRepo.List"

	if ownerID == "" {
		return nil, apperr.Validation(op, "Missing required parameter: user_id")
	}

	rows, err := r.store.db.QueryContext(ctx, transactionSelect+`
		WHERE t.user_id = $1 AND NOT t.is_deleted
		ORDER BY t.transaction_date DESC
	`, ownerID)
	if err != nil {
		return nil, apperr.Storage(op, err)
	}
	defer rows.Close()

	transactions := []TransactionRow{}
	for rows.Next() {
		tr, err := scanTransaction(rows)
		if err != nil {
			return nil, apperr.Storage(op, err)
		}
		transactions = append(transactions, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage(op, err)
	}

	return transactions, nil
}

// Get returns one transaction. A row that is soft-deleted or owned by a
// different user reads the same as a missing one.
func (r *TransactionRepo) Get(ctx context.Context, ownerID, transactionID string) (TransactionRow, error) {
	const op = "TransactionRepo.Get"

	if ownerID == "" {
		return TransactionRow{}, apperr.Validation(op, "Missing required parameter: user_id")
	}

	row := r.store.db.QueryRowContext(ctx, transactionSelect+`
		WHERE t.user_id = $1 AND t.transaction_id = $2 AND NOT t.is_deleted
	`, ownerID, transactionID)

	tr, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return TransactionRow{}, apperr.NotFound(op, "Transaction not found")
	}
	if err != nil {
		return TransactionRow{}, apperr.Storage(op, err)
	}
	return tr, nil
}

// Create inserts a transaction and returns it joined with category and
// vendor names. Insert and read-back run in one database transaction.
func (r *TransactionRepo) Create(ctx context.Context, in TransactionInput) (TransactionRow, error) {
	const op = "TransactionRepo.Create"

	if err := validateTransactionInput(op, in); err != nil {
		return TransactionRow{}, err
	}
	in = normalizeAttachment(in)

	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return TransactionRow{}, apperr.Storage(op, err)
	}
	defer tx.Rollback()

	transactionID := uuid.NewString()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO transactions (
			transaction_id, user_id, title, amount, transaction_date,
			category_id, vendor_id, attachment_url, attachment_type
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, transactionID, in.OwnerID, in.Title, in.Amount.Decimal, in.TransactionDate,
		in.CategoryID, in.VendorID, in.AttachmentURL, in.AttachmentType)
	if err != nil {
		return TransactionRow{}, apperr.Storage(op, err)
	}

	tr, err := getTransactionTx(ctx, tx, in.OwnerID, transactionID)
	if err != nil {
		return TransactionRow{}, apperr.Storage(op, err)
	}

	if err := tx.Commit(); err != nil {
		return TransactionRow{}, apperr.Storage(op, err)
	}
	return tr, nil
}

// Update overwrites all mutable fields of an active transaction owned by the
// caller and refreshes updated_at.
func (r *TransactionRepo) Update(ctx context.Context, transactionID string, in TransactionInput) (TransactionRow, error) {
	const op = "TransactionRepo.Update"

	if transactionID == "" {
		return TransactionRow{}, apperr.Validation(op, "Missing required parameter: transaction_id")
	}
	if err := validateTransactionInput(op, in); err != nil {
		return TransactionRow{}, err
	}
	in = normalizeAttachment(in)

	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return TransactionRow{}, apperr.Storage(op, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE transactions
		SET title = $1, amount = $2, transaction_date = $3,
		    category_id = $4, vendor_id = $5,
		    attachment_url = $6, attachment_type = $7,
		    updated_at = now()
		WHERE transaction_id = $8 AND user_id = $9 AND NOT is_deleted
	`, in.Title, in.Amount.Decimal, in.TransactionDate, in.CategoryID, in.VendorID,
		in.AttachmentURL, in.AttachmentType, transactionID, in.OwnerID)
	if err != nil {
		return TransactionRow{}, apperr.Storage(op, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return TransactionRow{}, apperr.Storage(op, err)
	} else if n == 0 {
		return TransactionRow{}, apperr.NotFound(op, "Transaction not found")
	}

	tr, err := getTransactionTx(ctx, tx, in.OwnerID, transactionID)
	if err != nil {
		return TransactionRow{}, apperr.Storage(op, err)
	}

	if err := tx.Commit(); err != nil {
		return TransactionRow{}, apperr.Storage(op, err)
	}
	return tr, nil
}

// Delete soft-deletes a transaction. Deleting an already-deleted row is a
// NotFound, same as a row that never existed.
func (r *TransactionRepo) Delete(ctx context.Context, ownerID, transactionID string) error {
	const op = "TransactionRepo.Delete"
	log := logger.FromContext(ctx)

	if ownerID == "" {
		return apperr.Validation(op, "Missing required parameter: user_id")
	}

	res, err := r.store.db.ExecContext(ctx, `
		UPDATE transactions
		SET is_deleted = TRUE, updated_at = now()
		WHERE transaction_id = $1 AND user_id = $2 AND NOT is_deleted
	`, transactionID, ownerID)
	if err != nil {
		return apperr.Storage(op, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return apperr.Storage(op, err)
	} else if n == 0 {
		return apperr.NotFound(op, "Transaction not found")
	}

	log.Info().Str("transaction_id", transactionID).Str("user_id", ownerID).Msg("Transaction soft-deleted")
	return nil
}

func validateTransactionInput(op string, in TransactionInput) error {
	switch {
	case in.OwnerID == "":
		return apperr.Validation(op, "Missing required field: user_id")
	case in.Title == "":
		return apperr.Validation(op, "Missing required field: title")
	case !in.Amount.Valid:
		return apperr.Validation(op, "Missing required field: amount")
	case in.CategoryID == "":
		return apperr.Validation(op, "Missing required field: category_id")
	case in.VendorID == "":
		return apperr.Validation(op, "Missing required field: vendor_id")
	case in.TransactionDate == "":
		return apperr.Validation(op, "Missing required field: transaction_date")
	}
	if _, err := time.Parse(dateFormat, in.TransactionDate); err != nil {
		return apperr.Validation(op, "transaction_date must be YYYY-MM-DD")
	}
	return nil
}

// normalizeAttachment keeps the (url, type) pair consistent: no url means no
// type, and a url without a type gets one inferred from its extension.
func normalizeAttachment(in TransactionInput) TransactionInput {
	if in.AttachmentURL == "" {
		in.AttachmentType = ""
		return in
	}
	if in.AttachmentType == "" {
		in.AttachmentType = string(attachment.FromURL(in.AttachmentURL))
	}
	return in
}

func getTransactionTx(ctx context.Context, tx *sql.Tx, ownerID, transactionID string) (TransactionRow, error) {
	row := tx.QueryRowContext(ctx, transactionSelect+`
		WHERE t.user_id = $1 AND t.transaction_id = $2 AND NOT t.is_deleted
	`, ownerID, transactionID)
	return scanTransaction(row)
}

func scanTransaction(row rowScanner) (TransactionRow, error) {
	var (
		tr                   TransactionRow
		txDate               time.Time
		createdAt, updatedAt time.Time
	)
	err := row.Scan(
		&tr.TransactionID, &tr.Title, &tr.Amount, &txDate,
		&tr.AttachmentURL, &tr.AttachmentType, &createdAt, &updatedAt,
		&tr.CategoryID, &tr.CategoryName,
		&tr.VendorID, &tr.VendorName,
	)
	if err != nil {
		return TransactionRow{}, err
	}
	tr.TransactionDate = txDate.Format(dateFormat)
	tr.CreatedAt = createdAt.Format(timestampFormat)
	tr.UpdatedAt = updatedAt.Format(timestampFormat)
	return tr, nil
}
