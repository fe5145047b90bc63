package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/miguelurquijo/menuda/internal/api/middleware"
	"github.com/miguelurquijo/menuda/internal/logger"
	"github.com/miguelurquijo/menuda/internal/store"
)

// TransactionRepository is the slice of the store the transactions handler
// needs.
type TransactionRepository interface {
	List(ctx context.Context, ownerID string) ([]store.TransactionRow, error)
	Get(ctx context.Context, ownerID, transactionID string) (store.TransactionRow, error)
	Create(ctx context.Context, in store.TransactionInput) (store.TransactionRow, error)
	Update(ctx context.Context, transactionID string, in store.TransactionInput) (store.TransactionRow, error)
	Delete(ctx context.Context, ownerID, transactionID string) error
}

// TransactionsHandler handles transaction endpoints.
type TransactionsHandler struct {
	repo TransactionRepository
	log  zerolog.Logger
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(repo TransactionRepository, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{repo: repo, log: log}
}

// ListTransactions handles GET /api/transactions?user_id=
func (h *TransactionsHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("user_id")

	log := logger.WithOwner(h.log, "ListTransactions", ownerID)

	transactions, err := h.repo.List(r.Context(), ownerID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list transactions")
		middleware.WriteAppError(w, err)
		return
	}

	middleware.WriteSuccess(w, http.StatusOK, map[string]any{
		"data":  transactions,
		"count": len(transactions),
	})
}

// GetTransaction handles GET /api/transactions/{id}?user_id=
func (h *TransactionsHandler) GetTransaction(w http.ResponseWriter, r *http.Request, transactionID string) {
	ownerID := r.URL.Query().Get("user_id")

	transaction, err := h.repo.Get(r.Context(), ownerID, transactionID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", ownerID).Str("transaction_id", transactionID).Msg("Failed to get transaction")
		middleware.WriteAppError(w, err)
		return
	}

	middleware.WriteSuccess(w, http.StatusOK, map[string]any{"data": transaction})
}

// CreateTransaction handles POST /api/transactions
func (h *TransactionsHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var in store.TransactionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	transaction, err := h.repo.Create(r.Context(), in)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", in.OwnerID).Msg("Failed to create transaction")
		middleware.WriteAppError(w, err)
		return
	}

	middleware.WriteSuccess(w, http.StatusOK, map[string]any{
		"message":        "Transaction created successfully",
		"transaction_id": transaction.TransactionID,
		"data":           transaction,
	})
}

// UpdateTransaction handles PUT /api/transactions/{id}
func (h *TransactionsHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request, transactionID string) {
	var in store.TransactionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	transaction, err := h.repo.Update(r.Context(), transactionID, in)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", in.OwnerID).Str("transaction_id", transactionID).Msg("Failed to update transaction")
		middleware.WriteAppError(w, err)
		return
	}

	middleware.WriteSuccess(w, http.StatusOK, map[string]any{"data": transaction})
}

// DeleteTransaction handles DELETE /api/transactions/{id}?user_id=
func (h *TransactionsHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request, transactionID string) {
	ownerID := r.URL.Query().Get("user_id")

	if err := h.repo.Delete(r.Context(), ownerID, transactionID); err != nil {
		h.log.Error().Err(err).Str("user_id", ownerID).Str("transaction_id", transactionID).Msg("Failed to delete transaction")
		middleware.WriteAppError(w, err)
		return
	}

	middleware.WriteSuccess(w, http.StatusOK, map[string]any{"message": "Transaction deleted successfully"})
}
