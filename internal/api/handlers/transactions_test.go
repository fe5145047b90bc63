package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miguelurquijo/menuda/internal/apperr"
	"github.com/miguelurquijo/menuda/internal/logger"
	"github.com/miguelurquijo/menuda/internal/store"
)

// mockTransactionRepo is a TransactionRepository with pluggable behavior.
type mockTransactionRepo struct {
	ListFunc   func(ctx context.Context, ownerID string) ([]store.TransactionRow, error)
	GetFunc    func(ctx context.Context, ownerID, transactionID string) (store.TransactionRow, error)
	CreateFunc func(ctx context.Context, in store.TransactionInput) (store.TransactionRow, error)
	UpdateFunc func(ctx context.Context, transactionID string, in store.TransactionInput) (store.TransactionRow, error)
	DeleteFunc func(ctx context.Context, ownerID, transactionID string) error
}

func (m *mockTransactionRepo) List(ctx context.Context, ownerID string) ([]store.TransactionRow, error) {
	return m.ListFunc(ctx, ownerID)
}

func (m *mockTransactionRepo) Get(ctx context.Context, ownerID, transactionID string) (store.TransactionRow, error) {
	return m.GetFunc(ctx, ownerID, transactionID)
}

func (m *mockTransactionRepo) Create(ctx context.Context, in store.TransactionInput) (store.TransactionRow, error) {
	return m.CreateFunc(ctx, in)
}

func (m *mockTransactionRepo) Update(ctx context.Context, transactionID string, in store.TransactionInput) (store.TransactionRow, error) {
	return m.UpdateFunc(ctx, transactionID, in)
}

func (m *mockTransactionRepo) Delete(ctx context.Context, ownerID, transactionID string) error {
	return m.DeleteFunc(ctx, ownerID, transactionID)
}

func testLog() *bytes.Buffer {
	return &bytes.Buffer{}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestListTransactionsEmpty(t *testing.T) {
	repo := &mockTransactionRepo{
		ListFunc: func(ctx context.Context, ownerID string) ([]store.TransactionRow, error) {
			assert.Equal(t, "user-1", ownerID)
			return []store.TransactionRow{}, nil
		},
	}
	h := NewTransactionsHandler(repo, logger.NewWithWriter(testLog()))

	req := httptest.NewRequest(http.MethodGet, "/api/transactions?user_id=user-1", nil)
	rec := httptest.NewRecorder()
	h.ListTransactions(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, []any{}, body["data"])
	assert.Equal(t, float64(0), body["count"])
}

func TestListTransactionsMissingUserID(t *testing.T) {
	repo := &mockTransactionRepo{
		ListFunc: func(ctx context.Context, ownerID string) ([]store.TransactionRow, error) {
			return nil, apperr.Validation("TransactionRepo.List", "Missing required parameter: user_id")
		},
	}
	h := NewTransactionsHandler(repo, logger.NewWithWriter(testLog()))

	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	rec := httptest.NewRecorder()
	h.ListTransactions(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "error", body["status"])
	assert.Contains(t, body["message"], "user_id")
}

func TestGetTransactionNotFound(t *testing.T) {
	repo := &mockTransactionRepo{
		GetFunc: func(ctx context.Context, ownerID, transactionID string) (store.TransactionRow, error) {
			return store.TransactionRow{}, apperr.NotFound("TransactionRepo.Get", "Transaction not found")
		},
	}
	h := NewTransactionsHandler(repo, logger.NewWithWriter(testLog()))

	req := httptest.NewRequest(http.MethodGet, "/api/transactions/tx-1?user_id=user-1", nil)
	rec := httptest.NewRecorder()
	h.GetTransaction(rec, req, "tx-1")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Transaction not found", body["message"])
}

func TestCreateTransaction(t *testing.T) {
	repo := &mockTransactionRepo{
		CreateFunc: func(ctx context.Context, in store.TransactionInput) (store.TransactionRow, error) {
			assert.Equal(t, "user-1", in.OwnerID)
			assert.Equal(t, "Coffee", in.Title)
			assert.True(t, in.Amount.Valid)
			assert.True(t, in.Amount.Decimal.Equal(decimal.RequireFromString("4.5")))
			return store.TransactionRow{
				TransactionID:   "tx-new",
				Title:           in.Title,
				Amount:          in.Amount.Decimal,
				TransactionDate: in.TransactionDate,
				CategoryID:      in.CategoryID,
				VendorID:        in.VendorID,
			}, nil
		},
	}
	h := NewTransactionsHandler(repo, logger.NewWithWriter(testLog()))

	payload := `{"user_id":"user-1","title":"Coffee","amount":4.5,"transaction_date":"2024-01-01","category_id":"cat-1","vendor_id":"ven-1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.CreateTransaction(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "tx-new", body["transaction_id"])
}

func TestCreateTransactionBadBody(t *testing.T) {
	h := NewTransactionsHandler(&mockTransactionRepo{}, logger.NewWithWriter(testLog()))

	req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	h.CreateTransaction(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteTransaction(t *testing.T) {
	deleted := false
	repo := &mockTransactionRepo{
		DeleteFunc: func(ctx context.Context, ownerID, transactionID string) error {
			deleted = true
			assert.Equal(t, "user-1", ownerID)
			assert.Equal(t, "tx-1", transactionID)
			return nil
		},
	}
	h := NewTransactionsHandler(repo, logger.NewWithWriter(testLog()))

	req := httptest.NewRequest(http.MethodDelete, "/api/transactions/tx-1?user_id=user-1", nil)
	rec := httptest.NewRecorder()
	h.DeleteTransaction(rec, req, "tx-1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, deleted)
	body := decodeBody(t, rec)
	assert.Equal(t, "Transaction deleted successfully", body["message"])
}

func TestDeleteTransactionAlreadyDeleted(t *testing.T) {
	repo := &mockTransactionRepo{
		DeleteFunc: func(ctx context.Context, ownerID, transactionID string) error {
			return apperr.NotFound("TransactionRepo.Delete", "Transaction not found")
		},
	}
	h := NewTransactionsHandler(repo, logger.NewWithWriter(testLog()))

	req := httptest.NewRequest(http.MethodDelete, "/api/transactions/tx-1?user_id=user-1", nil)
	rec := httptest.NewRecorder()
	h.DeleteTransaction(rec, req, "tx-1")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
