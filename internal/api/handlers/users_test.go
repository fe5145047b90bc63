package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/miguelurquijo/menuda/internal/apperr"
	"github.com/miguelurquijo/menuda/internal/logger"
	"github.com/miguelurquijo/menuda/internal/store"
)

type mockUserRepo struct {
	CheckOrCreateFunc func(ctx context.Context, email, name, picture string) (string, error)
	GetFunc           func(ctx context.Context, userID string) (store.UserRow, error)
}

func (m *mockUserRepo) CheckOrCreate(ctx context.Context, email, name, picture string) (string, error) {
	return m.CheckOrCreateFunc(ctx, email, name, picture)
}

func (m *mockUserRepo) Get(ctx context.Context, userID string) (store.UserRow, error) {
	return m.GetFunc(ctx, userID)
}

func TestCheckUser(t *testing.T) {
	repo := &mockUserRepo{
		CheckOrCreateFunc: func(ctx context.Context, email, name, picture string) (string, error) {
			assert.Equal(t, "ada@example.com", email)
			assert.Equal(t, "Ada", name)
			return "user-42", nil
		},
	}
	h := NewUsersHandler(repo, logger.NewWithWriter(testLog()))

	payload := `{"email":"ada@example.com","name":"Ada","picture":"https://example.com/p.png"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users/check", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.CheckUser(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "user-42", body["user_id"])
}

func TestCheckUserMissingData(t *testing.T) {
	repo := &mockUserRepo{
		CheckOrCreateFunc: func(ctx context.Context, email, name, picture string) (string, error) {
			return "", apperr.Validation("UserRepo.CheckOrCreate", "Missing required user data")
		},
	}
	h := NewUsersHandler(repo, logger.NewWithWriter(testLog()))

	req := httptest.NewRequest(http.MethodPost, "/api/users/check", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.CheckUser(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUser(t *testing.T) {
	repo := &mockUserRepo{
		GetFunc: func(ctx context.Context, userID string) (store.UserRow, error) {
			return store.UserRow{UserID: userID, Name: "Ada", Email: "ada@example.com"}, nil
		},
	}
	h := NewUsersHandler(repo, logger.NewWithWriter(testLog()))

	req := httptest.NewRequest(http.MethodGet, "/api/users/user-42", nil)
	rec := httptest.NewRecorder()
	h.GetUser(rec, req, "user-42")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	data := body["data"].(map[string]any)
	assert.Equal(t, "user-42", data["user_id"])
	assert.Equal(t, "Ada", data["name"])
}

func TestGetUserNotFound(t *testing.T) {
	repo := &mockUserRepo{
		GetFunc: func(ctx context.Context, userID string) (store.UserRow, error) {
			return store.UserRow{}, apperr.NotFound("UserRepo.Get", "User not found")
		},
	}
	h := NewUsersHandler(repo, logger.NewWithWriter(testLog()))

	req := httptest.NewRequest(http.MethodGet, "/api/users/ghost", nil)
	rec := httptest.NewRecorder()
	h.GetUser(rec, req, "ghost")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
