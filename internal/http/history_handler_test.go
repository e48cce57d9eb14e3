package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"chat-relay/internal/domain"
	"chat-relay/internal/service"
)

type mockHistoryRepo struct {
	listData []domain.Message
	listErr  error
}

func (m *mockHistoryRepo) Create(_ context.Context, _ domain.Message) error {
	return nil
}

func (m *mockHistoryRepo) ListByCategory(_ context.Context, _ string) ([]domain.Message, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listData, nil
}

func setupHistoryRouter(repo *mockHistoryRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	handler := NewHistoryHandler(logger, service.NewHistoryService(repo))
	r := gin.New()
	r.GET("/messages/:category", handler.ListByCategory)
	return r
}

func TestHistoryHandlerListByCategory(t *testing.T) {
	repo := &mockHistoryRepo{
		listData: []domain.Message{
			{ID: "m1", UserID: "u1", DisplayName: "Alice", Body: "hi", Category: "sports", CreatedAt: time.Now().UTC()},
			{ID: "m2", UserID: "u2", DisplayName: "Bob", Body: "hey", Category: "sports", CreatedAt: time.Now().UTC()},
		},
	}
	router := setupHistoryRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/messages/sports", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var out []domain.Message
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(out) != 2 || out[0].ID != "m1" || out[1].ID != "m2" {
		t.Fatalf("unexpected messages: %+v", out)
	}
}

func TestHistoryHandlerEmptyCategoryReturnsEmptyArray(t *testing.T) {
	router := setupHistoryRouter(&mockHistoryRepo{})

	req := httptest.NewRequest(http.MethodGet, "/messages/finance", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for empty category, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "[]" {
		t.Fatalf("expected empty JSON array, got %q", body)
	}
}

func TestHistoryHandlerRepoError(t *testing.T) {
	router := setupHistoryRouter(&mockHistoryRepo{listErr: errors.New("store down")})

	req := httptest.NewRequest(http.MethodGet, "/messages/sports", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var out map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal error body: %v", err)
	}
	if out["error"] == "" {
		t.Fatalf("expected error body, got %+v", out)
	}
}
