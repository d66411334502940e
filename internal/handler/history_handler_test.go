package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/domain"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/service/ledger"
)

func setupHistoryRouter(t *testing.T, historyRepo domain.HistoryRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ledgerService := ledger.NewService(historyRepo, nil, nil, 100, func() time.Time {
		return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	})
	h := NewHistoryHandler(ledgerService)

	router := gin.New()
	router.GET("/api/v1/history", h.HandleGetHistory)
	router.POST("/api/v1/history/:id/annotation", h.HandleUpdateAnnotation)
	router.POST("/api/v1/history/:id/notes", h.HandleAddNote)
	return router
}

func TestHandleGetHistory(t *testing.T) {
	ctrl := gomock.NewController(t)

	entries := []domain.HistoryEntry{
		{ID: 200, MessageID: "msg-2", Message: "second"},
		{ID: 100, MessageID: "msg-1", Message: "first"},
	}

	historyRepo := domain.NewMockHistoryRepository(ctrl)
	historyRepo.EXPECT().Load(gomock.Any()).Return(entries, nil)

	router := setupHistoryRouter(t, historyRepo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body struct {
		Entries []domain.HistoryEntry `json:"entries"`
		Count   int                   `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Count != 2 {
		t.Errorf("count = %d, want 2", body.Count)
	}
	if body.Entries[0].ID != 200 {
		t.Errorf("first entry ID = %d, want 200", body.Entries[0].ID)
	}
}

func TestHandleUpdateAnnotation(t *testing.T) {
	ctrl := gomock.NewController(t)

	historyRepo := domain.NewMockHistoryRepository(ctrl)
	historyRepo.EXPECT().Load(gomock.Any()).Return([]domain.HistoryEntry{{ID: 100}}, nil)

	var saved []domain.HistoryEntry
	historyRepo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, entries []domain.HistoryEntry) error {
			saved = entries
			return nil
		})

	router := setupHistoryRouter(t, historyRepo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/history/100/annotation",
		bytes.NewBufferString(`{"reaction": "heart", "pinned": true}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if saved[0].Reaction != "heart" {
		t.Errorf("Reaction = %q, want %q", saved[0].Reaction, "heart")
	}
	if !saved[0].Pinned {
		t.Error("Pinned = false, want true")
	}
}

func TestHandleUpdateAnnotation_InvalidID(t *testing.T) {
	ctrl := gomock.NewController(t)
	router := setupHistoryRouter(t, domain.NewMockHistoryRepository(ctrl))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/history/not-a-number/annotation",
		bytes.NewBufferString(`{"reaction": "heart"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestHandleAddNote_BlankTextAccepted(t *testing.T) {
	ctrl := gomock.NewController(t)

	// Blank text never reaches the repository.
	router := setupHistoryRouter(t, domain.NewMockHistoryRepository(ctrl))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/history/100/notes",
		bytes.NewBufferString(`{"text": ""}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}
