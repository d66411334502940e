package repository

import (
	"context"
	"testing"
	"time"

	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/domain"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/testutil"
)

func TestHistoryLoadEmpty(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewHistoryRepository(client)

	entries, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty history, got %d entries", len(entries))
	}
}

func TestHistorySaveLoadRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewHistoryRepository(client)

	created := time.Date(2024, 3, 14, 15, 30, 0, 0, time.UTC)
	entries := []domain.HistoryEntry{
		{
			ID:        created.UnixMilli(),
			Time:      created,
			MessageID: "daily-1",
			Message:   "Thinking of you",
			ImageURL:  "https://example.com/a.jpg",
			IsQuote:   true,
			Context:   "from that trip",
			Reaction:  "❤️",
			Notes: []domain.Note{
				{Text: "best one yet", Timestamp: created.Add(time.Hour)},
			},
			Pinned: true,
		},
		{
			ID:        created.Add(-time.Hour).UnixMilli(),
			Time:      created.Add(-time.Hour),
			MessageID: "daily-2",
			Message:   "Good morning",
			Notes:     []domain.Note{},
		},
	}

	if err := repo.Save(ctx, entries); err != nil {
		t.Fatalf("failed to save history: %v", err)
	}

	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("failed to load history: %v", err)
	}
	if len(loaded) != len(entries) {
		t.Fatalf("expected %d entries, got %d", len(entries), len(loaded))
	}

	got := loaded[0]
	want := entries[0]
	if got.ID != want.ID || got.MessageID != want.MessageID || got.Message != want.Message {
		t.Errorf("entry identity mismatch: got %+v, want %+v", got, want)
	}
	if !got.Time.Equal(want.Time) {
		t.Errorf("time: got %v, want %v", got.Time, want.Time)
	}
	if got.Reaction != want.Reaction || got.Pinned != want.Pinned || got.IsQuote != want.IsQuote {
		t.Errorf("annotation mismatch: got %+v", got)
	}
	if len(got.Notes) != 1 || got.Notes[0].Text != "best one yet" {
		t.Errorf("notes mismatch: got %+v", got.Notes)
	}
	if got.ImageURL != want.ImageURL || got.Context != want.Context {
		t.Errorf("snapshot fields mismatch: got %+v", got)
	}
}

func TestHistorySaveOverwritesSnapshot(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewHistoryRepository(client)

	first := []domain.HistoryEntry{{ID: 1, MessageID: "a", Message: "one"}}
	second := []domain.HistoryEntry{
		{ID: 2, MessageID: "b", Message: "two"},
		{ID: 1, MessageID: "a", Message: "one"},
	}

	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected full overwrite with 2 entries, got %d", len(loaded))
	}
	if loaded[0].ID != 2 {
		t.Errorf("expected newest-first order preserved, got leading ID %d", loaded[0].ID)
	}
}
