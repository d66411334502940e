package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/domain"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func testEntry(id int64, messageID string) domain.HistoryEntry {
	return domain.HistoryEntry{
		ID:        id,
		Time:      time.UnixMilli(id),
		MessageID: messageID,
		Message:   "text for " + messageID,
		Notes:     make([]domain.Note, 0),
	}
}

func TestAppend_InsertsAtFront(t *testing.T) {
	ctrl := gomock.NewController(t)

	existing := []domain.HistoryEntry{testEntry(100, "msg-1")}

	historyRepo := domain.NewMockHistoryRepository(ctrl)
	historyRepo.EXPECT().Load(gomock.Any()).Return(existing, nil)

	var saved []domain.HistoryEntry
	historyRepo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, entries []domain.HistoryEntry) error {
			saved = entries
			return nil
		})

	svc := NewService(historyRepo, nil, nil, 100, fixedNow)

	entry := testEntry(200, "msg-2")
	if err := svc.Append(context.Background(), &entry); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	if len(saved) != 2 {
		t.Fatalf("saved %d entries, want 2", len(saved))
	}
	if saved[0].ID != 200 {
		t.Errorf("front entry ID = %d, want 200", saved[0].ID)
	}
	if saved[1].ID != 100 {
		t.Errorf("second entry ID = %d, want 100", saved[1].ID)
	}
}

func TestAppend_TruncatesToRetentionLimit(t *testing.T) {
	ctrl := gomock.NewController(t)

	existing := make([]domain.HistoryEntry, 0, 5)
	for i := 5; i >= 1; i-- {
		existing = append(existing, testEntry(int64(i), "msg"))
	}

	historyRepo := domain.NewMockHistoryRepository(ctrl)
	historyRepo.EXPECT().Load(gomock.Any()).Return(existing, nil)

	var saved []domain.HistoryEntry
	historyRepo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, entries []domain.HistoryEntry) error {
			saved = entries
			return nil
		})

	svc := NewService(historyRepo, nil, nil, 5, fixedNow)

	entry := testEntry(6, "msg-new")
	if err := svc.Append(context.Background(), &entry); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	if len(saved) != 5 {
		t.Fatalf("saved %d entries, want 5", len(saved))
	}
	if saved[0].ID != 6 {
		t.Errorf("most recent entry ID = %d, want 6", saved[0].ID)
	}
	if saved[4].ID != 2 {
		t.Errorf("oldest surviving entry ID = %d, want 2", saved[4].ID)
	}
}

func TestAppend_PinnedEntriesNotExempt(t *testing.T) {
	ctrl := gomock.NewController(t)

	oldest := testEntry(1, "msg-pinned")
	oldest.Pinned = true
	existing := []domain.HistoryEntry{testEntry(3, "msg"), testEntry(2, "msg"), oldest}

	historyRepo := domain.NewMockHistoryRepository(ctrl)
	historyRepo.EXPECT().Load(gomock.Any()).Return(existing, nil)

	var saved []domain.HistoryEntry
	historyRepo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, entries []domain.HistoryEntry) error {
			saved = entries
			return nil
		})

	svc := NewService(historyRepo, nil, nil, 3, fixedNow)

	entry := testEntry(4, "msg-new")
	if err := svc.Append(context.Background(), &entry); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	for _, e := range saved {
		if e.ID == 1 {
			t.Error("pinned entry beyond the cap survived eviction")
		}
	}
}

func TestAppend_LoadError(t *testing.T) {
	ctrl := gomock.NewController(t)

	historyRepo := domain.NewMockHistoryRepository(ctrl)
	historyRepo.EXPECT().Load(gomock.Any()).Return(nil, errors.New("redis down"))

	svc := NewService(historyRepo, nil, nil, 100, fixedNow)

	entry := testEntry(1, "msg")
	if err := svc.Append(context.Background(), &entry); err == nil {
		t.Error("Append() error = nil, want error")
	}
}

func TestUpdateAnnotation(t *testing.T) {
	reaction := "heart"
	pinned := true

	tests := []struct {
		name         string
		id           int64
		reaction     *string
		pinned       *bool
		wantSave     bool
		wantReaction string
		wantPinned   bool
	}{
		{
			name:         "update reaction only",
			id:           100,
			reaction:     &reaction,
			wantSave:     true,
			wantReaction: "heart",
		},
		{
			name:       "update pin only",
			id:         100,
			pinned:     &pinned,
			wantSave:   true,
			wantPinned: true,
		},
		{
			name:         "update both",
			id:           100,
			reaction:     &reaction,
			pinned:       &pinned,
			wantSave:     true,
			wantReaction: "heart",
			wantPinned:   true,
		},
		{
			name:     "unknown ID is silent no-op",
			id:       999,
			reaction: &reaction,
			wantSave: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			historyRepo := domain.NewMockHistoryRepository(ctrl)
			historyRepo.EXPECT().Load(gomock.Any()).Return([]domain.HistoryEntry{testEntry(100, "msg-1")}, nil)

			var saved []domain.HistoryEntry
			if tt.wantSave {
				historyRepo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, entries []domain.HistoryEntry) error {
						saved = entries
						return nil
					})
			}

			svc := NewService(historyRepo, nil, nil, 100, fixedNow)

			if err := svc.UpdateAnnotation(context.Background(), tt.id, tt.reaction, tt.pinned); err != nil {
				t.Fatalf("UpdateAnnotation() error = %v", err)
			}

			if !tt.wantSave {
				return
			}
			if saved[0].Reaction != tt.wantReaction {
				t.Errorf("Reaction = %q, want %q", saved[0].Reaction, tt.wantReaction)
			}
			if saved[0].Pinned != tt.wantPinned {
				t.Errorf("Pinned = %v, want %v", saved[0].Pinned, tt.wantPinned)
			}
		})
	}
}

func TestAddNote(t *testing.T) {
	tests := []struct {
		name     string
		id       int64
		text     string
		wantSave bool
	}{
		{
			name:     "note appended",
			id:       100,
			text:     "remembered this one",
			wantSave: true,
		},
		{
			name: "blank text is no-op",
			id:   100,
			text: "   ",
		},
		{
			name: "empty text is no-op",
			id:   100,
			text: "",
		},
		{
			name: "unknown ID is silent no-op",
			id:   999,
			text: "lost note",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			historyRepo := domain.NewMockHistoryRepository(ctrl)
			if tt.text != "" && tt.text != "   " {
				historyRepo.EXPECT().Load(gomock.Any()).Return([]domain.HistoryEntry{testEntry(100, "msg-1")}, nil)
			}

			var saved []domain.HistoryEntry
			if tt.wantSave {
				historyRepo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, entries []domain.HistoryEntry) error {
						saved = entries
						return nil
					})
			}

			svc := NewService(historyRepo, nil, nil, 100, fixedNow)

			if err := svc.AddNote(context.Background(), tt.id, tt.text); err != nil {
				t.Fatalf("AddNote() error = %v", err)
			}

			if !tt.wantSave {
				return
			}
			if len(saved[0].Notes) != 1 {
				t.Fatalf("notes = %d, want 1", len(saved[0].Notes))
			}
			if saved[0].Notes[0].Text != tt.text {
				t.Errorf("note text = %q, want %q", saved[0].Notes[0].Text, tt.text)
			}
			if !saved[0].Notes[0].Timestamp.Equal(fixedNow()) {
				t.Errorf("note timestamp = %v, want %v", saved[0].Notes[0].Timestamp, fixedNow())
			}
		})
	}
}

func TestMarkSeen(t *testing.T) {
	ctrl := gomock.NewController(t)

	seenRepo := domain.NewMockSeenRepository(ctrl)
	seenRepo.EXPECT().Add(gomock.Any(), "msg-1").Return(nil)

	svc := NewService(nil, seenRepo, nil, 100, fixedNow)

	if err := svc.MarkSeen(context.Background(), "msg-1"); err != nil {
		t.Fatalf("MarkSeen() error = %v", err)
	}
}

func TestSeenIDs(t *testing.T) {
	ctrl := gomock.NewController(t)

	want := map[string]struct{}{"msg-1": {}, "msg-2": {}}

	seenRepo := domain.NewMockSeenRepository(ctrl)
	seenRepo.EXPECT().Members(gomock.Any()).Return(want, nil)

	svc := NewService(nil, seenRepo, nil, 100, fixedNow)

	got, err := svc.SeenIDs(context.Background())
	if err != nil {
		t.Fatalf("SeenIDs() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("SeenIDs() returned %d IDs, want 2", len(got))
	}
}
