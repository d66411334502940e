package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/domain"
)

// historyListKey holds the full history document as one JSON snapshot,
// most-recent-first. Every mutation is a read-modify-write of the whole
// list; concurrent writers can lose updates (accepted at this scale).
const historyListKey = "sentinote:history_list"

type noteRecord struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type historyEntryRecord struct {
	ID        int64        `json:"id"`
	Time      time.Time    `json:"time"`
	MessageID string       `json:"message_id"`
	Message   string       `json:"message"`
	ImageURL  string       `json:"image_url,omitempty"`
	AudioURL  string       `json:"audio_url,omitempty"`
	VideoURL  string       `json:"video_url,omitempty"`
	IsQuote   bool         `json:"is_quote"`
	Context   string       `json:"context,omitempty"`
	Reaction  string       `json:"reaction,omitempty"`
	Notes     []noteRecord `json:"notes,omitempty"`
	Pinned    bool         `json:"pinned"`
}

type historyRepository struct {
	client *redis.Client
}

func NewHistoryRepository(client *redis.Client) domain.HistoryRepository {
	return &historyRepository{
		client: client,
	}
}

func (r *historyRepository) Load(ctx context.Context) ([]domain.HistoryEntry, error) {
	data, err := r.client.Get(ctx, historyListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []domain.HistoryEntry{}, nil
		}
		return nil, err
	}

	var records []historyEntryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, ErrInvalidHistoryData
	}

	entries := make([]domain.HistoryEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, entryFromRecord(rec))
	}

	return entries, nil
}

func (r *historyRepository) Save(ctx context.Context, entries []domain.HistoryEntry) error {
	records := make([]historyEntryRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, recordFromEntry(e))
	}

	data, err := json.Marshal(records)
	if err != nil {
		return ErrInvalidHistoryData
	}

	return r.client.Set(ctx, historyListKey, data, 0).Err()
}

func recordFromEntry(e domain.HistoryEntry) historyEntryRecord {
	notes := make([]noteRecord, 0, len(e.Notes))
	for _, n := range e.Notes {
		notes = append(notes, noteRecord{
			Text:      n.Text,
			Timestamp: n.Timestamp,
		})
	}

	return historyEntryRecord{
		ID:        e.ID,
		Time:      e.Time,
		MessageID: e.MessageID,
		Message:   e.Message,
		ImageURL:  e.ImageURL,
		AudioURL:  e.AudioURL,
		VideoURL:  e.VideoURL,
		IsQuote:   e.IsQuote,
		Context:   e.Context,
		Reaction:  e.Reaction,
		Notes:     notes,
		Pinned:    e.Pinned,
	}
}

func entryFromRecord(rec historyEntryRecord) domain.HistoryEntry {
	notes := make([]domain.Note, 0, len(rec.Notes))
	for _, n := range rec.Notes {
		notes = append(notes, domain.Note{
			Text:      n.Text,
			Timestamp: n.Timestamp,
		})
	}

	return domain.HistoryEntry{
		ID:        rec.ID,
		Time:      rec.Time,
		MessageID: rec.MessageID,
		Message:   rec.Message,
		ImageURL:  rec.ImageURL,
		AudioURL:  rec.AudioURL,
		VideoURL:  rec.VideoURL,
		IsQuote:   rec.IsQuote,
		Context:   rec.Context,
		Reaction:  rec.Reaction,
		Notes:     notes,
		Pinned:    rec.Pinned,
	}
}
