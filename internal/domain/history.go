package domain

import (
	"time"
)

// Note is a free-text annotation on a history entry. Immutable once
// created, ordered by timestamp.
type Note struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryEntry records one delivered notification. The message fields
// are snapshots taken at delivery time so the entry stays stable even
// after the sentence is purged from the config. ID is the creation-time
// millisecond clock value and doubles as the notification ID.
type HistoryEntry struct {
	ID        int64     `json:"id"`
	Time      time.Time `json:"time"`
	MessageID string    `json:"message_id"`
	Message   string    `json:"message"`
	ImageURL  string    `json:"image_url,omitempty"`
	AudioURL  string    `json:"audio_url,omitempty"`
	VideoURL  string    `json:"video_url,omitempty"`
	IsQuote   bool      `json:"is_quote"`
	Context   string    `json:"context,omitempty"`
	Reaction  string    `json:"reaction,omitempty"`
	Notes     []Note    `json:"notes,omitempty"`
	Pinned    bool      `json:"pinned"`
}

// NewHistoryEntry snapshots a sentence into a history entry created at
// the given time.
func NewHistoryEntry(now time.Time, sentence *Sentence) *HistoryEntry {
	return &HistoryEntry{
		ID:        now.UnixMilli(),
		Time:      now,
		MessageID: sentence.ID,
		Message:   sentence.Text,
		ImageURL:  sentence.ImageURL,
		AudioURL:  sentence.AudioURL,
		VideoURL:  sentence.VideoURL,
		IsQuote:   sentence.IsQuote,
		Context:   sentence.Context,
		Notes:     make([]Note, 0),
	}
}
