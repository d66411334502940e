package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentence is one deliverable piece of content. Identity is ID, unique
// within a single config generation. Immutable once fetched.
type Sentence struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	IsQuote  bool   `json:"is_quote"`
	Context  string `json:"context,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	AudioURL string `json:"audio_url,omitempty"`
	VideoURL string `json:"video_url,omitempty"`
}

// Override pins a time of day to specific content. ImageURL is carried
// for display only and plays no part in scheduling.
type Override struct {
	Time      string `json:"time"` // "HH:MM"
	MessageID string `json:"message_id,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
}

// ScheduleConfig is the remotely fetched configuration document.
// Immutable per fetch.
type ScheduleConfig struct {
	Enabled     bool       `json:"enabled"`
	StartHour   int        `json:"start_hour"`
	EndHour     int        `json:"end_hour"`
	TimesPerDay int        `json:"times_per_day"`
	Sentences   []Sentence `json:"sentences"`
	Overrides   []Override `json:"overrides"`
}

// DefaultScheduleConfig is the built-in fallback used when nothing has
// ever been cached. Scheduling stays off until a real config arrives.
func DefaultScheduleConfig() *ScheduleConfig {
	return &ScheduleConfig{
		Enabled:     false,
		StartHour:   10,
		EndHour:     22,
		TimesPerDay: 0,
		Sentences:   nil,
		Overrides:   nil,
	}
}

// GenericSlotsEnabled reports whether the generic-slot portion of a
// planning pass applies. Overrides are scheduled regardless.
func (c *ScheduleConfig) GenericSlotsEnabled() bool {
	return c.Enabled && c.TimesPerDay > 0 && c.EndHour > c.StartHour
}

// SentenceByID returns the sentence with the given ID, or nil when the
// ID is absent from this config generation.
func (c *ScheduleConfig) SentenceByID(id string) *Sentence {
	for i := range c.Sentences {
		if c.Sentences[i].ID == id {
			return &c.Sentences[i]
		}
	}
	return nil
}

// SentenceIDs returns the ID set of all sentences in this config.
func (c *ScheduleConfig) SentenceIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(c.Sentences))
	for i := range c.Sentences {
		ids[c.Sentences[i].ID] = struct{}{}
	}
	return ids
}

// ParseOverrideTime parses an override's "HH:MM" value into minutes
// after midnight. A malformed value yields ErrInvalidOverrideTime; the
// caller drops that single override and keeps planning.
func ParseOverrideTime(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOverrideTime, value)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, errors.Join(ErrInvalidOverrideTime, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, errors.Join(ErrInvalidOverrideTime, err)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidOverrideTime, value)
	}

	return hour*60 + minute, nil
}
