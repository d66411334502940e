package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/domain"
)

const currentConfigKey = "sentinote:current_config"

type sentenceRecord struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	IsQuote  bool   `json:"is_quote"`
	Context  string `json:"context,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	AudioURL string `json:"audio_url,omitempty"`
	VideoURL string `json:"video_url,omitempty"`
}

type overrideRecord struct {
	Time      string `json:"time"`
	MessageID string `json:"message_id,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
}

type configRecord struct {
	Enabled     bool             `json:"enabled"`
	StartHour   int              `json:"start_hour"`
	EndHour     int              `json:"end_hour"`
	TimesPerDay int              `json:"times_per_day"`
	Sentences   []sentenceRecord `json:"sentences"`
	Overrides   []overrideRecord `json:"overrides"`
}

type configCacheRepository struct {
	client *redis.Client
}

func NewConfigCacheRepository(client *redis.Client) domain.ConfigCacheRepository {
	return &configCacheRepository{
		client: client,
	}
}

func (r *configCacheRepository) Save(ctx context.Context, cfg *domain.ScheduleConfig) error {
	if cfg == nil {
		return ErrInvalidConfigData
	}

	sentences := make([]sentenceRecord, 0, len(cfg.Sentences))
	for _, s := range cfg.Sentences {
		sentences = append(sentences, sentenceRecord(s))
	}
	overrides := make([]overrideRecord, 0, len(cfg.Overrides))
	for _, o := range cfg.Overrides {
		overrides = append(overrides, overrideRecord(o))
	}

	record := configRecord{
		Enabled:     cfg.Enabled,
		StartHour:   cfg.StartHour,
		EndHour:     cfg.EndHour,
		TimesPerDay: cfg.TimesPerDay,
		Sentences:   sentences,
		Overrides:   overrides,
	}

	data, err := json.Marshal(record)
	if err != nil {
		return ErrInvalidConfigData
	}

	return r.client.Set(ctx, currentConfigKey, data, 0).Err()
}

func (r *configCacheRepository) Load(ctx context.Context) (*domain.ScheduleConfig, error) {
	data, err := r.client.Get(ctx, currentConfigKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrConfigNotCached
		}
		return nil, err
	}

	var record configRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidConfigData
	}

	sentences := make([]domain.Sentence, 0, len(record.Sentences))
	for _, s := range record.Sentences {
		sentences = append(sentences, domain.Sentence(s))
	}
	overrides := make([]domain.Override, 0, len(record.Overrides))
	for _, o := range record.Overrides {
		overrides = append(overrides, domain.Override(o))
	}

	return &domain.ScheduleConfig{
		Enabled:     record.Enabled,
		StartHour:   record.StartHour,
		EndHour:     record.EndHour,
		TimesPerDay: record.TimesPerDay,
		Sentences:   sentences,
		Overrides:   overrides,
	}, nil
}
