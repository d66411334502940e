package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/domain"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/testutil"
)

func TestConfigCacheLoadMiss(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewConfigCacheRepository(client)

	_, err := repo.Load(ctx)
	if !errors.Is(err, domain.ErrConfigNotCached) {
		t.Errorf("expected ErrConfigNotCached, got %v", err)
	}
}

func TestConfigCacheSaveLoad(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewConfigCacheRepository(client)

	cfg := &domain.ScheduleConfig{
		Enabled:     true,
		StartHour:   10,
		EndHour:     22,
		TimesPerDay: 4,
		Sentences: []domain.Sentence{
			{ID: "anniv", Text: "Happy Anniversary", IsQuote: false},
			{ID: "daily-1", Text: "Thinking of you", Context: "always"},
		},
		Overrides: []domain.Override{
			{Time: "08:00", MessageID: "anniv"},
		},
	}

	if err := repo.Save(ctx, cfg); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if !loaded.Enabled || loaded.StartHour != 10 || loaded.EndHour != 22 || loaded.TimesPerDay != 4 {
		t.Errorf("window fields mismatch: got %+v", loaded)
	}
	if len(loaded.Sentences) != 2 || loaded.Sentences[0].ID != "anniv" {
		t.Errorf("sentences mismatch: got %+v", loaded.Sentences)
	}
	if len(loaded.Overrides) != 1 || loaded.Overrides[0].Time != "08:00" || loaded.Overrides[0].MessageID != "anniv" {
		t.Errorf("overrides mismatch: got %+v", loaded.Overrides)
	}
}

func TestConfigCacheSaveNil(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewConfigCacheRepository(client)

	if err := repo.Save(ctx, nil); !errors.Is(err, ErrInvalidConfigData) {
		t.Errorf("expected ErrInvalidConfigData, got %v", err)
	}
}
