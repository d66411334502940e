package configsource

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/domain"
)

// Provider pairs the remote source with the cache namespace. Refresh
// never blocks its caller beyond the fetch timeout, and neither method
// ever fails: the worst case is the built-in default config.
type Provider struct {
	source       Source
	cache        domain.ConfigCacheRepository
	fetchTimeout time.Duration
}

func NewProvider(source Source, cache domain.ConfigCacheRepository, fetchTimeout time.Duration) *Provider {
	return &Provider{
		source:       source,
		cache:        cache,
		fetchTimeout: fetchTimeout,
	}
}

// Refresh fetches the remote document with a bounded timeout and writes
// it through to the cache. On any fetch fault it falls back to Cached.
func (p *Provider) Refresh(ctx context.Context) *domain.ScheduleConfig {
	fetchCtx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
	defer cancel()

	cfg, err := p.source.Fetch(fetchCtx)
	if err != nil {
		slog.WarnContext(ctx, "config fetch failed, falling back to cached config",
			slog.String("error", err.Error()),
		)
		return p.Cached(ctx)
	}

	if err := p.cache.Save(ctx, cfg); err != nil {
		slog.WarnContext(ctx, "failed to cache fetched config",
			slog.String("error", err.Error()),
		)
	}

	return cfg
}

// Cached returns the last stored config, or the built-in default when
// nothing has ever been cached or the cache read fails.
func (p *Provider) Cached(ctx context.Context) *domain.ScheduleConfig {
	cfg, err := p.cache.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrConfigNotCached) {
			slog.WarnContext(ctx, "failed to load cached config, using default",
				slog.String("error", err.Error()),
			)
		}
		return domain.DefaultScheduleConfig()
	}
	return cfg
}
