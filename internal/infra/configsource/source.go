package configsource

import (
	"context"

	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/domain"
)

//go:generate mockgen -source=source.go -destination=source_mock.go -package=configsource

// Source fetches the remote schedule configuration document. Any
// network or parse fault is returned as an error; callers fall back to
// the cached config.
type Source interface {
	Fetch(ctx context.Context) (*domain.ScheduleConfig, error)
}
