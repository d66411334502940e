package domain

import "context"

//go:generate mockgen -source=repository.go -destination=repository_mock.go -package=domain

// HistoryRepository persists the history document as a single snapshot.
// Load returns an empty slice when nothing has been stored yet. Writers
// perform read-modify-write of the full snapshot; there is no
// transactional isolation between concurrent writers.
type HistoryRepository interface {
	Load(ctx context.Context) ([]HistoryEntry, error)
	Save(ctx context.Context, entries []HistoryEntry) error
}

// SeenRepository tracks the set of sentence IDs delivered at least once
// in the current config generation. Add is idempotent.
type SeenRepository interface {
	Add(ctx context.Context, sentenceID string) error
	Members(ctx context.Context) (map[string]struct{}, error)
}

// ConfigCacheRepository stores the last successfully fetched schedule
// config. Load returns ErrConfigNotCached when the namespace is empty.
type ConfigCacheRepository interface {
	Save(ctx context.Context, cfg *ScheduleConfig) error
	Load(ctx context.Context) (*ScheduleConfig, error)
}

// ScheduleRepository stores the snapshot of the live alarm schedule so
// the next planning pass can cancel prior registrations. Load returns
// ErrPlanNotFound when no pass has committed yet.
type ScheduleRepository interface {
	SavePlan(ctx context.Context, plan *SchedulePlan) error
	LoadPlan(ctx context.Context) (*SchedulePlan, error)
	ClearPlan(ctx context.Context) error
}
