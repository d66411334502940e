package ledger

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/domain"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/observability/metrics"
)

// Service owns the delivery history and the seen-ID set. Every history
// mutation is a read-modify-write of the full snapshot; concurrent
// writers can lose updates, accepted at this data scale.
type Service struct {
	historyRepo      domain.HistoryRepository
	seenRepo         domain.SeenRepository
	schedulerMetrics *metrics.SchedulerMetrics
	retentionLimit   int
	now              func() time.Time
}

func NewService(
	historyRepo domain.HistoryRepository,
	seenRepo domain.SeenRepository,
	schedulerMetrics *metrics.SchedulerMetrics,
	retentionLimit int,
	now func() time.Time,
) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		historyRepo:      historyRepo,
		seenRepo:         seenRepo,
		schedulerMetrics: schedulerMetrics,
		retentionLimit:   retentionLimit,
		now:              now,
	}
}

// Append inserts the entry at the front and truncates to the retention
// cap. Pinned entries are not exempt from eviction.
func (s *Service) Append(ctx context.Context, entry *domain.HistoryEntry) error {
	entries, err := s.historyRepo.Load(ctx)
	if err != nil {
		return err
	}

	updated := make([]domain.HistoryEntry, 0, len(entries)+1)
	updated = append(updated, *entry)
	updated = append(updated, entries...)

	evicted := 0
	if len(updated) > s.retentionLimit {
		evicted = len(updated) - s.retentionLimit
		updated = updated[:s.retentionLimit]
	}

	if err := s.historyRepo.Save(ctx, updated); err != nil {
		return err
	}

	if evicted > 0 {
		slog.InfoContext(ctx, "history entries evicted by retention cap",
			slog.Int("evicted", evicted),
			slog.Int("retention_limit", s.retentionLimit),
		)
		if s.schedulerMetrics != nil {
			s.schedulerMetrics.RecordHistoryEvictions(ctx, evicted)
		}
	}

	slog.DebugContext(ctx, "history entry appended",
		slog.Int64("entry_id", entry.ID),
		slog.String("message_id", entry.MessageID),
		slog.Int("history_size", len(updated)),
	)
	return nil
}

// UpdateAnnotation partially updates an entry's reaction and pin state.
// Nil fields are left unchanged. An unknown ID is a silent no-op.
func (s *Service) UpdateAnnotation(ctx context.Context, id int64, reaction *string, pinned *bool) error {
	entries, err := s.historyRepo.Load(ctx)
	if err != nil {
		return err
	}

	idx := findEntry(entries, id)
	if idx < 0 {
		slog.DebugContext(ctx, "annotation update for unknown history entry",
			slog.Int64("entry_id", id),
		)
		return nil
	}

	if reaction != nil {
		entries[idx].Reaction = *reaction
	}
	if pinned != nil {
		entries[idx].Pinned = *pinned
	}

	return s.historyRepo.Save(ctx, entries)
}

// AddNote appends a timestamped note to an entry's note list. Blank
// text and unknown IDs are silent no-ops.
func (s *Service) AddNote(ctx context.Context, id int64, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	entries, err := s.historyRepo.Load(ctx)
	if err != nil {
		return err
	}

	idx := findEntry(entries, id)
	if idx < 0 {
		slog.DebugContext(ctx, "note for unknown history entry",
			slog.Int64("entry_id", id),
		)
		return nil
	}

	entries[idx].Notes = append(entries[idx].Notes, domain.Note{
		Text:      text,
		Timestamp: s.now(),
	})

	return s.historyRepo.Save(ctx, entries)
}

// MarkSeen adds the sentence ID to the seen set. Idempotent.
func (s *Service) MarkSeen(ctx context.Context, sentenceID string) error {
	return s.seenRepo.Add(ctx, sentenceID)
}

// SeenIDs returns the set of sentence IDs delivered at least once.
func (s *Service) SeenIDs(ctx context.Context) (map[string]struct{}, error) {
	return s.seenRepo.Members(ctx)
}

// History returns the full snapshot, most recent first.
func (s *Service) History(ctx context.Context) ([]domain.HistoryEntry, error) {
	return s.historyRepo.Load(ctx)
}

func findEntry(entries []domain.HistoryEntry, id int64) int {
	for i := range entries {
		if entries[i].ID == id {
			return i
		}
	}
	return -1
}
