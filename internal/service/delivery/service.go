package delivery

import (
	"context"
	"log/slog"
	"time"

	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/domain"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/observability/metrics"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/observability/tracing"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/service/ledger"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/service/planner"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/service/selector"
)

const (
	OutcomeDelivered  = "delivered"
	OutcomeSuppressed = "suppressed"

	SkipReasonStaleForced = "stale_forced_id"
	SkipReasonExhausted   = "content_exhausted"
)

// ConfigProvider yields the current schedule config without failing.
type ConfigProvider interface {
	Cached(ctx context.Context) *domain.ScheduleConfig
}

// Replanner extends the schedule forward after a delivery.
type Replanner interface {
	ScheduleAll(ctx context.Context, cfg *domain.ScheduleConfig) (*planner.Result, error)
}

// Result reports what one alarm firing produced.
type Result struct {
	Outcome    string
	SkipReason string
	Entry      *domain.HistoryEntry
}

// Service handles a fired alarm: resolve content, record the delivery,
// mark it seen, and extend the schedule forward.
type Service struct {
	provider         ConfigProvider
	selector         *selector.Selector
	ledger           *ledger.Service
	replanner        Replanner
	recorder         domain.DeliveryRecorder
	schedulerMetrics *metrics.SchedulerMetrics
	now              func() time.Time
}

func NewService(
	provider ConfigProvider,
	contentSelector *selector.Selector,
	ledgerService *ledger.Service,
	replanner Replanner,
	recorder domain.DeliveryRecorder,
	schedulerMetrics *metrics.SchedulerMetrics,
	now func() time.Time,
) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		provider:         provider,
		selector:         contentSelector,
		ledger:           ledgerService,
		replanner:        replanner,
		recorder:         recorder,
		schedulerMetrics: schedulerMetrics,
		now:              now,
	}
}

// HandleFire processes one alarm firing. A firing with no resolvable
// content is suppressed, not an error: the cycle is skipped silently
// and the next planning pass covers the gap. Only ledger persistence
// faults surface as errors.
func (s *Service) HandleFire(ctx context.Context, requestCode int, runID, forcedMessageID string) (*Result, error) {
	ctx, span := tracing.StartDeliverySpan(ctx, requestCode, forcedMessageID)
	defer span.End()

	now := s.now()
	cfg := s.provider.Cached(ctx)

	seenIDs, err := s.ledger.SeenIDs(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to load seen IDs, selecting from full pool",
			slog.Int("request_code", requestCode),
			slog.String("error", err.Error()),
		)
		seenIDs = map[string]struct{}{}
	}

	sentence := s.selector.Select(ctx, cfg, seenIDs, forcedMessageID)
	if sentence == nil {
		result := &Result{
			Outcome:    OutcomeSuppressed,
			SkipReason: SkipReasonExhausted,
		}
		if forcedMessageID != "" {
			result.SkipReason = SkipReasonStaleForced
		}

		slog.InfoContext(ctx, "delivery suppressed",
			slog.Int("request_code", requestCode),
			slog.String("skip_reason", result.SkipReason),
		)
		if s.schedulerMetrics != nil {
			s.schedulerMetrics.RecordDelivery(ctx, OutcomeSuppressed)
		}
		s.recordDelivery(ctx, now, requestCode, runID, "", forcedMessageID != "", result)
		tracing.RecordDeliveryResult(span, "", OutcomeSuppressed, nil)
		return result, nil
	}

	entry := domain.NewHistoryEntry(now, sentence)

	if err := s.ledger.Append(ctx, entry); err != nil {
		slog.ErrorContext(ctx, "failed to append delivery to history",
			slog.Int("request_code", requestCode),
			slog.String("message_id", sentence.ID),
			slog.String("error", err.Error()),
		)
		tracing.RecordDeliveryResult(span, sentence.ID, "", err)
		return nil, err
	}

	if err := s.ledger.MarkSeen(ctx, sentence.ID); err != nil {
		slog.WarnContext(ctx, "failed to mark content seen",
			slog.String("message_id", sentence.ID),
			slog.String("error", err.Error()),
		)
	}

	result := &Result{
		Outcome: OutcomeDelivered,
		Entry:   entry,
	}

	slog.InfoContext(ctx, "notification delivered",
		slog.Int("request_code", requestCode),
		slog.String("message_id", sentence.ID),
		slog.Bool("forced", forcedMessageID != ""),
		slog.Int64("entry_id", entry.ID),
	)
	if s.schedulerMetrics != nil {
		s.schedulerMetrics.RecordDelivery(ctx, OutcomeDelivered)
	}
	s.recordDelivery(ctx, now, requestCode, runID, sentence.ID, forcedMessageID != "", result)
	tracing.RecordDeliveryResult(span, sentence.ID, OutcomeDelivered, nil)

	// Rolling horizon: each delivery extends the schedule forward.
	if _, err := s.replanner.ScheduleAll(ctx, cfg); err != nil {
		slog.WarnContext(ctx, "failed to extend schedule after delivery",
			slog.Int("request_code", requestCode),
			slog.String("error", err.Error()),
		)
	}

	return result, nil
}

func (s *Service) recordDelivery(ctx context.Context, now time.Time, requestCode int, runID, messageID string, forced bool, result *Result) {
	if s.recorder == nil {
		return
	}
	record := domain.DeliveryRecord{
		RunID:       runID,
		FiredAt:     now,
		RequestCode: requestCode,
		MessageID:   messageID,
		Forced:      forced,
		Outcome:     result.Outcome,
		SkipReason:  result.SkipReason,
	}
	if err := s.recorder.RecordDelivery(ctx, record); err != nil {
		slog.WarnContext(ctx, "failed to record delivery",
			slog.Int("request_code", requestCode),
			slog.String("error", err.Error()),
		)
	}
}
