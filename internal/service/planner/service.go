package planner

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/domain"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/infra/alarmqueue"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/observability/metrics"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/observability/tracing"
)

// Service recomputes the full alarm schedule on every pass: cancel
// prior registrations, generate generic slots, merge overrides, commit.
// Passes are serialized with a mutex so an overlapping trigger cannot
// interleave a partial cancel with a partial registration.
type Service struct {
	alarmQueue       alarmqueue.AlarmQueue
	scheduleRepo     domain.ScheduleRepository
	recorder         domain.DeliveryRecorder
	schedulerMetrics *metrics.SchedulerMetrics
	loc              *time.Location
	requestCodeBase  int
	requestCodeRange int
	now              func() time.Time
	rng              *rand.Rand

	mu sync.Mutex
}

func NewService(
	alarmQueue alarmqueue.AlarmQueue,
	scheduleRepo domain.ScheduleRepository,
	recorder domain.DeliveryRecorder,
	schedulerMetrics *metrics.SchedulerMetrics,
	loc *time.Location,
	requestCodeBase int,
	requestCodeRange int,
	now func() time.Time,
	rng *rand.Rand,
) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		alarmQueue:       alarmQueue,
		scheduleRepo:     scheduleRepo,
		recorder:         recorder,
		schedulerMetrics: schedulerMetrics,
		loc:              loc,
		requestCodeBase:  requestCodeBase,
		requestCodeRange: requestCodeRange,
		now:              now,
		rng:              rng,
	}
}

// ScheduleAll runs one full planning pass against the given config.
// An empty or invalid config degrades to override-only or no-op
// planning with a logged reason, never an error. Errors are reserved
// for persistence faults.
func (s *Service) ScheduleAll(ctx context.Context, cfg *domain.ScheduleConfig) (*Result, error) {
	return s.ScheduleAllAt(ctx, cfg, s.now())
}

// ScheduleAllAt is ScheduleAll with an explicit "now", used for
// virtual-time planning requests.
func (s *Service) ScheduleAllAt(ctx context.Context, cfg *domain.ScheduleConfig, planNow time.Time) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	now := planNow.In(s.loc)
	runID := uuid.NewString()

	ctx, span := tracing.StartPlanningPassSpan(ctx, runID, now)
	defer span.End()

	slog.InfoContext(ctx, "planning pass started",
		slog.String("run_id", runID),
		slog.Time("now", now),
	)

	result := &Result{
		RunID:     runID,
		PlannedAt: now,
	}

	if cfg == nil {
		cfg = domain.DefaultScheduleConfig()
	}

	result.CancelledCount = s.cancelPrevious(ctx)

	slots := make(map[int64]domain.ScheduledSlot)

	if cfg.GenericSlotsEnabled() {
		s.generateGenericSlots(ctx, cfg, now, slots)
		result.GenericCount = len(slots)
	} else {
		slog.InfoContext(ctx, "generic slot generation skipped",
			slog.String("run_id", runID),
			slog.Bool("enabled", cfg.Enabled),
			slog.Int("times_per_day", cfg.TimesPerDay),
			slog.Int("start_hour", cfg.StartHour),
			slog.Int("end_hour", cfg.EndHour),
		)
	}

	result.OverrideCount, result.DroppedOverrides = s.mergeOverrides(ctx, cfg, now, slots)

	plan, registered, failed := s.commit(ctx, runID, now, slots)
	result.RegisteredCount = registered
	result.FailedCount = failed
	result.Alarms = plan.Alarms

	if err := s.scheduleRepo.SavePlan(ctx, plan); err != nil {
		slog.ErrorContext(ctx, "failed to persist schedule plan",
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
		tracing.RecordPlanningPassResult(span, result.GenericCount, result.OverrideCount, result.DroppedOverrides, result.CancelledCount, err)
		return nil, err
	}

	s.recordPass(ctx, result)

	duration := time.Since(start)
	if s.schedulerMetrics != nil {
		s.schedulerMetrics.RecordPlanningDuration(ctx, duration)
	}
	tracing.RecordPlanningPassResult(span, result.GenericCount, result.OverrideCount, result.DroppedOverrides, result.CancelledCount, nil)

	slog.InfoContext(ctx, "planning pass completed",
		slog.String("run_id", runID),
		slog.Int("generic_count", result.GenericCount),
		slog.Int("override_count", result.OverrideCount),
		slog.Int("dropped_overrides", result.DroppedOverrides),
		slog.Int("registered_count", result.RegisteredCount),
		slog.Int("failed_count", result.FailedCount),
		slog.Int("cancelled_count", result.CancelledCount),
		slog.Duration("duration", duration),
	)

	return result, nil
}

// cancelPrevious removes every alarm registered by the prior pass.
// Best-effort: a missing plan or a failed cancel is logged, not fatal.
func (s *Service) cancelPrevious(ctx context.Context) int {
	plan, err := s.scheduleRepo.LoadPlan(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrPlanNotFound) {
			slog.WarnContext(ctx, "failed to load previous schedule plan",
				slog.String("error", err.Error()),
			)
		}
		return 0
	}

	cancelled := 0
	for _, code := range plan.RequestCodes() {
		if err := s.alarmQueue.Cancel(ctx, code); err != nil {
			slog.WarnContext(ctx, "failed to cancel previous alarm",
				slog.Int("request_code", code),
				slog.String("error", err.Error()),
			)
			continue
		}
		cancelled++
	}

	if err := s.scheduleRepo.ClearPlan(ctx); err != nil {
		slog.WarnContext(ctx, "failed to clear previous schedule plan",
			slog.String("error", err.Error()),
		)
	}

	if s.schedulerMetrics != nil {
		s.schedulerMetrics.RecordAlarmsCancelled(ctx, cancelled)
	}
	return cancelled
}

// generateGenericSlots partitions [StartHour, EndHour) into TimesPerDay
// equal minute spans and draws one uniformly random minute per span.
// A fire time already in the past rolls forward a day, so every slot is
// strictly in the future at commit time.
func (s *Service) generateGenericSlots(ctx context.Context, cfg *domain.ScheduleConfig, now time.Time, slots map[int64]domain.ScheduledSlot) {
	totalMinutes := (cfg.EndHour - cfg.StartHour) * 60
	startMinutes := cfg.StartHour * 60

	// More slots than minutes in the window would leave empty spans.
	// Clamp so every span keeps at least one candidate minute.
	timesPerDay := cfg.TimesPerDay
	if timesPerDay > totalMinutes {
		slog.WarnContext(ctx, "times per day exceeds window minutes, clamping",
			slog.Int("times_per_day", cfg.TimesPerDay),
			slog.Int("window_minutes", totalMinutes),
		)
		timesPerDay = totalMinutes
	}

	for i := 0; i < timesPerDay; i++ {
		lower := startMinutes + i*totalMinutes/timesPerDay
		upper := startMinutes + (i+1)*totalMinutes/timesPerDay

		minute := lower + s.rng.IntN(upper-lower)

		fireTime := dayAtMinute(now, minute)
		if !fireTime.After(now) {
			fireTime = fireTime.AddDate(0, 0, 1)
		}

		slots[domain.FireKey(fireTime)] = domain.ScheduledSlot{FireTime: fireTime}

		slog.DebugContext(ctx, "generic slot generated",
			slog.Int("slot_index", i),
			slog.Time("fire_time", fireTime),
		)
	}
}

// mergeOverrides inserts each valid override at its next occurrence,
// overwriting any generic slot that collides on the same millisecond.
// A malformed time drops that single override only.
func (s *Service) mergeOverrides(ctx context.Context, cfg *domain.ScheduleConfig, now time.Time, slots map[int64]domain.ScheduledSlot) (merged, dropped int) {
	for _, override := range cfg.Overrides {
		minutes, err := domain.ParseOverrideTime(override.Time)
		if err != nil {
			slog.WarnContext(ctx, "override dropped for malformed time",
				slog.String("time", override.Time),
				slog.String("message_id", override.MessageID),
				slog.String("error", err.Error()),
			)
			dropped++
			if s.schedulerMetrics != nil {
				s.schedulerMetrics.RecordOverrideDropped(ctx)
			}
			continue
		}

		fireTime := dayAtMinute(now, minutes)
		if !fireTime.After(now) {
			fireTime = fireTime.AddDate(0, 0, 1)
		}

		slots[domain.FireKey(fireTime)] = domain.ScheduledSlot{
			FireTime:        fireTime,
			ForcedMessageID: override.MessageID,
		}
		merged++

		slog.DebugContext(ctx, "override merged",
			slog.String("time", override.Time),
			slog.String("message_id", override.MessageID),
			slog.Time("fire_time", fireTime),
		)
	}
	return merged, dropped
}

// commit registers the merged slots in fire-time order, assigning
// request codes sequentially from the reserved range. A failed
// registration is skipped; the plan records only live alarms.
func (s *Service) commit(ctx context.Context, runID string, now time.Time, slots map[int64]domain.ScheduledSlot) (plan *domain.SchedulePlan, registered, failed int) {
	plan = domain.NewSchedulePlan(runID, now)

	keys := make([]int64, 0, len(slots))
	for key := range slots {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for i, key := range keys {
		if i >= s.requestCodeRange {
			slog.WarnContext(ctx, "slot count exceeds reserved request code range",
				slog.String("run_id", runID),
				slog.Int("slot_count", len(keys)),
				slog.Int("request_code_range", s.requestCodeRange),
			)
			break
		}

		slot := slots[key]
		code := s.requestCodeBase + i

		resp, err := s.alarmQueue.RegisterExact(ctx, &alarmqueue.AlarmTask{
			FireAt:          slot.FireTime,
			RequestCode:     code,
			RunID:           runID,
			ForcedMessageID: slot.ForcedMessageID,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to register alarm",
				slog.String("run_id", runID),
				slog.Int("request_code", code),
				slog.Time("fire_time", slot.FireTime),
				slog.String("error", err.Error()),
			)
			failed++
			continue
		}

		plan.AddAlarm(domain.RegisteredAlarm{
			RequestCode:     code,
			FireTime:        slot.FireTime,
			ForcedMessageID: slot.ForcedMessageID,
			TaskName:        resp.Name,
		})
		registered++

		if s.schedulerMetrics != nil {
			kind := "generic"
			if slot.Forced() {
				kind = "override"
			}
			s.schedulerMetrics.RecordSlotPlanned(ctx, kind)
		}
	}

	return plan, registered, failed
}

func (s *Service) recordPass(ctx context.Context, result *Result) {
	if s.recorder == nil {
		return
	}
	record := domain.PlanningPassRecord{
		RunID:            result.RunID,
		PlannedAt:        result.PlannedAt,
		GenericCount:     result.GenericCount,
		OverrideCount:    result.OverrideCount,
		DroppedOverrides: result.DroppedOverrides,
		RegisteredCount:  result.RegisteredCount,
		FailedCount:      result.FailedCount,
		CancelledCount:   result.CancelledCount,
	}
	if err := s.recorder.RecordPlanningPass(ctx, record); err != nil {
		slog.WarnContext(ctx, "failed to record planning pass",
			slog.String("run_id", result.RunID),
			slog.String("error", err.Error()),
		)
	}
}

// dayAtMinute returns the given minute-after-midnight on the same
// calendar day as ref, in ref's location.
func dayAtMinute(ref time.Time, minute int) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), 0, minute, 0, 0, ref.Location())
}
