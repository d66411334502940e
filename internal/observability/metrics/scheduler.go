package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	schedulerMeterName = "scheduler.service"
)

type SchedulerMetrics struct {
	slotsPlanned     metric.Int64Counter
	overridesDropped metric.Int64Counter
	alarmsCancelled  metric.Int64Counter
	deliveries       metric.Int64Counter
	historyEvictions metric.Int64Counter
	planningDuration metric.Float64Histogram
}

func NewSchedulerMetrics() (*SchedulerMetrics, error) {
	meter := otel.Meter(schedulerMeterName)

	slotsPlanned, err := meter.Int64Counter(
		"scheduler_slots_planned_total",
		metric.WithDescription("Total number of fire-times committed by planning passes"),
		metric.WithUnit("{slot}"),
	)
	if err != nil {
		return nil, err
	}

	overridesDropped, err := meter.Int64Counter(
		"scheduler_overrides_dropped_total",
		metric.WithDescription("Total number of overrides dropped for malformed time values"),
		metric.WithUnit("{override}"),
	)
	if err != nil {
		return nil, err
	}

	alarmsCancelled, err := meter.Int64Counter(
		"scheduler_alarms_cancelled_total",
		metric.WithDescription("Total number of prior alarms cancelled before regeneration"),
		metric.WithUnit("{alarm}"),
	)
	if err != nil {
		return nil, err
	}

	deliveries, err := meter.Int64Counter(
		"scheduler_deliveries_total",
		metric.WithDescription("Total number of alarm firings by delivery outcome"),
		metric.WithUnit("{delivery}"),
	)
	if err != nil {
		return nil, err
	}

	historyEvictions, err := meter.Int64Counter(
		"scheduler_history_evictions_total",
		metric.WithDescription("Total number of history entries evicted by the retention cap"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	planningDuration, err := meter.Float64Histogram(
		"scheduler_planning_duration_seconds",
		metric.WithDescription("Planning pass duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5,
		),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerMetrics{
		slotsPlanned:     slotsPlanned,
		overridesDropped: overridesDropped,
		alarmsCancelled:  alarmsCancelled,
		deliveries:       deliveries,
		historyEvictions: historyEvictions,
		planningDuration: planningDuration,
	}, nil
}

func (m *SchedulerMetrics) RecordSlotPlanned(ctx context.Context, kind string) {
	m.slotsPlanned.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
	))
}

func (m *SchedulerMetrics) RecordOverrideDropped(ctx context.Context) {
	m.overridesDropped.Add(ctx, 1)
}

func (m *SchedulerMetrics) RecordAlarmsCancelled(ctx context.Context, count int) {
	m.alarmsCancelled.Add(ctx, int64(count))
}

func (m *SchedulerMetrics) RecordDelivery(ctx context.Context, outcome string) {
	m.deliveries.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *SchedulerMetrics) RecordHistoryEvictions(ctx context.Context, count int) {
	if count <= 0 {
		return
	}
	m.historyEvictions.Add(ctx, int64(count))
}

func (m *SchedulerMetrics) RecordPlanningDuration(ctx context.Context, duration time.Duration) {
	m.planningDuration.Record(ctx, duration.Seconds())
}
